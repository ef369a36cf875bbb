package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	APIKey         string // API key for authentication
	TrustedProxies []string
	LogLevel       string
	LogFormat      string
	LogDir         string
	ServiceName    string
	Version        string
	Environment    string

	// Storage
	DBDriver          string // "postgres" or "sqlite"
	DBBackend         string // "pgx" or "gorm"; postgres only
	DBURL             string // overrides the DB_* parts when set
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	SQLitePath        string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Rate limiting
	RateLimitBackend     string // "sql" or "redis"
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	DefaultAttemptLimit  int
	DefaultWindowSeconds int

	// Economy
	MaxPurchaseQuantity int
	FirstClaimBonus     int64
	ListingCacheTTL     time.Duration
	CatalogPath         string

	// Attempt retention
	RetentionInterval time.Duration
	RetentionMaxAge   time.Duration

	// Discord
	DiscordToken              string
	DiscordAppID              string
	DiscordHealthPort         int
	DiscordForceCommandUpdate bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogDir:      getEnv("LOG_DIR", "logs"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),

		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBBackend:         strings.ToLower(getEnv("DB_BACKEND", BackendPgx)),
		DBURL:             getEnv("DB_URL", ""),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "catchbot"),
		SQLitePath:        getEnv("SQLITE_PATH", "catchbot.db"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 20),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),

		RateLimitBackend:     strings.ToLower(getEnv("RATE_LIMIT_BACKEND", BackendSQL)),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		DefaultAttemptLimit:  getEnvAsInt("DEFAULT_ATTEMPT_LIMIT", 10),
		DefaultWindowSeconds: getEnvAsInt("DEFAULT_WINDOW_SECONDS", 3600),

		MaxPurchaseQuantity: getEnvAsInt("MAX_PURCHASE_QUANTITY", 100),
		FirstClaimBonus:     int64(getEnvAsInt("FIRST_CLAIM_BONUS", 50)),
		ListingCacheTTL:     getEnvAsDuration("LISTING_CACHE_TTL", time.Minute),
		CatalogPath:         getEnv("CATALOG_PATH", ConfigPathCatalog),

		RetentionInterval: getEnvAsDuration("RETENTION_INTERVAL", time.Hour),
		RetentionMaxAge:   getEnvAsDuration("RETENTION_MAX_AGE", 168*time.Hour),

		DiscordToken:              getEnv("DISCORD_TOKEN", ""),
		DiscordAppID:              getEnv("DISCORD_APP_ID", ""),
		DiscordHealthPort:         getEnvAsInt("DISCORD_HEALTH_PORT", 8082),
		DiscordForceCommandUpdate: strings.EqualFold(getEnv("DISCORD_FORCE_COMMAND_UPDATE", ""), "true"),
	}

	cfg.TrustedProxies = splitList(getEnv("TRUSTED_PROXIES", ""))

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: expected %s or %s", c.DBDriver, DriverPostgres, DriverSQLite)
	}

	switch c.DBBackend {
	case BackendPgx, BackendGorm:
	default:
		return fmt.Errorf("invalid DB_BACKEND %q: expected %s or %s", c.DBBackend, BackendPgx, BackendGorm)
	}

	switch c.RateLimitBackend {
	case BackendSQL, BackendRedis:
	default:
		return fmt.Errorf("invalid RATE_LIMIT_BACKEND %q: expected %s or %s", c.RateLimitBackend, BackendSQL, BackendRedis)
	}

	if c.DefaultAttemptLimit < 1 {
		return fmt.Errorf("DEFAULT_ATTEMPT_LIMIT must be at least 1, got %d", c.DefaultAttemptLimit)
	}
	if c.DefaultWindowSeconds < 1 {
		return fmt.Errorf("DEFAULT_WINDOW_SECONDS must be at least 1, got %d", c.DefaultWindowSeconds)
	}
	if c.MaxPurchaseQuantity < 1 {
		return fmt.Errorf("MAX_PURCHASE_QUANTITY must be at least 1, got %d", c.MaxPurchaseQuantity)
	}
	if c.FirstClaimBonus < 0 {
		return fmt.Errorf("FIRST_CLAIM_BONUS must not be negative, got %d", c.FirstClaimBonus)
	}

	// Purging inside the largest default window would unblock users early
	if c.RetentionMaxAge < time.Duration(c.DefaultWindowSeconds)*time.Second {
		return fmt.Errorf("RETENTION_MAX_AGE (%s) must cover DEFAULT_WINDOW_SECONDS (%ds)", c.RetentionMaxAge, c.DefaultWindowSeconds)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration parses a Go duration string, falling back to the default when unset or invalid
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// splitList parses a comma separated list, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// DefaultWindow returns the default rate limit window as a duration
func (c *Config) DefaultWindow() time.Duration {
	return time.Duration(c.DefaultWindowSeconds) * time.Second
}
