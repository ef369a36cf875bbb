package config

const (
	// Configuration file paths
	ConfigPathCatalog       = "configs/catalog.json"
	ConfigPathCatalogSchema = "configs/schemas/catalog.schema.json"
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// PostgreSQL client stacks
const (
	BackendPgx  = "pgx"
	BackendGorm = "gorm"
)

// Rate limit backends
const (
	BackendSQL   = "sql"
	BackendRedis = "redis"
)

// DefaultServiceName is reported in every log record
const DefaultServiceName = "catchbot"
