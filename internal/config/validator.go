package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists the environment variables every binary needs
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
}

// RequiredPostgresEnvVars are required when DB_DRIVER is postgres and DB_URL is unset
var RequiredPostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// RequiredDiscordEnvVars are required by the Discord adapter
var RequiredDiscordEnvVars = []string{
	"DISCORD_TOKEN",
	"DISCORD_APP_ID",
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version matches expectations
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	required := append([]string{}, RequiredEnvVars...)
	driver := strings.ToLower(os.Getenv("DB_DRIVER"))
	if (driver == "" || driver == DriverPostgres) && os.Getenv("DB_URL") == "" {
		required = append(required, RequiredPostgresEnvVars...)
	}

	return checkMissing(required)
}

// ValidateDiscordEnv checks the variables the Discord adapter needs on top of ValidateEnv
func ValidateDiscordEnv() error {
	if err := ValidateEnv(); err != nil {
		return err
	}
	return checkMissing(RequiredDiscordEnvVars)
}

func checkMissing(vars []string) error {
	var missing []string
	for _, envVar := range vars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if os.Getenv("API_KEY") == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if strings.ToLower(os.Getenv("RATE_LIMIT_BACKEND")) == BackendRedis && os.Getenv("REDIS_ADDR") == "" {
		warnings = append(warnings, "RATE_LIMIT_BACKEND is redis but REDIS_ADDR is unset - falling back to localhost:6379")
	}

	return warnings, nil
}
