package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearValidatedEnv blanks every variable the validator inspects
func clearValidatedEnv(t *testing.T) {
	t.Helper()
	vars := append([]string{"DB_DRIVER", "DB_URL", "RATE_LIMIT_BACKEND", "REDIS_ADDR"}, RequiredEnvVars...)
	vars = append(vars, RequiredPostgresEnvVars...)
	vars = append(vars, RequiredDiscordEnvVars...)
	for _, v := range vars {
		t.Setenv(v, "")
	}
}

func setAll(t *testing.T, vars []string, value string) {
	t.Helper()
	for _, v := range vars {
		t.Setenv(v, value)
	}
}

func TestValidateEnv_SchemaVersion(t *testing.T) {
	clearValidatedEnv(t)

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")

	t.Setenv("ENV_SCHEMA_VERSION", "0.9")
	err = ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_Drivers(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantMissing []string
	}{
		{
			name:        "postgres needs its parts",
			env:         map[string]string{"API_KEY": "k"},
			wantMissing: RequiredPostgresEnvVars,
		},
		{
			name: "postgres with DB_URL",
			env:  map[string]string{"API_KEY": "k", "DB_URL": "postgres://u:p@h/db"},
		},
		{
			name: "sqlite needs no credentials",
			env:  map[string]string{"API_KEY": "k", "DB_DRIVER": "SQLite"},
		},
		{
			name:        "api key always required",
			env:         map[string]string{"DB_DRIVER": DriverSQLite},
			wantMissing: []string{"API_KEY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearValidatedEnv(t)
			t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := ValidateEnv()
			if len(tt.wantMissing) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, v := range tt.wantMissing {
				assert.Contains(t, err.Error(), v)
			}
		})
	}
}

func TestValidateDiscordEnv(t *testing.T) {
	clearValidatedEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("API_KEY", "k")
	t.Setenv("DB_DRIVER", DriverSQLite)

	err := ValidateDiscordEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_TOKEN")

	setAll(t, RequiredDiscordEnvVars, "set")
	assert.NoError(t, ValidateDiscordEnv())
}

func TestValidateEnvWithWarnings(t *testing.T) {
	clearValidatedEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	setAll(t, RequiredPostgresEnvVars, "value")
	t.Setenv("DB_PASSWORD", "change_this_secure_password")
	t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")
	t.Setenv("RATE_LIMIT_BACKEND", "Redis")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "API_KEY")
	assert.Contains(t, warnings[2], "REDIS_ADDR")
}
