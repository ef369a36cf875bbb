package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset uses default", "", 42},
		{"valid", "100", 100},
		{"negative", "-10", -10},
		{"zero", "0", 0},
		{"not a number", "ten", 42},
		{"float", "42.5", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CATCHBOT_TEST_INT", tt.value)
			assert.Equal(t, tt.want, getEnvAsInt("CATCHBOT_TEST_INT", 42))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset uses default", "", 5 * time.Minute},
		{"minutes", "10m", 10 * time.Minute},
		{"compound", "1h30m45s", time.Hour + 30*time.Minute + 45*time.Second},
		{"milliseconds", "500ms", 500 * time.Millisecond},
		{"bare number has no unit", "100", 5 * time.Minute},
		{"garbage", "soon", 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CATCHBOT_TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("CATCHBOT_TEST_DURATION", 5*time.Minute))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , ,"))
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.0/8"}, splitList("10.0.0.1, 10.0.0.0/8 ,"))
}

func TestLoad_DatabasePoolConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
	})

	t.Run("overrides", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "10m")
		t.Setenv("DB_MAX_CONN_LIFETIME", "1h")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.DBMaxConns)
		assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "lots")
		t.Setenv("DB_MAX_CONN_LIFETIME", "forever")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
	})
}

func TestLoad_AdapterConfig(t *testing.T) {
	t.Run("discord defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8082, cfg.DiscordHealthPort)
		assert.False(t, cfg.DiscordForceCommandUpdate)
		assert.Empty(t, cfg.TrustedProxies)
	})

	t.Run("discord and proxy overrides", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DISCORD_HEALTH_PORT", "9090")
		t.Setenv("DISCORD_FORCE_COMMAND_UPDATE", "TRUE")
		t.Setenv("TRUSTED_PROXIES", "127.0.0.1,10.0.0.0/8")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.DiscordHealthPort)
		assert.True(t, cfg.DiscordForceCommandUpdate)
		assert.Equal(t, []string{"127.0.0.1", "10.0.0.0/8"}, cfg.TrustedProxies)
	})
}
