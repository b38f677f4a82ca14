package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("SYNC_WORKERS", "")
	t.Setenv("SYNC_EMPLOYEE_TIMEOUT", "")
	t.Setenv("ROLLOVER_CRON", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.App.StorageType)
	assert.Equal(t, 8, cfg.Sync.Workers)
	assert.Equal(t, 30*time.Second, cfg.Sync.EmployeeTimeout)
	assert.Equal(t, "0 1 25 * *", cfg.Rollover.Cron)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("SYNC_WORKERS", "3")
	t.Setenv("SYNC_EMPLOYEE_TIMEOUT", "5s")
	t.Setenv("ROLLOVER_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Sync.Workers)
	assert.Equal(t, 5*time.Second, cfg.Sync.EmployeeTimeout)
	assert.False(t, cfg.Rollover.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSAllowedOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port", "APP_PORT", "eighty"},
		{"workers", "SYNC_WORKERS", "many"},
		{"timeout", "SYNC_EMPLOYEE_TIMEOUT", "30"},
		{"rollover flag", "ROLLOVER_ENABLED", "sometimes"},
		{"storage", "STORAGE_TYPE", "redis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORAGE_TYPE", "memory")
			t.Setenv("JWT_SECRET_KEY", "secret")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			App:      AppConfig{StorageType: StoragePostgres},
			Database: DatabaseConfig{Password: "pw", MaxConns: 25},
			JWT:      JWTConfig{Secret: "s", AccessExpiration: "1h"},
			Sync:     SyncConfig{Workers: 8, EmployeeTimeout: time.Second},
		}
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Database.Password = ""
	assert.EqualError(t, cfg.Validate(), "DB_PASSWORD is required")

	cfg = base()
	cfg.JWT.Secret = ""
	assert.EqualError(t, cfg.Validate(), "JWT_SECRET_KEY is required")

	cfg = base()
	cfg.Database.MaxConns = 8
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.App.StorageType = StorageMemory
	cfg.Database.Password = ""
	assert.NoError(t, cfg.Validate())
}

func TestSlogLevel(t *testing.T) {
	cfg := Config{App: AppConfig{LogLevel: "debug"}}
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	cfg.App.LogLevel = "loud"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
