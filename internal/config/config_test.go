package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, int32(10), cfg.Store.MaxConns)
	assert.Equal(t, int32(2), cfg.Store.MinConns)
	assert.Equal(t, 3, cfg.Store.RetryAttempts)
	assert.Equal(t, 200, cfg.Store.RetryBackoffMs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.InDelta(t, 20.0, cfg.Server.RateLimitRPS, 0.001)
	assert.Equal(t, 40, cfg.Server.RateLimitBurst)
	assert.Equal(t, "default", cfg.Dashboard.EcosystemID)
	assert.Equal(t, 90, cfg.Dashboard.StaleAfterDays)
	assert.Equal(t, 3, cfg.Dashboard.StaleLimit)
	assert.Equal(t, 50, cfg.Dashboard.SubmissionUrgency)
	assert.Equal(t, 100, cfg.Dashboard.StaleUrgency)
	assert.Equal(t, 999, cfg.Dashboard.UndatedUrgency)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
  database_url: file:local.db
log:
  level: debug
  format: console
server:
  port: 9090
dashboard:
  ecosystem_id: lexington
  stale_limit: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "file:local.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "lexington", cfg.Dashboard.EcosystemID)
	assert.Equal(t, 5, cfg.Dashboard.StaleLimit)
	// Defaults still apply for unset values
	assert.Equal(t, 90, cfg.Dashboard.StaleAfterDays)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
dashboard:
  ecosystem_id: lexington
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("DASHBOARD_STORE_DRIVER", "postgres")
	t.Setenv("DASHBOARD_DASHBOARD_ECOSYSTEM_ID", "louisville")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "louisville", cfg.Dashboard.EcosystemID)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DASHBOARD_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("store: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	return &Config{
		Store:  StoreConfig{Driver: "postgres", DatabaseURL: "postgres://localhost/dashboard"},
		Server: ServerConfig{Port: 8080, RateLimitRPS: 20, RateLimitBurst: 40},
		Log:    LogConfig{Level: "info", Format: "json"},
		Dashboard: DashboardConfig{
			EcosystemID:       "default",
			StaleAfterDays:    90,
			StaleLimit:        3,
			SubmissionUrgency: 50,
			StaleUrgency:      100,
			UndatedUrgency:    999,
		},
	}
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, validDefaults().Validate())
}

func TestValidate_SQLiteNeedsNoURL(t *testing.T) {
	cfg := validDefaults()
	cfg.Store = StoreConfig{Driver: "sqlite"}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"postgres without url", func(c *Config) { c.Store.DatabaseURL = "" }, "store.database_url is required"},
		{"unknown driver", func(c *Config) { c.Store.Driver = "mysql" }, "store.driver must be postgres or sqlite"},
		{"blank ecosystem", func(c *Config) { c.Dashboard.EcosystemID = "  " }, "dashboard.ecosystem_id is required"},
		{"zero stale limit", func(c *Config) { c.Dashboard.StaleLimit = 0 }, "dashboard.stale_limit must be > 0"},
		{"zero stale window", func(c *Config) { c.Dashboard.StaleAfterDays = 0 }, "dashboard.stale_after_days must be > 0"},
		{"submission not before stale", func(c *Config) { c.Dashboard.SubmissionUrgency = 100 }, "submission_urgency must be lower"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := validDefaults()
	cfg.Dashboard.EcosystemID = ""
	cfg.Dashboard.StaleLimit = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ecosystem_id")
	assert.Contains(t, err.Error(), "stale_limit")
}

func TestValidateServe_ValidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 9090
	assert.NoError(t, cfg.ValidateServe())
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.ValidateServe()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateServe_RateLimit(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.RateLimitBurst = 0

	err := cfg.ValidateServe()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestAttentionOptions(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	opts := validDefaults().Dashboard.AttentionOptions(now)

	assert.Equal(t, now, opts.Now)
	assert.Equal(t, 50, opts.SubmissionUrgency)
	assert.Equal(t, 100, opts.StaleUrgency)
	assert.Equal(t, 999, opts.UndatedUrgency)
	assert.Equal(t, 3, opts.StaleLimit)
}

func TestStoreRetryConfig(t *testing.T) {
	rc := StoreConfig{RetryAttempts: 5, RetryBackoffMs: 50}.RetryConfig()
	assert.Equal(t, 5, rc.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, rc.InitialBackoff)

	def := StoreConfig{}.RetryConfig()
	assert.Equal(t, 3, def.MaxAttempts)
}
