package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/practice-dashboard/internal/attention"
	"github.com/sells-group/practice-dashboard/internal/resilience"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
	// RetryAttempts bounds reads of one record set, first try included.
	RetryAttempts  int `yaml:"retry_attempts" mapstructure:"retry_attempts"`
	RetryBackoffMs int `yaml:"retry_backoff_ms" mapstructure:"retry_backoff_ms"`
}

// RetryConfig converts the store retry settings.
func (s StoreConfig) RetryConfig() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	if s.RetryAttempts > 0 {
		cfg.MaxAttempts = s.RetryAttempts
	}
	if s.RetryBackoffMs > 0 {
		cfg.InitialBackoff = time.Duration(s.RetryBackoffMs) * time.Millisecond
	}
	return cfg
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DashboardConfig tunes the dashboard views.
type DashboardConfig struct {
	EcosystemID       string `yaml:"ecosystem_id" mapstructure:"ecosystem_id"`
	StaleAfterDays    int    `yaml:"stale_after_days" mapstructure:"stale_after_days"`
	StaleLimit        int    `yaml:"stale_limit" mapstructure:"stale_limit"`
	SubmissionUrgency int    `yaml:"submission_urgency" mapstructure:"submission_urgency"`
	StaleUrgency      int    `yaml:"stale_urgency" mapstructure:"stale_urgency"`
	UndatedUrgency    int    `yaml:"undated_urgency" mapstructure:"undated_urgency"`
}

// AttentionOptions builds queue options anchored at now.
func (d DashboardConfig) AttentionOptions(now time.Time) attention.Options {
	return attention.Options{
		Now:               now,
		SubmissionUrgency: d.SubmissionUrgency,
		StaleUrgency:      d.StaleUrgency,
		UndatedUrgency:    d.UndatedUrgency,
		StaleLimit:        d.StaleLimit,
	}
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("store.retry_attempts", 3)
	v.SetDefault("store.retry_backoff_ms", 200)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit_rps", 20)
	v.SetDefault("server.rate_limit_burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("dashboard.ecosystem_id", "default")
	v.SetDefault("dashboard.stale_after_days", 90)
	v.SetDefault("dashboard.stale_limit", attention.DefaultStaleLimit)
	v.SetDefault("dashboard.submission_urgency", attention.DefaultSubmissionUrgency)
	v.SetDefault("dashboard.stale_urgency", attention.DefaultStaleUrgency)
	v.SetDefault("dashboard.undated_urgency", attention.DefaultUndatedUrgency)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	var problems []string

	switch c.Store.Driver {
	case "postgres":
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required for postgres")
		}
	case "sqlite":
	default:
		problems = append(problems, "store.driver must be postgres or sqlite")
	}

	if strings.TrimSpace(c.Dashboard.EcosystemID) == "" {
		problems = append(problems, "dashboard.ecosystem_id is required")
	}
	if c.Dashboard.StaleLimit <= 0 {
		problems = append(problems, "dashboard.stale_limit must be > 0")
	}
	if c.Dashboard.StaleAfterDays <= 0 {
		problems = append(problems, "dashboard.stale_after_days must be > 0")
	}
	if c.Dashboard.SubmissionUrgency >= c.Dashboard.StaleUrgency {
		problems = append(problems, "dashboard.submission_urgency must be lower than dashboard.stale_urgency")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ValidateServe adds the HTTP server checks on top of Validate.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return eris.Errorf("config: invalid: server.port must be > 0 and <= 65535, got %d", c.Server.Port)
	}
	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst <= 0 {
		return eris.New("config: invalid: server rate limit must be positive")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
