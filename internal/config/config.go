package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`
	RedisURL    string `mapstructure:"REDIS_URL"`

	SessionStore          string `mapstructure:"SESSION_STORE"`
	SessionDir            string `mapstructure:"SESSION_DIR"`
	SessionTimeoutMinutes int    `mapstructure:"SESSION_TIMEOUT_MINUTES"`
	SessionWarningMinutes int    `mapstructure:"SESSION_WARNING_MINUTES"`
	SessionCheckSeconds   int    `mapstructure:"SESSION_CHECK_SECONDS"`
	TokenSecret           string `mapstructure:"TOKEN_SECRET"`

	AuditSinkURL      string `mapstructure:"AUDIT_SINK_URL"`
	AuditQueueSize    int    `mapstructure:"AUDIT_QUEUE_SIZE"`
	AuditBatchSize    int    `mapstructure:"AUDIT_BATCH_SIZE"`
	AuditFlushSeconds int    `mapstructure:"AUDIT_FLUSH_SECONDS"`

	RemoteSearchURL string   `mapstructure:"REMOTE_SEARCH_URL"`
	MigrationsDir   string   `mapstructure:"MIGRATIONS_DIR"`
	CORSOrigins     []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("SESSION_STORE", "file")
	v.SetDefault("SESSION_DIR", ".")
	v.SetDefault("SESSION_TIMEOUT_MINUTES", 30)
	v.SetDefault("SESSION_WARNING_MINUTES", 5)
	v.SetDefault("SESSION_CHECK_SECONDS", 60)
	v.SetDefault("AUDIT_QUEUE_SIZE", 256)
	v.SetDefault("AUDIT_BATCH_SIZE", 10)
	v.SetDefault("AUDIT_FLUSH_SECONDS", 60)
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "ENV", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
		"REDIS_URL", "SESSION_STORE", "SESSION_DIR",
		"SESSION_TIMEOUT_MINUTES", "SESSION_WARNING_MINUTES", "SESSION_CHECK_SECONDS",
		"TOKEN_SECRET", "AUDIT_SINK_URL", "AUDIT_QUEUE_SIZE",
		"AUDIT_BATCH_SIZE", "AUDIT_FLUSH_SECONDS",
		"REMOTE_SEARCH_URL", "MIGRATIONS_DIR", "CORS_ORIGINS",
	} {
		v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Production
// requires an explicit token signing secret; development falls back to a
// generated one.
func (c *Config) Validate() error {
	switch c.SessionStore {
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("SESSION_STORE must be \"file\", \"redis\", or \"memory\", got %q", c.SessionStore)
	}
	if c.SessionStore == "redis" && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when SESSION_STORE is \"redis\"")
	}
	if c.SessionTimeoutMinutes <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT_MINUTES must be positive, got %d", c.SessionTimeoutMinutes)
	}
	if c.SessionWarningMinutes <= 0 || c.SessionWarningMinutes >= c.SessionTimeoutMinutes {
		return fmt.Errorf("SESSION_WARNING_MINUTES must be positive and below the session timeout")
	}
	if c.IsProduction() && c.TokenSecret == "" {
		return fmt.Errorf("TOKEN_SECRET is required in production")
	}
	if c.IsProduction() && len(c.TokenSecret) < 32 {
		return fmt.Errorf("TOKEN_SECRET must be at least 32 characters in production")
	}
	return nil
}
