package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

const (
	envProduction        = "production"
	insecureSigningKey   = "defaultsecretkey"
	defaultCookieName    = "tappy_session"
	defaultPanelBaseURL  = "http://localhost:8080"
	defaultPanelTimeout  = 10 * time.Second
	defaultSessionExpiry = 24
)

// DBConfig holds database configuration
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Port string
	Env  string
}

// SessionConfig holds the session token and cookie settings
type SessionConfig struct {
	SigningKey      string
	ExpirationHours int
	CookieName      string
}

// TTL is the lifetime of a token and of its cookie
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.ExpirationHours) * time.Hour
}

// PanelConfig configures the integration status panel client
type PanelConfig struct {
	BaseURL  string
	Token    string
	AgenteID string
	Timeout  time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	DB          DBConfig
	Server      ServerConfig
	Session     SessionConfig
	Panel       PanelConfig
	Log         LogConfig
	Metrics     MetricsConfig
}

// IsProduction reports whether APP_ENV is production
func (c *Config) IsProduction() bool {
	return c.Server.Env == envProduction
}

// Load reads the .env file when present, then the environment. Malformed
// numbers and durations are reported instead of silently defaulted.
func Load(serviceName string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	var env envReader
	config := &Config{
		ServiceName: serviceName,
		DB: DBConfig{
			Host:            env.str("DB_HOST", "localhost"),
			Port:            env.str("DB_PORT", "5432"),
			User:            env.str("DB_USER", "postgres"),
			Password:        env.str("DB_PASSWORD", "password"),
			DBName:          env.str("DB_NAME", "tappy_imob"),
			SSLMode:         env.str("DB_SSL_MODE", "disable"),
			MaxIdleConns:    env.integer("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    env.integer("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: env.duration("DB_CONN_MAX_LIFETIME", time.Hour),
			LogLevel:        env.gormLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Server: ServerConfig{
			Port: env.str("SERVER_PORT", "8080"),
			Env:  env.str("APP_ENV", "development"),
		},
		Session: SessionConfig{
			SigningKey:      env.str("JWT_SIGNING_KEY", insecureSigningKey),
			ExpirationHours: env.integer("JWT_EXPIRATION_HOURS", defaultSessionExpiry),
			CookieName:      env.str("SESSION_COOKIE_NAME", defaultCookieName),
		},
		Panel: PanelConfig{
			BaseURL:  env.str("PANEL_BASE_URL", defaultPanelBaseURL),
			Token:    env.str("PANEL_TOKEN", ""),
			AgenteID: env.str("PANEL_AGENTE_ID", ""),
			Timeout:  env.duration("PANEL_TIMEOUT", defaultPanelTimeout),
		},
		Log: LogConfig{
			Level: env.str("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: env.str("METRICS_PREFIX", serviceName),
		},
	}

	if err := errors.Join(append(env.errs, config.Validate())...); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the values Load cannot default its way out of
func (c *Config) Validate() error {
	var errs []error
	if c.IsProduction() && c.Session.SigningKey == insecureSigningKey {
		errs = append(errs, errors.New("JWT_SIGNING_KEY must be set in production"))
	}
	if c.Session.ExpirationHours <= 0 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRATION_HOURS must be positive, got %d", c.Session.ExpirationHours))
	}
	if c.Panel.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("PANEL_TIMEOUT must be positive, got %s", c.Panel.Timeout))
	}
	if u, err := url.Parse(c.Panel.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("PANEL_BASE_URL must be an absolute URL, got %q", c.Panel.BaseURL))
	}
	return errors.Join(errs...)
}

// LogConfig returns the configuration as zap fields, without secrets
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("db_host", c.DB.Host),
		zap.String("db_name", c.DB.DBName),
		zap.String("server_port", c.Server.Port),
		zap.String("session_cookie", c.Session.CookieName),
		zap.Duration("session_ttl", c.Session.TTL()),
		zap.String("panel_base_url", c.Panel.BaseURL),
		zap.Duration("panel_timeout", c.Panel.Timeout),
		zap.Bool("panel_token_set", c.Panel.Token != ""),
	}
}

// envReader looks up variables and keeps every parse failure
type envReader struct {
	errs []error
}

func (r *envReader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func (r *envReader) integer(key string, def int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: invalid integer %q", key, raw))
		return def
	}
	return v
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return def
	}
	return v
}

func (r *envReader) gormLevel(key string, def logger.LogLevel) logger.LogLevel {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	switch raw {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	}
	r.errs = append(r.errs, fmt.Errorf("%s: unknown level %q", key, raw))
	return def
}
