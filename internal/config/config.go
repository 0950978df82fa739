package config

import "time"

// ReporterConfig is the root configuration for the report service.
type ReporterConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Brand    BrandConfig    `yaml:"brand"`
	Database DatabaseConfig `yaml:"database"`
	Report   ReportConfig   `yaml:"report"`
	Health   HealthConfig   `yaml:"health"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	PublicURL       string        `yaml:"public_url"` // External base URL, used as the session token issuer
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AuthConfig holds the single operator account and session settings.
type AuthConfig struct {
	LoginEmail    string        `yaml:"login_email"`
	LoginPassword string        `yaml:"login_password"`
	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	CookieName    string        `yaml:"cookie_name"`
}

// BrandConfig holds display constants served to the UI.
type BrandConfig struct {
	Name      string `yaml:"name"`
	Primary   string `yaml:"primary_hex"`
	Secondary string `yaml:"secondary_hex"`
	Light     string `yaml:"light_hex"`
	Dark      string `yaml:"dark_hex"`
}

// DatabaseConfig holds both external databases.
// Poktpool stores verification requests, Waxtrax stores observed network transactions.
type DatabaseConfig struct {
	Poktpool DBConfig `yaml:"poktpool"`
	Waxtrax  DBConfig `yaml:"waxtrax"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	Name           string        `yaml:"name"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	SSLMode        string        `yaml:"ssl_mode"`
	MaxConns       int           `yaml:"max_conns"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// ReportConfig controls how reports are computed.
type ReportConfig struct {
	NetworkID         int  `yaml:"network_id"`
	ConvertMicroUnits bool `yaml:"convert_micro_units"`
}

// HealthConfig controls the background connectivity monitor.
type HealthConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	PingInterval time.Duration `yaml:"ping_interval"` // WebSocket keepalive for /health/stream
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"` // "text" or "json"
	IncludeCaller bool   `yaml:"include_caller"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}
