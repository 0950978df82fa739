package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultServerAddr      = ":3006"
	DefaultPublicURL       = "http://localhost:3006"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultSessionTTL      = 24 * time.Hour
	DefaultCookieName      = "verf_session"
	DefaultBrandName       = "PoktPool"
	DefaultBrandPrimary    = "#1F4DD9"
	DefaultBrandSecondary  = "#0A1633"
	DefaultBrandLight      = "#EAF0FF"
	DefaultBrandDark       = "#040915"
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 20
	DefaultIdleTimeout     = 30 * time.Second
	DefaultConnectTimeout  = 2 * time.Second
	DefaultNetworkID       = 2
	DefaultHealthInterval  = 30 * time.Second
	DefaultHealthPing      = 15 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultMetricsPath     = "/metrics"
)

func (c *ReporterConfig) applyDefaults() {
	// Server defaults
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.PublicURL == "" {
		c.Server.PublicURL = DefaultPublicURL
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Auth defaults
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = DefaultSessionTTL
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = DefaultCookieName
	}

	// Brand defaults
	if c.Brand.Name == "" {
		c.Brand.Name = DefaultBrandName
	}
	if c.Brand.Primary == "" {
		c.Brand.Primary = DefaultBrandPrimary
	}
	if c.Brand.Secondary == "" {
		c.Brand.Secondary = DefaultBrandSecondary
	}
	if c.Brand.Light == "" {
		c.Brand.Light = DefaultBrandLight
	}
	if c.Brand.Dark == "" {
		c.Brand.Dark = DefaultBrandDark
	}

	// Database defaults
	applyDBDefaults(&c.Database.Poktpool)
	applyDBDefaults(&c.Database.Waxtrax)

	// Report defaults
	if c.Report.NetworkID == 0 {
		c.Report.NetworkID = DefaultNetworkID
	}

	// Health defaults
	if c.Health.PollInterval == 0 {
		c.Health.PollInterval = DefaultHealthInterval
	}
	if c.Health.PingInterval == 0 {
		c.Health.PingInterval = DefaultHealthPing
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	// Metrics defaults
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.IdleTimeout == 0 {
		db.IdleTimeout = DefaultIdleTimeout
	}
	if db.ConnectTimeout == 0 {
		db.ConnectTimeout = DefaultConnectTimeout
	}
}

// Fallback returns the hard-coded configuration used when the real one cannot be
// loaded. Every credential in it is a build-time placeholder.
func Fallback() *ReporterConfig {
	cfg := &ReporterConfig{
		Auth: AuthConfig{
			LoginEmail:    "admin@poktpool.com",
			LoginPassword: "change_me",
			SessionSecret: "build-time-secret",
		},
		Server: ServerConfig{
			PublicURL: "http://localhost:3006",
		},
		Database: DatabaseConfig{
			Poktpool: DBConfig{
				Host:     "localhost",
				Name:     "poktpooldb",
				User:     "postgres_chadmin",
				Password: "placeholder",
			},
			Waxtrax: DBConfig{
				Host:     "localhost",
				Name:     "waxtrax",
				User:     "vultradmin",
				Password: "placeholder",
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}
