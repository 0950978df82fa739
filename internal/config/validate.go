package config

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks that all required fields are set and values are valid.
func (c *ReporterConfig) Validate() error {
	if _, err := mail.ParseAddress(c.Auth.LoginEmail); err != nil {
		return fmt.Errorf("auth.login_email must be a valid email address, got %q", c.Auth.LoginEmail)
	}
	if c.Auth.LoginPassword == "" {
		return errors.New("auth.login_password is required")
	}
	if c.Auth.SessionSecret == "" {
		return errors.New("auth.session_secret is required")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("auth.session_ttl must be positive")
	}

	u, err := url.Parse(c.Server.PublicURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.public_url must be an absolute URL, got %q", c.Server.PublicURL)
	}

	colors := []struct{ field, value string }{
		{"brand.primary_hex", c.Brand.Primary},
		{"brand.secondary_hex", c.Brand.Secondary},
		{"brand.light_hex", c.Brand.Light},
		{"brand.dark_hex", c.Brand.Dark},
	}
	for _, col := range colors {
		if !hexColor.MatchString(col.value) {
			return fmt.Errorf("%s must be a #RRGGBB color, got %q", col.field, col.value)
		}
	}

	if err := c.Database.Poktpool.validate("database.poktpool"); err != nil {
		return err
	}
	if err := c.Database.Waxtrax.validate("database.waxtrax"); err != nil {
		return err
	}

	if c.Report.NetworkID < 1 {
		return errors.New("report.network_id must be >= 1")
	}

	if c.Health.PollInterval <= 0 {
		return errors.New("health.poll_interval must be positive")
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Port < 1 || db.Port > 65535 {
		return fmt.Errorf("%s.port must be between 1 and 65535, got %d", prefix, db.Port)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.ConnectTimeout < 0 {
		return fmt.Errorf("%s.connect_timeout must not be negative", prefix)
	}
	return nil
}
