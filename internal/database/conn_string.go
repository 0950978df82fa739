package database

import (
	"fmt"
	"net/url"

	"github.com/rickgao/verf-report/internal/config"
)

// ApplicationName is reported to PostgreSQL so DBAs can spot our sessions.
const ApplicationName = "verf-report"

// BuildConnString builds a PostgreSQL connection string from config.
func BuildConnString(cfg config.DBConfig) string {
	// URL-encode credentials to handle special characters
	escapedUser := url.QueryEscape(cfg.User)
	escapedPassword := url.QueryEscape(cfg.Password)

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&application_name=%s",
		escapedUser,
		escapedPassword,
		cfg.Host,
		cfg.Port,
		url.PathEscape(cfg.Name),
		sslMode,
		ApplicationName,
	)
}
