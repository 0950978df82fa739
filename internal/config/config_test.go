package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validYAML = `
server:
  addr: ":8080"
  public_url: https://report.example.com
auth:
  login_email: ops@example.com
  login_password: hunter2
  session_secret: s3cret
report:
  convert_micro_units: true
database:
  poktpool:
    host: pokt.internal
    port: 5433
    name: poktpooldb
    user: reader
    password: testpass
  waxtrax:
    host: wax.internal
    name: waxtrax
    user: reader
    password: testpass
`

func TestLoad(t *testing.T) {
	path := writeTempFile(t, "config.yaml", validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Database.Poktpool.Host != "pokt.internal" {
		t.Errorf("Database.Poktpool.Host = %q, want %q", cfg.Database.Poktpool.Host, "pokt.internal")
	}
	if cfg.Database.Poktpool.Port != 5433 {
		t.Errorf("Database.Poktpool.Port = %d, want %d", cfg.Database.Poktpool.Port, 5433)
	}
	if !cfg.Report.ConvertMicroUnits {
		t.Error("Report.ConvertMicroUnits = false, want true")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_WAXTRAX_PASSWORD", "secret123")

	yaml := `
database:
  waxtrax:
    host: localhost
    name: waxtrax
    user: reader
    password: ${TEST_WAXTRAX_PASSWORD}
`
	path := writeTempFile(t, "config.yaml", yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Waxtrax.Password != "secret123" {
		t.Errorf("Database.Waxtrax.Password = %q, want %q", cfg.Database.Waxtrax.Password, "secret123")
	}
}

func TestLoadEnvFile(t *testing.T) {
	const key = "VERF_REPORT_TEST_ENVFILE_HOST"
	t.Cleanup(func() { os.Unsetenv(key) })

	envPath := writeTempFile(t, ".env", key+"=from-dotenv\n")
	if err := LoadEnvFile(envPath); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}

	path := writeTempFile(t, "config.yaml", "database:\n  poktpool:\n    host: ${"+key+"}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Poktpool.Host != "from-dotenv" {
		t.Errorf("Database.Poktpool.Host = %q, want %q", cfg.Database.Poktpool.Host, "from-dotenv")
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("LoadEnvFile(missing) = %v, want nil", err)
	}
	if err := LoadEnvFile(""); err != nil {
		t.Errorf("LoadEnvFile(\"\") = %v, want nil", err)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "config.yaml", validYAML)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Database.Waxtrax.Port != DefaultDBPort {
		t.Errorf("Database.Waxtrax.Port = %d, want default %d", cfg.Database.Waxtrax.Port, DefaultDBPort)
	}
	if cfg.Database.Waxtrax.MaxConns != 20 {
		t.Errorf("Database.Waxtrax.MaxConns = %d, want 20", cfg.Database.Waxtrax.MaxConns)
	}
	if cfg.Database.Waxtrax.IdleTimeout != 30*time.Second {
		t.Errorf("Database.Waxtrax.IdleTimeout = %v, want 30s", cfg.Database.Waxtrax.IdleTimeout)
	}
	if cfg.Database.Waxtrax.ConnectTimeout != 2*time.Second {
		t.Errorf("Database.Waxtrax.ConnectTimeout = %v, want 2s", cfg.Database.Waxtrax.ConnectTimeout)
	}
	if cfg.Report.NetworkID != 2 {
		t.Errorf("Report.NetworkID = %d, want 2", cfg.Report.NetworkID)
	}
	if cfg.Brand.Name != DefaultBrandName {
		t.Errorf("Brand.Name = %q, want default %q", cfg.Brand.Name, DefaultBrandName)
	}
	if cfg.Health.PollInterval != DefaultHealthInterval {
		t.Errorf("Health.PollInterval = %v, want default %v", cfg.Health.PollInterval, DefaultHealthInterval)
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q, want default %q", cfg.Metrics.Path, DefaultMetricsPath)
	}
}

func TestLoadAndValidate(t *testing.T) {
	path := writeTempFile(t, "config.yaml", validYAML)

	if _, err := LoadAndValidate(path); err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	bad := writeTempFile(t, "bad.yaml", "auth:\n  login_email: not-an-email\n")
	_, err := LoadAndValidate(bad)
	if err == nil {
		t.Fatal("LoadAndValidate expected error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "validate config: auth.login_email") {
		t.Errorf("error = %q, want validate config prefix", err.Error())
	}
}

func TestLoadOrFallback(t *testing.T) {
	t.Run("valid config is returned as-is", func(t *testing.T) {
		path := writeTempFile(t, "config.yaml", validYAML)
		cfg, err := LoadOrFallback(path)
		if err != nil {
			t.Fatalf("LoadOrFallback unexpected error: %v", err)
		}
		if cfg.Auth.LoginEmail != "ops@example.com" {
			t.Errorf("Auth.LoginEmail = %q, want %q", cfg.Auth.LoginEmail, "ops@example.com")
		}
	})

	t.Run("missing file falls back", func(t *testing.T) {
		cfg, err := LoadOrFallback(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil {
			t.Fatal("LoadOrFallback expected error describing the failure")
		}
		if cfg == nil {
			t.Fatal("LoadOrFallback returned nil config")
		}
		if cfg.Auth.LoginEmail != "admin@poktpool.com" {
			t.Errorf("Auth.LoginEmail = %q, want fallback", cfg.Auth.LoginEmail)
		}
		if cfg.Database.Poktpool.User != "postgres_chadmin" || cfg.Database.Waxtrax.User != "vultradmin" {
			t.Errorf("fallback database users = %q/%q", cfg.Database.Poktpool.User, cfg.Database.Waxtrax.User)
		}
		if cfg.Report.ConvertMicroUnits {
			t.Error("fallback ConvertMicroUnits = true, want false")
		}
	})
}

func TestFallbackIsValid(t *testing.T) {
	if err := Fallback().Validate(); err != nil {
		t.Errorf("Fallback().Validate() = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() ReporterConfig {
		return *Fallback()
	}

	tests := []struct {
		name    string
		mutate  func(*ReporterConfig)
		wantErr string
	}{
		{
			name:    "invalid login email",
			mutate:  func(c *ReporterConfig) { c.Auth.LoginEmail = "admin" },
			wantErr: `auth.login_email must be a valid email address, got "admin"`,
		},
		{
			name:    "missing login password",
			mutate:  func(c *ReporterConfig) { c.Auth.LoginPassword = "" },
			wantErr: "auth.login_password is required",
		},
		{
			name:    "missing session secret",
			mutate:  func(c *ReporterConfig) { c.Auth.SessionSecret = "" },
			wantErr: "auth.session_secret is required",
		},
		{
			name:    "relative public url",
			mutate:  func(c *ReporterConfig) { c.Server.PublicURL = "/report" },
			wantErr: `server.public_url must be an absolute URL, got "/report"`,
		},
		{
			name:    "bad brand color",
			mutate:  func(c *ReporterConfig) { c.Brand.Light = "EAF0FF" },
			wantErr: `brand.light_hex must be a #RRGGBB color, got "EAF0FF"`,
		},
		{
			name:    "missing poktpool host",
			mutate:  func(c *ReporterConfig) { c.Database.Poktpool.Host = "" },
			wantErr: "database.poktpool.host is required",
		},
		{
			name:    "missing waxtrax password",
			mutate:  func(c *ReporterConfig) { c.Database.Waxtrax.Password = "" },
			wantErr: "database.waxtrax.password is required",
		},
		{
			name:    "port out of range",
			mutate:  func(c *ReporterConfig) { c.Database.Waxtrax.Port = 70000 },
			wantErr: "database.waxtrax.port must be between 1 and 65535, got 70000",
		},
		{
			name:    "network id",
			mutate:  func(c *ReporterConfig) { c.Report.NetworkID = 0 },
			wantErr: "report.network_id must be >= 1",
		},
		{
			name:    "valid config",
			mutate:  func(c *ReporterConfig) {},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
