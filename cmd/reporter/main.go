package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf"

	"github.com/rickgao/verf-report/internal/auth"
	"github.com/rickgao/verf-report/internal/config"
	"github.com/rickgao/verf-report/internal/database"
	"github.com/rickgao/verf-report/internal/health"
	"github.com/rickgao/verf-report/internal/logging"
	"github.com/rickgao/verf-report/internal/metrics"
	"github.com/rickgao/verf-report/internal/monitor"
	"github.com/rickgao/verf-report/internal/report"
	"github.com/rickgao/verf-report/internal/server"
	"github.com/rickgao/verf-report/internal/version"
)

const envPrefix = "REPORTER"

func main() {
	if err := run(); err != nil {
		slog.Error("reporter exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var flags struct {
		conf.Version
		Config        string `conf:"default:configs/reporter.yaml,help:path to YAML config file"`
		EnvFile       string `conf:"default:.env,help:optional dotenv file loaded before the config"`
		AllowFallback bool   `conf:"default:false,help:serve built-in defaults when the config is invalid"`
	}
	flags.Version.SVN = version.String()
	flags.Version.Desc = "wallet verification report service"

	if err := conf.Parse(os.Args[1:], envPrefix, &flags); err != nil {
		switch {
		case errors.Is(err, conf.ErrHelpWanted):
			usage, err := conf.Usage(envPrefix, &flags)
			if err != nil {
				return fmt.Errorf("generating usage: %w", err)
			}
			fmt.Println(usage)
			return nil
		case errors.Is(err, conf.ErrVersionWanted):
			v, err := conf.VersionString(envPrefix, &flags)
			if err != nil {
				return fmt.Errorf("generating version: %w", err)
			}
			fmt.Println(v)
			return nil
		}
		return fmt.Errorf("parsing flags: %w", err)
	}

	if err := config.LoadEnvFile(flags.EnvFile); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}

	cfg, cfgErr := loadConfig(flags.Config, flags.AllowFallback)
	if cfg == nil {
		return cfgErr
	}

	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	logger.Info("starting reporter",
		"version", version.Version,
		"commit", version.Commit,
		"config", flags.Config,
	)
	if cfgErr != nil {
		logger.Warn("configuration invalid, serving built-in fallback defaults", "error", cfgErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Pools connect lazily so a down database shows up on /health instead of
	// preventing startup.
	pools, err := database.NewPools(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("creating database pools: %w", err)
	}
	defer pools.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := pools.Ping(pingCtx); err != nil {
		logger.Warn("database not reachable at startup", "error", err)
	} else {
		logger.Info("databases connected")
	}
	pingCancel()

	var m *metrics.Metrics
	var observer report.Observer
	var healthObserver monitor.Observer
	if cfg.Metrics.Enabled {
		m = metrics.New()
		observer = m
		healthObserver = m
	}

	engineOpts := []report.Option{report.WithLogger(logger)}
	if observer != nil {
		engineOpts = append(engineOpts, report.WithObserver(observer))
	}
	engine := report.NewEngine(report.Config{
		NetworkID:         cfg.Report.NetworkID,
		ConvertMicroUnits: cfg.Report.ConvertMicroUnits,
	}, pools.Poktpool, pools.Waxtrax, engineOpts...)

	checker := health.NewChecker([]health.Target{
		{Key: report.SourcePoktpool, Name: report.NamePoktpool, Prober: database.PoolProbe{Pool: pools.Poktpool}},
		{Key: report.SourceWaxtrax, Name: report.NameWaxtrax, Prober: database.PoolProbe{Pool: pools.Waxtrax}},
	}, logger)

	mon := monitor.New(monitor.Config{Interval: cfg.Health.PollInterval}, checker, healthObserver, logger)

	creds, err := auth.NewCredentials(
		cfg.Auth.LoginEmail,
		cfg.Auth.LoginPassword,
		cfg.Auth.SessionSecret,
		cfg.Server.PublicURL,
		cfg.Auth.SessionTTL,
	)
	if err != nil {
		return fmt.Errorf("creating credentials: %w", err)
	}

	deps := server.Deps{
		Reports:     engine,
		Health:      mon,
		Auth:        creds,
		Brand:       cfg.Brand,
		ConvertUnit: cfg.Report.ConvertMicroUnits,
	}
	if m != nil {
		deps.Metrics = m.Handler()
		deps.MetricsPath = cfg.Metrics.Path
	}

	srv := server.New(cfg.Server, server.Options{
		CookieName:   cfg.Auth.CookieName,
		SecureCookie: isHTTPS(cfg.Server.PublicURL),
		PingInterval: cfg.Health.PingInterval,
	}, deps, logger)

	if err := mon.Start(ctx); err != nil {
		return fmt.Errorf("starting health monitor: %w", err)
	}
	if err := srv.Start(); err != nil {
		return fmt.Errorf("starting http server: %w", err)
	}

	logger.Info("reporter running",
		"addr", cfg.Server.Addr,
		"public_url", cfg.Server.PublicURL,
		"network_id", cfg.Report.NetworkID,
		"convert_micro_units", cfg.Report.ConvertMicroUnits,
	)

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", "error", err)
	}
	if err := mon.Stop(shutdownCtx); err != nil {
		logger.Warn("health monitor shutdown", "error", err)
	}

	logger.Info("reporter stopped")
	return nil
}

// loadConfig fails closed unless allowFallback is set, in which case it returns
// the fallback config together with the error that triggered it.
func loadConfig(path string, allowFallback bool) (*config.ReporterConfig, error) {
	if !allowFallback {
		cfg, err := config.LoadAndValidate(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	return config.LoadOrFallback(path)
}

func isHTTPS(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme == "https"
}
