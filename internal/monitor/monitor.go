package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rickgao/verf-report/internal/health"
)

// Checker produces a health report.
type Checker interface {
	Check(ctx context.Context) health.Report
}

// Observer receives every completed report.
type Observer interface {
	ObserveHealth(r health.Report)
}

// Config holds monitor configuration.
type Config struct {
	Interval time.Duration // Check interval (default: 30s)
	Timeout  time.Duration // Per-check timeout (default: 10s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 30 * time.Second,
		Timeout:  10 * time.Second,
	}
}

// Monitor periodically runs a Checker.
type Monitor struct {
	cfg      Config
	checker  Checker
	observer Observer
	logger   *slog.Logger

	mu     sync.RWMutex
	latest health.Report
	ready  bool
	subs   map[chan health.Report]struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Monitor. observer may be nil.
func New(cfg Config, checker Checker, observer Observer, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = defaults.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	return &Monitor{
		cfg:      cfg,
		checker:  checker,
		observer: observer,
		logger:   logger,
		subs:     make(map[chan health.Report]struct{}),
	}
}

// Start begins the check loop. The first check runs immediately.
func (m *Monitor) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)

	m.wg.Add(1)
	go m.run()

	m.logger.Info("health monitor started", "interval", m.cfg.Interval)
	return nil
}

// Stop shuts down the loop and closes every subscriber channel.
func (m *Monitor) Stop(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	m.mu.Lock()
	for ch := range m.subs {
		delete(m.subs, ch)
		close(ch)
	}
	m.mu.Unlock()

	m.logger.Info("health monitor stopped")
	return nil
}

// Latest returns the most recent report. ok is false until the first check completes.
func (m *Monitor) Latest() (report health.Report, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest, m.ready
}

// Subscribe registers a receiver for future reports. The returned cancel func
// unregisters it and closes the channel; calling it more than once is safe.
func (m *Monitor) Subscribe() (<-chan health.Report, func()) {
	ch := make(chan health.Report, 1)

	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if _, ok := m.subs[ch]; ok {
				delete(m.subs, ch)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// CheckNow runs a check outside the schedule and publishes the result.
func (m *Monitor) CheckNow(ctx context.Context) health.Report {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	report := m.checker.Check(ctx)
	m.publish(report)
	return report
}

func (m *Monitor) run() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	m.tick()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.tick()
		}
	}
}

func (m *Monitor) tick() {
	report := m.CheckNow(m.ctx)
	if m.ctx.Err() != nil {
		return
	}

	level := slog.LevelDebug
	if !report.Healthy() {
		level = slog.LevelWarn
	}
	m.logger.Log(m.ctx, level, "health check complete", "healthy", report.Healthy())
}

func (m *Monitor) publish(report health.Report) {
	if m.observer != nil {
		m.observer.ObserveHealth(report)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.latest = report
	m.ready = true

	for ch := range m.subs {
		// Replace any undelivered report with the newer one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- report:
		default:
		}
	}
}
