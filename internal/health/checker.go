// Package health probes database connectivity.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/verf-report/internal/model"
)

// Prober checks that a dependency can serve a trivial request.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProberFunc is a function adapter for Prober.
type ProberFunc func(ctx context.Context) error

func (f ProberFunc) Probe(ctx context.Context) error {
	return f(ctx)
}

// Target is one dependency to probe.
type Target struct {
	Key    string // Stable identifier (e.g. "poktpool")
	Name   string // Display name (e.g. "Poktpooldb")
	Prober Prober
}

// TargetStatus is the probe outcome for one target.
type TargetStatus struct {
	Key  string
	Name string
	model.DatabaseStatus
}

// Report is the combined outcome of one Check.
type Report struct {
	CheckedAt time.Time
	Targets   []TargetStatus // Same order as the checker's targets
}

// Healthy reports whether every target is connected.
func (r Report) Healthy() bool {
	for _, t := range r.Targets {
		if !t.Connected {
			return false
		}
	}
	return true
}

// Get returns the status for key.
func (r Report) Get(key string) (TargetStatus, bool) {
	for _, t := range r.Targets {
		if t.Key == key {
			return t, true
		}
	}
	return TargetStatus{}, false
}

// Checker probes a fixed set of targets.
type Checker struct {
	targets []Target
	logger  *slog.Logger
	now     func() time.Time
}

// NewChecker creates a Checker for targets.
func NewChecker(targets []Target, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		targets: targets,
		logger:  logger,
		now:     time.Now,
	}
}

// Check probes every target concurrently and returns once all of them have settled.
// A failing or panicking probe never affects the others.
func (c *Checker) Check(ctx context.Context) Report {
	statuses := make([]TargetStatus, len(c.targets))

	var g errgroup.Group
	for i, target := range c.targets {
		g.Go(func() error {
			statuses[i] = c.probe(ctx, target)
			return nil
		})
	}
	_ = g.Wait()

	return Report{
		CheckedAt: c.now(),
		Targets:   statuses,
	}
}

func (c *Checker) probe(ctx context.Context, target Target) TargetStatus {
	status := TargetStatus{
		Key:  target.Key,
		Name: target.Name,
	}
	status.LastChecked = c.now()

	start := time.Now()
	err := safeProbe(ctx, target.Prober)
	if err != nil {
		status.Connected = false
		status.LatencyMs = 0
		status.Error = err.Error()
		c.logger.Warn("database probe failed", "target", target.Key, "error", err)
		return status
	}

	status.Connected = true
	status.LatencyMs = time.Since(start).Milliseconds()
	c.logger.Debug("database probe ok", "target", target.Key, "latency_ms", status.LatencyMs)
	return status
}

func safeProbe(ctx context.Context, p Prober) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()
	return p.Probe(ctx)
}
