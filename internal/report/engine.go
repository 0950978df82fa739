// Package report builds payment verification reports by comparing the amount a wallet
// was asked to send (Poktpool) with the amount a network transaction actually moved
// (Waxtrax).
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/verf-report/internal/amount"
	"github.com/rickgao/verf-report/internal/database"
	"github.com/rickgao/verf-report/internal/model"
)

// Observer receives per-query and per-report measurements.
type Observer interface {
	ObserveQuery(source string, latencyMs int64, ok bool)
	ObserveReport(status model.Status)
}

type nopObserver struct{}

func (nopObserver) ObserveQuery(string, int64, bool) {}
func (nopObserver) ObserveReport(model.Status) {}

// Config holds report settings.
type Config struct {
	NetworkID         int  // Network the verification and transaction must belong to (default: 2)
	ConvertMicroUnits bool // Treat stored amounts as micro units
}

// Engine runs both lookups for a report and reconciles them.
type Engine struct {
	cfg           Config
	verifications database.Querier
	transactions  database.Querier
	observer      Observer
	logger        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithObserver sets the measurement sink.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// NewEngine creates an Engine reading verifications from one database and
// transactions from the other.
func NewEngine(cfg Config, verifications, transactions database.Querier, opts ...Option) *Engine {
	e := &Engine{
		cfg:           cfg,
		verifications: verifications,
		transactions:  transactions,
		observer:      nopObserver{},
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Normalize trims and lower-cases an identifier before it is used as a query parameter.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Generate looks up the verification for walletAddress and the transaction for
// networkTxnHash in parallel and compares them.
//
// Both lookups always settle: a failure in one never cancels or hides the other.
// Callers must reject empty input before calling.
func (e *Engine) Generate(ctx context.Context, walletAddress, networkTxnHash string) Result {
	wallet := Normalize(walletAddress)
	hash := Normalize(networkTxnHash)

	var (
		pokt Lookup[model.VerificationRecord]
		wax  Lookup[model.TransactionRecord]
	)

	// Neither branch returns an error; failures are captured in the lookups so Wait
	// always waits for both.
	var g errgroup.Group
	g.Go(func() error {
		pokt = e.lookupVerification(ctx, wallet)
		return nil
	})
	g.Go(func() error {
		wax = e.lookupTransaction(ctx, hash)
		return nil
	})
	_ = g.Wait()

	result := Result{
		Success:  true,
		Poktpool: pokt,
		Waxtrax:  wax,
		Summary:  e.summarize(pokt, wax),
	}
	result.Display = e.display(result)

	e.observer.ObserveReport(result.Summary.Status)
	e.logger.Info("report generated",
		"wallet_address", wallet,
		"network_txn_hash", hash,
		"status", result.Summary.Status,
		"difference", result.Summary.Difference,
		"poktpool_latency_ms", pokt.LatencyMs,
		"waxtrax_latency_ms", wax.LatencyMs,
	)

	return result
}

func (e *Engine) lookupVerification(ctx context.Context, wallet string) Lookup[model.VerificationRecord] {
	res := database.ExecuteQuery(ctx, e.verifications, verificationQuery, wallet, e.cfg.NetworkID)
	e.observer.ObserveQuery(SourcePoktpool, res.LatencyMs, res.Success)
	return settleLookup(e, SourcePoktpool, res, model.VerificationFromRow)
}

func (e *Engine) lookupTransaction(ctx context.Context, hash string) Lookup[model.TransactionRecord] {
	res := database.ExecuteQuery(ctx, e.transactions, transactionQuery, hash, e.cfg.NetworkID)
	e.observer.ObserveQuery(SourceWaxtrax, res.LatencyMs, res.Success)
	return settleLookup(e, SourceWaxtrax, res, model.TransactionFromRow)
}

// settleLookup turns a QueryResult into a Lookup, decoding at most the first row.
func settleLookup[T any](e *Engine, source string, res database.QueryResult, decode func(map[string]any) (T, error)) Lookup[T] {
	if !res.Success {
		// A failed lookup reports zero latency; the measured value goes to logs and metrics.
		msg := fmt.Sprintf("%s query failed: %s", SourceName(source), res.Error)
		e.logger.Warn("lookup failed", "source", source, "error", res.Error, "latency_ms", res.LatencyMs)
		return Lookup[T]{Error: &msg}
	}

	out := Lookup[T]{LatencyMs: res.LatencyMs}

	row := res.First()
	if row == nil {
		e.logger.Debug("lookup matched no row", "source", source)
		return out
	}

	rec, err := decode(row)
	if err != nil {
		msg := fmt.Sprintf("%s returned an unreadable row: %v", SourceName(source), err)
		e.logger.Warn("lookup decode failed", "source", source, "error", err)
		out.Error = &msg
		return out
	}

	out.Data = &rec
	return out
}

// summarize computes the difference. Without both records the status is error and
// the difference is zero, whatever the other side returned.
func (e *Engine) summarize(pokt Lookup[model.VerificationRecord], wax Lookup[model.TransactionRecord]) model.Summary {
	if !pokt.Found() || !wax.Found() {
		return model.Summary{Difference: 0, Status: model.StatusError}
	}

	diff := amount.Difference(wax.Data.Amount, pokt.Data.VerfAmount, e.cfg.ConvertMicroUnits)
	status := model.StatusSuccess
	if diff < 0 {
		status = model.StatusInsufficient
	}
	return model.Summary{Difference: diff, Status: status}
}

func (e *Engine) display(r Result) Display {
	d := Display{
		// Difference is already scaled.
		Difference: amount.Format(r.Summary.Difference, false),
	}
	if r.Poktpool.Found() {
		d.Requested = amount.Format(r.Poktpool.Data.VerfAmount, e.cfg.ConvertMicroUnits)
	}
	if r.Waxtrax.Found() {
		d.Sent = amount.Format(r.Waxtrax.Data.Amount, e.cfg.ConvertMicroUnits)
	}
	return d
}
