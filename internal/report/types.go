package report

import "github.com/rickgao/verf-report/internal/model"

// Source names, used in logs, metrics and the JSON response.
const (
	SourcePoktpool = "poktpool"
	SourceWaxtrax  = "waxtrax"
)

// Display names, used in client-facing error messages and the health payload.
const (
	NamePoktpool = "Poktpooldb"
	NameWaxtrax  = "Waxtrax"
)

// SourceName returns the display name for a source key.
func SourceName(source string) string {
	switch source {
	case SourcePoktpool:
		return NamePoktpool
	case SourceWaxtrax:
		return NameWaxtrax
	default:
		return source
	}
}

// Lookup is the settled outcome of one database lookup.
// Data is nil when the lookup failed or matched no row; Error is nil unless it failed.
type Lookup[T any] struct {
	Data      *T      `json:"data"`
	Error     *string `json:"error"`
	LatencyMs int64   `json:"latency"`
}

// Found reports whether the lookup produced a record.
func (l Lookup[T]) Found() bool {
	return l.Data != nil
}

// Display holds operator-facing renderings of the amounts, DisplayDecimals wide.
// Fields are empty when the underlying record is missing.
type Display struct {
	Requested  string `json:"requested,omitempty"`
	Sent       string `json:"sent,omitempty"`
	Difference string `json:"difference"`
}

// Result is a complete report for one wallet / transaction pair.
type Result struct {
	Success  bool                             `json:"success"`
	Poktpool Lookup[model.VerificationRecord] `json:"poktpool"`
	Waxtrax  Lookup[model.TransactionRecord]  `json:"waxtrax"`
	Summary  model.Summary                    `json:"summary"`
	Display  Display                          `json:"display"`
}
