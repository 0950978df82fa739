package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Querier runs a parameterized query. *pgxpool.Pool satisfies it, acquiring and
// releasing one pooled connection per call.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// QueryResult is the outcome of one ExecuteQuery call. Exactly one of Rows or Error
// is meaningful, selected by Success. LatencyMs is always set.
type QueryResult struct {
	Success   bool
	Rows      []map[string]any
	Error     string
	LatencyMs int64
}

// ExecuteQuery runs sql with positional ($1, $2, ...) args and returns every row in the
// order the database produced them. Failures of any kind, including a panic inside the
// driver, are returned as an unsuccessful QueryResult; nothing propagates to the caller.
// There is no retry.
func ExecuteQuery(ctx context.Context, q Querier, sql string, args ...any) (result QueryResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = QueryResult{
				Success:   false,
				Error:     fmt.Sprintf("query panicked: %v", r),
				LatencyMs: elapsedMs(start),
			}
		}
	}()

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return QueryResult{Success: false, Error: err.Error(), LatencyMs: elapsedMs(start)}
	}

	// CollectRows closes rows and surfaces errors raised while streaming.
	collected, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return QueryResult{Success: false, Error: err.Error(), LatencyMs: elapsedMs(start)}
	}

	return QueryResult{Success: true, Rows: collected, LatencyMs: elapsedMs(start)}
}

// First returns the first row, or nil when the query returned none.
func (r QueryResult) First() map[string]any {
	if len(r.Rows) == 0 {
		return nil
	}
	return r.Rows[0]
}

func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
