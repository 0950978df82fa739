// Package dbtest provides in-memory stand-ins for pgx query results so code built on
// database.Querier can be tested without a PostgreSQL server.
package dbtest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is a scripted database.Querier. Zero value returns no rows.
type Querier struct {
	Columns []string
	Data    [][]any

	// Err is returned from Query. RowsErr is surfaced from Rows.Err after iteration.
	Err     error
	RowsErr error

	// Panic, when non-nil, is raised from Query.
	Panic any

	// Delay blocks Query before answering, honoring ctx.
	Delay time.Duration

	// Gate, when non-nil, blocks Query until it is closed.
	Gate <-chan struct{}

	calls atomic.Int32

	mu       sync.Mutex
	lastSQL  string
	lastArgs []any
}

// Query implements database.Querier.
func (q *Querier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.calls.Add(1)

	q.mu.Lock()
	q.lastSQL = sql
	q.lastArgs = append([]any(nil), args...)
	q.mu.Unlock()

	if q.Gate != nil {
		select {
		case <-q.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if q.Delay > 0 {
		select {
		case <-time.After(q.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if q.Panic != nil {
		panic(q.Panic)
	}
	if q.Err != nil {
		return nil, q.Err
	}

	return NewRows(q.Columns, q.Data, q.RowsErr), nil
}

// Calls returns how many times Query ran.
func (q *Querier) Calls() int {
	return int(q.calls.Load())
}

// Last returns the SQL text and arguments of the most recent call.
func (q *Querier) Last() (string, []any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lastSQL, q.lastArgs
}

// Rows is a pgx.Rows over fixed values.
type Rows struct {
	fields []pgconn.FieldDescription
	data   [][]any
	err    error

	pos    int
	closed bool
}

// NewRows builds Rows with the given column names. err is reported by Err once
// iteration finishes.
func NewRows(columns []string, data [][]any, err error) *Rows {
	fields := make([]pgconn.FieldDescription, len(columns))
	for i, name := range columns {
		fields[i] = pgconn.FieldDescription{Name: name}
	}
	return &Rows{fields: fields, data: data, err: err, pos: -1}
}

func (r *Rows) Close() { r.closed = true }

// Closed reports whether Close was called.
func (r *Rows) Closed() bool { return r.closed }

func (r *Rows) Err() error {
	if r.closed || r.pos >= len(r.data) {
		return r.err
	}
	return nil
}

func (r *Rows) CommandTag() pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("SELECT %d", len(r.data)))
}

func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }

func (r *Rows) Next() bool {
	if r.closed {
		return false
	}
	r.pos++
	if r.pos >= len(r.data) {
		r.closed = true
		return false
	}
	return true
}

// Scan supports pgx.RowScanner destinations (used by pgx.RowToMap) and *any.
func (r *Rows) Scan(dest ...any) error {
	if len(dest) == 1 {
		if rs, ok := dest[0].(pgx.RowScanner); ok {
			return rs.ScanRow(r)
		}
	}

	values, err := r.Values()
	if err != nil {
		return err
	}
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(values))
	}
	for i, d := range dest {
		p, ok := d.(*any)
		if !ok {
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
		*p = values[i]
	}
	return nil
}

func (r *Rows) Values() ([]any, error) {
	if r.pos < 0 || r.pos >= len(r.data) {
		return nil, errors.New("no current row")
	}
	return r.data[r.pos], nil
}

func (r *Rows) RawValues() [][]byte { return nil }

func (r *Rows) Conn() *pgx.Conn { return nil }
