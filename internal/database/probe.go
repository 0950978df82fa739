package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LivenessQuery is the no-op statement used to prove a connection works.
const LivenessQuery = "SELECT 1"

// PoolProbe checks liveness of a single pool.
type PoolProbe struct {
	Pool *pgxpool.Pool
}

// Probe checks out a connection, runs LivenessQuery on it and returns it to the pool.
// The connection is released on every path, including a panic in the driver.
func (p PoolProbe) Probe(ctx context.Context) error {
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, LivenessQuery); err != nil {
		return fmt.Errorf("liveness query: %w", err)
	}
	return nil
}
