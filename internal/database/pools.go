package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rickgao/verf-report/internal/config"
)

// Pools holds the connection pools for both external databases.
// Pools are created once at startup, shared by all requests, and closed at shutdown.
type Pools struct {
	// Poktpool holds verification requests (wallet_verf_req).
	Poktpool *pgxpool.Pool

	// Waxtrax holds observed network transactions (network_txn).
	Waxtrax *pgxpool.Pool
}

// NewPools creates connection pools for both databases.
// Pools connect lazily, so an unreachable database does not fail startup; it is
// reported by the health checker instead.
func NewPools(ctx context.Context, cfg config.DatabaseConfig) (*Pools, error) {
	pokt, err := Connect(ctx, cfg.Poktpool)
	if err != nil {
		return nil, fmt.Errorf("connect poktpool: %w", err)
	}

	wax, err := Connect(ctx, cfg.Waxtrax)
	if err != nil {
		pokt.Close()
		return nil, fmt.Errorf("connect waxtrax: %w", err)
	}

	return &Pools{
		Poktpool: pokt,
		Waxtrax:  wax,
	}, nil
}

// NewPoolConfig translates a DBConfig into pgxpool settings.
func NewPoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(BuildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = 0
	poolCfg.MaxConnIdleTime = cfg.IdleTimeout
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	return poolCfg, nil
}

// Connect creates a single connection pool without opening any connection.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := NewPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	return pool, nil
}

// Close closes both connection pools.
func (p *Pools) Close() {
	if p.Poktpool != nil {
		p.Poktpool.Close()
	}
	if p.Waxtrax != nil {
		p.Waxtrax.Close()
	}
}

// Ping verifies both connections are healthy.
func (p *Pools) Ping(ctx context.Context) error {
	if err := p.Poktpool.Ping(ctx); err != nil {
		return fmt.Errorf("ping poktpool: %w", err)
	}
	if err := p.Waxtrax.Ping(ctx); err != nil {
		return fmt.Errorf("ping waxtrax: %w", err)
	}
	return nil
}
