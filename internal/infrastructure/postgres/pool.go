package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/mini-erp/internal/domain/repository"
	"github.com/jhoicas/mini-erp/pkg/config"
)

// NewPool crea un pool de conexiones PostgreSQL con DATABASE_URL o con el DSN armado desde DB_HOST, DB_PORT, etc.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// NUMERIC -> shopspring/decimal en todas las conexiones del pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// Store repositorios sobre el pool (autocommit) más el TxRunner; misma forma que memory.Store.
type Store struct {
	*TxRunner
	pool *pgxpool.Pool
}

// NewStore construye el store sobre el pool. Close lo cierra.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{TxRunner: NewTxRunner(pool), pool: pool}
}

func (s *Store) Products() repository.ProductRepository        { return NewProductRepository(s.pool) }
func (s *Store) Categories() repository.CategoryRepository     { return NewCategoryRepository(s.pool) }
func (s *Store) Movements() repository.StockMovementRepository { return NewStockMovementRepository(s.pool) }
func (s *Store) Sequences() repository.SequenceRepository      { return NewSequenceRepository(s.pool) }
func (s *Store) Partners() repository.PartnerRepository        { return NewPartnerRepository(s.pool) }
func (s *Store) Sales() repository.SalesRepository             { return NewSalesRepository(s.pool) }
func (s *Store) Purchasing() repository.PurchasingRepository   { return NewPurchasingRepository(s.pool) }

func (s *Store) Close() { s.pool.Close() }
