package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/mini-erp/internal/application/inventory"
	"github.com/jhoicas/mini-erp/internal/application/purchasing"
	"github.com/jhoicas/mini-erp/internal/application/sales"
	"github.com/jhoicas/mini-erp/internal/application/sequence"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

var (
	_ inventory.TxRunner  = (*TxRunner)(nil)
	_ sequence.TxRunner   = (*TxRunner)(nil)
	_ sales.TxRunner      = (*TxRunner)(nil)
	_ purchasing.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(txRepos{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txRepos repositorios atados a una pgx.Tx.
type txRepos struct{ tx pgx.Tx }

func (t txRepos) Products() repository.ProductRepository        { return NewProductRepository(t.tx) }
func (t txRepos) Categories() repository.CategoryRepository     { return NewCategoryRepository(t.tx) }
func (t txRepos) Movements() repository.StockMovementRepository { return NewStockMovementRepository(t.tx) }
func (t txRepos) Sequences() repository.SequenceRepository      { return NewSequenceRepository(t.tx) }
func (t txRepos) Partners() repository.PartnerRepository        { return NewPartnerRepository(t.tx) }
func (t txRepos) Sales() repository.SalesRepository             { return NewSalesRepository(t.tx) }
func (t txRepos) Purchasing() repository.PurchasingRepository   { return NewPurchasingRepository(t.tx) }
