package purchasing

import (
	"context"

	"github.com/jhoicas/mini-erp/internal/application/inventory"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/numbering"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Tx) error) error
}

// StockLedger registra las entradas de mercancía de una factura de compra.
type StockLedger interface {
	ApplyInTx(ctx context.Context, tx repository.Tx, in inventory.MovementInput) (*entity.StockMovement, error)
}

// Sequencer asigna PO-xxxxxx y PINV-xxxxxx dentro de la transacción del documento.
type Sequencer interface {
	NextInTx(ctx context.Context, tx repository.Tx, family numbering.Family) (string, error)
}
