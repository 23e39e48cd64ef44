package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mini-erp/internal/application/dto"
	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/inventory"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
	"github.com/jhoicas/mini-erp/pkg/logger"
)

// MovementInput entrada para aplicar un movimiento. Quantity es una magnitud positiva;
// la dirección la determina Type.
type MovementInput struct {
	ProductID string
	Type      entity.MovementType
	Quantity  int64
	Reference string
	Notes     string
	Actor     string // UserID que registra el movimiento
}

// StockLedger único punto que modifica el stock de un producto. Cada aplicación
// bloquea la fila del producto (SELECT FOR UPDATE), fija las instantáneas previa y
// nueva, inserta el movimiento y actualiza el stock cacheado en la misma transacción.
type StockLedger struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewStockLedger construye el libro de stock.
func NewStockLedger(txRunner TxRunner, log *logger.Logger) *StockLedger {
	return &StockLedger{txRunner: txRunner, log: log.Component("ledger")}
}

// ApplyMovement aplica el movimiento en su propia transacción (Commit o Rollback).
func (l *StockLedger) ApplyMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if err := inventory.ValidateMovement(in.ProductID, in.Type, in.Quantity, in.Actor); err != nil {
		return nil, err
	}
	var mov *entity.StockMovement
	err := l.txRunner.Run(ctx, func(tx repository.Tx) error {
		var err error
		mov, err = l.ApplyInTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyInTx aplica el movimiento dentro de la transacción del llamador (ventas, compras,
// conteos). Si devuelve error el llamador debe abortar su transacción.
func (l *StockLedger) ApplyInTx(ctx context.Context, tx repository.Tx, in MovementInput) (*entity.StockMovement, error) {
	if err := inventory.ValidateMovement(in.ProductID, in.Type, in.Quantity, in.Actor); err != nil {
		return nil, err
	}

	product, err := tx.Products().GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.InvalidMovementInputError{Field: "product_id", Reason: "no existe: " + in.ProductID, Cause: domain.ErrNotFound}
	}

	mov, err := inventory.NewMovement(product, in.Type, in.Quantity, in.Reference, in.Notes, in.Actor)
	if err != nil {
		return nil, err
	}
	mov.ID = uuid.New().String()
	mov.CreatedAt = time.Now().UTC()

	if err := tx.Movements().Create(ctx, mov); err != nil {
		return nil, err
	}
	if err := tx.Products().UpdateStock(ctx, product.ID, mov.NewQuantity); err != nil {
		return nil, err
	}

	l.log.Debug().
		Str("product_id", mov.ProductID).
		Str("type", string(mov.Type)).
		Int64("quantity", mov.Quantity).
		Int64("previous", mov.PreviousQuantity).
		Int64("new", mov.NewQuantity).
		Str("reference", mov.Reference).
		Msg("movimiento aplicado")
	return mov, nil
}

// ToMovementResponse convierte un movimiento para la capa HTTP.
func ToMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	if m == nil {
		return nil
	}
	return &dto.StockMovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		MovementType:     string(m.Type),
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reference:        m.Reference,
		Notes:            m.Notes,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}
