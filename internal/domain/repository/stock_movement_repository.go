package repository

import (
	"context"

	"github.com/jhoicas/mini-erp/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock (DIP).
// Solo inserción y lectura: el historial es inmutable.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// List devuelve los movimientos del más reciente al más antiguo.
	List(ctx context.Context, filter entity.MovementFilter) ([]*entity.StockMovement, error)
}
