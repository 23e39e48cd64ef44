package repository

import (
	"context"

	"github.com/jhoicas/mini-erp/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID devuelve (nil, nil) si no existe; Create/Update devuelven ErrDuplicate si el nombre ya está tomado.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// List ordena por nombre.
	List(ctx context.Context, limit, offset int) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}
