package repository

import (
	"context"

	"github.com/jhoicas/mini-erp/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
	// Update actualiza datos de catálogo. Nunca toca stock_quantity.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock escribe el stock cacheado; solo lo invoca el libro de stock.
	UpdateStock(ctx context.Context, productID string, quantity int64) error
}
