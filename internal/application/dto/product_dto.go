package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. StockQuantity es el valor
// inicial del libro de stock; de ahí en adelante solo cambia vía movimientos.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"required,min=1,max=50"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	CategoryID    string          `json:"category_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int64           `json:"stock_quantity" validate:"min=0"`
	MinStockLevel *int64          `json:"min_stock_level,omitempty" validate:"omitempty,min=0"`
	MaxStockLevel *int64          `json:"max_stock_level,omitempty" validate:"omitempty,min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
type UpdateProductRequest struct {
	SKU           *string          `json:"sku" validate:"omitempty,min=1,max=50"`
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	CategoryID    *string          `json:"category_id"`
	Price         *decimal.Decimal `json:"price"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	MinStockLevel *int64           `json:"min_stock_level" validate:"omitempty,min=0"`
	MaxStockLevel *int64           `json:"max_stock_level" validate:"omitempty,min=0"`
	IsActive      *bool            `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CategoryID    string          `json:"category_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int64           `json:"stock_quantity"`
	MinStockLevel int64           `json:"min_stock_level"`
	MaxStockLevel int64           `json:"max_stock_level"`
	StockStatus   string          `json:"stock_status"` // low | normal | high
	IsActive      bool            `json:"is_active"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListRequest query de GET /api/products. Search busca en nombre o SKU.
type ProductListRequest struct {
	PageRequest
	Status     string `query:"status" validate:"omitempty,oneof=low normal high"`
	CategoryID string `query:"category_id" validate:"max=64"`
	Search     string `query:"search" validate:"max=100"`
}
