package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/products/:id/adjust-stock.
// La cantidad es una magnitud: la dirección la da movement_type (por defecto adjustment).
type AdjustStockRequest struct {
	MovementType string `json:"movement_type"`
	Quantity     int64  `json:"quantity"`
	Reference    string `json:"reference" validate:"max=100"`
	Notes        string `json:"notes" validate:"max=500"`
}

// StockMovementResponse movimiento del libro de stock.
type StockMovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	MovementType     string    `json:"movement_type"`
	Quantity         int64     `json:"quantity"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	Reference        string    `json:"reference,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// MovementListRequest query de GET /api/stock-movements.
type MovementListRequest struct {
	PageRequest
	ProductID    string `query:"product_id"`
	MovementType string `query:"movement_type" validate:"omitempty,oneof=in out adjustment return"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un SKU en o bajo su stock mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	CurrentStock       int64           `json:"current_stock"`
	MinStockLevel      int64           `json:"min_stock_level"`
	MaxStockLevel      int64           `json:"max_stock_level"`
	SuggestedOrderQty  int64           `json:"suggested_order_qty"`  // MaxStockLevel - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // costo de compra del producto
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`             // 1 = más urgente
}

// Estados por fila de un conteo físico.
const (
	StockCountApplied   = "applied"
	StockCountUnchanged = "unchanged"
	StockCountFailed    = "failed"
)

// StockCountRowResult resultado de una fila del conteo físico.
type StockCountRowResult struct {
	Row          int    `json:"row"`
	SKU          string `json:"sku"`
	Counted      int64  `json:"counted"`
	Previous     int64  `json:"previous"`
	MovementType string `json:"movement_type,omitempty"`
	Quantity     int64  `json:"quantity,omitempty"`
	MovementID   string `json:"movement_id,omitempty"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
}

// StockCountResult resumen de la importación.
type StockCountResult struct {
	Applied   int                   `json:"applied"`
	Unchanged int                   `json:"unchanged"`
	Failed    int                   `json:"failed"`
	Rows      []StockCountRowResult `json:"rows"`
}
