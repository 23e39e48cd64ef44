package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea de un documento (venta o compra).
// En ventas, UnitPrice en cero toma el precio de venta del producto.
type LineItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineItemResponse línea en respuestas.
type LineItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CreateSaleOrderRequest body para POST /api/sale-orders.
type CreateSaleOrderRequest struct {
	CustomerID string            `json:"customer_id" validate:"required"`
	OrderDate  *time.Time        `json:"order_date,omitempty"`
	Notes      string            `json:"notes,omitempty"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleOrderResponse orden de venta con líneas.
type SaleOrderResponse struct {
	ID           string             `json:"id"`
	OrderNumber  string             `json:"order_number"`
	CustomerID   string             `json:"customer_id"`
	Status       string             `json:"status"`
	OrderDate    time.Time          `json:"order_date"`
	DeliveryDate *time.Time         `json:"delivery_date,omitempty"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	TaxAmount    decimal.Decimal    `json:"tax_amount"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Notes        string             `json:"notes,omitempty"`
	CreatedBy    string             `json:"created_by"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Items        []LineItemResponse `json:"items"`
}

// CreateInvoiceRequest body para POST /api/sale-orders/:id/invoice. Fechas opcionales.
type CreateInvoiceRequest struct {
	InvoiceDate *time.Time `json:"invoice_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// InvoiceResponse factura de venta.
type InvoiceResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	SaleOrderID   string          `json:"sale_order_id"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	DueDate       time.Time       `json:"due_date"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// RegisterPaymentRequest body para POST .../payments.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// StatusListRequest query de listados de documentos.
type StatusListRequest struct {
	PageRequest
	Status string `query:"status"`
}
