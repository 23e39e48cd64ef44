package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID   string            `json:"supplier_id" validate:"required"`
	OrderDate    *time.Time        `json:"order_date,omitempty"`
	ExpectedDate *time.Time        `json:"expected_date,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	Items        []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseOrderResponse orden de compra con líneas.
type PurchaseOrderResponse struct {
	ID           string             `json:"id"`
	OrderNumber  string             `json:"order_number"`
	SupplierID   string             `json:"supplier_id"`
	Status       string             `json:"status"`
	OrderDate    time.Time          `json:"order_date"`
	ExpectedDate *time.Time         `json:"expected_date,omitempty"`
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

// CreatePurchaseInvoiceRequest body para POST /api/purchase-invoices.
type CreatePurchaseInvoiceRequest struct {
	SupplierID  string            `json:"supplier_id" validate:"required"`
	InvoiceDate *time.Time        `json:"invoice_date,omitempty"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Items       []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseInvoiceResponse factura de compra con líneas.
type PurchaseInvoiceResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	SupplierID    string             `json:"supplier_id"`
	InvoiceDate   time.Time          `json:"invoice_date"`
	DueDate       time.Time          `json:"due_date"`
	Amount        decimal.Decimal    `json:"amount"`
	PaidAmount    decimal.Decimal    `json:"paid_amount"`
	Balance       decimal.Decimal    `json:"balance"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	CreatedBy     string             `json:"created_by"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Items         []LineItemResponse `json:"items"`
}
