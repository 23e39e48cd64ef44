package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseOrderDraft     = "draft"
	PurchaseOrderSent      = "sent"
	PurchaseOrderConfirmed = "confirmed"
	PurchaseOrderReceived  = "received"
	PurchaseOrderCancelled = "cancelled"
)

var purchaseOrderTransitions = map[string][]string{
	PurchaseOrderDraft:     {PurchaseOrderSent, PurchaseOrderCancelled},
	PurchaseOrderSent:      {PurchaseOrderConfirmed, PurchaseOrderCancelled},
	PurchaseOrderConfirmed: {PurchaseOrderReceived},
}

// PurchaseOrder orden de compra a proveedor (PO-000001). Solo maneja estados;
// el ingreso de mercancía al stock ocurre con la factura de compra.
type PurchaseOrder struct {
	ID           string
	OrderNumber  string
	SupplierID   string
	Status       string
	OrderDate    time.Time
	ExpectedDate *time.Time
	DeliveryDate *time.Time
	Subtotal     decimal.Decimal
	TaxAmount    decimal.Decimal
	TotalAmount  decimal.Decimal
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []LineItem
}

func (o *PurchaseOrder) ApplyTotals(taxRate decimal.Decimal) {
	t := ComputeTotals(o.Items, taxRate)
	o.Subtotal, o.TaxAmount, o.TotalAmount = t.Subtotal, t.TaxAmount, t.Total
}

func (o *PurchaseOrder) TransitionTo(status string) error {
	if err := transition(purchaseOrderTransitions, o.Status, status); err != nil {
		return err
	}
	o.Status = status
	return nil
}

// PurchaseInvoice factura de proveedor (PINV-000001). Cada línea registra una entrada (in) de stock.
type PurchaseInvoice struct {
	ID            string
	InvoiceNumber string
	SupplierID    string
	InvoiceDate   time.Time
	DueDate       time.Time
	Billing
	Notes     string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []LineItem
}

// ApplyAmount Amount = suma de las líneas (sin impuesto, como la factura del proveedor).
func (i *PurchaseInvoice) ApplyAmount() {
	i.Amount = ComputeTotals(i.Items, decimal.Zero).Subtotal
}
