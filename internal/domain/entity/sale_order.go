package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta.
const (
	SaleOrderDraft     = "draft"
	SaleOrderConfirmed = "confirmed"
	SaleOrderShipped   = "shipped"
	SaleOrderDelivered = "delivered"
	SaleOrderCancelled = "cancelled"
)

var saleOrderTransitions = map[string][]string{
	SaleOrderDraft:     {SaleOrderConfirmed, SaleOrderCancelled},
	SaleOrderConfirmed: {SaleOrderShipped, SaleOrderCancelled},
	SaleOrderShipped:   {SaleOrderDelivered},
}

// SaleOrder cabecera de una orden de venta (SO-000001).
type SaleOrder struct {
	ID           string
	OrderNumber  string
	CustomerID   string
	Status       string
	OrderDate    time.Time
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

// ApplyTotals recalcula subtotal, impuesto y total desde las líneas.
func (o *SaleOrder) ApplyTotals(taxRate decimal.Decimal) {
	t := ComputeTotals(o.Items, taxRate)
	o.Subtotal, o.TaxAmount, o.TotalAmount = t.Subtotal, t.TaxAmount, t.Total
}

// TransitionTo cambia el estado si la transición está permitida (ErrConflict si no).
func (o *SaleOrder) TransitionTo(status string) error {
	if err := transition(saleOrderTransitions, o.Status, status); err != nil {
		return err
	}
	o.Status = status
	return nil
}

// Invoiceable solo se facturan órdenes que ya descontaron stock.
func (o *SaleOrder) Invoiceable() bool {
	return o.Status == SaleOrderConfirmed || o.Status == SaleOrderShipped || o.Status == SaleOrderDelivered
}
