package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mini-erp/internal/domain"
)

// Estados de pago de facturas (venta y compra).
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

// LineItem línea de un documento (orden de venta, orden de compra o factura de compra).
// TotalPrice = Quantity * UnitPrice, calculado al construir la línea.
type LineItem struct {
	ID         string
	DocumentID string
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}

// NewLineItem construye la línea calculando su total.
func NewLineItem(productID string, quantity int64, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(quantity)),
	}
}

// Totals subtotal, impuesto y total de un documento.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals suma las líneas y aplica taxRate (0.10 = 10%) redondeando a 2 decimales.
func ComputeTotals(items []LineItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.TotalPrice)
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return Totals{Subtotal: subtotal, TaxAmount: tax, Total: subtotal.Add(tax)}
}

// Billing campos de cobro compartidos por Invoice y PurchaseInvoice.
type Billing struct {
	Amount     decimal.Decimal
	PaidAmount decimal.Decimal
	Status     string
}

// Balance saldo pendiente.
func (b *Billing) Balance() decimal.Decimal {
	return b.Amount.Sub(b.PaidAmount)
}

// UpdateStatus recalcula el estado a partir del monto pagado.
func (b *Billing) UpdateStatus() {
	switch {
	case b.PaidAmount.GreaterThanOrEqual(b.Amount):
		b.Status = PaymentStatusPaid
	case b.PaidAmount.GreaterThan(decimal.Zero):
		b.Status = PaymentStatusPartial
	default:
		b.Status = PaymentStatusPending
	}
}

// RegisterPayment abona amount y recalcula el estado. Rechaza montos no positivos y sobrepagos.
func (b *Billing) RegisterPayment(amount decimal.Decimal) error {
	if !amount.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: el pago debe ser positivo", domain.ErrInvalidInput)
	}
	if b.PaidAmount.Add(amount).GreaterThan(b.Amount) {
		return fmt.Errorf("%w: el pago %s excede el saldo %s", domain.ErrInvalidInput, amount.StringFixed(2), b.Balance().StringFixed(2))
	}
	b.PaidAmount = b.PaidAmount.Add(amount)
	b.UpdateStatus()
	return nil
}

// transition valida un cambio de estado contra una tabla de transiciones permitidas.
func transition(allowed map[string][]string, from, to string) error {
	for _, s := range allowed[from] {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: no se puede pasar de %s a %s", domain.ErrConflict, from, to)
}

// Overdue pendiente o parcial con vencimiento anterior a asOf (comparación por fecha).
func (b *Billing) Overdue(dueDate, asOf time.Time) bool {
	if b.Status != PaymentStatusPending && b.Status != PaymentStatusPartial {
		return false
	}
	y1, m1, d1 := dueDate.Date()
	y2, m2, d2 := asOf.In(dueDate.Location()).Date()
	return time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC).Before(time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC))
}
