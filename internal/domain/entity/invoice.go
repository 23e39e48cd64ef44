package entity

import "time"

// DefaultPaymentTermDays plazo de pago cuando la factura no trae fecha de vencimiento.
const DefaultPaymentTermDays = 30

// Invoice factura de venta (INV-000001). Una por orden de venta; Amount = total de la orden.
type Invoice struct {
	ID            string
	InvoiceNumber string
	SaleOrderID   string
	InvoiceDate   time.Time
	DueDate       time.Time
	Billing
	CreatedAt time.Time
	UpdatedAt time.Time
}
