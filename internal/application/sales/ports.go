package sales

import (
	"context"

	"github.com/jhoicas/mini-erp/internal/application/inventory"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/numbering"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Tx) error) error
}

// StockLedger aplica movimientos de stock en la transacción del llamador.
// Si retorna error (p. ej. InsufficientStockError) el llamador debe abortar.
type StockLedger interface {
	ApplyInTx(ctx context.Context, tx repository.Tx, in inventory.MovementInput) (*entity.StockMovement, error)
}

// Sequencer asigna consecutivos de documento dentro de la transacción del documento.
type Sequencer interface {
	NextInTx(ctx context.Context, tx repository.Tx, family numbering.Family) (string, error)
}

// InvoicePDFGenerator genera la representación gráfica de una factura de venta.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// InvoiceDocument datos completos de una factura para renderizarla.
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Order    *entity.SaleOrder
	Customer *entity.Customer
	Lines    []InvoiceLine
}

// InvoiceLine línea de la orden enriquecida con datos del producto.
type InvoiceLine struct {
	entity.LineItem
	SKU         string
	ProductName string
}
