package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mini-erp/internal/domain/entity"
)

// SalesRepository órdenes de venta (con líneas) y facturas de venta.
type SalesRepository interface {
	CreateOrder(ctx context.Context, order *entity.SaleOrder) error
	GetOrder(ctx context.Context, id string) (*entity.SaleOrder, error)
	GetOrderForUpdate(ctx context.Context, id string) (*entity.SaleOrder, error)
	ListOrders(ctx context.Context, status string, limit, offset int) ([]*entity.SaleOrder, error)
	// UpdateOrder persiste estado, fecha de entrega y updated_at.
	UpdateOrder(ctx context.Context, order *entity.SaleOrder) error

	// CreateInvoice falla con domain.ErrDuplicate si la orden ya tiene factura.
	CreateInvoice(ctx context.Context, invoice *entity.Invoice) error
	GetInvoice(ctx context.Context, id string) (*entity.Invoice, error)
	GetInvoiceForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	GetInvoiceBySaleOrder(ctx context.Context, saleOrderID string) (*entity.Invoice, error)
	ListInvoices(ctx context.Context, status string, limit, offset int) ([]*entity.Invoice, error)
	// ListOverdueInvoices facturas pending/partial con vencimiento anterior a asOf.
	ListOverdueInvoices(ctx context.Context, asOf time.Time) ([]*entity.Invoice, error)
	// UpdateInvoicePayment persiste paid_amount y status.
	UpdateInvoicePayment(ctx context.Context, invoice *entity.Invoice) error
}
