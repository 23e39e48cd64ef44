package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mini-erp/internal/domain/entity"
)

// PurchasingRepository órdenes y facturas de compra (con líneas).
type PurchasingRepository interface {
	CreateOrder(ctx context.Context, order *entity.PurchaseOrder) error
	GetOrder(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetOrderForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	ListOrders(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateOrder(ctx context.Context, order *entity.PurchaseOrder) error

	CreateInvoice(ctx context.Context, invoice *entity.PurchaseInvoice) error
	GetInvoice(ctx context.Context, id string) (*entity.PurchaseInvoice, error)
	GetInvoiceForUpdate(ctx context.Context, id string) (*entity.PurchaseInvoice, error)
	ListInvoices(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseInvoice, error)
	ListOverdueInvoices(ctx context.Context, asOf time.Time) ([]*entity.PurchaseInvoice, error)
	UpdateInvoicePayment(ctx context.Context, invoice *entity.PurchaseInvoice) error
}
