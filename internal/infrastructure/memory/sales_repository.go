package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/numbering"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

var _ repository.SalesRepository = (*salesRepo)(nil)

type salesRepo struct{ db db }

func (r *salesRepo) CreateOrder(_ context.Context, o *entity.SaleOrder) error {
	return r.db.do(func(st *state) error {
		for _, other := range st.saleOrders {
			if other.ID == o.ID || other.OrderNumber == o.OrderNumber {
				return fmt.Errorf("%w: orden %s", domain.ErrDuplicate, o.OrderNumber)
			}
		}
		c := *o
		c.Items = cloneItems(o.Items)
		st.saleOrders[o.ID] = c
		st.saleOrderOrder = append(st.saleOrderOrder, o.ID)
		st.lastIssued[numbering.FamilySaleOrder] = o.OrderNumber
		return nil
	})
}

func (r *salesRepo) GetOrder(_ context.Context, id string) (*entity.SaleOrder, error) {
	var out *entity.SaleOrder
	err := r.db.do(func(st *state) error {
		if o, ok := st.saleOrders[id]; ok {
			o.Items = cloneItems(o.Items)
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *salesRepo) GetOrderForUpdate(ctx context.Context, id string) (*entity.SaleOrder, error) {
	return r.GetOrder(ctx, id)
}

func (r *salesRepo) ListOrders(_ context.Context, status string, limit, offset int) ([]*entity.SaleOrder, error) {
	var list []*entity.SaleOrder
	err := r.db.do(func(st *state) error {
		for i := len(st.saleOrderOrder) - 1; i >= 0; i-- {
			o := st.saleOrders[st.saleOrderOrder[i]]
			if status != "" && o.Status != status {
				continue
			}
			o.Items = cloneItems(o.Items)
			list = append(list, &o)
		}
		return nil
	})
	return page(list, limit, offset), err
}

func (r *salesRepo) UpdateOrder(_ context.Context, o *entity.SaleOrder) error {
	return r.db.do(func(st *state) error {
		cur, ok := st.saleOrders[o.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = o.Status
		cur.DeliveryDate = o.DeliveryDate
		cur.UpdatedAt = o.UpdatedAt
		st.saleOrders[o.ID] = cur
		return nil
	})
}

func (r *salesRepo) CreateInvoice(_ context.Context, inv *entity.Invoice) error {
	return r.db.do(func(st *state) error {
		for _, other := range st.invoices {
			if other.SaleOrderID == inv.SaleOrderID {
				return fmt.Errorf("%w: la orden ya tiene factura %s", domain.ErrDuplicate, other.InvoiceNumber)
			}
			if other.ID == inv.ID || other.InvoiceNumber == inv.InvoiceNumber {
				return fmt.Errorf("%w: factura %s", domain.ErrDuplicate, inv.InvoiceNumber)
			}
		}
		st.invoices[inv.ID] = *inv
		st.invoiceOrder = append(st.invoiceOrder, inv.ID)
		st.lastIssued[numbering.FamilySalesInvoice] = inv.InvoiceNumber
		return nil
	})
}

func (r *salesRepo) GetInvoice(_ context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.db.do(func(st *state) error {
		if inv, ok := st.invoices[id]; ok {
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r *salesRepo) GetInvoiceForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetInvoice(ctx, id)
}

func (r *salesRepo) GetInvoiceBySaleOrder(_ context.Context, saleOrderID string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.db.do(func(st *state) error {
		for _, inv := range st.invoices {
			if inv.SaleOrderID == saleOrderID {
				out = &inv
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *salesRepo) ListInvoices(_ context.Context, status string, limit, offset int) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	err := r.db.do(func(st *state) error {
		for i := len(st.invoiceOrder) - 1; i >= 0; i-- {
			inv := st.invoices[st.invoiceOrder[i]]
			if status != "" && inv.Status != status {
				continue
			}
			list = append(list, &inv)
		}
		return nil
	})
	return page(list, limit, offset), err
}

func (r *salesRepo) UpdateInvoicePayment(_ context.Context, inv *entity.Invoice) error {
	return r.db.do(func(st *state) error {
		cur, ok := st.invoices[inv.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.PaidAmount = inv.PaidAmount
		cur.Status = inv.Status
		cur.UpdatedAt = inv.UpdatedAt
		st.invoices[inv.ID] = cur
		return nil
	})
}

func (r *salesRepo) ListOverdueInvoices(_ context.Context, asOf time.Time) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	err := r.db.do(func(st *state) error {
		for i := len(st.invoiceOrder) - 1; i >= 0; i-- {
			inv := st.invoices[st.invoiceOrder[i]]
			if inv.Overdue(inv.DueDate, asOf) {
				list = append(list, &inv)
			}
		}
		return nil
	})
	return list, err
}
