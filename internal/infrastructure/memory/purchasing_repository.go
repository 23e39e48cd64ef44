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

var _ repository.PurchasingRepository = (*purchasingRepo)(nil)

type purchasingRepo struct{ db db }

func (r *purchasingRepo) CreateOrder(_ context.Context, o *entity.PurchaseOrder) error {
	return r.db.do(func(st *state) error {
		for _, other := range st.purchaseOrders {
			if other.ID == o.ID || other.OrderNumber == o.OrderNumber {
				return fmt.Errorf("%w: orden %s", domain.ErrDuplicate, o.OrderNumber)
			}
		}
		c := *o
		c.Items = cloneItems(o.Items)
		st.purchaseOrders[o.ID] = c
		st.purchaseOrderOrder = append(st.purchaseOrderOrder, o.ID)
		st.lastIssued[numbering.FamilyPurchaseOrder] = o.OrderNumber
		return nil
	})
}

func (r *purchasingRepo) GetOrder(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.db.do(func(st *state) error {
		if o, ok := st.purchaseOrders[id]; ok {
			o.Items = cloneItems(o.Items)
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *purchasingRepo) GetOrderForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetOrder(ctx, id)
}

func (r *purchasingRepo) ListOrders(_ context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var list []*entity.PurchaseOrder
	err := r.db.do(func(st *state) error {
		for i := len(st.purchaseOrderOrder) - 1; i >= 0; i-- {
			o := st.purchaseOrders[st.purchaseOrderOrder[i]]
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

func (r *purchasingRepo) UpdateOrder(_ context.Context, o *entity.PurchaseOrder) error {
	return r.db.do(func(st *state) error {
		cur, ok := st.purchaseOrders[o.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = o.Status
		cur.DeliveryDate = o.DeliveryDate
		cur.UpdatedAt = o.UpdatedAt
		st.purchaseOrders[o.ID] = cur
		return nil
	})
}

func (r *purchasingRepo) CreateInvoice(_ context.Context, inv *entity.PurchaseInvoice) error {
	return r.db.do(func(st *state) error {
		for _, other := range st.purchaseInvoices {
			if other.ID == inv.ID || other.InvoiceNumber == inv.InvoiceNumber {
				return fmt.Errorf("%w: factura %s", domain.ErrDuplicate, inv.InvoiceNumber)
			}
		}
		c := *inv
		c.Items = cloneItems(inv.Items)
		st.purchaseInvoices[inv.ID] = c
		st.purchaseInvoiceOrder = append(st.purchaseInvoiceOrder, inv.ID)
		st.lastIssued[numbering.FamilyPurchaseInvoice] = inv.InvoiceNumber
		return nil
	})
}

func (r *purchasingRepo) GetInvoice(_ context.Context, id string) (*entity.PurchaseInvoice, error) {
	var out *entity.PurchaseInvoice
	err := r.db.do(func(st *state) error {
		if inv, ok := st.purchaseInvoices[id]; ok {
			inv.Items = cloneItems(inv.Items)
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r *purchasingRepo) GetInvoiceForUpdate(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	return r.GetInvoice(ctx, id)
}

func (r *purchasingRepo) ListInvoices(_ context.Context, status string, limit, offset int) ([]*entity.PurchaseInvoice, error) {
	var list []*entity.PurchaseInvoice
	err := r.db.do(func(st *state) error {
		for i := len(st.purchaseInvoiceOrder) - 1; i >= 0; i-- {
			inv := st.purchaseInvoices[st.purchaseInvoiceOrder[i]]
			if status != "" && inv.Status != status {
				continue
			}
			inv.Items = cloneItems(inv.Items)
			list = append(list, &inv)
		}
		return nil
	})
	return page(list, limit, offset), err
}

func (r *purchasingRepo) UpdateInvoicePayment(_ context.Context, inv *entity.PurchaseInvoice) error {
	return r.db.do(func(st *state) error {
		cur, ok := st.purchaseInvoices[inv.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.PaidAmount = inv.PaidAmount
		cur.Status = inv.Status
		cur.UpdatedAt = inv.UpdatedAt
		st.purchaseInvoices[inv.ID] = cur
		return nil
	})
}

func (r *purchasingRepo) ListOverdueInvoices(_ context.Context, asOf time.Time) ([]*entity.PurchaseInvoice, error) {
	var list []*entity.PurchaseInvoice
	err := r.db.do(func(st *state) error {
		for i := len(st.purchaseInvoiceOrder) - 1; i >= 0; i-- {
			inv := st.purchaseInvoices[st.purchaseInvoiceOrder[i]]
			if inv.Overdue(inv.DueDate, asOf) {
				inv.Items = cloneItems(inv.Items)
				list = append(list, &inv)
			}
		}
		return nil
	})
	return list, err
}
