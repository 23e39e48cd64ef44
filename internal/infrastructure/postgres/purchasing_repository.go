package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

var _ repository.PurchasingRepository = (*PurchasingRepo)(nil)

const purchaseOrderColumns = `id, order_number, supplier_id, status, order_date, expected_date, delivery_date,
	subtotal, tax_amount, total_amount, COALESCE(notes, ''), created_by, created_at, updated_at`

const purchaseInvoiceColumns = `id, invoice_number, supplier_id, invoice_date, due_date, amount, paid_amount, status,
	COALESCE(notes, ''), created_by, created_at, updated_at`

// PurchasingRepo órdenes y facturas de compra con sus líneas.
type PurchasingRepo struct {
	q Querier
}

func NewPurchasingRepository(q Querier) *PurchasingRepo {
	return &PurchasingRepo{q: q}
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.SupplierID, &o.Status, &o.OrderDate, &o.ExpectedDate, &o.DeliveryDate,
		&o.Subtotal, &o.TaxAmount, &o.TotalAmount, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func scanPurchaseInvoice(row pgx.Row) (*entity.PurchaseInvoice, error) {
	var inv entity.PurchaseInvoice
	if err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.SupplierID, &inv.InvoiceDate, &inv.DueDate, &inv.Amount,
		&inv.PaidAmount, &inv.Status, &inv.Notes, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *PurchasingRepo) CreateOrder(ctx context.Context, o *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (id, order_number, supplier_id, status, order_date, expected_date, delivery_date,
			subtotal, tax_amount, total_amount, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		o.ID, o.OrderNumber, o.SupplierID, o.Status, o.OrderDate, o.ExpectedDate, o.DeliveryDate,
		o.Subtotal, o.TaxAmount, o.TotalAmount, nullable(o.Notes), o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: orden %s", domain.ErrDuplicate, o.OrderNumber)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return insertItems(ctx, r.q, purchaseOrderItems, o.ID, o.Items)
}

func (r *PurchasingRepo) getOrder(ctx context.Context, id, suffix string) (*entity.PurchaseOrder, error) {
	o, err := scanPurchaseOrder(r.q.QueryRow(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`+suffix, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if o.Items, err = loadItems(ctx, r.q, purchaseOrderItems, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PurchasingRepo) GetOrder(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOrder(ctx, id, "")
}

func (r *PurchasingRepo) GetOrderForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOrder(ctx, id, " FOR UPDATE")
}

func (r *PurchasingRepo) ListOrders(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	page, args := limitClause(2, limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders
		WHERE ($1::text = '' OR status = $1) ORDER BY created_at DESC, id DESC`+page, append([]any{status}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanPurchaseOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if o.Items, err = loadItems(ctx, r.q, purchaseOrderItems, o.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *PurchasingRepo) UpdateOrder(ctx context.Context, o *entity.PurchaseOrder) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_orders SET status = $2, delivery_date = $3, updated_at = $4 WHERE id = $1`,
		o.ID, o.Status, o.DeliveryDate, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchasingRepo) CreateInvoice(ctx context.Context, inv *entity.PurchaseInvoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_invoices (id, invoice_number, supplier_id, invoice_date, due_date, amount, paid_amount,
			status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		inv.ID, inv.InvoiceNumber, inv.SupplierID, inv.InvoiceDate, inv.DueDate, inv.Amount, inv.PaidAmount,
		inv.Status, nullable(inv.Notes), inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: factura %s", domain.ErrDuplicate, inv.InvoiceNumber)
		}
		return fmt.Errorf("insert purchase invoice: %w", err)
	}
	return insertItems(ctx, r.q, purchaseInvoiceItems, inv.ID, inv.Items)
}

func (r *PurchasingRepo) getInvoice(ctx context.Context, id, suffix string) (*entity.PurchaseInvoice, error) {
	inv, err := scanPurchaseInvoice(r.q.QueryRow(ctx, `SELECT `+purchaseInvoiceColumns+` FROM purchase_invoices WHERE id = $1`+suffix, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase invoice: %w", err)
	}
	if inv.Items, err = loadItems(ctx, r.q, purchaseInvoiceItems, inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *PurchasingRepo) GetInvoice(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	return r.getInvoice(ctx, id, "")
}

func (r *PurchasingRepo) GetInvoiceForUpdate(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	return r.getInvoice(ctx, id, " FOR UPDATE")
}

func (r *PurchasingRepo) ListInvoices(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseInvoice, error) {
	page, args := limitClause(2, limit, offset)
	return r.queryInvoices(ctx, `SELECT `+purchaseInvoiceColumns+` FROM purchase_invoices
		WHERE ($1::text = '' OR status = $1) ORDER BY created_at DESC, id DESC`+page, append([]any{status}, args...)...)
}

func (r *PurchasingRepo) ListOverdueInvoices(ctx context.Context, asOf time.Time) ([]*entity.PurchaseInvoice, error) {
	return r.queryInvoices(ctx, `SELECT `+purchaseInvoiceColumns+` FROM purchase_invoices
		WHERE status IN ('pending', 'partial') AND due_date::date < $1::date
		ORDER BY due_date, id`, asOf)
}

func (r *PurchasingRepo) queryInvoices(ctx context.Context, query string, args ...any) ([]*entity.PurchaseInvoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase invoices: %w", err)
	}
	var list []*entity.PurchaseInvoice
	for rows.Next() {
		inv, err := scanPurchaseInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase invoice: %w", err)
		}
		list = append(list, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, inv := range list {
		if inv.Items, err = loadItems(ctx, r.q, purchaseInvoiceItems, inv.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *PurchasingRepo) UpdateInvoicePayment(ctx context.Context, inv *entity.PurchaseInvoice) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_invoices SET paid_amount = $2, status = $3, updated_at = $4 WHERE id = $1`,
		inv.ID, inv.PaidAmount, inv.Status, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase invoice payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
