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

var _ repository.SalesRepository = (*SalesRepo)(nil)

const saleOrderColumns = `id, order_number, customer_id, status, order_date, delivery_date, subtotal, tax_amount,
	total_amount, COALESCE(notes, ''), created_by, created_at, updated_at`

const invoiceColumns = `id, invoice_number, sale_order_id, invoice_date, due_date, amount, paid_amount, status,
	created_at, updated_at`

// SalesRepo órdenes de venta (sale_orders + sale_order_items) y facturas (invoices).
type SalesRepo struct {
	q Querier
}

func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

func scanSaleOrder(row pgx.Row) (*entity.SaleOrder, error) {
	var o entity.SaleOrder
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status, &o.OrderDate, &o.DeliveryDate, &o.Subtotal,
		&o.TaxAmount, &o.TotalAmount, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.SaleOrderID, &inv.InvoiceDate, &inv.DueDate, &inv.Amount,
		&inv.PaidAmount, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

// CreateOrder inserta cabecera y líneas (dentro de la tx del llamador).
func (r *SalesRepo) CreateOrder(ctx context.Context, o *entity.SaleOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sale_orders (id, order_number, customer_id, status, order_date, delivery_date, subtotal,
			tax_amount, total_amount, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		o.ID, o.OrderNumber, o.CustomerID, o.Status, o.OrderDate, o.DeliveryDate, o.Subtotal,
		o.TaxAmount, o.TotalAmount, nullable(o.Notes), o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: orden %s", domain.ErrDuplicate, o.OrderNumber)
		}
		return fmt.Errorf("insert sale order: %w", err)
	}
	return insertItems(ctx, r.q, saleOrderItems, o.ID, o.Items)
}

func (r *SalesRepo) getOrder(ctx context.Context, id, suffix string) (*entity.SaleOrder, error) {
	o, err := scanSaleOrder(r.q.QueryRow(ctx, `SELECT `+saleOrderColumns+` FROM sale_orders WHERE id = $1`+suffix, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale order: %w", err)
	}
	if o.Items, err = loadItems(ctx, r.q, saleOrderItems, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *SalesRepo) GetOrder(ctx context.Context, id string) (*entity.SaleOrder, error) {
	return r.getOrder(ctx, id, "")
}

func (r *SalesRepo) GetOrderForUpdate(ctx context.Context, id string) (*entity.SaleOrder, error) {
	return r.getOrder(ctx, id, " FOR UPDATE")
}

func (r *SalesRepo) ListOrders(ctx context.Context, status string, limit, offset int) ([]*entity.SaleOrder, error) {
	page, args := limitClause(2, limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+saleOrderColumns+` FROM sale_orders
		WHERE ($1::text = '' OR status = $1) ORDER BY created_at DESC, id DESC`+page, append([]any{status}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("list sale orders: %w", err)
	}
	var list []*entity.SaleOrder
	for rows.Next() {
		o, err := scanSaleOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if o.Items, err = loadItems(ctx, r.q, saleOrderItems, o.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *SalesRepo) UpdateOrder(ctx context.Context, o *entity.SaleOrder) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sale_orders SET status = $2, delivery_date = $3, updated_at = $4 WHERE id = $1`,
		o.ID, o.Status, o.DeliveryDate, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateInvoice el índice único sobre invoices.sale_order_id impide facturar dos veces una orden.
func (r *SalesRepo) CreateInvoice(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoices (id, invoice_number, sale_order_id, invoice_date, due_date, amount, paid_amount,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inv.ID, inv.InvoiceNumber, inv.SaleOrderID, inv.InvoiceDate, inv.DueDate, inv.Amount, inv.PaidAmount,
		inv.Status, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: factura %s", domain.ErrDuplicate, inv.InvoiceNumber)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *SalesRepo) getInvoice(ctx context.Context, where string, arg any) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *SalesRepo) GetInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getInvoice(ctx, "id = $1", id)
}

func (r *SalesRepo) GetInvoiceForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getInvoice(ctx, "id = $1 FOR UPDATE", id)
}

func (r *SalesRepo) GetInvoiceBySaleOrder(ctx context.Context, saleOrderID string) (*entity.Invoice, error) {
	return r.getInvoice(ctx, "sale_order_id = $1", saleOrderID)
}

func (r *SalesRepo) ListInvoices(ctx context.Context, status string, limit, offset int) ([]*entity.Invoice, error) {
	page, args := limitClause(2, limit, offset)
	return r.queryInvoices(ctx, `SELECT `+invoiceColumns+` FROM invoices
		WHERE ($1::text = '' OR status = $1) ORDER BY created_at DESC, id DESC`+page, append([]any{status}, args...)...)
}

// ListOverdueInvoices compara por fecha: vencen al día siguiente de due_date.
func (r *SalesRepo) ListOverdueInvoices(ctx context.Context, asOf time.Time) ([]*entity.Invoice, error) {
	return r.queryInvoices(ctx, `SELECT `+invoiceColumns+` FROM invoices
		WHERE status IN ('pending', 'partial') AND due_date::date < $1::date
		ORDER BY due_date, id`, asOf)
}

func (r *SalesRepo) queryInvoices(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func (r *SalesRepo) UpdateInvoicePayment(ctx context.Context, inv *entity.Invoice) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE invoices SET paid_amount = $2, status = $3, updated_at = $4 WHERE id = $1`,
		inv.ID, inv.PaidAmount, inv.Status, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
