package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mini-erp/internal/domain/entity"
)

// itemTable tabla de líneas de un tipo de documento y su columna hacia la cabecera.
type itemTable struct {
	name string
	fk   string
}

var (
	saleOrderItems       = itemTable{"sale_order_items", "sale_order_id"}
	purchaseOrderItems   = itemTable{"purchase_order_items", "purchase_order_id"}
	purchaseInvoiceItems = itemTable{"purchase_invoice_items", "purchase_invoice_id"}
)

// insertItems inserta las líneas en un solo round-trip con pgx.Batch.
func insertItems(ctx context.Context, q Querier, t itemTable, docID string, items []entity.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, %s, product_id, quantity, unit_price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, t.name, t.fk)
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(query, it.ID, docID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice, it.CreatedAt)
	}
	br := q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert %s: %w", t.name, err)
		}
	}
	return nil
}

// loadItems líneas de un documento en orden de inserción.
func loadItems(ctx context.Context, q Querier, t itemTable, docID string) ([]entity.LineItem, error) {
	query := fmt.Sprintf(`SELECT id, %s, product_id, quantity, unit_price, total_price, created_at
		FROM %s WHERE %s = $1 ORDER BY created_at, id`, t.fk, t.name, t.fk)
	rows, err := q.Query(ctx, query, docID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()
	var items []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
