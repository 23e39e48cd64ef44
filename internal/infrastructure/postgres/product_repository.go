package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, COALESCE(description, ''), COALESCE(category_id::text, ''), price, cost_price,
	stock_quantity, min_stock_level, max_stock_level, is_active, COALESCE(created_by, ''), created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID, &p.Price, &p.CostPrice,
		&p.StockQuantity, &p.MinStockLevel, &p.MaxStockLevel, &p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto con su stock inicial.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, category_id, price, cost_price, stock_quantity,
			min_stock_level, max_stock_level, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, nullable(p.Description), nullable(p.CategoryID), p.Price, p.CostPrice, p.StockQuantity,
		p.MinStockLevel, p.MaxStockLevel, p.IsActive, nullable(p.CreatedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, p.SKU)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) get(ctx context.Context, where string, arg any, suffix string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE `+where+suffix, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, "id = $1", id, "")
}

// GetForUpdate obtiene el producto bloqueando su fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, "id = $1", id, " FOR UPDATE")
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.get(ctx, "sku = $1", sku, "")
}

// productListQuery arma el SELECT de List; mismo criterio que ProductFilter.Matches.
func productListQuery(f entity.ProductFilter) (string, []any) {
	query := `SELECT ` + productColumns + ` FROM products WHERE TRUE`
	var args []any
	if f.ActiveOnly {
		query += ` AND is_active`
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		query += fmt.Sprintf(` AND category_id::text = $%d`, len(args))
	}
	if f.Search != "" {
		args = append(args, containsPattern(f.Search))
		query += fmt.Sprintf(` AND (name ILIKE $%[1]d OR sku ILIKE $%[1]d)`, len(args))
	}
	switch f.Status {
	case entity.StockStatusLow:
		query += ` AND stock_quantity <= min_stock_level`
	case entity.StockStatusHigh:
		query += ` AND stock_quantity > min_stock_level AND stock_quantity >= max_stock_level`
	case entity.StockStatusNormal:
		query += ` AND stock_quantity > min_stock_level AND stock_quantity < max_stock_level`
	}
	page, pageArgs := limitClause(len(args)+1, f.Limit, f.Offset)
	query += ` ORDER BY created_at DESC, id DESC` + page
	return query, append(args, pageArgs...)
}

// List lista productos más recientes primero.
func (r *ProductRepo) List(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	query, args := productListQuery(f)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza datos de catálogo. No modifica stock_quantity (solo vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, description = $4, category_id = $5, price = $6, cost_price = $7,
			min_stock_level = $8, max_stock_level = $9, is_active = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, nullable(p.Description), nullable(p.CategoryID), p.Price, p.CostPrice,
		p.MinStockLevel, p.MaxStockLevel, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, p.SKU)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock escribe el stock cacheado (usado por el libro de stock).
func (r *ProductRepo) UpdateStock(ctx context.Context, productID string, quantity int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
