package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/numbering"
)

type sqlCall struct {
	sql  string
	args []any
}

// recordingQuerier registra el SQL enviado; QueryRow responde con scan y Exec con tag/err.
type recordingQuerier struct {
	calls []sqlCall
	scan  func(dest ...any) error
	tag   pgconn.CommandTag
	err   error
}

type scanRow func(dest ...any) error

func (f scanRow) Scan(dest ...any) error { return f(dest...) }

func (q *recordingQuerier) record(sql string, args []any) {
	q.calls = append(q.calls, sqlCall{sql: sql, args: args})
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.record(sql, args)
	return q.tag, q.err
}

func (q *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.record(sql, args)
	return nil, errors.New("sin conexión")
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.record(sql, args)
	if q.scan == nil {
		return scanRow(func(...any) error { return pgx.ErrNoRows })
	}
	return scanRow(q.scan)
}

func (q *recordingQuerier) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

func (q *recordingQuerier) last(t *testing.T) sqlCall {
	t.Helper()
	require.NotEmpty(t, q.calls)
	return q.calls[len(q.calls)-1]
}

func TestProductListQuery_EstadoYPaginacion(t *testing.T) {
	sql, args := productListQuery(entity.ProductFilter{Status: entity.StockStatusLow, Limit: 20})
	assert.Contains(t, sql, "AND stock_quantity <= min_stock_level")
	assert.NotContains(t, sql, "ILIKE")
	assert.True(t, strings.HasSuffix(sql, "ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2"), sql)
	assert.Equal(t, []any{20, 0}, args)

	sql, _ = productListQuery(entity.ProductFilter{Status: entity.StockStatusHigh})
	assert.Contains(t, sql, "stock_quantity > min_stock_level AND stock_quantity >= max_stock_level")
	assert.True(t, strings.HasSuffix(sql, " OFFSET $1"), sql)

	sql, _ = productListQuery(entity.ProductFilter{Status: entity.StockStatusNormal, ActiveOnly: true})
	assert.Contains(t, sql, "AND is_active")
	assert.Contains(t, sql, "stock_quantity > min_stock_level AND stock_quantity < max_stock_level")
}

func TestProductListQuery_CategoriaYBusqueda(t *testing.T) {
	sql, args := productListQuery(entity.ProductFilter{CategoryID: "cat-1", Search: "50%", Limit: 10, Offset: 5})
	assert.Contains(t, sql, "AND category_id::text = $1")
	assert.Contains(t, sql, "AND (name ILIKE $2 OR sku ILIKE $2)")
	assert.True(t, strings.HasSuffix(sql, "LIMIT $3 OFFSET $4"), sql)
	assert.Equal(t, []any{"cat-1", `%50\%%`, 10, 5}, args)
}

func TestContainsPattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, "%tornillo%", containsPattern("tornillo"))
	assert.Equal(t, `%a\_b\%c\\d%`, containsPattern(`a_b%c\d`))
}

func TestProductRepo_GetForUpdateBloqueaLaFila(t *testing.T) {
	ctx := context.Background()
	q := &recordingQuerier{}
	repo := NewProductRepository(q)

	p, err := repo.GetForUpdate(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, p, "sin filas = (nil, nil)")
	call := q.last(t)
	assert.True(t, strings.HasSuffix(call.sql, "WHERE id = $1 FOR UPDATE"), call.sql)
	assert.Equal(t, []any{"p1"}, call.args)

	_, err = repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.NotContains(t, q.last(t).sql, "FOR UPDATE")

	_, err = repo.GetBySKU(ctx, "SKU-1")
	require.NoError(t, err)
	assert.NotContains(t, q.last(t).sql, "FOR UPDATE")
}

func TestProductRepo_UpdateStockSinFila(t *testing.T) {
	q := &recordingQuerier{tag: pgconn.NewCommandTag("UPDATE 0")}
	err := NewProductRepository(q).UpdateStock(context.Background(), "p1", 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []any{"p1", int64(3)}, q.last(t).args)
}

func TestSequenceRepo_LockCounter(t *testing.T) {
	ctx := context.Background()
	q := &recordingQuerier{}
	repo := NewSequenceRepository(q)

	last, found, err := repo.LockCounter(ctx, numbering.FamilySaleOrder)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, last)
	call := q.last(t)
	assert.Contains(t, call.sql, "FROM document_sequences WHERE family = $1 FOR UPDATE")
	assert.Equal(t, []any{"SO"}, call.args)

	q.scan = func(dest ...any) error {
		*(dest[0].(*int64)) = 41
		return nil
	}
	last, found, err = repo.LockCounter(ctx, numbering.FamilySaleOrder)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(41), last)

	q.scan = func(...any) error { return errors.New("conexión perdida") }
	_, _, err = repo.LockCounter(ctx, numbering.FamilySaleOrder)
	assert.Error(t, err)
}

func TestSequenceRepo_InitCounterNoPisaOtraTransaccion(t *testing.T) {
	q := &recordingQuerier{tag: pgconn.NewCommandTag("INSERT 0 0")}
	require.NoError(t, NewSequenceRepository(q).InitCounter(context.Background(), numbering.FamilyPurchaseOrder, 7))
	call := q.last(t)
	assert.Contains(t, call.sql, "INSERT INTO document_sequences")
	assert.Contains(t, call.sql, "ON CONFLICT (family) DO NOTHING")
	assert.Equal(t, []any{"PO", int64(7)}, call.args)
}

func TestSequenceRepo_LastIssuedPorIdentificador(t *testing.T) {
	assert.Equal(t,
		"SELECT invoice_number FROM invoices ORDER BY length(invoice_number) DESC, invoice_number DESC LIMIT 1",
		lastIssuedQuery("invoices", "invoice_number"))

	ctx := context.Background()
	q := &recordingQuerier{}
	repo := NewSequenceRepository(q)

	_, found, err := repo.LastIssued(ctx, numbering.FamilyPurchaseInvoice)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Contains(t, q.last(t).sql, "FROM purchase_invoices ORDER BY length(invoice_number) DESC")

	q.scan = func(dest ...any) error {
		*(dest[0].(*string)) = "PINV-000012"
		return nil
	}
	id, found, err := repo.LastIssued(ctx, numbering.FamilyPurchaseInvoice)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "PINV-000012", id)

	_, _, err = repo.LastIssued(ctx, numbering.Family("XX"))
	assert.Error(t, err)
}

func TestCategoryRepo_DeleteEnUso(t *testing.T) {
	ctx := context.Background()
	q := &recordingQuerier{err: &pgconn.PgError{Code: "23503"}}
	assert.ErrorIs(t, NewCategoryRepository(q).Delete(ctx, "cat-1"), domain.ErrConflict)

	q = &recordingQuerier{tag: pgconn.NewCommandTag("DELETE 0")}
	assert.ErrorIs(t, NewCategoryRepository(q).Delete(ctx, "cat-1"), domain.ErrNotFound)

	q = &recordingQuerier{err: &pgconn.PgError{Code: "23505"}}
	err := NewCategoryRepository(q).Create(ctx, &entity.Category{ID: "c", Name: "Pinturas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
