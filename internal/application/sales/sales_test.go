package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mini-erp/internal/application/dto"
	"github.com/jhoicas/mini-erp/internal/application/inventory"
	"github.com/jhoicas/mini-erp/internal/application/sales"
	"github.com/jhoicas/mini-erp/internal/application/sequence"
	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/infrastructure/memory"
	"github.com/jhoicas/mini-erp/pkg/logger"
)

type fakePDF struct{ doc *sales.InvoiceDocument }

func (f *fakePDF) GenerateInvoicePDF(_ context.Context, doc *sales.InvoiceDocument) ([]byte, error) {
	f.doc = doc
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	store    *memory.Store
	orders   *sales.OrderUseCase
	invoices *sales.InvoiceUseCase
	pdf      *fakePDF
	customer string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	log := logger.Nop()
	ledger := inventory.NewStockLedger(store, log)
	seq := sequence.NewSequencer(store, log)
	pdf := &fakePDF{}

	for _, p := range []*entity.Product{
		{ID: "p-a", SKU: "A", Name: "Martillo", Price: decimal.RequireFromString("100.00"), StockQuantity: 10, IsActive: true},
		{ID: "p-b", SKU: "B", Name: "Clavo", Price: decimal.RequireFromString("15.50"), StockQuantity: 3, IsActive: true},
	} {
		require.NoError(t, store.Products().Create(ctx, p))
	}
	customer, err := sales.NewCustomerUseCase(store.Partners()).Create(ctx, dto.CreateCustomerRequest{Name: "Ferretería Sur"})
	require.NoError(t, err)

	return &fixture{
		store:    store,
		orders:   sales.NewOrderUseCase(store, ledger, seq, store.Sales(), decimal.RequireFromString("0.10"), log),
		invoices: sales.NewInvoiceUseCase(store, seq, store.Sales(), store.Partners(), store.Products(), pdf, log),
		pdf:      pdf,
		customer: customer.ID,
	}
}

func (f *fixture) stock(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.StockQuantity
}

func (f *fixture) draft(t *testing.T, qtyA, qtyB int64) *dto.SaleOrderResponse {
	t.Helper()
	o, err := f.orders.Create(context.Background(), "vendedor-1", dto.CreateSaleOrderRequest{
		CustomerID: f.customer,
		Items: []dto.LineItemRequest{
			{ProductID: "p-b", Quantity: qtyB},
			{ProductID: "p-a", Quantity: qtyA},
		},
	})
	require.NoError(t, err)
	return o
}

func TestCreate_NumeroYTotales(t *testing.T) {
	f := newFixture(t)
	o := f.draft(t, 2, 3)

	assert.Equal(t, "SO-000001", o.OrderNumber)
	assert.Equal(t, entity.SaleOrderDraft, o.Status)
	assert.Equal(t, "246.50", o.Subtotal.StringFixed(2))
	assert.Equal(t, "24.65", o.TaxAmount.StringFixed(2))
	assert.Equal(t, "271.15", o.TotalAmount.StringFixed(2))
	assert.Equal(t, int64(10), f.stock(t, "p-a"), "el borrador no descuenta stock")

	second := f.draft(t, 1, 1)
	assert.Equal(t, "SO-000002", second.OrderNumber)
}

func TestCreate_ClienteOProductoInexistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.orders.Create(ctx, "u", dto.CreateSaleOrderRequest{CustomerID: "nope", Items: []dto.LineItemRequest{{ProductID: "p-a", Quantity: 1}}})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.orders.Create(ctx, "u", dto.CreateSaleOrderRequest{CustomerID: f.customer, Items: []dto.LineItemRequest{{ProductID: "nope", Quantity: 1}}})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.orders.Create(ctx, "u", dto.CreateSaleOrderRequest{CustomerID: f.customer, Items: []dto.LineItemRequest{{ProductID: "p-a", Quantity: 0}}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Los intentos fallidos no consumen números.
	assert.Equal(t, "SO-000001", f.draft(t, 1, 1).OrderNumber)
}

func TestConfirm_DescuentaStockConReferencia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.draft(t, 2, 3)

	confirmed, err := f.orders.Confirm(ctx, "bodega-1", o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleOrderConfirmed, confirmed.Status)
	assert.Equal(t, int64(8), f.stock(t, "p-a"))
	assert.Equal(t, int64(0), f.stock(t, "p-b"))

	movs, err := f.store.Movements().List(ctx, entity.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeOut, m.Type)
		assert.Equal(t, "SO-000001", m.Reference)
		assert.Equal(t, "bodega-1", m.CreatedBy)
	}
	assert.Equal(t, "p-a", movs[1].ProductID, "las líneas se aplican en orden de producto")

	_, err = f.orders.Confirm(ctx, "bodega-1", o.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestConfirm_StockInsuficienteRevierteTodo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.draft(t, 2, 4) // p-b solo tiene 3

	_, err := f.orders.Confirm(ctx, "u", o.ID)
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "p-b", ise.ProductID)
	assert.Equal(t, int64(3), ise.Available)
	assert.Equal(t, int64(4), ise.Requested)

	assert.Equal(t, int64(10), f.stock(t, "p-a"), "la línea de p-a aplicada antes se revierte")
	movs, _ := f.store.Movements().List(ctx, entity.MovementFilter{})
	assert.Empty(t, movs)
	got, err := f.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleOrderDraft, got.Status)
}

func TestCancel_ConfirmadaDevuelveStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.draft(t, 2, 1)
	_, err := f.orders.Confirm(ctx, "u", o.ID)
	require.NoError(t, err)

	cancelled, err := f.orders.Cancel(ctx, "u", o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleOrderCancelled, cancelled.Status)
	assert.Equal(t, int64(10), f.stock(t, "p-a"))
	assert.Equal(t, int64(3), f.stock(t, "p-b"))

	returns, _ := f.store.Movements().List(ctx, entity.MovementFilter{Type: entity.MovementTypeReturn})
	assert.Len(t, returns, 2)

	// Cancelar un borrador no genera movimientos.
	d := f.draft(t, 1, 1)
	_, err = f.orders.Cancel(ctx, "u", d.ID)
	require.NoError(t, err)
	all, _ := f.store.Movements().List(ctx, entity.MovementFilter{})
	assert.Len(t, all, 4)
}

func TestShipDeliver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.draft(t, 1, 1)

	_, err := f.orders.Ship(ctx, o.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict), "un borrador no se despacha")

	_, err = f.orders.Confirm(ctx, "u", o.ID)
	require.NoError(t, err)
	_, err = f.orders.Ship(ctx, o.ID)
	require.NoError(t, err)
	delivered, err := f.orders.Deliver(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, delivered.DeliveryDate)

	_, err = f.orders.Cancel(ctx, "u", o.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = f.orders.Ship(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestInvoice_UnaPorOrdenYPagos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.draft(t, 2, 3)

	_, err := f.invoices.CreateFromOrder(ctx, o.ID, dto.CreateInvoiceRequest{})
	assert.True(t, errors.Is(err, domain.ErrConflict), "un borrador no se factura")

	_, err = f.orders.Confirm(ctx, "u", o.ID)
	require.NoError(t, err)
	inv, err := f.invoices.CreateFromOrder(ctx, o.ID, dto.CreateInvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", inv.InvoiceNumber)
	assert.Equal(t, "271.15", inv.Amount.StringFixed(2))
	assert.Equal(t, entity.PaymentStatusPending, inv.Status)
	assert.True(t, inv.InvoiceDate.AddDate(0, 0, 30).Equal(inv.DueDate))

	_, err = f.invoices.CreateFromOrder(ctx, o.ID, dto.CreateInvoiceRequest{})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	paid, err := f.invoices.RegisterPayment(ctx, inv.ID, decimal.RequireFromString("100"))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPartial, paid.Status)
	assert.Equal(t, "171.15", paid.Balance.StringFixed(2))

	_, err = f.invoices.RegisterPayment(ctx, inv.ID, decimal.RequireFromString("500"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	paid, err = f.invoices.RegisterPayment(ctx, inv.ID, decimal.RequireFromString("171.15"))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, paid.Status)
}

func TestInvoice_Vencidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.draft(t, 1, 1)
	_, err := f.orders.Confirm(ctx, "u", o.ID)
	require.NoError(t, err)

	past := time.Now().UTC().AddDate(0, 0, -40)
	due := past.AddDate(0, 0, 10)
	inv, err := f.invoices.CreateFromOrder(ctx, o.ID, dto.CreateInvoiceRequest{InvoiceDate: &past, DueDate: &due})
	require.NoError(t, err)

	overdue, err := f.invoices.Overdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, inv.ID, overdue[0].ID)
}

func TestInvoicePDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.draft(t, 1, 1)
	_, err := f.orders.Confirm(ctx, "u", o.ID)
	require.NoError(t, err)
	inv, err := f.invoices.CreateFromOrder(ctx, o.ID, dto.CreateInvoiceRequest{})
	require.NoError(t, err)

	pdf, name, err := f.invoices.InvoicePDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "factura_INV-000001.pdf", name)
	assert.Equal(t, "%PDF-fake", string(pdf))
	require.NotNil(t, f.pdf.doc)
	assert.Equal(t, "Ferretería Sur", f.pdf.doc.Customer.Name)
	require.Len(t, f.pdf.doc.Lines, 2)
	assert.NotEmpty(t, f.pdf.doc.Lines[0].ProductName)

	_, _, err = f.invoices.InvoicePDF(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
