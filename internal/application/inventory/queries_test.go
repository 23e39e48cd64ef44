package inventory_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mini-erp/internal/application/dto"
	"github.com/jhoicas/mini-erp/internal/application/inventory"
	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
	"github.com/jhoicas/mini-erp/internal/infrastructure/memory"
	"github.com/jhoicas/mini-erp/pkg/logger"
)

func TestHistory_ListarYFiltrar(t *testing.T) {
	ctx := context.Background()
	store, ledger := newLedger(t, 10)
	for _, typ := range []entity.MovementType{entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeIn} {
		_, err := ledger.ApplyMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: typ, Quantity: 2, Actor: "u1"})
		require.NoError(t, err)
	}
	uc := inventory.NewHistoryUseCase(store.Movements(), store.Products())

	all, err := uc.List(ctx, dto.MovementListRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.Equal(t, 20, all.Page.Limit)
	assert.Equal(t, int64(12), all.Items[0].NewQuantity)

	ins, err := uc.List(ctx, dto.MovementListRequest{MovementType: "in"})
	require.NoError(t, err)
	assert.Len(t, ins.Items, 2)

	_, err = uc.List(ctx, dto.MovementListRequest{MovementType: "transfer"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	got, err := uc.Get(ctx, all.Items[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "out", got.MovementType)

	_, err = uc.Get(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.ByProduct(ctx, "nope", dto.PageRequest{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	recent, err := uc.Recent(ctx)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}

func TestReplenishment_OrdenYPrioridad(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	products := []*entity.Product{
		{ID: "a", SKU: "B-2", StockQuantity: 2, MinStockLevel: 10, MaxStockLevel: 50, IsActive: true, CostPrice: decimal.NewFromInt(3)},
		{ID: "b", SKU: "A-1", StockQuantity: 2, MinStockLevel: 10, MaxStockLevel: 40, IsActive: true},
		{ID: "c", SKU: "C-3", StockQuantity: 0, MinStockLevel: 20, MaxStockLevel: 100, IsActive: true},
		{ID: "d", SKU: "D-4", StockQuantity: 30, MinStockLevel: 10, MaxStockLevel: 100, IsActive: true},
		{ID: "e", SKU: "E-5", StockQuantity: 0, MinStockLevel: 5, MaxStockLevel: 10, IsActive: false},
	}
	for _, p := range products {
		require.NoError(t, store.Products().Create(ctx, p))
	}

	list, err := inventory.NewReplenishmentUseCase(store.Products()).GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "C-3", list[0].SKU)
	assert.Equal(t, int64(100), list[0].SuggestedOrderQty)
	assert.Equal(t, "A-1", list[1].SKU, "mismo déficit: desempata el SKU")
	assert.Equal(t, "B-2", list[2].SKU)
	assert.Equal(t, int64(48), list[2].SuggestedOrderQty)
	assert.Equal(t, "144", list[2].EstimatedOrderCost.String())
	for i, s := range list {
		assert.Equal(t, i+1, s.Priority)
	}
}

type fakeParser struct {
	rows []inventory.CountRow
	err  error
}

func (f fakeParser) ParseStockCount(io.Reader) ([]inventory.CountRow, error) { return f.rows, f.err }

func TestStockCount_Conciliacion(t *testing.T) {
	ctx := context.Background()
	store, ledger := newLedger(t, 50)
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p2", SKU: "SKU-2", StockQuantity: 8, IsActive: true}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p3", SKU: "SKU-3", StockQuantity: 4, IsActive: true}))

	parser := fakeParser{rows: []inventory.CountRow{
		{Line: 2, SKU: "SKU-1", Counted: 55},
		{Line: 3, SKU: "SKU-2", Counted: 5},
		{Line: 4, SKU: "SKU-3", Counted: 4},
		{Line: 5, SKU: "NOPE", Counted: 1},
		{Line: 6, SKU: "SKU-2", Err: errors.New("cantidad ilegible")},
	}}
	uc := inventory.NewStockCountUseCase(store, ledger, parser, logger.Nop())

	res, err := uc.Import(ctx, strings.NewReader(""), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, 1, res.Unchanged)
	assert.Equal(t, 2, res.Failed)

	assert.Equal(t, "in", res.Rows[0].MovementType)
	assert.Equal(t, int64(5), res.Rows[0].Quantity)
	assert.Equal(t, "adjustment", res.Rows[1].MovementType)
	assert.Equal(t, int64(3), res.Rows[1].Quantity)
	assert.Equal(t, dto.StockCountUnchanged, res.Rows[2].Status)
	assert.Contains(t, res.Rows[3].Error, "NOPE")

	assert.Equal(t, int64(55), stockOf(t, store, "p1"))
	assert.Equal(t, int64(5), stockOf(t, store, "p2"))

	movs, _ := store.Movements().List(ctx, entity.MovementFilter{})
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, inventory.StockCountReference, m.Reference)
	}
}

func TestStockCount_ArchivoIlegible(t *testing.T) {
	_, ledger := newLedger(t, 0)
	boom := errors.New("no es xlsx")
	uc := inventory.NewStockCountUseCase(memory.NewStore(), ledger, fakeParser{err: boom}, logger.Nop())
	_, err := uc.Import(context.Background(), strings.NewReader("x"), "u1")
	assert.ErrorIs(t, err, boom)
}

// salidaIntercalada simula una salida de otra transacción confirmada justo después de
// la lectura por SKU (lectura no bloqueante en READ COMMITTED).
type salidaIntercalada struct {
	inner inventory.TxRunner
	qty   int64
}

func (r salidaIntercalada) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	return r.inner.Run(ctx, func(tx repository.Tx) error {
		return fn(txIntercalada{Tx: tx, qty: r.qty})
	})
}

type txIntercalada struct {
	repository.Tx
	qty int64
}

func (t txIntercalada) Products() repository.ProductRepository {
	return productosIntercalados{ProductRepository: t.Tx.Products(), qty: t.qty}
}

type productosIntercalados struct {
	repository.ProductRepository
	qty int64
}

func (p productosIntercalados) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	stale, err := p.ProductRepository.GetBySKU(ctx, sku)
	if err != nil || stale == nil {
		return stale, err
	}
	if err := p.ProductRepository.UpdateStock(ctx, stale.ID, stale.StockQuantity-p.qty); err != nil {
		return nil, err
	}
	return stale, nil
}

func TestStockCount_DiferenciaSobreFilaBloqueada(t *testing.T) {
	ctx := context.Background()
	store, ledger := newLedger(t, 10)
	parser := fakeParser{rows: []inventory.CountRow{{Line: 2, SKU: "SKU-1", Counted: 8}}}
	uc := inventory.NewStockCountUseCase(salidaIntercalada{inner: store, qty: 3}, ledger, parser, logger.Nop())

	res, err := uc.Import(ctx, strings.NewReader(""), "u1")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, dto.StockCountApplied, res.Rows[0].Status)
	assert.Equal(t, int64(7), res.Rows[0].Previous)
	assert.Equal(t, "in", res.Rows[0].MovementType)
	assert.Equal(t, int64(1), res.Rows[0].Quantity)
	assert.Equal(t, int64(8), stockOf(t, store, "p1"))
}
