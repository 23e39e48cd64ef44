package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mini-erp/internal/application/dto"
	"github.com/jhoicas/mini-erp/internal/application/inventory"
	"github.com/jhoicas/mini-erp/internal/application/purchasing"
	"github.com/jhoicas/mini-erp/internal/application/sales"
	"github.com/jhoicas/mini-erp/internal/application/sequence"
	"github.com/jhoicas/mini-erp/internal/application/usecase"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/infrastructure/excel"
	"github.com/jhoicas/mini-erp/internal/infrastructure/memory"
	"github.com/jhoicas/mini-erp/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/mini-erp/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/mini-erp/pkg/jwt"
	"github.com/jhoicas/mini-erp/pkg/logger"
)

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
}

// newAPI arma el router completo sobre el store en memoria con un producto "p-1" (stock 5).
func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	ledger := inventory.NewStockLedger(store, log)
	seq := sequence.NewSequencer(store, log)
	tax := decimal.RequireFromString("0.10")

	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		ID: "p-1", SKU: "MART-01", Name: "Martillo", Price: decimal.RequireFromString("25.00"),
		StockQuantity: 5, MinStockLevel: 2, MaxStockLevel: 20, IsActive: true,
	}))

	app := apphttp.NewApp("mini-erp-test")
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:       usecase.NewProductUseCase(store.Products(), store.Categories()),
		CategoryUC:      usecase.NewCategoryUseCase(store.Categories(), store.Products()),
		Ledger:          ledger,
		History:         inventory.NewHistoryUseCase(store.Movements(), store.Products()),
		Replenishment:   inventory.NewReplenishmentUseCase(store.Products()),
		StockCount:      inventory.NewStockCountUseCase(store, ledger, excel.NewStockCountParser(), log),
		CustomerUC:      sales.NewCustomerUseCase(store.Partners()),
		SaleOrderUC:     sales.NewOrderUseCase(store, ledger, seq, store.Sales(), tax, log),
		InvoiceUC:       sales.NewInvoiceUseCase(store, seq, store.Sales(), store.Partners(), store.Products(), pdf.NewMarotoPDFGenerator(pdf.Issuer{Name: "Mini ERP"}), log),
		SupplierUC:      purchasing.NewSupplierUseCase(store.Partners()),
		PurchaseOrderUC: purchasing.NewOrderUseCase(store, seq, store.Purchasing(), tax, log),
		PurchaseInvUC:   purchasing.NewInvoiceUseCase(store, ledger, seq, store.Purchasing(), log),
		JWTSecret:       testJWTSecret,
	})
	return &apiFixture{app: app, store: store}
}

func (f *apiFixture) call(t *testing.T, role, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (f *apiFixture) stock(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockQuantity
}

func TestHealth_SinToken(t *testing.T) {
	f := newAPI(t)
	resp, body := f.call(t, "", http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ok")
}

func TestAPI_SinToken_Retorna401(t *testing.T) {
	f := newAPI(t)
	resp, body := f.call(t, "", http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestProducts_CrearSegunRol(t *testing.T) {
	f := newAPI(t)
	in := dto.CreateProductRequest{SKU: "CLAV-02", Name: "Clavo", Price: decimal.RequireFromString("0.50"), StockQuantity: 100}

	resp, _ := f.call(t, apphttp.RoleVendedor, http.MethodPost, "/api/products", in)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := f.call(t, apphttp.RoleBodeguero, http.MethodPost, "/api/products", in)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "CLAV-02", out.SKU)
	assert.Equal(t, int64(100), out.StockQuantity)

	resp, body = f.call(t, apphttp.RoleBodeguero, http.MethodPost, "/api/products", in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "DUPLICATE")
}

func TestProducts_ValidacionDeCampos(t *testing.T) {
	f := newAPI(t)
	resp, body := f.call(t, apphttp.RoleAdmin, http.MethodPost, "/api/products", map[string]any{"name": "Sin SKU"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")
	assert.Contains(t, string(body), "sku")
}

func TestProducts_NoEncontrado(t *testing.T) {
	f := newAPI(t)
	resp, body := f.call(t, apphttp.RoleAdmin, http.MethodGet, "/api/products/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestCategorias_ProductosYBusqueda(t *testing.T) {
	f := newAPI(t)

	resp, body := f.call(t, apphttp.RoleVendedor, http.MethodPost, "/api/categories", dto.CreateCategoryRequest{Name: "Herramientas"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = f.call(t, apphttp.RoleBodeguero, http.MethodPost, "/api/categories", dto.CreateCategoryRequest{Name: "Herramientas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var cat dto.CategoryResponse
	require.NoError(t, json.Unmarshal(body, &cat))

	resp, _ = f.call(t, apphttp.RoleBodeguero, http.MethodPost, "/api/categories", dto.CreateCategoryRequest{Name: "Herramientas"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = f.call(t, apphttp.RoleBodeguero, http.MethodPost, "/api/products",
		dto.CreateProductRequest{SKU: "SERR-02", Name: "Serrucho", CategoryID: cat.ID, StockQuantity: 3})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = f.call(t, apphttp.RoleVendedor, http.MethodGet, "/api/categories/"+cat.ID+"/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var inCat dto.ListResponse[dto.ProductResponse]
	require.NoError(t, json.Unmarshal(body, &inCat))
	require.Len(t, inCat.Items, 1)
	assert.Equal(t, "SERR-02", inCat.Items[0].SKU)

	resp, body = f.call(t, apphttp.RoleVendedor, http.MethodGet, "/api/products?search=mart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var found dto.ListResponse[dto.ProductResponse]
	require.NoError(t, json.Unmarshal(body, &found))
	require.Len(t, found.Items, 1)
	assert.Equal(t, "p-1", found.Items[0].ID)

	resp, body = f.call(t, apphttp.RoleVendedor, http.MethodGet, "/api/products?category_id="+cat.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &found))
	require.Len(t, found.Items, 1)
	assert.Equal(t, "SERR-02", found.Items[0].SKU)

	resp, _ = f.call(t, apphttp.RoleAdmin, http.MethodDelete, "/api/categories/"+cat.ID, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "categoría con productos")

	resp, _ = f.call(t, apphttp.RoleAdmin, http.MethodGet, "/api/categories/nope/products", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdjustStock_SalidaYHistorial(t *testing.T) {
	f := newAPI(t)
	resp, body := f.call(t, apphttp.RoleBodeguero, http.MethodPost, "/api/products/p-1/adjust-stock",
		dto.AdjustStockRequest{MovementType: "out", Quantity: 3, Reference: "MANUAL-1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var mov dto.StockMovementResponse
	require.NoError(t, json.Unmarshal(body, &mov))
	assert.Equal(t, int64(5), mov.PreviousQuantity)
	assert.Equal(t, int64(2), mov.NewQuantity)
	assert.Equal(t, testUserID, mov.CreatedBy)
	assert.Equal(t, int64(2), f.stock(t, "p-1"))

	resp, body = f.call(t, apphttp.RoleVendedor, http.MethodGet, "/api/products/p-1/movements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ListResponse[dto.StockMovementResponse]
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, mov.ID, list.Items[0].ID)

	resp, body = f.call(t, apphttp.RoleVendedor, http.MethodGet, "/api/stock-movements/"+mov.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "MANUAL-1")
}

func TestAdjustStock_StockInsuficiente(t *testing.T) {
	f := newAPI(t)
	resp, body := f.call(t, apphttp.RoleBodeguero, http.MethodPost, "/api/products/p-1/adjust-stock",
		dto.AdjustStockRequest{MovementType: "out", Quantity: 9})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var er dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	assert.Equal(t, "INSUFFICIENT_STOCK", er.Code)
	require.NotNil(t, er.Available)
	require.NotNil(t, er.Requested)
	assert.Equal(t, int64(5), *er.Available)
	assert.Equal(t, int64(9), *er.Requested)
	assert.Equal(t, int64(5), f.stock(t, "p-1"))
}

func TestAdjustStock_EntradaInvalida(t *testing.T) {
	f := newAPI(t)
	cases := []struct {
		name string
		path string
		in   dto.AdjustStockRequest
		want int
	}{
		{"tipo desconocido", "/api/products/p-1/adjust-stock", dto.AdjustStockRequest{MovementType: "transfer", Quantity: 1}, http.StatusBadRequest},
		{"cantidad cero", "/api/products/p-1/adjust-stock", dto.AdjustStockRequest{MovementType: "in", Quantity: 0}, http.StatusBadRequest},
		{"producto inexistente", "/api/products/nada/adjust-stock", dto.AdjustStockRequest{MovementType: "in", Quantity: 1}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := f.call(t, apphttp.RoleAdmin, http.MethodPost, tc.path, tc.in)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
	assert.Equal(t, int64(5), f.stock(t, "p-1"))
}

func TestAdjustStock_TipoPorDefectoAjuste(t *testing.T) {
	f := newAPI(t)
	resp, body := f.call(t, apphttp.RoleBodeguero, http.MethodPost, "/api/products/p-1/adjust-stock", fiber.Map{"quantity": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var mov dto.StockMovementResponse
	require.NoError(t, json.Unmarshal(body, &mov))
	assert.Equal(t, "adjustment", mov.MovementType)
	assert.Equal(t, int64(3), mov.NewQuantity)
	assert.Equal(t, int64(3), f.stock(t, "p-1"))
}

func TestLowStock_Sugerencias(t *testing.T) {
	f := newAPI(t)
	resp, _ := f.call(t, apphttp.RoleBodeguero, http.MethodPost, "/api/products/p-1/adjust-stock",
		dto.AdjustStockRequest{MovementType: "adjustment", Quantity: 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := f.call(t, apphttp.RoleBodeguero, http.MethodGet, "/api/products/low-stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []dto.ReplenishmentSuggestionDTO
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "MART-01", out[0].SKU)
	assert.Equal(t, int64(19), out[0].SuggestedOrderQty)
}

func TestVentas_FlujoCompleto(t *testing.T) {
	f := newAPI(t)
	vend := apphttp.RoleVendedor

	resp, body := f.call(t, vend, http.MethodPost, "/api/customers", dto.CreateCustomerRequest{Name: "Ferretería Centro"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var customer dto.CustomerResponse
	require.NoError(t, json.Unmarshal(body, &customer))

	resp, body = f.call(t, vend, http.MethodPost, "/api/sale-orders", dto.CreateSaleOrderRequest{
		CustomerID: customer.ID,
		Items:      []dto.LineItemRequest{{ProductID: "p-1", Quantity: 2}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var order dto.SaleOrderResponse
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, "SO-000001", order.OrderNumber)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("55")))

	resp, body = f.call(t, vend, http.MethodPost, "/api/sale-orders/"+order.ID+"/invoice", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "una orden en borrador no se factura")
	assert.Contains(t, string(body), "CONFLICT")

	resp, body = f.call(t, vend, http.MethodPost, "/api/sale-orders/"+order.ID+"/confirm", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, int64(3), f.stock(t, "p-1"))

	resp, body = f.call(t, vend, http.MethodPost, "/api/sale-orders/"+order.ID+"/invoice", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var inv dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(body, &inv))
	assert.Equal(t, "INV-000001", inv.InvoiceNumber)

	resp, _ = f.call(t, vend, http.MethodPost, "/api/sale-orders/"+order.ID+"/invoice", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "una sola factura por orden")

	resp, body = f.call(t, vend, http.MethodPost, "/api/invoices/"+inv.ID+"/payments",
		dto.RegisterPaymentRequest{Amount: decimal.RequireFromString("20")})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &inv))
	assert.Equal(t, entity.PaymentStatusPartial, inv.Status)
	assert.True(t, inv.Balance.Equal(decimal.RequireFromString("35")))

	resp, _ = f.call(t, vend, http.MethodPost, "/api/invoices/"+inv.ID+"/payments",
		dto.RegisterPaymentRequest{Amount: decimal.RequireFromString("100")})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "sobrepago rechazado")

	resp, body = f.call(t, vend, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestVentas_IDDeRutaGuardadoSobreviveOtrasPeticiones(t *testing.T) {
	f := newAPI(t)
	vend := apphttp.RoleVendedor
	ctx := context.Background()

	resp, body := f.call(t, vend, http.MethodPost, "/api/customers", dto.CreateCustomerRequest{Name: "Cliente"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var customer dto.CustomerResponse
	require.NoError(t, json.Unmarshal(body, &customer))

	resp, body = f.call(t, vend, http.MethodPost, "/api/sale-orders", dto.CreateSaleOrderRequest{
		CustomerID: customer.ID,
		Items:      []dto.LineItemRequest{{ProductID: "p-1", Quantity: 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var order dto.SaleOrderResponse
	require.NoError(t, json.Unmarshal(body, &order))

	resp, _ = f.call(t, vend, http.MethodPost, "/api/sale-orders/"+order.ID+"/confirm", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = f.call(t, vend, http.MethodPost, "/api/sale-orders/"+order.ID+"/invoice", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var inv dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(body, &inv))

	for _, path := range []string{
		"/api/products/zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
		"/api/sale-orders/yyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyy",
		"/api/invoices/xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx",
		"/api/customers/wwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwwww",
	} {
		resp, _ = f.call(t, vend, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	stored, err := f.store.Sales().GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, order.ID, stored.SaleOrderID)

	resp, body = f.call(t, vend, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
}

func TestVentas_ConfirmarSinStock(t *testing.T) {
	f := newAPI(t)
	resp, body := f.call(t, apphttp.RoleVendedor, http.MethodPost, "/api/customers", dto.CreateCustomerRequest{Name: "Cliente"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var customer dto.CustomerResponse
	require.NoError(t, json.Unmarshal(body, &customer))

	resp, body = f.call(t, apphttp.RoleVendedor, http.MethodPost, "/api/sale-orders", dto.CreateSaleOrderRequest{
		CustomerID: customer.ID,
		Items:      []dto.LineItemRequest{{ProductID: "p-1", Quantity: 6}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order dto.SaleOrderResponse
	require.NoError(t, json.Unmarshal(body, &order))

	resp, body = f.call(t, apphttp.RoleVendedor, http.MethodPost, "/api/sale-orders/"+order.ID+"/confirm", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")
	assert.Equal(t, int64(5), f.stock(t, "p-1"))

	resp, body = f.call(t, apphttp.RoleVendedor, http.MethodGet, "/api/sale-orders/"+order.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"draft"`)
}

func TestCompras_FacturaIngresaStock(t *testing.T) {
	f := newAPI(t)
	bod := apphttp.RoleBodeguero

	resp, body := f.call(t, bod, http.MethodPost, "/api/suppliers", dto.CreateSupplierRequest{Name: "Aceros SA"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var supplier dto.SupplierResponse
	require.NoError(t, json.Unmarshal(body, &supplier))

	resp, body = f.call(t, bod, http.MethodPost, "/api/purchase-orders", dto.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Items:      []dto.LineItemRequest{{ProductID: "p-1", Quantity: 10, UnitPrice: decimal.RequireFromString("12")}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var po dto.PurchaseOrderResponse
	require.NoError(t, json.Unmarshal(body, &po))
	assert.Equal(t, "PO-000001", po.OrderNumber)

	resp, _ = f.call(t, bod, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "borrador no pasa directo a recibida")
	for _, step := range []string{"send", "confirm", "receive"} {
		resp, body = f.call(t, bod, http.MethodPost, "/api/purchase-orders/"+po.ID+"/"+step, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, step+": "+string(body))
	}
	assert.Equal(t, int64(5), f.stock(t, "p-1"), "la orden de compra no mueve stock")

	resp, body = f.call(t, bod, http.MethodPost, "/api/purchase-invoices", dto.CreatePurchaseInvoiceRequest{
		SupplierID: supplier.ID,
		Items:      []dto.LineItemRequest{{ProductID: "p-1", Quantity: 10, UnitPrice: decimal.RequireFromString("12")}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var pinv dto.PurchaseInvoiceResponse
	require.NoError(t, json.Unmarshal(body, &pinv))
	assert.Equal(t, "PINV-000001", pinv.InvoiceNumber)
	assert.True(t, pinv.Amount.Equal(decimal.RequireFromString("120")))
	assert.Equal(t, int64(15), f.stock(t, "p-1"))

	resp, body = f.call(t, bod, http.MethodGet, "/api/stock-movements?movement_type=in", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "PINV-000001")

	resp, _ = f.call(t, apphttp.RoleVendedor, http.MethodPost, "/api/purchase-invoices", dto.CreatePurchaseInvoiceRequest{
		SupplierID: supplier.ID,
		Items:      []dto.LineItemRequest{{ProductID: "p-1", Quantity: 1}},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStockMovements_ImportarConteo(t *testing.T) {
	f := newAPI(t)

	x := excelize.NewFile()
	sheet := x.GetSheetName(0)
	require.NoError(t, x.SetSheetRow(sheet, "A1", &[]any{"SKU", "Cantidad"}))
	require.NoError(t, x.SetSheetRow(sheet, "A2", &[]any{"MART-01", 8}))
	require.NoError(t, x.SetSheetRow(sheet, "A3", &[]any{"NO-EXISTE", 1}))
	xlsx, err := x.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, x.Close())

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	fw, err := mw.CreateFormFile("file", "conteo.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(xlsx.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/stock-movements/import", &form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", tokenForRole(t, apphttp.RoleBodeguero))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.StockCountResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 1, out.Applied)
	assert.Equal(t, 1, out.Failed)
	assert.Equal(t, int64(8), f.stock(t, "p-1"))
}

func TestStockMovements_ImportarSinArchivo(t *testing.T) {
	f := newAPI(t)
	resp, body := f.call(t, apphttp.RoleAdmin, http.MethodPost, "/api/stock-movements/import", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestJWT_ActorEnMovimientos(t *testing.T) {
	f := newAPI(t)
	tok, err := pkgjwt.Generate(testJWTSecret, "bodega-7", apphttp.RoleBodeguero, testIssuer, testExpMin)
	require.NoError(t, err)

	raw, _ := json.Marshal(dto.AdjustStockRequest{MovementType: "in", Quantity: 1})
	req := httptest.NewRequest(http.MethodPost, "/api/products/p-1/adjust-stock", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var mov dto.StockMovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mov))
	assert.Equal(t, "bodega-7", mov.CreatedBy)
}
