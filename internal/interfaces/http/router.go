package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mini-erp/internal/application/inventory"
	"github.com/jhoicas/mini-erp/internal/application/purchasing"
	"github.com/jhoicas/mini-erp/internal/application/sales"
	"github.com/jhoicas/mini-erp/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *usecase.ProductUseCase
	CategoryUC      *usecase.CategoryUseCase
	Ledger          *inventory.StockLedger
	History         *inventory.HistoryUseCase
	Replenishment   *inventory.ReplenishmentUseCase
	StockCount      *inventory.StockCountUseCase
	CustomerUC      *sales.CustomerUseCase
	SaleOrderUC     *sales.OrderUseCase
	InvoiceUC       *sales.InvoiceUseCase
	SupplierUC      *purchasing.SupplierUseCase
	PurchaseOrderUC *purchasing.OrderUseCase
	PurchaseInvUC   *purchasing.InvoiceUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Todo /api requiere Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	warehouse := RequireRole(RoleAdmin, RoleBodeguero)
	sellers := RequireRole(RoleAdmin, RoleVendedor)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Ledger, deps.History, deps.Replenishment)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Post("/", warehouse, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", warehouse, productHandler.Update)
	products.Post("/:id/adjust-stock", warehouse, productHandler.AdjustStock)
	products.Get("/:id/movements", productHandler.Movements)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", warehouse, categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", warehouse, categoryHandler.Update)
	categories.Delete("/:id", warehouse, categoryHandler.Delete)
	categories.Get("/:id/products", categoryHandler.Products)

	// Stock movements (solo lectura + conteo físico)
	movements := api.Group("/stock-movements")
	movementHandler := NewMovementHandler(deps.History, deps.StockCount)
	movements.Get("/", movementHandler.List)
	movements.Get("/recent", movementHandler.Recent)
	movements.Post("/import", warehouse, movementHandler.Import)
	movements.Get("/:id", movementHandler.GetByID)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", sellers, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Sale orders
	saleOrders := api.Group("/sale-orders")
	saleOrderHandler := NewSaleOrderHandler(deps.SaleOrderUC, deps.InvoiceUC)
	saleOrders.Post("/", sellers, saleOrderHandler.Create)
	saleOrders.Get("/", saleOrderHandler.List)
	saleOrders.Get("/:id", saleOrderHandler.GetByID)
	saleOrders.Post("/:id/confirm", sellers, saleOrderHandler.Confirm)
	saleOrders.Post("/:id/ship", sellers, saleOrderHandler.Ship)
	saleOrders.Post("/:id/deliver", sellers, saleOrderHandler.Deliver)
	saleOrders.Post("/:id/cancel", sellers, saleOrderHandler.Cancel)
	saleOrders.Post("/:id/invoice", sellers, saleOrderHandler.Invoice)

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/overdue", invoiceHandler.Overdue)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Post("/:id/payments", sellers, invoiceHandler.RegisterPayment)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", warehouse, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Purchase orders
	purchaseOrders := api.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	purchaseOrders.Post("/", warehouse, poHandler.Create)
	purchaseOrders.Get("/", poHandler.List)
	purchaseOrders.Get("/:id", poHandler.GetByID)
	purchaseOrders.Post("/:id/send", warehouse, poHandler.Send)
	purchaseOrders.Post("/:id/confirm", warehouse, poHandler.Confirm)
	purchaseOrders.Post("/:id/receive", warehouse, poHandler.Receive)
	purchaseOrders.Post("/:id/cancel", warehouse, poHandler.Cancel)

	// Purchase invoices
	purchaseInvoices := api.Group("/purchase-invoices")
	piHandler := NewPurchaseInvoiceHandler(deps.PurchaseInvUC)
	purchaseInvoices.Post("/", warehouse, piHandler.Create)
	purchaseInvoices.Get("/", piHandler.List)
	purchaseInvoices.Get("/overdue", piHandler.Overdue)
	purchaseInvoices.Get("/:id", piHandler.GetByID)
	purchaseInvoices.Post("/:id/payments", warehouse, piHandler.RegisterPayment)
}
