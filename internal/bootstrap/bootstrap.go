// Package bootstrap arma el grafo de dependencias compartido por cmd/api y cmd/import_stock.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/mini-erp/internal/application/inventory"
	"github.com/jhoicas/mini-erp/internal/application/purchasing"
	"github.com/jhoicas/mini-erp/internal/application/sales"
	"github.com/jhoicas/mini-erp/internal/application/sequence"
	"github.com/jhoicas/mini-erp/internal/application/usecase"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
	"github.com/jhoicas/mini-erp/internal/infrastructure/excel"
	"github.com/jhoicas/mini-erp/internal/infrastructure/memory"
	"github.com/jhoicas/mini-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/mini-erp/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/mini-erp/internal/interfaces/http"
	"github.com/jhoicas/mini-erp/pkg/config"
	"github.com/jhoicas/mini-erp/pkg/logger"
)

// Store repositorios autocommit más transacciones. Lo cumplen memory.Store y postgres.Store.
type Store interface {
	repository.Tx
	Run(ctx context.Context, fn func(tx repository.Tx) error) error
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// OpenStore abre el almacén según DB_DRIVER. El cierre devuelto libera el pool (no-op en memoria).
func OpenStore(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (Store, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return memory.NewStore(), func() {}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewStore(pool)
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.Driver)
	}
}

// Services casos de uso listos para los adaptadores de entrada.
type Services struct {
	Products        *usecase.ProductUseCase
	Categories      *usecase.CategoryUseCase
	Ledger          *inventory.StockLedger
	History         *inventory.HistoryUseCase
	Replenishment   *inventory.ReplenishmentUseCase
	StockCount      *inventory.StockCountUseCase
	Sequencer       *sequence.Sequencer
	Customers       *sales.CustomerUseCase
	SaleOrders      *sales.OrderUseCase
	Invoices        *sales.InvoiceUseCase
	Suppliers       *purchasing.SupplierUseCase
	PurchaseOrders  *purchasing.OrderUseCase
	PurchaseInvoice *purchasing.InvoiceUseCase
}

// NewServices construye todos los casos de uso sobre el mismo store.
func NewServices(store Store, cfg *config.Config, log *logger.Logger) *Services {
	ledger := inventory.NewStockLedger(store, log)
	seq := sequence.NewSequencer(store, log)
	generator := pdf.NewMarotoPDFGenerator(pdf.Issuer{
		Name:    cfg.Issuer.Name,
		TaxID:   cfg.Issuer.TaxID,
		Address: cfg.Issuer.Address,
		Phone:   cfg.Issuer.Phone,
		Email:   cfg.Issuer.Email,
	})

	return &Services{
		Products:        usecase.NewProductUseCase(store.Products(), store.Categories()),
		Categories:      usecase.NewCategoryUseCase(store.Categories(), store.Products()),
		Ledger:          ledger,
		History:         inventory.NewHistoryUseCase(store.Movements(), store.Products()),
		Replenishment:   inventory.NewReplenishmentUseCase(store.Products()),
		StockCount:      inventory.NewStockCountUseCase(store, ledger, excel.NewStockCountParser(), log),
		Sequencer:       seq,
		Customers:       sales.NewCustomerUseCase(store.Partners()),
		SaleOrders:      sales.NewOrderUseCase(store, ledger, seq, store.Sales(), cfg.Sales.TaxRate, log),
		Invoices:        sales.NewInvoiceUseCase(store, seq, store.Sales(), store.Partners(), store.Products(), generator, log),
		Suppliers:       purchasing.NewSupplierUseCase(store.Partners()),
		PurchaseOrders:  purchasing.NewOrderUseCase(store, seq, store.Purchasing(), cfg.Sales.TaxRate, log),
		PurchaseInvoice: purchasing.NewInvoiceUseCase(store, ledger, seq, store.Purchasing(), log),
	}
}

// RouterDeps dependencias del router HTTP.
func (s *Services) RouterDeps(jwtSecret string) httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		ProductUC:       s.Products,
		CategoryUC:      s.Categories,
		Ledger:          s.Ledger,
		History:         s.History,
		Replenishment:   s.Replenishment,
		StockCount:      s.StockCount,
		CustomerUC:      s.Customers,
		SaleOrderUC:     s.SaleOrders,
		InvoiceUC:       s.Invoices,
		SupplierUC:      s.Suppliers,
		PurchaseOrderUC: s.PurchaseOrders,
		PurchaseInvUC:   s.PurchaseInvoice,
		JWTSecret:       jwtSecret,
	}
}
