// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory y en las pruebas de casos de uso. Las transacciones
// son serializables: Run toma un candado global, trabaja sobre una copia del estado
// y solo la publica si fn termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/numbering"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

type state struct {
	products         map[string]entity.Product
	categories       map[string]entity.Category
	movements        []entity.StockMovement // orden de inserción
	sequences        map[numbering.Family]int64
	lastIssued       map[numbering.Family]string
	customers        map[string]entity.Customer
	suppliers        map[string]entity.Supplier
	saleOrders       map[string]entity.SaleOrder
	invoices         map[string]entity.Invoice
	purchaseOrders   map[string]entity.PurchaseOrder
	purchaseInvoices map[string]entity.PurchaseInvoice
	// inserción, para listar más reciente primero sin depender del reloj
	customerOrder, supplierOrder, saleOrderOrder, invoiceOrder, purchaseOrderOrder, purchaseInvoiceOrder, productOrder []string
}

func newState() *state {
	return &state{
		products:         map[string]entity.Product{},
		categories:       map[string]entity.Category{},
		sequences:        map[numbering.Family]int64{},
		lastIssued:       map[numbering.Family]string{},
		customers:        map[string]entity.Customer{},
		suppliers:        map[string]entity.Supplier{},
		saleOrders:       map[string]entity.SaleOrder{},
		invoices:         map[string]entity.Invoice{},
		purchaseOrders:   map[string]entity.PurchaseOrder{},
		purchaseInvoices: map[string]entity.PurchaseInvoice{},
	}
}

func (s *state) clone() *state {
	c := &state{
		products:         cloneMap(s.products),
		categories:       cloneMap(s.categories),
		movements:        append([]entity.StockMovement(nil), s.movements...),
		sequences:        cloneMap(s.sequences),
		lastIssued:       cloneMap(s.lastIssued),
		customers:        cloneMap(s.customers),
		suppliers:        cloneMap(s.suppliers),
		saleOrders:       make(map[string]entity.SaleOrder, len(s.saleOrders)),
		invoices:         cloneMap(s.invoices),
		purchaseOrders:   make(map[string]entity.PurchaseOrder, len(s.purchaseOrders)),
		purchaseInvoices: make(map[string]entity.PurchaseInvoice, len(s.purchaseInvoices)),

		customerOrder:        append([]string(nil), s.customerOrder...),
		supplierOrder:        append([]string(nil), s.supplierOrder...),
		saleOrderOrder:       append([]string(nil), s.saleOrderOrder...),
		invoiceOrder:         append([]string(nil), s.invoiceOrder...),
		purchaseOrderOrder:   append([]string(nil), s.purchaseOrderOrder...),
		purchaseInvoiceOrder: append([]string(nil), s.purchaseInvoiceOrder...),
		productOrder:         append([]string(nil), s.productOrder...),
	}
	for k, v := range s.saleOrders {
		v.Items = cloneItems(v.Items)
		c.saleOrders[k] = v
	}
	for k, v := range s.purchaseOrders {
		v.Items = cloneItems(v.Items)
		c.purchaseOrders[k] = v
	}
	for k, v := range s.purchaseInvoices {
		v.Items = cloneItems(v.Items)
		c.purchaseInvoices[k] = v
	}
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneItems(items []entity.LineItem) []entity.LineItem {
	if items == nil {
		return nil
	}
	return append([]entity.LineItem(nil), items...)
}

// db acceso al estado: directo dentro de una transacción, con candado fuera de ella.
type db interface {
	do(fn func(st *state) error) error
}

type txDB struct{ st *state }

func (t txDB) do(fn func(st *state) error) error { return fn(t.st) }

var (
	_ repository.Tx = (*Store)(nil)
	_ repository.Tx = (*tx)(nil)
)

// Store estado confirmado. Sus repositorios (Products(), Sales(), ...) operan en
// modo autocommit; Run abre una transacción.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) do(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Run ejecuta fn sobre una copia del estado; la publica si fn no falla (Commit), la descarta si falla (Rollback).
func (s *Store) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(&tx{db: txDB{st: work}}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (s *Store) Products() repository.ProductRepository        { return &productRepo{db: s} }
func (s *Store) Categories() repository.CategoryRepository     { return &categoryRepo{db: s} }
func (s *Store) Movements() repository.StockMovementRepository { return &movementRepo{db: s} }
func (s *Store) Sequences() repository.SequenceRepository      { return &sequenceRepo{db: s} }
func (s *Store) Partners() repository.PartnerRepository        { return &partnerRepo{db: s} }
func (s *Store) Sales() repository.SalesRepository             { return &salesRepo{db: s} }
func (s *Store) Purchasing() repository.PurchasingRepository   { return &purchasingRepo{db: s} }

type tx struct{ db txDB }

func (t *tx) Products() repository.ProductRepository        { return &productRepo{db: t.db} }
func (t *tx) Categories() repository.CategoryRepository     { return &categoryRepo{db: t.db} }
func (t *tx) Movements() repository.StockMovementRepository { return &movementRepo{db: t.db} }
func (t *tx) Sequences() repository.SequenceRepository      { return &sequenceRepo{db: t.db} }
func (t *tx) Partners() repository.PartnerRepository        { return &partnerRepo{db: t.db} }
func (t *tx) Sales() repository.SalesRepository             { return &salesRepo{db: t.db} }
func (t *tx) Purchasing() repository.PurchasingRepository   { return &purchasingRepo{db: t.db} }

// page aplica limit/offset sobre una lista ya ordenada. limit <= 0 = sin límite.
func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
