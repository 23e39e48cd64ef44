package repository

import (
	"context"

	"github.com/jhoicas/mini-erp/internal/domain/entity"
)

// PartnerRepository clientes y proveedores.
type PartnerRepository interface {
	CreateCustomer(ctx context.Context, c *entity.Customer) error
	GetCustomer(ctx context.Context, id string) (*entity.Customer, error)
	ListCustomers(ctx context.Context, limit, offset int) ([]*entity.Customer, error)

	CreateSupplier(ctx context.Context, s *entity.Supplier) error
	GetSupplier(ctx context.Context, id string) (*entity.Supplier, error)
	ListSuppliers(ctx context.Context, limit, offset int) ([]*entity.Supplier, error)
}
