package memory

import (
	"context"

	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

var _ repository.PartnerRepository = (*partnerRepo)(nil)

type partnerRepo struct{ db db }

func (r *partnerRepo) CreateCustomer(_ context.Context, c *entity.Customer) error {
	return r.db.do(func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.customers[c.ID] = *c
		st.customerOrder = append(st.customerOrder, c.ID)
		return nil
	})
}

func (r *partnerRepo) GetCustomer(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.db.do(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *partnerRepo) ListCustomers(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	var list []*entity.Customer
	err := r.db.do(func(st *state) error {
		for i := len(st.customerOrder) - 1; i >= 0; i-- {
			c := st.customers[st.customerOrder[i]]
			list = append(list, &c)
		}
		return nil
	})
	return page(list, limit, offset), err
}

func (r *partnerRepo) CreateSupplier(_ context.Context, s *entity.Supplier) error {
	return r.db.do(func(st *state) error {
		if _, ok := st.suppliers[s.ID]; ok {
			return domain.ErrDuplicate
		}
		st.suppliers[s.ID] = *s
		st.supplierOrder = append(st.supplierOrder, s.ID)
		return nil
	})
}

func (r *partnerRepo) GetSupplier(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.db.do(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *partnerRepo) ListSuppliers(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	var list []*entity.Supplier
	err := r.db.do(func(st *state) error {
		for i := len(st.supplierOrder) - 1; i >= 0; i-- {
			s := st.suppliers[st.supplierOrder[i]]
			list = append(list, &s)
		}
		return nil
	})
	return page(list, limit, offset), err
}
