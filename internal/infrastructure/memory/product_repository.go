package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

var _ repository.ProductRepository = (*productRepo)(nil)

type productRepo struct{ db db }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.db.do(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.products {
			if other.SKU == p.SKU {
				return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, p.SKU)
			}
		}
		st.products[p.ID] = *p
		st.productOrder = append(st.productOrder, p.ID)
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: la transacción ya tiene el candado global.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.do(func(st *state) error {
		for _, p := range st.products {
			if p.SKU == sku {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *productRepo) List(_ context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.db.do(func(st *state) error {
		for i := len(st.productOrder) - 1; i >= 0; i-- {
			p := st.products[st.productOrder[i]]
			if filter.Matches(&p) {
				list = append(list, &p)
			}
		}
		return nil
	})
	return page(list, filter.Limit, filter.Offset), err
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	return r.db.do(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for id, other := range st.products {
			if id != p.ID && other.SKU == p.SKU {
				return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, p.SKU)
			}
		}
		next := *p
		next.StockQuantity = cur.StockQuantity
		next.CreatedAt, next.CreatedBy = cur.CreatedAt, cur.CreatedBy
		st.products[p.ID] = next
		return nil
	})
}

func (r *productRepo) UpdateStock(_ context.Context, productID string, quantity int64) error {
	return r.db.do(func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		p.StockQuantity = quantity
		p.UpdatedAt = time.Now()
		st.products[productID] = p
		return nil
	})
}
