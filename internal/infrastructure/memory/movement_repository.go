package memory

import (
	"context"

	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*movementRepo)(nil)

type movementRepo struct{ db db }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.db.do(func(st *state) error {
		for _, other := range st.movements {
			if other.ID == m.ID {
				return domain.ErrDuplicate
			}
		}
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	err := r.db.do(func(st *state) error {
		for _, m := range st.movements {
			if m.ID == id {
				m := m
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *movementRepo) List(_ context.Context, f entity.MovementFilter) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	err := r.db.do(func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.Type != "" && m.Type != f.Type {
				continue
			}
			list = append(list, &m)
		}
		return nil
	})
	return page(list, f.Limit, f.Offset), err
}
