package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

var _ repository.CategoryRepository = (*categoryRepo)(nil)

type categoryRepo struct{ db db }

func nameTaken(st *state, name, exceptID string) bool {
	for id, c := range st.categories {
		if id != exceptID && c.Name == name {
			return true
		}
	}
	return false
}

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.db.do(func(st *state) error {
		if _, ok := st.categories[c.ID]; ok {
			return domain.ErrDuplicate
		}
		if nameTaken(st, c.Name, "") {
			return fmt.Errorf("%w: categoría %s", domain.ErrDuplicate, c.Name)
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.db.do(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *categoryRepo) List(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	var list []*entity.Category
	err := r.db.do(func(st *state) error {
		for _, c := range st.categories {
			c := c
			list = append(list, &c)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return page(list, limit, offset), err
}

func (r *categoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.db.do(func(st *state) error {
		cur, ok := st.categories[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if nameTaken(st, c.Name, c.ID) {
			return fmt.Errorf("%w: categoría %s", domain.ErrDuplicate, c.Name)
		}
		next := *c
		next.CreatedAt = cur.CreatedAt
		st.categories[c.ID] = next
		return nil
	})
}

func (r *categoryRepo) Delete(_ context.Context, id string) error {
	return r.db.do(func(st *state) error {
		if _, ok := st.categories[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.categories, id)
		return nil
	})
}
