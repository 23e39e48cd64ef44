package memory

import (
	"context"

	"github.com/jhoicas/mini-erp/internal/domain/numbering"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

var _ repository.SequenceRepository = (*sequenceRepo)(nil)

type sequenceRepo struct{ db db }

func (r *sequenceRepo) LockCounter(_ context.Context, family numbering.Family) (int64, bool, error) {
	var (
		last  int64
		found bool
	)
	err := r.db.do(func(st *state) error {
		last, found = st.sequences[family]
		return nil
	})
	return last, found, err
}

func (r *sequenceRepo) InitCounter(_ context.Context, family numbering.Family, last int64) error {
	return r.db.do(func(st *state) error {
		if _, ok := st.sequences[family]; !ok {
			st.sequences[family] = last
		}
		return nil
	})
}

func (r *sequenceRepo) SaveCounter(_ context.Context, family numbering.Family, last int64) error {
	return r.db.do(func(st *state) error {
		st.sequences[family] = last
		return nil
	})
}

func (r *sequenceRepo) LastIssued(_ context.Context, family numbering.Family) (string, bool, error) {
	var (
		id    string
		found bool
	)
	err := r.db.do(func(st *state) error {
		id, found = st.lastIssued[family]
		return nil
	})
	return id, found, err
}
