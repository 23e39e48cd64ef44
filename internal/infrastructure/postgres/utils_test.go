package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/mini-erp/internal/domain/numbering"
)

func TestLimitClause(t *testing.T) {
	sql, args := limitClause(2, 20, 40)
	assert.Equal(t, " LIMIT $2 OFFSET $3", sql)
	assert.Equal(t, []any{20, 40}, args)

	sql, args = limitClause(1, 0, 0)
	assert.Equal(t, " OFFSET $1", sql, "limit 0 = sin límite")
	assert.Equal(t, []any{0}, args)
}

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("conexión cerrada")))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	if assert.NotNil(t, nullable("x")) {
		assert.Equal(t, "x", *nullable("x"))
	}
}

func TestFamilySourceCubreTodasLasFamilias(t *testing.T) {
	for _, f := range numbering.Families {
		_, ok := familySource[f]
		assert.True(t, ok, "familia %s sin tabla", f)
	}
}
