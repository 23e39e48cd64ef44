package numbering_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/numbering"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "PO-000001", numbering.Format(numbering.FamilyPurchaseOrder, 1))
	assert.Equal(t, "INV-000042", numbering.Format(numbering.FamilySalesInvoice, 42))
	assert.Equal(t, "PINV-999999", numbering.Format(numbering.FamilyPurchaseInvoice, 999999))
	assert.Equal(t, "SO-1000000", numbering.Format(numbering.FamilySaleOrder, 1000000), "más allá de 6 dígitos no se trunca")
}

func TestParse_RoundTrip(t *testing.T) {
	for _, f := range numbering.Families {
		n, err := numbering.Parse(f, numbering.Format(f, 123))
		require.NoError(t, err)
		assert.Equal(t, int64(123), n)
	}
}

func TestParse_Corrupto(t *testing.T) {
	cases := []struct {
		family numbering.Family
		id     string
	}{
		{numbering.FamilyPurchaseOrder, "PO-ABC"},
		{numbering.FamilyPurchaseOrder, "PO-"},
		{numbering.FamilyPurchaseOrder, "SO-000001"},
		{numbering.FamilySalesInvoice, "PINV-000001"},
		{numbering.FamilySalesInvoice, "INV-000000"},
		{numbering.FamilySalesInvoice, "INV--00001"},
		{numbering.FamilySaleOrder, "SO-00 001"},
		{numbering.FamilySaleOrder, ""},
	}
	for _, tc := range cases {
		_, err := numbering.Parse(tc.family, tc.id)
		require.Error(t, err, tc.id)
		assert.True(t, errors.Is(err, domain.ErrMalformedSequence), tc.id)
		var mse *domain.MalformedSequenceError
		require.True(t, errors.As(err, &mse))
		assert.Equal(t, tc.id, mse.Value)
	}
}

func TestFamily_Valid(t *testing.T) {
	assert.True(t, numbering.FamilyPurchaseInvoice.Valid())
	assert.False(t, numbering.Family("QT").Valid())
}
