package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/mini-erp/internal/domain"
)

func buildSheet(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseStockCount(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Nombre", "Código", "Cantidad Contada"},
		{"Martillo", "MART-01", 12},
		{"", "", ""},
		{"Clavo", "CLAV-02", "abc"},
		{"Tornillo", "TORN-03", -1},
		{"Tuerca", " TUER-04 ", "7.0"},
	})

	rows, err := NewStockCountParser().ParseStockCount(buf)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "MART-01", rows[0].SKU)
	assert.Equal(t, int64(12), rows[0].Counted)
	assert.Equal(t, 2, rows[0].Line)
	assert.NoError(t, rows[0].Err)

	assert.Equal(t, 4, rows[1].Line)
	assert.Error(t, rows[1].Err)
	assert.Error(t, rows[2].Err, "cantidad negativa")

	assert.Equal(t, "TUER-04", rows[3].SKU)
	assert.Equal(t, int64(7), rows[3].Counted)
}

func TestParseStockCount_FaltaColumna(t *testing.T) {
	buf := buildSheet(t, [][]any{{"sku", "precio"}, {"A", 1}})
	_, err := NewStockCountParser().ParseStockCount(buf)
	assert.ErrorContains(t, err, "counted")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseStockCount_ArchivoInvalido(t *testing.T) {
	_, err := NewStockCountParser().ParseStockCount(bytes.NewBufferString("no es un xlsx"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "codigo producto", normalizeHeader("  Código_Producto "))
	assert.Equal(t, "sku", normalizeHeader("\ufeffSKU"))
	assert.Equal(t, "cantidad contada", normalizeHeader("CANTIDAD   CONTADA"))
}
