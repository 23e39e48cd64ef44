// Package excel lee hojas de conteo físico de inventario (.xlsx).
package excel

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/mini-erp/internal/application/inventory"
	"github.com/jhoicas/mini-erp/internal/domain"
)

var _ inventory.CountSheetParser = (*StockCountParser)(nil)

const (
	colSKU     = "sku"
	colCounted = "counted"
)

// Alias de encabezado ya normalizados (minúsculas, sin tildes, espacios simples).
var headerAliases = map[string]string{
	"sku":              colSKU,
	"codigo":           colSKU,
	"codigo producto":  colSKU,
	"referencia":       colSKU,
	"counted":          colCounted,
	"quantity":         colCounted,
	"qty":              colCounted,
	"cantidad":         colCounted,
	"conteo":           colCounted,
	"cantidad contada": colCounted,
}

// StockCountParser implementa inventory.CountSheetParser con excelize. Lee la primera hoja.
type StockCountParser struct{}

func NewStockCountParser() *StockCountParser { return &StockCountParser{} }

// ParseStockCount devuelve una fila por SKU no vacío. Una cantidad ilegible queda en CountRow.Err
// y no detiene la lectura; un archivo sin las columnas requeridas sí es un error.
func (p *StockCountParser) ParseStockCount(r io.Reader) ([]inventory.CountRow, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: abrir excel: %v", domain.ErrInvalidInput, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: el archivo no tiene hojas", domain.ErrInvalidInput)
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer filas: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: el archivo está vacío", domain.ErrInvalidInput)
	}

	cols := mapColumns(rows[0])
	for _, required := range []string{colSKU, colCounted} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: falta la columna requerida: %s", domain.ErrInvalidInput, required)
		}
	}

	out := make([]inventory.CountRow, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		sku := strings.TrimSpace(readCell(rows[i], cols[colSKU]))
		if sku == "" {
			continue
		}
		row := inventory.CountRow{Line: i + 1, SKU: sku}
		row.Counted, row.Err = parseCount(readCell(rows[i], cols[colCounted]))
		out = append(out, row)
	}
	return out, nil
}

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, h := range header {
		canonical, ok := headerAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

var (
	folder   = cases.Fold()
	stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// normalizeHeader "  Código_Producto " -> "codigo producto".
func normalizeHeader(raw string) string {
	value := strings.TrimPrefix(strings.TrimSpace(raw), "\ufeff")
	if s, _, err := transform.String(stripper, value); err == nil {
		value = s
	}
	value = folder.String(value)
	value = strings.ReplaceAll(value, "_", " ")
	return strings.Join(strings.Fields(value), " ")
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseCount entero >= 0; acepta "12" y "12.0" (celdas numéricas exportadas como float).
func parseCount(raw string) (int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("cantidad vacía")
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("cantidad %q no es un número", value)
	}
	if math.Mod(f, 1) != 0 {
		return 0, fmt.Errorf("cantidad %q debe ser entera", value)
	}
	if f < 0 {
		return 0, fmt.Errorf("cantidad %q negativa", value)
	}
	return int64(f), nil
}
