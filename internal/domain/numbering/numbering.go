// Package numbering define las familias de documentos y el formato de sus consecutivos.
package numbering

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/mini-erp/internal/domain"
)

// Family espacio de numeración independiente; su valor es el prefijo del documento.
type Family string

const (
	FamilyPurchaseOrder   Family = "PO"
	FamilyPurchaseInvoice Family = "PINV"
	FamilySaleOrder       Family = "SO"
	FamilySalesInvoice    Family = "INV"
)

// Families las cuatro familias conocidas.
var Families = []Family{FamilyPurchaseOrder, FamilyPurchaseInvoice, FamilySaleOrder, FamilySalesInvoice}

// Width dígitos del sufijo. Valores > 999999 no se truncan: simplemente salen más largos.
const Width = 6

// Valid indica si f es una familia conocida.
func (f Family) Valid() bool {
	for _, k := range Families {
		if f == k {
			return true
		}
	}
	return false
}

// Format devuelve "{PREFIJO}-{n:06d}", p. ej. PO-000001.
func Format(f Family, n int64) string {
	return fmt.Sprintf("%s-%0*d", f, Width, n)
}

// Parse extrae el entero de un identificador emitido. Falla con MalformedSequenceError
// si el prefijo no corresponde a la familia o el sufijo no es un entero positivo.
func Parse(f Family, id string) (int64, error) {
	suffix, ok := strings.CutPrefix(id, string(f)+"-")
	if !ok || suffix == "" {
		return 0, &domain.MalformedSequenceError{Family: string(f), Value: id}
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return 0, &domain.MalformedSequenceError{Family: string(f), Value: id}
		}
	}
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil || n <= 0 {
		return 0, &domain.MalformedSequenceError{Family: string(f), Value: id}
	}
	return n, nil
}
