package inventory

import (
	"context"
	"io"

	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Tx) error) error
}

// CountRow fila de un conteo físico: SKU y unidades contadas. Line es la fila de origen (1-based).
type CountRow struct {
	Line    int
	SKU     string
	Counted int64
	Err     error // fila ilegible; se reporta como fallida sin detener la importación
}

// CountSheetParser lee un archivo de conteo físico (p. ej. hoja de cálculo).
type CountSheetParser interface {
	ParseStockCount(r io.Reader) ([]CountRow, error)
}
