package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Estados de stock derivados de los umbrales del producto.
const (
	StockStatusLow    = "low"
	StockStatusNormal = "normal"
	StockStatusHigh   = "high"
)

// Umbrales por defecto al crear un producto sin límites explícitos.
const (
	DefaultMinStockLevel int64 = 0
	DefaultMaxStockLevel int64 = 1000
)

// Product representa un producto del catálogo.
// StockQuantity es un valor cacheado: siempre coincide con NewQuantity del último
// movimiento registrado (o con el valor inicial si aún no hay movimientos).
// Solo el libro de stock (StockLedger) lo modifica.
type Product struct {
	ID            string
	SKU           string // único
	Name          string
	Description   string
	CategoryID    string
	Price         decimal.Decimal // precio de venta
	CostPrice     decimal.Decimal
	StockQuantity int64
	MinStockLevel int64
	MaxStockLevel int64
	IsActive      bool
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockStatus low si qty <= min, high si qty >= max, normal en otro caso.
// Si ambos se cumplen (umbrales mal configurados) prevalece low.
func (p *Product) StockStatus() string {
	switch {
	case p.StockQuantity <= p.MinStockLevel:
		return StockStatusLow
	case p.StockQuantity >= p.MaxStockLevel:
		return StockStatusHigh
	default:
		return StockStatusNormal
	}
}

// ValidStockStatus indica si s es un filtro de estado de stock reconocido.
func ValidStockStatus(s string) bool {
	return s == StockStatusLow || s == StockStatusNormal || s == StockStatusHigh
}

// ProductFilter filtros de listado. Campos vacíos = sin filtro.
// Search busca sin distinguir mayúsculas en nombre o SKU.
type ProductFilter struct {
	Status     string
	CategoryID string
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// Matches aplica el filtro en memoria (mismo criterio que la consulta SQL).
func (f ProductFilter) Matches(p *Product) bool {
	if f.ActiveOnly && !p.IsActive {
		return false
	}
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.Search != "" {
		fold := cases.Fold() // un Caser no se comparte entre goroutines
		q := fold.String(f.Search)
		if !strings.Contains(fold.String(p.Name), q) && !strings.Contains(fold.String(p.SKU), q) {
			return false
		}
	}
	return f.Status == "" || p.StockStatus() == f.Status
}
