package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mini-erp/internal/application/dto"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos activos en o bajo su stock mínimo.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// GenerateReplenishmentList devuelve los productos con stock bajo, la cantidad sugerida
// para volver al máximo y un ranking de prioridad (mayor déficit primero, luego SKU).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	// 1. Productos en o bajo el mínimo
	products, err := uc.productRepo.List(ctx, entity.ProductFilter{Status: entity.StockStatusLow, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Sugerencias
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(products))
	for _, p := range products {
		suggested := p.MaxStockLevel - p.StockQuantity
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			SKU:                p.SKU,
			ProductName:        p.Name,
			CurrentStock:       p.StockQuantity,
			MinStockLevel:      p.MinStockLevel,
			MaxStockLevel:      p.MaxStockLevel,
			SuggestedOrderQty:  suggested,
			UnitCost:           p.CostPrice,
			EstimatedOrderCost: p.CostPrice.Mul(decimal.NewFromInt(suggested)),
		})
	}

	// 3. Ordenar: mayor déficit bajo el mínimo, desempate por SKU
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA := a.MinStockLevel - a.CurrentStock
		defB := b.MinStockLevel - b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.SKU < b.SKU
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
