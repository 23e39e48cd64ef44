package inventory

import (
	"context"

	"github.com/jhoicas/mini-erp/internal/application/dto"
	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
)

// RecentLimit cantidad de movimientos que devuelve Recent.
const RecentLimit = 50

// HistoryUseCase consultas de solo lectura sobre el historial de movimientos.
type HistoryUseCase struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *HistoryUseCase {
	return &HistoryUseCase{movRepo: movRepo, productRepo: productRepo}
}

// Get obtiene un movimiento por ID (ErrNotFound si no existe).
func (uc *HistoryUseCase) Get(ctx context.Context, id string) (*dto.StockMovementResponse, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return ToMovementResponse(m), nil
}

// List lista movimientos con filtros, más reciente primero.
func (uc *HistoryUseCase) List(ctx context.Context, in dto.MovementListRequest) (*dto.ListResponse[dto.StockMovementResponse], error) {
	in.DefaultPage()
	typ := entity.MovementType(in.MovementType)
	if typ != "" && !typ.Valid() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.movRepo.List(ctx, entity.MovementFilter{
		ProductID: in.ProductID,
		Type:      typ,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	return toMovementList(list, in.Limit, in.Offset), nil
}

// ByProduct historial de un producto (ErrNotFound si el producto no existe).
func (uc *HistoryUseCase) ByProduct(ctx context.Context, productID string, page dto.PageRequest) (*dto.ListResponse[dto.StockMovementResponse], error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.List(ctx, dto.MovementListRequest{PageRequest: page, ProductID: productID})
}

// Recent últimos RecentLimit movimientos de todos los productos.
func (uc *HistoryUseCase) Recent(ctx context.Context) ([]dto.StockMovementResponse, error) {
	list, err := uc.movRepo.List(ctx, entity.MovementFilter{Limit: RecentLimit})
	if err != nil {
		return nil, err
	}
	return toMovementList(list, RecentLimit, 0).Items, nil
}

func toMovementList(list []*entity.StockMovement, limit, offset int) *dto.ListResponse[dto.StockMovementResponse] {
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.ListResponse[dto.StockMovementResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
