package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mini-erp/internal/application/dto"
	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/numbering"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
	"github.com/jhoicas/mini-erp/pkg/logger"
)

// OrderUseCase órdenes de compra: draft → sent → confirmed → received, cancelled desde
// draft o sent. Solo cambia estados; la mercancía entra al stock con la factura de compra.
type OrderUseCase struct {
	txRunner       TxRunner
	sequencer      Sequencer
	purchasingRepo repository.PurchasingRepository
	taxRate        decimal.Decimal
	log            *logger.Logger
}

func NewOrderUseCase(
	txRunner TxRunner,
	sequencer Sequencer,
	purchasingRepo repository.PurchasingRepository,
	taxRate decimal.Decimal,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:       txRunner,
		sequencer:      sequencer,
		purchasingRepo: purchasingRepo,
		taxRate:        taxRate,
		log:            log.Component("purchasing"),
	}
}

// Create registra la orden en borrador con número PO-xxxxxx.
// Un precio unitario en cero toma el costo del producto.
func (uc *OrderUseCase) Create(ctx context.Context, actor string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Status:     entity.PurchaseOrderDraft,
		OrderDate:  now,
		Notes:      in.Notes,
		CreatedBy:  actor,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.OrderDate != nil {
		order.OrderDate = in.OrderDate.UTC()
	}
	if in.ExpectedDate != nil {
		d := in.ExpectedDate.UTC()
		order.ExpectedDate = &d
	}

	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		if err := requireSupplier(ctx, tx, in.SupplierID); err != nil {
			return err
		}
		items, err := buildItems(ctx, tx, order.ID, in.Items, now)
		if err != nil {
			return err
		}
		order.Items = items
		order.ApplyTotals(uc.taxRate)
		if order.OrderNumber, err = uc.sequencer.NextInTx(ctx, tx, numbering.FamilyPurchaseOrder); err != nil {
			return err
		}
		return tx.Purchasing().CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order", order.OrderNumber).Str("total", order.TotalAmount.StringFixed(2)).Msg("orden de compra creada")
	return toPurchaseOrderResponse(order), nil
}

func (uc *OrderUseCase) Get(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	o, err := uc.purchasingRepo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseOrderResponse(o), nil
}

func (uc *OrderUseCase) List(ctx context.Context, in dto.StatusListRequest) (*dto.ListResponse[dto.PurchaseOrderResponse], error) {
	in.DefaultPage()
	list, err := uc.purchasingRepo.ListOrders(ctx, in.Status, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toPurchaseOrderResponse(o))
	}
	return &dto.ListResponse[dto.PurchaseOrderResponse]{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

func (uc *OrderUseCase) Send(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, entity.PurchaseOrderSent)
}

func (uc *OrderUseCase) Confirm(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, entity.PurchaseOrderConfirmed)
}

// Receive marca la orden como recibida y fija la fecha de entrega.
func (uc *OrderUseCase) Receive(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, entity.PurchaseOrderReceived)
}

func (uc *OrderUseCase) Cancel(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, entity.PurchaseOrderCancelled)
}

func (uc *OrderUseCase) transition(ctx context.Context, id, to string) (*dto.PurchaseOrderResponse, error) {
	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		o, err := tx.Purchasing().GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if err := o.TransitionTo(to); err != nil {
			return err
		}
		now := time.Now().UTC()
		if to == entity.PurchaseOrderReceived {
			o.DeliveryDate = &now
		}
		o.UpdatedAt = now
		if err := tx.Purchasing().UpdateOrder(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order", order.OrderNumber).Str("status", order.Status).Msg("orden de compra actualizada")
	return toPurchaseOrderResponse(order), nil
}

func validateItems(items []dto.LineItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: el documento no tiene líneas", domain.ErrInvalidInput)
	}
	for i, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: línea %d", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

func requireSupplier(ctx context.Context, tx repository.Tx, id string) error {
	s, err := tx.Partners().GetSupplier(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, id)
	}
	return nil
}

// buildItems valida que cada producto exista y arma las líneas con su total.
func buildItems(ctx context.Context, tx repository.Tx, docID string, in []dto.LineItemRequest, now time.Time) ([]entity.LineItem, error) {
	items := make([]entity.LineItem, 0, len(in))
	for _, it := range in {
		product, err := tx.Products().GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
		}
		price := it.UnitPrice
		if price.IsZero() {
			price = product.CostPrice
		}
		line := entity.NewLineItem(it.ProductID, it.Quantity, price)
		line.ID, line.DocumentID, line.CreatedAt = uuid.New().String(), docID, now
		items = append(items, line)
	}
	return items, nil
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	return &dto.PurchaseOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		SupplierID:   o.SupplierID,
		Status:       o.Status,
		OrderDate:    o.OrderDate,
		ExpectedDate: o.ExpectedDate,
		DeliveryDate: o.DeliveryDate,
		Subtotal:     o.Subtotal,
		TaxAmount:    o.TaxAmount,
		TotalAmount:  o.TotalAmount,
		Notes:        o.Notes,
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Items:        toLineResponses(o.Items),
	}
}

func toLineResponses(items []entity.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LineItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return out
}
