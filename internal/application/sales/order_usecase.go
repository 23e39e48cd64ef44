package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mini-erp/internal/application/dto"
	"github.com/jhoicas/mini-erp/internal/application/inventory"
	"github.com/jhoicas/mini-erp/internal/domain"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
	"github.com/jhoicas/mini-erp/internal/domain/numbering"
	"github.com/jhoicas/mini-erp/internal/domain/repository"
	"github.com/jhoicas/mini-erp/pkg/logger"
)

// OrderUseCase ciclo de vida de la orden de venta: draft → confirmed → shipped → delivered,
// cancelled desde draft o confirmed. Confirmar descuenta stock; cancelar una orden
// confirmada lo devuelve con movimientos return.
type OrderUseCase struct {
	txRunner  TxRunner
	ledger    StockLedger
	sequencer Sequencer
	salesRepo repository.SalesRepository
	taxRate   decimal.Decimal
	log       *logger.Logger
}

// NewOrderUseCase construye el caso de uso. taxRate 0.10 = 10%.
func NewOrderUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	sequencer Sequencer,
	salesRepo repository.SalesRepository,
	taxRate decimal.Decimal,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:  txRunner,
		ledger:    ledger,
		sequencer: sequencer,
		salesRepo: salesRepo,
		taxRate:   taxRate,
		log:       log.Component("sales"),
	}
}

// Create registra la orden en borrador con su número SO-xxxxxx. No toca stock.
func (uc *OrderUseCase) Create(ctx context.Context, actor string, in dto.CreateSaleOrderRequest) (*dto.SaleOrderResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now().UTC()
	order := &entity.SaleOrder{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Status:     entity.SaleOrderDraft,
		OrderDate:  now,
		Notes:      in.Notes,
		CreatedBy:  actor,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.OrderDate != nil {
		order.OrderDate = in.OrderDate.UTC()
	}

	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		customer, err := tx.Partners().GetCustomer(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
		}
		for _, it := range in.Items {
			product, err := tx.Products().GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
			}
			price := it.UnitPrice
			if price.IsZero() {
				price = product.Price
			}
			line := entity.NewLineItem(it.ProductID, it.Quantity, price)
			line.ID, line.DocumentID, line.CreatedAt = uuid.New().String(), order.ID, now
			order.Items = append(order.Items, line)
		}
		order.ApplyTotals(uc.taxRate)

		if order.OrderNumber, err = uc.sequencer.NextInTx(ctx, tx, numbering.FamilySaleOrder); err != nil {
			return err
		}
		return tx.Sales().CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order", order.OrderNumber).Str("total", order.TotalAmount.StringFixed(2)).Msg("orden de venta creada")
	return toSaleOrderResponse(order), nil
}

// Get obtiene una orden con sus líneas.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*dto.SaleOrderResponse, error) {
	o, err := uc.salesRepo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleOrderResponse(o), nil
}

// List lista órdenes, opcionalmente por estado.
func (uc *OrderUseCase) List(ctx context.Context, in dto.StatusListRequest) (*dto.ListResponse[dto.SaleOrderResponse], error) {
	in.DefaultPage()
	list, err := uc.salesRepo.ListOrders(ctx, in.Status, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toSaleOrderResponse(o))
	}
	return &dto.ListResponse[dto.SaleOrderResponse]{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// Confirm pasa la orden a confirmed y registra una salida (out) por línea con referencia
// al número de orden. Cualquier InsufficientStockError aborta toda la confirmación.
func (uc *OrderUseCase) Confirm(ctx context.Context, actor, id string) (*dto.SaleOrderResponse, error) {
	return uc.transition(ctx, id, entity.SaleOrderConfirmed, func(tx repository.Tx, o *entity.SaleOrder, _ string) error {
		return uc.applyLines(ctx, tx, o, entity.MovementTypeOut, actor, "Confirmación orden de venta "+o.OrderNumber)
	})
}

// Ship marca la orden como despachada.
func (uc *OrderUseCase) Ship(ctx context.Context, id string) (*dto.SaleOrderResponse, error) {
	return uc.transition(ctx, id, entity.SaleOrderShipped, nil)
}

// Deliver marca la orden como entregada y fija la fecha de entrega.
func (uc *OrderUseCase) Deliver(ctx context.Context, id string) (*dto.SaleOrderResponse, error) {
	return uc.transition(ctx, id, entity.SaleOrderDelivered, func(_ repository.Tx, o *entity.SaleOrder, _ string) error {
		now := time.Now().UTC()
		o.DeliveryDate = &now
		return nil
	})
}

// Cancel anula la orden. Si ya estaba confirmada devuelve el stock con movimientos return.
func (uc *OrderUseCase) Cancel(ctx context.Context, actor, id string) (*dto.SaleOrderResponse, error) {
	return uc.transition(ctx, id, entity.SaleOrderCancelled, func(tx repository.Tx, o *entity.SaleOrder, from string) error {
		if from != entity.SaleOrderConfirmed {
			return nil
		}
		return uc.applyLines(ctx, tx, o, entity.MovementTypeReturn, actor, "Cancelación orden de venta "+o.OrderNumber)
	})
}

// transition bloquea la orden, valida el cambio de estado y ejecuta el efecto en la misma transacción.
func (uc *OrderUseCase) transition(
	ctx context.Context,
	id, to string,
	effect func(tx repository.Tx, o *entity.SaleOrder, from string) error,
) (*dto.SaleOrderResponse, error) {
	var order *entity.SaleOrder
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		o, err := tx.Sales().GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		from := o.Status
		if err := o.TransitionTo(to); err != nil {
			return err
		}
		if effect != nil {
			if err := effect(tx, o, from); err != nil {
				return err
			}
		}
		o.UpdatedAt = time.Now().UTC()
		if err := tx.Sales().UpdateOrder(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order", order.OrderNumber).Str("status", order.Status).Msg("orden de venta actualizada")
	return toSaleOrderResponse(order), nil
}

// applyLines registra un movimiento por línea en orden ascendente de producto (orden de bloqueo fijo).
func (uc *OrderUseCase) applyLines(ctx context.Context, tx repository.Tx, o *entity.SaleOrder, typ entity.MovementType, actor, notes string) error {
	lines := append([]entity.LineItem(nil), o.Items...)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	for _, line := range lines {
		if _, err := uc.ledger.ApplyInTx(ctx, tx, inventory.MovementInput{
			ProductID: line.ProductID,
			Type:      typ,
			Quantity:  line.Quantity,
			Reference: o.OrderNumber,
			Notes:     notes,
			Actor:     actor,
		}); err != nil {
			return err
		}
	}
	return nil
}

func toSaleOrderResponse(o *entity.SaleOrder) *dto.SaleOrderResponse {
	return &dto.SaleOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerID:   o.CustomerID,
		Status:       o.Status,
		OrderDate:    o.OrderDate,
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
