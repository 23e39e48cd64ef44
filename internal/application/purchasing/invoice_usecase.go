package purchasing

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

// InvoiceUseCase facturas de proveedor. Crear una factura ingresa su mercancía al
// stock: número, documento y movimientos in se confirman en la misma transacción.
type InvoiceUseCase struct {
	txRunner       TxRunner
	ledger         StockLedger
	sequencer      Sequencer
	purchasingRepo repository.PurchasingRepository
	log            *logger.Logger
}

func NewInvoiceUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	sequencer Sequencer,
	purchasingRepo repository.PurchasingRepository,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:       txRunner,
		ledger:         ledger,
		sequencer:      sequencer,
		purchasingRepo: purchasingRepo,
		log:            log.Component("purchase-invoices"),
	}
}

// Create registra la factura PINV-xxxxxx y una entrada por línea con referencia al número.
func (uc *InvoiceUseCase) Create(ctx context.Context, actor string, in dto.CreatePurchaseInvoiceRequest) (*dto.PurchaseInvoiceResponse, error) {
	if in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inv := &entity.PurchaseInvoice{
		ID:          uuid.New().String(),
		SupplierID:  in.SupplierID,
		InvoiceDate: now,
		Notes:       in.Notes,
		CreatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.InvoiceDate != nil {
		inv.InvoiceDate = in.InvoiceDate.UTC()
	}
	inv.DueDate = inv.InvoiceDate.AddDate(0, 0, entity.DefaultPaymentTermDays)
	if in.DueDate != nil {
		inv.DueDate = in.DueDate.UTC()
	}
	if inv.DueDate.Before(inv.InvoiceDate) {
		return nil, fmt.Errorf("%w: due_date anterior a invoice_date", domain.ErrInvalidInput)
	}

	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		if err := requireSupplier(ctx, tx, in.SupplierID); err != nil {
			return err
		}
		items, err := buildItems(ctx, tx, inv.ID, in.Items, now)
		if err != nil {
			return err
		}
		inv.Items = items
		inv.ApplyAmount()
		inv.PaidAmount = decimal.Zero
		inv.UpdateStatus()
		if inv.InvoiceNumber, err = uc.sequencer.NextInTx(ctx, tx, numbering.FamilyPurchaseInvoice); err != nil {
			return err
		}
		if err := tx.Purchasing().CreateInvoice(ctx, inv); err != nil {
			return err
		}

		lines := append([]entity.LineItem(nil), inv.Items...)
		sort.SliceStable(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
		for _, line := range lines {
			if _, err := uc.ledger.ApplyInTx(ctx, tx, inventory.MovementInput{
				ProductID: line.ProductID,
				Type:      entity.MovementTypeIn,
				Quantity:  line.Quantity,
				Reference: inv.InvoiceNumber,
				Notes:     "Factura de compra " + inv.InvoiceNumber,
				Actor:     actor,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("invoice", inv.InvoiceNumber).Int("lines", len(inv.Items)).Msg("factura de compra registrada")
	return toPurchaseInvoiceResponse(inv), nil
}

func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.PurchaseInvoiceResponse, error) {
	inv, err := uc.purchasingRepo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseInvoiceResponse(inv), nil
}

func (uc *InvoiceUseCase) List(ctx context.Context, in dto.StatusListRequest) (*dto.ListResponse[dto.PurchaseInvoiceResponse], error) {
	in.DefaultPage()
	list, err := uc.purchasingRepo.ListInvoices(ctx, in.Status, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.PurchaseInvoiceResponse]{Items: toPurchaseInvoiceResponses(list), Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// Overdue facturas de proveedor pendientes o parciales ya vencidas.
func (uc *InvoiceUseCase) Overdue(ctx context.Context) ([]dto.PurchaseInvoiceResponse, error) {
	list, err := uc.purchasingRepo.ListOverdueInvoices(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return toPurchaseInvoiceResponses(list), nil
}

// RegisterPayment abona un pago al proveedor; rechaza montos no positivos y sobrepagos.
func (uc *InvoiceUseCase) RegisterPayment(ctx context.Context, id string, amount decimal.Decimal) (*dto.PurchaseInvoiceResponse, error) {
	var inv *entity.PurchaseInvoice
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		var err error
		if inv, err = tx.Purchasing().GetInvoiceForUpdate(ctx, id); err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := inv.RegisterPayment(amount); err != nil {
			return err
		}
		inv.UpdatedAt = time.Now().UTC()
		return tx.Purchasing().UpdateInvoicePayment(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseInvoiceResponse(inv), nil
}

func toPurchaseInvoiceResponse(inv *entity.PurchaseInvoice) *dto.PurchaseInvoiceResponse {
	return &dto.PurchaseInvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		SupplierID:    inv.SupplierID,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Amount:        inv.Amount,
		PaidAmount:    inv.PaidAmount,
		Balance:       inv.Balance(),
		Status:        inv.Status,
		Notes:         inv.Notes,
		CreatedBy:     inv.CreatedBy,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		Items:         toLineResponses(inv.Items),
	}
}

func toPurchaseInvoiceResponses(list []*entity.PurchaseInvoice) []dto.PurchaseInvoiceResponse {
	out := make([]dto.PurchaseInvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toPurchaseInvoiceResponse(inv))
	}
	return out
}
