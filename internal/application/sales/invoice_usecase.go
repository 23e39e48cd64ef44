package sales

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

// InvoiceUseCase facturas de venta: una por orden, numeradas INV-xxxxxx.
type InvoiceUseCase struct {
	txRunner    TxRunner
	sequencer   Sequencer
	salesRepo   repository.SalesRepository
	partnerRepo repository.PartnerRepository
	productRepo repository.ProductRepository
	generator   InvoicePDFGenerator
	log         *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso inyectando todas sus dependencias.
func NewInvoiceUseCase(
	txRunner TxRunner,
	sequencer Sequencer,
	salesRepo repository.SalesRepository,
	partnerRepo repository.PartnerRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		sequencer:   sequencer,
		salesRepo:   salesRepo,
		partnerRepo: partnerRepo,
		productRepo: productRepo,
		generator:   generator,
		log:         log.Component("invoices"),
	}
}

// CreateFromOrder factura una orden confirmed/shipped/delivered por su total.
// Vencimiento por defecto: fecha de factura + DefaultPaymentTermDays.
func (uc *InvoiceUseCase) CreateFromOrder(ctx context.Context, orderID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	now := time.Now().UTC()
	inv := &entity.Invoice{
		ID:          uuid.New().String(),
		SaleOrderID: orderID,
		InvoiceDate: now,
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
		// El bloqueo de la orden serializa dos facturaciones simultáneas de la misma orden.
		order, err := tx.Sales().GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Invoiceable() {
			return fmt.Errorf("%w: la orden %s está en estado %s", domain.ErrConflict, order.OrderNumber, order.Status)
		}
		existing, err := tx.Sales().GetInvoiceBySaleOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: la orden %s ya tiene la factura %s", domain.ErrConflict, order.OrderNumber, existing.InvoiceNumber)
		}

		inv.Amount = order.TotalAmount
		inv.PaidAmount = decimal.Zero
		inv.UpdateStatus()
		if inv.InvoiceNumber, err = uc.sequencer.NextInTx(ctx, tx, numbering.FamilySalesInvoice); err != nil {
			return err
		}
		return tx.Sales().CreateInvoice(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("invoice", inv.InvoiceNumber).Str("amount", inv.Amount.StringFixed(2)).Msg("factura de venta creada")
	return toInvoiceResponse(inv), nil
}

// Get obtiene una factura por ID.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.salesRepo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

// List lista facturas, opcionalmente por estado de pago.
func (uc *InvoiceUseCase) List(ctx context.Context, in dto.StatusListRequest) (*dto.ListResponse[dto.InvoiceResponse], error) {
	in.DefaultPage()
	list, err := uc.salesRepo.ListInvoices(ctx, in.Status, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.InvoiceResponse]{Items: toInvoiceResponses(list), Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// Overdue facturas pendientes o parciales ya vencidas a la fecha de hoy.
func (uc *InvoiceUseCase) Overdue(ctx context.Context) ([]dto.InvoiceResponse, error) {
	list, err := uc.salesRepo.ListOverdueInvoices(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(list), nil
}

// RegisterPayment abona un pago; rechaza montos no positivos y sobrepagos.
func (uc *InvoiceUseCase) RegisterPayment(ctx context.Context, id string, amount decimal.Decimal) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		var err error
		if inv, err = tx.Sales().GetInvoiceForUpdate(ctx, id); err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := inv.RegisterPayment(amount); err != nil {
			return err
		}
		inv.UpdatedAt = time.Now().UTC()
		return tx.Sales().UpdateInvoicePayment(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// InvoicePDF genera el PDF de la factura con las líneas de su orden.
// Retorna los bytes y el nombre de archivo sugerido.
func (uc *InvoiceUseCase) InvoicePDF(ctx context.Context, id string) ([]byte, string, error) {
	inv, err := uc.salesRepo.GetInvoice(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	order, err := uc.salesRepo.GetOrder(ctx, inv.SaleOrderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if order == nil {
		return nil, "", fmt.Errorf("pdf: orden %s de la factura %s no existe", inv.SaleOrderID, inv.InvoiceNumber)
	}
	customer, err := uc.partnerRepo.GetCustomer(ctx, order.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		customer = &entity.Customer{ID: order.CustomerID, Name: order.CustomerID}
	}

	lines := make([]InvoiceLine, 0, len(order.Items))
	for _, it := range order.Items {
		line := InvoiceLine{LineItem: it, ProductName: "Producto " + it.ProductID}
		if p, pErr := uc.productRepo.GetByID(ctx, it.ProductID); pErr == nil && p != nil {
			line.SKU, line.ProductName = p.SKU, p.Name
		}
		lines = append(lines, line)
	}

	pdf, err := uc.generator.GenerateInvoicePDF(ctx, &InvoiceDocument{Invoice: inv, Order: order, Customer: customer, Lines: lines})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("factura_%s.pdf", inv.InvoiceNumber), nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		SaleOrderID:   inv.SaleOrderID,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Amount:        inv.Amount,
		PaidAmount:    inv.PaidAmount,
		Balance:       inv.Balance(),
		Status:        inv.Status,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func toInvoiceResponses(list []*entity.Invoice) []dto.InvoiceResponse {
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInvoiceResponse(inv))
	}
	return out
}
