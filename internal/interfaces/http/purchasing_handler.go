package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mini-erp/internal/application/dto"
	"github.com/jhoicas/mini-erp/internal/application/purchasing"
)

// PurchaseOrderHandler órdenes de compra. Sus transiciones no mueven stock.
type PurchaseOrderHandler struct {
	uc *purchasing.OrderUseCase
}

func NewPurchaseOrderHandler(uc *purchasing.OrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra (borrador)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	var in dto.StatusListRequest
	if err := parseQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *PurchaseOrderHandler) Send(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Send)
}

func (h *PurchaseOrderHandler) Confirm(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Confirm)
}

func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Receive)
}

func (h *PurchaseOrderHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

func (h *PurchaseOrderHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error)) error {
	out, err := fn(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PurchaseInvoiceHandler facturas de compra: al crearlas ingresan el stock.
type PurchaseInvoiceHandler struct {
	uc *purchasing.InvoiceUseCase
}

func NewPurchaseInvoiceHandler(uc *purchasing.InvoiceUseCase) *PurchaseInvoiceHandler {
	return &PurchaseInvoiceHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar factura de compra (movimiento in por línea)
// @Tags         purchase-invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseInvoiceRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.PurchaseInvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-invoices [post]
func (h *PurchaseInvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PurchaseInvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *PurchaseInvoiceHandler) List(c *fiber.Ctx) error {
	var in dto.StatusListRequest
	if err := parseQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *PurchaseInvoiceHandler) Overdue(c *fiber.Ctx) error {
	out, err := h.uc.Overdue(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *PurchaseInvoiceHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RegisterPayment(c.Context(), c.Params("id"), in.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
