package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mini-erp/internal/application/dto"
	"github.com/jhoicas/mini-erp/internal/application/sales"
)

// SaleOrderHandler órdenes de venta y su ciclo de estados.
type SaleOrderHandler struct {
	orders   *sales.OrderUseCase
	invoices *sales.InvoiceUseCase
}

func NewSaleOrderHandler(orders *sales.OrderUseCase, invoices *sales.InvoiceUseCase) *SaleOrderHandler {
	return &SaleOrderHandler{orders: orders, invoices: invoices}
}

// Create godoc
// @Summary      Crear orden de venta (borrador)
// @Tags         sale-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleOrderRequest  true  "Cliente y líneas"
// @Success      201   {object}  dto.SaleOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sale-orders [post]
func (h *SaleOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleOrderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.orders.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *SaleOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.orders.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *SaleOrderHandler) List(c *fiber.Ctx) error {
	var in dto.StatusListRequest
	if err := parseQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.orders.List(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar orden: descuenta stock de todas las líneas o de ninguna
// @Tags         sale-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SaleOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sale-orders/{id}/confirm [post]
func (h *SaleOrderHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.orders.Confirm(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *SaleOrderHandler) Ship(c *fiber.Ctx) error {
	out, err := h.orders.Ship(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *SaleOrderHandler) Deliver(c *fiber.Ctx) error {
	out, err := h.orders.Deliver(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel si la orden estaba confirmada devuelve el stock con movimientos return.
func (h *SaleOrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.orders.Cancel(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Invoice godoc
// @Summary      Facturar una orden confirmada, enviada o entregada
// @Tags         sale-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true   "ID de la orden"
// @Param        body  body  dto.CreateInvoiceRequest  false  "Fechas opcionales"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sale-orders/{id}/invoice [post]
func (h *SaleOrderHandler) Invoice(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &in); err != nil {
			return respondError(c, err)
		}
	}
	out, err := h.invoices.CreateFromOrder(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// InvoiceHandler facturas de venta: consulta, pagos y PDF.
type InvoiceHandler struct {
	uc *sales.InvoiceUseCase
}

func NewInvoiceHandler(uc *sales.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *InvoiceHandler) List(c *fiber.Ctx) error {
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

// Overdue facturas pendientes o parciales con vencimiento anterior a hoy.
func (h *InvoiceHandler) Overdue(c *fiber.Ctx) error {
	out, err := h.uc.Overdue(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterPayment godoc
// @Summary      Registrar un pago sobre la factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la factura"
// @Param        body  body  dto.RegisterPaymentRequest  true  "Monto"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/payments [post]
func (h *InvoiceHandler) RegisterPayment(c *fiber.Ctx) error {
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

// PDF godoc
// @Summary      Descargar PDF de la factura
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.InvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(filename))
	return c.Send(pdfBytes)
}
