package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mini-erp/internal/application/dto"
	"github.com/jhoicas/mini-erp/internal/application/inventory"
	"github.com/jhoicas/mini-erp/internal/domain"
)

// MovementHandler consulta del libro de stock e importación de conteos físicos.
type MovementHandler struct {
	history    *inventory.HistoryUseCase
	stockCount *inventory.StockCountUseCase
}

func NewMovementHandler(history *inventory.HistoryUseCase, stockCount *inventory.StockCountUseCase) *MovementHandler {
	return &MovementHandler{history: history, stockCount: stockCount}
}

// List godoc
// @Summary      Listar movimientos de stock
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "Filtrar por producto"
// @Param        movement_type  query  string  false  "in | out | adjustment | return"
// @Success      200  {object}  dto.ListResponse[dto.StockMovementResponse]
// @Router       /api/stock-movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := parseQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.history.List(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *MovementHandler) Recent(c *fiber.Ctx) error {
	out, err := h.history.Recent(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.history.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar conteo físico desde Excel (columnas sku y cantidad)
// @Tags         stock-movements
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .xlsx"
// @Success      200   {object}  dto.StockCountResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-movements/import [post]
func (h *MovementHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, fmt.Errorf("%w: archivo requerido en el campo file", domain.ErrInvalidInput))
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, fmt.Errorf("%w: no se pudo abrir el archivo", domain.ErrInvalidInput))
	}
	defer f.Close()
	out, err := h.stockCount.Import(c.Context(), f, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
