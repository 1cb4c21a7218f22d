package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/denta-stock-api/internal/application/dto"
	"github.com/jhoicas/denta-stock-api/internal/application/inventory"
)

// MovementHandler registro y consulta del libro de movimientos.
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

// NewMovementHandler construye el handler de movimientos.
func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar movimiento
// @Description  Única vía de mutación de stock: entrada, salida o ajuste
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RecordMovementRequest  true  "movimiento"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Record(c.Context(), identityFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Más recientes primero, filtrables por item y tipo
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        item_id  query  string  false  "filtrar por item"
// @Param        type     query  string  false  "in | out | adjust"
// @Param        limit    query  int     false  "máx 100"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), identityFrom(c), c.Query("item_id"), c.Query("type"), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ItemLedger godoc
// @Summary      Libro de un item
// @Description  Historial cronológico más la verificación por repetición del stock
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "item id"
// @Success      200  {object}  dto.ItemLedgerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/ledger [get]
func (h *MovementHandler) ItemLedger(c *fiber.Ctx) error {
	out, err := h.uc.ItemLedger(c.Context(), identityFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
