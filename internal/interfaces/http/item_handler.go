package http

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/denta-stock-api/internal/application/dto"
	"github.com/jhoicas/denta-stock-api/internal/application/inventory"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

// ItemHandler CRUD de items del inventario.
type ItemHandler struct {
	uc *inventory.ItemUseCase
}

// NewItemHandler construye el handler de items.
func NewItemHandler(uc *inventory.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear item
// @Description  Alta de insumo con stock inicial (único stock sin movimiento)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateItemRequest  true  "item"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), identityFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar items
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        category_id  query  string  false  "filtrar por categoría"
// @Param        status       query  string  false  "all | inStock | lowStock | outOfStock"
// @Param        search       query  string  false  "búsqueda por nombre"
// @Param        archived     query  bool    false  "listar archivados"
// @Param        limit        query  int     false  "tamaño de página (máx 100)"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/inventory/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	archived, _ := strconv.ParseBool(c.Query("archived", "false"))
	filter := repository.ItemFilter{
		CategoryID: c.Query("category_id"),
		Status:     c.Query("status", repository.ItemStatusAll),
		Search:     c.Query("search"),
		Archived:   archived,
		Limit:      c.QueryInt("limit", 50),
		Offset:     c.QueryInt("offset", 0),
	}
	out, err := h.uc.List(c.Context(), identityFrom(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de item
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "item id"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), identityFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar item
// @Description  Solo campos descriptivos; un body con current_stock se rechaza
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "item id"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	// El stock nunca entra por PUT: cualquier intento se rechaza explícito
	// en lugar de ignorarse en silencio.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if _, ok := raw["current_stock"]; ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "current_stock no es actualizable: registre un movimiento",
		})
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), identityFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar item
// @Description  Congela el stock y oculta el item de los listados activos
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "item id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/archive [post]
func (h *ItemHandler) Archive(c *fiber.Ctx) error {
	if err := h.uc.Archive(c.Context(), identityFrom(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar item
// @Description  Sin movimientos se borra; con movimientos se degrada a archivado
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "item id"
// @Success      200  {object}  dto.DeleteItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.Context(), identityFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
