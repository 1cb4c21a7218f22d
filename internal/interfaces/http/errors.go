package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/denta-stock-api/internal/application/dto"
	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/pkg/i18n"
)

// errorMapping traducción de error de dominio a status HTTP + código estable.
type errorMapping struct {
	status int
	code   string
}

var errorMappings = []struct {
	err     error
	mapping errorMapping
}{
	{domain.ErrInvalidInput, errorMapping{fiber.StatusBadRequest, "VALIDATION"}},
	{domain.ErrUnauthorized, errorMapping{fiber.StatusUnauthorized, "UNAUTHORIZED"}},
	{domain.ErrUserNotFound, errorMapping{fiber.StatusUnauthorized, "UNAUTHORIZED"}},
	{domain.ErrForbidden, errorMapping{fiber.StatusForbidden, "FORBIDDEN"}},
	{domain.ErrFeatureDisabled, errorMapping{fiber.StatusForbidden, "FEATURE_DISABLED"}},
	{domain.ErrSubscriptionExpired, errorMapping{fiber.StatusForbidden, "SUBSCRIPTION_EXPIRED"}},
	{domain.ErrNotFound, errorMapping{fiber.StatusNotFound, "NOT_FOUND"}},
	{domain.ErrEmailAlreadyExists, errorMapping{fiber.StatusConflict, "DUPLICATE"}},
	{domain.ErrDuplicate, errorMapping{fiber.StatusConflict, "DUPLICATE"}},
	{domain.ErrConflict, errorMapping{fiber.StatusConflict, "CONFLICT"}},
	{domain.ErrInsufficientStock, errorMapping{fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"}},
}

// respondError mapea un error de dominio a su respuesta HTTP, con el mensaje
// localizado según Accept-Language (en/ar). Errores no mapeados son 500 INTERNAL
// sin detalle: el detalle va al log, nunca al cliente.
func respondError(c *fiber.Ctx, err error) error {
	acceptLanguage := c.Get("Accept-Language")
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.mapping.status).JSON(dto.ErrorResponse{
				Code:    m.mapping.code,
				Message: i18n.Message(acceptLanguage, m.mapping.code),
			})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: i18n.Message(acceptLanguage, "INTERNAL"),
	})
}
