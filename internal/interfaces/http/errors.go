package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/coolbreeze-api/internal/application/dto"
	"github.com/jhoicas/coolbreeze-api/internal/domain"
)

// respondError mapea errores de dominio a la respuesta HTTP. Todo lo no
// reconocido es un 500 sin detalles internos.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_TRANSITION", Message: "Invalid status transition"})
	case errors.Is(err, domain.ErrRiderRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "RIDER_REQUIRED", Message: "Assigned rider is required to ship an order"})
	case errors.Is(err, domain.ErrRiderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "RIDER_NOT_FOUND", Message: "Rider not found or inactive"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "USER_NOT_FOUND", Message: "User not found in system"})
	case errors.Is(err, domain.ErrUserInactive):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "USER_INACTIVE", Message: "User account is inactive"})
	case errors.Is(err, domain.ErrEmailNotApproved):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "EMAIL_NOT_APPROVED", Message: "Email not approved for access"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "Unauthorized"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "FORBIDDEN", Message: "You don't have permission to perform this action"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "DUPLICATE", Message: "Resource already exists"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "Invalid request data"})
	case errors.Is(err, domain.ErrNotFound):
		// VariantNotFoundError entra aquí: su mensaje nombra la pareja faltante.
		var vErr *domain.VariantNotFoundError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: vErr.Error()})
		}
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "Resource not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: "Internal server error"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_BODY", Message: "Invalid request body"})
}
