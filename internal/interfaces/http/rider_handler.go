package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/coolbreeze-api/internal/application/analytics"
	"github.com/jhoicas/coolbreeze-api/internal/application/dto"
	"github.com/jhoicas/coolbreeze-api/internal/application/usecase"
)

// RiderHandler perfil y panel del repartidor. Las rutas de órdenes del
// rider (/rider/orders...) son alias de las del OrderHandler; acá viven
// solo perfil y stats.
type RiderHandler struct {
	users     *usecase.UserUseCase
	dashboard *analytics.DashboardUseCase
}

// NewRiderHandler construye el handler.
func NewRiderHandler(users *usecase.UserUseCase, dashboard *analytics.DashboardUseCase) *RiderHandler {
	return &RiderHandler{users: users, dashboard: dashboard}
}

// GetProfile godoc
// @Summary      Perfil del repartidor autenticado
// @Tags         rider
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rider/profile [get]
func (h *RiderHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.users.GetRiderProfile(c.UserContext(), GetPrincipal(c).UID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil del repartidor
// @Tags         rider
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos editables"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rider/profile [put]
func (h *RiderHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.UpdateRiderProfile(c.UserContext(), GetPrincipal(c).UID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Panel del repartidor: contadores y órdenes recientes
// @Tags         rider
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RiderStatsResponse
// @Router       /api/rider/stats [get]
func (h *RiderHandler) Stats(c *fiber.Ctx) error {
	out, err := h.dashboard.RiderStats(c.UserContext(), GetPrincipal(c).UID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
