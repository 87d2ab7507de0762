package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/coolbreeze-api/internal/application/analytics"
	"github.com/jhoicas/coolbreeze-api/internal/application/dto"
	"github.com/jhoicas/coolbreeze-api/internal/application/usecase"
)

// AdminHandler administración de usuarios, lista de emails aprobados y
// dashboard. Todas las rutas cuelgan de RequireRole(admin).
type AdminHandler struct {
	users     *usecase.UserUseCase
	dashboard *analytics.DashboardUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(users *usecase.UserUseCase, dashboard *analytics.DashboardUseCase) *AdminHandler {
	return &AdminHandler{users: users, dashboard: dashboard}
}

// Dashboard godoc
// @Summary      Resumen del panel admin
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.AdminDashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetUser godoc
// @Summary      Obtener un usuario
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	out, err := h.users.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateRole godoc
// @Summary      Cambiar rol de un usuario
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateRoleRequest  true  "Rol destino"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/role [put]
func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.UpdateRole(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ToggleStatus godoc
// @Summary      Activar/desactivar un usuario
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.ToggleStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id}/toggle-status [put]
func (h *AdminHandler) ToggleStatus(c *fiber.Ctx) error {
	out, err := h.users.ToggleStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListRiders godoc
// @Summary      Listar repartidores activos
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RiderResponse
// @Router       /api/admin/riders [get]
func (h *AdminHandler) ListRiders(c *fiber.Ctx) error {
	out, err := h.users.ListRiders(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListApprovedEmails godoc
// @Summary      Listar la lista de acceso
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ApprovedEmailResponse
// @Router       /api/admin/approved-emails [get]
func (h *AdminHandler) ListApprovedEmails(c *fiber.Ctx) error {
	out, err := h.users.ListApprovedEmails(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateApprovedEmail godoc
// @Summary      Aprobar un email
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateApprovedEmailRequest  true  "Email y rol"
// @Success      201   {object}  dto.CreateApprovedEmailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/approved-emails [post]
func (h *AdminHandler) CreateApprovedEmail(c *fiber.Ctx) error {
	var in dto.CreateApprovedEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.CreateApprovedEmail(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteApprovedEmail godoc
// @Summary      Quitar un email de la lista de acceso
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/approved-emails/{id} [delete]
func (h *AdminHandler) DeleteApprovedEmail(c *fiber.Ctx) error {
	if err := h.users.DeleteApprovedEmail(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Approved email removed successfully"})
}
