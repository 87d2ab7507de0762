package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/coolbreeze-api/internal/application/auth"
	"github.com/jhoicas/coolbreeze-api/internal/application/dto"
)

// AuthHandler maneja login con Google y la sesión actual.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// GoogleLogin godoc
// @Summary      Login con ID token de Google
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GoogleLoginRequest  true  "ID token del proveedor"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/google-login [post]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var in dto.GoogleLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "token is required"})
	}
	out, err := h.uc.GoogleLogin(c.UserContext(), in.Token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario autenticado actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.CurrentUser(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
