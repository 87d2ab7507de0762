package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/coolbreeze-api/internal/application/auth"
	"github.com/jhoicas/coolbreeze-api/internal/application/dto"
	"github.com/jhoicas/coolbreeze-api/internal/domain"
	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
	"github.com/jhoicas/coolbreeze-api/pkg/jwt"
)

// Locals key del principal autenticado en Fiber.
const localPrincipal = "principal"

// PrincipalResolver re-resuelve al actor en cada petición: lista de
// aprobados, existencia y estado del usuario. Lo implementa el caso de
// uso de auth.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, uid, email string) (*auth.Principal, error)
}

// AuthMiddleware es el primer tramo de la cadena de autorización: exige
// el Bearer token de sesión, lo valida, y re-chequea contra el
// directorio antes de colgar el Principal en locals. El token solo
// prueba identidad; rol y estado salen frescos de la base.
func AuthMiddleware(jwtSecret string, resolver PrincipalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c.Get("Authorization"))
		if tokenString == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "NO_TOKEN", Message: "No token provided"})
		}

		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "Unauthorized"})
		}

		principal, err := resolver.ResolvePrincipal(c.UserContext(), claims.UID, claims.Email)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrEmailNotApproved):
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code: "EMAIL_NOT_APPROVED", Message: "Email not approved for access"})
			case errors.Is(err, domain.ErrUserNotFound):
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Code: "USER_NOT_FOUND", Message: "User not found in system"})
			case errors.Is(err, domain.ErrUserInactive):
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code: "USER_INACTIVE", Message: "User account is inactive"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code: "INTERNAL", Message: "Internal server error"})
		}

		c.Locals(localPrincipal, principal)
		return c.Next()
	}
}

// RequireRole es el segundo tramo: restringe la ruta a los roles dados.
// Sin roles, basta con estar autenticado.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := GetPrincipal(c)
		if principal == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "Unauthorized"})
		}
		if len(roles) == 0 {
			return c.Next()
		}
		for _, role := range roles {
			if principal.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "FORBIDDEN", Message: "You don't have permission to perform this action"})
	}
}

// GetPrincipal devuelve el principal del contexto (después del
// AuthMiddleware), o nil si la petición no está autenticada.
func GetPrincipal(c *fiber.Ctx) *auth.Principal {
	v := c.Locals(localPrincipal)
	if v == nil {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
