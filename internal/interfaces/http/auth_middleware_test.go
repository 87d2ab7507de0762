package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/coolbreeze-api/internal/application/auth"
	"github.com/jhoicas/coolbreeze-api/internal/domain"
	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
	httpiface "github.com/jhoicas/coolbreeze-api/internal/interfaces/http"
	"github.com/jhoicas/coolbreeze-api/pkg/jwt"
)

const testSecret = "test-secret-for-middleware"

// ──────────────────────────────────────────────────────────────────────────────
// Stubs
// ──────────────────────────────────────────────────────────────────────────────

type stubResolver struct {
	principal *auth.Principal
	err       error
}

func (s *stubResolver) ResolvePrincipal(_ context.Context, _, _ string) (*auth.Principal, error) {
	return s.principal, s.err
}

func newApp(resolver httpiface.PrincipalResolver, roles ...entity.Role) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		httpiface.AuthMiddleware(testSecret, resolver),
		httpiface.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			p := httpiface.GetPrincipal(c)
			return c.JSON(fiber.Map{"uid": p.UID, "role": string(p.Role)})
		})
	return app
}

func sessionToken(t *testing.T, uid, email, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, uid, email, role, "user-1", "coolbreeze-api", 60)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, authorization string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp.StatusCode, payload
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := newApp(&stubResolver{})

	status, payload := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "NO_TOKEN", payload["code"])
	assert.Equal(t, "No token provided", payload["message"])
}

func TestAuthMiddleware_HeaderMalformado(t *testing.T) {
	app := newApp(&stubResolver{})

	status, payload := doRequest(t, app, "Basic abc123")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "NO_TOKEN", payload["code"])
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := newApp(&stubResolver{})

	status, payload := doRequest(t, app, "Bearer not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", payload["code"])
	assert.Equal(t, "Unauthorized", payload["message"])
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := newApp(&stubResolver{})
	token, err := jwt.Generate("otro-secreto", "uid-1", "a@b.com", "customer", "user-1", "coolbreeze-api", 60)
	require.NoError(t, err)

	status, payload := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", payload["code"])
}

func TestAuthMiddleware_EmailNoAprobado(t *testing.T) {
	app := newApp(&stubResolver{err: domain.ErrEmailNotApproved})
	token := sessionToken(t, "uid-1", "a@b.com", "customer")

	status, payload := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "EMAIL_NOT_APPROVED", payload["code"])
	assert.Equal(t, "Email not approved for access", payload["message"])
}

func TestAuthMiddleware_UsuarioNoExiste(t *testing.T) {
	app := newApp(&stubResolver{err: domain.ErrUserNotFound})
	token := sessionToken(t, "uid-1", "a@b.com", "customer")

	status, payload := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "USER_NOT_FOUND", payload["code"])
	assert.Equal(t, "User not found in system", payload["message"])
}

func TestAuthMiddleware_UsuarioInactivo(t *testing.T) {
	app := newApp(&stubResolver{err: domain.ErrUserInactive})
	token := sessionToken(t, "uid-1", "a@b.com", "customer")

	status, payload := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "USER_INACTIVE", payload["code"])
	assert.Equal(t, "User account is inactive", payload["message"])
}

func TestAuthMiddleware_PrincipalEnLocals(t *testing.T) {
	resolver := &stubResolver{principal: &auth.Principal{
		UID: "uid-1", Email: "a@b.com", Role: entity.RoleCustomer, UserID: "user-1",
	}}
	app := newApp(resolver)
	token := sessionToken(t, "uid-1", "a@b.com", "customer")

	status, payload := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "uid-1", payload["uid"])
	assert.Equal(t, "customer", payload["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_RolPermitido(t *testing.T) {
	resolver := &stubResolver{principal: &auth.Principal{
		UID: "uid-admin", Email: "admin@b.com", Role: entity.RoleAdmin,
	}}
	app := newApp(resolver, entity.RoleAdmin)
	token := sessionToken(t, "uid-admin", "admin@b.com", "admin")

	status, _ := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequireRole_RolRechazado(t *testing.T) {
	resolver := &stubResolver{principal: &auth.Principal{
		UID: "uid-1", Email: "a@b.com", Role: entity.RoleCustomer,
	}}
	app := newApp(resolver, entity.RoleAdmin, entity.RoleRider)
	token := sessionToken(t, "uid-1", "a@b.com", "customer")

	status, payload := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", payload["code"])
	assert.Equal(t, "You don't have permission to perform this action", payload["message"])
}

func TestRequireRole_SinRolesCualquierAutenticado(t *testing.T) {
	resolver := &stubResolver{principal: &auth.Principal{
		UID: "uid-1", Email: "a@b.com", Role: entity.RoleCustomer,
	}}
	app := newApp(resolver)
	token := sessionToken(t, "uid-1", "a@b.com", "customer")

	status, _ := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequireRole_SinPrincipal(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", httpiface.RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	status, payload := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", payload["code"])
}
