package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/coolbreeze-api/internal/application/analytics"
	"github.com/jhoicas/coolbreeze-api/internal/application/auth"
	"github.com/jhoicas/coolbreeze-api/internal/application/orders"
	"github.com/jhoicas/coolbreeze-api/internal/application/usecase"
	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
)

// RouterDeps dependencias del router HTTP.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	UserUC      *usecase.UserUseCase
	OrderUC     *orders.OrderUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
	Resolver    PrincipalResolver
}

// Router registra todas las rutas bajo /api. El catálogo es de lectura
// pública; el resto pasa por AuthMiddleware y, donde corresponde, por
// RequireRole. Las rutas estáticas se registran antes que las de
// parámetro para que /orders/my-orders no caiga en /orders/:id.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)
	productHandler := NewProductHandler(deps.ProductUC)
	userHandler := NewUserHandler(deps.UserUC)
	orderHandler := NewOrderHandler(deps.OrderUC)
	adminHandler := NewAdminHandler(deps.UserUC, deps.DashboardUC)
	riderHandler := NewRiderHandler(deps.UserUC, deps.DashboardUC)

	requireAuth := AuthMiddleware(deps.JWTSecret, deps.Resolver)

	api := app.Group("/api")

	// Públicas: login y catálogo de solo lectura.
	api.Post("/auth/google-login", authHandler.GoogleLogin)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)

	// Sesión.
	api.Get("/auth/me", requireAuth, authHandler.Me)

	// Perfil propio, cualquier rol.
	users := api.Group("/users", requireAuth)
	users.Get("/profile", userHandler.GetProfile)
	users.Put("/profile", userHandler.UpdateProfile)

	// Catálogo: mutación solo admin.
	products := api.Group("/products", requireAuth, RequireRole(entity.RoleAdmin))
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Patch("/:id/stock", productHandler.UpdateStock)

	// Órdenes.
	ordersGroup := api.Group("/orders", requireAuth)
	ordersGroup.Get("/my-orders", RequireRole(entity.RoleCustomer), orderHandler.ListMine)
	ordersGroup.Get("/rider/assigned", RequireRole(entity.RoleRider), orderHandler.ListAssigned)
	ordersGroup.Post("/", RequireRole(entity.RoleCustomer), orderHandler.Create)
	ordersGroup.Get("/", RequireRole(entity.RoleAdmin), orderHandler.ListAll)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/receipt", orderHandler.Receipt)
	ordersGroup.Put("/:id/status", RequireRole(entity.RoleAdmin), orderHandler.UpdateStatus)
	ordersGroup.Put("/:id/delivery", RequireRole(entity.RoleRider), orderHandler.UpdateDelivery)

	// Panel admin.
	admin := api.Group("/admin", requireAuth, RequireRole(entity.RoleAdmin))
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Put("/users/:id/role", adminHandler.UpdateRole)
	admin.Put("/users/:id/toggle-status", adminHandler.ToggleStatus)
	admin.Get("/riders", adminHandler.ListRiders)
	admin.Get("/approved-emails", adminHandler.ListApprovedEmails)
	admin.Post("/approved-emails", adminHandler.CreateApprovedEmail)
	admin.Delete("/approved-emails/:id", adminHandler.DeleteApprovedEmail)

	// Panel rider. /rider/orders... son alias de las rutas de órdenes
	// para el cliente móvil de repartidores.
	rider := api.Group("/rider", requireAuth, RequireRole(entity.RoleRider))
	rider.Get("/orders", orderHandler.ListAssigned)
	rider.Get("/orders/:id", orderHandler.GetByID)
	rider.Put("/orders/:id/delivery", orderHandler.UpdateDelivery)
	rider.Get("/profile", riderHandler.GetProfile)
	rider.Put("/profile", riderHandler.UpdateProfile)
	rider.Get("/stats", riderHandler.Stats)
}
