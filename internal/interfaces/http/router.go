package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/office-orders/internal/application/auth"
	"github.com/tu-usuario/office-orders/internal/application/order"
	"github.com/tu-usuario/office-orders/internal/application/usecase"
	"github.com/tu-usuario/office-orders/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	ItemUC    *usecase.ItemUseCase
	OrderUC   *order.OrderUseCase
	JWTSecret string
	AppEnv    string
}

// Router registra las rutas de la API y las páginas tras el gateway.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login es público; me requiere sesión)
	authHandler := NewAuthHandler(deps.AuthUC, deps.AppEnv)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", CookieAuth(deps.JWTSecret), authHandler.Me)

	// Users: solo admin. Cada ruta re-verifica token y rol por su cuenta,
	// independiente del gateway de páginas.
	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/users", CookieAuth(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Delete("/", userHandler.Delete)

	// Items: lecturas tolerantes a no autenticados; mutaciones solo admin.
	itemHandler := NewItemHandler(deps.ItemUC)
	items := api.Group("/items")
	items.Get("/", itemHandler.List)
	items.Get("/available", itemHandler.ListAvailable)
	items.Post("/", CookieAuth(deps.JWTSecret), RequireRole(entity.RoleAdmin), itemHandler.Create)
	items.Put("/:id", CookieAuth(deps.JWTSecret), RequireRole(entity.RoleAdmin), itemHandler.Update)
	items.Delete("/:id", CookieAuth(deps.JWTSecret), RequireRole(entity.RoleAdmin), itemHandler.Delete)

	// Orders: cualquier rol autenticado; la autorización fina vive en el use case.
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := api.Group("/orders", CookieAuth(deps.JWTSecret))
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Put("/:id", orderHandler.UpdateStatus)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Páginas tras el gateway. El renderizado real queda fuera de este core:
	// las áreas responden un payload mínimo para el cliente.
	pages := app.Group("/", Gateway(deps.JWTSecret))
	pages.Get("/login", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "login"})
	})
	pages.Get("/dashboard/:area", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "dashboard", "area": c.Params("area"), "role": GetRole(c)})
	})
	pages.Get("/", func(c *fiber.Ctx) error {
		// inalcanzable con sesión válida: el gateway redirige antes
		return c.Redirect("/login", fiber.StatusFound)
	})
}
