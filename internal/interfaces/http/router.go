package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wedding-api/internal/application/auth"
	"github.com/jhoicas/wedding-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	TodoUC      *usecase.TodoUseCase
	CategoryUC  *usecase.CategoryUseCase
	SettingsUC  *usecase.SettingsUseCase
	DashboardUC *usecase.DashboardUseCase
	ChecklistUC *usecase.ChecklistUseCase
	ImportUC    *usecase.LocalImportUseCase

	JWTSecret    string
	CookieName   string
	CookieSecure bool
	TokenTTL     time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.CookieName)

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, SessionCookie{
		Name:   deps.CookieName,
		Secure: deps.CookieSecure,
		MaxAge: deps.TokenTTL,
	})
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Todos: las rutas fijas van antes de /:id
	todos := api.Group("/todos", requireAuth)
	todoHandler := NewTodoHandler(deps.TodoUC, deps.ChecklistUC)
	todos.Get("/", todoHandler.List)
	todos.Post("/", todoHandler.Create)
	todos.Get("/stats", todoHandler.Stats)
	todos.Get("/export.pdf", todoHandler.ExportPDF)
	todos.Delete("/completed", todoHandler.ClearCompleted)
	todos.Get("/:id", todoHandler.GetByID)
	todos.Put("/:id", todoHandler.Update)
	todos.Delete("/:id", todoHandler.Delete)
	todos.Post("/:id/toggle", todoHandler.Toggle)

	categories := api.Group("/todo-categories", requireAuth)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	settings := api.Group("/wedding-settings", requireAuth)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", settingsHandler.Upsert)
	settings.Delete("/", settingsHandler.Delete)
	settings.Get("/countdown", settingsHandler.Countdown)

	dashboard := api.Group("/dashboard", requireAuth)
	dashboard.Get("/summary", NewDashboardHandler(deps.DashboardUC).GetSummary)

	importGroup := api.Group("/import", requireAuth)
	importGroup.Post("/local", NewImportHandler(deps.ImportUC).ImportLocal)
}
