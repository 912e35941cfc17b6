package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/wedding-api/internal/application/auth"
	"github.com/jhoicas/wedding-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/wedding-api/internal/infrastructure/pdf"
	"github.com/jhoicas/wedding-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/wedding-api/internal/interfaces/http"
	"github.com/jhoicas/wedding-api/pkg/config"
	"github.com/jhoicas/wedding-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repos.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()

	// PDF: sin fuente CJK configurada los caracteres chinos no se dibujan
	pdfGenerator, err := infrapdf.NewMarotoChecklistGenerator(cfg.PDF.FontPath)
	if err != nil {
		log.Fatal().Err(err).Str("font", cfg.PDF.FontPath).Msg("cargar fuente del PDF")
	}
	if cfg.IsProduction() && !cfg.Auth.CookieSecure {
		log.Warn().Msg("AUTH_COOKIE_SECURE desactivado en producción")
	}
	if cfg.PDF.FontPath == "" {
		log.Warn().Msg("PDF_FONT_PATH vacío: el PDF usará la fuente por defecto")
	}

	categoryUC := usecase.NewCategoryUseCase(repos.Categories, repos.Tx, log)
	todoUC := usecase.NewTodoUseCase(repos.Todos, categoryUC, repos.Tx, log)
	settingsUC := usecase.NewSettingsUseCase(repos.Settings)
	dashboardUC := usecase.NewDashboardUseCase(repos.Settings, repos.Todos)
	checklistUC := usecase.NewChecklistUseCase(repos.Todos, categoryUC, repos.Settings, pdfGenerator)
	importUC := usecase.NewLocalImportUseCase(categoryUC, settingsUC, repos.Tx, log)
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // importaciones con imágenes en base64
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(cfg.HTTP.CORSOrigins),
		AllowCredentials: cfg.HTTP.CORSOrigins != "",
	}))
	app.Use(httpRouter.AccessLog(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Wedding Planner API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		TodoUC:       todoUC,
		CategoryUC:   categoryUC,
		SettingsUC:   settingsUC,
		DashboardUC:  dashboardUC,
		ChecklistUC:  checklistUC,
		ImportUC:     importUC,
		JWTSecret:    cfg.JWT.Secret,
		CookieName:   cfg.Auth.CookieName,
		CookieSecure: cfg.Auth.CookieSecure,
		TokenTTL:     time.Duration(cfg.JWT.Expiration) * time.Minute,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// corsOrigins "*" cuando no se configuró ninguna lista.
func corsOrigins(origins string) string {
	if origins == "" {
		return "*"
	}
	return origins
}
