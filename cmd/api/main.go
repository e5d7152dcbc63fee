package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/auth"
	"github.com/jhoicas/ventas-analytics/internal/application/importer"
	"github.com/jhoicas/ventas-analytics/internal/application/usecase"
	infraai "github.com/jhoicas/ventas-analytics/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/ventas-analytics/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/store"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/xlsx"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/ventas-analytics/internal/interfaces/http"
	"github.com/jhoicas/ventas-analytics/pkg/config"
	"github.com/jhoicas/ventas-analytics/pkg/logger"
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
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	if cfg.Admin.PasswordHash == "" {
		log.Warn().Msg("ADMIN_PASSWORD_HASH vacío: el usuario admin queda deshabilitado")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.Close()

	dashboardUC := appanalytics.NewDashboardUseCase(st.Sales, st.Customers)
	settingsUC := usecase.NewSettingsUseCase(st.Settings)
	reportUC := usecase.NewReportUseCase(dashboardUC)

	imp := importer.New(xlsx.NewGridLoader(), st.Customers, st.Sales, importer.Options{
		ProductMarker:     cfg.Import.ProductMarker,
		NameMarker:        cfg.Import.NameMarker,
		CustomerHeaderRow: cfg.Import.CustomerHeaderRow,
	}, log)

	aiUC := usecase.NewAIUseCase(dashboardUC, settingsUC,
		infraai.NewFactory(cfg.AI.AnthropicModel, cfg.AI.GeminiModel),
		usecase.AIConfig{
			DefaultProvider: cfg.AI.Provider,
			FallbackKeys: map[string]string{
				usecase.ProviderAnthropic: cfg.AI.AnthropicAPIKey,
				usecase.ProviderGemini:    cfg.AI.GeminiAPIKey,
			},
			Timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		})

	authUC := auth.NewAuthUseCase(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	},
		auth.Credentials{Username: cfg.Admin.User, PasswordHash: cfg.Admin.PasswordHash, Role: auth.RoleAdmin},
		auth.Credentials{Username: cfg.Viewer.User, PasswordHash: cfg.Viewer.PasswordHash, Role: auth.RoleViewer},
	)

	// El cuerpo admite un lote de planillas; el límite por archivo lo aplica el handler.
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    4 * cfg.Import.MaxUploadMB << 20,
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 90,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas Analytics API",
	}))

	app.Get("/health", httpRouter.Health(cfg.App.Name))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Importer:    imp,
		DashboardUC: dashboardUC,
		SettingsUC:  settingsUC,
		AIUC:        aiUC,
		ReportUC:    reportUC,
		PDF:         infrapdf.NewMarotoPDFGenerator(),
		XML:         xmlexport.NewExporter(),
		MaxUploadMB: cfg.Import.MaxUploadMB,
		JWTSecret:   cfg.JWT.Secret,
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
