package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/auth"
	"github.com/jhoicas/ventas-analytics/internal/application/importer"
	"github.com/jhoicas/ventas-analytics/internal/application/ports"
	"github.com/jhoicas/ventas-analytics/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Importer    *importer.Importer
	DashboardUC *appanalytics.DashboardUseCase
	SettingsUC  *usecase.SettingsUseCase
	AIUC        *usecase.AIUseCase
	ReportUC    *usecase.ReportUseCase
	PDF         ports.ReportRenderer
	XML         ports.ReportRenderer
	MaxUploadMB int
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/token", authHandler.Token)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(auth.RoleAdmin, auth.RoleViewer)
	adminOnly := RequireRole(auth.RoleAdmin)

	salesHandler := NewSalesHandler(deps.DashboardUC)
	protected.Get("/sales", anyRole, salesHandler.List)
	protected.Get("/sales/summary", anyRole, salesHandler.Summary)
	protected.Get("/customers/count", anyRole, salesHandler.CustomerCount)
	protected.Delete("/data", adminOnly, salesHandler.ClearAll)

	importHandler := NewImportHandler(deps.Importer, deps.MaxUploadMB)
	protected.Post("/imports", adminOnly, importHandler.Upload)

	reportHandler := NewReportHandler(deps.ReportUC, deps.PDF, deps.XML)
	protected.Get("/reports/sales.pdf", anyRole, reportHandler.SalesPDF)
	protected.Get("/reports/sales.xml", anyRole, reportHandler.SalesXML)

	aiHandler := NewAIHandler(deps.AIUC)
	protected.Post("/ai/summary", anyRole, aiHandler.Summary)

	// Settings (solo admin: contienen API keys)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings := protected.Group("/settings", adminOnly)
	settings.Get("/:key", settingsHandler.Get)
	settings.Put("/:key", settingsHandler.Put)
	settings.Delete("/:key", settingsHandler.Delete)
}
