package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentalcloud/dentalcloud-api/internal/application/auth"
	"github.com/dentalcloud/dentalcloud-api/internal/application/billing"
	"github.com/dentalcloud/dentalcloud-api/internal/application/catalog"
	"github.com/dentalcloud/dentalcloud-api/internal/application/dashboard"
	"github.com/dentalcloud/dentalcloud-api/internal/application/dentist"
	"github.com/dentalcloud/dentalcloud-api/internal/application/export"
	"github.com/dentalcloud/dentalcloud-api/internal/application/settings"
	"github.com/dentalcloud/dentalcloud-api/internal/application/stock"
	"github.com/dentalcloud/dentalcloud-api/internal/application/work"
)

// RouterDeps dépendances du routeur.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	DentistUC   *dentist.UseCase
	CatalogUC   *catalog.ItemUseCase
	ResourceUC  *catalog.ResourceUseCase
	Ledger      *stock.Ledger
	History     *stock.History
	NoteUC      *billing.NoteUseCase
	ProformaUC  *billing.ProformaUseCase
	InvoiceUC   *billing.InvoiceUseCase
	DocumentUC  *billing.DocumentUseCase
	WorkUC      *work.UseCase
	DashboardUC *dashboard.UseCase
	SettingsUC  *settings.UseCase
	FECExporter *export.FECExporter
	JWTSecret   string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Routes protégées (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole("admin")

	// Utilisateurs (admin)
	protected.Post("/users", adminOnly, authHandler.CreateUser)

	// Cabinets dentaires
	dentists := protected.Group("/dentists")
	dentistHandler := NewDentistHandler(deps.DentistUC)
	dentists.Post("/", dentistHandler.Create)
	dentists.Get("/", dentistHandler.List)
	dentists.Get("/:id", dentistHandler.GetByID)
	dentists.Put("/:id", dentistHandler.Update)
	dentists.Delete("/:id", dentistHandler.Deactivate)

	// Catalogue et stock
	stockHandler := NewStockHandler(deps.Ledger, deps.History)
	items := protected.Group("/catalog-items")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	items.Post("/", catalogHandler.Create)
	items.Get("/", catalogHandler.List)
	items.Get("/:id", catalogHandler.GetByID)
	items.Put("/:id", catalogHandler.Update)
	items.Delete("/:id", catalogHandler.Deactivate)
	items.Post("/:id/stock-adjustments", stockHandler.AdjustItem)
	items.Get("/:id/movements", stockHandler.ItemMovements)

	// Ressources consommables
	resources := protected.Group("/resources")
	resourceHandler := NewResourceHandler(deps.ResourceUC)
	resources.Post("/", resourceHandler.Create)
	resources.Get("/", resourceHandler.List)
	resources.Get("/:id", resourceHandler.GetByID)
	resources.Put("/:id", resourceHandler.Update)
	resources.Post("/:id/variants", resourceHandler.CreateVariant)
	resources.Post("/:id/movements", stockHandler.ResourceMovement)
	resources.Get("/:id/movements", stockHandler.ResourceMovements)

	// Bons de livraison
	notes := protected.Group("/delivery-notes")
	noteHandler := NewDeliveryNoteHandler(deps.NoteUC, deps.DocumentUC, deps.DashboardUC)
	workHandler := NewWorkHandler(deps.WorkUC)
	notes.Post("/", noteHandler.Create)
	notes.Get("/", noteHandler.List)
	notes.Get("/:id", noteHandler.GetByID)
	notes.Put("/:id", noteHandler.Update)
	notes.Delete("/:id", noteHandler.Delete)
	notes.Get("/:id/pdf", noteHandler.PDF)
	notes.Post("/:id/send", noteHandler.Send)
	notes.Patch("/:id/stage", workHandler.MoveStage)

	// Proformas
	proformas := protected.Group("/proformas")
	proformaHandler := NewProformaHandler(deps.ProformaUC, deps.DocumentUC, deps.DashboardUC)
	proformas.Post("/", proformaHandler.Create)
	proformas.Get("/", proformaHandler.List)
	proformas.Get("/:id", proformaHandler.GetByID)
	proformas.Patch("/:id/status", proformaHandler.UpdateStatus)
	proformas.Delete("/:id", proformaHandler.Delete)
	proformas.Get("/:id/pdf", proformaHandler.PDF)
	proformas.Post("/:id/send", proformaHandler.Send)

	// Factures
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DocumentUC, deps.DashboardUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Post("/:id/send", invoiceHandler.Send)

	// Tableau de production
	workGroup := protected.Group("/work")
	workGroup.Get("/stages", workHandler.Stages)
	workGroup.Get("/board", workHandler.Board)

	// Tableau de bord
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Stats)

	// Paramètres (admin)
	settingsGroup := protected.Group("/settings", adminOnly)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settingsGroup.Get("/lab", settingsHandler.GetLab)
	settingsGroup.Put("/lab", settingsHandler.UpdateLab)
	settingsGroup.Get("/smtp", settingsHandler.GetSMTP)
	settingsGroup.Put("/smtp", settingsHandler.UpdateSMTP)

	// Export comptable (admin)
	exportHandler := NewExportHandler(deps.FECExporter, deps.SettingsUC)
	protected.Get("/exports/fec", adminOnly, exportHandler.FEC)
}
