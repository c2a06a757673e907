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

	"github.com/dentalcloud/dentalcloud-api/internal/application/auth"
	"github.com/dentalcloud/dentalcloud-api/internal/application/billing"
	"github.com/dentalcloud/dentalcloud-api/internal/application/catalog"
	"github.com/dentalcloud/dentalcloud-api/internal/application/dashboard"
	"github.com/dentalcloud/dentalcloud-api/internal/application/dentist"
	"github.com/dentalcloud/dentalcloud-api/internal/application/export"
	"github.com/dentalcloud/dentalcloud-api/internal/application/settings"
	"github.com/dentalcloud/dentalcloud-api/internal/application/stock"
	"github.com/dentalcloud/dentalcloud-api/internal/application/work"
	infracache "github.com/dentalcloud/dentalcloud-api/internal/infrastructure/cache"
	infraemail "github.com/dentalcloud/dentalcloud-api/internal/infrastructure/email"
	infrapdf "github.com/dentalcloud/dentalcloud-api/internal/infrastructure/pdf"
	"github.com/dentalcloud/dentalcloud-api/internal/infrastructure/postgres"
	httpRouter "github.com/dentalcloud/dentalcloud-api/internal/interfaces/http"
	"github.com/dentalcloud/dentalcloud-api/pkg/config"
	"github.com/dentalcloud/dentalcloud-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration : " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	// Repositories sur le pool (hors transaction)
	userRepo := postgres.NewUserRepository(pool)
	labRepo := postgres.NewLabRepository(pool)
	dentistRepo := postgres.NewDentistRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	resourceRepo := postgres.NewResourceRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	noteRepo := postgres.NewDeliveryNoteRepository(pool)
	proformaRepo := postgres.NewProformaRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache : Redis si configuré, sinon recalcul à chaque requête
	var dashCache dashboard.Cache = infracache.NewNoop()
	if cfg.Redis.Addr != "" {
		redisCache, err := infracache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("connexion à Redis")
		}
		defer redisCache.Close()
		dashCache = redisCache
	}

	mailSender := infraemail.NewSMTPSender(labRepo, log)
	pdfGen := infrapdf.NewMarotoGenerator()

	// Cas d'usage
	ledger := stock.NewLedger(txRunner, log)
	history := stock.NewHistory(catalogRepo, resourceRepo, movementRepo)
	authUC := auth.NewUseCase(userRepo, labRepo, mailSender, auth.Config{
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		JWTExpMinutes: cfg.JWT.Expiration,
	}, log)
	dentistUC := dentist.NewUseCase(dentistRepo)
	catalogUC := catalog.NewItemUseCase(catalogRepo)
	resourceUC := catalog.NewResourceUseCase(resourceRepo)
	noteUC := billing.NewNoteUseCase(txRunner, noteRepo, dentistRepo, ledger, log)
	proformaUC := billing.NewProformaUseCase(txRunner, proformaRepo, log)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, log)
	documentUC := billing.NewDocumentUseCase(labRepo, dentistRepo, noteRepo, proformaRepo, invoiceRepo, pdfGen, mailSender, log)
	workUC := work.NewUseCase(noteRepo, dentistRepo)
	dashboardUC := dashboard.NewUseCase(dashboardRepo, dashCache, log)
	settingsUC := settings.NewUseCase(labRepo, labRepo)
	fecExporter := export.NewFECExporter(invoiceRepo, dentistRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local : http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "DentalCloud API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		DentistUC:   dentistUC,
		CatalogUC:   catalogUC,
		ResourceUC:  resourceUC,
		Ledger:      ledger,
		History:     history,
		NoteUC:      noteUC,
		ProformaUC:  proformaUC,
		InvoiceUC:   invoiceUC,
		DocumentUC:  documentUC,
		WorkUC:      workUC,
		DashboardUC: dashboardUC,
		SettingsUC:  settingsUC,
		FECExporter: fecExporter,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP arrêté")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
