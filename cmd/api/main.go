package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/jewel-billing/internal/application/service"
	"github.com/sangkips/jewel-billing/internal/config"
	domainRepo "github.com/sangkips/jewel-billing/internal/domain/repository"
	"github.com/sangkips/jewel-billing/internal/infrastructure/database"
	"github.com/sangkips/jewel-billing/internal/infrastructure/repository"
	"github.com/sangkips/jewel-billing/internal/presentation/http/handler"
	"github.com/sangkips/jewel-billing/internal/presentation/http/routes"
	"github.com/sangkips/jewel-billing/pkg/invoice"
	"github.com/sangkips/jewel-billing/pkg/invoicepdf"
	"github.com/sangkips/jewel-billing/pkg/printer"
	"github.com/sangkips/jewel-billing/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret)

	// Initialize repositories
	billRepo := repository.NewBillRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Invoice core
	calc := invoice.NewTaxCalculator(cfg.Invoice.GSTRate)
	composer := invoicepdf.NewComposer(invoicepdf.Options{
		Letterhead: invoicepdf.Letterhead{
			Jurisdiction: cfg.Store.Jurisdiction,
			Name:         cfg.Store.Name,
			Address:      cfg.Store.Address,
			TaxLine:      cfg.Store.TaxLine(),
			Contact:      cfg.Store.ContactLine(),
			Signatory:    cfg.Store.SignatoryLine(),
		},
		Declaration:   cfg.Store.Declaration,
		Caption:       cfg.Store.Caption,
		VerifyBaseURL: cfg.Invoice.VerifyBaseURL,
		CGSTRate:      calc.CGSTRate(),
		SGSTRate:      calc.SGSTRate(),
	})

	// Initialize services
	authService := service.NewAuthService(sessionRepo, jwtManager, cfg.Admin.PasswordHash, cfg.JWT.SessionExpiry)
	billService := service.NewBillService(billRepo, calc, composer, cfg.Invoice.MaxItems, cfg.Invoice.HistoryLimit)
	reportService := service.NewReportService(billService)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, billService, cfg.Printer.Type, cfg.Printer.CharWidth)

	go housekeeping(authService, idempotencyRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Bill:    handler.NewBillHandler(billService, reportService),
		Verify:  handler.NewVerifyHandler(billService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Auth:            authService,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		HealthCheck:     func() error { return database.Ping(db) },
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// housekeeping drops expired sessions and idempotency keys once an hour
func housekeeping(auth *service.AuthService, keys domainRepo.IdempotencyRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := auth.PurgeExpired(ctx); err != nil {
			log.Printf("Warning: failed to purge sessions: %v", err)
		}
		if err := keys.DeleteExpired(ctx); err != nil {
			log.Printf("Warning: failed to purge idempotency keys: %v", err)
		}
		cancel()
	}
}
