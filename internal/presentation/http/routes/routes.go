package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/jewel-billing/internal/config"
	domainRepo "github.com/sangkips/jewel-billing/internal/domain/repository"
	"github.com/sangkips/jewel-billing/internal/presentation/http/handler"
	"github.com/sangkips/jewel-billing/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Bill    *handler.BillHandler
	Verify  *handler.VerifyHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Auth            middleware.SessionAuthenticator
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	// HealthCheck reports whether the record store is reachable. Optional.
	HealthCheck func() error
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		status, code := "ok", 200
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(); err != nil {
				status, code = "degraded", 503
			}
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
	)

	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())
	{
		// Public routes (no authentication required)
		v1.POST("/auth/login", h.Auth.Login)
		v1.GET("/verify/:id", h.Verify.Verify)

		// Protected routes (session required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Auth))

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.POST("/auth/logout", h.Auth.Logout)

	registerBillRoutes(protected, h, deps)
	registerPrinterRoutes(protected, h)
}

func registerBillRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	bills := protected.Group("/bills")
	{
		bills.POST("", middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}), h.Bill.Create)
		bills.POST("/preview", h.Bill.Preview)
		bills.GET("/history", h.Bill.History)
		bills.GET("/history/export", h.Bill.ExportHistory)
		bills.GET("/search/:invoiceNo", h.Bill.Search)
		bills.PUT("/cancel/:invoiceNo", h.Bill.Cancel)
		bills.GET("/:invoiceNo/pdf", h.Bill.DownloadPDF)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/print/:invoiceNo", h.Printer.PrintReceipt)
	}
}
