package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/orderbill/backend/internal/application/billing"
	catalogapp "github.com/orderbill/backend/internal/application/catalog"
	partnerapp "github.com/orderbill/backend/internal/application/partner"
	reportapp "github.com/orderbill/backend/internal/application/report"
	tradeapp "github.com/orderbill/backend/internal/application/trade"
	"github.com/orderbill/backend/internal/infrastructure/cache"
	"github.com/orderbill/backend/internal/infrastructure/config"
	"github.com/orderbill/backend/internal/infrastructure/logger"
	"github.com/orderbill/backend/internal/infrastructure/persistence"
	"github.com/orderbill/backend/internal/interfaces/http/handler"
	"github.com/orderbill/backend/internal/interfaces/http/middleware"
	"github.com/orderbill/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting OrderBill Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	clientPriceRepo := persistence.NewGormClientPriceRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	challanRepo := persistence.NewGormChallanRepository(db.DB)
	billRepo := persistence.NewGormMonthlyBillRepository(db.DB)

	// Transaction scope shared by the lifecycle services
	scope := persistence.NewGormTransactionScope(db.DB)

	// Summary cache: redis when configured, in-memory otherwise
	summaryCache := cache.NewSummaryCache(cfg.Redis, log)
	defer closeSummaryCache(summaryCache, log)

	// Application services
	productService := catalogapp.NewProductService(productRepo)
	clientService := partnerapp.NewClientService(clientRepo, clientPriceRepo, productRepo)
	orderService := tradeapp.NewOrderService(scope, orderRepo)
	challanService := billingapp.NewChallanService(scope, challanRepo)
	billService := billingapp.NewBillService(scope, billRepo, challanRepo, cfg.Billing.DueDateOffsetDays)
	summaryService := reportapp.NewSummaryService(
		productRepo, clientRepo, orderRepo, challanRepo, billRepo,
		summaryCache, cfg.Report.SummaryCacheTTL, log,
	)

	// HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	clientHandler := handler.NewClientHandler(clientService)
	orderHandler := handler.NewOrderHandler(orderService)
	challanHandler := handler.NewChallanHandler(challanService)
	billHandler := handler.NewBillHandler(billService)
	reportHandler := handler.NewReportHandler(summaryService)
	systemHandler := handler.NewSystemHandler(db)

	// Gin mode follows the environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and request logs
	// already carry it, then security headers and CORS.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	r := router.NewRouter(engine)
	r.Register(catalogRoutes(productHandler))
	r.Register(partnerRoutes(clientHandler))
	r.Register(tradeRoutes(orderHandler))
	r.Register(challanRoutes(challanHandler))
	r.Register(billRoutes(billHandler))
	r.Register(reportRoutes(reportHandler))
	r.Register(systemRoutes(systemHandler))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func catalogRoutes(h *handler.ProductHandler) *router.DomainGroup {
	return router.NewDomainGroup("catalog", "/catalog").
		POST("/products", h.Create).
		GET("/products", h.List).
		GET("/products/low-stock", h.ListLowStock).
		GET("/products/:id", h.Get).
		PUT("/products/:id", h.Update).
		DELETE("/products/:id", h.Delete)
}

func partnerRoutes(h *handler.ClientHandler) *router.DomainGroup {
	return router.NewDomainGroup("partner", "/partner").
		POST("/clients", h.Create).
		GET("/clients", h.List).
		GET("/clients/:id", h.Get).
		PUT("/clients/:id", h.Update).
		DELETE("/clients/:id", h.Delete).
		PUT("/clients/:id/prices", h.SetPrice).
		GET("/clients/:id/prices", h.ListPrices).
		DELETE("/clients/:id/prices/:productId", h.DeletePrice)
}

func tradeRoutes(h *handler.OrderHandler) *router.DomainGroup {
	return router.NewDomainGroup("trade", "/trade").
		POST("/orders", h.Create).
		GET("/orders", h.List).
		GET("/orders/:id", h.Get).
		POST("/orders/:id/cancel", h.Cancel).
		DELETE("/orders/:id", h.Delete)
}

func challanRoutes(h *handler.ChallanHandler) *router.DomainGroup {
	return router.NewDomainGroup("challans", "/billing").
		POST("/challans", h.Create).
		GET("/challans", h.List).
		GET("/challans/:id", h.Get).
		DELETE("/challans/:id", h.Delete).
		POST("/challans/:id/reset-billing", h.ResetBilling)
}

func billRoutes(h *handler.BillHandler) *router.DomainGroup {
	return router.NewDomainGroup("bills", "/billing").
		POST("/bills/generate", h.Generate).
		GET("/bills/status", h.CheckStatus).
		GET("/bills", h.List).
		GET("/bills/:id", h.Get).
		GET("/bills/:id/challans", h.GetChallans).
		POST("/bills/:id/payment", h.RecordPayment).
		DELETE("/bills/:id", h.Delete)
}

func reportRoutes(h *handler.ReportHandler) *router.DomainGroup {
	return router.NewDomainGroup("report", "/report").
		GET("/summary", h.GetSummary).
		POST("/summary/invalidate", h.InvalidateSummary)
}

func systemRoutes(h *handler.SystemHandler) *router.DomainGroup {
	return router.NewDomainGroup("system", "/system").
		GET("/health", h.Health).
		GET("/info", h.GetSystemInfo)
}

func closeSummaryCache(c reportapp.SummaryCache, log *zap.Logger) {
	switch v := c.(type) {
	case *cache.RedisSummaryCache:
		if err := v.Close(); err != nil {
			log.Error("Error closing summary cache", zap.Error(err))
		}
	case *cache.InMemorySummaryCache:
		v.Close()
	}
}
