package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NetindoGit/netindo_api/internal/audit"
	"github.com/NetindoGit/netindo_api/internal/cache"
	"github.com/NetindoGit/netindo_api/internal/config"
	"github.com/NetindoGit/netindo_api/internal/database"
	"github.com/NetindoGit/netindo_api/internal/feed"
	"github.com/NetindoGit/netindo_api/internal/handler"
	"github.com/NetindoGit/netindo_api/internal/lifecycle"
	"github.com/NetindoGit/netindo_api/internal/livecache"
	"github.com/NetindoGit/netindo_api/internal/middleware"
	"github.com/NetindoGit/netindo_api/internal/repository"
	"github.com/NetindoGit/netindo_api/internal/service"
	"github.com/NetindoGit/netindo_api/internal/worker"
)

// main is the application entrypoint for the Netindo back-office API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting netindo api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize report cache
	reportCache := cache.NewReportCache(redisClient, 30*time.Second)

	// 4. Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	methodRepo := repository.NewPaymentMethodRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	planRepo := repository.NewPlanRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	// 5. Audit recorder and change feed
	recorder := audit.NewRecorder(auditRepo, 256)
	defer recorder.Close()

	hub := feed.NewHub()
	mirror := livecache.NewMirror()
	mirror.Bind(hub)
	warmMirror(mirror, ticketRepo, deviceRepo)

	guard := lifecycle.Guard{Strict: cfg.StrictTransitions}

	// 6. Initialize services
	authSvc := service.NewAuthService(adminRepo, recorder)
	if cfg.BootstrapAdminEmail != "" && cfg.BootstrapAdminPassword != "" {
		if err := authSvc.EnsureAdmin(cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword); err != nil {
			log.Warn().Err(err).Msg("Bootstrap admin setup failed")
		}
	}
	customerSvc := service.NewCustomerService(customerRepo, recorder, guard)
	ticketSvc := service.NewTicketService(ticketRepo, recorder, hub, guard)
	billingSvc := service.NewBillingService(invoiceRepo, methodRepo, customerRepo, planRepo, guard, cfg.Billing.DueDays)
	deviceSvc := service.NewDeviceService(deviceRepo, recorder, hub)
	catalogSvc := service.NewCatalogService(planRepo, employeeRepo, recorder)
	auditSvc := service.NewAuditService(auditRepo)
	reportSvc := service.NewReportService(customerRepo, invoiceRepo, mirror, reportCache)
	exporter := service.NewInvoiceExporter("Netindo")

	var archiveSvc *service.ArchiveService
	if cfg.Archive.Bucket != "" {
		archiveSvc, err = service.NewArchiveService(&cfg.Archive)
		if err != nil {
			log.Warn().Err(err).Msg("Archive service initialization failed - invoice archiving will be disabled")
		}
	}

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:   handler.NewHealthHandler(db),
		Auth:     handler.NewAuthHandler(authSvc),
		Customer: handler.NewCustomerHandler(customerSvc),
		Ticket:   handler.NewTicketHandler(ticketSvc),
		Invoice:  handler.NewInvoiceHandler(billingSvc, customerSvc, catalogSvc, exporter, archiveSvc),
		Device:   handler.NewDeviceHandler(deviceSvc),
		Catalog:  handler.NewCatalogHandler(catalogSvc),
		Audit:    handler.NewAuditHandler(auditSvc),
		Report:   handler.NewReportHandler(reportSvc),
		Feed:     handler.NewFeedHandler(hub),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()
	loginLimiter := middleware.NewInvalidAuthRateLimiter()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw, loginLimiter)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	deviceWorker := worker.NewDeviceCheckWorker(deviceSvc, cfg.Worker.DeviceCheckInterval, cfg.Worker.DeviceOfflineAfter)
	if deviceWorker.Enabled() {
		go deviceWorker.Start(ctx)
	} else {
		log.Info().Msg("Device check worker disabled")
	}

	overdueWorker := worker.NewOverdueWorker(invoiceRepo, recorder, cfg.Worker.OverdueSweepInterval)
	if overdueWorker.Enabled() {
		go overdueWorker.Start(ctx)
	} else {
		log.Info().Msg("Overdue invoice worker disabled")
	}

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Customer *handler.CustomerHandler
	Ticket   *handler.TicketHandler
	Invoice  *handler.InvoiceHandler
	Device   *handler.DeviceHandler
	Catalog  *handler.CatalogHandler
	Audit    *handler.AuditHandler
	Report   *handler.ReportHandler
	Feed     *handler.FeedHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware, loginLimiter *middleware.InvalidAuthRateLimiter) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Auth (login is rate limited per IP)
	router.POST("/v1/auth/login", loginLimiter.Handle(), handlers.Auth.Login)

	// Feed stream authenticates via query token; EventSource cannot set headers.
	router.GET("/v1/feed", handlers.Feed.Stream)

	v1 := router.Group("/v1")
	v1.Use(jwtMiddleware.Handle())
	{
		v1.GET("/auth/me", handlers.Auth.Me)

		// Customer Management
		v1.GET("/customers", handlers.Customer.ListCustomers)
		v1.POST("/customers", handlers.Customer.CreateCustomer)
		v1.GET("/customers/:id", handlers.Customer.GetCustomer)
		v1.PUT("/customers/:id", handlers.Customer.UpdateCustomer)
		v1.DELETE("/customers/:id", handlers.Customer.DeleteCustomer)
		v1.GET("/customers/:id/invoices", handlers.Invoice.ListCustomerInvoices)
		v1.GET("/customers/:id/payment-methods", handlers.Invoice.ListPaymentMethods)
		v1.POST("/customers/:id/payment-methods", handlers.Invoice.AddPaymentMethod)
		v1.DELETE("/customers/:id/payment-methods/:methodId", handlers.Invoice.RemovePaymentMethod)

		// Support Tickets
		v1.GET("/tickets", handlers.Ticket.ListTickets)
		v1.POST("/tickets", handlers.Ticket.CreateTicket)
		v1.GET("/tickets/:id", handlers.Ticket.GetTicket)
		v1.PUT("/tickets/:id", handlers.Ticket.UpdateTicket)
		v1.DELETE("/tickets/:id", handlers.Ticket.DeleteTicket)

		// Billing
		v1.GET("/invoices", handlers.Invoice.ListInvoices)
		v1.POST("/invoices", handlers.Invoice.GenerateInvoice)
		v1.GET("/invoices/:id", handlers.Invoice.GetInvoice)
		v1.PATCH("/invoices/:id/status", handlers.Invoice.UpdateInvoiceStatus)
		v1.GET("/invoices/:id/export", handlers.Invoice.ExportInvoice)
		v1.POST("/billing/run", handlers.Invoice.RunBillingCycle)

		// Network Devices
		v1.GET("/devices", handlers.Device.ListDevices)
		v1.POST("/devices", handlers.Device.CreateDevice)
		v1.GET("/devices/:id", handlers.Device.GetDevice)
		v1.PUT("/devices/:id", handlers.Device.UpdateDevice)
		v1.PATCH("/devices/:id/status", handlers.Device.SetDeviceStatus)
		v1.DELETE("/devices/:id", handlers.Device.DeleteDevice)

		// Plans
		v1.GET("/plans", handlers.Catalog.ListPlans)
		v1.POST("/plans", handlers.Catalog.CreatePlan)
		v1.GET("/plans/:id", handlers.Catalog.GetPlan)
		v1.PUT("/plans/:id", handlers.Catalog.UpdatePlan)
		v1.DELETE("/plans/:id", handlers.Catalog.DeletePlan)

		// Employees
		v1.GET("/employees", handlers.Catalog.ListEmployees)
		v1.POST("/employees", handlers.Catalog.CreateEmployee)
		v1.GET("/employees/:id", handlers.Catalog.GetEmployee)
		v1.PUT("/employees/:id", handlers.Catalog.UpdateEmployee)
		v1.DELETE("/employees/:id", handlers.Catalog.DeleteEmployee)

		// Activity history
		v1.GET("/audit", handlers.Audit.RecentActivity)
		v1.GET("/audit/:entity/:id", handlers.Audit.EntityHistory)

		// Reports
		v1.GET("/reports/dashboard", handlers.Report.Dashboard)
	}
}

// warmMirror seeds the live collections from current database rows so the
// dashboard counters survive a restart. Missing tables leave the mirror
// empty, matching the read-path resilience convention.
func warmMirror(mirror *livecache.Mirror, tickets *repository.TicketRepository, devices *repository.DeviceRepository) {
	ticketRows, err := tickets.List()
	if err != nil && !database.IsMissingTable(err) {
		log.Warn().Err(err).Msg("Mirror warm: listing tickets failed")
	}
	deviceRows, err := devices.List()
	if err != nil && !database.IsMissingTable(err) {
		log.Warn().Err(err).Msg("Mirror warm: listing devices failed")
	}
	mirror.Warm(ticketRows, deviceRows)
	log.Info().Int("tickets", len(ticketRows)).Int("devices", len(deviceRows)).Msg("Live mirror warmed")
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
