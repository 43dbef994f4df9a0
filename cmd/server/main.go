package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/tradedesk-portal/internal/config"
	cronrunner "github.com/tradedesk-portal/internal/cron"
	"github.com/tradedesk-portal/internal/handler"
	"github.com/tradedesk-portal/internal/marketdata"
	"github.com/tradedesk-portal/internal/middleware"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/repository"
	"github.com/tradedesk-portal/internal/scraper"
	"github.com/tradedesk-portal/internal/service"
	"github.com/tradedesk-portal/internal/worker"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Build info (injected at build time via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := middleware.InitLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	// Initialize Redis
	rdb := initRedis(cfg)

	// Auto migrate database
	if err := autoMigrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	calendar, err := service.NewCalendar(cfg.Analytics)
	if err != nil {
		log.Fatal("invalid analytics config", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	recordRepo := repository.NewTradeRecordRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	siteRepo := repository.NewSiteRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	adminService := service.NewAdminService(userRepo)
	accountService := service.NewAccountService(accountRepo, userRepo)
	recordService := service.NewTradeRecordService(recordRepo, accountRepo, holidayRepo, calendar)
	performanceService := service.NewPerformanceService(userRepo, recordRepo, calendar)
	attendanceService := service.NewAttendanceService(attendanceRepo, calendar)
	holidayService := service.NewHolidayService(holidayRepo, calendar)
	siteService := service.NewSiteService(siteRepo)

	if err := adminService.EnsureAdmin(cfg.Admin); err != nil {
		if !errors.Is(err, service.ErrAdminSeedIncomplete) {
			log.Fatal("failed to seed administrator", zap.Error(err))
		}
		log.Warn("no administrator exists and ADMIN_EMAIL/ADMIN_PASSWORD are not set")
	}

	// Market data: quote adapters plus the news/splits scraper
	quotes := marketdata.NewClient(cfg.Market)
	scrape := scraper.New(cfg.Scraper)
	marketService := service.NewMarketService(rdb, service.MarketSources{
		Indices: quotes,
		Sectors: quotes,
		Movers:  quotes,
		News:    scrape,
		Splits:  scrape,
	}, cfg.Market.CacheTTL)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	accountHandler := handler.NewAccountHandler(accountService)
	recordHandler := handler.NewTradeRecordHandler(recordService)
	performanceHandler := handler.NewPerformanceHandler(performanceService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	holidayHandler := handler.NewHolidayHandler(holidayService)
	siteHandler := handler.NewSiteHandler(siteService)
	marketHandler := handler.NewMarketHandler(marketService)
	marketStream := handler.NewMarketStream(marketService, rdb)

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// Add request logging middleware
	router.Use(middleware.RequestLoggerMiddleware())

	// Add CORS middleware
	router.Use(corsMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"version":        Version,
			"commit":         Commit,
			"build_time":     BuildTime,
			"time":           time.Now().Unix(),
			"stream_clients": marketStream.ClientCount(),
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		authMiddleware := middleware.AuthMiddleware(authService)

		// Auth routes (login/refresh public)
		authHandler.RegisterRoutes(v1, authMiddleware)

		// Public site and market data
		siteHandler.RegisterRoutes(v1, authMiddleware)
		marketHandler.RegisterRoutes(v1)

		// Protected routes
		adminHandler.RegisterRoutes(v1, authMiddleware)
		accountHandler.RegisterRoutes(v1, authMiddleware)
		recordHandler.RegisterRoutes(v1, authMiddleware)
		performanceHandler.RegisterRoutes(v1, authMiddleware)
		attendanceHandler.RegisterRoutes(v1, authMiddleware)
		holidayHandler.RegisterRoutes(v1, authMiddleware)
	}
	marketStream.RegisterRoutes(router)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background market refresh: quotes on a ticker, scraped sections on a schedule
	refreshWorker := worker.NewMarketRefreshWorker(marketService, service.QuoteSections(), cfg.Market.RefreshInterval, cfg.Market.Timeout)
	go refreshWorker.Start()

	cron := cronrunner.New(log.Named("cron"), ctx)
	if _, err := cron.Add("scrape", cfg.Scraper.Schedule, func(ctx context.Context) {
		marketService.RefreshSections(ctx, service.ScrapedSections()...)
	}); err != nil {
		log.Fatal("invalid scraper schedule", zap.String("schedule", cfg.Scraper.Schedule), zap.Error(err))
	}
	cron.Start()

	go marketStream.Run(ctx)

	// Start server in goroutine
	go func() {
		log.Info("starting server", zap.String("addr", addr), zap.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	refreshWorker.Stop()
	cron.Stop()
	cancel()

	// Graceful shutdown with 10 second timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	// Close Redis connection
	if err := rdb.Close(); err != nil {
		log.Warn("error closing redis connection", zap.Error(err))
	}

	log.Info("server exited properly")
}

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.Mode == "release" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.TradingAccount{},
		&models.TradeRecord{},
		&models.Holiday{},
		&models.Attendance{},
		&models.LeaveRequest{},
		&models.ContactMessage{},
		&models.Testimonial{},
		&models.JobPosting{},
	)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
