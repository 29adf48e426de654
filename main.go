package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/audit"
	"github.com/ohmypoop/backend/internal/config"
	"github.com/ohmypoop/backend/internal/export"
	"github.com/ohmypoop/backend/internal/handler"
	"github.com/ohmypoop/backend/internal/middleware"
	"github.com/ohmypoop/backend/internal/pdf"
	"github.com/ohmypoop/backend/internal/repository"
	"github.com/ohmypoop/backend/internal/service"
)

var (
	logger *zap.Logger
	pool   *pgxpool.Pool
	cfg    *config.Config
)

func main() {
	// Load configuration
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize database connection pool with pgx
	pool, err = pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Test database connection
	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Successfully connected to database")

	// Initialize repositories
	recordRepo := repository.NewRecordRepository(pool, logger)
	articleRepo := repository.NewArticleRepository(pool, logger)

	// Initialize audit trail
	auditLogger := audit.NewLogger(pool, logger)

	// Initialize renderers
	pdfGenerator := pdf.NewGenerator(logger)
	excelExporter := export.NewExcelExporter(logger)

	// Initialize services
	recordService := service.NewRecordService(recordRepo, auditLogger, logger)
	statisticsService := service.NewStatisticsService(recordRepo, logger)
	articleService := service.NewArticleService(articleRepo, cfg.Articles.CacheTTL, logger)
	reportService := service.NewReportService(recordRepo, pdfGenerator, excelExporter, logger)
	privacyService := service.NewPrivacyService(recordRepo, auditLogger, logger)

	// Initialize handlers
	recordHandler := handler.NewRecordHandler(recordService, logger)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService, logger)
	articleHandler := handler.NewArticleHandler(articleService, cfg.Articles.DefaultPageSize, cfg.Articles.MaxPageSize, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)
	privacyHandler := handler.NewPrivacyHandler(privacyService, logger)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add request ID middleware
	r.Use(middleware.RequestIDMiddleware())

	// Add request logging middleware
	r.Use(middleware.RequestLoggingMiddleware(logger))

	// Add error logging middleware
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	// Register API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/records", recordHandler.CreateRecord)
		v1.GET("/records", recordHandler.ListRecords)
		v1.DELETE("/records/:id", recordHandler.DeleteRecord)

		v1.GET("/statistics/summary", statisticsHandler.GetSummary)
		v1.GET("/calendar/:year/:month", statisticsHandler.GetCalendar)

		v1.GET("/articles", articleHandler.ListArticles)

		v1.GET("/reports/pdf", reportHandler.DownloadPDF)
		v1.GET("/reports/xlsx", reportHandler.DownloadXLSX)

		v1.GET("/privacy/export", privacyHandler.ExportData)
		v1.DELETE("/privacy/data", privacyHandler.PurgeData)
	}

	r.GET("/health", healthCheck)

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close database connections
	pool.Close()

	logger.Info("Server exited")
}

// healthCheck reports service and database health
func healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
