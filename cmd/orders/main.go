package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"bookameal/internal/orders/adapters"
	"bookameal/internal/orders/application"
	"bookameal/internal/orders/domain"
	"bookameal/internal/orders/infrastructure"
	"bookameal/internal/orders/ports"
	"bookameal/pkg/clock"
	"bookameal/pkg/config"
	"bookameal/pkg/db"
	"bookameal/pkg/events"
	"bookameal/pkg/logger"
	"bookameal/pkg/middleware"
	"bookameal/pkg/rabbitmq"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	defer log.Sync()

	log.Info("starting orders service")

	// Connect to database
	dbConn, err := db.NewConnection(cfg.DSN(), cfg.DBTimeout)
	if err != nil {
		log.Fatal("failed to connect to database: " + err.Error())
	}
	log.Info("connected to database")

	// Initialize repositories and run migrations
	repo := adapters.NewPostgresOrderRepository(dbConn)
	if err := repo.Migrate(); err != nil {
		log.Fatal("failed to migrate database: " + err.Error())
	}
	catalog := adapters.NewPostgresCatalog(dbConn)
	if err := catalog.Migrate(); err != nil {
		log.Fatal("failed to migrate catalog tables: " + err.Error())
	}

	// Connect to RabbitMQ
	var publisher *adapters.RabbitMQPublisher
	rabbitConn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
	if err != nil {
		log.Warn("failed to connect to RabbitMQ, events will be disabled: " + err.Error())
	} else {
		defer rabbitConn.Close()

		pub, err := rabbitmq.NewPublisher(rabbitConn, events.ExchangeOrders, log)
		if err != nil {
			log.Warn("failed to create publisher: " + err.Error())
		} else {
			publisher = adapters.NewRabbitMQPublisher(pub, log)
		}
	}

	// Initialize use cases
	policy := domain.NewEditPolicy(cfg.EditWindow)
	clk := clock.New()
	useCase := application.NewOrderUseCase(repo, catalog, catalog, eventPublisher(publisher), policy, clk, log)
	reporter := application.NewSalesReporter(repo, clk, log)

	// Start HTTP server
	httpHandler := infrastructure.NewHTTPHandler(useCase, reporter)
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.TraceID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS())

	api := router.Group("/api/v1")
	api.Use(middleware.Authenticate(cfg.JWTSecret))
	httpHandler.RegisterRoutes(api)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
	}

	go func() {
		log.Info("HTTP server listening on :" + cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error: " + err.Error())
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error: " + err.Error())
	}

	log.Info("server stopped")
}

// eventPublisher keeps the use case's publisher nil when RabbitMQ is
// unavailable, instead of a non-nil interface holding a nil pointer.
func eventPublisher(p *adapters.RabbitMQPublisher) ports.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}
