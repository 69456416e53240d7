package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/piresc/tuitionpay/internal/pkg/config"
	"github.com/piresc/tuitionpay/internal/pkg/database"
	"github.com/piresc/tuitionpay/internal/pkg/health"
	"github.com/piresc/tuitionpay/internal/pkg/lock"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/metrics"
	"github.com/piresc/tuitionpay/internal/pkg/middleware"
	"github.com/piresc/tuitionpay/internal/pkg/nats"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
	"github.com/piresc/tuitionpay/internal/pkg/rpc"
	"github.com/piresc/tuitionpay/internal/pkg/server"
	"github.com/piresc/tuitionpay/services/payment/gateway"
	"github.com/piresc/tuitionpay/services/payment/handler"
	"github.com/piresc/tuitionpay/services/payment/repository"
	"github.com/piresc/tuitionpay/services/payment/scheduler"
	"github.com/piresc/tuitionpay/services/payment/usecase"
)

func main() {
	appName := "payment-service"
	configPath := "config/payment.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownManager := server.NewShutdownManager(zapLogger)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	shutdownManager.Register("postgres", func(context.Context) error { return postgresClient.Close() })

	// Initialize Redis client, backing the student locks and the rate limiter
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	shutdownManager.Register("redis", func(context.Context) error { return redisClient.Close() })

	// Initialize JetStream-enabled NATS client
	natsClient, err := nats.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS with JetStream", logger.Err(err))
	}
	shutdownManager.Register("nats", func(context.Context) error {
		natsClient.Close()
		return nil
	})
	if err := natsClient.EnsureStreams(ctx, nats.DefaultStreamConfigs()); err != nil {
		zapLogger.Fatal("Failed to create JetStream streams", logger.Err(err))
	}

	logger.Info("JetStream client initialized successfully",
		logger.String("url", configs.NATS.URL),
		logger.Bool("connected", natsClient.IsConnected()))

	// Collaborator calls go through per-target circuit breakers
	breakers := rpc.NewBreakerManager(configs.RPC.BreakerFailures, configs.RPC.BreakerTimeout, zapLogger)
	rpcClient := rpc.NewClient(natsClient.GetConn(), breakers, configs.RPC.Timeout)

	lockManager := lock.NewManager(redisClient.GetClient(), configs.Lock)

	paymentRepo := repository.NewPaymentRepository(configs, postgresClient.GetDB())
	paymentGW := gateway.NewPaymentGW(rpcClient, natsClient)
	paymentUC := usecase.NewPaymentUC(configs, paymentRepo, paymentGW, lockManager)

	// Initialize handlers and event consumers
	paymentHandler := handler.NewHandler(paymentUC, natsClient, configs, nrApp)
	if err := paymentHandler.Start(ctx); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", logger.Err(err))
	}
	shutdownManager.Register("consumers", func(context.Context) error {
		paymentHandler.Stop()
		return nil
	})

	cleanup := scheduler.NewCleanupScheduler(paymentUC, configs, nrApp)
	if err := cleanup.Start(ctx); err != nil {
		zapLogger.Fatal("Failed to start cleanup scheduler", logger.Err(err))
	}
	shutdownManager.Register("cleanup-scheduler", func(context.Context) error {
		cleanup.Stop()
		return nil
	})

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(metrics.EchoMiddleware(appName))

	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	healthService.SetBreakers(breakers)
	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)
	e.GET("/metrics", metrics.Handler())

	paymentHandler.RegisterRoutes(e, redisClient.GetClient())

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port, time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("HTTP server stopped with error", logger.Err(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := shutdownManager.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Shutdown finished with errors", logger.Err(err))
	}

	// Shutdown New Relic
	if nrApp != nil {
		zapLogger.Info("Shutting down New Relic...")
		nrApp.Shutdown(10 * time.Second)
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
