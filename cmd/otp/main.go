package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/tuitionpay/internal/pkg/config"
	"github.com/piresc/tuitionpay/internal/pkg/database"
	"github.com/piresc/tuitionpay/internal/pkg/health"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/metrics"
	"github.com/piresc/tuitionpay/internal/pkg/middleware"
	"github.com/piresc/tuitionpay/internal/pkg/nats"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
	"github.com/piresc/tuitionpay/internal/pkg/rpc"
	"github.com/piresc/tuitionpay/internal/pkg/server"
	"github.com/piresc/tuitionpay/services/otp/gateway"
	"github.com/piresc/tuitionpay/services/otp/handler"
	"github.com/piresc/tuitionpay/services/otp/repository"
	"github.com/piresc/tuitionpay/services/otp/usecase"
)

func main() {
	appName := "otp-service"
	configPath := "config/otp.env"
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

	// OTP records live in Redis only
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	shutdownManager.Register("redis", func(context.Context) error { return redisClient.Close() })

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

	otpRepo := repository.NewOTPRepo(redisClient, configs.OTP.TTL)
	otpGW := gateway.NewOTPGW(natsClient)
	otpUC := usecase.NewOTPUC(configs, otpRepo, otpGW)

	// Replicas share the otp.* subjects through the queue group
	rpcServer := rpc.NewServer(natsClient.GetConn(), configs.NATS.QueueGroup, nrApp)
	shutdownManager.Register("rpc-server", func(context.Context) error { return rpcServer.Shutdown() })

	otpHandler := handler.NewHandler(otpUC, natsClient, rpcServer, nrApp)
	if err := otpHandler.Start(ctx); err != nil {
		zapLogger.Fatal("Failed to start OTP handlers", logger.Err(err))
	}
	shutdownManager.Register("consumers", func(context.Context) error {
		otpHandler.Stop()
		return nil
	})

	// The HTTP surface only serves health checks and metrics
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(metrics.EchoMiddleware(appName))

	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)
	e.GET("/metrics", metrics.Handler())

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port, time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("HTTP server stopped with error", logger.Err(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := shutdownManager.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Shutdown finished with errors", logger.Err(err))
	}

	if nrApp != nil {
		zapLogger.Info("Shutting down New Relic...")
		nrApp.Shutdown(10 * time.Second)
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
