package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/app/setup"
	"github.com/LavaJover/shvark-payment-service/internal/config"
	"github.com/LavaJover/shvark-payment-service/internal/delivery/grpcapi"
	"github.com/LavaJover/shvark-payment-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env, using system environment")
	}
	// Reading config
	cfg := config.MustLoad()

	_, logCloser, err := logger.Setup(cfg.LogConfig)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init database, repositories, publisher
	deps, err := setup.InitializeDependencies(cfg)
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			slog.Error("failed to close dependencies", "error", err.Error())
		}
	}()

	useCases, err := setup.InitializeUseCases(deps)
	if err != nil {
		log.Fatalf("failed to init usecases: %v", err)
	}

	webhookHandler := handlers.NewWebhookHandler(useCases.WebhookUsecase, cfg.Webhook.ProcessingTimeout)
	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:      handlers.NewRouter(webhookHandler, nil),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	// Optional grpc health endpoint
	var healthServer *grpcapi.HealthServer
	if cfg.GRPCServer.Port != "" {
		lis, err := net.Listen("tcp", net.JoinHostPort(cfg.GRPCServer.Host, cfg.GRPCServer.Port))
		if err != nil {
			log.Fatalf("failed to listen: %v", err)
		}
		healthServer = grpcapi.NewHealthServer()

		sqlDB, err := deps.DB.DB()
		if err != nil {
			log.Fatalf("failed to get sql.DB: %v", err)
		}
		go healthServer.MonitorDependency(ctx, "postgres", sqlDB.PingContext, 15*time.Second)

		go func() {
			slog.Info("gRPC health server started", "addr", lis.Addr().String())
			if err := healthServer.Serve(lis); err != nil {
				slog.Error("gRPC health server stopped", "error", err.Error())
			}
		}()
	}

	go func() {
		slog.Info("HTTP server started", "addr", httpServer.Addr, "env", cfg.Env)
		slog.Info("register the processor webhook", "path", "[YOUR_DOMAIN]"+handlers.WebhookPath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err.Error())
	}
	if healthServer != nil {
		healthServer.Shutdown()
	}
}
