package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nexisdev/mcp-cryptowallet-evm/internal/audit"
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/auth"
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/config"
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/provider/thirdweb"
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/server"
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/status"
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/telemetry"
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/wallet"
)

const serviceName = "wallet-gateway"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize OpenTelemetry
	shutdownTracer, err := telemetry.InitTracer(serviceName, logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// A broken key set is a hard configuration error, not a per-request one.
	keys, err := auth.NewStore(cfg.Auth.APIKeys)
	if err != nil {
		log.Fatalf("Failed to load API key set: %v", err)
	}

	// One outbound client shared by all components, with the configured
	// per-call timeout. Idle connections are released on shutdown.
	httpClient := &http.Client{Timeout: cfg.StatusTimeout()}
	defer httpClient.CloseIdleConnections()

	statusClient := status.NewClient(cfg.Status.BaseURL, cfg.Status.APIKey,
		status.WithHTTPClient(httpClient))
	executor := thirdweb.NewExecutor(thirdweb.NewClient(
		cfg.Provider.ClientID, cfg.Provider.SecretKey,
		thirdweb.WithBaseURL(cfg.Provider.BaseURL),
		thirdweb.WithHTTPClient(httpClient),
	))

	var trail *audit.Store
	if cfg.Audit.DBPath != "" {
		trail, err = audit.NewStore(cfg.Audit.DBPath)
		if err != nil {
			log.Fatalf("Failed to open audit store: %v", err)
		}
		defer trail.Close()
	}

	statusHandler := status.NewHandler(statusClient, time.Now())
	walletHandler := wallet.NewHandler(keys, executor, trail)

	srv := server.New(cfg.Server.Port, 30*time.Second, logger)
	srv.Router.Get("/health", statusHandler.HandleHealth)
	srv.Router.Get("/status", statusHandler.HandleStatus)
	srv.Router.Get("/status/dependencies", statusHandler.HandleDependencies)
	srv.Router.Get("/uptime", statusHandler.HandleUptime)
	srv.Router.Post("/wallets/intents", walletHandler.HandleExecuteIntent)

	logger.Info("starting wallet gateway",
		slog.String("version", cfg.Server.Version),
		slog.Int("port", cfg.Server.Port),
		slog.Int("api_keys", keys.Len()),
		slog.Bool("audit", trail != nil),
	)

	// Best-effort warmup of the upstream status cache: logged on failure,
	// never blocks startup.
	if cfg.Status.Warmup {
		warmupCtx, cancel := context.WithTimeout(context.Background(), cfg.StatusTimeout())
		if _, err := statusClient.Snapshot(warmupCtx, true); err != nil {
			logger.Warn("status warmup failed", slog.String("error", err.Error()))
		}
		cancel()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case sig := <-sigChan:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("gateway shutdown complete")
}
