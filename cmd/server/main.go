package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpadapter "github.com/kirillkom/exam-verifier/internal/adapters/mcp"
	"github.com/kirillkom/exam-verifier/internal/bootstrap"
	"github.com/kirillkom/exam-verifier/internal/config"
	"github.com/kirillkom/exam-verifier/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("exam-verifier", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	srv := mcpadapter.NewServer(app.VerifyUC, logger, app.Metrics, "exam-verifier")

	metricsServer := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: app.Metrics.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()

	switch cfg.Transport {
	case "http":
		httpServer := srv.HTTPServer()
		go func() {
			logger.Info("mcp http transport listening", "port", cfg.HTTPPort, "backend", cfg.BackendMode, "schema", string(app.Variant))
			if err := httpServer.Start(":" + cfg.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("mcp http server error: %v", err)
			}
		}()

		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("mcp http shutdown error", "error", err)
		}
		_ = metricsServer.Shutdown(shutdownCtx)
	default:
		logger.Info("mcp stdio transport serving", "backend", cfg.BackendMode, "schema", string(app.Variant))
		if err := srv.ServeStdio(); err != nil {
			log.Fatalf("mcp stdio server error: %v", err)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}
}
