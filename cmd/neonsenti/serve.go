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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/adapter/http/router"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/infrastructure/logger"
)

var warmUp bool

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sentiment HTTP API",
	Long: `Starts the HTTP server exposing:
  POST /api/v1/sentiment        classify one text
  POST /api/v1/sentiment/batch  classify a list of texts
  POST /api/v1/sentiment/csv    classify the text column of an uploaded CSV
  GET  /health, /ready, /metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&warmUp, "warm-up", false, "load the model before accepting requests")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.Server.Mode)

	comps, err := buildComponents(cfg, log, prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to build model backend: %w", err)
	}
	defer comps.Close(log)

	if warmUp {
		if _, err := comps.handle.Acquire(cmd.Context()); err != nil {
			return err
		}
	}

	r := router.Setup(comps.sentiment, comps.redis, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr), zap.String("backend", cfg.Model.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			log.Error("Server failed", zap.Error(err))
			return fmt.Errorf("server failed: %w", err)
		}
	case <-quit:
	}

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
