package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/HarshMaht02004/wacc-backend/internal/api"
	"github.com/HarshMaht02004/wacc-backend/internal/api/handlers"
	"github.com/HarshMaht02004/wacc-backend/pkg/config"
	"github.com/HarshMaht02004/wacc-backend/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the calculation API server",
	Long: `Start the REST API server the calculator frontend talks to.

Endpoints:
  GET  /health            - Health check
  POST /api/v1/wacc       - Compute WACC from an input record
  GET  /api/v1/wacc/live  - WebSocket recompute stream

Example:
  go run ./cmd/waccd api
  go run ./cmd/waccd api --port 8086`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Create handler, router and server
	calcHandler := handlers.NewCalcHandler(cfg, log)
	router := api.NewRouter(calcHandler, cfg, log)
	server := api.New(cfg, log, router)

	// 4. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
