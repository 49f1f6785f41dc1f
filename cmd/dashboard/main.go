package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"celebrity-trends/internal/dashboard/config"
	delivery "celebrity-trends/internal/dashboard/delivery/http"
	"celebrity-trends/internal/dashboard/repository"
	"celebrity-trends/internal/dashboard/service"
	"celebrity-trends/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the analysis dashboard",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting dashboard", zap.String("name", cfg.App.Name))

	dataset := repository.NewDatasetRepository(cfg, appLogger)
	trends := repository.NewTrendsRepository(cfg, appLogger)
	analytics := service.NewAnalytics(cfg, appLogger, dataset, trends)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	handler := delivery.NewDashboardHandler(analytics, appLogger)
	handler.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	appLogger.Info("Dashboard started", zap.Int("port", cfg.API.Port))

	<-ctx.Done()

	appLogger.Info("Shutting down dashboard...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Failed to shut down HTTP server", zap.Error(err))
	}
	appLogger.Info("Dashboard stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "dashboard"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/dashboard.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing dashboard CLI: %s\n", err)
		os.Exit(1)
	}
}
