package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"celebrity-trends/internal/enricher/config"
	"celebrity-trends/internal/enricher/repository"
	"celebrity-trends/internal/enricher/service"
	"celebrity-trends/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scores the article dataset against the sentiment API",
	Run:   runEnrich,
}

func runEnrich(cmd *cobra.Command, args []string) {
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

	appLogger.Info("Starting enricher", zap.String("name", cfg.App.Name))

	classifier := repository.NewSentimentRepository(cfg, appLogger)
	enricher := service.NewEnricher(cfg, appLogger, classifier)

	if err := enricher.Run(ctx); err != nil {
		appLogger.Fatal("Enrichment failed", zap.Error(err))
	}

	appLogger.Info("Enrichment finished", zap.String("output", cfg.Data.OutputPath))
}

func main() {
	rootCmd := &cobra.Command{Use: "enricher"}

	runCmd.Flags().StringVarP(&configPath, "config", "c", "configs/enricher.yaml", "Path to the configuration file")

	rootCmd.AddCommand(runCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing enricher CLI: %s\n", err)
		os.Exit(1)
	}
}
