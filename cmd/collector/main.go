package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"celebrity-trends/internal/collector/config"
	"celebrity-trends/internal/collector/repository"
	"celebrity-trends/internal/collector/service"
	"celebrity-trends/pkg/logger"

	"google.golang.org/genai"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrapes the editorial listing and writes the article dataset",
	Run:   runCollect,
}

func runCollect(cmd *cobra.Command, args []string) {
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

	appLogger.Info("Starting collector", zap.String("name", cfg.App.Name))

	genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini client", zap.Error(err))
	}

	recognizer, err := repository.NewGeminiEntityRepository(cfg, appLogger, genAiClient)
	if err != nil {
		appLogger.Fatal("Failed to initialize entity recognizer", zap.Error(err))
	}
	site := repository.NewVogueRepository(cfg, appLogger)

	collector := service.NewCollector(cfg, appLogger, site, recognizer)
	assembler := service.NewAssembler(appLogger)

	collected, err := collector.Collect(ctx, cfg.Source.Pages)
	if err != nil {
		appLogger.Fatal("Collection failed", zap.Error(err))
	}

	articles := assembler.Assemble(collected)
	if err := assembler.WriteCSV(cfg.Output.CSVPath, articles); err != nil {
		appLogger.Fatal("Failed to write CSV dataset", zap.Error(err))
	}
	if err := assembler.WriteJSON(cfg.Output.JSONPath, articles); err != nil {
		appLogger.Fatal("Failed to write JSON dataset", zap.Error(err))
	}

	appLogger.Info("Collection finished",
		zap.Int("articles", len(articles)),
		zap.String("csv", cfg.Output.CSVPath),
		zap.String("json", cfg.Output.JSONPath),
	)
}

func main() {
	rootCmd := &cobra.Command{Use: "collector"}

	runCmd.Flags().StringVarP(&configPath, "config", "c", "configs/collector.yaml", "Path to the configuration file")

	rootCmd.AddCommand(runCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing collector CLI: %s\n", err)
		os.Exit(1)
	}
}
