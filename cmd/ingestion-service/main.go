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

	"github.com/0xquinto/parlay-picker/internal/ingestion/config"
	delivery "github.com/0xquinto/parlay-picker/internal/ingestion/delivery/http"
	"github.com/0xquinto/parlay-picker/internal/ingestion/repository"
	"github.com/0xquinto/parlay-picker/internal/ingestion/service"
	"github.com/0xquinto/parlay-picker/pkg/logger"
	"github.com/0xquinto/parlay-picker/pkg/postgres"
	"github.com/0xquinto/parlay-picker/pkg/sheets"
	"github.com/0xquinto/parlay-picker/pkg/telegram"
	"github.com/0xquinto/parlay-picker/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the ingestion service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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

	appLogger.Info("Starting Ingestion Service", logger.StringField("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize repositories
	sourceRepo := repository.NewSourceRepository(db.DB)
	gameRepo := repository.NewGameRepository(db.DB)
	articleRepo := repository.NewRawArticleRepository(db.DB)
	predictionRepo := repository.NewPredictionRepository(db.DB)
	consensusRepo := repository.NewConsensusScoreRepository(db.DB)
	runRepo := repository.NewIngestionRunRepository(db.DB)
	scoreboardRepo := repository.NewScoreboardRepository(cfg, appLogger)
	discoveryRepo := repository.NewDiscoveryRepository(cfg, appLogger)

	// Initialize AI provider
	var extractionRepo repository.ExtractionRepository
	switch cfg.AI.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		extractionRepo = repository.NewGeminiRepository(cfg, appLogger, genAiClient)
	case "openrouter":
		extractionRepo = repository.NewOpenRouterRepository(cfg, appLogger)
	default:
		appLogger.Fatal("Invalid AI provider specified in config", logger.StringField("provider", cfg.AI.Provider))
	}

	// Initialize optional integrations
	var sheetsWriter sheets.Writer
	if cfg.Sheets.Enabled {
		sheetsWriter, err = sheets.NewClient(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Sheets client", logger.ErrorField(err))
		}
	}

	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	scheduleSvc := service.NewScheduleService(scoreboardRepo, gameRepo, appLogger)
	fetcherSvc := service.NewArticleFetcherService(cfg, articleRepo, appLogger)
	matcher := service.NewMatcher()
	consensusSvc := service.NewConsensusService(predictionRepo, consensusRepo, appLogger)

	var publishSvc service.PublishService
	if sheetsWriter != nil {
		publishSvc = service.NewPublishService(consensusRepo, gameRepo, sheetsWriter, appLogger)
	}

	ingestionSvc := service.NewIngestionService(
		scheduleSvc,
		sourceRepo,
		discoveryRepo,
		fetcherSvc,
		extractionRepo,
		matcher,
		predictionRepo,
		articleRepo,
		consensusSvc,
		publishSvc,
		runRepo,
		notifier,
		appLogger,
	)

	// Schedule recurring runs
	scheduler := cron.New()
	if cfg.Ingestion.CronSchedule != "" {
		_, err := scheduler.AddFunc(cfg.Ingestion.CronSchedule, func() {
			now := time.Now()
			season := utils.CurrentSeason(now)
			week := utils.CurrentWeek(now)

			runCtx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()
			if err := ingestionSvc.Run(runCtx, season, week); err != nil {
				appLogger.Warn("Scheduled run not started", logger.ErrorField(err))
			}
		})
		if err != nil {
			appLogger.Fatal("Invalid cron schedule", logger.ErrorField(err))
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	healthHandler := delivery.NewHealthHandler(db.DB)
	healthHandler.RegisterRoutes(e)

	apiV1 := e.Group("/api/v1")

	runHandler := delivery.NewRunHandler(ingestionSvc, runRepo, appLogger)
	runHandler.RegisterRoutes(apiV1)

	sourceHandler := delivery.NewSourceHandler(sourceRepo, appLogger)
	sourcesGroup := apiV1.Group("/sources")
	sourceHandler.RegisterRoutes(sourcesGroup)

	predictionHandler := delivery.NewPredictionHandler(predictionRepo, consensusRepo, appLogger)
	predictionHandler.RegisterRoutes(apiV1)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.StringField("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "ingestion-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing ingestion-service CLI: %s\n", err)
		os.Exit(1)
	}
}
