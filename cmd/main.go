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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"site_ai_server/api"
	"site_ai_server/config"
	"site_ai_server/internal/ai"
	internalapi "site_ai_server/internal/api"
	"site_ai_server/internal/gemini"
)

func main() {
	// Load .env before viper so env-backed config keys are visible.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	appEnv := os.Getenv("APP_ENV")
	var logger *zap.Logger
	if appEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger, err = zap.NewProduction()
	} else {
		gin.SetMode(gin.DebugMode)
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Cannot create logger: %v", err)
	}
	defer logger.Sync()

	client := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, logger)

	var candidates []ai.ModelCandidate
	for _, model := range cfg.Models() {
		candidates = append(candidates, ai.ModelCandidate{
			Model:      model,
			MaxRetries: cfg.ModelMaxRetries,
			BaseDelay:  cfg.BackoffBase(),
		})
	}
	if len(candidates) == 0 {
		log.Fatal("GEMINI_MODELS resolved to an empty candidate list")
	}

	generator := ai.NewGenerator(client, candidates, logger)
	apiHandler := internalapi.NewAPIHandler(generator, logger)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	api.RegisterRoutes(router, apiHandler)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Generation calls are slow; keep the write timeout generous.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting API server", zap.String("addr", cfg.ServerAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("application exiting")
}
