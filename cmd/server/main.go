// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sanctra-backend/internal/config"
	"sanctra-backend/internal/database"
	"sanctra-backend/internal/generation"
	"sanctra-backend/internal/handlers"
	"sanctra-backend/internal/repository"
	"sanctra-backend/internal/routes"
	"sanctra-backend/internal/services"
	"sanctra-backend/internal/storage"
)

func initLogger(env string) *zap.Logger {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

func main() {
	logger := initLogger(os.Getenv("ENV"))
	defer logger.Sync()

	zap.ReplaceGlobals(logger)

	logger.Info("Starting sanctra backend")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port))

	db, err := database.NewMongoDB(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			logger.Error("Error closing database connection", zap.Error(err))
		}
	}()

	logger.Info("Successfully connected to MongoDB")

	rdb, err := database.NewRedis(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	logger.Info("Successfully connected to redis", zap.String("addr", cfg.Redis.Addr))

	store, err := storage.New(cfg.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db.GetCollection("profiles"))
	ledgerRepo := repository.NewLedgerRepository(
		db.GetCollection("daily_cty_claims"),
		db.GetCollection("daily_generation_counts"),
	)
	postRepo := repository.NewPostRepository(db.GetCollection("posts"))
	messageRepo := repository.NewMessageRepository(db.GetCollection("messages"))

	logger.Info("All repositories initialized successfully")

	// Provider chains, best quality first. Position in the chain decides
	// the quality label on the response.
	chains := map[generation.Kind]*generation.Chain{
		generation.KindImage: generation.NewChain(generation.KindImage, logger,
			generation.NewFalImage(cfg.Providers.FalKey),
			generation.NewGemini(cfg.Providers.GeminiKey),
			generation.NewPollinations(),
		),
		generation.KindSound: generation.NewChain(generation.KindSound, logger,
			generation.NewFalSound(cfg.Providers.FalKey),
			generation.NewElevenLabs(cfg.Providers.ElevenLabsKey),
		),
		generation.KindLiving: generation.NewChain(generation.KindLiving, logger,
			generation.NewFalVideo(cfg.Providers.FalKey),
			generation.NewReplicate(cfg.Providers.ReplicateKey),
		),
	}

	costs := map[generation.Kind]int{
		generation.KindImage:  cfg.Economy.ImageCost,
		generation.KindSound:  cfg.Economy.SoundCost,
		generation.KindLiving: cfg.Economy.LivingCost,
	}

	// Initialize services
	profileService := services.NewProfileService(profileRepo, ledgerRepo,
		cfg.Economy.StartingBalance, cfg.Economy.DailyClaim, logger)
	generationService := services.NewGenerationService(chains, profileRepo, ledgerRepo,
		store, costs, cfg.Economy.DailyGenLimit, logger)
	postService := services.NewPostService(postRepo, profileService, logger)
	messageService := services.NewMessageService(messageRepo, profileRepo, logger)
	gardenService := services.NewGardenService(rdb, logger)

	logger.Info("All services initialized successfully")

	// Initialize handlers
	h := &routes.Handlers{
		Health:   handlers.NewHealthHandler(),
		Generate: handlers.NewGenerateHandler(generationService),
		Profile:  handlers.NewProfileHandler(profileService),
		CTY:      handlers.NewCTYHandler(profileService),
		Posts:    handlers.NewPostsHandler(postService),
		Messages: handlers.NewMessagesHandler(messageService),
		Garden:   handlers.NewGardenHandler(gardenService),
	}

	router := routes.SetupRoutes(h)

	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// Living image generation can poll the provider for minutes.
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("address", serverAddr),
			zap.Duration("read_timeout", 30*time.Second),
			zap.Duration("write_timeout", 300*time.Second),
			zap.Duration("idle_timeout", 60*time.Second))

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Received shutdown signal, shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
