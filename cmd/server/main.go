package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkowal/todoapi/internal/auth"
	"github.com/mkowal/todoapi/internal/config"
	"github.com/mkowal/todoapi/internal/database"
	"github.com/mkowal/todoapi/internal/handlers"
	"github.com/mkowal/todoapi/internal/repositories"
	"github.com/mkowal/todoapi/internal/services"
)

func main() {
	ctx := context.Background()

	godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	log.Logger = logger

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	// Initialize database connections
	if err := database.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	postgresPool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create postgres pool")
	}
	defer postgresPool.Close()

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create redis client")
	}
	defer redisClient.Close()

	// Wire the core
	accountRepo := repositories.NewPostgresAccountRepository(postgresPool)
	tokenRepo := repositories.NewRedisTokenRepository(redisClient)
	todoRepo := repositories.NewPostgresTodoRepository(postgresPool)

	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	accountService := services.NewAccountService(accountRepo, tokenRepo, codec)
	todoService := services.NewTodoService(todoRepo)

	router := handlers.NewRouter(logger, accountService, todoService)

	// Start Server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	// graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info().Msg("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	logger.Info().Str("port", cfg.ServerPort).Msg("Starting server")
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("Server error")
	}

	logger.Info().Msg("Server stopped gracefully")
}
