package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/midnight/internal/common/clock"
	"github.com/KirkDiggler/midnight/internal/common/uuid"
	"github.com/KirkDiggler/midnight/internal/config"
	"github.com/KirkDiggler/midnight/internal/dice"
	"github.com/KirkDiggler/midnight/internal/handlers/rest"
	"github.com/KirkDiggler/midnight/internal/handlers/ws"
	campaignRepo "github.com/KirkDiggler/midnight/internal/repositories/campaign"
	characterRepo "github.com/KirkDiggler/midnight/internal/repositories/character"
	"github.com/KirkDiggler/midnight/internal/services/campaign"
	"github.com/KirkDiggler/midnight/internal/services/initiative"
	"github.com/KirkDiggler/midnight/internal/services/roll"
	"github.com/KirkDiggler/midnight/internal/services/room"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.LoadServer(nil)
	if err != nil {
		return err
	}

	logger := config.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	// Initialize repositories
	campaigns, err := campaignRepo.NewRedis(&campaignRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create campaign repository: %w", err)
	}

	characters, err := characterRepo.NewRedis(&characterRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create character repository: %w", err)
	}

	// Initialize services
	uuidGenerator := uuid.New()

	campaignSvc, err := campaign.New(&campaign.Config{
		CampaignRepo:  campaigns,
		CharacterRepo: characters,
		Clock:         clock.New(),
		UUIDGenerator: uuidGenerator,
	})
	if err != nil {
		return fmt.Errorf("failed to create campaign service: %w", err)
	}

	initiativeSvc, err := initiative.New(&initiative.Config{
		CampaignService: campaignSvc,
		UUIDGenerator:   uuidGenerator,
	})
	if err != nil {
		return fmt.Errorf("failed to create initiative service: %w", err)
	}

	rollSvc, err := roll.New(&roll.Config{
		MaxDice:       cfg.MaxDice,
		DiceRoller:    dice.New(&dice.Config{}),
		Clock:         clock.New(),
		UUIDGenerator: uuidGenerator,
	})
	if err != nil {
		return fmt.Errorf("failed to create roll service: %w", err)
	}

	broadcaster, err := room.New(&room.Config{
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create room broadcaster: %w", err)
	}

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	broadcasterDone := make(chan error, 1)
	go func() {
		broadcasterDone <- broadcaster.Run(runCtx)
	}()

	// Initialize handlers
	socketHandler, err := ws.New(&ws.Config{
		Broadcaster:     broadcaster,
		CampaignService: campaignSvc,
		UUIDGenerator:   uuidGenerator,
		EnforceGM:       cfg.EnforceGM,
		SendBuffer:      cfg.SendBuffer,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create websocket handler: %w", err)
	}

	restHandler, err := rest.New(&rest.Config{
		CampaignService:   campaignSvc,
		InitiativeService: initiativeSvc,
		RollService:       rollSvc,
		Broadcaster:       broadcaster,
		WebSocket:         socketHandler,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create rest handler: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           restHandler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "enforce_gm", cfg.EnforceGM)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Shutdown does not wait for hijacked websockets; stopping the broadcaster
	// makes their remaining room operations fail fast
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	cancelRun()
	if err := <-broadcasterDone; err != nil {
		logger.Warn("broadcaster stopped", "error", err)
	}

	logger.Info("server has been shut down")
	return nil
}
