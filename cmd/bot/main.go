// Package main is the entry point for the Gold Casino Bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gold-casino-bot/internal/bot"
	"gold-casino-bot/internal/casino/slots"
	"gold-casino-bot/internal/config"
	"gold-casino-bot/internal/pkg/db"
	"gold-casino-bot/internal/pkg/lock"
	"gold-casino-bot/internal/repository"
	"gold-casino-bot/internal/service"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	if err := dbPool.HealthCheck(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database is not reachable")
	}
	log.Info().Msg("Successfully connected to PostgreSQL")

	// Run database migrations
	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	goldRepo := repository.NewGoldRepository(dbPool.Pool)
	statsRepo := repository.NewStatsRepository(dbPool.Pool)
	inventoryRepo := repository.NewInventoryRepository(dbPool.Pool)
	submissionRepo := repository.NewSubmissionRepository(dbPool.Pool)

	// Initialize user lock
	userLock := lock.NewUserLock()

	// Initialize services
	economyService := service.NewEconomyService(goldRepo, statsRepo, userLock)
	gachaService := service.NewGachaService(
		goldRepo,
		inventoryRepo,
		userLock,
		cfg.Gacha.RollCost,
		cfg.Gacha.MaxRolls,
		cfg.Gacha.CombineCost,
	)
	submissionService := service.NewSubmissionService(
		submissionRepo,
		goldRepo,
		userLock,
		cfg.Daily.Reward,
	)

	// Create bot dependencies
	deps := &bot.Dependencies{
		Config:            cfg,
		EconomyService:    economyService,
		GachaService:      gachaService,
		SubmissionService: submissionService,
		SlotMachine:       slots.New(),
		UserLock:          userLock,
	}

	// Initialize bot
	casinoBot, err := bot.New(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Msg("Bot is starting...")
		casinoBot.Start()
	}()

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	casinoBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}

// runMigrations executes database migrations.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: Create user_gold table
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS user_gold (
			user_id BIGINT PRIMARY KEY,
			gold BIGINT NOT NULL DEFAULT 0,
			inserted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: user_gold table created")

	// Migration 2: Create casino_spent_earned table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS casino_spent_earned (
			user_id BIGINT PRIMARY KEY,
			total_spent BIGINT NOT NULL DEFAULT 0,
			total_earned BIGINT NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_casino_earned ON casino_spent_earned(total_earned DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: casino_spent_earned table created")

	// Migration 3: Create user_inventory table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS user_inventory (
			user_id BIGINT NOT NULL,
			item_id BIGINT NOT NULL,
			quantity BIGINT NOT NULL DEFAULT 0,
			inserted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, item_id)
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 3: user_inventory table created")

	// Migration 4: Create submissions table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS submissions (
			message_id BIGINT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			inserted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_submissions_user_time ON submissions(user_id, inserted_at DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 4: submissions table created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}
