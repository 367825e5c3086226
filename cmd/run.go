package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"nakamoto/bot"
	"nakamoto/config"
	"nakamoto/database"
	"nakamoto/events"
	"nakamoto/initiative"
	"nakamoto/repository"
	"nakamoto/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting nakamoto bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Info("Initializing services...")
	ledgerService := service.NewLedgerService(uowFactory, cfg.StartingFavors)
	nominationService := service.NewNominationService(uowFactory)

	// The roll tracker lives for the process; the bot owns the instance
	tracker := initiative.NewTracker()

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:              cfg.DiscordToken,
		GuildID:            cfg.DiscordGuildID,
		ComplaintChannelID: cfg.ComplaintChannelID,
		StewardDiscordID:   cfg.StewardDiscordID,
	}
	discordBot, err := bot.New(botConfig, ledgerService, nominationService, tracker, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	log.Info("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}
