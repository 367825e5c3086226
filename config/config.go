package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string // test guild scope; empty registers commands globally

	// Database configuration
	DatabaseURL string

	// Bot configuration
	StartingFavors     int64  // favors a wallet is created with
	ComplaintChannelID string // channel where new nominations are announced
	StewardDiscordID   int64  // the single user allowed to run /grant

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from a .env file (if present) and the environment
func load() (*Config, error) {
	// Missing .env is fine; variables may come from the real environment
	_ = godotenv.Load()

	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Bot settings with defaults
		StartingFavors:     5,
		ComplaintChannelID: os.Getenv("COMPLAINT_CHANNEL_ID"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if favors := os.Getenv("STARTING_FAVORS"); favors != "" {
		if parsedFavors, err := strconv.ParseInt(favors, 10, 64); err == nil {
			config.StartingFavors = parsedFavors
		}
	}
	if steward := os.Getenv("STEWARD_DISCORD_ID"); steward != "" {
		if parsedSteward, err := strconv.ParseInt(steward, 10, 64); err == nil {
			config.StewardDiscordID = parsedSteward
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
