package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"nakamoto/bot/common"
	"nakamoto/bot/features/awards"
	"nakamoto/bot/features/encounter"
	"nakamoto/bot/features/favors"
	"nakamoto/events"
	"nakamoto/initiative"
	"nakamoto/service"
)

// Config holds bot configuration
type Config struct {
	Token              string
	GuildID            string // commands register guild-scoped when set
	ComplaintChannelID string
	StewardDiscordID   int64
}

type Bot struct {
	config    Config
	session   *discordgo.Session
	favors    *favors.Feature
	awards    *awards.Feature
	encounter *encounter.Feature
	eventBus  *events.Bus
}

func New(config Config, ledgerService service.LedgerService, nominationService service.NominationService, tracker *initiative.Tracker, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	// Load the category vocabulary once; it backs the nominate command choices
	// for the rest of the process lifetime
	categories, err := nominationService.ListCategories(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error loading award categories: %w", err)
	}

	bot := &Bot{
		config:    config,
		session:   dg,
		favors:    favors.New(ledgerService, config.StewardDiscordID),
		awards:    awards.New(nominationService, categories),
		encounter: encounter.New(tracker),
		eventBus:  eventBus,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(categories); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Announce fresh nominations in the complaint channel
	if bot.config.ComplaintChannelID != "" {
		eventBus.Subscribe(events.EventTypeNominationAdded, bot.announceNomination)
	}

	// Audit trail for resolved transactions
	eventBus.Subscribe(events.EventTypeTransactionResolved, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.TransactionResolvedEvent); ok {
			log.WithFields(log.Fields{
				"transactionID": e.TransactionID,
				"sender":        e.SenderDiscordID,
				"receiver":      e.ReceiverDiscordID,
				"amount":        e.Amount,
				"status":        e.Status,
			}).Info("Transaction resolved")
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "ping":
		b.handlePing(s, i)
	case "wallet", "send", "confirm", "cancel", "grant":
		b.favors.HandleCommand(s, i)
	case "nominate", "nominations":
		b.awards.HandleCommand(s, i)
	case "encounter":
		b.encounter.HandleCommand(s, i)
	}
}

func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	common.RespondWithContent(s, i, "Pong!")
}

func (b *Bot) announceNomination(ctx context.Context, event events.Event) {
	e, ok := event.(events.NominationAddedEvent)
	if !ok {
		return
	}

	message := fmt.Sprintf("📣 New **%s** nomination from <@%d>: https://discord.com/channels/%d/%d/%d",
		e.Category, e.AuthorID, e.GuildID, e.ChannelID, e.MessageID)
	if _, err := b.session.ChannelMessageSend(b.config.ComplaintChannelID, message); err != nil {
		log.Errorf("Error announcing nomination %d: %v", e.NominationID, err)
	}
}
