package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord.
// Registration is guild-scoped when a test guild is configured, which makes
// the commands show up immediately instead of after global propagation.
func (b *Bot) registerCommands(categories []string) error {
	categoryChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(categories))
	for _, category := range categories {
		categoryChoices = append(categoryChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  category,
			Value: category,
		})
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Ping the bot to see if it's alive",
		},
		{
			Name:        "wallet",
			Description: "Check your cryptofavor balance",
		},
		{
			Name:        "send",
			Description: "Propose a favor transaction to another user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Number of favors to send",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to send favors to",
					Required:    true,
				},
			},
		},
		{
			Name:        "confirm",
			Description: "Complete one of your pending transactions",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "id",
					Description: "Transaction ID to confirm",
					Required:    true,
				},
			},
		},
		{
			Name:        "cancel",
			Description: "Call off one of your pending transactions",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "id",
					Description: "Transaction ID to cancel",
					Required:    true,
				},
			},
		},
		{
			Name:        "grant",
			Description: "Adjust a user's favor balance (steward only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User whose balance to adjust",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Favors to add (negative to remove)",
					Required:    true,
				},
			},
		},
		{
			Name:        "nominate",
			Description: "Nominate a message in this channel for an award",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message_id",
					Description: "ID of the message to nominate",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "category",
					Description: "Award category",
					Required:    true,
					Choices:     categoryChoices,
				},
			},
		},
		{
			Name:        "nominations",
			Description: "List award nominations",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Only nominations made by this user",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "category",
					Description: "Only nominations in this category",
					Required:    false,
					Choices:     categoryChoices,
				},
			},
		},
		{
			Name:        "encounter",
			Description: "Track initiative for the current encounter",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start a new encounter, scrapping old rolls",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "roll",
					Description: "Submit your roll for the current encounter",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "result",
							Description: "The number you rolled",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "npc",
					Description: "Submit an NPC's roll for the current encounter",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "The name of the NPC",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "result",
							Description: "The number the NPC rolled",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "order",
					Description: "Display the roll order for the current encounter",
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
