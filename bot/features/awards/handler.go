package awards

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"nakamoto/bot/common"
	"nakamoto/models"
)

// listLimit caps how many nominations a single reply renders
const listLimit = 10

func (f *Feature) handleNominate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var messageIDStr, category string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "message_id":
			messageIDStr = opt.StringValue()
		case "category":
			category = opt.StringValue()
		}
	}

	messageID, err := strconv.ParseInt(messageIDStr, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "That doesn't look like a message ID.")
		return
	}

	if !slices.Contains(f.categories, category) {
		common.RespondWithError(s, i, fmt.Sprintf("Unknown category %q.", category))
		return
	}

	authorID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Nominations only work inside a server.")
		return
	}

	channelID, err := strconv.ParseInt(i.ChannelID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing channel ID %s: %v", i.ChannelID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// The nominated message must live in the invoking channel
	message, err := s.ChannelMessage(i.ChannelID, messageIDStr)
	if err != nil {
		log.Errorf("Error fetching message %s in channel %s: %v", messageIDStr, i.ChannelID, err)
		common.RespondWithError(s, i, "Couldn't find that message in this channel.")
		return
	}

	receipt := f.nominationService.AddNomination(ctx, &models.Nomination{
		GuildID:   guildID,
		ChannelID: channelID,
		MessageID: messageID,
		AuthorID:  authorID,
		Category:  category,
		Message:   message.Content,
	})
	if !receipt.OK {
		common.RespondWithError(s, i, "Unable to store the nomination. Please try again.")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Nominated that message for **%s**.", category))
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var filter models.NominationFilter
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			if user := opt.UserValue(s); user != nil {
				if authorID, err := strconv.ParseInt(user.ID, 10, 64); err == nil {
					filter.AuthorID = &authorID
				}
			}
		case "category":
			category := opt.StringValue()
			filter.Category = &category
		}
	}

	nominations, err := f.nominationService.GetNominations(ctx, filter)
	if err != nil {
		log.Errorf("Error querying nominations: %v", err)
		common.RespondWithError(s, i, "Unable to fetch nominations. Please try again.")
		return
	}

	if len(nominations) == 0 {
		common.RespondWithContent(s, i, "No nominations found.")
		return
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "**%d nomination(s):**", len(nominations))
	for idx, nomination := range nominations {
		if idx == listLimit {
			fmt.Fprintf(&msg, "\n…and %d more.", len(nominations)-listLimit)
			break
		}
		fmt.Fprintf(&msg, "\n#%d — **%s** by <@%d>: https://discord.com/channels/%d/%d/%d",
			nomination.ID, nomination.Category, nomination.AuthorID,
			nomination.GuildID, nomination.ChannelID, nomination.MessageID)
	}

	common.RespondWithContent(s, i, msg.String())
}
