package encounter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"nakamoto/bot/common"
)

func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.tracker.Clear()
	common.RespondWithContent(s, i, "New encounter started. Old rolls have been scrapped.")
}

func (f *Feature) handleRoll(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	var result int64
	for _, opt := range options {
		if opt.Name == "result" {
			result = opt.IntValue()
		}
	}

	// Keyed by Discord ID; the display name is resolved when the order is shown
	f.tracker.SetRoll(i.Member.User.ID, int(result))
	common.RespondWithContent(s, i, fmt.Sprintf("Roll of %d added.", result))
}

func (f *Feature) handleNPCRoll(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	var result int64
	var name string
	for _, opt := range options {
		switch opt.Name {
		case "result":
			result = opt.IntValue()
		case "name":
			name = opt.StringValue()
		}
	}

	if name == "" {
		common.RespondWithError(s, i, "The NPC needs a name.")
		return
	}

	f.tracker.SetRoll(name, int(result))
	common.RespondWithContent(s, i, fmt.Sprintf("Roll of %d added for %s.", result, name))
}

func (f *Feature) handleOrder(s *discordgo.Session, i *discordgo.InteractionCreate) {
	entries := f.tracker.Order()
	if len(entries) == 0 {
		common.RespondWithContent(s, i, "No rolls have been submitted yet.")
		return
	}

	var msg strings.Builder
	msg.WriteString("Initiative order:")
	for idx, entry := range entries {
		fmt.Fprintf(&msg, "\n%d. %s (%d)", idx+1, f.displayLabel(s, i.GuildID, entry.Key), entry.Value)
	}

	common.RespondWithContent(s, i, msg.String())
}

// displayLabel resolves snowflake keys to a current display name; NPC names
// pass through verbatim. Resolution happens here, at render time, so the
// label tracks nickname changes made after the roll was submitted.
func (f *Feature) displayLabel(s *discordgo.Session, guildID, key string) string {
	if _, err := strconv.ParseInt(key, 10, 64); err != nil {
		return key
	}
	return common.GetDisplayName(s, guildID, key)
}
