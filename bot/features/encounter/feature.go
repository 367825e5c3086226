package encounter

import (
	"github.com/bwmarrin/discordgo"

	"nakamoto/initiative"
)

// Feature handles the initiative tracker commands.
// The tracker is injected so tests and the bot share the same owned instance.
type Feature struct {
	tracker *initiative.Tracker
}

func New(tracker *initiative.Tracker) *Feature {
	return &Feature{
		tracker: tracker,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "start":
		f.handleStart(s, i)
	case "roll":
		f.handleRoll(s, i, options[0].Options)
	case "npc":
		f.handleNPCRoll(s, i, options[0].Options)
	case "order":
		f.handleOrder(s, i)
	}
}
