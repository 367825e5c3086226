package awards

import (
	"github.com/bwmarrin/discordgo"

	"nakamoto/service"
)

// Feature handles the awards nomination commands.
// The category vocabulary is loaded once at startup and cached here; it is
// immutable for the process lifetime.
type Feature struct {
	nominationService service.NominationService
	categories        []string
}

func New(nominationService service.NominationService, categories []string) *Feature {
	return &Feature{
		nominationService: nominationService,
		categories:        categories,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "nominate":
		f.handleNominate(s, i)
	case "nominations":
		f.handleList(s, i)
	}
}
