package favors

import (
	"github.com/bwmarrin/discordgo"

	"nakamoto/service"
)

// Feature handles the wallet and favor transaction commands
type Feature struct {
	ledgerService    service.LedgerService
	stewardDiscordID int64
}

func New(ledgerService service.LedgerService, stewardDiscordID int64) *Feature {
	return &Feature{
		ledgerService:    ledgerService,
		stewardDiscordID: stewardDiscordID,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "wallet":
		f.handleWallet(s, i)
	case "send":
		f.handleSend(s, i)
	case "confirm":
		f.handleResolve(s, i, true)
	case "cancel":
		f.handleResolve(s, i, false)
	case "grant":
		f.handleGrant(s, i)
	}
}
