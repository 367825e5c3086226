package testutil

import (
	"nakamoto/models"
)

// CreateTestNomination creates a test nomination with default values
func CreateTestNomination(guildID, messageID, authorID int64) *models.Nomination {
	return &models.Nomination{
		GuildID:   guildID,
		ChannelID: guildID + 1,
		MessageID: messageID,
		AuthorID:  authorID,
		Category:  "Funniest Message",
		Message:   "a message worth remembering",
	}
}

// CreateTestNominationWithCategory creates a test nomination in a specific category
func CreateTestNominationWithCategory(guildID, messageID, authorID int64, category string) *models.Nomination {
	nomination := CreateTestNomination(guildID, messageID, authorID)
	nomination.Category = category
	return nomination
}
