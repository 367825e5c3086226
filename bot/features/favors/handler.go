package favors

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"nakamoto/bot/common"
	"nakamoto/models"
)

func (f *Feature) handleWallet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if err := f.ledgerService.EnsureUser(ctx, discordID, i.Member.User.Username); err != nil {
		log.Errorf("Error ensuring user %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to retrieve wallet. Please try again.")
		return
	}

	wallet, err := f.ledgerService.GetWallet(ctx, discordID)
	if err != nil {
		log.Errorf("Error getting wallet for user %d: %v", discordID, err)
		common.RespondWithError(s, i, "Unable to retrieve wallet. Please try again.")
		return
	}
	if wallet == nil {
		common.RespondWithError(s, i, "You don't have a wallet yet.")
		return
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "%s, your current balance: **%s cryptofavors**",
		wallet.Nickname, common.FormatFavors(wallet.Favors))

	pending, err := f.ledgerService.GetPendingTransactions(ctx, discordID)
	if err != nil {
		log.Errorf("Error listing pending transactions for user %d: %v", discordID, err)
	} else if len(pending) > 0 {
		msg.WriteString("\nPending transactions:")
		for _, txn := range pending {
			fmt.Fprintf(&msg, "\n• #%d — **%s favors** to <@%d>",
				txn.ID, common.FormatFavors(txn.Amount), txn.ReceiverDiscordID)
		}
	}

	common.RespondWithContent(s, i, msg.String())
}

func (f *Feature) handleSend(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var amount int64
	var receiverUser *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			receiverUser = opt.UserValue(s)
		}
	}

	if receiverUser == nil {
		common.RespondWithError(s, i, "Invalid receiving user.")
		return
	}

	senderID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing sender Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	receiverID, err := strconv.ParseInt(receiverUser.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing receiver Discord ID %s: %v", receiverUser.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// Both parties need a wallet before the transaction exists
	if err := f.ledgerService.EnsureUser(ctx, senderID, i.Member.User.Username); err != nil {
		log.Errorf("Error ensuring sender %d: %v", senderID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	if err := f.ledgerService.EnsureUser(ctx, receiverID, receiverUser.Username); err != nil {
		log.Errorf("Error ensuring receiver %d: %v", receiverID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	transactionID, err := f.ledgerService.CreateTransaction(ctx, senderID, receiverID, amount)
	if err != nil {
		log.Errorf("Error creating transaction of %d favors from %d to %d: %v", amount, senderID, receiverID, err)
		common.RespondWithError(s, i, "Unable to create the transaction. Please try again.")
		return
	}

	receiverName := common.GetDisplayName(s, i.GuildID, receiverUser.ID)
	message := fmt.Sprintf("Transaction **#%d** proposed: **%s favors** to **%s**.\n"+
		"Use `/confirm id:%d` to complete it or `/cancel id:%d` to call it off.",
		transactionID, common.FormatFavors(amount), receiverName, transactionID, transactionID)
	common.RespondWithContent(s, i, message)
}

func (f *Feature) handleResolve(s *discordgo.Session, i *discordgo.InteractionCreate, confirm bool) {
	ctx := context.Background()

	var transactionID int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "id" {
			transactionID = opt.IntValue()
		}
	}

	callerID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var outcome models.ResolveOutcome
	if confirm {
		outcome, err = f.ledgerService.ConfirmTransaction(ctx, transactionID, callerID)
	} else {
		outcome, err = f.ledgerService.CancelTransaction(ctx, transactionID, callerID)
	}
	if err != nil {
		log.Errorf("Error resolving transaction %d for caller %d: %v", transactionID, callerID, err)
		common.RespondWithError(s, i, "Something went wrong resolving the transaction.")
		return
	}

	switch outcome {
	case models.ResolveNotFound:
		common.RespondWithError(s, i, fmt.Sprintf("Transaction #%d was not found.", transactionID))
	case models.ResolveWrongCaller:
		common.RespondWithError(s, i, fmt.Sprintf("Only the sender of transaction #%d can resolve it.", transactionID))
	case models.ResolveNotPending:
		common.RespondWithError(s, i, fmt.Sprintf("Transaction #%d has already been resolved.", transactionID))
	case models.ResolveOK:
		if confirm {
			common.RespondWithSuccess(s, i, fmt.Sprintf("Transaction #%d completed. Favors delivered.", transactionID))
		} else {
			common.RespondWithSuccess(s, i, fmt.Sprintf("Transaction #%d cancelled. Favors returned.", transactionID))
		}
	}
}

func (f *Feature) handleGrant(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	callerID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if callerID != f.stewardDiscordID {
		common.RespondWithError(s, i, "You are not authorized to grant favors.")
		return
	}

	var amount int64
	var targetUser *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			targetUser = opt.UserValue(s)
		}
	}

	if targetUser == nil {
		common.RespondWithError(s, i, "Invalid target user.")
		return
	}

	targetID, err := strconv.ParseInt(targetUser.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing target Discord ID %s: %v", targetUser.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if err := f.ledgerService.EnsureUser(ctx, targetID, targetUser.Username); err != nil {
		log.Errorf("Error ensuring user %d: %v", targetID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	outcome, err := f.ledgerService.AdjustFavors(ctx, targetID, amount)
	if err != nil {
		log.Errorf("Error adjusting favors for user %d by %d: %v", targetID, amount, err)
		common.RespondWithError(s, i, "Unable to adjust favors. Please try again.")
		return
	}
	if outcome != models.AdjustOK {
		common.RespondWithError(s, i, "That user has no wallet.")
		return
	}

	targetName := common.GetDisplayName(s, i.GuildID, targetUser.ID)
	common.RespondWithSuccess(s, i, fmt.Sprintf("Adjusted **%s**'s balance by **%s favors**.",
		targetName, common.FormatFavors(amount)))
}
