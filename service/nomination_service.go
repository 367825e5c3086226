package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"nakamoto/events"
	"nakamoto/models"
)

// nominationService implements the NominationService interface
type nominationService struct {
	uowFactory UnitOfWorkFactory
}

// NewNominationService creates a new nomination service
func NewNominationService(uowFactory UnitOfWorkFactory) NominationService {
	return &nominationService{
		uowFactory: uowFactory,
	}
}

// AddNomination stores a nomination. The message is truncated to the storage
// limit first. Storage failures are logged with their cause and reported to
// the caller only as a failed receipt.
func (s *nominationService) AddNomination(ctx context.Context, nomination *models.Nomination) models.NominationReceipt {
	// VARCHAR(255) counts characters, so truncate by rune
	if runes := []rune(nomination.Message); len(runes) > models.MaxNominationMessageLength {
		nomination.Message = string(runes[:models.MaxNominationMessageLength])
	}

	receipt := func(err error) models.NominationReceipt {
		log.WithFields(log.Fields{
			"messageID": nomination.MessageID,
			"guildID":   nomination.GuildID,
			"category":  nomination.Category,
		}).WithError(err).Error("Failed to add nomination")
		return models.NominationReceipt{OK: false, Reason: err}
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return receipt(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer uow.Rollback()

	if err := uow.NominationRepository().Create(ctx, nomination); err != nil {
		return receipt(err)
	}

	uow.EventBus().Publish(events.NominationAddedEvent{
		NominationID: nomination.ID,
		GuildID:      nomination.GuildID,
		ChannelID:    nomination.ChannelID,
		MessageID:    nomination.MessageID,
		AuthorID:     nomination.AuthorID,
		Category:     nomination.Category,
	})

	if err := uow.Commit(); err != nil {
		return receipt(err)
	}

	return models.NominationReceipt{OK: true}
}

// GetNominations returns nominations matching the filter
func (s *nominationService) GetNominations(ctx context.Context, filter models.NominationFilter) ([]*models.Nomination, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.NominationRepository().GetFiltered(ctx, filter)
}

// ListCategories returns the category vocabulary in name order
func (s *nominationService) ListCategories(ctx context.Context) ([]string, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.NominationRepository().GetCategories(ctx)
}
