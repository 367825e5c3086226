package repository

import (
	"context"
	"fmt"
	"strings"

	"nakamoto/database"
	"nakamoto/models"
)

// NominationRepository implements the service.NominationRepository interface
type NominationRepository struct {
	q queryable
}

// NewNominationRepository creates a new nomination repository
func NewNominationRepository(db *database.DB) *NominationRepository {
	return &NominationRepository{q: db.Pool}
}

// newNominationRepositoryWithTx creates a new nomination repository with a transaction
func newNominationRepositoryWithTx(tx queryable) *NominationRepository {
	return &NominationRepository{q: tx}
}

// Create inserts a nomination and fills in its assigned ID and timestamp
func (r *NominationRepository) Create(ctx context.Context, nomination *models.Nomination) error {
	query := `
		INSERT INTO nominations (guild_id, channel_id, message_id, author_id, category, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		nomination.GuildID,
		nomination.ChannelID,
		nomination.MessageID,
		nomination.AuthorID,
		nomination.Category,
		nomination.Message,
	).Scan(&nomination.ID, &nomination.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create nomination for message %d: %w", nomination.MessageID, err)
	}

	return nil
}

// GetFiltered returns nominations matching all set filters, oldest first.
// With no filters set it returns every nomination. The result is never nil.
func (r *NominationRepository) GetFiltered(ctx context.Context, filter models.NominationFilter) ([]*models.Nomination, error) {
	query := `
		SELECT id, guild_id, channel_id, message_id, author_id, category, message, created_at
		FROM nominations
	`

	var conditions []string
	var args []any
	addCondition := func(column string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.GuildID != nil {
		addCondition("guild_id", *filter.GuildID)
	}
	if filter.ChannelID != nil {
		addCondition("channel_id", *filter.ChannelID)
	}
	if filter.MessageID != nil {
		addCondition("message_id", *filter.MessageID)
	}
	if filter.AuthorID != nil {
		addCondition("author_id", *filter.AuthorID)
	}
	if filter.Category != nil {
		addCondition("category", *filter.Category)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query nominations: %w", err)
	}
	defer rows.Close()

	nominations := make([]*models.Nomination, 0)
	for rows.Next() {
		var nomination models.Nomination
		err := rows.Scan(
			&nomination.ID,
			&nomination.GuildID,
			&nomination.ChannelID,
			&nomination.MessageID,
			&nomination.AuthorID,
			&nomination.Category,
			&nomination.Message,
			&nomination.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nomination: %w", err)
		}
		nominations = append(nominations, &nomination)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate nominations: %w", err)
	}

	return nominations, nil
}

// GetCategories returns the category vocabulary in name order
func (r *NominationRepository) GetCategories(ctx context.Context) ([]string, error) {
	query := `
		SELECT name
		FROM categories
		ORDER BY name
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}
