package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/reciteapp/recite-api/internal/domain"
)

// CardSetStore defines the interface for card set persistence. Cards are
// stored inline with their set; a set is always read and written whole.
type CardSetStore interface {
	// Create saves a new card set.
	// Returns validation errors from the domain CardSet if data is invalid.
	Create(ctx context.Context, set *domain.CardSet) error

	// GetByID retrieves a card set with its cards.
	// Returns ErrCardSetNotFound if the set does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CardSet, error)

	// ListByOwner retrieves all card sets belonging to a user, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.CardSet, error)

	// Update replaces the set's name, description, and cards.
	// Returns ErrCardSetNotFound if the set does not exist.
	Update(ctx context.Context, set *domain.CardSet) error

	// Delete removes a card set and its cards.
	// Returns ErrCardSetNotFound if the set does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardSetStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) CardSetStore
}
