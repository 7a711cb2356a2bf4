package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/reciteapp/recite-api/internal/domain"
	"github.com/reciteapp/recite-api/internal/platform/logger"
	"github.com/reciteapp/recite-api/internal/store"
)

// CardSetRepository defines the repository interface for the service layer.
type CardSetRepository interface {
	// Create saves a new card set to the store
	Create(ctx context.Context, set *domain.CardSet) error

	// GetByID retrieves a card set by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CardSet, error)

	// ListByOwner retrieves all card sets belonging to a user
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.CardSet, error)

	// Update replaces the set's name, description, and cards
	Update(ctx context.Context, set *domain.CardSet) error

	// Delete removes a card set
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance bound to the transaction
	WithTx(tx *sql.Tx) store.CardSetStore

	// DB returns the underlying database connection
	DB() *sql.DB
}

// CardSetService provides card set operations scoped to their owner. Every
// read and write on an existing set verifies ownership first.
type CardSetService interface {
	// CreateSet cleans and validates the cards and saves a new set.
	CreateSet(ctx context.Context, ownerID uuid.UUID, name, description string, cards []domain.Card) (*domain.CardSet, error)

	// GetSet retrieves a set the user owns. Returns ErrNotOwned when the
	// set belongs to someone else.
	GetSet(ctx context.Context, userID, setID uuid.UUID) (*domain.CardSet, error)

	// ListSets retrieves all sets the user owns, newest first.
	ListSets(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error)

	// UpdateSet replaces a set's name, description, and cards.
	UpdateSet(ctx context.Context, userID, setID uuid.UUID, name, description string, cards []domain.Card) (*domain.CardSet, error)

	// DeleteSet removes a set the user owns.
	DeleteSet(ctx context.Context, userID, setID uuid.UUID) error
}

// cardSetServiceImpl implements the CardSetService interface
type cardSetServiceImpl struct {
	repo   CardSetRepository
	logger *slog.Logger
}

// NewCardSetService creates a new CardSetService.
// It returns an error if any of the required dependencies are nil.
func NewCardSetService(repo CardSetRepository, logger *slog.Logger) (CardSetService, error) {
	if repo == nil {
		return nil, domain.NewValidationError("repo", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &cardSetServiceImpl{
		repo:   repo,
		logger: logger.With(slog.String("component", "card_set_service")),
	}, nil
}

// CreateSet implements CardSetService.CreateSet
func (s *cardSetServiceImpl) CreateSet(
	ctx context.Context,
	ownerID uuid.UUID,
	name, description string,
	cards []domain.Card,
) (*domain.CardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := domain.NewCardSet(ownerID, name, description, cards)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, set); err != nil {
		log.Error("failed to create card set",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, NewServiceError("create_set", "failed to save card set", err)
	}

	log.Info("card set created",
		slog.String("set_id", set.ID.String()),
		slog.Int("card_count", len(set.Cards)))
	return set, nil
}

// GetSet implements CardSetService.GetSet
func (s *cardSetServiceImpl) GetSet(ctx context.Context, userID, setID uuid.UUID) (*domain.CardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := s.repo.GetByID(ctx, setID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("get_set", "card set not found", store.ErrCardSetNotFound)
		}
		log.Error("failed to retrieve card set",
			slog.String("error", err.Error()),
			slog.String("set_id", setID.String()))
		return nil, NewServiceError("get_set", "failed to retrieve card set", err)
	}

	if set.OwnerID != userID {
		return nil, NewServiceError("get_set", "card set owned by another user", ErrNotOwned)
	}

	return set, nil
}

// ListSets implements CardSetService.ListSets
func (s *cardSetServiceImpl) ListSets(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sets, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		log.Error("failed to list card sets",
			slog.String("error", err.Error()),
			slog.String("owner_id", userID.String()))
		return nil, NewServiceError("list_sets", "failed to list card sets", err)
	}

	return sets, nil
}

// UpdateSet implements CardSetService.UpdateSet
// The ownership check and the write run in one transaction so a concurrent
// owner change cannot slip between them.
func (s *cardSetServiceImpl) UpdateSet(
	ctx context.Context,
	userID, setID uuid.UUID,
	name, description string,
	cards []domain.Card,
) (*domain.CardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.CardSet
	err := store.RunInTransaction(ctx, s.repo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.repo.WithTx(tx)

		set, err := txRepo.GetByID(ctx, setID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return NewServiceError("update_set", "card set not found", store.ErrCardSetNotFound)
			}
			return NewServiceError("update_set", "failed to retrieve card set", err)
		}
		if set.OwnerID != userID {
			return NewServiceError("update_set", "card set owned by another user", ErrNotOwned)
		}

		if err := set.Rename(name, description, cards); err != nil {
			return err
		}
		if err := txRepo.Update(ctx, set); err != nil {
			return NewServiceError("update_set", "failed to save card set", err)
		}

		updated = set
		return nil
	})
	if err != nil {
		log.Debug("card set update rejected",
			slog.String("error", err.Error()),
			slog.String("set_id", setID.String()))
		return nil, err
	}

	log.Info("card set updated",
		slog.String("set_id", setID.String()),
		slog.Int("card_count", len(updated.Cards)))
	return updated, nil
}

// DeleteSet implements CardSetService.DeleteSet
func (s *cardSetServiceImpl) DeleteSet(ctx context.Context, userID, setID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.repo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.repo.WithTx(tx)

		set, err := txRepo.GetByID(ctx, setID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return NewServiceError("delete_set", "card set not found", store.ErrCardSetNotFound)
			}
			return NewServiceError("delete_set", "failed to retrieve card set", err)
		}
		if set.OwnerID != userID {
			return NewServiceError("delete_set", "card set owned by another user", ErrNotOwned)
		}

		if err := txRepo.Delete(ctx, setID); err != nil {
			return NewServiceError("delete_set", "failed to delete card set", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("card set deleted", slog.String("set_id", setID.String()))
	return nil
}
