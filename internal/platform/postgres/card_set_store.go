package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/reciteapp/recite-api/internal/domain"
	"github.com/reciteapp/recite-api/internal/store"
)

// PostgresCardSetStore implements the store.CardSetStore interface using a
// PostgreSQL database as the storage backend. Cards are stored as a JSONB
// column on the set row; a set is always read and written whole.
type PostgresCardSetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardSetStore creates a new PostgreSQL implementation of the
// CardSetStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// a default logger will be used.
func NewPostgresCardSetStore(db store.DBTX, logger *slog.Logger) *PostgresCardSetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardSetStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_set_store")),
	}
}

// Ensure PostgresCardSetStore implements store.CardSetStore interface
var _ store.CardSetStore = (*PostgresCardSetStore)(nil)

// WithTx implements store.CardSetStore.WithTx
func (s *PostgresCardSetStore) WithTx(tx *sql.Tx) store.CardSetStore {
	return &PostgresCardSetStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CardSetStore.Create
func (s *PostgresCardSetStore) Create(ctx context.Context, set *domain.CardSet) error {
	if err := set.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	cards, err := json.Marshal(set.Cards)
	if err != nil {
		return fmt.Errorf("failed to marshal cards: %w", err)
	}

	query := `
		INSERT INTO card_sets (id, owner_id, name, description, cards, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	now := time.Now().UTC()
	set.CreatedAt = now
	set.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, query,
		set.ID,
		set.OwnerID,
		set.Name,
		set.Description,
		cards,
		set.CreatedAt,
		set.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// GetByID implements store.CardSetStore.GetByID
func (s *PostgresCardSetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CardSet, error) {
	query := `
		SELECT id, owner_id, name, description, cards, created_at, updated_at
		FROM card_sets
		WHERE id = $1
	`
	set, err := scanCardSet(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrCardSetNotFound
		}
		return nil, err
	}
	return set, nil
}

// ListByOwner implements store.CardSetStore.ListByOwner
func (s *PostgresCardSetStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.CardSet, error) {
	query := `
		SELECT id, owner_id, name, description, cards, created_at, updated_at
		FROM card_sets
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	sets := make([]*domain.CardSet, 0)
	for rows.Next() {
		set, err := scanCardSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return sets, nil
}

// Update implements store.CardSetStore.Update
// It replaces name, description, and the full card list.
func (s *PostgresCardSetStore) Update(ctx context.Context, set *domain.CardSet) error {
	if err := set.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	cards, err := json.Marshal(set.Cards)
	if err != nil {
		return fmt.Errorf("failed to marshal cards: %w", err)
	}

	query := `
		UPDATE card_sets
		SET name = $1, description = $2, cards = $3, updated_at = $4
		WHERE id = $5
	`
	set.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, query,
		set.Name,
		set.Description,
		cards,
		set.UpdatedAt,
		set.ID,
	)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, "card set")
}

// Delete implements store.CardSetStore.Delete
func (s *PostgresCardSetStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM card_sets WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, "card set")
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCardSet(row rowScanner) (*domain.CardSet, error) {
	var (
		set   domain.CardSet
		cards []byte
	)
	err := row.Scan(
		&set.ID,
		&set.OwnerID,
		&set.Name,
		&set.Description,
		&cards,
		&set.CreatedAt,
		&set.UpdatedAt,
	)
	if err != nil {
		return nil, MapError(err)
	}
	if err := json.Unmarshal(cards, &set.Cards); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cards: %w", err)
	}
	return &set, nil
}
