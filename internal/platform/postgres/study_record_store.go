package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/reciteapp/recite-api/internal/domain"
	"github.com/reciteapp/recite-api/internal/store"
)

// defaultRecordLimit caps ListByUser when the caller does not provide a
// positive limit.
const defaultRecordLimit = 100

// PostgresStudyRecordStore implements the store.StudyRecordStore interface
// using a PostgreSQL database as the storage backend. Records are
// append-only.
type PostgresStudyRecordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudyRecordStore creates a new PostgreSQL implementation of
// the StudyRecordStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller. If
// logger is nil, a default logger will be used.
func NewPostgresStudyRecordStore(db store.DBTX, logger *slog.Logger) *PostgresStudyRecordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudyRecordStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_record_store")),
	}
}

// Ensure PostgresStudyRecordStore implements store.StudyRecordStore interface
var _ store.StudyRecordStore = (*PostgresStudyRecordStore)(nil)

// WithTx implements store.StudyRecordStore.WithTx
func (s *PostgresStudyRecordStore) WithTx(tx *sql.Tx) store.StudyRecordStore {
	return &PostgresStudyRecordStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.StudyRecordStore.Create
func (s *PostgresStudyRecordStore) Create(ctx context.Context, record *domain.StudyRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_records
			(id, user_id, set_id, set_name, mode, correct_count,
			 incorrect_count, total_cards, duration_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.SetID,
		record.SetName,
		record.Mode,
		record.CorrectCount,
		record.IncorrectCount,
		record.TotalCards,
		record.DurationSeconds,
		record.CreatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return nil
}

// ListByUser implements store.StudyRecordStore.ListByUser
func (s *PostgresStudyRecordStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.StudyRecord, error) {
	if limit <= 0 {
		limit = defaultRecordLimit
	}

	query := `
		SELECT id, user_id, set_id, set_name, mode, correct_count,
		       incorrect_count, total_cards, duration_seconds, created_at
		FROM study_records
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*domain.StudyRecord, 0)
	for rows.Next() {
		var record domain.StudyRecord
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.SetID,
			&record.SetName,
			&record.Mode,
			&record.CorrectCount,
			&record.IncorrectCount,
			&record.TotalCards,
			&record.DurationSeconds,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return records, nil
}

// Summarize implements store.StudyRecordStore.Summarize
// COALESCE keeps a user with no history at a zero summary instead of a
// scan error on NULL aggregates.
func (s *PostgresStudyRecordStore) Summarize(ctx context.Context, userID uuid.UUID) (store.StatsSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(total_cards), 0),
		       COALESCE(SUM(correct_count), 0),
		       COALESCE(SUM(incorrect_count), 0),
		       COALESCE(SUM(duration_seconds), 0)
		FROM study_records
		WHERE user_id = $1
	`
	var summary store.StatsSummary
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&summary.Sessions,
		&summary.CardsStudied,
		&summary.CorrectCount,
		&summary.IncorrectCount,
		&summary.DurationSeconds,
	)
	if err != nil {
		return store.StatsSummary{}, MapError(err)
	}

	return summary, nil
}
