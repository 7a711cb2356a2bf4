package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/reciteapp/recite-api/internal/domain"
)

// StatsSummary aggregates a user's study history.
type StatsSummary struct {
	Sessions        int `json:"sessions"`
	CardsStudied    int `json:"cards_studied"`
	CorrectCount    int `json:"correct_count"`
	IncorrectCount  int `json:"incorrect_count"`
	DurationSeconds int `json:"duration_seconds"`
}

// StudyRecordStore defines the interface for study record persistence.
// Records are append-only: sessions write them once and they are never
// updated.
type StudyRecordStore interface {
	// Create saves a finished session's record.
	// Returns validation errors from the domain StudyRecord if data is
	// invalid.
	Create(ctx context.Context, record *domain.StudyRecord) error

	// ListByUser retrieves a user's study records, newest first, capped at
	// limit (a non-positive limit applies the store's default cap).
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.StudyRecord, error)

	// Summarize aggregates all of a user's records into a StatsSummary.
	// A user with no records gets a zero summary, not an error.
	Summarize(ctx context.Context, userID uuid.UUID) (StatsSummary, error)

	// WithTx returns a new StudyRecordStore instance bound to the provided
	// transaction.
	WithTx(tx *sql.Tx) StudyRecordStore
}
