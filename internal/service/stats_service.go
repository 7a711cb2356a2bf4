package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/reciteapp/recite-api/internal/domain"
	"github.com/reciteapp/recite-api/internal/platform/logger"
	"github.com/reciteapp/recite-api/internal/store"
	"github.com/reciteapp/recite-api/internal/study"
)

// StudyRecordRepository defines the repository interface for study records.
type StudyRecordRepository interface {
	// Create saves a finished session's record
	Create(ctx context.Context, record *domain.StudyRecord) error

	// ListByUser retrieves a user's study records, newest first
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.StudyRecord, error)

	// Summarize aggregates all of a user's records
	Summarize(ctx context.Context, userID uuid.UUID) (store.StatsSummary, error)
}

// StatsService records finished study sessions and reads study history.
type StatsService interface {
	// RecordSession validates and persists a finished session's result.
	RecordSession(ctx context.Context, record *domain.StudyRecord) error

	// ListRecords retrieves the user's study history, newest first.
	ListRecords(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.StudyRecord, error)

	// GetSummary aggregates the user's study history.
	GetSummary(ctx context.Context, userID uuid.UUID) (store.StatsSummary, error)
}

// statsServiceImpl implements the StatsService interface
type statsServiceImpl struct {
	repo   StudyRecordRepository
	logger *slog.Logger
}

// NewStatsService creates a new StatsService.
// It returns an error if any of the required dependencies are nil.
func NewStatsService(repo StudyRecordRepository, logger *slog.Logger) (StatsService, error) {
	if repo == nil {
		return nil, domain.NewValidationError("repo", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &statsServiceImpl{
		repo:   repo,
		logger: logger.With(slog.String("component", "stats_service")),
	}, nil
}

// RecordSession implements StatsService.RecordSession
func (s *statsServiceImpl) RecordSession(ctx context.Context, record *domain.StudyRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		log.Error("failed to record study session",
			slog.String("error", err.Error()),
			slog.String("user_id", record.UserID.String()))
		return NewServiceError("record_session", "failed to save study record", err)
	}

	log.Info("study session recorded",
		slog.String("user_id", record.UserID.String()),
		slog.String("set_name", record.SetName),
		slog.Int("correct", record.CorrectCount),
		slog.Int("total", record.TotalCards))
	return nil
}

// ListRecords implements StatsService.ListRecords
func (s *statsServiceImpl) ListRecords(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.StudyRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	records, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		log.Error("failed to list study records",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("list_records", "failed to list study records", err)
	}

	return records, nil
}

// GetSummary implements StatsService.GetSummary
func (s *statsServiceImpl) GetSummary(ctx context.Context, userID uuid.UUID) (store.StatsSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	summary, err := s.repo.Summarize(ctx, userID)
	if err != nil {
		log.Error("failed to summarize study records",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return store.StatsSummary{}, NewServiceError("get_summary", "failed to summarize study records", err)
	}

	return summary, nil
}

// SessionRecorder adapts a StatsService to the study.StatsSink port so
// finished sessions persist their summaries. Recording is fire-and-forget
// from the session's perspective; failures are logged and dropped.
type SessionRecorder struct {
	stats  StatsService
	logger *slog.Logger
}

// NewSessionRecorder creates a study.StatsSink backed by the StatsService.
func NewSessionRecorder(stats StatsService, logger *slog.Logger) *SessionRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionRecorder{
		stats:  stats,
		logger: logger.With(slog.String("component", "session_recorder")),
	}
}

var _ study.StatsSink = (*SessionRecorder)(nil)

// Record implements study.StatsSink.Record
func (r *SessionRecorder) Record(ctx context.Context, summary study.Summary) {
	record, err := domain.NewStudyRecord(
		summary.UserID,
		summary.SetID,
		summary.SetName,
		summary.Mode,
		summary.CorrectCount,
		summary.IncorrectCount,
		summary.TotalCards,
		summary.DurationSeconds,
	)
	if err != nil {
		r.logger.Error("invalid session summary",
			slog.String("error", err.Error()),
			slog.String("user_id", summary.UserID.String()))
		return
	}
	record.CreatedAt = summary.FinishedAt

	if err := r.stats.RecordSession(ctx, record); err != nil {
		r.logger.Error("failed to persist session summary",
			slog.String("error", err.Error()),
			slog.String("user_id", summary.UserID.String()))
	}
}
