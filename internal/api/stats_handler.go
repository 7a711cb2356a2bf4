package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/reciteapp/recite-api/internal/api/shared"
	"github.com/reciteapp/recite-api/internal/domain"
	"github.com/reciteapp/recite-api/internal/platform/logger"
	"github.com/reciteapp/recite-api/internal/service"
)

// StatsHandler handles study history and statistics API requests.
type StatsHandler struct {
	service   service.StatsService
	validator *validator.Validate
	logger    *slog.Logger
}

// NewStatsHandler creates a new StatsHandler with the given dependencies.
func NewStatsHandler(statsService service.StatsService, log *slog.Logger) *StatsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &StatsHandler{
		service:   statsService,
		validator: validator.New(),
		logger:    log.With(slog.String("component", "stats_handler")),
	}
}

// RecordSession handles POST /stats/records. The websocket gateway records
// its own sessions at summary; this endpoint covers clients that ran the
// session themselves.
func (h *StatsHandler) RecordSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req StudyRecordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	record, err := domain.NewStudyRecord(
		userID,
		req.SetID,
		req.SetName,
		req.Mode,
		req.CorrectCount,
		req.IncorrectCount,
		req.TotalCards,
		req.DurationSeconds,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.service.RecordSession(r.Context(), record); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("study session recorded",
		slog.String("record_id", record.ID.String()),
		slog.String("set_id", record.SetID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewStudyRecordResponse(record))
}

// ListRecords handles GET /stats/records. An optional ?limit query
// parameter caps the number of entries; the store applies its default
// cap when the parameter is absent or invalid.
func (h *StatsHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	records, err := h.service.ListRecords(r.Context(), userID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	responses := make([]StudyRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, NewStudyRecordResponse(record))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetSummary handles GET /stats/summary.
func (h *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	summary, err := h.service.GetSummary(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewStatsSummaryResponse(summary))
}
