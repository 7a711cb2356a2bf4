package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/reciteapp/recite-api/internal/api/shared"
	"github.com/reciteapp/recite-api/internal/domain"
	"github.com/reciteapp/recite-api/internal/platform/logger"
	"github.com/reciteapp/recite-api/internal/service"
)

// SetHandler handles card set management API requests. All routes require
// an authenticated user and operate only on sets that user owns.
type SetHandler struct {
	service   service.CardSetService
	validator *validator.Validate
	logger    *slog.Logger
}

// NewSetHandler creates a new SetHandler with the given dependencies.
func NewSetHandler(cardSetService service.CardSetService, log *slog.Logger) *SetHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SetHandler{
		service:   cardSetService,
		validator: validator.New(),
		logger:    log.With(slog.String("component", "set_handler")),
	}
}

// CreateSet handles POST /sets.
func (h *SetHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CardSetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	set, err := h.service.CreateSet(r.Context(), userID, req.Name, req.Description, req.DomainCards())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("card set created",
		slog.String("set_id", set.ID.String()),
		slog.String("owner_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewCardSetResponse(set))
}

// GetSet handles GET /sets/{id}.
func (h *SetHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	set, err := h.service.GetSet(r.Context(), userID, setID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardSetResponse(set))
}

// ListSets handles GET /sets.
func (h *SetHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	sets, err := h.service.ListSets(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	responses := make([]CardSetResponse, 0, len(sets))
	for _, set := range sets {
		responses = append(responses, NewCardSetResponse(set))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// UpdateSet handles PUT /sets/{id}. The whole set is replaced, matching
// how clients edit sets as a single form.
func (h *SetHandler) UpdateSet(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req CardSetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	set, err := h.service.UpdateSet(r.Context(), userID, setID, req.Name, req.Description, req.DomainCards())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardSetResponse(set))
}

// DeleteSet handles DELETE /sets/{id}.
func (h *SetHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteSet(r.Context(), userID, setID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("card set deleted",
		slog.String("set_id", setID.String()),
		slog.String("owner_id", userID.String()))
	w.WriteHeader(http.StatusNoContent)
}
