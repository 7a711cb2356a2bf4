package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reciteapp/recite-api/internal/domain"
	"github.com/reciteapp/recite-api/internal/service"
	"github.com/reciteapp/recite-api/internal/store"
)

// fakeCardSetService is an in-memory service.CardSetService that enforces
// the same ownership rules as the real implementation.
type fakeCardSetService struct {
	sets map[uuid.UUID]*domain.CardSet
}

func newFakeCardSetService() *fakeCardSetService {
	return &fakeCardSetService{sets: make(map[uuid.UUID]*domain.CardSet)}
}

func (s *fakeCardSetService) CreateSet(
	ctx context.Context,
	ownerID uuid.UUID,
	name, description string,
	cards []domain.Card,
) (*domain.CardSet, error) {
	set, err := domain.NewCardSet(ownerID, name, description, cards)
	if err != nil {
		return nil, err
	}
	s.sets[set.ID] = set
	return set, nil
}

func (s *fakeCardSetService) GetSet(ctx context.Context, userID, setID uuid.UUID) (*domain.CardSet, error) {
	set, ok := s.sets[setID]
	if !ok {
		return nil, store.ErrCardSetNotFound
	}
	if set.OwnerID != userID {
		return nil, service.ErrNotOwned
	}
	return set, nil
}

func (s *fakeCardSetService) ListSets(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error) {
	var owned []*domain.CardSet
	for _, set := range s.sets {
		if set.OwnerID == userID {
			owned = append(owned, set)
		}
	}
	return owned, nil
}

func (s *fakeCardSetService) UpdateSet(
	ctx context.Context,
	userID, setID uuid.UUID,
	name, description string,
	cards []domain.Card,
) (*domain.CardSet, error) {
	set, err := s.GetSet(ctx, userID, setID)
	if err != nil {
		return nil, err
	}
	if err := set.Rename(name, description, cards); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *fakeCardSetService) DeleteSet(ctx context.Context, userID, setID uuid.UUID) error {
	if _, err := s.GetSet(ctx, userID, setID); err != nil {
		return err
	}
	delete(s.sets, setID)
	return nil
}

var _ service.CardSetService = (*fakeCardSetService)(nil)

// setRouter mounts the handler under chi so URL parameters resolve, with
// the given user injected the way the authentication middleware would.
func setRouter(handler *SetHandler, userID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, withUserID(req, userID))
		})
	})
	r.Post("/sets", handler.CreateSet)
	r.Get("/sets", handler.ListSets)
	r.Get("/sets/{id}", handler.GetSet)
	r.Put("/sets/{id}", handler.UpdateSet)
	r.Delete("/sets/{id}", handler.DeleteSet)
	return r
}

func TestSetHandlerCreate(t *testing.T) {
	t.Parallel()

	svc := newFakeCardSetService()
	handler := NewSetHandler(svc, nil)
	userID := uuid.New()
	router := setRouter(handler, userID)

	t.Run("creates a set and drops blank cards", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest(http.MethodPost, "/sets",
			`{"name":"Geography","cards":[{"question":"Capital of France","answer":"Paris"},{"question":"","answer":""}]}`))

		require.Equal(t, http.StatusCreated, w.Code)

		var resp CardSetResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Geography", resp.Name)
		assert.Equal(t, 1, resp.CardCount)
	})

	t.Run("rejects a set without cards", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest(http.MethodPost, "/sets",
			`{"name":"Empty","cards":[]}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a set whose cards all clean away", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest(http.MethodPost, "/sets",
			`{"name":"Blank","cards":[{"question":"  ","answer":""}]}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSetHandlerOwnership(t *testing.T) {
	t.Parallel()

	svc := newFakeCardSetService()
	handler := NewSetHandler(svc, nil)
	owner := uuid.New()
	stranger := uuid.New()

	set := testCardSet(owner, "Geography")
	svc.sets[set.ID] = set

	t.Run("owner can read the set", func(t *testing.T) {
		w := httptest.NewRecorder()
		setRouter(handler, owner).ServeHTTP(w,
			httptest.NewRequest(http.MethodGet, "/sets/"+set.ID.String(), nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp CardSetResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, set.ID, resp.ID)
	})

	t.Run("another user gets forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		setRouter(handler, stranger).ServeHTTP(w,
			httptest.NewRequest(http.MethodGet, "/sets/"+set.ID.String(), nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown set is not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		setRouter(handler, owner).ServeHTTP(w,
			httptest.NewRequest(http.MethodGet, "/sets/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed set ID is a bad request", func(t *testing.T) {
		w := httptest.NewRecorder()
		setRouter(handler, owner).ServeHTTP(w,
			httptest.NewRequest(http.MethodGet, "/sets/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("another user cannot delete the set", func(t *testing.T) {
		w := httptest.NewRecorder()
		setRouter(handler, stranger).ServeHTTP(w,
			httptest.NewRequest(http.MethodDelete, "/sets/"+set.ID.String(), nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestSetHandlerUpdateAndDelete(t *testing.T) {
	t.Parallel()

	svc := newFakeCardSetService()
	handler := NewSetHandler(svc, nil)
	owner := uuid.New()
	router := setRouter(handler, owner)

	set := testCardSet(owner, "Geography")
	svc.sets[set.ID] = set

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPut, "/sets/"+set.ID.String(),
		`{"name":"World Capitals","description":"Renamed","cards":[{"question":"Capital of Japan","answer":"Tokyo"}]}`))

	require.Equal(t, http.StatusOK, w.Code)

	var resp CardSetResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "World Capitals", resp.Name)
	assert.Equal(t, 1, resp.CardCount)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sets/"+set.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sets/"+set.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetHandlerList(t *testing.T) {
	t.Parallel()

	svc := newFakeCardSetService()
	handler := NewSetHandler(svc, nil)
	owner := uuid.New()

	first := testCardSet(owner, "Geography")
	second := testCardSet(owner, "Arithmetic")
	other := testCardSet(uuid.New(), "Not Yours")
	svc.sets[first.ID] = first
	svc.sets[second.ID] = second
	svc.sets[other.ID] = other

	w := httptest.NewRecorder()
	setRouter(handler, owner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sets", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp []CardSetResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp, 2)
	for _, item := range resp {
		assert.NotEqual(t, other.ID, item.ID)
	}
}
