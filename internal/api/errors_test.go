package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reciteapp/recite-api/internal/domain"
	"github.com/reciteapp/recite-api/internal/service"
	"github.com/reciteapp/recite-api/internal/service/auth"
	"github.com/reciteapp/recite-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid refresh token", auth.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"card set not found", store.ErrCardSetNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"username exists", store.ErrUsernameExists, http.StatusConflict},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"invalid mode", domain.ErrInvalidMode, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestMapErrorToStatusCodeUnwrapsServiceErrors(t *testing.T) {
	t.Parallel()

	wrapped := service.NewServiceError("get_set", "card set owned by another user", service.ErrNotOwned)
	assert.Equal(t, http.StatusForbidden, MapErrorToStatusCode(wrapped))

	doubleWrapped := fmt.Errorf("handler: %w",
		service.NewServiceError("get_set", "card set not found", store.ErrCardSetNotFound))
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(doubleWrapped))
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"username exists", store.ErrUsernameExists, "Username already taken"},
		{"card set not found", store.ErrCardSetNotFound, "Card set not found"},
		{"not owned", service.ErrNotOwned, "You do not own this resource"},
		{"internal detail hidden", errors.New("pq: connection refused"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := validator.New().Struct(LoginRequest{Password: "pw"})
	require.Error(t, err)

	msg := SanitizeValidationError(err)
	assert.Contains(t, msg, "Username")
	assert.NotContains(t, msg, "LoginRequest")
}
