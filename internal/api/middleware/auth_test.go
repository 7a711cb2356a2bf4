package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reciteapp/recite-api/internal/api/shared"
	"github.com/reciteapp/recite-api/internal/service/auth"
)

// stubJWTService validates exactly one token and returns a fixed user.
type stubJWTService struct {
	validToken  string
	userID      uuid.UUID
	validateErr error
}

func (s *stubJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.validToken, nil
}

func (s *stubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	if tokenString != s.validToken {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: s.userID}, nil
}

func (s *stubJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "", auth.ErrInvalidRefreshToken
}

func (s *stubJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return nil, auth.ErrInvalidRefreshToken
}

var _ auth.JWTService = (*stubJWTService)(nil)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwtService := &stubJWTService{validToken: "good-token", userID: userID}
	m := NewAuthMiddleware(jwtService)

	// next records the user ID the middleware placed in the context.
	var gotUserID uuid.UUID
	var nextCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		gotUserID, _ = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantNext   bool
	}{
		{"valid bearer token", "Bearer good-token", http.StatusOK, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"not a bearer scheme", "Basic good-token", http.StatusUnauthorized, false},
		{"malformed header", "Bearer", http.StatusUnauthorized, false},
		{"invalid token", "Bearer bad-token", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled = false
			gotUserID = uuid.Nil

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}

			m.Authenticate(next).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantNext {
				assert.Equal(t, userID, gotUserID)
			}
		})
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Parallel()

	m := NewAuthMiddleware(&stubJWTService{validateErr: auth.ErrExpiredToken})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.Header.Set("Authorization", "Bearer whatever")

	m.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	})).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	TraceMiddleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, traceID, 2*shared.TraceIDLength)
}
