package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"

	"github.com/reciteapp/recite-api/internal/api/shared"
	"github.com/reciteapp/recite-api/internal/domain"
	"github.com/reciteapp/recite-api/internal/service/auth"
	"github.com/reciteapp/recite-api/internal/store"
)

// fakeUserStore is an in-memory store.UserStore for handler tests. It
// mimics the real store's contract of hashing the plaintext password on
// Create with a recognizable fake hash.
type fakeUserStore struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func fakeHash(password string) string {
	return "hashed:" + password
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	for _, existing := range s.users {
		if existing.NormalizedUsername() == user.NormalizedUsername() {
			return store.ErrUsernameExists
		}
	}
	stored := *user
	stored.HashedPassword = fakeHash(stored.Password)
	stored.Password = ""
	s.users[stored.ID] = &stored
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *fakeUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	normalized := domain.NormalizeUsername(username)
	for _, user := range s.users {
		if user.NormalizedUsername() == normalized {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) Update(ctx context.Context, user *domain.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	stored := *user
	if stored.Password != "" {
		stored.HashedPassword = fakeHash(stored.Password)
		stored.Password = ""
	}
	s.users[stored.ID] = &stored
	return nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

var _ store.UserStore = (*fakeUserStore)(nil)

// fakeJWTService issues recognizable tokens without signing anything.
type fakeJWTService struct {
	generateErr error
}

func (s *fakeJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if s.generateErr != nil {
		return "", s.generateErr
	}
	return "access-" + userID.String(), nil
}

func (s *fakeJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	id, ok := strings.CutPrefix(tokenString, "access-")
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: userID, TokenType: "access"}, nil
}

func (s *fakeJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if s.generateErr != nil {
		return "", s.generateErr
	}
	return "refresh-" + userID.String(), nil
}

func (s *fakeJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	id, ok := strings.CutPrefix(tokenString, "refresh-")
	if !ok {
		return nil, auth.ErrInvalidRefreshToken
	}
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, auth.ErrInvalidRefreshToken
	}
	return &auth.Claims{UserID: userID, TokenType: "refresh"}, nil
}

var _ auth.JWTService = (*fakeJWTService)(nil)

// fakePasswordVerifier matches against the fakeUserStore's fake hashes.
type fakePasswordVerifier struct{}

func (v *fakePasswordVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword != fakeHash(password) {
		return errors.New("password mismatch")
	}
	return nil
}

var _ auth.PasswordVerifier = (*fakePasswordVerifier)(nil)

// withUserID returns the request with the given user ID injected into the
// context the way the authentication middleware does.
func withUserID(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// testCardSet builds a valid card set owned by the given user.
func testCardSet(ownerID uuid.UUID, name string) *domain.CardSet {
	set, err := domain.NewCardSet(ownerID, name, "", []domain.Card{
		{Question: "Capital of France", Answer: "Paris"},
		{Question: "2 + 2", Answer: "4"},
	})
	if err != nil {
		panic(fmt.Sprintf("testCardSet: %v", err))
	}
	return set
}
