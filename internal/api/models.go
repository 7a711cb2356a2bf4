package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/reciteapp/recite-api/internal/domain"
	"github.com/reciteapp/recite-api/internal/store"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Username echoes the canonical (trimmed) username
	Username string `json:"username"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse defines the response for the current-user endpoint.
type UserResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// CardPayload is one question/answer pair in a card set request. Either
// side may be blank; pairs blank on both sides are dropped server-side.
type CardPayload struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CardSetRequest defines the payload for creating or updating a card set.
type CardSetRequest struct {
	Name        string        `json:"name" validate:"required,max=120"`
	Description string        `json:"description" validate:"max=500"`
	Cards       []CardPayload `json:"cards" validate:"required,min=1,dive"`
}

// Cards converts the payload pairs to domain cards.
func (r CardSetRequest) DomainCards() []domain.Card {
	cards := make([]domain.Card, 0, len(r.Cards))
	for _, c := range r.Cards {
		cards = append(cards, domain.Card{Question: c.Question, Answer: c.Answer})
	}
	return cards
}

// CardSetResponse defines the card set representation returned by the API.
type CardSetResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Cards       []CardPayload `json:"cards"`
	CardCount   int           `json:"card_count"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewCardSetResponse converts a domain card set to its API representation.
func NewCardSetResponse(set *domain.CardSet) CardSetResponse {
	cards := make([]CardPayload, 0, len(set.Cards))
	for _, c := range set.Cards {
		cards = append(cards, CardPayload{Question: c.Question, Answer: c.Answer})
	}
	return CardSetResponse{
		ID:          set.ID,
		Name:        set.Name,
		Description: set.Description,
		Cards:       cards,
		CardCount:   len(cards),
		CreatedAt:   set.CreatedAt,
		UpdatedAt:   set.UpdatedAt,
	}
}

// StudyRecordRequest defines the payload for recording a finished study
// session. Clients that run a session locally (such as the terminal
// client) report their results here; cross-field rules like correct +
// incorrect <= total are enforced by the domain record.
type StudyRecordRequest struct {
	SetID           uuid.UUID        `json:"set_id" validate:"required"`
	SetName         string           `json:"set_name" validate:"required,max=120"`
	Mode            domain.StudyMode `json:"mode" validate:"required,oneof=normal pomodoro"`
	CorrectCount    int              `json:"correct" validate:"min=0"`
	IncorrectCount  int              `json:"incorrect" validate:"min=0"`
	TotalCards      int              `json:"total" validate:"min=1"`
	DurationSeconds int              `json:"duration_seconds" validate:"min=0"`
}

// StudyRecordResponse defines one study history entry.
type StudyRecordResponse struct {
	ID              uuid.UUID        `json:"id"`
	SetID           uuid.UUID        `json:"set_id"`
	SetName         string           `json:"set_name"`
	Mode            domain.StudyMode `json:"mode"`
	CorrectCount    int              `json:"correct"`
	IncorrectCount  int              `json:"incorrect"`
	TotalCards      int              `json:"total"`
	DurationSeconds int              `json:"duration_seconds"`
	CreatedAt       time.Time        `json:"created_at"`
}

// NewStudyRecordResponse converts a domain record to its API
// representation.
func NewStudyRecordResponse(record *domain.StudyRecord) StudyRecordResponse {
	return StudyRecordResponse{
		ID:              record.ID,
		SetID:           record.SetID,
		SetName:         record.SetName,
		Mode:            record.Mode,
		CorrectCount:    record.CorrectCount,
		IncorrectCount:  record.IncorrectCount,
		TotalCards:      record.TotalCards,
		DurationSeconds: record.DurationSeconds,
		CreatedAt:       record.CreatedAt,
	}
}

// StatsSummaryResponse aggregates a user's study history.
type StatsSummaryResponse struct {
	Sessions        int     `json:"sessions"`
	CardsStudied    int     `json:"cards_studied"`
	CorrectCount    int     `json:"correct_count"`
	IncorrectCount  int     `json:"incorrect_count"`
	DurationSeconds int     `json:"duration_seconds"`
	Accuracy        float64 `json:"accuracy"`
}

// NewStatsSummaryResponse converts a store summary, deriving accuracy from
// the answered counts (0 when nothing was answered).
func NewStatsSummaryResponse(summary store.StatsSummary) StatsSummaryResponse {
	resp := StatsSummaryResponse{
		Sessions:        summary.Sessions,
		CardsStudied:    summary.CardsStudied,
		CorrectCount:    summary.CorrectCount,
		IncorrectCount:  summary.IncorrectCount,
		DurationSeconds: summary.DurationSeconds,
	}
	if answered := summary.CorrectCount + summary.IncorrectCount; answered > 0 {
		resp.Accuracy = float64(summary.CorrectCount) / float64(answered)
	}
	return resp
}
