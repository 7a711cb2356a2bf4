package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reciteapp/recite-api/internal/domain/grading"
)

// Card set validation errors
var (
	ErrEmptySetID      = errors.New("card set ID cannot be empty")
	ErrEmptySetOwnerID = errors.New("card set owner ID cannot be empty")
	ErrEmptySetName    = errors.New("card set name cannot be empty")
	ErrSetNameTooLong  = errors.New("card set name must be at most 120 characters long")
	ErrNoCards         = errors.New("card set must contain at least one card")
)

// Card is a single question/answer pair. The answer may encode multiple
// accepted variants separated by "|" ("Paris|City of Light"); variants are
// tried independently during grading and the best-scoring one wins.
// Cards are immutable once loaded into a study session.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnswerVariants returns the card's accepted answer phrasings.
func (c Card) AnswerVariants() []string {
	return grading.SplitVariants(c.Answer)
}

// CardSet is an owner-scoped, ordered collection of cards.
type CardSet struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cards       []Card    `json:"cards"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCardSet creates a CardSet with a fresh ID and timestamps. The cards are
// cleaned first; a set that cleans down to zero cards is rejected.
func NewCardSet(ownerID uuid.UUID, name, description string, cards []Card) (*CardSet, error) {
	set := &CardSet{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Cards:       CleanCards(cards),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks if the CardSet has valid data.
func (s *CardSet) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySetID
	}
	if s.OwnerID == uuid.Nil {
		return ErrEmptySetOwnerID
	}
	if s.Name == "" {
		return ErrEmptySetName
	}
	if len(s.Name) > 120 {
		return ErrSetNameTooLong
	}
	if len(s.Cards) == 0 {
		return ErrNoCards
	}
	return nil
}

// Rename updates name, description and cards in place, keeping the original
// owner and creation time. The cards are cleaned the same way NewCardSet
// cleans them.
func (s *CardSet) Rename(name, description string, cards []Card) error {
	updated := *s
	updated.Name = strings.TrimSpace(name)
	updated.Description = strings.TrimSpace(description)
	updated.Cards = CleanCards(cards)
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return err
	}

	*s = updated
	return nil
}

// CleanCards trims both sides of every card and drops cards where both
// sides are empty, preserving order.
func CleanCards(cards []Card) []Card {
	cleaned := make([]Card, 0, len(cards))
	for _, c := range cards {
		c.Question = strings.TrimSpace(c.Question)
		c.Answer = strings.TrimSpace(c.Answer)
		if c.Question == "" && c.Answer == "" {
			continue
		}
		cleaned = append(cleaned, c)
	}
	return cleaned
}
