package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCardSet(t *testing.T) {
	t.Parallel()
	owner := uuid.New()

	t.Run("valid set", func(t *testing.T) {
		t.Parallel()
		set, err := NewCardSet(owner, "  Capitals ", "European capitals", []Card{
			{Question: "Capital of France?", Answer: "Paris|City of Light"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Capitals", set.Name)
		assert.Equal(t, owner, set.OwnerID)
		assert.Len(t, set.Cards, 1)
	})

	t.Run("cards are cleaned", func(t *testing.T) {
		t.Parallel()
		set, err := NewCardSet(owner, "Capitals", "", []Card{
			{Question: "  Capital of France?  ", Answer: " Paris "},
			{Question: "   ", Answer: "   "},
			{Question: "Only a question", Answer: ""},
		})
		require.NoError(t, err)
		require.Len(t, set.Cards, 2)
		assert.Equal(t, Card{Question: "Capital of France?", Answer: "Paris"}, set.Cards[0])
		assert.Equal(t, Card{Question: "Only a question", Answer: ""}, set.Cards[1])
	})

	t.Run("empty name rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewCardSet(owner, "   ", "", []Card{{Question: "q", Answer: "a"}})
		assert.ErrorIs(t, err, ErrEmptySetName)
	})

	t.Run("set that cleans to zero cards rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewCardSet(owner, "Capitals", "", []Card{{Question: " ", Answer: " "}})
		assert.ErrorIs(t, err, ErrNoCards)
	})

	t.Run("nil owner rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewCardSet(uuid.Nil, "Capitals", "", []Card{{Question: "q", Answer: "a"}})
		assert.ErrorIs(t, err, ErrEmptySetOwnerID)
	})
}

func TestCardSetRename(t *testing.T) {
	t.Parallel()
	owner := uuid.New()

	set, err := NewCardSet(owner, "Old", "old desc", []Card{{Question: "q", Answer: "a"}})
	require.NoError(t, err)
	created := set.CreatedAt

	err = set.Rename("New", "new desc", []Card{
		{Question: "q2", Answer: "a2"},
		{Question: "", Answer: ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "New", set.Name)
	assert.Len(t, set.Cards, 1)
	assert.Equal(t, owner, set.OwnerID)
	assert.Equal(t, created, set.CreatedAt)

	// A rename that fails validation leaves the set untouched.
	err = set.Rename("", "", []Card{{Question: "q3", Answer: "a3"}})
	assert.ErrorIs(t, err, ErrEmptySetName)
	assert.Equal(t, "New", set.Name)
	assert.Len(t, set.Cards, 1)
}

func TestCardAnswerVariants(t *testing.T) {
	t.Parallel()

	card := Card{Question: "Capital of France?", Answer: "Paris | City of Light"}
	assert.Equal(t, []string{"Paris", "City of Light"}, card.AnswerVariants())

	plain := Card{Question: "q", Answer: "Paris"}
	assert.Equal(t, []string{"Paris"}, plain.AnswerVariants())
}
