package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudyModeValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ModeNormal.Validate())
	assert.NoError(t, ModePomodoro.Validate())
	assert.ErrorIs(t, StudyMode("sprint").Validate(), ErrInvalidMode)
	assert.ErrorIs(t, StudyMode("").Validate(), ErrInvalidMode)
}

func TestNewStudyRecord(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	setID := uuid.New()

	t.Run("valid record", func(t *testing.T) {
		t.Parallel()
		record, err := NewStudyRecord(userID, setID, "Capitals", ModeNormal, 3, 0, 3, 125)
		require.NoError(t, err)
		assert.Equal(t, 3, record.CorrectCount)
		assert.Equal(t, 0, record.IncorrectCount)
		assert.False(t, record.CreatedAt.IsZero())
	})

	t.Run("counts exceeding total rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewStudyRecord(userID, setID, "Capitals", ModeNormal, 2, 2, 3, 10)
		assert.ErrorIs(t, err, ErrCountExceedsTotal)
	})

	t.Run("negative counts rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewStudyRecord(userID, setID, "Capitals", ModeNormal, -1, 0, 3, 10)
		assert.ErrorIs(t, err, ErrNegativeCount)
	})

	t.Run("negative duration rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewStudyRecord(userID, setID, "Capitals", ModePomodoro, 1, 1, 3, -5)
		assert.ErrorIs(t, err, ErrNegativeDuration)
	})

	t.Run("invalid mode rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewStudyRecord(userID, setID, "Capitals", StudyMode("casual"), 1, 1, 3, 5)
		assert.ErrorIs(t, err, ErrInvalidMode)
	})

	t.Run("missing user rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewStudyRecord(uuid.Nil, setID, "Capitals", ModeNormal, 1, 1, 3, 5)
		assert.ErrorIs(t, err, ErrEmptyRecordUserID)
	})
}
