package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Study record validation errors
var (
	ErrEmptyRecordID     = errors.New("study record ID cannot be empty")
	ErrEmptyRecordUserID = errors.New("study record user ID cannot be empty")
	ErrNegativeCount     = errors.New("study record counts cannot be negative")
	ErrCountExceedsTotal = errors.New("correct + incorrect cannot exceed total cards")
	ErrNegativeDuration  = errors.New("study record duration cannot be negative")
)

// StudyMode selects how a study session is paced.
type StudyMode string

const (
	// ModeNormal runs straight through the card list.
	ModeNormal StudyMode = "normal"

	// ModePomodoro interleaves a single timed work interval with a timed
	// break, independent of card progress.
	ModePomodoro StudyMode = "pomodoro"
)

// Validate checks that the mode is one of the known values.
func (m StudyMode) Validate() error {
	switch m {
	case ModeNormal, ModePomodoro:
		return nil
	default:
		return ErrInvalidMode
	}
}

// StudyRecord is the durable summary of one finished study session.
type StudyRecord struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	SetID           uuid.UUID `json:"set_id"`
	SetName         string    `json:"set_name"`
	Mode            StudyMode `json:"mode"`
	CorrectCount    int       `json:"correct"`
	IncorrectCount  int       `json:"incorrect"`
	TotalCards      int       `json:"total"`
	DurationSeconds int       `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewStudyRecord creates a validated StudyRecord with a fresh ID and
// timestamp.
func NewStudyRecord(
	userID, setID uuid.UUID,
	setName string,
	mode StudyMode,
	correct, incorrect, total, durationSeconds int,
) (*StudyRecord, error) {
	record := &StudyRecord{
		ID:              uuid.New(),
		UserID:          userID,
		SetID:           setID,
		SetName:         setName,
		Mode:            mode,
		CorrectCount:    correct,
		IncorrectCount:  incorrect,
		TotalCards:      total,
		DurationSeconds: durationSeconds,
		CreatedAt:       time.Now().UTC(),
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the StudyRecord has valid data.
func (r *StudyRecord) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyRecordID
	}
	if r.UserID == uuid.Nil {
		return ErrEmptyRecordUserID
	}
	if err := r.Mode.Validate(); err != nil {
		return err
	}
	if r.CorrectCount < 0 || r.IncorrectCount < 0 || r.TotalCards < 0 {
		return ErrNegativeCount
	}
	if r.CorrectCount+r.IncorrectCount > r.TotalCards {
		return ErrCountExceedsTotal
	}
	if r.DurationSeconds < 0 {
		return ErrNegativeDuration
	}
	return nil
}
