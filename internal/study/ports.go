package study

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reciteapp/recite-api/internal/domain"
)

// Speaker synthesizes speech for the user. Implementations resolve on
// playback completion, on error, or when ctx expires; speaking never fails
// from the session's point of view, it only takes time.
type Speaker interface {
	// Speak says the given text and returns when playback has finished,
	// failed, or ctx is done.
	Speak(ctx context.Context, text string)

	// Chime plays a short attention tone (played before listening starts
	// and when a break countdown reaches zero).
	Chime(ctx context.Context)
}

// SpeechCapture records one spoken answer. Implementations stop on their
// own after sustained silence following the first detected speech, and in
// any case when ctx is done (the session applies the hard listening cap via
// the context deadline).
type SpeechCapture interface {
	// Capture returns the final transcript. ok is false when recognition is
	// unsupported, errored, or produced no usable transcript; the session
	// then falls back to manual review with an empty answer.
	Capture(ctx context.Context) (transcript string, ok bool)
}

// Decision is the outcome of a yes/no confirmation attempt.
type Decision int

const (
	// DecisionNone means the window elapsed or the utterance was not
	// recognizable as yes or no.
	DecisionNone Decision = iota
	DecisionYes
	DecisionNo
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case DecisionYes:
		return "yes"
	case DecisionNo:
		return "no"
	default:
		return "none"
	}
}

// ConfirmCapture listens for a short yes/no utterance.
type ConfirmCapture interface {
	// ListenYesNo classifies one utterance within the given window.
	// DecisionNone on timeout, error, or unrecognized speech.
	ListenYesNo(ctx context.Context, window time.Duration) Decision
}

// Summary is the durable result of one finished pass, handed to the
// StatsSink when the session reaches its terminal state.
type Summary struct {
	UserID          uuid.UUID
	SetID           uuid.UUID
	SetName         string
	Mode            domain.StudyMode
	CorrectCount    int
	IncorrectCount  int
	TotalCards      int
	DurationSeconds int
	FinishedAt      time.Time
}

// StatsSink receives session summaries. Recording is fire-and-forget: the
// session does not wait for acknowledgment and a failing sink must not
// disturb the session.
type StatsSink interface {
	Record(ctx context.Context, summary Summary)
}

// NullSpeaker degrades speech synthesis when the capability is absent:
// every utterance resolves immediately.
type NullSpeaker struct{}

func (NullSpeaker) Speak(ctx context.Context, text string) {}
func (NullSpeaker) Chime(ctx context.Context)              {}

// NullCapture degrades speech recognition when the capability is absent:
// every capture reports no usable transcript, which routes the card to
// manual review.
type NullCapture struct{}

func (NullCapture) Capture(ctx context.Context) (string, bool) { return "", false }

// NullConfirm degrades yes/no capture when the capability is absent.
type NullConfirm struct{}

func (NullConfirm) ListenYesNo(ctx context.Context, window time.Duration) Decision {
	return DecisionNone
}

// NullStatsSink drops summaries.
type NullStatsSink struct{}

func (NullStatsSink) Record(ctx context.Context, summary Summary) {}
