package study

import "fmt"

// State identifies where a session currently is in its pass over the cards.
// Exactly one state is active at a time; illegal combinations (review during
// a break, two screens at once) are unrepresentable.
type State int

const (
	// StateGate waits for the explicit user action required before any
	// audio may play. The session clock and the break scheduler start when
	// the gate is unlocked.
	StateGate State = iota

	// StateQuestion is presenting the current card's prompt.
	StateQuestion

	// StateListening is capturing the user's spoken answer.
	StateListening

	// StateReview is asking a human to confirm an ambiguous answer.
	StateReview

	// StateResult is recording and announcing a card's outcome.
	StateResult

	// StateSummary is the terminal per-pass state; retry re-enters the gate
	// with the same parameters.
	StateSummary

	// StateBreak is the pomodoro break. It pre-empts whatever was in
	// flight and is a dead end: the user leaves the session manually, there
	// is no automatic resume.
	StateBreak

	// StateClosed means the session was torn down (user navigated away).
	StateClosed
)

var stateNames = map[State]string{
	StateGate:      "gate",
	StateQuestion:  "question",
	StateListening: "listening",
	StateReview:    "review",
	StateResult:    "result",
	StateSummary:   "summary",
	StateBreak:     "break",
	StateClosed:    "closed",
}

// String returns the state name.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so snapshots serialize with
// readable state names.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for clients that decode
// snapshots back into this type.
func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", string(text))
}
