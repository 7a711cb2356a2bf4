package ws

import "github.com/reciteapp/recite-api/internal/study"

// MessageType discriminates the websocket message envelope.
type MessageType string

const (
	// Client -> Server: session controls
	TypeUnlock           MessageType = "unlock"
	TypeConfirmCorrect   MessageType = "confirm_correct"
	TypeConfirmIncorrect MessageType = "confirm_incorrect"
	TypeRetry            MessageType = "retry"
	TypeSkip             MessageType = "skip"
	TypePing             MessageType = "ping"

	// Client -> Server: audio action results
	TypeSpeakDone    MessageType = "speak_done"
	TypeSpeechResult MessageType = "speech_result"
	TypeDecision     MessageType = "decision"

	// Server -> Client: audio action requests
	TypeSpeak  MessageType = "speak"
	TypeChime  MessageType = "chime"
	TypeListen MessageType = "listen"
	TypeYesNo  MessageType = "yes_no"

	// Server -> Client: session progress
	TypeSnapshot MessageType = "snapshot"
	TypeError    MessageType = "error"
	TypePong     MessageType = "pong"
)

// Message is the websocket envelope. Audio action requests carry an ID the
// client echoes back in its result so the server can match replies to the
// action that is waiting on them.
type Message struct {
	Type MessageType `json:"type"`

	// ID correlates an audio action request with its result.
	ID uint64 `json:"id,omitempty"`

	// Text is the utterance for speak requests.
	Text string `json:"text,omitempty"`

	// Transcript and OK carry a speech recognition result. OK is false
	// when recognition is unsupported, errored, or heard nothing usable.
	Transcript string `json:"transcript,omitempty"`
	OK         bool   `json:"ok,omitempty"`

	// Decision carries a yes/no confirmation result: "yes", "no" or
	// "none". For decision replies Transcript may carry the raw
	// utterance; when present the server classifies it with its own
	// keyword lists and Decision is only a fallback.
	Decision string `json:"decision,omitempty"`

	// WindowMillis bounds a yes_no request on the client side.
	WindowMillis int64 `json:"window_ms,omitempty"`

	// Snapshot is the session view pushed after every transition.
	Snapshot *study.Snapshot `json:"snapshot,omitempty"`

	// Error is a human-readable problem description.
	Error string `json:"error,omitempty"`
}
