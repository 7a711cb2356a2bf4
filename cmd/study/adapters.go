package main

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// narrationMsg carries one line the server-side session would have spoken.
type narrationMsg struct {
	text string
}

// chimeMsg marks the moment listening starts.
type chimeMsg struct{}

// narrationSpeaker implements study.Speaker by printing narration into the
// TUI instead of synthesizing audio.
type narrationSpeaker struct {
	send func(tea.Msg)
}

func (s *narrationSpeaker) Speak(ctx context.Context, text string) {
	if s.send != nil {
		s.send(narrationMsg{text: text})
	}
}

func (s *narrationSpeaker) Chime(ctx context.Context) {
	if s.send != nil {
		s.send(chimeMsg{})
	}
}

// typedCapture implements study.SpeechCapture with typed input: the model
// submits the line the user typed, and an empty line counts as no usable
// transcript, which routes the card to manual review.
type typedCapture struct {
	answers chan string
}

func newTypedCapture() *typedCapture {
	return &typedCapture{answers: make(chan string, 1)}
}

func (c *typedCapture) Capture(ctx context.Context) (string, bool) {
	select {
	case answer := <-c.answers:
		answer = strings.TrimSpace(answer)
		return answer, answer != ""
	case <-ctx.Done():
		return "", false
	}
}

// submit hands the typed line to a waiting capture. A submission with no
// capture in flight is dropped.
func (c *typedCapture) submit(text string) {
	select {
	case c.answers <- text:
	default:
	}
}
