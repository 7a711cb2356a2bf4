package ws

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/reciteapp/recite-api/internal/study"
)

// sentCollector records outgoing messages so tests can reply to them.
type sentCollector struct {
	mu   sync.Mutex
	msgs []Message
	fail bool
}

func (c *sentCollector) send(msg Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return false
	}
	c.msgs = append(c.msgs, msg)
	return true
}

func (c *sentCollector) await(t *testing.T, msgType MessageType) Message {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		for _, msg := range c.msgs {
			if msg.Type == msgType {
				c.mu.Unlock()
				return msg
			}
		}
		c.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("no %q message sent", msgType)
	return Message{}
}

func TestBridgeSpeak(t *testing.T) {
	t.Parallel()

	t.Run("resolves when the client reports playback done", func(t *testing.T) {
		t.Parallel()
		sent := &sentCollector{}
		b := newBridge(sent.send)

		done := make(chan struct{})
		go func() {
			b.Speak(context.Background(), "Question: hello")
			close(done)
		}()

		req := sent.await(t, TypeSpeak)
		assert.Equal(t, "Question: hello", req.Text)
		b.Resolve(Message{Type: TypeSpeakDone, ID: req.ID})

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Speak did not return after resolution")
		}
	})

	t.Run("returns when ctx expires without a reply", func(t *testing.T) {
		t.Parallel()
		sent := &sentCollector{}
		b := newBridge(sent.send)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		start := time.Now()
		b.Speak(ctx, "never answered")
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("returns immediately when the send fails", func(t *testing.T) {
		t.Parallel()
		sent := &sentCollector{fail: true}
		b := newBridge(sent.send)
		b.Speak(context.Background(), "dropped")
	})
}

func TestBridgeCapture(t *testing.T) {
	t.Parallel()

	t.Run("returns the reported transcript", func(t *testing.T) {
		t.Parallel()
		sent := &sentCollector{}
		b := newBridge(sent.send)

		type result struct {
			transcript string
			ok         bool
		}
		resultCh := make(chan result, 1)
		go func() {
			transcript, ok := b.Capture(context.Background())
			resultCh <- result{transcript, ok}
		}()

		req := sent.await(t, TypeListen)
		b.Resolve(Message{Type: TypeSpeechResult, ID: req.ID, Transcript: "paris", OK: true})

		select {
		case got := <-resultCh:
			assert.True(t, got.ok)
			assert.Equal(t, "paris", got.transcript)
		case <-time.After(2 * time.Second):
			t.Fatal("Capture did not return")
		}
	})

	t.Run("reports absence when the bridge closes mid-capture", func(t *testing.T) {
		t.Parallel()
		sent := &sentCollector{}
		b := newBridge(sent.send)

		okCh := make(chan bool, 1)
		go func() {
			_, ok := b.Capture(context.Background())
			okCh <- ok
		}()

		sent.await(t, TypeListen)
		b.Close()

		select {
		case ok := <-okCh:
			assert.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("Capture did not return after Close")
		}
	})
}

func TestBridgeListenYesNo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		decision string
		want     study.Decision
	}{
		{"yes", "yes", study.DecisionYes},
		{"no", "no", study.DecisionNo},
		{"unrecognized", "none", study.DecisionNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sent := &sentCollector{}
			b := newBridge(sent.send)

			decisionCh := make(chan study.Decision, 1)
			go func() {
				decisionCh <- b.ListenYesNo(context.Background(), time.Second)
			}()

			req := sent.await(t, TypeYesNo)
			assert.Equal(t, int64(1000), req.WindowMillis)
			b.Resolve(Message{Type: TypeDecision, ID: req.ID, Decision: tt.decision})

			select {
			case got := <-decisionCh:
				assert.Equal(t, tt.want, got)
			case <-time.After(2 * time.Second):
				t.Fatal("ListenYesNo did not return")
			}
		})
	}

	t.Run("rejects new requests after close", func(t *testing.T) {
		t.Parallel()
		b := newBridge(func(Message) bool { return true })
		b.Close()
		assert.Equal(t, study.DecisionNone, b.ListenYesNo(context.Background(), time.Second))
	})
}

func TestBridgeListenYesNoClassifiesTranscript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		transcript string
		decision   string
		want       study.Decision
	}{
		{"affirmative utterance", "yeah count it", "", study.DecisionYes},
		{"negative utterance", "nope", "", study.DecisionNo},
		{"unclassifiable utterance", "banana", "", study.DecisionNone},
		{"transcript overrides the client's decision", "not correct", "yes", study.DecisionNo},
		{"falls back to the decision without a transcript", "  ", "yes", study.DecisionYes},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sent := &sentCollector{}
			b := newBridge(sent.send)

			decisionCh := make(chan study.Decision, 1)
			go func() {
				decisionCh <- b.ListenYesNo(context.Background(), time.Second)
			}()

			req := sent.await(t, TypeYesNo)
			b.Resolve(Message{Type: TypeDecision, ID: req.ID, Transcript: tt.transcript, Decision: tt.decision})

			select {
			case got := <-decisionCh:
				assert.Equal(t, tt.want, got)
			case <-time.After(2 * time.Second):
				t.Fatal("ListenYesNo did not return")
			}
		})
	}
}

func TestBridgeResolveUnknownID(t *testing.T) {
	t.Parallel()

	b := newBridge(func(Message) bool { return true })
	// Must not panic or block.
	b.Resolve(Message{Type: TypeSpeakDone, ID: 42})
}
