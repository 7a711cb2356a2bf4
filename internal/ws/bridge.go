package ws

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/reciteapp/recite-api/internal/study"
)

// decisionGrace pads the server-side wait for a yes/no result beyond the
// client's listening window, covering network latency.
const decisionGrace = 2 * time.Second

// bridge implements the session's audio ports over a websocket connection.
// Each request is assigned an ID; the reply routed back through Resolve
// wakes the goroutine waiting on that ID. A dead connection resolves every
// pending request as absent, so the session degrades instead of hanging.
type bridge struct {
	send func(Message) bool

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]chan Message
	closed  bool
}

func newBridge(send func(Message) bool) *bridge {
	return &bridge{
		send:    send,
		pending: make(map[uint64]chan Message),
	}
}

var (
	_ study.Speaker        = (*bridge)(nil)
	_ study.SpeechCapture  = (*bridge)(nil)
	_ study.ConfirmCapture = (*bridge)(nil)
)

// register allocates a request ID and its reply channel.
func (b *bridge) register() (uint64, chan Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0, nil, false
	}
	b.nextID++
	id := b.nextID
	ch := make(chan Message, 1)
	b.pending[id] = ch
	return id, ch, true
}

func (b *bridge) unregister(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.pending, id)
}

// Resolve routes a client reply to the request waiting on it. Replies for
// unknown or already-resolved IDs are dropped.
func (b *bridge) Resolve(msg Message) {
	b.mu.Lock()
	ch, ok := b.pending[msg.ID]
	if ok {
		delete(b.pending, msg.ID)
	}
	b.mu.Unlock()
	if ok {
		ch <- msg
	}
}

// Close resolves every pending request as absent and rejects new ones.
func (b *bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	pending := b.pending
	b.pending = make(map[uint64]chan Message)
	b.mu.Unlock()

	for id, ch := range pending {
		ch <- Message{ID: id}
	}
}

// Speak implements study.Speaker. It asks the client to synthesize the
// utterance and waits for playback to finish or ctx to expire.
func (b *bridge) Speak(ctx context.Context, text string) {
	id, ch, ok := b.register()
	if !ok {
		return
	}
	if !b.send(Message{Type: TypeSpeak, ID: id, Text: text}) {
		b.unregister(id)
		return
	}
	select {
	case <-ch:
	case <-ctx.Done():
		b.unregister(id)
	}
}

// Chime implements study.Speaker. Fire-and-forget; the tone is short
// enough that waiting for completion buys nothing.
func (b *bridge) Chime(ctx context.Context) {
	b.send(Message{Type: TypeChime})
}

// Capture implements study.SpeechCapture. The client stops on its own
// after sustained silence; the session's ctx deadline is the hard cap.
func (b *bridge) Capture(ctx context.Context) (string, bool) {
	id, ch, ok := b.register()
	if !ok {
		return "", false
	}
	if !b.send(Message{Type: TypeListen, ID: id}) {
		b.unregister(id)
		return "", false
	}
	select {
	case reply := <-ch:
		return reply.Transcript, reply.OK
	case <-ctx.Done():
		b.unregister(id)
		return "", false
	}
}

// ListenYesNo implements study.ConfirmCapture.
func (b *bridge) ListenYesNo(ctx context.Context, window time.Duration) study.Decision {
	id, ch, ok := b.register()
	if !ok {
		return study.DecisionNone
	}
	if !b.send(Message{Type: TypeYesNo, ID: id, WindowMillis: window.Milliseconds()}) {
		b.unregister(id)
		return study.DecisionNone
	}

	timer := time.NewTimer(window + decisionGrace)
	defer timer.Stop()
	select {
	case reply := <-ch:
		return decisionFromReply(reply)
	case <-timer.C:
		b.unregister(id)
		return study.DecisionNone
	case <-ctx.Done():
		b.unregister(id)
		return study.DecisionNone
	}
}

// decisionFromReply classifies a confirmation reply. A raw transcript is
// classified server-side against the keyword lists; the client's own
// decision field is trusted only when no transcript came along.
func decisionFromReply(reply Message) study.Decision {
	if strings.TrimSpace(reply.Transcript) != "" {
		return study.ClassifyYesNo(reply.Transcript)
	}
	switch reply.Decision {
	case "yes":
		return study.DecisionYes
	case "no":
		return study.DecisionNo
	default:
		return study.DecisionNone
	}
}
