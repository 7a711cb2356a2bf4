package study

import (
	"context"
	"sync"
	"time"
)

// fakeSpeaker records spoken lines and counts chimes.
type fakeSpeaker struct {
	mu     sync.Mutex
	lines  []string
	chimes int
}

func (f *fakeSpeaker) Speak(ctx context.Context, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, text)
}

func (f *fakeSpeaker) Chime(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chimes++
}

func (f *fakeSpeaker) spoken() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

func (f *fakeSpeaker) chimeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.chimes
}

type captureResult struct {
	text string
	ok   bool
}

// queueCapture pops one scripted result per capture and blocks on ctx when
// the script runs out.
type queueCapture struct {
	mu      sync.Mutex
	results []captureResult
}

func (q *queueCapture) Capture(ctx context.Context) (string, bool) {
	q.mu.Lock()
	if len(q.results) > 0 {
		r := q.results[0]
		q.results = q.results[1:]
		q.mu.Unlock()
		return r.text, r.ok
	}
	q.mu.Unlock()
	<-ctx.Done()
	return "", false
}

// blockingCapture never hears anything; it waits out the whole window.
type blockingCapture struct{}

func (blockingCapture) Capture(ctx context.Context) (string, bool) {
	<-ctx.Done()
	return "", false
}

// queueConfirm pops one scripted decision per attempt; an exhausted script
// reports DecisionNone.
type queueConfirm struct {
	mu        sync.Mutex
	decisions []Decision
}

func (q *queueConfirm) ListenYesNo(ctx context.Context, window time.Duration) Decision {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.decisions) == 0 {
		return DecisionNone
	}
	d := q.decisions[0]
	q.decisions = q.decisions[1:]
	return d
}

// chanStatsSink forwards summaries to a channel so tests can wait on them.
type chanStatsSink struct {
	ch chan Summary
}

func newChanStatsSink() *chanStatsSink {
	return &chanStatsSink{ch: make(chan Summary, 4)}
}

func (s *chanStatsSink) Record(ctx context.Context, summary Summary) {
	s.ch <- summary
}

func testTimings() Timings {
	return Timings{
		QuestionTimeout: 100 * time.Millisecond,
		ListenDelay:     time.Millisecond,
		CaptureLimit:    100 * time.Millisecond,
		ConfirmWindow:   20 * time.Millisecond,
		AnnounceTimeout: 100 * time.Millisecond,
		ResultPause:     time.Millisecond,
		BreakTick:       10 * time.Millisecond,
	}
}

// awaitState drains snapshots until the wanted state appears.
func awaitState(snapshots <-chan Snapshot, want State) (Snapshot, bool) {
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-snapshots:
			if snap.State == want {
				return snap, true
			}
		case <-deadline:
			return Snapshot{}, false
		}
	}
}
