package study

import "time"

// Timings bounds every suspension point in a session so the state machine
// never blocks indefinitely on a collaborator. The capture silence cutoff
// (stop ~2s after the first detected speech) is the SpeechCapture
// implementation's responsibility; CaptureLimit is the hard cap the session
// enforces on top via context deadline.
type Timings struct {
	// QuestionTimeout caps narration of the question prompt.
	QuestionTimeout time.Duration

	// ListenDelay is the settle pause between the question finishing and
	// capture starting.
	ListenDelay time.Duration

	// CaptureLimit is the hard cap on one answer capture.
	CaptureLimit time.Duration

	// ConfirmWindow is the listening window for one yes/no attempt. An
	// unrecognized response gets exactly one reprompt before the session
	// gives up and waits for manual input.
	ConfirmWindow time.Duration

	// AnnounceTimeout caps each spoken announcement outside the question
	// prompt (transcript recap, outcome lines, reprompts).
	AnnounceTimeout time.Duration

	// ResultPause is the beat between announcing an outcome and advancing.
	ResultPause time.Duration

	// BreakTick is the countdown resolution during a break.
	BreakTick time.Duration
}

// DefaultTimings returns the production timing profile.
func DefaultTimings() Timings {
	return Timings{
		QuestionTimeout: 8 * time.Second,
		ListenDelay:     500 * time.Millisecond,
		CaptureLimit:    90 * time.Second,
		ConfirmWindow:   5 * time.Second,
		AnnounceTimeout: 8 * time.Second,
		ResultPause:     400 * time.Millisecond,
		BreakTick:       time.Second,
	}
}

func (t Timings) withDefaults() Timings {
	d := DefaultTimings()
	if t.QuestionTimeout <= 0 {
		t.QuestionTimeout = d.QuestionTimeout
	}
	if t.ListenDelay < 0 {
		t.ListenDelay = d.ListenDelay
	}
	if t.CaptureLimit <= 0 {
		t.CaptureLimit = d.CaptureLimit
	}
	if t.ConfirmWindow <= 0 {
		t.ConfirmWindow = d.ConfirmWindow
	}
	if t.AnnounceTimeout <= 0 {
		t.AnnounceTimeout = d.AnnounceTimeout
	}
	if t.ResultPause < 0 {
		t.ResultPause = d.ResultPause
	}
	if t.BreakTick <= 0 {
		t.BreakTick = d.BreakTick
	}
	return t
}
