package study

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reciteapp/recite-api/internal/domain"
	"github.com/reciteapp/recite-api/internal/domain/grading"
)

// Session control errors
var (
	// ErrNoCards is returned when a session is created without cards.
	ErrNoCards = errors.New("session requires at least one card")

	// ErrPomodoroConfig is returned when pomodoro mode is requested without
	// positive work and rest durations.
	ErrPomodoroConfig = errors.New("pomodoro mode requires positive work and rest durations")

	// ErrNotAtGate is returned when Unlock is called outside the gate state.
	ErrNotAtGate = errors.New("session is not waiting at the gate")

	// ErrNotAtSummary is returned when Retry is called before the summary.
	ErrNotAtSummary = errors.New("session has not reached the summary")

	// ErrSessionClosed is returned for any control on a torn-down session.
	ErrSessionClosed = errors.New("session is closed")

	// ErrSkipNotImplemented marks the skip control as an explicit
	// not-yet-implemented action rather than a silent no-op.
	ErrSkipNotImplemented = errors.New("skip is not implemented")
)

// Config assembles everything one session needs. Cards, SetID, SetName and
// UserID identify the material being studied; the collaborator ports may be
// left nil and degrade to their Null implementations (capability absence is
// never fatal, per the error-handling design).
type Config struct {
	UserID  uuid.UUID
	SetID   uuid.UUID
	SetName string
	Cards   []domain.Card

	Mode         domain.StudyMode
	WorkDuration time.Duration // pomodoro only
	RestDuration time.Duration // pomodoro only

	Timings    Timings
	Classifier *grading.Classifier

	Speaker Speaker
	Capture SpeechCapture
	Confirm ConfirmCapture
	Stats   StatsSink

	// Notify receives a snapshot after every observable transition. It is
	// called from session goroutines and must not call back into the
	// session synchronously.
	Notify func(Snapshot)

	Logger *slog.Logger
}

// Snapshot is an immutable view of session progress, produced after every
// observable transition.
type Snapshot struct {
	State          State            `json:"state"`
	Mode           domain.StudyMode `json:"mode"`
	SetName        string           `json:"set_name"`
	CardIndex      int              `json:"card_index"`
	TotalCards     int              `json:"total_cards"`
	Question       string           `json:"question,omitempty"`
	Transcript     string           `json:"transcript,omitempty"`
	Verdict        *grading.Verdict `json:"verdict,omitempty"`
	CorrectCount   int              `json:"correct_count"`
	IncorrectCount int              `json:"incorrect_count"`
	BreakRemaining int              `json:"break_remaining_seconds,omitempty"`
	ElapsedSeconds int              `json:"elapsed_seconds"`
}

// Session drives one study pass over an ordered card list. All mutation of
// the counters and the card index happens on the session's own goroutine;
// external controls only post intents that the session applies under its
// transition lock.
type Session struct {
	cfg        Config
	timings    Timings
	classifier *grading.Classifier
	logger     *slog.Logger
	notify     func(Snapshot)

	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	state          State
	generation     uint64
	index          int
	correctCount   int
	incorrectCount int
	transcript     string
	captured       bool
	verdict        *grading.Verdict
	recorded       bool
	reviewResolved bool
	reviewCh       chan bool
	passCancel     context.CancelFunc
	startedAt      time.Time
	breakTimer     *time.Timer
	breakStop      chan struct{}
	breakRemaining int
}

// NewSession validates the config and creates a session waiting at the
// gate. Nil collaborators degrade to Null implementations.
func NewSession(cfg Config) (*Session, error) {
	if len(cfg.Cards) == 0 {
		return nil, ErrNoCards
	}
	if cfg.Mode == "" {
		cfg.Mode = domain.ModeNormal
	}
	if err := cfg.Mode.Validate(); err != nil {
		return nil, err
	}
	if cfg.Mode == domain.ModePomodoro && (cfg.WorkDuration <= 0 || cfg.RestDuration <= 0) {
		return nil, ErrPomodoroConfig
	}

	if cfg.Speaker == nil {
		cfg.Speaker = NullSpeaker{}
	}
	if cfg.Capture == nil {
		cfg.Capture = NullCapture{}
	}
	if cfg.Confirm == nil {
		cfg.Confirm = NullConfirm{}
	}
	if cfg.Stats == nil {
		cfg.Stats = NullStatsSink{}
	}

	classifier := cfg.Classifier
	if classifier == nil {
		classifier = grading.NewDefaultClassifier()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notify := cfg.Notify
	if notify == nil {
		notify = func(Snapshot) {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		cfg:        cfg,
		timings:    cfg.Timings.withDefaults(),
		classifier: classifier,
		logger:     logger.With("component", "study_session", "set_id", cfg.SetID),
		notify:     notify,
		ctx:        ctx,
		cancel:     cancel,
		state:      StateGate,
	}, nil
}

// Unlock is the explicit user action required before any audio may play.
// It starts the session clock, arms the break scheduler in pomodoro mode,
// and begins the question flow.
func (s *Session) Unlock() error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state != StateGate {
		s.mu.Unlock()
		return ErrNotAtGate
	}

	s.startedAt = time.Now()
	gen := s.generation
	passCtx, cancel := context.WithCancel(s.ctx)
	s.passCancel = cancel
	if s.cfg.Mode == domain.ModePomodoro {
		s.breakTimer = time.AfterFunc(s.cfg.WorkDuration, s.enterBreak)
	}
	s.mu.Unlock()

	s.logger.Info("session unlocked", "mode", s.cfg.Mode, "cards", len(s.cfg.Cards))
	go s.runPass(passCtx, gen)
	return nil
}

// ConfirmCorrect is the manual "count correct" action. It reports whether
// the tap resolved the pending review; a tap that loses the race against a
// voice confirmation, or arrives outside a review, does nothing.
func (s *Session) ConfirmCorrect() bool { return s.resolveCurrent(true) }

// ConfirmIncorrect is the manual "count wrong" action.
func (s *Session) ConfirmIncorrect() bool { return s.resolveCurrent(false) }

// Skip is wired through to the UI but deliberately unimplemented.
func (s *Session) Skip() error { return ErrSkipNotImplemented }

// Retry re-enters the gate with the same cards and parameters. Only valid
// from the summary.
func (s *Session) Retry() error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state != StateSummary {
		s.mu.Unlock()
		return ErrNotAtSummary
	}

	s.generation++
	s.index = 0
	s.correctCount = 0
	s.incorrectCount = 0
	s.transcript = ""
	s.captured = false
	s.verdict = nil
	s.recorded = false
	s.reviewResolved = false
	s.reviewCh = nil
	cancel := s.passCancel
	s.passCancel = nil
	if s.breakTimer != nil {
		s.breakTimer.Stop()
		s.breakTimer = nil
	}
	s.state = StateGate
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.notify(snap)
	return nil
}

// Close tears the session down: pending speech and recognition are
// cancelled and every stale continuation is invalidated. Safe to call more
// than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.generation++
	s.state = StateClosed
	cancel := s.passCancel
	s.passCancel = nil
	if s.breakTimer != nil {
		s.breakTimer.Stop()
		s.breakTimer = nil
	}
	if s.breakStop != nil {
		close(s.breakStop)
		s.breakStop = nil
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.cancel()
	s.notify(snap)
}

// Snapshot returns the current session view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// runPass is the session goroutine: one full pass over the cards, or as far
// as a break or teardown lets it get.
func (s *Session) runPass(ctx context.Context, gen uint64) {
	for {
		card, ok := s.beginQuestion(gen)
		if !ok {
			return
		}

		s.speak(ctx, s.timings.QuestionTimeout, "Question: "+card.Question)
		if !s.pause(ctx, s.timings.ListenDelay) {
			return
		}
		if !s.beginListening(gen) {
			return
		}
		s.cfg.Speaker.Chime(ctx)

		transcript, captured := s.captureAnswer(ctx)
		if ctx.Err() != nil {
			return
		}

		verdict := s.grade(transcript, captured, card)
		if !s.setVerdict(gen, transcript, captured, verdict) {
			return
		}

		switch verdict.Kind {
		case grading.AutoCorrect:
			if !s.finishCard(ctx, gen, true) {
				return
			}
		case grading.AutoIncorrect:
			if !s.finishCard(ctx, gen, false) {
				return
			}
		default:
			if !s.runReview(ctx, gen, card, transcript, captured) {
				return
			}
		}

		if !s.advance(gen) {
			return
		}
	}
}

// beginQuestion moves to the question state for the current card and clears
// the previous card's display state.
func (s *Session) beginQuestion(gen uint64) (domain.Card, bool) {
	s.mu.Lock()
	if s.staleLocked(gen) || s.index >= len(s.cfg.Cards) {
		s.mu.Unlock()
		return domain.Card{}, false
	}
	card := s.cfg.Cards[s.index]
	s.state = StateQuestion
	s.transcript = ""
	s.captured = false
	s.verdict = nil
	s.recorded = false
	s.reviewResolved = false
	s.reviewCh = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return card, true
}

func (s *Session) beginListening(gen uint64) bool {
	s.mu.Lock()
	if s.staleLocked(gen) {
		s.mu.Unlock()
		return false
	}
	s.state = StateListening
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true
}

// captureAnswer runs one capture bounded by the hard listening cap. The
// silence cutoff after first speech is the capture implementation's job.
func (s *Session) captureAnswer(ctx context.Context) (string, bool) {
	capCtx, cancel := context.WithTimeout(ctx, s.timings.CaptureLimit)
	defer cancel()
	return s.cfg.Capture.Capture(capCtx)
}

// grade classifies the transcript against the card. A capture that
// produced no usable transcript is treated identically to a needs-review
// verdict with an empty user answer, surfaced for manual confirmation.
func (s *Session) grade(transcript string, captured bool, card domain.Card) grading.Verdict {
	if !captured || strings.TrimSpace(transcript) == "" {
		variants := card.AnswerVariants()
		return grading.Verdict{Kind: grading.NeedsReview, Score: 0, MatchedVariant: variants[0]}
	}
	return s.classifier.Evaluate(transcript, card.Answer)
}

func (s *Session) setVerdict(gen uint64, transcript string, captured bool, v grading.Verdict) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staleLocked(gen) {
		return false
	}
	s.transcript = transcript
	s.captured = captured
	s.verdict = &v
	return true
}

// runReview announces the transcript and the reference answer, then waits
// for the first of: a voice yes/no (two bounded attempts), a manual tap, or
// pre-emption.
func (s *Session) runReview(ctx context.Context, gen uint64, card domain.Card, transcript string, captured bool) bool {
	s.mu.Lock()
	if s.staleLocked(gen) {
		s.mu.Unlock()
		return false
	}
	s.state = StateReview
	s.reviewResolved = false
	ch := make(chan bool, 1)
	s.reviewCh = ch
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	shown := strings.TrimSpace(transcript)
	if !captured || shown == "" {
		shown = "no answer"
	}
	s.speak(ctx, s.timings.AnnounceTimeout, "Your answer: "+shown)
	s.speak(ctx, s.timings.AnnounceTimeout, "Correct answer: "+strings.Join(card.AnswerVariants(), " or "))
	s.speak(ctx, s.timings.AnnounceTimeout, "Count as correct?")
	s.cfg.Speaker.Chime(ctx)

	// Best two attempts: one reprompt on an unrecognized response, then
	// give up and wait for manual input.
	for attempt := 0; attempt < 2 && ctx.Err() == nil && !s.reviewDone(gen); attempt++ {
		decision := s.cfg.Confirm.ListenYesNo(ctx, s.timings.ConfirmWindow)
		if decision == DecisionYes || decision == DecisionNo {
			s.resolveReview(gen, decision == DecisionYes)
			break
		}
		if attempt == 0 {
			s.speak(ctx, s.timings.AnnounceTimeout, "Please say yes or no.")
			s.cfg.Speaker.Chime(ctx)
		}
	}

	select {
	case correct := <-ch:
		return s.finishCard(ctx, gen, correct)
	case <-ctx.Done():
		return false
	}
}

func (s *Session) reviewDone(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staleLocked(gen) || s.reviewResolved
}

// resolveReview is the transition lock around outcome resolution: exactly
// one resolution per card wins, whether it came from voice or a tap.
func (s *Session) resolveReview(gen uint64, correct bool) bool {
	s.mu.Lock()
	if s.staleLocked(gen) || s.state != StateReview || s.reviewResolved || s.reviewCh == nil {
		s.mu.Unlock()
		return false
	}
	s.reviewResolved = true
	ch := s.reviewCh
	s.mu.Unlock()

	ch <- correct
	return true
}

func (s *Session) resolveCurrent(correct bool) bool {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()
	return s.resolveReview(gen, correct)
}

// finishCard records the card's outcome exactly once, announces it, and
// pauses briefly before the caller advances.
func (s *Session) finishCard(ctx context.Context, gen uint64, correct bool) bool {
	s.mu.Lock()
	if s.staleLocked(gen) || s.recorded {
		s.mu.Unlock()
		return false
	}
	s.recorded = true
	if correct {
		s.correctCount++
	} else {
		s.incorrectCount++
	}
	s.state = StateResult
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	if correct {
		s.speak(ctx, s.timings.AnnounceTimeout, "Well done!")
	} else {
		s.speak(ctx, s.timings.AnnounceTimeout, "You will get it next time.")
	}
	if !s.pause(ctx, s.timings.ResultPause) {
		return false
	}
	return true
}

// advance moves to the next card, or to the summary when the list is
// exhausted. Returns false when the pass goroutine should stop.
func (s *Session) advance(gen uint64) bool {
	s.mu.Lock()
	if s.staleLocked(gen) {
		s.mu.Unlock()
		return false
	}
	s.index++
	s.recorded = false
	s.reviewResolved = false
	s.reviewCh = nil

	if s.index < len(s.cfg.Cards) {
		s.mu.Unlock()
		return true
	}

	s.state = StateSummary
	summary := Summary{
		UserID:          s.cfg.UserID,
		SetID:           s.cfg.SetID,
		SetName:         s.cfg.SetName,
		Mode:            s.cfg.Mode,
		CorrectCount:    s.correctCount,
		IncorrectCount:  s.incorrectCount,
		TotalCards:      len(s.cfg.Cards),
		DurationSeconds: int(time.Since(s.startedAt).Seconds()),
		FinishedAt:      time.Now().UTC(),
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	s.logger.Info("session finished",
		"correct", summary.CorrectCount,
		"incorrect", summary.IncorrectCount,
		"total", summary.TotalCards,
		"duration_seconds", summary.DurationSeconds)
	s.cfg.Stats.Record(s.ctx, summary)
	return false
}

// enterBreak pre-empts whatever is in flight: the generation bump
// invalidates stale continuations and the pass context cancellation halts
// active speech and capture immediately.
func (s *Session) enterBreak() {
	s.mu.Lock()
	if s.state == StateClosed || s.state == StateSummary || s.state == StateBreak {
		s.mu.Unlock()
		return
	}
	s.generation++
	s.state = StateBreak
	s.breakRemaining = int(s.cfg.RestDuration / s.timings.BreakTick)
	cancel := s.passCancel
	s.passCancel = nil
	stop := make(chan struct{})
	s.breakStop = stop
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.logger.Info("break started", "rest_seconds", snap.BreakRemaining)
	s.notify(snap)
	go s.runBreakCountdown(stop)
}

func (s *Session) staleLocked(gen uint64) bool {
	return s.state == StateClosed || s.generation != gen
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:          s.state,
		Mode:           s.cfg.Mode,
		SetName:        s.cfg.SetName,
		CardIndex:      s.index,
		TotalCards:     len(s.cfg.Cards),
		Transcript:     s.transcript,
		Verdict:        s.verdict,
		CorrectCount:   s.correctCount,
		IncorrectCount: s.incorrectCount,
		BreakRemaining: s.breakRemaining,
	}
	if s.index < len(s.cfg.Cards) {
		snap.Question = s.cfg.Cards[s.index].Question
	}
	if !s.startedAt.IsZero() {
		snap.ElapsedSeconds = int(time.Since(s.startedAt).Seconds())
	}
	return snap
}

// speak narrates text bounded by the given timeout; narration never fails,
// it only takes time.
func (s *Session) speak(ctx context.Context, timeout time.Duration, text string) {
	if ctx.Err() != nil {
		return
	}
	speakCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	s.cfg.Speaker.Speak(speakCtx, text)
}

// pause sleeps for d unless the pass is pre-empted first.
func (s *Session) pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
