// Package study drives one guided recall pass over an ordered card list.
//
// A Session is a state machine: Gate -> Question -> Listening -> {Review |
// Result} -> next Question or Summary, with Break reachable from any state
// in pomodoro mode. One logical session goroutine processes transitions;
// concurrency comes from overlapping asynchronous collaborators (speech
// synthesis, speech capture, timers), all modeled as blocking calls bounded
// by context deadlines so the session never hangs on a collaborator.
//
// Outcome recording is guarded by a per-card transition lock: a racing
// voice confirmation and manual tap resolve a card at most once. Entering a
// pomodoro break bumps the session generation and cancels the in-flight
// pass; stale continuations observe the bumped generation and discard their
// results instead of applying them.
package study
