package study

import "time"

// runBreakCountdown ticks the rest timer down and chimes once when it
// reaches zero. The break itself is a dead end: after the chime the session
// stays in StateBreak until the user leaves it (Close) or never does.
func (s *Session) runBreakCountdown(stop <-chan struct{}) {
	ticker := time.NewTicker(s.timings.BreakTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if s.state != StateBreak {
				s.mu.Unlock()
				return
			}
			if s.breakRemaining > 0 {
				s.breakRemaining--
			}
			remaining := s.breakRemaining
			snap := s.snapshotLocked()
			s.mu.Unlock()

			s.notify(snap)
			if remaining == 0 {
				s.logger.Info("break finished")
				s.cfg.Speaker.Chime(s.ctx)
				return
			}
		case <-stop:
			return
		case <-s.ctx.Done():
			return
		}
	}
}
