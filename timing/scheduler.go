package timing

import "time"

// DefaultPeriod is the acquisition tick period.
const DefaultPeriod = 200 * time.Millisecond

// Scheduler releases one tick per period.
//
// When a tick finishes early the scheduler sleeps out the remainder. When a
// tick overruns its deadline the sleep is skipped, the overrun is counted and
// the next deadline is measured from now, so missed ticks are never replayed
// in a burst.
type Scheduler struct {
	clock    Clock
	period   time.Duration
	next     time.Time
	started  bool
	overruns uint64
}

// NewScheduler creates a scheduler on clock. A non-positive period selects
// DefaultPeriod.
func NewScheduler(clock Clock, period time.Duration) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Scheduler{clock: clock, period: period}
}

// Reset makes the next deadline one period from now.
func (s *Scheduler) Reset() {
	s.next = s.clock.Now().Add(s.period)
	s.started = true
}

// Wait blocks until the current deadline and arms the next one. It reports
// whether the deadline had already passed.
func (s *Scheduler) Wait() (late bool) {
	if !s.started {
		s.Reset()
	}
	now := s.clock.Now()
	if now.Before(s.next) {
		s.clock.Sleep(s.next.Sub(now))
		s.next = s.next.Add(s.period)
		return false
	}
	s.overruns++
	s.next = now.Add(s.period)
	return true
}

// Due is the non-blocking form of Wait for callers that poll from a render
// loop. It returns true once per period. Polling jitter below one period is
// absorbed; lateness of a full period or more counts as an overrun and
// re-bases the schedule.
func (s *Scheduler) Due() bool {
	if !s.started {
		s.Reset()
		return true
	}
	now := s.clock.Now()
	if now.Before(s.next) {
		return false
	}
	if now.Sub(s.next) >= s.period {
		s.overruns++
		s.next = now.Add(s.period)
		return true
	}
	s.next = s.next.Add(s.period)
	return true
}

// Overruns returns how many deadlines were missed.
func (s *Scheduler) Overruns() uint64 { return s.overruns }

// Period returns the tick period.
func (s *Scheduler) Period() time.Duration { return s.period }

// Next returns the current deadline.
func (s *Scheduler) Next() time.Time { return s.next }
