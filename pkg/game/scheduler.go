package game

import "time"

// Ticker is a periodic clock the scheduler can stop
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory builds a ticker firing every d
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.Ticker
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Scheduler owns the fixed-rate tick clock of one game. It is not safe for
// concurrent use; the session loop is its only caller.
type Scheduler struct {
	interval  time.Duration
	newTicker TickerFactory
	active    Ticker
}

// NewScheduler creates a stopped scheduler. A nil factory uses time.Ticker.
func NewScheduler(interval time.Duration, factory TickerFactory) *Scheduler {
	if factory == nil {
		factory = NewTimeTicker
	}
	return &Scheduler{interval: interval, newTicker: factory}
}

// Start begins ticking. Starting a running scheduler does nothing.
func (s *Scheduler) Start() {
	if s.active != nil {
		return
	}
	s.active = s.newTicker(s.interval)
}

// Stop halts ticking and drops the ticker
func (s *Scheduler) Stop() {
	if s.active == nil {
		return
	}
	s.active.Stop()
	s.active = nil
}

// Running reports whether the clock is active
func (s *Scheduler) Running() bool {
	return s.active != nil
}

// C returns the tick channel, or nil while stopped so a select on it blocks
func (s *Scheduler) C() <-chan time.Time {
	if s.active == nil {
		return nil
	}
	return s.active.C()
}
