package game

import (
	"context"
	"math/rand"
	"testing"
	"time"
)

type fakeTicker struct {
	c       chan time.Time
	stopped chan struct{}
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop()               { close(f.stopped) }

// fakeClock hands out tickers the test fires by hand
type fakeClock struct {
	created chan *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{created: make(chan *fakeTicker, 8)}
}

func (c *fakeClock) factory(time.Duration) Ticker {
	t := &fakeTicker{c: make(chan time.Time), stopped: make(chan struct{})}
	c.created <- t
	return t
}

type captureRenderer struct {
	frames chan Snapshot
}

func newCaptureRenderer() *captureRenderer {
	return &captureRenderer{frames: make(chan Snapshot, 64)}
}

func (r *captureRenderer) Render(s Snapshot) {
	r.frames <- s
}

func (r *captureRenderer) last(t *testing.T) Snapshot {
	t.Helper()
	var snap Snapshot
	found := false
	for {
		select {
		case snap = <-r.frames:
			found = true
		default:
			if !found {
				t.Fatal("Expected a rendered frame")
			}
			return snap
		}
	}
}

func (r *captureRenderer) wait(t *testing.T) Snapshot {
	t.Helper()
	select {
	case s := <-r.frames:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for a frame")
		return Snapshot{}
	}
}

func newTestSession(g *Game, clock *fakeClock, r Renderer, onGameOver GameOverFunc) *Session {
	return NewSession(g, NewScheduler(10*time.Millisecond, clock.factory), r, onGameOver, nil)
}

func TestSessionStartAndPauseControlClock(t *testing.T) {
	clock := newFakeClock()
	r := newCaptureRenderer()
	g := NewGame(20, rand.New(rand.NewSource(1)))
	s := newTestSession(g, clock, r, nil)

	s.Dispatch(Event{Kind: EventStart})
	if !s.scheduler.Running() {
		t.Fatal("Start should run the scheduler")
	}
	if snap := r.last(t); snap.Status != "running" {
		t.Errorf("Expected running frame, got %s", snap.Status)
	}

	s.Dispatch(Event{Kind: EventPause})
	if s.scheduler.Running() {
		t.Error("Pause should stop the scheduler")
	}
	ticker := <-clock.created
	select {
	case <-ticker.stopped:
	default:
		t.Error("Ticker was not stopped")
	}

	s.Dispatch(Event{Kind: EventPause})
	select {
	case snap := <-r.frames:
		t.Errorf("Second pause should not render, got %+v", snap)
	default:
	}
}

func TestSessionTurnDoesNotRender(t *testing.T) {
	clock := newFakeClock()
	r := newCaptureRenderer()
	s := newTestSession(NewGame(20, rand.New(rand.NewSource(1))), clock, r, nil)

	s.Dispatch(Turn(DirUp))
	if s.Game().Direction != DirUp {
		t.Errorf("Expected buffered direction up, got %s", s.Game().Direction)
	}
	select {
	case <-r.frames:
		t.Error("Turn should not render")
	default:
	}
}

func TestSessionGameOverCapturesScore(t *testing.T) {
	clock := newFakeClock()
	r := newCaptureRenderer()
	g := NewGame(20, rand.New(rand.NewSource(1)))
	g.Snake = []Point{{X: 19, Y: 10}}
	g.Food = Point{X: 0, Y: 0}
	g.Score = 30

	type result struct {
		name  string
		score int
	}
	release := make(chan struct{})
	results := make(chan result, 1)
	s := newTestSession(g, clock, r, func(name string, score int) {
		<-release
		results <- result{name, score}
	})

	s.Dispatch(Rename("alice"))
	s.Dispatch(Event{Kind: EventStart})
	s.Step()
	if s.scheduler.Running() {
		t.Error("Game over should stop the scheduler")
	}
	if snap := r.last(t); !snap.GameOver || snap.CrashPoint == nil {
		t.Errorf("Expected game over frame with crash point, got %+v", snap)
	}

	// A rename and a reset while the submission is in flight must not
	// change who is credited or the score.
	s.Dispatch(Rename("mallory"))
	s.Dispatch(Event{Kind: EventReset})
	close(release)

	select {
	case got := <-results:
		if got.score != 30 || got.name != "alice" {
			t.Errorf("Expected alice with 30, got %s with %d", got.name, got.score)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Game over hook was not called")
	}
	if g.Score != 0 || g.Status != StatusPaused {
		t.Errorf("Expected reset game, got score=%d status=%s", g.Score, g.Status)
	}
}

func TestSessionRenameDoesNotRender(t *testing.T) {
	r := newCaptureRenderer()
	s := newTestSession(NewGame(20, rand.New(rand.NewSource(1))), newFakeClock(), r, nil)

	s.Dispatch(Rename("bob"))
	select {
	case <-r.frames:
		t.Error("Rename should not render")
	default:
	}
}

func TestSessionRunDrivesTicks(t *testing.T) {
	clock := newFakeClock()
	r := newCaptureRenderer()
	g := NewGame(20, rand.New(rand.NewSource(1)))
	g.Food = Point{X: 0, Y: 0}
	s := newTestSession(g, clock, r, nil)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan Event)
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, events) }()

	if snap := r.wait(t); snap.Status != "paused" {
		t.Errorf("Expected initial paused frame, got %s", snap.Status)
	}

	events <- Event{Kind: EventStart}
	r.wait(t)
	ticker := <-clock.created

	ticker.c <- time.Now()
	snap := r.wait(t)
	if snap.Snake[0] != (Point{X: 11, Y: 10}) {
		t.Errorf("Expected head at (11,10), got %v", snap.Snake[0])
	}

	events <- Turn(DirDown)
	ticker.c <- time.Now()
	snap = r.wait(t)
	if snap.Snake[0] != (Point{X: 11, Y: 11}) {
		t.Errorf("Expected head at (11,11), got %v", snap.Snake[0])
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
	select {
	case <-ticker.stopped:
	default:
		t.Error("Run should stop the ticker on exit")
	}
}
