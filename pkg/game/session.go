package game

import (
	"context"
	"io"
	"log"
)

// Renderer draws a game snapshot
type Renderer interface {
	Render(s Snapshot)
}

// GameOverFunc receives the player name and final score of a finished game,
// both captured when the game ended
type GameOverFunc func(playerName string, score int)

// EventKind identifies a player command
type EventKind int

const (
	EventTurn EventKind = iota
	EventStart
	EventPause
	EventReset
	EventName
)

// Event is a player command delivered to the session loop
type Event struct {
	Kind      EventKind
	Direction Direction // EventTurn only
	Name      string    // EventName only
}

// Turn builds a direction-change event
func Turn(d Direction) Event {
	return Event{Kind: EventTurn, Direction: d}
}

// Rename builds a player-name event
func Rename(name string) Event {
	return Event{Kind: EventName, Name: name}
}

// Session drives one game: it applies commands and ticks on a single
// goroutine and renders after every change.
type Session struct {
	game       *Game
	scheduler  *Scheduler
	renderer   Renderer
	onGameOver GameOverFunc
	logger     *log.Logger
	playerName string
}

// NewSession wires a game to its clock and renderer. onGameOver may be nil.
func NewSession(g *Game, scheduler *Scheduler, renderer Renderer, onGameOver GameOverFunc, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{
		game:       g,
		scheduler:  scheduler,
		renderer:   renderer,
		onGameOver: onGameOver,
		logger:     logger,
	}
}

// Game returns the session's game. Only the session goroutine may mutate it.
func (s *Session) Game() *Game {
	return s.game
}

// Dispatch applies one command
func (s *Session) Dispatch(ev Event) {
	switch ev.Kind {
	case EventTurn:
		// Rejected turns are normal input, not errors; nothing to draw.
		s.game.SetDirection(ev.Direction)
		return
	case EventName:
		// Takes effect for games that end after it; nothing to draw.
		s.playerName = ev.Name
		return
	case EventStart:
		if !s.game.Start() {
			return
		}
		s.scheduler.Start()
		s.logger.Printf("game started heading %s", s.game.Direction)
	case EventPause:
		if !s.game.Pause() {
			return
		}
		s.scheduler.Stop()
	case EventReset:
		s.scheduler.Stop()
		s.game.Reset()
	}
	s.render()
}

// Step applies one tick
func (s *Session) Step() {
	res := s.game.Tick()
	if !res.Moved && !res.Over() {
		return
	}
	if res.Over() {
		s.scheduler.Stop()
		score, name := s.game.Score, s.playerName
		s.logger.Printf("game over: score=%d length=%d", score, len(s.game.Snake))
		s.render()
		if s.onGameOver != nil {
			go s.onGameOver(name, score)
		}
		return
	}
	s.render()
}

// Run processes events and ticks until ctx is done or events is closed
func (s *Session) Run(ctx context.Context, events <-chan Event) error {
	defer s.scheduler.Stop()
	s.render()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.Dispatch(ev)
		case <-s.scheduler.C():
			s.Step()
		}
	}
}

func (s *Session) render() {
	if s.renderer != nil {
		s.renderer.Render(s.game.GetGameStateSnapshot())
	}
}
