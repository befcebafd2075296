package game

import (
	"math/rand"
	"time"

	"github.com/trytobebee/neon_snake/pkg/config"
)

// Game represents the main game state
type Game struct {
	Size       int
	Snake      []Point
	Food       Point
	Direction  Direction
	Score      int
	Status     Status
	CrashPoint Point // Collision position, valid while Over
	FoodEaten  int

	turned  bool // A direction change was accepted since the last tick
	crashed bool
	rng     *rand.Rand
}

// GameConfig is a DTO for game settings sent to clients on connect
type GameConfig struct {
	GridSize   int `json:"gridSize"`
	TickMillis int `json:"tickMillis"`
	FoodReward int `json:"foodReward"`
}

// minBoardSize is the smallest board with a free cell next to a one-cell snake
const minBoardSize = 2

// NewGame creates a paused game on a size x size board. Smaller sizes are
// raised to 2. A nil rng seeds one from the clock.
func NewGame(size int, rng *rand.Rand) *Game {
	if size < minBoardSize {
		size = minBoardSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Game{Size: size, rng: rng}
	g.Reset()
	return g
}

// Reset puts a single-cell snake at the center, clears score and direction,
// and places fresh food. The game is left Paused.
func (g *Game) Reset() {
	center := g.Size / 2
	g.Snake = []Point{{X: center, Y: center}}
	g.Direction = DirNone
	g.Score = 0
	g.FoodEaten = 0
	g.Status = StatusPaused
	g.CrashPoint = Point{}
	g.crashed = false
	g.turned = false
	// Cannot fail: NewGame keeps at least 2x2 cells for a one-cell snake.
	g.Food, _ = g.placeFood()
}

// Start moves the game to Running and reports whether the clock should run.
// A finished game is reset first.
func (g *Game) Start() bool {
	if g.Status == StatusOver {
		g.Reset()
	}
	if g.Status == StatusRunning {
		return false
	}
	if g.Direction == DirNone {
		g.Direction = DirRight
	}
	g.Status = StatusRunning
	return true
}

// Pause freezes a running game and reports whether it was running
func (g *Game) Pause() bool {
	if g.Status != StatusRunning {
		return false
	}
	g.Status = StatusPaused
	return true
}

// SetDirection requests a new heading. It returns false when the request is
// ignored: no heading, no change, a reversal, or a second change in one tick.
func (g *Game) SetDirection(d Direction) bool {
	if d == DirNone || g.Status == StatusOver || g.turned {
		return false
	}
	if d == g.Direction || d == g.Direction.Opposite() {
		return false
	}
	g.Direction = d
	g.turned = true
	return true
}

// Tick advances the snake one cell
func (g *Game) Tick() TickResult {
	if g.Status != StatusRunning {
		return TickResult{}
	}
	g.turned = false

	newHead := g.Snake[0].Add(g.Direction)
	ate := newHead == g.Food

	moved := make([]Point, 0, len(g.Snake)+1)
	moved = append(moved, newHead)
	if ate {
		moved = append(moved, g.Snake...)
	} else {
		moved = append(moved, g.Snake[:len(g.Snake)-1]...)
	}

	if c := g.checkCollision(moved); c != CollisionNone {
		g.end(newHead)
		return TickResult{Collision: c}
	}

	g.Snake = moved
	if !ate {
		return TickResult{Moved: true}
	}

	g.Score += config.FoodReward
	g.FoodEaten++
	food, err := g.placeFood()
	if err != nil {
		g.Status = StatusOver
		return TickResult{Moved: true, Ate: true, Collision: CollisionBoardFull}
	}
	g.Food = food
	return TickResult{Moved: true, Ate: true}
}

// checkCollision tests the head of a moved body against the walls and the
// body from index 4 on. The three segments behind the head cannot be reached.
func (g *Game) checkCollision(body []Point) Collision {
	head := body[0]
	if !g.inBounds(head) {
		return CollisionWall
	}
	for i := 4; i < len(body); i++ {
		if body[i] == head {
			return CollisionSelf
		}
	}
	return CollisionNone
}

func (g *Game) end(at Point) {
	g.Status = StatusOver
	g.CrashPoint = at
	g.crashed = true
}

func (g *Game) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

func (g *Game) occupied(p Point) bool {
	for _, s := range g.Snake {
		if s == p {
			return true
		}
	}
	return false
}

// GetGameStateSnapshot returns a copy of the current game state for serialization
func (g *Game) GetGameStateSnapshot() Snapshot {
	snake := make([]Point, len(g.Snake))
	copy(snake, g.Snake)

	state := Snapshot{
		Snake:     snake,
		Food:      g.Food,
		GridSize:  g.Size,
		Score:     g.Score,
		Status:    g.Status.String(),
		Direction: g.Direction.String(),
		Paused:    g.Status == StatusPaused,
		GameOver:  g.Status == StatusOver,
	}
	if g.crashed {
		crash := g.CrashPoint
		state.CrashPoint = &crash
	}
	return state
}

// GetGameConfig returns the current game configuration
func (g *Game) GetGameConfig() GameConfig {
	return GameConfig{
		GridSize:   g.Size,
		TickMillis: int(config.TickInterval.Milliseconds()),
		FoodReward: config.FoodReward,
	}
}
