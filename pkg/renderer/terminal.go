package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/trytobebee/neon_snake/pkg/config"
	"github.com/trytobebee/neon_snake/pkg/game"
	"github.com/trytobebee/neon_snake/pkg/leaderboard"
)

// TerminalRenderer handles terminal-based rendering. Game frames arrive from
// the session loop and leaderboard updates from submission goroutines, so
// all state is guarded by mu.
type TerminalRenderer struct {
	mu     sync.Mutex
	out    io.Writer
	board  [][]int
	buffer strings.Builder

	last       *game.Snapshot
	highScore  *leaderboard.HighScore // nil while loading
	standings  *leaderboard.Standings // nil while loading
	banner     string
	playerName string
}

// Cell types for the board
const (
	cellEmpty = iota
	cellHead
	cellBody
	cellFood
	cellCrash
)

// NewTerminalRenderer creates a renderer for a size x size board.
// A nil writer renders to stdout.
func NewTerminalRenderer(size int, out io.Writer) *TerminalRenderer {
	if out == nil {
		out = os.Stdout
	}
	// Pre-allocate board to reduce GC pressure
	board := make([][]int, size)
	for i := range board {
		board[i] = make([]int, size)
	}

	return &TerminalRenderer{
		out:   out,
		board: board,
	}
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

// SetPlayerName sets the name shown in the header
func (r *TerminalRenderer) SetPlayerName(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playerName = leaderboard.TerminalSafe(name)
}

// SetHighScore updates the high score line and redraws
func (r *TerminalRenderer) SetHighScore(hs leaderboard.HighScore) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.highScore = &hs
	r.redrawLocked()
}

// SetStandings updates the leaderboard panel and redraws
func (r *TerminalRenderer) SetStandings(st leaderboard.Standings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.standings = &st
	r.redrawLocked()
}

// SetBanner shows a one-line message until the next game starts
func (r *TerminalRenderer) SetBanner(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banner = msg
	r.redrawLocked()
}

// Render renders the game state to the terminal
func (r *TerminalRenderer) Render(s game.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !s.GameOver {
		r.banner = ""
	}
	r.last = &s
	r.redrawLocked()
}

func (r *TerminalRenderer) redrawLocked() {
	if r.last == nil {
		return
	}
	s := r.last
	r.buffer.Reset()
	r.buffer.WriteString("\033[H\033[2J\033[3J")

	// Reset board
	for y := range r.board {
		for x := range r.board[y] {
			r.board[y][x] = cellEmpty
		}
	}
	r.put(s.Food, cellFood)
	for i := len(s.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			r.put(s.Snake[i], cellHead)
		} else {
			r.put(s.Snake[i], cellBody)
		}
	}
	if s.CrashPoint != nil {
		r.put(*s.CrashPoint, cellCrash)
	}

	r.buffer.WriteString("\n  🐍 NEON SNAKE 🐍\n")
	fmt.Fprintf(&r.buffer, "  Score: %d  |  High Score: %s", s.Score, r.highScoreText())
	if r.playerName != "" {
		fmt.Fprintf(&r.buffer, "  |  Player: %s", r.playerName)
	}
	r.buffer.WriteString("\n\n")

	// Render board inside a wall frame
	wall := strings.Repeat(config.CharWall, len(r.board)+2)
	r.buffer.WriteString("  " + wall + "\n")
	for _, row := range r.board {
		r.buffer.WriteString("  " + config.CharWall)
		for _, cell := range row {
			switch cell {
			case cellEmpty:
				r.buffer.WriteString(config.CharEmpty)
			case cellHead:
				r.buffer.WriteString(config.CharHead)
			case cellBody:
				r.buffer.WriteString(config.CharBody)
			case cellFood:
				r.buffer.WriteString(config.CharFood)
			case cellCrash:
				r.buffer.WriteString(config.CharCrash)
			}
		}
		r.buffer.WriteString(config.CharWall + "\n")
	}
	r.buffer.WriteString("  " + wall + "\n")

	r.buffer.WriteString("\n  Use WASD or Arrow keys to move\n")
	r.buffer.WriteString("  Enter to start, P to pause, R to reset, Q to quit\n")

	switch {
	case s.GameOver:
		r.buffer.WriteString("\n  💀 GAME OVER! Press Enter to play again or Q to quit\n")
	case s.Paused:
		r.buffer.WriteString("\n  ⏸️  PAUSED - Press Enter to play\n")
	}
	if r.banner != "" {
		r.buffer.WriteString("  " + r.banner + "\n")
	}

	r.writeStandings()
	fmt.Fprint(r.out, r.buffer.String())
}

func (r *TerminalRenderer) put(p game.Point, cell int) {
	if p.Y >= 0 && p.Y < len(r.board) && p.X >= 0 && p.X < len(r.board[p.Y]) {
		r.board[p.Y][p.X] = cell
	}
}

func (r *TerminalRenderer) highScoreText() string {
	if r.highScore == nil {
		return "Loading..."
	}
	return fmt.Sprintf("%d (%s)", r.highScore.Score, leaderboard.TerminalSafe(r.highScore.PlayerName))
}

func (r *TerminalRenderer) writeStandings() {
	r.buffer.WriteString("\n  🏆 LEADERBOARD\n")
	switch {
	case r.standings == nil:
		r.buffer.WriteString("  Loading...\n")
	case r.standings.Err != nil:
		r.buffer.WriteString("  Failed to load leaderboard\n")
	case len(r.standings.Records) == 0:
		r.buffer.WriteString("  No scores yet. Be the first!\n")
	default:
		for i, rec := range r.standings.Records {
			fmt.Fprintf(&r.buffer, "  %-4s %-24s %6d\n", rankLabel(i), leaderboard.TerminalSafe(rec.PlayerName), rec.Score)
		}
	}
}

func rankLabel(i int) string {
	switch i {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", i+1)
	}
}
