// Package leaderboard keeps the score table: the remote store of
// (name, score) records, a local high score fallback, and the client the
// game talks to.
package leaderboard

import (
	"context"
	"errors"
	"time"
)

// ErrTransport marks a failed call to the remote store
var ErrTransport = errors.New("leaderboard unavailable")

// Record is one submitted score
type Record struct {
	ID         string    `json:"id"`
	PlayerName string    `json:"playerName"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HighScore is the best known score and who made it
type HighScore struct {
	Score      int    `json:"score"`
	PlayerName string `json:"playerName"`
}

// SubmitResult reports the outcome of a submission
type SubmitResult struct {
	Accepted    bool `json:"accepted"`
	IsNewRecord bool `json:"isNewRecord"`
}

// Standings is a leaderboard page for display. Err set means the board
// failed to load, which is not the same as an empty board.
type Standings struct {
	Records []Record
	Err     error
}

// Store is the remote record store
type Store interface {
	// Top returns at most limit records ordered by score, highest first
	Top(ctx context.Context, limit int) ([]Record, error)
	// Append inserts rec, filling in ID and CreatedAt when empty
	Append(ctx context.Context, rec *Record) error
}

// Fallback persists the high score locally for when the store is unreachable
type Fallback interface {
	Load(ctx context.Context) (HighScore, bool, error)
	Save(ctx context.Context, hs HighScore) error
}
