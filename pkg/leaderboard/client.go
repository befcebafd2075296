package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/trytobebee/neon_snake/pkg/config"
)

// Client reads and appends leaderboard records and keeps the best known
// high score. Calls may come from several goroutines: submissions finish
// on their own schedule, possibly after the game that produced them was reset.
type Client struct {
	store  Store
	local  Fallback
	logger *log.Logger

	mu    sync.Mutex
	high  HighScore
	known bool
}

// NewClient creates a client. local may be nil to skip local persistence.
func NewClient(store Store, local Fallback, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(os.Stdout, "[LEADERBOARD] ", log.LstdFlags)
	}
	return &Client{
		store:  store,
		local:  local,
		logger: logger,
		high:   HighScore{PlayerName: config.DefaultPlayerName},
	}
}

// HighScore returns the cached best score
func (c *Client) HighScore(ctx context.Context) HighScore {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked(ctx)
}

// FetchTopRecord returns the highest record, or nil when the board is empty.
// When the store fails it returns the cached or locally saved high score
// (or 0 by ANON) together with an error wrapping ErrTransport.
func (c *Client) FetchTopRecord(ctx context.Context) (*Record, error) {
	recs, err := c.top(ctx, 1)
	if err != nil {
		c.logger.Printf("Failed to fetch high score: %v", err)
		c.mu.Lock()
		hs := c.currentLocked(ctx)
		c.mu.Unlock()
		return &Record{PlayerName: hs.PlayerName, Score: hs.Score}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(recs) == 0 {
		c.setLocked(ctx, HighScore{PlayerName: config.DefaultPlayerName})
		return nil, nil
	}
	top := recs[0]
	c.setLocked(ctx, HighScore{Score: top.Score, PlayerName: top.PlayerName})
	return &top, nil
}

// FetchTop returns up to n records, highest first. A failed fetch returns
// nil and an error wrapping ErrTransport.
func (c *Client) FetchTop(ctx context.Context, n int) ([]Record, error) {
	if n <= 0 {
		n = config.LeaderboardLimit
	}
	recs, err := c.top(ctx, n)
	if err != nil {
		c.logger.Printf("Failed to fetch leaderboard: %v", err)
		return nil, err
	}
	if len(recs) > n {
		recs = recs[:n]
	}
	return recs, nil
}

// Standings fetches the board for display
func (c *Client) Standings(ctx context.Context, n int) Standings {
	recs, err := c.FetchTop(ctx, n)
	return Standings{Records: recs, Err: err}
}

// Submit appends a record for name and score. The record is appended even
// when it is not a new high score.
func (c *Client) Submit(ctx context.Context, name string, score int) SubmitResult {
	name = SanitizeName(name)

	c.mu.Lock()
	isNew := score > c.currentLocked(ctx).Score
	c.mu.Unlock()

	rec := &Record{PlayerName: name, Score: score}
	err := c.append(ctx, rec)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Printf("Failed to submit score %d for %q: %v", score, name, err)
		// Keep the best score locally so it survives until the store is back.
		if score > c.currentLocked(ctx).Score {
			c.setLocked(ctx, HighScore{Score: score, PlayerName: name})
			return SubmitResult{Accepted: false, IsNewRecord: true}
		}
		return SubmitResult{Accepted: false, IsNewRecord: false}
	}

	if isNew && score > c.currentLocked(ctx).Score {
		c.setLocked(ctx, HighScore{Score: score, PlayerName: name})
	}
	return SubmitResult{Accepted: true, IsNewRecord: isNew}
}

// ReportGameOver submits the final score of a game. Games that scored
// nothing are not recorded; the bool reports whether a submission was made.
func (c *Client) ReportGameOver(ctx context.Context, name string, score int) (SubmitResult, bool) {
	if score <= 0 {
		return SubmitResult{}, false
	}
	return c.Submit(ctx, name, score), true
}

func (c *Client) top(ctx context.Context, n int) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	recs, err := c.store.Top(ctx, n)
	if err != nil {
		return nil, transportError("query top records", err)
	}
	return recs, nil
}

func (c *Client) append(ctx context.Context, rec *Record) error {
	ctx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	if err := c.store.Append(ctx, rec); err != nil {
		return transportError("append record", err)
	}
	return nil
}

// currentLocked returns the cached high score, loading the local fallback
// the first time. c.mu must be held.
func (c *Client) currentLocked(ctx context.Context) HighScore {
	if c.known || c.local == nil {
		return c.high
	}
	hs, ok, err := c.local.Load(ctx)
	if err != nil {
		c.logger.Printf("Failed to load local high score: %v", err)
		return c.high
	}
	c.known = true
	if ok {
		c.high = hs
	}
	return c.high
}

// setLocked replaces the cached high score and saves it locally. c.mu must be held.
func (c *Client) setLocked(ctx context.Context, hs HighScore) {
	c.high = hs
	c.known = true
	if c.local == nil {
		return
	}
	if err := c.local.Save(ctx, hs); err != nil {
		c.logger.Printf("Failed to save local high score: %v", err)
	}
}

func transportError(op string, err error) error {
	if errors.Is(err, ErrTransport) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
}
