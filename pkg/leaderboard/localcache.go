package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/trytobebee/neon_snake/pkg/config"
)

// LocalCache implements Fallback as two keys in a SQLite key-value table
type LocalCache struct {
	db *sql.DB
}

// NewLocalCache opens the local key-value database at path
func NewLocalCache(path string) (*LocalCache, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return &LocalCache{db: db}, nil
}

// Close closes the database connection
func (c *LocalCache) Close() error {
	return c.db.Close()
}

// Load reads the saved high score. The bool is false when nothing was saved.
func (c *LocalCache) Load(ctx context.Context) (HighScore, bool, error) {
	raw, ok, err := c.get(ctx, config.KeyHighScore)
	if err != nil || !ok {
		return HighScore{}, false, err
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		return HighScore{}, false, fmt.Errorf("bad %s value %q: %w", config.KeyHighScore, raw, err)
	}

	name, ok, err := c.get(ctx, config.KeyHighScorePlayer)
	if err != nil {
		return HighScore{}, false, err
	}
	if !ok || name == "" {
		name = config.DefaultPlayerName
	}
	return HighScore{Score: score, PlayerName: name}, true, nil
}

// Save writes both keys in one transaction
func (c *LocalCache) Save(ctx context.Context, hs HighScore) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.ExecContext(ctx, upsert, config.KeyHighScore, strconv.Itoa(hs.Score)); err != nil {
		return fmt.Errorf("failed to save %s: %w", config.KeyHighScore, err)
	}
	if _, err := tx.ExecContext(ctx, upsert, config.KeyHighScorePlayer, hs.PlayerName); err != nil {
		return fmt.Errorf("failed to save %s: %w", config.KeyHighScorePlayer, err)
	}
	return tx.Commit()
}

func (c *LocalCache) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}
