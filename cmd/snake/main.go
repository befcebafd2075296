package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/trytobebee/neon_snake/pkg/config"
	"github.com/trytobebee/neon_snake/pkg/game"
	"github.com/trytobebee/neon_snake/pkg/input"
	"github.com/trytobebee/neon_snake/pkg/leaderboard"
	"github.com/trytobebee/neon_snake/pkg/renderer"
)

func main() {
	size := flag.Int("size", config.GridSize, "board size in cells")
	name := flag.String("name", "", "player name for the leaderboard")
	server := flag.String("server", "", "leaderboard API URL (empty uses the local database)")
	dataDir := flag.String("data", config.DataDir, "directory for local databases and logs")
	flag.Parse()

	if *size < config.MinGridSize || *size > config.MaxGridSize {
		log.Fatalf("size must be between %d and %d", config.MinGridSize, config.MaxGridSize)
	}
	if err := os.MkdirAll(*dataDir, 0755); err != nil {
		log.Fatal("Failed to create data directory:", err)
	}

	// The terminal belongs to the board; logs go to a file.
	logFile, err := os.OpenFile(filepath.Join(*dataDir, "snake.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal("Failed to open log file:", err)
	}
	defer logFile.Close()
	logger := log.New(logFile, "[SNAKE] ", log.LstdFlags)

	store, closeStore := openStore(*server, *dataDir)
	defer closeStore()
	local, err := leaderboard.NewLocalCache(filepath.Join(*dataDir, config.LocalCacheDB))
	if err != nil {
		log.Fatal("Failed to open local cache:", err)
	}
	defer local.Close()

	client := leaderboard.NewClient(store, local, log.New(logFile, "[LEADERBOARD] ", log.LstdFlags))
	playerName := leaderboard.SanitizeName(*name)

	// Initialize input handler
	inputHandler := input.NewKeyboardHandler()
	if err := inputHandler.Start(); err != nil {
		fmt.Println("Error opening keyboard:", err)
		return
	}
	defer inputHandler.Stop()

	render := renderer.NewTerminalRenderer(*size, os.Stdout)
	render.SetPlayerName(playerName)
	render.HideCursor()
	defer render.ShowCursor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go refreshLeaderboard(ctx, client, render)

	onGameOver := func(name string, score int) {
		res, submitted := client.ReportGameOver(ctx, name, score)
		if submitted && res.IsNewRecord {
			render.SetBanner("🏆 NEW WORLD RECORD! 🏆")
		}
		render.SetHighScore(client.HighScore(ctx))
		render.SetStandings(client.Standings(ctx, config.LeaderboardLimit))
	}

	session := game.NewSession(
		game.NewGame(*size, nil),
		game.NewScheduler(config.TickInterval, nil),
		render,
		onGameOver,
		logger,
	)

	session.Dispatch(game.Rename(playerName))

	events := make(chan game.Event)
	done := make(chan error, 1)
	go func() { done <- session.Run(ctx, events) }()

	inputChan := inputHandler.GetInputChan()
	for {
		select {
		case err := <-done:
			if err != nil && err != context.Canceled {
				logger.Printf("Session stopped: %v", err)
			}
			return
		case key := <-inputChan:
			if input.IsQuit(key) {
				cancel()
				<-done
				fmt.Println("\n  Thanks for playing! 👋")
				return
			}
			if ev, ok := input.ParseEvent(key); ok {
				events <- ev
			}
		}
	}
}

// openStore picks the remote API when a URL is given, otherwise a local SQLite store
func openStore(server, dataDir string) (leaderboard.Store, func()) {
	if server != "" {
		return leaderboard.NewHTTPStore(server, nil), func() {}
	}
	store, err := leaderboard.NewSQLiteStore(filepath.Join(dataDir, config.LeaderboardDB))
	if err != nil {
		log.Fatal("Failed to open leaderboard database:", err)
	}
	return store, func() { store.Close() }
}

func refreshLeaderboard(ctx context.Context, client *leaderboard.Client, render *renderer.TerminalRenderer) {
	// Errors are logged by the client; the cached or default score is still shown.
	client.FetchTopRecord(ctx)
	render.SetHighScore(client.HighScore(ctx))
	render.SetStandings(client.Standings(ctx, config.LeaderboardLimit))
}
