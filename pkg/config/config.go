package config

import "time"

// Game board dimensions
const (
	GridSize    = 20 // Cells per side of the square board
	MinGridSize = 5
	MaxGridSize = 60
)

// Simulation settings
const (
	TickInterval    = 100 * time.Millisecond // One snake move per tick
	FoodReward      = 10                     // Points per food eaten
	MaxFoodAttempts = 1000                   // Random draws before scanning for a free cell
)

// Leaderboard settings
const (
	LeaderboardLimit  = 10 // Entries shown on the board
	MaxLeaderboardAPI = 100
	DefaultPlayerName = "ANON"
	MaxNameLength     = 24
	RequestTimeout    = 5 * time.Second // Remote store calls
)

// Local fallback keys
const (
	KeyHighScore       = "snakeHighScore"
	KeyHighScorePlayer = "snakeHighScorePlayer"
)

// Storage and server defaults
const (
	DataDir          = "data"
	LeaderboardDB    = "leaderboard.db"
	LocalCacheDB     = "local.db"
	ServerAddr       = ":8080"
	StaticDir        = "web/static"
	ShutdownTimeout  = 5 * time.Second
	WriteWaitTimeout = 2 * time.Second
)

// Emoji characters for rendering
const (
	CharEmpty = "  " // Two spaces to match emoji width
	CharWall  = "⬜"
	CharHead  = "🟢"
	CharBody  = "🟩"
	CharFood  = "🔴"
	CharCrash = "💥"
)
