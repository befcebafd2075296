package main

import (
	"github.com/trytobebee/neon_snake/pkg/game"
	"github.com/trytobebee/neon_snake/pkg/leaderboard"
)

// ServerMessage is every message pushed to the browser
type ServerMessage struct {
	Type        string           `json:"type"`
	Config      *game.GameConfig `json:"config,omitempty"`
	State       *game.Snapshot   `json:"state,omitempty"`
	HighScore   *HighScoreView   `json:"highScore,omitempty"`
	Leaderboard *LeaderboardView `json:"leaderboard,omitempty"`
	GameOver    *GameOverView    `json:"gameOver,omitempty"`
}

// ClientMessage is a browser command
type ClientMessage struct {
	Action string `json:"action"`
	Name   string `json:"name,omitempty"`
}

// HighScoreView carries the high score with the name already escaped for HTML
type HighScoreView struct {
	Score      int    `json:"score"`
	PlayerName string `json:"playerName"`
}

// EntryView is one leaderboard row, name escaped for HTML
type EntryView struct {
	Rank       int    `json:"rank"`
	Medal      string `json:"medal"`
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
	Highlight  bool   `json:"highlight"`
}

// LeaderboardView separates a failed load from an empty board
type LeaderboardView struct {
	Entries []EntryView `json:"entries"`
	Failed  bool        `json:"failed"`
	Message string      `json:"message,omitempty"`
}

// GameOverView reports the submission for the overlay
type GameOverView struct {
	Score       int    `json:"score"`
	Submitted   bool   `json:"submitted"`
	Accepted    bool   `json:"accepted"`
	IsNewRecord bool   `json:"isNewRecord"`
	OverlayHTML string `json:"overlayHtml"`
}

func newHighScoreView(hs leaderboard.HighScore) *HighScoreView {
	return &HighScoreView{Score: hs.Score, PlayerName: leaderboard.EscapeName(hs.PlayerName)}
}

func newLeaderboardView(st leaderboard.Standings) *LeaderboardView {
	if st.Err != nil {
		return &LeaderboardView{Failed: true, Message: "Failed to load leaderboard"}
	}
	if len(st.Records) == 0 {
		return &LeaderboardView{Entries: []EntryView{}, Message: "No scores yet. Be the first!"}
	}
	entries := make([]EntryView, len(st.Records))
	for i, rec := range st.Records {
		entries[i] = EntryView{
			Rank:       i + 1,
			Medal:      medal(i),
			PlayerName: leaderboard.EscapeName(rec.PlayerName),
			Score:      rec.Score,
			Highlight:  i < 3,
		}
	}
	return &LeaderboardView{Entries: entries}
}

func newGameOverView(score int, res leaderboard.SubmitResult, submitted bool) *GameOverView {
	overlay := "GAME OVER"
	if submitted && res.IsNewRecord {
		overlay = `🏆 NEW WORLD RECORD! 🏆<br><span class="text-2xl">GAME OVER</span>`
	}
	return &GameOverView{
		Score:       score,
		Submitted:   submitted,
		Accepted:    res.Accepted,
		IsNewRecord: res.IsNewRecord,
		OverlayHTML: overlay,
	}
}

func medal(i int) string {
	switch i {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return ""
	}
}
