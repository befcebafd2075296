package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/trytobebee/neon_snake/pkg/leaderboard"
)

func TestLeaderboardViewEscapesNames(t *testing.T) {
	v := newLeaderboardView(leaderboard.Standings{Records: []leaderboard.Record{
		{PlayerName: "<b>eve</b>", Score: 90},
		{PlayerName: "bob", Score: 50},
		{PlayerName: "amy", Score: 40},
		{PlayerName: "cid", Score: 10},
	}})

	if v.Failed || len(v.Entries) != 4 {
		t.Fatalf("unexpected view: %+v", v)
	}
	if got := v.Entries[0].PlayerName; strings.Contains(got, "<") {
		t.Errorf("name not escaped: %q", got)
	}
	if v.Entries[0].Medal != "🥇" || v.Entries[3].Medal != "" {
		t.Errorf("medals = %q, %q", v.Entries[0].Medal, v.Entries[3].Medal)
	}
	if !v.Entries[2].Highlight || v.Entries[3].Highlight {
		t.Error("only the top three rows are highlighted")
	}
	if v.Entries[3].Rank != 4 {
		t.Errorf("rank = %d, want 4", v.Entries[3].Rank)
	}
}

func TestLeaderboardViewFailedVersusEmpty(t *testing.T) {
	failed := newLeaderboardView(leaderboard.Standings{Err: errors.New("offline")})
	if !failed.Failed {
		t.Error("a failed load must be flagged")
	}

	empty := newLeaderboardView(leaderboard.Standings{})
	if empty.Failed || empty.Entries == nil || len(empty.Entries) != 0 {
		t.Errorf("empty board: %+v", empty)
	}
}

func TestGameOverView(t *testing.T) {
	rec := newGameOverView(120, leaderboard.SubmitResult{Accepted: true, IsNewRecord: true}, true)
	if !strings.Contains(rec.OverlayHTML, "NEW WORLD RECORD") {
		t.Errorf("overlay = %q", rec.OverlayHTML)
	}

	skipped := newGameOverView(0, leaderboard.SubmitResult{}, false)
	if skipped.Submitted || skipped.OverlayHTML != "GAME OVER" {
		t.Errorf("zero score view: %+v", skipped)
	}
}

func TestHighScoreViewEscapes(t *testing.T) {
	v := newHighScoreView(leaderboard.HighScore{Score: 5, PlayerName: `a&"b"`})
	if v.PlayerName != "a&amp;&#34;b&#34;" {
		t.Errorf("PlayerName = %q", v.PlayerName)
	}
}
