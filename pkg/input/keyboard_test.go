package input

import (
	"testing"

	"github.com/eiannone/keyboard"
	"github.com/trytobebee/neon_snake/pkg/game"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   KeyInput
		want game.Direction
	}{
		{KeyInput{Key: keyboard.KeyArrowUp}, game.DirUp},
		{KeyInput{Key: keyboard.KeyArrowDown}, game.DirDown},
		{KeyInput{Key: keyboard.KeyArrowLeft}, game.DirLeft},
		{KeyInput{Key: keyboard.KeyArrowRight}, game.DirRight},
		{KeyInput{Char: 'w'}, game.DirUp},
		{KeyInput{Char: 'S'}, game.DirDown},
		{KeyInput{Char: 'a'}, game.DirLeft},
		{KeyInput{Char: 'D'}, game.DirRight},
	}
	for _, tt := range tests {
		got, ok := ParseDirection(tt.in)
		if !ok || got != tt.want {
			t.Errorf("ParseDirection(%+v) = %s, %v; want %s", tt.in, got, ok, tt.want)
		}
	}

	if _, ok := ParseDirection(KeyInput{Char: 'x'}); ok {
		t.Error("'x' should not be a direction")
	}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		in   KeyInput
		want game.EventKind
	}{
		{KeyInput{Key: keyboard.KeyEnter}, game.EventStart},
		{KeyInput{Char: 'g'}, game.EventStart},
		{KeyInput{Char: 'p'}, game.EventPause},
		{KeyInput{Key: keyboard.KeySpace}, game.EventPause},
		{KeyInput{Char: 'R'}, game.EventReset},
		{KeyInput{Char: 'd'}, game.EventTurn},
	}
	for _, tt := range tests {
		ev, ok := ParseEvent(tt.in)
		if !ok || ev.Kind != tt.want {
			t.Errorf("ParseEvent(%+v) = %+v, %v; want kind %d", tt.in, ev, ok, tt.want)
		}
	}

	if _, ok := ParseEvent(KeyInput{Char: 'q'}); ok {
		t.Error("Quit is handled by the caller, not the session")
	}
	if !IsQuit(KeyInput{Key: keyboard.KeyEsc}) {
		t.Error("Esc should quit")
	}
}
