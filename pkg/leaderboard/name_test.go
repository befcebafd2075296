package leaderboard

import (
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "ANON"},
		{"   \t ", "ANON"},
		{"  alice ", "alice"},
		{"Ünïcode", "Ünïcode"},
		{strings.Repeat("x", 40), strings.Repeat("x", 24)},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeName(t *testing.T) {
	got := EscapeName(`<img src=x onerror="alert(1)">`)
	if strings.ContainsAny(got, `<>"`) {
		t.Errorf("Markup survived escaping: %s", got)
	}
	if EscapeName("bob") != "bob" {
		t.Error("Plain names should be unchanged")
	}
}

func TestTerminalSafe(t *testing.T) {
	if got := TerminalSafe("evil\x1b[2Jname\n"); got != "evil[2Jname" {
		t.Errorf("Unexpected result %q", got)
	}
}
