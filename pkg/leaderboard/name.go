package leaderboard

import (
	"html"
	"strings"
	"unicode"

	"github.com/trytobebee/neon_snake/pkg/config"
)

// SanitizeName trims the player name, caps its length and falls back to
// the anonymous name when nothing is left.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return config.DefaultPlayerName
	}
	runes := []rune(name)
	if len(runes) > config.MaxNameLength {
		name = strings.TrimSpace(string(runes[:config.MaxNameLength]))
	}
	return name
}

// EscapeName makes an untrusted name safe to place inside HTML
func EscapeName(name string) string {
	return html.EscapeString(name)
}

// TerminalSafe drops control characters so a name cannot emit escape sequences
func TerminalSafe(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
}
