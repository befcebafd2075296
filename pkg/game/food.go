package game

import (
	"errors"

	"github.com/trytobebee/neon_snake/pkg/config"
)

// ErrGridExhausted is returned when the snake covers every cell
var ErrGridExhausted = errors.New("no free cell for food")

// placeFood picks a random cell not covered by the snake. Random draws are
// capped; after that the board is scanned row by row for the first free cell.
func (g *Game) placeFood() (Point, error) {
	if len(g.Snake) >= g.Size*g.Size {
		return Point{}, ErrGridExhausted
	}

	for attempts := 0; attempts < config.MaxFoodAttempts; attempts++ {
		pos := Point{
			X: g.rng.Intn(g.Size),
			Y: g.rng.Intn(g.Size),
		}
		if !g.occupied(pos) {
			return pos, nil
		}
	}

	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			pos := Point{X: x, Y: y}
			if !g.occupied(pos) {
				return pos, nil
			}
		}
	}
	return Point{}, ErrGridExhausted
}
