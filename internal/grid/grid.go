// Package grid holds the 8x8 board of colored tiles.
package grid

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/colorhunt/internal/palette"
)

// Size is the number of rows and columns.
const Size = 8

// Cells is the number of tiles on a board.
const Cells = Size * Size

// Position addresses a tile by row and column.
type Position struct {
	Row int
	Col int
}

// Valid reports whether the position lies on the board.
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Tile is one board cell. Only Completed changes after creation.
type Tile struct {
	Color     palette.Color
	Completed bool
	Position  Position
}

// Grid is a fixed 8x8 matrix of tiles.
type Grid struct {
	tiles [Size][Size]Tile
}

// NewSource returns a random source seeded with seed, or the current time when seed is 0.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// New fills a board with colors drawn uniformly, with replacement, from the palette.
func New(rnd *rand.Rand) *Grid {
	colors := palette.Colors()
	g := &Grid{}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			g.tiles[row][col] = Tile{
				Color:    colors[rnd.Intn(len(colors))],
				Position: Position{Row: row, Col: col},
			}
		}
	}
	return g
}

// FromColors builds a board from an explicit row-major layout of 64 colors.
func FromColors(colors []palette.Color) (*Grid, error) {
	if len(colors) != Cells {
		return nil, fmt.Errorf("expected %d colors, got %d", Cells, len(colors))
	}
	g := &Grid{}
	for i, c := range colors {
		row, col := i/Size, i%Size
		g.tiles[row][col] = Tile{Color: c, Position: Position{Row: row, Col: col}}
	}
	return g, nil
}

// Tile returns the tile at pos.
func (g *Grid) Tile(pos Position) (Tile, bool) {
	if !pos.Valid() {
		return Tile{}, false
	}
	return g.tiles[pos.Row][pos.Col], true
}

// Tiles returns all tiles in row-major order.
func (g *Grid) Tiles() []Tile {
	out := make([]Tile, 0, Cells)
	for row := 0; row < Size; row++ {
		out = append(out, g.tiles[row][:]...)
	}
	return out
}

// MarkCompleted completes the tile at pos. It returns false when pos is off the
// board or the tile was already completed.
func (g *Grid) MarkCompleted(pos Position) bool {
	if !pos.Valid() {
		return false
	}
	tile := &g.tiles[pos.Row][pos.Col]
	if tile.Completed {
		return false
	}
	tile.Completed = true
	return true
}

// CountForColor counts tiles of color c regardless of completion.
func (g *Grid) CountForColor(c palette.Color) int {
	total, _ := g.counts(c)
	return total
}

// CountCompletedForColor counts completed tiles of color c.
func (g *Grid) CountCompletedForColor(c palette.Color) int {
	_, done := g.counts(c)
	return done
}

// IsColorCleared reports whether every tile of color c is completed.
// A color absent from the board is cleared.
func (g *Grid) IsColorCleared(c palette.Color) bool {
	total, done := g.counts(c)
	return done == total
}

// CompletedCount counts completed tiles on the board.
func (g *Grid) CompletedCount() int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if g.tiles[row][col].Completed {
				n++
			}
		}
	}
	return n
}

func (g *Grid) counts(c palette.Color) (total, done int) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			tile := g.tiles[row][col]
			if tile.Color != c {
				continue
			}
			total++
			if tile.Completed {
				done++
			}
		}
	}
	return total, done
}
