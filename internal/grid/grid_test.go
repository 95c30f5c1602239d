package grid

import (
	"testing"

	"github.com/verte-zerg/colorhunt/internal/palette"
)

func TestNewProducesUncompletedBoard(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g := New(NewSource(seed))
		tiles := g.Tiles()
		if len(tiles) != Cells {
			t.Fatalf("seed %d: expected %d tiles, got %d", seed, Cells, len(tiles))
		}
		for i, tile := range tiles {
			if tile.Completed {
				t.Fatalf("seed %d: tile %d starts completed", seed, i)
			}
			want := Position{Row: i / Size, Col: i % Size}
			if tile.Position != want {
				t.Fatalf("seed %d: tile %d at %+v, want %+v", seed, i, tile.Position, want)
			}
			if _, ok := palette.NameOf(tile.Color); !ok {
				t.Fatalf("seed %d: tile color %v not in palette", seed, tile.Color)
			}
		}
	}
}

func TestMarkCompletedIsIdempotent(t *testing.T) {
	g := New(NewSource(7))
	pos := Position{Row: 3, Col: 4}
	if !g.MarkCompleted(pos) {
		t.Fatalf("first mark should be a hit")
	}
	if g.MarkCompleted(pos) {
		t.Fatalf("second mark should not count")
	}
	tile, ok := g.Tile(pos)
	if !ok || !tile.Completed {
		t.Fatalf("expected tile to be completed")
	}
	if got := g.CompletedCount(); got != 1 {
		t.Fatalf("expected 1 completed tile, got %d", got)
	}
}

func TestMarkCompletedOutOfRange(t *testing.T) {
	g := New(NewSource(7))
	for _, pos := range []Position{{Row: -1, Col: 0}, {Row: 0, Col: 8}, {Row: 8, Col: 8}} {
		if g.MarkCompleted(pos) {
			t.Fatalf("expected %+v to be rejected", pos)
		}
		if _, ok := g.Tile(pos); ok {
			t.Fatalf("expected no tile at %+v", pos)
		}
	}
}

func TestColorCounts(t *testing.T) {
	colors := palette.Colors()
	layout := make([]palette.Color, Cells)
	for i := range layout {
		// Only the first four palette colors appear.
		layout[i] = colors[i%4]
	}
	g, err := FromColors(layout)
	if err != nil {
		t.Fatalf("from colors: %v", err)
	}
	black := colors[0]
	if got := g.CountForColor(black); got != 16 {
		t.Fatalf("expected 16 black tiles, got %d", got)
	}
	if g.IsColorCleared(black) {
		t.Fatalf("black should not be cleared yet")
	}
	for i := 0; i < Cells; i += 4 {
		g.MarkCompleted(Position{Row: i / Size, Col: i % Size})
		if g.CountCompletedForColor(black) > g.CountForColor(black) {
			t.Fatalf("completed count exceeds total")
		}
	}
	if !g.IsColorCleared(black) {
		t.Fatalf("black should be cleared")
	}
	white := colors[len(colors)-1]
	if g.CountForColor(white) != 0 || !g.IsColorCleared(white) {
		t.Fatalf("absent color should be cleared without any click")
	}
}

func TestFromColorsRejectsWrongSize(t *testing.T) {
	if _, err := FromColors(palette.Colors()); err == nil {
		t.Fatalf("expected error for short layout")
	}
}
