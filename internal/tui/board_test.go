package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/colorhunt/internal/grid"
)

func tileOrigin(l boardLayout, pos grid.Position) (int, int) {
	x := l.left + colGap + pos.Col*(tileWidth+colGap)
	y := l.top + pos.Row*tileHeight
	return x, y
}

func TestHitTestMapsEveryTileCell(t *testing.T) {
	l := newBoardLayout(100)
	for row := 0; row < grid.Size; row++ {
		for col := 0; col < grid.Size; col++ {
			want := grid.Position{Row: row, Col: col}
			x0, y0 := tileOrigin(l, want)
			for dx := 0; dx < tileWidth; dx++ {
				for dy := 0; dy < tileHeight; dy++ {
					got, ok := l.hitTest(x0+dx, y0+dy)
					if !ok || got != want {
						t.Fatalf("cell (%d,%d): got %+v ok=%v, want %+v", x0+dx, y0+dy, got, ok, want)
					}
				}
			}
		}
	}
}

func TestHitTestRejectsGapsAndOutside(t *testing.T) {
	l := newBoardLayout(100)
	cases := []struct {
		name string
		x, y int
	}{
		{name: "left margin", x: l.left, y: l.top},
		{name: "column gap", x: l.left + colGap + tileWidth, y: l.top},
		{name: "above board", x: l.left + colGap, y: l.top - 1},
		{name: "below board", x: l.left + colGap, y: l.top + boardHeight},
		{name: "right of board", x: l.left + boardWidth, y: l.top},
		{name: "far left", x: -5, y: l.top},
	}
	for _, tc := range cases {
		if pos, ok := l.hitTest(tc.x, tc.y); ok {
			t.Fatalf("%s: expected miss, got %+v", tc.name, pos)
		}
	}
}

func TestBoardLayoutCentersOnWideScreens(t *testing.T) {
	if l := newBoardLayout(boardWidth + 10); l.left != 5 {
		t.Fatalf("expected left offset 5, got %d", l.left)
	}
	if l := newBoardLayout(10); l.left != 0 {
		t.Fatalf("expected no offset on narrow screens, got %d", l.left)
	}
}

func TestRenderBoardHasOneLinePerTileRow(t *testing.T) {
	g := grid.New(grid.NewSource(3))
	out := renderBoard(g, newBoardLayout(0), grid.Position{}, true)
	lines := strings.Split(out, "\n")
	if len(lines) != boardHeight {
		t.Fatalf("expected %d lines, got %d", boardHeight, len(lines))
	}
	if !strings.Contains(lines[0], "[ ]") {
		t.Fatalf("expected cursor marker on first line")
	}
}
