package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/colorhunt/internal/grid"
	"github.com/verte-zerg/colorhunt/internal/palette"
)

const (
	tileWidth  = 5
	tileHeight = 2
	colGap     = 1
	boardTop   = 2

	boardWidth  = grid.Size*tileWidth + (grid.Size+1)*colGap
	boardHeight = grid.Size * tileHeight
)

// boardLayout places the board on screen and maps terminal cells back to tiles.
type boardLayout struct {
	left int
	top  int
}

func newBoardLayout(screenWidth int) boardLayout {
	left := 0
	if screenWidth > boardWidth {
		left = (screenWidth - boardWidth) / 2
	}
	return boardLayout{left: left, top: boardTop}
}

// hitTest returns the tile under the terminal cell (x, y). Column gaps and
// cells outside the board hit nothing.
func (l boardLayout) hitTest(x, y int) (grid.Position, bool) {
	col, ok := axisIndex(x-l.left, tileWidth, colGap)
	if !ok {
		return grid.Position{}, false
	}
	row, ok := axisIndex(y-l.top, tileHeight, 0)
	if !ok {
		return grid.Position{}, false
	}
	return grid.Position{Row: row, Col: col}, true
}

func axisIndex(offset, size, gap int) (int, bool) {
	offset -= gap
	if offset < 0 {
		return 0, false
	}
	stride := size + gap
	idx := offset / stride
	if idx >= grid.Size || offset%stride >= size {
		return 0, false
	}
	return idx, true
}

func tileStyle(c palette.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex()))
}

// renderBoard draws every tile; completed tiles use the highlight color.
func renderBoard(g *grid.Grid, l boardLayout, cursor grid.Position, showCursor bool) string {
	pad := strings.Repeat(" ", l.left)
	gap := strings.Repeat(" ", colGap)
	var b strings.Builder
	for row := 0; row < grid.Size; row++ {
		for line := 0; line < tileHeight; line++ {
			b.WriteString(pad)
			b.WriteString(gap)
			for col := 0; col < grid.Size; col++ {
				pos := grid.Position{Row: row, Col: col}
				tile, _ := g.Tile(pos)
				color := tile.Color
				if tile.Completed {
					color = palette.Highlight
				}
				style := tileStyle(color)
				cell := strings.Repeat(" ", tileWidth)
				if showCursor && pos == cursor && line == 0 {
					style = style.Foreground(contrastColor(color)).Bold(true)
					cell = cursorCell()
				}
				b.WriteString(style.Render(cell))
				b.WriteString(gap)
			}
			b.WriteByte('\n')
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func cursorCell() string {
	left := (tileWidth - 3) / 2
	return strings.Repeat(" ", left) + "[ ]" + strings.Repeat(" ", tileWidth-3-left)
}

func contrastColor(c palette.Color) lipgloss.Color {
	if c.IsDark() {
		return lipgloss.Color("#FFFFFF")
	}
	return lipgloss.Color("#000000")
}

// renderBanner draws the target color bar with readable text.
func renderBanner(target palette.Entry, width int) string {
	if width < boardWidth {
		width = boardWidth
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(target.Color.Hex())).
		Foreground(contrastColor(target.Color)).
		Bold(true).
		Width(width).
		Padding(0, 1).
		Render("Target: " + target.Name)
}
