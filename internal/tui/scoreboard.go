package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/colorhunt/internal/ledger"
)

func scoreRows(entries []ledger.Entry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d.", i+1),
			runewidth.Truncate(e.Name, maxNameWidth, "…"),
			ledger.FormatSeconds(e.Seconds) + "s",
		})
	}
	return rows
}

func newScoreTable(entries []ledger.Entry, top int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: maxNameWidth},
		{Title: "Time", Width: 10},
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = lipgloss.NewStyle()
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(scoreRows(entries)),
		table.WithHeight(max(top, 1)+1),
		table.WithFocused(false),
	)
	t.SetStyles(styles)
	return t
}
