// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/colorhunt/internal/model"
	"github.com/verte-zerg/colorhunt/internal/stats"
)

const (
	tabOverview = iota
	tabColors
)

const (
	filterName = iota
	filterSince
	filterLast
	filterWindow
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#FFFF55"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Loader builds a report for the given filters.
type Loader func(ctx context.Context, cfg model.StatsConfig) (stats.Report, error)

// Model implements the Bubble Tea stats UI.
type Model struct {
	load Loader
	cfg  model.StatsConfig

	report stats.Report
	errMsg string

	tabs       []string
	activeTab  int
	overview   viewport.Model
	colorTable table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a stats UI model and loads the first report.
func NewModel(load Loader, cfg model.StatsConfig) *Model {
	m := &Model{
		load:     load,
		cfg:      cfg,
		tabs:     []string{"Overview", "Colors"},
		overview: viewport.New(0, 0),
	}
	m.initInputs()
	m.colorTable = buildColorTable(nil, 1)
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.Window = nextWindow(m.cfg.Window)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.Window = prevWindow(m.cfg.Window)
			m.refreshReport()
			return m, nil
		case "/":
			return m, m.startFilter()
		case "g", "home":
			if m.activeTab == tabColors {
				m.colorTable.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabColors {
				m.colorTable.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabColors {
			m.colorTable, cmd = m.colorTable.Update(msg)
		} else {
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Name: "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Window: "),
	}
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[filterName].SetValue(m.cfg.Name)
	if m.cfg.Since != nil {
		m.filterInputs[filterSince].SetValue(m.cfg.Since.Format("2006-01-02"))
	} else {
		m.filterInputs[filterSince].SetValue("")
	}
	if m.cfg.Last > 0 {
		m.filterInputs[filterLast].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[filterLast].SetValue("")
	}
	m.filterInputs[filterWindow].SetValue(strconv.Itoa(m.cfg.Window))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.colorTable.SetWidth(m.width)
	m.colorTable.SetHeight(bodyHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = max(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabColors {
		m.colorTable.Focus()
	} else {
		m.colorTable.Blur()
	}
}

func (m *Model) refreshReport() {
	report, err := m.load(context.Background(), m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.report = stats.Report{}
		m.overview.SetContent("Failed to load stats.")
		m.colorTable.SetRows(nil)
		return
	}
	m.errMsg = ""
	m.report = report
	m.colorTable.SetRows(colorRows(report.ColorAggsWindow))
	m.renderOverview()
}

func (m *Model) renderOverview() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, m.cfg, width))
}

func renderOverview(report stats.Report, cfg model.StatsConfig, width int) string {
	if len(report.Games) == 0 {
		return "No games found."
	}
	var buf bytes.Buffer
	if err := stats.RenderTrends(&buf, report.Games, cfg.Window, stats.TrendWidthFor(width)); err != nil {
		return fmt.Sprintf("Failed to render trends: %v", err)
	}
	if err := stats.RenderHighlights(&buf, report.ColorAggsAll, cfg.Colors); err != nil {
		return fmt.Sprintf("Failed to render highlights: %v", err)
	}
	cards := renderSummaryCards(report.Games, width)
	return strings.TrimRight(cards+"\n\n"+buf.String(), "\n")
}

func renderSummaryCards(games []model.GameAggregate, width int) string {
	var totalSec, totalAcc, totalTPM float64
	best := 0.0
	for i, g := range games {
		sec := float64(g.DurationMs) / 1000
		acc, tpm := stats.GameMetrics(g.Hits, g.Misses, g.DurationMs)
		totalSec += sec
		totalAcc += acc
		totalTPM += tpm
		if i == 0 || sec < best {
			best = sec
		}
	}
	count := float64(len(games))
	cards := []string{
		metricCard("Games", fmt.Sprintf("%d", len(games))),
		metricCard("Best Time", fmt.Sprintf("%.2fs", best)),
		metricCard("Avg Time", fmt.Sprintf("%.2fs", totalSec/count)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", (totalAcc/count)*100)),
		metricCard("Tiles/min", fmt.Sprintf("%.1f", totalTPM/count)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func colorRows(aggs []model.ColorAggregate) []table.Row {
	rows := make([]table.Row, 0, len(aggs))
	for _, agg := range stats.SlowestFirst(aggs) {
		rows = append(rows, table.Row(stats.ColorRow(agg)))
	}
	return rows
}

func buildColorTable(aggs []model.ColorAggregate, height int) table.Model {
	columns := []table.Column{
		{Title: "Color", Width: 14},
		{Title: "Avg Clear (s)", Width: 13},
		{Title: "Per Tile (ms)", Width: 13},
		{Title: "Tiles", Width: 6},
		{Title: "Misses", Width: 6},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(colorRows(aggs)),
		table.WithHeight(max(height, 1)),
	)
	t.SetStyles(colorTableStyles())
	return t
}

func colorTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#FFFF55")).
		Bold(true)
	return styles
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return m.renderTabs() + "\n" + m.renderFilterSummary()
}

func (m *Model) renderFilterSummary() string {
	name := m.cfg.Name
	if name == "" {
		name = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: name=%s  since=%s  last=%s  window=%d", name, since, last, m.cfg.Window)
	return headerStyle.Render(runewidth.Truncate(summary, m.width, "..."))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Settings: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	if m.filterMode {
		lines := []string{"Settings (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return strings.Join(lines, "\n")
	}
	if m.activeTab == tabColors {
		if len(m.report.ColorAggsWindow) == 0 {
			return "No color stats found."
		}
		return m.colorTable.View()
	}
	return m.overview.View()
}

func (m *Model) startFilter() tea.Cmd {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterMode = false
		m.filterError = ""
		m.filterInputs[m.filterIndex].Blur()
		return m, nil
	case "enter":
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterInputs[m.filterIndex].Blur()
		m.refreshReport()
		return m, nil
	case "tab", "down":
		return m, m.setFilterIndex((m.filterIndex + 1) % len(m.filterInputs))
	case "shift+tab", "up":
		return m, m.setFilterIndex((m.filterIndex - 1 + len(m.filterInputs)) % len(m.filterInputs))
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	m.filterInputs[m.filterIndex].Blur()
	m.filterIndex = idx
	return m.filterInputs[idx].Focus()
}

func (m *Model) applyFilter() error {
	cfg := m.cfg
	cfg.Name = strings.TrimSpace(m.filterInputs[filterName].Value())

	cfg.Since = nil
	if since := strings.TrimSpace(m.filterInputs[filterSince].Value()); since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return fmt.Errorf("invalid since date %q", since)
		}
		cfg.Since = &parsed
	}

	cfg.Last = 0
	if last := strings.TrimSpace(m.filterInputs[filterLast].Value()); last != "" {
		n, err := strconv.Atoi(last)
		if err != nil || n < 0 {
			return fmt.Errorf("last must be a number >= 0")
		}
		cfg.Last = n
	}

	window := strings.TrimSpace(m.filterInputs[filterWindow].Value())
	n, err := strconv.Atoi(window)
	if err != nil || n < 1 {
		return fmt.Errorf("window must be a number >= 1")
	}
	cfg.Window = n

	m.cfg = cfg
	return nil
}

func nextWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
