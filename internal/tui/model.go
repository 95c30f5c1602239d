// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/colorhunt/internal/game"
	"github.com/verte-zerg/colorhunt/internal/grid"
	"github.com/verte-zerg/colorhunt/internal/ledger"
)

const (
	tickInterval = 100 * time.Millisecond
	maxNameWidth = 20
)

type tickMsg time.Time

// Model implements the Bubble Tea game UI.
type Model struct {
	session *game.Session
	ledger  *ledger.Ledger
	log     zerolog.Logger
	top     int

	width  int
	height int

	cursor   grid.Position
	keyboard bool

	nameInput textinput.Model
	nameErr   string

	scores     []ledger.Entry
	scoreTable table.Model
	errMsg     string
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#55FF55")).Bold(true)
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF55")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#F0F0F0")).
			Padding(0, 1)
)

// NewModel constructs a game TUI model.
func NewModel(session *game.Session, l *ledger.Ledger, logger zerolog.Logger, top int) *Model {
	if top <= 0 {
		top = 10
	}
	m := &Model{
		session: session,
		ledger:  l,
		log:     logger,
		top:     top,
	}
	m.nameInput = newNameInput()
	m.scoreTable = newScoreTable(nil, top)
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
		return m, nil
	case tickMsg:
		if m.session.State() == game.Running {
			return m, tick()
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.session.State() {
		case game.AwaitingName:
			return m.updateName(msg)
		case game.Finished:
			return m.updateFinished(msg)
		default:
			return m.updateBoardKeys(msg)
		}
	default:
		return m, nil
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	switch m.session.State() {
	case game.Idle:
		return m, m.click(grid.Position{})
	case game.Running:
		pos, ok := newBoardLayout(m.width).hitTest(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.keyboard = false
		return m, m.click(pos)
	default:
		return m, nil
	}
}

func (m *Model) updateBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		if m.session.State() == game.Idle {
			return m, tea.Quit
		}
		return m, nil
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	case " ", "enter":
		if m.session.State() == game.Running {
			m.keyboard = true
		}
		return m, m.click(m.cursor)
	}
	return m, nil
}

func (m *Model) moveCursor(dRow, dCol int) {
	m.keyboard = true
	next := grid.Position{Row: m.cursor.Row + dRow, Col: m.cursor.Col + dCol}
	if next.Valid() {
		m.cursor = next
	}
}

func (m *Model) click(pos grid.Position) tea.Cmd {
	res := m.session.Click(pos)
	switch res.Outcome {
	case game.Started:
		m.log.Debug().Msg("game started")
		return tick()
	case game.Hit:
		if res.Advanced {
			if target, ok := m.session.Target(); ok {
				m.log.Debug().Str("target", target.Name).Int("tiles", m.session.CellsCompleted()).Msg("color cleared")
			}
		}
		if res.Finished {
			m.log.Info().Dur("total", res.Total).Int("misses", m.session.Misses()).Msg("board cleared")
			return m.enterNameEntry()
		}
	}
	return nil
}

func newNameInput() textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "your name"
	input.CharLimit = maxNameWidth * 2
	input.Width = maxNameWidth
	return input
}

func (m *Model) enterNameEntry() tea.Cmd {
	m.nameInput.SetValue("")
	m.nameErr = ""
	return m.nameInput.Focus()
}

// updateName runs the modal name prompt. Only Enter with a non-blank name
// leaves it; Ctrl+C is handled by Update.
func (m *Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return m, m.submitName()
	}
	prev := m.nameInput.Value()
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	if runewidth.StringWidth(m.nameInput.Value()) > maxNameWidth {
		m.nameInput.SetValue(prev)
		m.nameInput.CursorEnd()
	}
	m.nameErr = ""
	return m, cmd
}

func (m *Model) submitName() tea.Cmd {
	err := m.session.SubmitName(context.Background(), m.nameInput.Value())
	if errors.Is(err, game.ErrEmptyName) {
		m.nameErr = "Name must not be empty."
		return nil
	}
	m.nameInput.Blur()
	m.errMsg = ""
	if err != nil {
		m.log.Error().Err(err).Str("ledger", m.ledger.Path()).Msg("failed to persist result")
		m.errMsg = err.Error()
	}
	m.loadScores()
	return nil
}

func (m *Model) loadScores() {
	scores, err := m.ledger.Top(m.top)
	if err != nil {
		m.log.Error().Err(err).Msg("failed to load scores")
		if m.errMsg == "" {
			m.errMsg = err.Error()
		}
		scores = ledger.TopN(m.session.Result().Entries, m.top)
	}
	m.scores = scores
	m.scoreTable = newScoreTable(scores, m.top)
}

func (m *Model) updateFinished(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.session.Restart() {
			m.cursor = grid.Position{}
			m.keyboard = false
			m.errMsg = ""
			m.scores = nil
		}
		return m, nil
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.session.State() {
	case game.Idle:
		body = m.viewIdle()
	case game.Running:
		body = m.viewBoard()
	case game.AwaitingName:
		body = m.viewNameEntry()
	case game.Finished:
		body = m.viewFinished()
	}
	return body
}

func (m *Model) viewIdle() string {
	lines := []string{
		titleStyle.Render("Color Hunt: click to start"),
		"",
		textStyle.Render("Find every tile of the target color shown below the board."),
		accentStyle.Render("Completed tiles turn YELLOW."),
		"",
		mutedStyle.Render("mouse or arrows + space · q to quit"),
	}
	return m.center(strings.Join(lines, "\n"))
}

func (m *Model) viewBoard() string {
	layout := newBoardLayout(m.width)
	pad := strings.Repeat(" ", layout.left)
	var b strings.Builder
	b.WriteString(pad + m.renderHeader() + "\n\n")
	b.WriteString(renderBoard(m.session.Grid(), layout, m.cursor, m.keyboard))
	b.WriteString("\n\n")
	if target, ok := m.session.Target(); ok {
		b.WriteString(pad + renderBanner(target, boardWidth))
	}
	return b.String()
}

func (m *Model) renderHeader() string {
	return mutedStyle.Render(fmt.Sprintf("Time: %.2fs | Tiles: %d/%d | Misses: %d",
		m.session.Elapsed().Seconds(), m.session.CellsCompleted(), grid.Cells, m.session.Misses()))
}

func (m *Model) viewNameEntry() string {
	lines := []string{
		titleStyle.Render("Board cleared!"),
		textStyle.Render(fmt.Sprintf("Your time: %s seconds", ledger.FormatSeconds(m.session.Result().Seconds()))),
		"",
		textStyle.Render("Enter your name:"),
		promptStyle.Width(maxNameWidth + 4).Render(m.nameInput.View()),
	}
	if m.nameErr != "" {
		lines = append(lines, errorStyle.Render(m.nameErr))
	}
	return m.center(strings.Join(lines, "\n"))
}

func (m *Model) viewFinished() string {
	res := m.session.Result()
	lines := []string{
		accentStyle.Render("GAME COMPLETE!"),
		textStyle.Render(fmt.Sprintf("%s: %s seconds", res.Name, ledger.FormatSeconds(res.Seconds()))),
	}
	if res.Rank > 0 {
		lines = append(lines, textStyle.Render(fmt.Sprintf("Rank #%d", res.Rank)))
	}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	lines = append(lines, "", titleStyle.Render(fmt.Sprintf("Scoreboard (Top %d)", m.top)))
	if len(m.scores) == 0 {
		lines = append(lines, mutedStyle.Render("No scores yet."))
	} else {
		lines = append(lines, m.scoreTable.View())
	}
	lines = append(lines, "", mutedStyle.Render("enter to play again · q to quit"))
	return m.center(strings.Join(lines, "\n"))
}

func (m *Model) center(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
