// Package game drives one playthrough: it owns the board and the target
// sequence, keeps time, and hands the finished result to the score ledger.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/colorhunt/internal/grid"
	"github.com/verte-zerg/colorhunt/internal/ledger"
	"github.com/verte-zerg/colorhunt/internal/model"
	"github.com/verte-zerg/colorhunt/internal/palette"
)

// State is the phase of a session.
type State int

const (
	// Idle waits for the first click.
	Idle State = iota
	// Running accepts clicks on the board.
	Running
	// AwaitingName blocks the board until the player submits a name.
	AwaitingName
	// Finished holds the result until a restart.
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case AwaitingName:
		return "awaiting-name"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome classifies a click.
type Outcome int

const (
	// Ignored clicks change nothing.
	Ignored Outcome = iota
	// Started is the click that starts the timer.
	Started
	// Hit completed a tile of the target color.
	Hit
	// Miss landed on a tile of another color.
	Miss
)

var (
	// ErrEmptyName is returned when the submitted name is blank.
	ErrEmptyName = ledger.ErrEmptyName
	// ErrNotAwaitingName is returned when a name is submitted outside name entry.
	ErrNotAwaitingName = errors.New("session is not waiting for a name")
)

// ClickResult describes what a click did.
type ClickResult struct {
	Outcome  Outcome
	Advanced bool
	Finished bool
	Total    time.Duration
}

// Scorer appends finished games to the ranked ledger.
type Scorer interface {
	Append(name string, seconds float64) ([]ledger.Entry, error)
}

// Recorder stores finished games in the play history.
type Recorder interface {
	InsertGame(ctx context.Context, record model.GameRecord) error
}

// Options configures a session. Zero values pick sensible defaults.
type Options struct {
	Now      func() time.Time
	Rand     *rand.Rand
	NewGrid  func(rnd *rand.Rand) *grid.Grid
	Ledger   Scorer
	Recorder Recorder
}

// Result is the outcome of a finished game.
type Result struct {
	Name    string
	Total   time.Duration
	Rank    int
	Entries []ledger.Entry
}

// Seconds returns the total time in seconds.
func (r Result) Seconds() float64 {
	return r.Total.Seconds()
}

type colorSplit struct {
	tiles     int
	misses    int
	clearedAt time.Time
}

// Session is a single playthrough. It is not safe for concurrent use.
type Session struct {
	opts Options

	grid     *grid.Grid
	sequence *palette.Sequence

	state          State
	startedAt      time.Time
	endedAt        time.Time
	cellsCompleted int
	misses         int
	splits         []colorSplit

	result Result
}

// New constructs a session in the Idle state.
func New(opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = grid.NewSource(0)
	}
	if opts.NewGrid == nil {
		opts.NewGrid = grid.New
	}
	s := &Session{opts: opts}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.grid = s.opts.NewGrid(s.opts.Rand)
	s.sequence = palette.NewSequence()
	s.state = Idle
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
	s.cellsCompleted = 0
	s.misses = 0
	s.splits = make([]colorSplit, palette.Size)
	s.result = Result{}
	s.skipCleared()
}

// skipCleared advances past targets that are already cleared, which includes
// colors absent from the board.
func (s *Session) skipCleared() bool {
	advanced := false
	for {
		target, ok := s.sequence.Current()
		if !ok || !s.grid.IsColorCleared(target.Color) {
			return advanced
		}
		s.splits[s.sequence.Index()].clearedAt = s.opts.Now()
		s.sequence.Advance()
		advanced = true
	}
}

// Click applies a click on the tile at pos.
func (s *Session) Click(pos grid.Position) ClickResult {
	switch s.state {
	case Idle:
		s.state = Running
		s.startedAt = s.opts.Now()
		return ClickResult{Outcome: Started}
	case Running:
		return s.clickRunning(pos)
	default:
		return ClickResult{Outcome: Ignored}
	}
}

func (s *Session) clickRunning(pos grid.Position) ClickResult {
	tile, ok := s.grid.Tile(pos)
	if !ok || tile.Completed {
		return ClickResult{Outcome: Ignored}
	}
	target, ok := s.sequence.Current()
	if !ok {
		return ClickResult{Outcome: Ignored}
	}
	idx := s.sequence.Index()
	if tile.Color != target.Color {
		s.misses++
		s.splits[idx].misses++
		return ClickResult{Outcome: Miss}
	}
	if !s.grid.MarkCompleted(pos) {
		return ClickResult{Outcome: Ignored}
	}
	s.cellsCompleted++
	s.splits[idx].tiles++

	res := ClickResult{Outcome: Hit}
	if !s.grid.IsColorCleared(target.Color) {
		return res
	}
	s.splits[idx].clearedAt = s.opts.Now()
	s.sequence.Advance()
	s.skipCleared()
	res.Advanced = true

	if s.sequence.HasNext() {
		return res
	}
	s.endedAt = s.opts.Now()
	s.state = AwaitingName
	s.result.Total = s.endedAt.Sub(s.startedAt)
	res.Finished = true
	res.Total = s.result.Total
	return res
}

// SubmitName finishes name entry and persists the result. The session is
// Finished even when persistence fails; the error is returned for reporting.
func (s *Session) SubmitName(ctx context.Context, name string) error {
	if s.state != AwaitingName {
		return ErrNotAwaitingName
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.state = Finished
	s.result.Name = name

	var errs []error
	if s.opts.Ledger != nil {
		entries, err := s.opts.Ledger.Append(name, s.result.Seconds())
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to save score: %w", err))
		}
		if entries != nil {
			s.result.Entries = entries
			s.result.Rank = ledger.Rank(entries, s.result.Seconds())
		}
	}
	if s.opts.Recorder != nil {
		if err := s.opts.Recorder.InsertGame(ctx, s.record()); err != nil {
			errs = append(errs, fmt.Errorf("failed to record game: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Restart discards the board and sequence and returns to Idle.
func (s *Session) Restart() bool {
	if s.state != Finished {
		return false
	}
	s.reset()
	return true
}

func (s *Session) record() model.GameRecord {
	rec := model.GameRecord{
		ID:         uuid.New().String(),
		Name:       s.result.Name,
		StartedAt:  s.startedAt,
		EndedAt:    s.endedAt,
		DurationMs: s.result.Total.Milliseconds(),
		Hits:       s.cellsCompleted,
		Misses:     s.misses,
	}
	prev := s.startedAt
	for i, entry := range palette.Palette() {
		split := s.splits[i]
		clearMs := int64(0)
		if !split.clearedAt.IsZero() && split.clearedAt.After(prev) {
			clearMs = split.clearedAt.Sub(prev).Milliseconds()
			prev = split.clearedAt
		}
		rec.Colors = append(rec.Colors, model.ColorSplit{
			Color:   entry.Name,
			Tiles:   split.tiles,
			Misses:  split.misses,
			ClearMs: clearMs,
		})
	}
	return rec
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}

// Grid exposes the board for rendering.
func (s *Session) Grid() *grid.Grid {
	return s.grid
}

// Sequence exposes the target cursor for rendering.
func (s *Session) Sequence() *palette.Sequence {
	return s.sequence
}

// Target returns the active target color.
func (s *Session) Target() (palette.Entry, bool) {
	return s.sequence.Current()
}

// CellsCompleted returns the number of completed tiles.
func (s *Session) CellsCompleted() int {
	return s.cellsCompleted
}

// Misses returns the number of wrong-color clicks.
func (s *Session) Misses() int {
	return s.misses
}

// Elapsed returns the time on the clock.
func (s *Session) Elapsed() time.Duration {
	switch s.state {
	case Running:
		return s.opts.Now().Sub(s.startedAt)
	case AwaitingName, Finished:
		return s.result.Total
	default:
		return 0
	}
}

// Result returns the finished game. It is meaningful from AwaitingName on.
func (s *Session) Result() Result {
	return s.result
}
