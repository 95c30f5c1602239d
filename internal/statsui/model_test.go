package statsui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/colorhunt/internal/model"
	"github.com/verte-zerg/colorhunt/internal/stats"
)

type fakeLoader struct {
	calls []model.StatsConfig
	err   error
}

func (f *fakeLoader) load(_ context.Context, cfg model.StatsConfig) (stats.Report, error) {
	f.calls = append(f.calls, cfg)
	if f.err != nil {
		return stats.Report{}, f.err
	}
	return stats.Report{
		Games: []model.GameAggregate{
			{GameID: "a", Name: "Ana", EndedAt: time.Unix(100, 0), Hits: 64, Misses: 4, DurationMs: 30000},
			{GameID: "b", Name: "Ana", EndedAt: time.Unix(200, 0), Hits: 64, Misses: 0, DurationMs: 25000},
		},
		WindowGameIDs: []string{"a", "b"},
		ColorAggsAll: []model.ColorAggregate{
			{Color: "Red", Games: 2, Tiles: 10, Misses: 3, ClearSumMs: 8000},
			{Color: "Blue", Games: 2, Tiles: 8, Misses: 0, ClearSumMs: 2000},
		},
		ColorAggsWindow: []model.ColorAggregate{
			{Color: "Red", Games: 2, Tiles: 10, Misses: 3, ClearSumMs: 8000},
			{Color: "Blue", Games: 2, Tiles: 8, Misses: 0, ClearSumMs: 2000},
		},
	}, nil
}

func newTestModel(t *testing.T, loader *fakeLoader) *Model {
	t.Helper()
	m := NewModel(loader.load, model.StatsConfig{Window: 10, Colors: 3})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOverviewShowsSummaryAndHighlights(t *testing.T) {
	m := newTestModel(t, &fakeLoader{})
	view := m.View()
	for _, want := range []string{"Overview", "Games", "25.00s", "Slowest colors: Red, Blue", "Most missed: Red"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestColorsTabListsSlowestFirst(t *testing.T) {
	m := newTestModel(t, &fakeLoader{})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	view := m.View()
	red := strings.Index(view, "Red")
	blue := strings.Index(view, "Blue")
	if red < 0 || blue < 0 || red > blue {
		t.Fatalf("expected Red before Blue in colors tab, got:\n%s", view)
	}
}

func TestWindowKeysReloadReport(t *testing.T) {
	loader := &fakeLoader{}
	m := newTestModel(t, loader)
	m.Update(key("="))
	if m.cfg.Window != 15 {
		t.Fatalf("expected window 15, got %d", m.cfg.Window)
	}
	m.Update(key("-"))
	m.Update(key("-"))
	if m.cfg.Window != 5 {
		t.Fatalf("expected window 5, got %d", m.cfg.Window)
	}
	if got := loader.calls[len(loader.calls)-1].Window; got != 5 {
		t.Fatalf("expected last load with window 5, got %d", got)
	}
}

func TestFilterFormAppliesSettings(t *testing.T) {
	loader := &fakeLoader{}
	m := newTestModel(t, loader)
	m.Update(key("/"))
	if !m.filterMode {
		t.Fatalf("expected filter mode")
	}
	m.Update(key("Bo"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(key("2024-05-01"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode {
		t.Fatalf("expected filter mode to close, error: %q", m.filterError)
	}
	last := loader.calls[len(loader.calls)-1]
	if last.Name != "Bo" {
		t.Fatalf("expected name filter Bo, got %q", last.Name)
	}
	if last.Since == nil || last.Since.Format("2006-01-02") != "2024-05-01" {
		t.Fatalf("expected since filter, got %v", last.Since)
	}
}

func TestFilterFormRejectsBadWindow(t *testing.T) {
	m := newTestModel(t, &fakeLoader{})
	m.Update(key("/"))
	for i := 0; i < filterWindow; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	m.filterInputs[filterWindow].SetValue("0")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.filterMode || m.filterError == "" {
		t.Fatalf("expected filter error for window 0")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.filterMode {
		t.Fatalf("expected esc to leave filter mode")
	}
}

func TestLoadErrorIsShown(t *testing.T) {
	m := newTestModel(t, &fakeLoader{err: errors.New("db locked")})
	view := m.View()
	if !strings.Contains(view, "db locked") || !strings.Contains(view, "Failed to load stats.") {
		t.Fatalf("expected load error in view, got:\n%s", view)
	}
}

func TestWindowSteps(t *testing.T) {
	cases := []struct {
		in, next, prev int
	}{
		{in: 1, next: 5, prev: 1},
		{in: 5, next: 10, prev: 1},
		{in: 7, next: 10, prev: 5},
		{in: 10, next: 15, prev: 5},
	}
	for _, tc := range cases {
		if got := nextWindow(tc.in); got != tc.next {
			t.Fatalf("nextWindow(%d) = %d, want %d", tc.in, got, tc.next)
		}
		if got := prevWindow(tc.in); got != tc.prev {
			t.Fatalf("prevWindow(%d) = %d, want %d", tc.in, got, tc.prev)
		}
	}
}
