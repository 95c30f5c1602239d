package stats

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/colorhunt/internal/model"
	"github.com/verte-zerg/colorhunt/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "colorhunt.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		rec := model.GameRecord{
			ID:         fmt.Sprintf("game-%d", i),
			Name:       "Ana",
			StartedAt:  start,
			EndedAt:    end,
			DurationMs: end.Sub(start).Milliseconds(),
			Hits:       64,
			Misses:     i,
			Colors: []model.ColorSplit{
				{Color: "Black", Tiles: 4, Misses: i, ClearMs: 2000},
				{Color: "Blue", Tiles: 5, Misses: 0, ClearMs: 1000},
			},
		}
		if err := st.InsertGame(ctx, rec); err != nil {
			t.Fatalf("insert game: %v", err)
		}
		ids = append(ids, rec.ID)
	}

	cfg := model.StatsConfig{
		Name:   "Ana",
		Last:   2,
		Window: 2,
		Colors: 2,
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(report.Games))
	}
	if report.Games[0].GameID != ids[1] || report.Games[1].GameID != ids[2] {
		t.Fatalf("unexpected game ids: %+v", report.Games)
	}
	if len(report.WindowGameIDs) != 2 {
		t.Fatalf("expected 2 window game ids, got %d", len(report.WindowGameIDs))
	}
	if len(report.ColorAggsAll) == 0 {
		t.Fatalf("expected color aggregates for all games")
	}
	if len(report.ColorAggsWindow) == 0 {
		t.Fatalf("expected color aggregates for window games")
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, cfg, 20); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Games: 2", "Slowest colors: Black, Blue", "Most missed: Black", "Per-Color (Windowed)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in report:\n%s", want, out)
		}
	}
}
