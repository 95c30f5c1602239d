package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/colorhunt/internal/model"
)

func TestGameMetrics(t *testing.T) {
	acc, tpm := GameMetrics(64, 16, 30000)
	if math.Abs(acc-0.8) > 1e-9 {
		t.Fatalf("unexpected accuracy %f", acc)
	}
	if math.Abs(tpm-128) > 1e-9 {
		t.Fatalf("unexpected tiles per minute %f", tpm)
	}
	if acc, tpm := GameMetrics(0, 0, 0); acc != 0 || tpm != 0 {
		t.Fatalf("expected zeros, got %f %f", acc, tpm)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got, want)
		}
	}
}

func TestSparklineAndResample(t *testing.T) {
	if got := Sparkline([]float64{1, 1, 1}); got != "+++" {
		t.Fatalf("flat series: %q", got)
	}
	if got := Sparkline([]float64{0, 10}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Resample([]float64{1, 3, 5, 7}, 2); got[0] != 2 || got[1] != 6 {
		t.Fatalf("unexpected resample %v", got)
	}
	if got := Resample([]float64{1, 2}, 4); len(got) != 4 || got[3] != 2 {
		t.Fatalf("unexpected stretch %v", got)
	}
}

func TestRenderSummaryAndTrends(t *testing.T) {
	games := []model.GameAggregate{
		{GameID: "a", EndedAt: time.Unix(0, 0), Hits: 64, Misses: 0, DurationMs: 40000},
		{GameID: "b", EndedAt: time.Unix(60, 0), Hits: 64, Misses: 64, DurationMs: 30000},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, games); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if err := RenderTrends(&buf, games, 1, 20); err != nil {
		t.Fatalf("render trends: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Games: 2", "Best time: 30.00s", "Avg time: 35.00s", "Avg accuracy: 75.00%", "Time", "Accuracy"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if !strings.Contains(buf.String(), "No games found.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
}

func TestRenderColorTableOrdersSlowestFirst(t *testing.T) {
	var buf bytes.Buffer
	err := RenderColorTable(&buf, []model.ColorAggregate{
		{Color: "Blue", Games: 2, Tiles: 8, Misses: 1, ClearSumMs: 8000},
		{Color: "Red", Games: 2, Tiles: 8, Misses: 0, ClearSumMs: 16000},
	})
	if err != nil {
		t.Fatalf("render color table: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 4 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[2], "Red") || !strings.HasPrefix(lines[3], "Blue") {
		t.Fatalf("expected Red before Blue:\n%s", buf.String())
	}
}

func TestTrendWidthFor(t *testing.T) {
	if got := TrendWidthFor(0); got != minTrendWidth {
		t.Fatalf("expected min width, got %d", got)
	}
	if got := TrendWidthFor(100); got != 100-trendLabelWidth-1-24 {
		t.Fatalf("unexpected width %d", got)
	}
}
