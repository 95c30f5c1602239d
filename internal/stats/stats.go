// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/colorhunt/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	trendLabelWidth     = 10
	minTrendWidth       = 10
	terminalWidthBackup = 80
)

// GameMetrics computes click accuracy and tiles per minute for a game.
func GameMetrics(hits, misses int, durationMs int64) (accuracy, tilesPerMinute float64) {
	den := float64(hits + misses)
	if den > 0 {
		accuracy = float64(hits) / den
	}
	if durationMs <= 0 {
		return accuracy, 0
	}
	minutes := float64(durationMs) / 60000.0
	tilesPerMinute = float64(hits) / minutes
	return accuracy, tilesPerMinute
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Resample stretches or averages values to exactly width points.
func Resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	if len(values) >= width {
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := max((i+1)*len(values)/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	for i := range out {
		out[i] = values[i*len(values)/width]
	}
	return out
}

// RenderSummary prints a summary block for games.
func RenderSummary(w io.Writer, games []model.GameAggregate) error {
	if len(games) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	var totalSec, totalAcc float64
	best := math.Inf(1)
	for _, g := range games {
		sec := float64(g.DurationMs) / 1000
		acc, _ := GameMetrics(g.Hits, g.Misses, g.DurationMs)
		totalSec += sec
		totalAcc += acc
		best = math.Min(best, sec)
	}
	count := float64(len(games))
	lines := []string{
		"Summary",
		fmt.Sprintf("Games: %d", len(games)),
		fmt.Sprintf("Best time: %.2fs", best),
		fmt.Sprintf("Avg time: %.2fs", totalSec/count),
		fmt.Sprintf("Avg accuracy: %.2f%%", (totalAcc/count)*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrends prints moving-average sparklines for time and accuracy.
// A width of 0 sizes the lines to the terminal.
func RenderTrends(w io.Writer, games []model.GameAggregate, window, width int) error {
	if len(games) == 0 {
		return nil
	}
	if width <= 0 {
		width = TrendWidthFor(terminalWidth())
	}
	times := make([]float64, len(games))
	accs := make([]float64, len(games))
	for i, g := range games {
		acc, _ := GameMetrics(g.Hits, g.Misses, g.DurationMs)
		times[i] = float64(g.DurationMs) / 1000
		accs[i] = acc * 100
	}
	times = MovingAverage(times, window)
	accs = MovingAverage(accs, window)

	if _, err := fmt.Fprintf(w, "Trends (moving average over %d games)\n", max(window, 1)); err != nil {
		return err
	}
	for _, series := range []struct {
		name   string
		values []float64
	}{
		{name: "Time", values: times},
		{name: "Accuracy", values: accs},
	} {
		points := series.values
		if len(points) > width {
			points = Resample(points, width)
		}
		minVal, maxVal := minMax(series.values)
		if _, err := fmt.Fprintf(w, "%-*s %s  (%.2f..%.2f)\n", trendLabelWidth, series.name, Sparkline(points), minVal, maxVal); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// TrendWidthFor computes the sparkline width that fits the terminal.
func TrendWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minTrendWidth
	}
	// Label column plus the min/max suffix.
	width := totalWidth - trendLabelWidth - 1 - 24
	return max(width, minTrendWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// UseColor reports whether w is a terminal that accepts ANSI colors.
func UseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// RenderColorTable prints per-color aggregates, slowest colors first.
func RenderColorTable(w io.Writer, aggs []model.ColorAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No color stats found.")
		return err
	}
	rows := SlowestFirst(aggs)

	if _, err := fmt.Fprintln(w, "Per-Color (Windowed)"); err != nil {
		return err
	}
	headers := []string{"Color", "Avg Clear (s)", "Per Tile (ms)", "Tiles", "Misses"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, ColorRow(r))
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// ColorRow formats one aggregate as Color, Avg Clear (s), Per Tile (ms), Tiles and Misses.
func ColorRow(r model.ColorAggregate) []string {
	avgClear := 0.0
	if r.Games > 0 {
		avgClear = float64(r.ClearSumMs) / float64(r.Games) / 1000
	}
	return []string{
		r.Color,
		fmt.Sprintf("%.2f", avgClear),
		fmt.Sprintf("%.0f", avgClearPerTile(r)),
		fmt.Sprintf("%d", r.Tiles),
		fmt.Sprintf("%d", r.Misses),
	}
}

func avgClearPerTile(agg model.ColorAggregate) float64 {
	if agg.Tiles == 0 {
		return 0
	}
	return float64(agg.ClearSumMs) / float64(agg.Tiles)
}

// RenderHighlights prints the slowest and the most missed colors.
func RenderHighlights(w io.Writer, aggs []model.ColorAggregate, n int) error {
	if n <= 0 {
		n = 3
	}
	hardest := HardestColors(aggs, n)
	missed := MostMissedColors(aggs, n)
	if len(hardest) == 0 && len(missed) == 0 {
		return nil
	}
	if len(hardest) > 0 {
		if _, err := fmt.Fprintf(w, "Slowest colors: %s\n", strings.Join(hardest, ", ")); err != nil {
			return err
		}
	}
	if len(missed) > 0 {
		if _, err := fmt.Fprintf(w, "Most missed: %s\n", strings.Join(missed, ", ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
