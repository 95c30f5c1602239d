// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/colorhunt/internal/model"
)

// HardestColors returns the top N colors by average clear time per tile.
func HardestColors(aggs []model.ColorAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	candidates := make([]model.ColorAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Tiles > 0 {
			candidates = append(candidates, agg)
		}
	}
	candidates = SlowestFirst(candidates)
	n = min(n, len(candidates))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, candidates[i].Color)
	}
	return out
}

// SlowestFirst returns a copy of aggs ordered by average clear time per tile,
// slowest first. Ties are broken by color name.
func SlowestFirst(aggs []model.ColorAggregate) []model.ColorAggregate {
	rows := make([]model.ColorAggregate, len(aggs))
	copy(rows, aggs)
	sort.Slice(rows, func(i, j int) bool {
		ai, aj := avgClearPerTile(rows[i]), avgClearPerTile(rows[j])
		if ai == aj {
			return rows[i].Color < rows[j].Color
		}
		return ai > aj
	})
	return rows
}
