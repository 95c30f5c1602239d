package stats

import (
	"sort"

	"github.com/verte-zerg/colorhunt/internal/model"
)

// MostMissedColors selects the colors with the highest miss rate per tile.
// Colors without any miss are left out.
func MostMissedColors(aggs []model.ColorAggregate, top int) []string {
	candidates := make([]model.ColorAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Misses > 0 {
			candidates = append(candidates, agg)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		mi, mj := missRate(candidates[i]), missRate(candidates[j])
		if mi == mj {
			return candidates[i].Color < candidates[j].Color
		}
		return mi > mj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	out := make([]string, 0, top)
	for _, c := range candidates[:top] {
		out = append(out, c.Color)
	}
	return out
}

func missRate(agg model.ColorAggregate) float64 {
	if agg.Tiles == 0 {
		return float64(agg.Misses)
	}
	return float64(agg.Misses) / float64(agg.Tiles)
}
