package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/colorhunt/internal/model"
	"github.com/verte-zerg/colorhunt/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Games           []model.GameAggregate
	WindowGameIDs   []string
	ColorAggsAll    []model.ColorAggregate
	ColorAggsWindow []model.ColorAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	games, err := st.ListGames(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(games) > cfg.Last {
		games = games[len(games)-cfg.Last:]
	}

	allIDs := gameIDs(games)
	windowIDs := lastGameIDs(games, cfg.Window)
	colorAggsAll, err := st.ListColorAggregates(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	colorAggsWindow, err := st.ListColorAggregates(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Games:           games,
		WindowGameIDs:   windowIDs,
		ColorAggsAll:    colorAggsAll,
		ColorAggsWindow: colorAggsWindow,
	}, nil
}

// Render writes the full report: summary, trends, hardest colors and the color table.
func (r Report) Render(w io.Writer, cfg model.StatsConfig, width int) error {
	if err := RenderSummary(w, r.Games); err != nil {
		return err
	}
	if len(r.Games) == 0 {
		return nil
	}
	if err := RenderTrends(w, r.Games, cfg.Window, width); err != nil {
		return err
	}
	if err := RenderHighlights(w, r.ColorAggsAll, cfg.Colors); err != nil {
		return err
	}
	return RenderColorTable(w, r.ColorAggsWindow)
}

func gameIDs(games []model.GameAggregate) []string {
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.GameID
	}
	return ids
}

func lastGameIDs(games []model.GameAggregate, window int) []string {
	if window <= 0 || len(games) <= window {
		return gameIDs(games)
	}
	return gameIDs(games[len(games)-window:])
}
