// Package store handles SQLite persistence of play history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/colorhunt/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for finished games.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			hits INTEGER NOT NULL,
			misses INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS game_colors (
			game_id TEXT NOT NULL,
			color TEXT NOT NULL,
			tiles INTEGER NOT NULL,
			misses INTEGER NOT NULL,
			clear_ms INTEGER NOT NULL,
			PRIMARY KEY (game_id, color)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_game_colors_color ON game_colors(color);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertGame stores a finished game and its per-color splits.
func (s *Store) InsertGame(ctx context.Context, rec model.GameRecord) (err error) {
	if rec.ID == "" {
		return fmt.Errorf("game id is empty")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO games (id, name, started_at, ended_at, duration_ms, hits, misses)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Name,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.DurationMs,
		rec.Hits,
		rec.Misses,
	)
	if err != nil {
		return err
	}

	if len(rec.Colors) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO game_colors (game_id, color, tiles, misses, clear_ms)
			 VALUES (?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, c := range rec.Colors {
			if _, err = stmt.ExecContext(ctx, rec.ID, c.Color, c.Tiles, c.Misses, c.ClearMs); err != nil {
				return err
			}
		}
	}

	err = tx.Commit()
	return err
}

// ListGames returns game aggregates filtered by stats config, oldest first.
func (s *Store) ListGames(ctx context.Context, cfg model.StatsConfig) ([]model.GameAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Name != "" {
		clauses = append(clauses, "name = ?")
		args = append(args, cfg.Name)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, name, ended_at, hits, misses, duration_ms
		FROM games
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameAggregate
	for rows.Next() {
		var agg model.GameAggregate
		var endedAt string
		if err := rows.Scan(&agg.GameID, &agg.Name, &endedAt, &agg.Hits, &agg.Misses, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		games = append(games, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

// ListColorAggregates aggregates per-color splits across games.
func (s *Store) ListColorAggregates(ctx context.Context, gameIDs []string) ([]model.ColorAggregate, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(gameIDs))
	args := make([]any, len(gameIDs))
	for i, id := range gameIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT color, COUNT(*) AS games, SUM(tiles) AS tiles,
		SUM(misses) AS misses, SUM(clear_ms) AS clear_ms
		FROM game_colors
		WHERE game_id IN (%s)
		GROUP BY color`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.ColorAggregate
	for rows.Next() {
		var agg model.ColorAggregate
		if err := rows.Scan(&agg.Color, &agg.Games, &agg.Tiles, &agg.Misses, &agg.ClearSumMs); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
