// Package model defines shared data structures.
package model

import "time"

// Config defines play settings.
type Config struct {
	LedgerPath string
	Top        int
	Seed       int64
	History    bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Name   string
	Since  *time.Time
	Last   int
	Window int
	Colors int
}

// GameRecord captures a finished game for the history store.
type GameRecord struct {
	ID         string
	Name       string
	StartedAt  time.Time
	EndedAt    time.Time
	DurationMs int64
	Hits       int
	Misses     int
	Colors     []ColorSplit
}

// ColorSplit stores how one target color went during a game.
type ColorSplit struct {
	Color   string
	Tiles   int
	Misses  int
	ClearMs int64
}

// GameAggregate summarizes a game for reporting.
type GameAggregate struct {
	GameID     string
	Name       string
	EndedAt    time.Time
	Hits       int
	Misses     int
	DurationMs int64
}

// ColorAggregate aggregates color splits across games.
type ColorAggregate struct {
	Color      string
	Games      int
	Tiles      int
	Misses     int
	ClearSumMs int64
}
