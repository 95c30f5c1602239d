// Package main provides the CLI entrypoint for colorhunt.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/colorhunt/internal/config"
	"github.com/verte-zerg/colorhunt/internal/game"
	"github.com/verte-zerg/colorhunt/internal/grid"
	"github.com/verte-zerg/colorhunt/internal/ledger"
	"github.com/verte-zerg/colorhunt/internal/logging"
	"github.com/verte-zerg/colorhunt/internal/model"
	"github.com/verte-zerg/colorhunt/internal/stats"
	"github.com/verte-zerg/colorhunt/internal/statsui"
	"github.com/verte-zerg/colorhunt/internal/store"
	"github.com/verte-zerg/colorhunt/internal/tui"
)

const (
	defaultTop         = 10
	defaultStatsWindow = 10
	defaultStatsColors = 3
)

var (
	playLedger    string
	playTop       int
	playSeed      int64
	playNoHistory bool

	scoresLedger string
	scoresTop    int

	statsName   string
	statsSince  string
	statsLast   int
	statsWindow int
	statsColors int
	statsPlain  bool
)

var cliLog = logging.Console(os.Stderr, zerolog.InfoLevel)

func main() {
	// A missing .env is the normal case.
	_ = godotenv.Load()
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "colorhunt",
		Short:         "Timed color-matching puzzle",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playLedger, "ledger", "", "score table path (default: XDG data dir)")
	rootCmd.Flags().IntVar(&playTop, "top", defaultTop, "scores shown on the end screen")
	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "board seed (0 = random)")
	rootCmd.Flags().BoolVar(&playNoHistory, "no-history", false, "do not record games in the stats database")

	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	history := !playNoHistory
	applyStringConfig(cmd, "ledger", &playLedger, fileCfg.Game.Ledger)
	applyIntConfig(cmd, "top", &playTop, fileCfg.Game.Top)
	applyInt64Config(cmd, "seed", &playSeed, fileCfg.Game.Seed)
	applyBoolConfig(cmd, "no-history", &history, fileCfg.Game.History)

	cfg := model.Config{
		LedgerPath: resolveLedgerPath(playLedger),
		Top:        playTop,
		Seed:       playSeed,
		History:    history,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logLevel := ""
	if fileCfg.Game.LogLevel != nil {
		logLevel = *fileCfg.Game.LogLevel
	}
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger, logFile, err := logging.OpenFile(config.DefaultLogPath(), level)
	if err != nil {
		cliLog.Warn().Err(err).Msg("logging disabled")
	} else {
		defer func() {
			if cerr := logFile.Close(); cerr != nil {
				cliLog.Warn().Err(cerr).Msg("failed to close log file")
			}
		}()
	}

	l := ledger.Open(cfg.LedgerPath)
	if _, err := l.Load(); err != nil {
		return fmt.Errorf("failed to load score table: %w", err)
	}

	opts := game.Options{
		Rand:   grid.NewSource(cfg.Seed),
		Ledger: l,
	}
	if cfg.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			logger.Warn().Err(err).Msg("history disabled")
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logger.Warn().Err(cerr).Msg("failed to close db")
				}
			}()
			opts.Recorder = st
		}
	}

	logger.Info().Str("ledger", cfg.LedgerPath).Int64("seed", cfg.Seed).Bool("history", cfg.History).Msg("starting game")
	session := game.New(opts)
	m := tui.NewModel(session, l, logger, cfg.Top)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Print the score table",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
	cmd.Flags().StringVar(&scoresLedger, "ledger", "", "score table path (default: XDG data dir)")
	cmd.Flags().IntVar(&scoresTop, "top", defaultTop, "number of scores to print")
	return cmd
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "ledger", &scoresLedger, fileCfg.Game.Ledger)
	applyIntConfig(cmd, "top", &scoresTop, fileCfg.Game.Top)
	if scoresTop <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	entries, err := ledger.Open(resolveLedgerPath(scoresLedger)).Top(scoresTop)
	if err != nil {
		return fmt.Errorf("failed to load score table: %w", err)
	}
	return printScores(cmd.OutOrStdout(), entries, stats.UseColor(cmd.OutOrStdout()))
}

func printScores(w io.Writer, entries []ledger.Entry, useColor bool) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No scores yet.")
		return err
	}
	podium := []*color.Color{
		color.New(color.FgHiYellow, color.Bold),
		color.New(color.FgHiWhite, color.Bold),
		color.New(color.FgYellow),
	}
	plain := color.New(color.Reset)
	for i, e := range entries {
		c := plain
		if i < len(podium) {
			c = podium[i]
		}
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		if _, err := c.Fprintf(w, "%2d. %-20s %8ss\n", i+1, e.Name, ledger.FormatSeconds(e.Seconds)); err != nil {
			return err
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show play history stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsName, "name", "", "player name filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N games")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window")
	cmd.Flags().IntVar(&statsColors, "colors", defaultStatsColors, "number of colors in highlights")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the interactive view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 || statsWindow < 0 || statsColors < 0 {
		return fmt.Errorf("--last, --window and --colors must be >= 0")
	}

	cfg := model.StatsConfig{
		Name:   strings.TrimSpace(statsName),
		Since:  sinceTime,
		Last:   statsLast,
		Window: statsWindow,
		Colors: statsColors,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			cliLog.Warn().Err(cerr).Msg("failed to close db")
		}
	}()

	load := func(ctx context.Context, cfg model.StatsConfig) (stats.Report, error) {
		return stats.BuildReport(ctx, st, cfg)
	}
	out := cmd.OutOrStdout()
	if !statsPlain && isTerminal(out) {
		program := tea.NewProgram(statsui.NewModel(load, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats UI: %w", err)
		}
		return nil
	}

	report, err := load(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return report.Render(out, cfg, 0)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func resolveLedgerPath(path string) string {
	if strings.TrimSpace(path) == "" {
		return config.DefaultLedgerPath()
	}
	return path
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# colorhunt configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# ledger = %q   # Score table path
# top = %d              # Scores shown on the end screen
# seed = 0              # Board seed (0 = random)
# history = true        # Record games for 'colorhunt stats'
# log-level = "info"    # trace, debug, info, warn, error (env %s wins)
`,
		config.DefaultLedgerPath(),
		defaultTop,
		logging.EnvLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Top <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	if strings.TrimSpace(cfg.LedgerPath) == "" {
		return fmt.Errorf("--ledger must not be empty")
	}
	return nil
}
