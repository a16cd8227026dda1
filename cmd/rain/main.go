// rain is Makeup Rain: catch falling makeup and dodge falling cacti in your
// terminal, alone or with a friend on the same keyboard.
//
// Usage:
//
//	rain                     - Start the menu
//	rain play [single|coop]  - Start a run directly
//	rain menu                - Start the menu
//	rain serve               - Start SSH server for remote play
//	rain scores              - Show run history
//	rain config              - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set run history database (default: ~/.arcade/rain.db)
//	--config <path>       - Use a custom rain.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/makeup-rain/internal/config"
	"github.com/vovakirdan/makeup-rain/internal/core"
	"github.com/vovakirdan/makeup-rain/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rain",
	Short: "Makeup Rain - catch the makeup, dodge the cacti",
	Long: `Makeup Rain is a terminal arcade game. Move your catcher along the
bottom of the screen, collect falling makeup and avoid the cacti. Every
round needs more items and everything falls faster.

Available commands:
  play     - Start a single player or co-op run
  menu     - Title screen with mode picker and high scores
  serve    - Start SSH server for remote play
  scores   - View run history
  config   - Print the effective configuration

Examples:
  rain
  rain play coop --difficulty easy
  rain serve --ssh :2222
  rain scores --mode single`,
	RunE: runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.ReferenceTickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.GetEnv(config.EnvDB, "~/.arcade/rain.db"), "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.GetEnv(config.EnvConfig, ""), "Path to custom rain.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig loads the config and applies the difficulty preset.
func loadGameConfig() (config.RainConfig, error) {
	cfg, err := config.LoadRain(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyRainPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

// runtimeConfig builds the runtime config for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// arcadeDir returns ~/.arcade, or "" when the home directory is unknown.
func arcadeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade")
}

// openLogFile opens ~/.arcade/rain.log for appending. The alt screen owns
// stdout while playing, so interactive sessions log to a file.
func openLogFile() io.WriteCloser {
	dir := arcadeDir()
	if dir == "" {
		return nopCloser{io.Discard}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nopCloser{io.Discard}
	}
	f, err := os.OpenFile(filepath.Join(dir, "rain.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nopCloser{io.Discard}
	}
	return f
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openStore opens the run history. Failure is not fatal: the game runs
// without history.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
