package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/makeup-rain/internal/audio"
	"github.com/vovakirdan/makeup-rain/internal/games/rain"
	"github.com/vovakirdan/makeup-rain/internal/platform/tui"
	"github.com/vovakirdan/makeup-rain/internal/storage"
)

var (
	flagMute      bool
	flagHighScore string
)

var playCmd = &cobra.Command{
	Use:   "play [single|coop]",
	Short: "Start a run",
	Long: `Start a run right away, skipping the title screen.

Controls:
  Left/Right  - Move player 1
  A/D         - Move player 2 (co-op)
  P           - Pause
  Esc         - Back to menu
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - 5 lives, gentle speed ramp, 90 s rounds
  normal - 3 lives, 60 s rounds
  hard   - 2 lives, steep speed ramp, 45 s rounds
  fixed  - No speed ramp

Examples:
  rain play
  rain play coop
  rain play --difficulty hard --seed 42
  rain play --config ./my-rain.yaml`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"single", "coop"},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := rain.ModeSingle
		if len(args) == 1 {
			switch args[0] {
			case "single":
			case "coop":
				mode = rain.ModeCoop
			default:
				return fmt.Errorf("unknown mode %q (want single or coop)", args[0])
			}
		}
		return runLocal(mode)
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd, menuCmd} {
		c.Flags().BoolVar(&flagMute, "mute", false, "Disable music")
		c.Flags().StringVar(&flagHighScore, "highscore", "", "High score file (default ~/.arcade/rain_highscore.json)")
	}
}

// runLocal runs an interactive session in this terminal. A zero mode
// starts on the title screen.
func runLocal(mode rain.Mode) error {
	logFile := openLogFile()
	defer logFile.Close()

	logger, err := newLogger(logFile, "rain")
	if err != nil {
		return err
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	highScorePath := flagHighScore
	if highScorePath == "" {
		highScorePath = filepath.Join(arcadeDir(), "rain_highscore.json")
	}

	music := audio.NewMusic(cfg.Audio, logger)
	defer music.Stop()

	opts := tui.Options{
		Config:        cfg,
		Runtime:       runtimeConfig(),
		HighScores:    storage.NewFileStore(highScorePath),
		Music:         music,
		Logger:        logger,
		Mode:          mode,
		ScreenshotDir: filepath.Join(arcadeDir(), "screenshots"),
		Runs:          store,
	}

	if mode != 0 {
		logger.Info("run started", "mode", mode, "fps", opts.Runtime.Rate(), "difficulty", flagDifficulty)
	} else {
		logger.Info("menu opened", "fps", opts.Runtime.Rate(), "difficulty", flagDifficulty)
	}
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
