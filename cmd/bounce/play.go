package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/platform/tui"
	"github.com/vovakirdan/tui-bounce/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Without --difficulty a picker asks for the preset first.

Controls:
  Left/A/H     - Move paddle left
  Right/D/L    - Move paddle right
  Mouse drag   - Move paddle
  Space/Enter  - Start
  P/Esc        - Pause / resume
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot to ~/.bounce/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower ball, wider paddle, more lives and power-ups
  normal - Standard settings
  hard   - Faster ball, narrower paddle, fewer lives and power-ups

Examples:
  bounce play
  bounce play --difficulty easy
  bounce play --config ./my-bounce.yaml
  bounce play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	rt := runtimeConfig()
	preset := parseDifficulty()

	// Ask for the preset when none was given
	if flagDifficulty == "" {
		selected, err := tui.RunDifficultySelector(preset, rt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if selected == nil {
			return
		}
		preset = *selected
	}

	cfg, err := loadGame(preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Continue without storage - game still works
	var kv bounce.KeyValueStore
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		kv = storage.NewMemoryKV()
	} else {
		kv = store
	}

	// The terminal belongs to the game, so logs go to a file
	logOut, closeLog := openLogFile()
	defer closeLog()
	logger := newLogger(logOut, "bounce")

	session := bounce.NewSession(cfg, kv,
		bounce.WithSeed(rt.Seed),
		bounce.WithLogger(logger.With("difficulty", string(preset))),
	)

	runErr := tui.Run(session, store, rt, preset)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openLogFile opens ~/.bounce/bounce.log for appending. Logs are dropped
// when the file cannot be opened.
func openLogFile() (io.Writer, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return io.Discard, func() {}
	}

	dir := filepath.Join(home, ".bounce")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard, func() {}
	}

	f, err := os.OpenFile(filepath.Join(dir, "bounce.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}
