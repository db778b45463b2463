// bounce is a terminal bounce challenge: keep the ball in play with the
// paddle, break every target and collect power-ups.
//
// Usage:
//
//	bounce play              - Play in the terminal
//	bounce scores            - Show the game history
//	bounce serve             - Start SSH server for remote play
//	bounce sim               - Run a headless game driven by the autopilot
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.bounce/scores.db)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <preset> - Difficulty preset: easy, normal, hard
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
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
	Use:   "bounce",
	Short: "Bounce Challenge - a paddle and ball game for your terminal",
	Long: `Bounce Challenge is a terminal paddle game. Bounce the ball off the
paddle, break the targets and catch falling power-ups. Every cleared
batch brings a bigger one.

Available commands:
  play     - Play in the terminal
  scores   - View the game history
  serve    - Start SSH server for remote play
  sim      - Run a headless game driven by the autopilot

Examples:
  bounce play
  bounce play --difficulty hard
  bounce scores -i
  bounce serve --ssh :2222
  bounce sim --seed 42 --log-level debug`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bounce/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}
