package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/platform/tui"
	"github.com/vovakirdan/tui-bounce/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the game history",
	Long: `Display the best recorded games and aggregated statistics.

--difficulty filters the history to one preset; without it all games are shown.

Examples:
  bounce scores
  bounce scores --difficulty hard
  bounce scores -i
  bounce scores --clear --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the history in an interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to list")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the listed history")
}

func runScores(_ *cobra.Command, _ []string) {
	difficulty := ""
	if flagDifficulty != "" {
		difficulty = string(parseDifficulty())
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		rt := runtimeConfig()
		if _, err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flagClear {
		if err := store.ClearGames(difficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	games, err := store.TopGames(difficulty, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	title := "all difficulties"
	if difficulty != "" {
		title = difficulty
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bounce play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-7s  %-7s  %s\n", "Rank", "Score", "Level", "Hits", "Time", "Mode", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-7s  %-7s  %s\n", "----", "-----", "-----", "----", "----", "----", "----")

	for i, g := range games {
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %-7s  %-7s  %s\n",
			i+1, g.Score, g.Level, g.Hits, g.PlayTime.Round(time.Second), g.Difficulty, g.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(difficulty); err == nil {
		fmt.Printf("Games: %d  Best: %d  Avg: %.0f  Max level: %d  Hits: %d  Played: %s\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.MaxLevel, stats.TotalHits, stats.PlayTime)
	}
	if v, ok := store.Get(bounce.HighScoreKey); ok {
		fmt.Printf("Best ever: %d\n", bounce.ParseHighScore(v))
	}
}
