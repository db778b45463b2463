package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/storage"
)

var (
	flagMaxTicks int
	flagRealtime bool
	flagSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless game driven by the autopilot",
	Long: `Run a game without a UI. The autopilot steers the paddle and every
physics event is logged at debug level.

By default ticks are fed as fast as possible with a fixed step, so the same
--seed always produces the same game. --realtime paces ticks at --fps.

Examples:
  bounce sim --seed 42
  bounce sim --seed 42 --log-level debug
  bounce sim --realtime --max-ticks 600
  bounce sim --difficulty hard --save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 60*60*10, "Stop after this many ticks")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace ticks at --fps instead of running flat out")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Record the finished game in the history")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "bounce-sim")
	preset := parseDifficulty()

	cfg, err := loadGame(preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fps := max(flagFPS, 1)

	var store *storage.Store
	var kv bounce.KeyValueStore = storage.NewMemoryKV()
	if flagSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		kv = store
	}

	session := bounce.NewSession(cfg, kv,
		bounce.WithSeed(seed),
		bounce.WithLogger(logger),
	)
	session.Start()

	loop := &bounce.Loop{
		Session:    session,
		Controller: bounce.Autopilot,
		OnEvents: func(events []bounce.Event) {
			for _, ev := range events {
				logger.Debug("event", "event", ev.String(), "score", session.Score(), "level", session.Level())
			}
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("simulation started", "seed", seed, "difficulty", string(preset), "max_ticks", flagMaxTicks)

	interval := time.Second / time.Duration(fps)
	if flagRealtime {
		ctx, cancel := context.WithTimeout(ctx, time.Duration(flagMaxTicks)*interval)
		defer cancel()
		err = loop.Run(ctx, interval)
	} else {
		loop.FixedStep = interval
		err = loop.RunTicks(ctx, fixedTicks(ctx, flagMaxTicks, interval))
	}
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stats := session.Stats()
	logger.Info("simulation finished",
		"status", session.Status().String(),
		"score", session.Score(),
		"level", session.Level(),
		"lives", session.Lives(),
		"hits", stats.TotalHits,
		"powerups", stats.PowerUpsCollected,
		"game_time", stats.PlayTime,
	)

	if store != nil && session.Status() == bounce.StatusOver {
		if _, err := store.SaveGame(storage.GameRecord{
			Difficulty: string(preset),
			Score:      session.Score(),
			Level:      stats.MaxLevel,
			Hits:       stats.TotalHits,
			PowerUps:   stats.PowerUpsCollected,
			PlayTime:   stats.PlayTime,
		}); err != nil {
			logger.Error("failed to save game", "error", err)
		}
	}

	fmt.Printf("score=%d level=%d status=%s hash=%016x\n", session.Score(), session.Level(), session.Status(), snapshotHash(session))
}

// fixedTicks emits n synthetic ticks spaced by step without waiting, then
// closes the channel. It stops early when ctx is done.
func fixedTicks(ctx context.Context, n int, step time.Duration) <-chan time.Time {
	ticks := make(chan time.Time)
	go func() {
		defer close(ticks)
		now := time.Unix(0, 0)
		for range n {
			select {
			case ticks <- now:
				now = now.Add(step)
			case <-ctx.Done():
				return
			}
		}
	}()
	return ticks
}

func snapshotHash(s *bounce.Session) uint64 {
	snap := s.Snapshot()
	return snap.Hash()
}
