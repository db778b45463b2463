package bounce

import (
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bounce/internal/config"
)

// HighScoreKey is the storage key of the persisted high score.
const HighScoreKey = "bounceHighScore"

// KeyValueStore is the durable storage the session persists its high score in.
// Get reports false when the key is missing.
type KeyValueStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// highScoreMu serializes the read-compare-write of the stored high score
// between sessions sharing one store.
var highScoreMu sync.Mutex

// Status is the lifecycle state of a session.
type Status int

const (
	StatusIdle    Status = iota // Not started yet
	StatusPlaying               // Ticks drive the physics step
	StatusPaused                // Ticks are ignored
	StatusOver                  // No lives left; ticks are ignored
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// Stats are per-game statistics shown on the game over screen.
type Stats struct {
	TotalHits         int
	PowerUpsCollected int
	MaxLevel          int
	PlayTime          time.Duration // Time spent playing, pauses excluded
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for game over and persistence failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSeed sets the RNG seed. Each start or restart derives its own seed from
// it, so a session replays identically given the same commands and ticks.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.seed = seed
	}
}

// Session is the game state machine: idle -> playing <-> paused, playing ->
// over -> playing. It owns one World and applies the events of each step to
// score, level and lives.
type Session struct {
	cfg    config.BounceConfig
	store  KeyValueStore
	logger *log.Logger
	seed   int64
	games  int // Number of games started, mixed into the seed

	status    Status
	closed    bool
	score     int
	level     int
	lives     int
	highScore int
	stats     Stats

	world *World
}

// NewSession creates an idle session. The stored high score is read here and
// again at game over; a missing or malformed value counts as zero. store may be nil, in
// which case nothing is persisted.
func NewSession(cfg config.BounceConfig, store KeyValueStore, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg,
		store:  store,
		logger: log.New(io.Discard),
		status: StatusIdle,
		level:  1,
		lives:  cfg.Session.Lives,
	}
	for _, opt := range opts {
		opt(s)
	}

	if store != nil {
		if v, ok := store.Get(HighScoreKey); ok {
			s.highScore = ParseHighScore(v)
		}
	}

	s.world = NewWorld(cfg, s.seed)
	s.stats.MaxLevel = 1
	return s
}

// ParseHighScore converts a stored value to a score. Anything that is not a
// non-negative integer is treated as no previous high score.
func ParseHighScore(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Start begins the first game. Only valid while idle.
func (s *Session) Start() bool {
	if s.closed || s.status != StatusIdle {
		return false
	}
	s.begin()
	return true
}

// Restart begins a new game after game over.
func (s *Session) Restart() bool {
	if s.closed || s.status != StatusOver {
		return false
	}
	s.begin()
	return true
}

// Pause suspends a running game.
func (s *Session) Pause() bool {
	if s.closed || s.status != StatusPlaying {
		return false
	}
	s.status = StatusPaused
	return true
}

// Resume continues a paused game.
func (s *Session) Resume() bool {
	if s.closed || s.status != StatusPaused {
		return false
	}
	s.status = StatusPlaying
	return true
}

// TogglePause pauses a running game or resumes a paused one.
func (s *Session) TogglePause() bool {
	switch s.status {
	case StatusPlaying:
		return s.Pause()
	case StatusPaused:
		return s.Resume()
	default:
		return false
	}
}

// Close tears the session down. Every later command and tick is ignored.
func (s *Session) Close() {
	s.closed = true
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	return s.closed
}

func (s *Session) begin() {
	s.score = 0
	s.level = 1
	s.lives = s.cfg.Session.Lives
	s.stats = Stats{MaxLevel: 1}
	s.world.Reset(s.seed+int64(s.games), 1)
	s.games++
	s.status = StatusPlaying
}

// Tick runs one physics step if the game is playing and applies its events.
// Ticks in any other state are no-ops and return nil.
func (s *Session) Tick(elapsed time.Duration, controls Controls) []Event {
	if s.closed || s.status != StatusPlaying {
		return nil
	}

	if elapsed > 0 {
		s.stats.PlayTime += elapsed
	}

	events := s.world.Step(StepInput{
		Elapsed:  elapsed,
		Controls: controls,
		Level:    s.level,
		Lives:    s.lives,
	})
	for _, ev := range events {
		s.apply(ev)
	}
	return events
}

func (s *Session) apply(ev Event) {
	switch e := ev.(type) {
	case LifeLost:
		s.lives = e.Remaining
		if s.lives == 0 {
			s.gameOver()
		}
	case TargetHit:
		s.stats.TotalHits++
	case TargetDestroyed:
		s.score += e.Points
	case PowerUpCollected:
		s.stats.PowerUpsCollected++
		if e.Kind == PowerUpExtraLife {
			s.lives++
		}
	case LevelCleared:
		s.score += e.Bonus
		s.level++
		s.stats.MaxLevel = max(s.stats.MaxLevel, s.level)
	}
}

// gameOver moves to the over state and persists a beaten high score.
// Storage failures are logged and otherwise ignored.
func (s *Session) gameOver() {
	s.status = StatusOver

	s.logger.Info("game over",
		"score", s.score,
		"level", s.level,
		"hits", s.stats.TotalHits,
		"powerups", s.stats.PowerUpsCollected,
		"play_time", s.stats.PlayTime.Round(time.Second),
	)

	if s.store == nil {
		s.highScore = max(s.highScore, s.score)
		return
	}

	// Other sessions may have raised the stored value since it was read
	highScoreMu.Lock()
	defer highScoreMu.Unlock()

	if v, ok := s.store.Get(HighScoreKey); ok {
		s.highScore = max(s.highScore, ParseHighScore(v))
	}
	if s.score <= s.highScore {
		return
	}
	s.highScore = s.score
	if err := s.store.Set(HighScoreKey, strconv.Itoa(s.score)); err != nil {
		s.logger.Error("failed to save high score", "error", err)
	}
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	return s.status
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Level returns the current level.
func (s *Session) Level() int {
	return s.level
}

// Lives returns the remaining lives.
func (s *Session) Lives() int {
	return s.lives
}

// HighScore returns the best score known to the session.
func (s *Session) HighScore() int {
	return s.highScore
}

// Stats returns the statistics of the current or last game.
func (s *Session) Stats() Stats {
	return s.stats
}

// World exposes the entity state.
func (s *Session) World() *World {
	return s.world
}
