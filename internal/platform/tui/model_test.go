package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/storage"
)

func testSession(cfg config.BounceConfig) *bounce.Session {
	cfg.PowerUps.SpawnChance = 0
	cfg.Particles.Count = 0
	return bounce.NewSession(cfg, storage.NewMemoryKV(), bounce.WithSeed(7))
}

func testModel(session *bounce.Session, history *storage.Store) Model {
	cfg := core.RuntimeConfig{ScreenW: 60, ScreenH: 24, TickRate: 60, Seed: 7}
	return NewModel(session, history, cfg, config.DifficultyHard)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return model
}

func TestModelStartPauseResume(t *testing.T) {
	s := testSession(config.DefaultBounceConfig())
	m := testModel(s, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if s.Status() != bounce.StatusPlaying {
		t.Fatalf("space should start the game, status %v", s.Status())
	}

	m = update(t, m, runeKey('p'))
	if s.Status() != bounce.StatusPaused {
		t.Fatalf("p should pause, status %v", s.Status())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if s.Status() != bounce.StatusPlaying {
		t.Fatalf("esc should resume, status %v", s.Status())
	}

	// Restart is ignored while playing
	update(t, m, runeKey('r'))
	if s.Status() != bounce.StatusPlaying {
		t.Errorf("r while playing changed status to %v", s.Status())
	}
}

func TestModelQuitClosesSession(t *testing.T) {
	s := testSession(config.DefaultBounceConfig())
	m := testModel(s, nil)

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if !s.Closed() {
		t.Error("quitting should close the session")
	}
	if view := next.View(); view != "" {
		t.Errorf("view after quit should be empty, got %q", view)
	}
}

func TestModelTickElapsed(t *testing.T) {
	s := testSession(config.DefaultBounceConfig())
	m := testModel(s, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	t0 := time.Unix(5000, 0)
	m = update(t, m, TickMsg{Time: t0})
	update(t, m, TickMsg{Time: t0.Add(20*time.Millisecond)})

	// First tick counts as one frame at the tick rate
	expected := time.Second/60 + 20*time.Millisecond
	if got := s.Stats().PlayTime; got != expected {
		t.Errorf("play time = %v, expected %v", got, expected)
	}
}

func TestModelHeldKeyMovesPaddle(t *testing.T) {
	s := testSession(config.DefaultBounceConfig())
	m := testModel(s, nil)
	clock := time.Unix(5000, 0)
	m.now = func() time.Time { return clock }

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	startX := s.World().Paddle().X

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, TickMsg{Time: clock})
	if got := s.World().Paddle().X; got >= startX {
		t.Fatalf("held left should move the paddle left: %v -> %v", startX, got)
	}

	// Past the hold window without a repeat the paddle stops
	clock = clock.Add(time.Second)
	before := s.World().Paddle().X
	update(t, m, TickMsg{Time: clock})
	if got := s.World().Paddle().X; got != before {
		t.Errorf("released key still moved the paddle: %v -> %v", before, got)
	}
}

func TestModelMouseDrag(t *testing.T) {
	s := testSession(config.DefaultBounceConfig())
	m := testModel(s, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	startX := s.World().Paddle().X

	m = update(t, m, tea.MouseMsg{X: 10, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 20, Y: 20, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 20, Y: 20, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	update(t, m, TickMsg{Time: time.Unix(5000, 0)})

	// 10 cells on a 60-cell screen over a 600-unit field
	if got := s.World().Paddle().X; got != startX+100 {
		t.Errorf("paddle X = %v, expected %v", got, startX+100)
	}
}

func TestModelRecordsFinishedGameOnce(t *testing.T) {
	history, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer history.Close()

	cfg := config.DefaultBounceConfig()
	cfg.Session.Lives = 1
	s := testSession(cfg)
	m := testModel(s, history)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Keep the paddle in the other half of the field until the ball falls through
	half := s.World().Config().Field.Width / 2
	for i := 0; i < 20000 && s.Status() == bounce.StatusPlaying; i++ {
		ballX := s.World().Ball().Pos.X
		s.Tick(time.Second/60, bounce.Controls{Left: ballX >= half, Right: ballX < half})
	}
	if s.Status() != bounce.StatusOver {
		t.Fatalf("game did not end, status %v", s.Status())
	}

	t0 := time.Unix(5000, 0)
	m = update(t, m, TickMsg{Time: t0})
	update(t, m, TickMsg{Time: t0.Add(time.Second/60)})

	games, err := history.TopGames("", 0)
	if err != nil {
		t.Fatalf("TopGames() failed: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 recorded game, got %d", len(games))
	}
	if games[0].Difficulty != "hard" || games[0].Score != s.Score() {
		t.Errorf("recorded %+v, expected hard with score %d", games[0], s.Score())
	}
}

func TestModelViewIncludesHelp(t *testing.T) {
	s := testSession(config.DefaultBounceConfig())
	m := testModel(s, nil)

	view := m.View()
	if !strings.Contains(view, "BOUNCE CHALLENGE") {
		t.Error("idle view should show the title overlay")
	}
	if !strings.Contains(view, "quit") {
		t.Error("view should end with the help line")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	s := testSession(config.DefaultBounceConfig())
	m := testModel(s, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.screen.Width() != 100 || m.screen.Height() != 40-helpRows {
		t.Errorf("screen = %dx%d, expected 100x%d", m.screen.Width(), m.screen.Height(), 40-helpRows)
	}
	if s.Status() != bounce.StatusPlaying {
		t.Errorf("resize should not reset the game, status %v", s.Status())
	}
}
