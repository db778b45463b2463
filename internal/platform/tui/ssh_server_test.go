package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/storage"
)

func testServer() *SSHServer {
	return &SSHServer{
		config: DefaultSSHServerConfig(),
		kv:     storage.NewMemoryKV(),
		logger: log.New(io.Discard),
	}
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, expected SessionModel", next)
	}
	return model
}

func TestSessionModelPickerToGameAndBack(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}
	m := NewSessionModel(testServer(), cfg, "alice")

	// Ticks before a game are dropped
	m = sessionUpdate(t, m, TickMsg{})
	if m.game != nil {
		t.Fatal("no game should run before a selection")
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game == nil || m.quitting {
		t.Fatal("selecting a difficulty should start a game, not quit")
	}
	game := m.game.Session()

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if game.Status() != bounce.StatusPlaying {
		t.Fatalf("enter should start the session, status %v", game.Status())
	}

	// B is ignored while playing
	m = sessionUpdate(t, m, runeKey('b'))
	if m.game == nil {
		t.Fatal("b while playing should not leave the game")
	}

	m = sessionUpdate(t, m, runeKey('p'))
	m = sessionUpdate(t, m, runeKey('b'))
	if m.game != nil {
		t.Fatal("b while paused should return to the picker")
	}
	if !game.Closed() {
		t.Error("leaving a game should close its session")
	}
}

func TestSessionModelQuit(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	m := NewSessionModel(testServer(), cfg, "bob")
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = sessionUpdate(t, m, runeKey('q'))

	if !m.quitting || m.View() != "" {
		t.Error("q in game should end the connection")
	}
}

func TestSessionModelDropsTicksOfLeftGame(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}
	m := NewSessionModel(testServer(), cfg, "carol")

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	first := m.game.gen
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = sessionUpdate(t, m, runeKey('p'))
	m = sessionUpdate(t, m, runeKey('b'))

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game == nil || m.game.gen == first {
		t.Fatalf("second game should get a new tick generation")
	}
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	game := m.game.Session()

	next, cmd := m.Update(TickMsg{Time: time.Unix(5000, 0), Gen: first})
	m = next.(SessionModel)
	if cmd != nil {
		t.Error("a stale tick should not schedule another tick")
	}
	if game.Stats().PlayTime != 0 {
		t.Errorf("stale tick advanced the game by %v", game.Stats().PlayTime)
	}

	_, cmd = m.Update(TickMsg{Time: time.Unix(5000, 0), Gen: m.game.gen})
	if cmd == nil || game.Stats().PlayTime == 0 {
		t.Error("a current tick should advance the game and schedule the next one")
	}
}

func TestSessionsShareHighScore(t *testing.T) {
	srv := testServer()
	srv.config.Game.Session.Lives = 1
	if err := srv.kv.Set(bounce.HighScoreKey, "100"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	s := srv.newSession(config.DifficultyHard, 1, "dave")
	if s.HighScore() != 100 {
		t.Fatalf("high score = %d, expected 100 from the shared store", s.HighScore())
	}
	s.Start()

	// Another connection raises the record while this game runs
	if err := srv.kv.Set(bounce.HighScoreKey, "500"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	half := s.World().Config().Field.Width / 2
	for i := 0; i < 20000 && s.Status() == bounce.StatusPlaying; i++ {
		ballX := s.World().Ball().Pos.X
		s.Tick(time.Second/60, bounce.Controls{Left: ballX >= half, Right: ballX < half})
	}
	if s.Status() != bounce.StatusOver {
		t.Fatalf("game did not end, status %v", s.Status())
	}

	if v, _ := srv.kv.Get(bounce.HighScoreKey); bounce.ParseHighScore(v) < 500 {
		t.Errorf("stored high score dropped to %q", v)
	}
	if s.HighScore() < 500 {
		t.Errorf("session high score = %d, expected at least 500", s.HighScore())
	}
}
