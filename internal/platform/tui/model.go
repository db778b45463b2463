package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/storage"
)

// helpRows is the number of terminal rows kept below the playfield for the help line.
const helpRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a bounce session.
type Model struct {
	session    *bounce.Session
	history    *storage.Store // Finished games are recorded here; may be nil
	difficulty config.DifficultyPreset
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	held       heldKeys
	lastTick   time.Time
	dragging   bool
	dragX      int     // Last pointer column while dragging
	dragDX     float64 // Drag distance in playfield units since the last tick
	quitting   bool
	recorded   bool // Whether the current game over has been saved to history
	gen        int  // Tick generation; ticks of other generations are dropped
	now        func() time.Time
}

// NewModel creates a new Bubble Tea model driving the given session.
func NewModel(session *bounce.Session, history *storage.Store, cfg core.RuntimeConfig, difficulty config.DifficultyPreset) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		session:    session,
		history:    history,
		difficulty: difficulty,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 0)),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		held:       heldKeys{window: DefaultHoldWindow},
		now:        time.Now,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.session.Close()
		return m, tea.Quit
	}

	switch action {
	case core.ActionLeft, core.ActionRight:
		m.held.press(action, m.now())
	case core.ActionStart:
		m.session.Start()
	case core.ActionPause:
		if m.session.TogglePause() {
			m.held.release()
		}
	case core.ActionRestart:
		if m.session.Restart() {
			m.recorded = false
			m.held.release()
		}
	}

	return m, nil
}

// handleMouse turns left-button drags into paddle movement.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.dragX = msg.X
		}
	case tea.MouseActionMotion:
		if m.dragging && m.screen.Width() > 0 {
			fieldW := m.session.World().Config().Field.Width
			m.dragDX += float64(msg.X-m.dragX) * fieldW / float64(m.screen.Width())
			m.dragX = msg.X
		}
	case tea.MouseActionRelease:
		m.dragging = false
	}
	return m, nil
}

// handleResize processes window resize events.
// The playfield is scaled to the screen, so the game keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 0))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the session by the time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	elapsed := tickInterval(m.config.TickRate)
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now

	controls := m.held.controls(m.now())
	controls.DragDX = m.dragDX
	m.dragDX = 0

	m.session.Tick(elapsed, controls)

	// Record the finished game once
	if m.session.Status() == bounce.StatusOver && !m.recorded {
		m.recordGame()
		m.recorded = true
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// recordGame saves the finished game to the history.
func (m Model) recordGame() {
	if m.history == nil {
		return
	}
	stats := m.session.Stats()
	//nolint:errcheck // Best-effort save, game continues regardless
	m.history.SaveGame(storage.GameRecord{
		Difficulty: string(m.difficulty),
		Score:      m.session.Score(),
		Level:      stats.MaxLevel,
		Hits:       stats.TotalHits,
		PowerUps:   stats.PowerUpsCollected,
		PlayTime:   stats.PlayTime,
	})
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".bounce", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("bounce_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// Session returns the driven session.
func (m Model) Session() *bounce.Session {
	return m.session
}

// Run starts the Bubble Tea program for the given session.
func Run(session *bounce.Session, history *storage.Store, cfg core.RuntimeConfig, difficulty config.DifficultyPreset) error {
	model := NewModel(session, history, cfg, difficulty)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Report drags for paddle control
	)

	_, err := p.Run()
	session.Close()
	return err
}
