// Package tui provides the Bubble Tea front end of the bounce game.
// It handles the terminal UI loop, input mapping, the difficulty picker,
// the scoreboard and remote play over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg carries the wall-clock time of a simulation tick. The model steps
// the session by the distance between consecutive ticks. Gen identifies the
// game whose tick chain sent it.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// tickInterval converts a tick rate to the time between ticks.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next tick of game generation gen.
func tickCmd(tickRate, gen int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
