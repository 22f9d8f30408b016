// Package tui runs games in a Bubble Tea program, locally or over SSH.
// It maps keys and mouse events to input frames and paces the simulation.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxTickRate bounds --fps; above it tea.Tick intervals stop being exact.
const maxTickRate = 240

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickInterval converts a tick rate to the delay between ticks.
// Out-of-range rates fall back to 60 or are capped.
func tickInterval(tickRate int) time.Duration {
	switch {
	case tickRate <= 0:
		tickRate = 60
	case tickRate > maxTickRate:
		tickRate = maxTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next simulation tick.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
