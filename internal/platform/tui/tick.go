// Package tui runs devden in a terminal with Bubble Tea, locally or over SSH.
// It maps keys and the mouse to input frames and draws the game with
// half-block cells.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent when the model should poll the frame scheduler.
type TickMsg time.Time

// tickCmd polls twice per simulation interval. The scheduler decides which
// polls run a step.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(2*tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
