// Package device is the radar I/O layer. It turns control commands into
// radar instructions and delivers radar reports to the program as messages.
package device

import (
	tea "github.com/charmbracelet/bubbletea"
	"radar-panel.klederson.com/internal/control"
)

// Sender delivers messages to the event loop. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// ReportMsg is a radar report of the current state of one control. For auto
// modes Value is the radar-determined value.
type ReportMsg struct {
	Kind  control.Kind
	Mode  control.Mode
	Value int
}

// BoundsMsg is a radar capability report of the supported range envelope.
type BoundsMsg struct {
	Min int
	Max int
}

// TargetMsg is a tracked target position. Range is in meters, bearing in
// degrees relative to the heading.
type TargetMsg struct {
	ID      int
	Range   float64
	Bearing float64
}

// ErrorMsg reports device layer errors.
type ErrorMsg struct {
	Err error
}
