package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"radar-panel.klederson.com/internal/panel"
)

// StatusInfo is what the bottom bar reports.
type StatusInfo struct {
	Visibility  panel.State
	AutoHideIn  time.Duration // zero when auto-hide is off
	Targets     int
	Bogeys      []int // target ids inside alarm zones
	SweepDeg    float64
	LastCommand string
	LastError   string
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s StatusInfo) string {
	var status string
	switch s.Visibility {
	case panel.Shown:
		status = StyleStatusShown.Render("[PANEL]")
	case panel.TemporarilyHidden:
		status = StyleStatusHidden.Render("[ZONE EDIT]")
	default:
		status = StyleStatusHidden.Render("[HIDDEN]")
	}

	info := fmt.Sprintf(" Targets: %d  Sweep: %03ddeg", s.Targets, int(s.SweepDeg))
	if s.AutoHideIn > 0 {
		info += fmt.Sprintf("  Hide in: %ds", int(s.AutoHideIn.Round(time.Second).Seconds()))
	}
	if s.LastCommand != "" {
		info += "  Sent: " + s.LastCommand
	}

	content := status + StyleStatusBar.Foreground(ColorGreen).Render(info)
	if len(s.Bogeys) > 0 {
		ids := make([]string, len(s.Bogeys))
		for i, id := range s.Bogeys {
			ids[i] = fmt.Sprintf("T%d", id)
		}
		content += "  " + StyleStatusError.Render("BOGEY "+strings.Join(ids, ","))
	}
	if s.LastError != "" {
		content += "  " + StyleStatusError.Render("! "+s.LastError)
	}

	gap := width - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
