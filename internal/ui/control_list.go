package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"radar-panel.klederson.com/internal/dialog"
	"radar-panel.klederson.com/internal/panel"
)

// Cursor row style: black text on bright green = unmissable highlight
var cursorRowSty = lipgloss.NewStyle().
	Foreground(ColorBlack).
	Background(ColorMatrixGreen).
	Bold(true)

// RenderControlList renders the scrollable control panel with a cursor.
// When the panel is not shown only a placeholder is drawn.
func RenderControlList(controls []dialog.ControlView, width, height, cursor int, state panel.State, pinned bool) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	titleText := "CONTROLS"
	if pinned {
		titleText += " [pinned]"
	}
	title := StylePanelTitle.Render(titleText)
	separator := StyleRadarRing.Render(strings.Repeat("-", innerW))
	headerLines := []string{title, separator}
	headerCount := len(headerLines)

	innerH := height - 2
	if innerH < headerCount+1 {
		innerH = headerCount + 1
	}
	space := innerH - headerCount

	var rows []string
	switch {
	case state == panel.TemporarilyHidden:
		rows = append(rows, "", StyleHelp.Render(" Editing guard zone..."))
	case state != panel.Shown:
		rows = append(rows, "", StyleHelp.Render(" Panel hidden"), StyleHelp.Render(" [H] to show"))
	case len(controls) == 0:
		rows = append(rows, "", StyleHelp.Render(" No controls"))
	default:
		// Compute viewport start so cursor is always visible
		viewStart := 0
		if cursor >= space {
			viewStart = cursor - space + 1
		}
		for i := viewStart; i < len(controls) && len(rows) < space; i++ {
			rows = append(rows, renderControlRow(controls[i], innerW, i == cursor))
		}
	}

	if len(rows) > space {
		rows = rows[:space]
	}
	for len(rows) < space {
		rows = append(rows, "")
	}

	all := make([]string, 0, innerH)
	all = append(all, headerLines...)
	all = append(all, rows...)

	sty := StylePanelBorder
	if state == panel.Shown {
		sty = StylePanelActive
	}
	rendered := sty.Width(width - 2).Height(innerH).Render(strings.Join(all, "\n"))

	// lipgloss Height() only sets a minimum; it won't truncate overflow.
	outLines := strings.Split(rendered, "\n")
	if len(outLines) > height {
		outLines = outLines[:height]
	}
	for len(outLines) < height {
		outLines = append(outLines, "")
	}
	return strings.Join(outLines, "\n")
}

func renderControlRow(c dialog.ControlView, maxW int, isCursor bool) string {
	label := c.Label
	labelW := maxW / 2
	if len(label) > labelW-3 {
		label = label[:labelW-3]
	}
	value := c.Display.Value
	if c.Unit != "" && !c.Auto && c.Display.Value != "--" {
		value += " " + c.Unit
	}

	if isCursor {
		raw := fmt.Sprintf(">> %-*s %s", labelW-3, label, value)
		return cursorRowSty.Render(truncRaw(raw, maxW))
	}

	valSty := StyleControlValue
	switch {
	case c.Pending:
		valSty = StyleControlPending
	case c.Auto:
		valSty = StyleControlAuto
	}
	valueW := maxW - labelW - 1
	if len(value) > valueW {
		value = value[:valueW]
	}
	return "   " + StyleControlLabel.Render(fmt.Sprintf("%-*s", labelW-3, label)) + " " + valSty.Render(value)
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	if len(s) < w {
		return s + strings.Repeat(" ", w-len(s))
	}
	return s
}
