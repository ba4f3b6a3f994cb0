package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderGuardPanel renders the guard zone editor that replaces the control
// panel while a zone is being edited.
func RenderGuardPanel(form ZoneForm, width, height int, errMsg string) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	title := StylePanelTitle.Render(fmt.Sprintf("GUARD ZONE %d", form.Index+1))
	escHint := StyleHelp.Render("[ESC]")
	titleLine := title + strings.Repeat(" ", max(0, innerW-lipgloss.Width(title)-lipgloss.Width(escHint))) + escHint

	sep := StyleRadarRing.Render(strings.Repeat("-", innerW))

	lines := []string{titleLine, sep, ""}

	for f := FieldType; f < zoneFieldCount; f++ {
		label := fmt.Sprintf("  %-8s", f.String())
		value := form.Value(f)
		switch {
		case f == form.Field:
			lines = append(lines, cursorRowSty.Render(truncRaw(">"+label[1:]+value, innerW)))
		case !form.Enabled(f):
			lines = append(lines, StyleHelp.Render(label+value))
		default:
			lines = append(lines, StyleControlLabel.Render(label)+StyleZoneField.Render(value))
		}
	}

	lines = append(lines, "")
	if errMsg != "" {
		lines = append(lines, StyleStatusError.Render(" "+errMsg))
	}
	lines = append(lines, StyleHelp.Render(" tab field  +/- change  enter apply"))
	lines = append(lines, "")

	compassH := height - len(lines) - 3
	if compassH < 5 {
		compassH = 5
	}
	compassW := innerW
	if compassW > compassH*3 {
		compassW = compassH * 3 // keep roughly proportional
	}

	if compass := RenderZoneCompass(compassW, compassH, form.Config); compass != "" {
		pad := (innerW - compassW) / 2
		if pad < 0 {
			pad = 0
		}
		prefix := strings.Repeat(" ", pad)
		for _, cl := range strings.Split(compass, "\n") {
			lines = append(lines, prefix+cl)
		}
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	if len(lines) > height-2 && height > 2 {
		lines = lines[:height-2]
	}

	return StylePanelActive.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}
