package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the radar panel and control panel horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, radarPanel, sidePanel, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, radarPanel, sidePanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}

// ComposeOverlay places the control panel on the left of the radar, used
// when the operator has moved the panel away from its default spot.
func ComposeOverlay(menuBar, radarPanel, sidePanel, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, sidePanel, radarPanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
