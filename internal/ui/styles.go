package ui

import "github.com/charmbracelet/lipgloss"

// Phosphor color palette
var (
	ColorMatrixGreen  = lipgloss.Color("#00FF41")
	ColorGreen        = lipgloss.Color("#00CC33")
	ColorMidGreen     = lipgloss.Color("#008F11")
	ColorDimGreen     = lipgloss.Color("#004A0A")
	ColorBlack        = lipgloss.Color("#000000")
	ColorAuto         = lipgloss.Color("#00FFAA")
	ColorZone         = lipgloss.Color("#FFCC00")
	ColorBorderBright = lipgloss.Color("#00FF41")
	ColorBorderNorm   = lipgloss.Color("#00AA22")
	ColorError        = lipgloss.Color("#FF3300")
	ColorWarning      = lipgloss.Color("#FFAA00")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleStatusShown = lipgloss.NewStyle().
				Foreground(ColorMatrixGreen).
				Bold(true)

	StyleStatusHidden = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StyleStatusError = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderBright)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleControlLabel = lipgloss.NewStyle().
				Foreground(ColorMidGreen)

	StyleControlValue = lipgloss.NewStyle().
				Foreground(ColorMatrixGreen).
				Bold(true)

	StyleControlAuto = lipgloss.NewStyle().
				Foreground(ColorAuto).
				Bold(true)

	StyleControlPending = lipgloss.NewStyle().
				Foreground(ColorWarning)

	StyleControlUnit = lipgloss.NewStyle().
				Foreground(ColorMidGreen)

	StyleZoneField = lipgloss.NewStyle().
			Foreground(ColorZone).
			Bold(true)

	StyleRadarRing = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleCheckOn = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleCheckOff = lipgloss.NewStyle().
			Foreground(ColorDimGreen)
)
