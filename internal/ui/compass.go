package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"radar-panel.klederson.com/internal/guard"
)

// RenderZoneCompass renders a bearing compass with the guard zone sector
// highlighted and arrows on the start and end bearings of an arc.
// Bearings are degrees relative to the heading, clockwise.
func RenderZoneCompass(width, height int, cfg guard.Config) string {
	if width < 9 || height < 5 {
		return ""
	}

	grid := make([][]byte, height)
	inZone := make([][]bool, height)
	isArrow := make([][]bool, height)
	for i := range grid {
		grid[i] = make([]byte, width)
		inZone[i] = make([]bool, width)
		isArrow[i] = make([]bool, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	fcx := float64(width) / 2.0
	fcy := float64(height) / 2.0
	rx := fcx - 2.0 // horizontal radius in columns
	ry := fcy - 2.0 // vertical radius in rows
	if rx < 3 {
		rx = 3
	}
	if ry < 2 {
		ry = 2
	}

	covered := func(a float64) bool {
		if cfg.Type == guard.TypeCircle {
			return true
		}
		return guard.InArc(a*180/math.Pi, cfg.StartBearing, cfg.EndBearing)
	}

	// Draw compass ring
	steps := 80
	for i := 0; i < steps; i++ {
		a := float64(i) * 2 * math.Pi / float64(steps)
		col := int(math.Round(fcx + rx*math.Sin(a)))
		row := int(math.Round(fcy - ry*math.Cos(a)))
		if col >= 0 && col < width && row >= 0 && row < height && grid[row][col] == ' ' {
			grid[row][col] = ringChar(a)
			inZone[row][col] = covered(a)
		}
	}

	cx := int(math.Round(fcx))
	cy := int(math.Round(fcy))

	// Heading and cardinal markers
	setGrid(grid, width, height, cx, cy-int(math.Round(ry))-1, 'H')
	setGrid(grid, width, height, cx, cy+int(math.Round(ry))+1, 'S')
	setGrid(grid, width, height, cx+int(math.Round(rx))+1, cy, 'E')
	setGrid(grid, width, height, cx-int(math.Round(rx))-1, cy, 'W')

	// Cross hairs (faint axes)
	for r := cy - int(ry) + 1; r < cy+int(ry); r++ {
		if r != cy && grid[r][cx] == ' ' {
			grid[r][cx] = ':'
		}
	}
	for c := cx - int(rx) + 1; c < cx+int(rx); c++ {
		if c != cx && grid[cy][c] == ' ' {
			grid[cy][c] = '.'
		}
	}

	setGrid(grid, width, height, cx, cy, '+')

	if cfg.Type == guard.TypeArc {
		for _, deg := range []float64{cfg.StartBearing, cfg.EndBearing} {
			drawArrow(grid, isArrow, width, height, fcx, fcy, rx, ry, deg*math.Pi/180)
		}
	}

	ringSty := lipgloss.NewStyle().Foreground(ColorDimGreen)
	zoneSty := lipgloss.NewStyle().Foreground(ColorZone).Bold(true)
	arrowSty := lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	axisSty := lipgloss.NewStyle().Foreground(lipgloss.Color("#003300"))
	markSty := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ch := grid[row][col]
			switch {
			case ch == 'H' || ch == 'S' || ch == 'E' || ch == 'W' || ch == '+':
				sb.WriteString(markSty.Render(string(ch)))
			case isArrow[row][col]:
				sb.WriteString(arrowSty.Render(string(ch)))
			case ch == ':' || ch == '.':
				sb.WriteString(axisSty.Render(string(ch)))
			case inZone[row][col]:
				sb.WriteString(zoneSty.Render(string(ch)))
			case ch != ' ':
				sb.WriteString(ringSty.Render(string(ch)))
			default:
				sb.WriteByte(' ')
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// drawArrow draws a shaft from the center to the ring along angle radians.
func drawArrow(grid [][]byte, isArrow [][]bool, width, height int, fcx, fcy, rx, ry, angle float64) {
	const frac = 0.85
	shaftSteps := int(math.Max(rx, ry) * frac)
	if shaftSteps < 2 {
		shaftSteps = 2
	}

	sinA := math.Sin(angle)
	cosA := math.Cos(angle)
	tipCol, tipRow := -1, -1
	for s := 1; s <= shaftSteps; s++ {
		t := float64(s) / float64(shaftSteps) * frac
		col := int(math.Round(fcx + t*rx*sinA))
		row := int(math.Round(fcy - t*ry*cosA))
		if col >= 0 && col < width && row >= 0 && row < height {
			grid[row][col] = shaftChar(angle)
			isArrow[row][col] = true
			tipCol, tipRow = col, row
		}
	}
	if tipCol >= 0 {
		grid[tipRow][tipCol] = arrowTip(angle)
	}
}

func setGrid(grid [][]byte, w, h, col, row int, ch byte) {
	if col >= 0 && col < w && row >= 0 && row < h {
		grid[row][col] = ch
	}
}

func sector(a float64) int {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return int(math.Round(a/(math.Pi/4))) % 8
}

func ringChar(a float64) byte {
	switch sector(a) {
	case 1, 5:
		return '\\'
	case 2, 6:
		return '|'
	case 3, 7:
		return '/'
	}
	return '-'
}

// shaftChar returns the line character for a given angle direction.
func shaftChar(a float64) byte {
	switch sector(a) {
	case 2, 6: // E, W
		return '-'
	case 1, 5: // NE, SW
		return '/'
	case 3, 7: // SE, NW
		return '\\'
	}
	return '|'
}

// arrowTip returns the arrowhead character for a given angle.
func arrowTip(a float64) byte {
	switch sector(a) {
	case 0:
		return '^'
	case 1, 5:
		return '/'
	case 2:
		return '>'
	case 3, 7:
		return '\\'
	case 4:
		return 'v'
	case 6:
		return '<'
	}
	return '*'
}
