package radar

import (
	"math"

	"radar-panel.klederson.com/internal/config"
)

// CellDistance computes the distance from a cell to the radar center,
// accounting for terminal aspect ratio.
func CellDistance(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	return math.Sqrt(dx*dx + dy*dy)
}

// CellAngle computes the angle from center to a cell.
// Returns radians in [0, 2π), where 0=north, increasing clockwise.
func CellAngle(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	angle := math.Atan2(dx, -dy) // 0=north, clockwise
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// CellPolar converts a cell to the range in meters and the bearing in
// degrees it represents on a scope of the given radius and range scale.
func CellPolar(col, row, centerX, centerY int, radius, scale float64) (rng, bearing float64) {
	rng = CellDistance(col, row, centerX, centerY) / radius * scale
	bearing = CellAngle(col, row, centerX, centerY) * 180 / math.Pi
	return rng, bearing
}

// PolarCell converts a range in meters and bearing in degrees to a cell.
func PolarCell(rng, bearing float64, centerX, centerY int, radius, scale float64) (col, row int) {
	r := MetersToRadius(rng, scale, radius)
	a := bearing * math.Pi / 180
	col = centerX + int(math.Round(r*math.Sin(a)))
	row = centerY - int(math.Round(r*math.Cos(a)*config.AspectRatio))
	return col, row
}

// RingChar returns the appropriate character for a ring at the given angle.
func RingChar(angle float64) rune {
	sector := int(math.Round(NormalizeAngle(angle)/(math.Pi/4))) % 8

	switch sector {
	case 0, 4: // North, South
		return '-'
	case 1, 5: // NE, SW
		return '/'
	case 2, 6: // East, West
		return '|'
	default: // SE, NW
		return '\\'
	}
}

// NormalizeAngle wraps an angle to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// MetersToRadius converts distance in meters to radar units (cells).
// Distances beyond the scale are pinned to the edge.
func MetersToRadius(meters, scale, radarRadius float64) float64 {
	if scale <= 0 || meters > scale {
		return radarRadius
	}
	return (meters / scale) * radarRadius
}
