package radar

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radar-panel.klederson.com/internal/guard"
)

func TestCellPolarRoundTrip(t *testing.T) {
	const (
		cx, cy = 40, 20
		radius = 30.0
		scale  = 3000.0
	)
	col, row := PolarCell(1500, 90, cx, cy, radius, scale)
	assert.Equal(t, cx+15, col)
	assert.Equal(t, cy, row)

	rng, bearing := CellPolar(col, row, cx, cy, radius, scale)
	assert.InDelta(t, 1500, rng, 1)
	assert.InDelta(t, 90, bearing, 0.01)

	col, row = PolarCell(3000, 0, cx, cy, radius, scale)
	assert.Equal(t, cx, col)
	assert.Less(t, row, cy)
}

func TestMetersToRadiusPinsOutOfScale(t *testing.T) {
	assert.InDelta(t, 10, MetersToRadius(500, 1000, 20), 1e-9)
	assert.InDelta(t, 20, MetersToRadius(5000, 1000, 20), 1e-9)
	assert.InDelta(t, 20, MetersToRadius(5, 0, 20), 1e-9)
}

func TestSweepIntensity(t *testing.T) {
	s := &Sweep{StartTime: time.Unix(0, 0)}
	s.UpdateAt(s.StartTime)
	assert.InDelta(t, 0, s.Angle, 1e-9)
	assert.InDelta(t, 1, s.Intensity(0), 1e-9)
	assert.Zero(t, s.Intensity(math.Pi))

	// A quarter turn at 24 rpm takes 625ms.
	s.UpdateAt(s.StartTime.Add(625 * time.Millisecond))
	assert.InDelta(t, 90, s.Degrees(), 0.01)
}

func TestRenderDimensions(t *testing.T) {
	scene := Scene{Scale: 1000, Editing: -1, Sweep: NewSweep()}
	out := Render(40, 20, scene)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 20)
	for _, l := range lines {
		assert.Equal(t, 40, lipgloss.Width(l))
	}
	assert.Empty(t, Render(5, 5, scene))
}

func TestRenderTargetsAndZones(t *testing.T) {
	zones := []guard.Zone{*guard.New(0), *guard.New(1)}
	require.NoError(t, (&zones[0]).Configure(guard.Config{
		Type: guard.TypeCircle, InnerRange: 200, OuterRange: 600, Alarm: true,
	}))
	scene := Scene{
		Scale:   1000,
		Zones:   zones,
		Editing: -1,
		Targets: []Target{
			{ID: 1, Range: 400, Bearing: 45, Bogey: true},
			{ID: 2, Range: 800, Bearing: 200},
			{ID: 3, Range: 5000, Bearing: 10},
		},
		Sweep: NewSweep(),
	}
	out := Render(60, 30, scene)
	assert.Contains(t, out, "X")
	assert.Contains(t, out, "*")
	assert.Contains(t, out, ":")
	assert.Contains(t, out, "T")
	assert.NotContains(t, out, "T3")
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "250m", FormatDistance(250))
	assert.Equal(t, "1.5km", FormatDistance(1500))
}
