package radar

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"radar-panel.klederson.com/internal/config"
	"radar-panel.klederson.com/internal/guard"
)

var (
	colorBright   = lipgloss.Color("#00FF41")
	colorMid      = lipgloss.Color("#008F11")
	colorDim      = lipgloss.Color("#004A0A")
	colorTarget   = lipgloss.Color("#00FFAA")
	colorBogey    = lipgloss.Color("#FF3300")
	colorZone     = lipgloss.Color("#AA7700")
	colorZoneEdit = lipgloss.Color("#FFCC00")

	styleCenter   = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleRing     = lipgloss.NewStyle().Foreground(colorMid)
	styleDot      = lipgloss.NewStyle().Foreground(colorDim)
	styleTarget   = lipgloss.NewStyle().Foreground(colorTarget).Bold(true)
	styleBogey    = lipgloss.NewStyle().Foreground(colorBogey).Bold(true)
	styleZone     = lipgloss.NewStyle().Foreground(colorZone)
	styleZoneEdit = lipgloss.NewStyle().Foreground(colorZoneEdit)
	styleLegTgt   = lipgloss.NewStyle().Foreground(colorTarget)
	styleLegBogey = lipgloss.NewStyle().Foreground(colorBogey)
	styleLegZone  = lipgloss.NewStyle().Foreground(colorZone)
	styleLabelDim = lipgloss.NewStyle().Foreground(colorMid)
)

// Target is a radar contact placed on the scope.
type Target struct {
	ID      int
	Range   float64 // meters
	Bearing float64 // degrees
	Bogey   bool    // inside an alarm-enabled guard zone
}

// Scene is everything drawn on one frame of the scope.
type Scene struct {
	Scale   float64 // meters at the outer ring
	Zones   []guard.Zone
	Editing int // zone being edited, -1 for none
	Targets []Target
	Sweep   *Sweep
}

type targetPos struct {
	col, row int
	tgt      Target
	label    string
	labelCol int
	labelRow int
}

// Render produces the complete radar display as a styled string.
func Render(width, height int, scene Scene) string {
	if width < 10 || height < 5 || scene.Sweep == nil {
		return ""
	}

	centerX := width / 2
	centerY := height / 2
	radius := float64(min(centerX-1, int(float64(centerY-1)/config.AspectRatio)))
	if radius < 3 {
		radius = 3
	}

	ringRadii := make([]float64, config.RingCount)
	for i := range ringRadii {
		ringRadii[i] = radius * float64(i+1) / float64(config.RingCount)
	}

	tps := buildTargetPositions(scene, centerX, centerY, radius, width)

	type labelCell struct {
		tpIdx   int
		charIdx int
	}
	labelMap := make(map[int]labelCell)
	for i, tp := range tps {
		if tp.label == "" {
			continue
		}
		for ci := 0; ci < len(tp.label); ci++ {
			labelMap[tp.labelRow*width+tp.labelCol+ci] = labelCell{tpIdx: i, charIdx: ci}
		}
	}

	c := cellRenderer{
		centerX:   centerX,
		centerY:   centerY,
		radius:    radius,
		ringRadii: ringRadii,
		scene:     scene,
		targets:   tps,
	}

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if lc, ok := labelMap[row*width+col]; ok {
				tp := tps[lc.tpIdx]
				sb.WriteString(styleLabelFor(tp.tgt, string(tp.label[lc.charIdx])))
				continue
			}
			sb.WriteString(c.render(col, row))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// buildTargetPositions computes positions and resolves label collisions.
func buildTargetPositions(scene Scene, centerX, centerY int, radius float64, width int) []targetPos {
	tps := make([]targetPos, 0, len(scene.Targets))

	type segment struct{ start, end int }
	occupied := make(map[int][]segment)
	collides := func(row, start, end int) bool {
		for _, seg := range occupied[row] {
			if start < seg.end && end > seg.start {
				return true
			}
		}
		return false
	}

	for _, t := range scene.Targets {
		if scene.Scale > 0 && t.Range > scene.Scale {
			continue
		}
		tc, tr := PolarCell(t.Range, t.Bearing, centerX, centerY, radius, scene.Scale)

		label := fmt.Sprintf("T%d", t.ID)
		lc := tc + 2
		if lc+len(label) >= width {
			lc = tc - len(label) - 1
		}
		if lc < 0 {
			lc = 0
		}

		lr := tr
		placed := false
		for _, candidate := range []int{tr, tr + 1, tr - 1} {
			if !collides(candidate, lc, lc+len(label)) {
				lr = candidate
				placed = true
				break
			}
		}
		if !placed {
			label = ""
		}

		tps = append(tps, targetPos{
			col:      tc,
			row:      tr,
			tgt:      t,
			label:    label,
			labelCol: lc,
			labelRow: lr,
		})
		occupied[tr] = append(occupied[tr], segment{tc, tc + 1})
		if label != "" {
			occupied[lr] = append(occupied[lr], segment{lc, lc + len(label)})
		}
	}

	return tps
}

func styleLabelFor(t Target, s string) string {
	if t.Bogey {
		return styleBogey.Render(s)
	}
	return styleLabelDim.Render(s)
}

type cellRenderer struct {
	centerX, centerY int
	radius           float64
	ringRadii        []float64
	scene            Scene
	targets          []targetPos
}

func (c *cellRenderer) render(col, row int) string {
	dist := CellDistance(col, row, c.centerX, c.centerY)
	angle := CellAngle(col, row, c.centerX, c.centerY)
	sweep := c.scene.Sweep

	for _, tp := range c.targets {
		if col == tp.col && row == tp.row {
			return renderTarget(tp.tgt)
		}
	}

	if dist > c.radius+0.5 {
		return " "
	}

	if col == c.centerX && row == c.centerY {
		return styleCenter.Render("+")
	}

	if col == c.centerX && dist <= c.radius {
		return renderSweepChar('|', sweep, angle)
	}
	if row == c.centerY && dist <= c.radius {
		return renderSweepChar('-', sweep, angle)
	}

	for _, ringR := range c.ringRadii {
		if math.Abs(dist-ringR) < 0.8 {
			return renderSweepChar(RingChar(angle), sweep, angle)
		}
	}

	if dist <= c.radius {
		if s, ok := c.zoneCell(dist, angle); ok {
			return s
		}
		return renderInteriorCell(sweep, angle)
	}

	return " "
}

// zoneCell shades cells covered by a guard zone. The zone being edited
// wins over the other one.
func (c *cellRenderer) zoneCell(dist, angle float64) (string, bool) {
	rng := dist / c.radius * c.scene.Scale
	bearing := angle * 180 / math.Pi
	hit := -1
	for i := range c.scene.Zones {
		z := &c.scene.Zones[i]
		if z.Config().OuterRange <= 0 || !z.Contains(rng, bearing) {
			continue
		}
		if hit < 0 || i == c.scene.Editing {
			hit = i
		}
	}
	switch {
	case hit < 0:
		return "", false
	case hit == c.scene.Editing:
		return styleZoneEdit.Render(":"), true
	default:
		return styleZone.Render(":"), true
	}
}

func renderTarget(t Target) string {
	if t.Bogey {
		return styleBogey.Render("X")
	}
	return styleTarget.Render("*")
}

func renderSweepChar(ch rune, sweep *Sweep, angle float64) string {
	color := sweepColor(sweep.Intensity(angle))
	if color == "" {
		return styleRing.Render(string(ch))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(ch))
}

func renderInteriorCell(sweep *Sweep, angle float64) string {
	color := sweepColor(sweep.Intensity(angle))
	if color == "" {
		return styleDot.Render(".")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(".")
}

func sweepColor(intensity float64) string {
	if intensity <= 0 {
		return ""
	}
	if intensity > 0.8 {
		return "#00FF41"
	}
	if intensity > 0.5 {
		return "#00CC33"
	}
	if intensity > 0.3 {
		return "#00AA22"
	}
	return "#005511"
}

// RenderLegend produces the radar legend line with the range scale.
func RenderLegend(width int, scale float64) string {
	legend := "   " +
		styleLegTgt.Render("* target") +
		"  " +
		styleLegBogey.Render("X bogey") +
		"  " +
		styleLegZone.Render(": guard") +
		"  " +
		styleLabelDim.Render("ring "+FormatDistance(scale/config.RingCount))

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}

// FormatDistance renders meters the way the range readout does.
func FormatDistance(m float64) string {
	if m >= 1000 {
		return fmt.Sprintf("%.1fkm", m/1000)
	}
	return fmt.Sprintf("%.0fm", m)
}
