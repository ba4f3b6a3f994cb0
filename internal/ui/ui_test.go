package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radar-panel.klederson.com/internal/control"
	"radar-panel.klederson.com/internal/dialog"
	"radar-panel.klederson.com/internal/guard"
	"radar-panel.klederson.com/internal/panel"
)

func TestZoneFormSkipsBearingsForCircle(t *testing.T) {
	f := NewZoneForm(0, guard.Config{Type: guard.TypeCircle})
	var seen []ZoneField
	for i := 0; i < 5; i++ {
		f.NextField()
		seen = append(seen, f.Field)
	}
	assert.Equal(t, []ZoneField{FieldInner, FieldOuter, FieldARPA, FieldAlarm, FieldType}, seen)

	f.Adjust(1) // to arc
	assert.Equal(t, guard.TypeArc, f.Config.Type)
	f.PrevField()
	assert.Equal(t, FieldAlarm, f.Field)
	f.PrevField()
	f.PrevField()
	assert.Equal(t, FieldEnd, f.Field)
}

func TestZoneFormAdjust(t *testing.T) {
	f := NewZoneForm(1, guard.Config{Type: guard.TypeArc, StartBearing: 0})

	f.Field = FieldInner
	f.Adjust(-3)
	assert.Zero(t, f.Config.InnerRange)
	f.Field = FieldOuter
	f.Adjust(4)
	assert.InDelta(t, 200, f.Config.OuterRange, 1e-9)

	f.Field = FieldStart
	f.Adjust(-1)
	assert.InDelta(t, 355, f.Config.StartBearing, 1e-9)
	assert.Equal(t, "355 deg", f.Value(FieldStart))

	f.Field = FieldAlarm
	f.Adjust(1)
	assert.True(t, f.Config.Alarm)
	assert.Equal(t, "on", f.Value(FieldAlarm))
	require.NoError(t, f.Config.Validate())
}

func TestRenderControlListStates(t *testing.T) {
	controls := []dialog.ControlView{
		{Display: control.Display{Label: "Gain", Value: "50"}, Kind: control.KindGain},
		{Display: control.Display{Label: "Sea clutter", Value: control.PendingLabel, Auto: true, Pending: true}, Kind: control.KindSea},
	}

	out := RenderControlList(controls, 40, 12, 0, panel.Shown, false)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 12)
	assert.Contains(t, out, "CONTROLS")
	assert.Contains(t, out, "Gain")
	assert.Contains(t, out, "pending")

	hidden := RenderControlList(controls, 40, 12, 0, panel.Hidden, false)
	assert.Contains(t, hidden, "Panel hidden")
	assert.NotContains(t, hidden, "Gain")

	editing := RenderControlList(controls, 40, 12, 0, panel.TemporarilyHidden, true)
	assert.Contains(t, editing, "Editing guard zone")
	assert.Contains(t, editing, "pinned")
}

func TestRenderGuardPanel(t *testing.T) {
	f := NewZoneForm(0, guard.Config{Type: guard.TypeArc, OuterRange: 500, StartBearing: 350, EndBearing: 20})
	out := RenderGuardPanel(f, 40, 30, "bad geometry")
	assert.Contains(t, out, "GUARD ZONE 1")
	assert.Contains(t, out, "bad geometry")
	assert.Contains(t, out, "350 deg")
	assert.Len(t, strings.Split(out, "\n"), 30)
}

func TestRenderZoneCompass(t *testing.T) {
	out := RenderZoneCompass(30, 11, guard.Config{Type: guard.TypeArc, StartBearing: 0, EndBearing: 90})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 11)
	for _, l := range lines {
		assert.Equal(t, 30, lipgloss.Width(l))
	}
	assert.Contains(t, out, "H")
	assert.Empty(t, RenderZoneCompass(5, 5, guard.Config{}))
}

func TestRenderStatusBar(t *testing.T) {
	out := RenderStatusBar(120, StatusInfo{
		Visibility:  panel.TemporarilyHidden,
		Bogeys:      []int{3, 7},
		LastCommand: "gain=51",
		LastError:   "bounds unknown",
	})
	assert.Contains(t, out, "ZONE EDIT")
	assert.Contains(t, out, "BOGEY T3,T7")
	assert.Contains(t, out, "gain=51")
	assert.Contains(t, out, "bounds unknown")
}
