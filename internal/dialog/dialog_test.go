package dialog

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"radar-panel.klederson.com/internal/control"
	"radar-panel.klederson.com/internal/guard"
	"radar-panel.klederson.com/internal/panel"
)

// recordingSink is a CommandSink that keeps every submitted command.
type recordingSink struct {
	mu   sync.Mutex
	cmds []control.Command
}

func (s *recordingSink) Submit(cmd control.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmds = append(s.cmds, cmd)
}

func (s *recordingSink) Commands() []control.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]control.Command(nil), s.cmds...)
}

var t0 = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func testProfile() *control.Profile {
	return &control.Profile{
		Name:  "test",
		Range: control.RangeSpec{Unit: "m"},
		Controls: []control.Spec{
			{Kind: control.KindGain, Min: 0, Max: 100, Default: 50, Auto: true},
			{Kind: control.KindSea, Min: 0, Max: 100, AutoNames: []string{"Harbor", "Offshore"}, StartAuto: true},
			{Kind: control.KindRain, Min: 0, Max: 100},
		},
	}
}

func newTestDialog(t *testing.T, opts ...Option) (*Dialog, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	opts = append([]Option{WithLogger(zap.NewNop()), WithClock(func() time.Time { return t0 })}, opts...)
	d, err := New(testProfile(), sink, opts...)
	require.NoError(t, err)
	return d, sink
}

func TestNewRegistersProfileControls(t *testing.T) {
	d, _ := newTestDialog(t)
	assert.Equal(t, []control.Kind{control.KindRange, control.KindGain, control.KindSea, control.KindRain}, d.Kinds())
	assert.True(t, d.Has(control.KindRange))
	assert.False(t, d.Has(control.KindTargetBoost))
	assert.Equal(t, "test", d.Model())
}

func TestNewRejectsBadProfile(t *testing.T) {
	p := testProfile()
	p.Controls = append(p.Controls, control.Spec{Kind: control.KindTargetBoost, Min: 3, Max: 1})
	_, err := New(p, nil)
	assert.ErrorIs(t, err, control.ErrInvalidBounds)
}

func TestGainScenarioThroughDialog(t *testing.T) {
	d, sink := newTestDialog(t)

	require.NoError(t, d.RouteAdjustment(control.KindGain, 20))
	v, err := d.Parameter(control.KindGain)
	require.NoError(t, err)
	assert.Equal(t, control.Manual(), v.Mode)
	assert.Equal(t, 70, v.Value)

	require.NoError(t, d.RouteAuto(control.KindGain, 0))
	v, _ = d.Parameter(control.KindGain)
	assert.Equal(t, control.AutoConfirmed(), v.Mode)
	assert.Equal(t, control.BaseSentinel, v.Value)
	assert.True(t, v.Pending)

	d.ReportFromDevice(control.KindGain, 42, control.Manual())
	v, _ = d.Parameter(control.KindGain)
	assert.Equal(t, control.Manual(), v.Mode)
	assert.Equal(t, 42, v.Value)

	assert.Equal(t, []control.Command{
		{Kind: control.KindGain, Mode: control.Manual(), Value: 70},
		{Kind: control.KindGain, Mode: control.AutoConfirmed()},
	}, sink.Commands())
}

func TestRouteUnknownParameter(t *testing.T) {
	d, sink := newTestDialog(t)

	err := d.RouteAdjustment(control.KindTargetBoost, 1)
	assert.ErrorIs(t, err, ErrUnknownParameter)
	err = d.RouteAuto(control.KindTargetBoost, 0)
	assert.ErrorIs(t, err, ErrUnknownParameter)
	_, err = d.Parameter(control.KindTargetBoost)
	assert.ErrorIs(t, err, ErrUnknownParameter)

	assert.Empty(t, sink.Commands())
	assert.Contains(t, d.View().LastError, "unknown parameter")
}

func TestRouteErrorsAreNotSent(t *testing.T) {
	d, sink := newTestDialog(t)

	assert.ErrorIs(t, d.RouteAuto(control.KindRain, 0), control.ErrUnsupportedMode)
	assert.ErrorIs(t, d.RouteAuto(control.KindSea, 2), control.ErrInvalidVariant)
	assert.ErrorIs(t, d.RouteAdjustment(control.KindRange, 1), control.ErrBoundsUnknown)
	assert.ErrorIs(t, d.RouteAuto(control.KindRange, 1), control.ErrInvalidVariant)
	assert.Empty(t, sink.Commands())
}

func TestRangeThroughDialog(t *testing.T) {
	d, sink := newTestDialog(t)

	require.Error(t, d.RouteAdjustment(control.KindRange, 1))
	require.NoError(t, d.ReportBounds(1, 96))

	v, _ := d.Parameter(control.KindRange)
	assert.Equal(t, control.UnsetValue, v.Value)

	require.NoError(t, d.RouteAdjustment(control.KindRange, 1))
	v, _ = d.Parameter(control.KindRange)
	assert.Equal(t, 1, v.Value)

	require.NoError(t, d.RouteAuto(control.KindRange, 0))
	assert.Len(t, sink.Commands(), 2)

	assert.ErrorIs(t, d.ReportBounds(5, 1), control.ErrInvalidBounds)
}

func TestCycleAuto(t *testing.T) {
	d, sink := newTestDialog(t)

	require.NoError(t, d.CycleAuto(control.KindSea))
	require.NoError(t, d.CycleAuto(control.KindSea))
	require.NoError(t, d.CycleAuto(control.KindSea))

	cmds := sink.Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, control.AutoNamed(0), cmds[0].Mode)
	assert.Equal(t, control.AutoNamed(1), cmds[1].Mode)
	assert.Equal(t, control.AutoNamed(0), cmds[2].Mode)
}

func TestReportFromDevice(t *testing.T) {
	d, _ := newTestDialog(t)

	t.Run("UnknownKindDropped", func(t *testing.T) {
		before := d.View()
		d.ReportFromDevice(control.KindTargetBoost, 1, control.Manual())
		d.ReportFromDevice(control.Kind(999), 1, control.Manual())
		assert.Equal(t, before, d.View())
	})

	t.Run("NamedVariantResolvesPending", func(t *testing.T) {
		v, _ := d.Parameter(control.KindSea)
		assert.Equal(t, control.AutoPending(), v.Mode)
		assert.Equal(t, control.PendingLabel, v.Display.Value)

		d.ReportFromDevice(control.KindSea, 33, control.AutoNamed(1))
		v, _ = d.Parameter(control.KindSea)
		assert.Equal(t, control.AutoNamed(1), v.Mode)
		assert.Equal(t, control.SentinelFor(1), v.Value)
		assert.Equal(t, "Auto: Offshore 33", v.Display.Value)
		assert.False(t, v.Pending)
	})

	t.Run("InvalidReportIgnored", func(t *testing.T) {
		d.ReportFromDevice(control.KindRain, 10, control.AutoConfirmed())
		v, _ := d.Parameter(control.KindRain)
		assert.Equal(t, control.Manual(), v.Mode)
	})
}

func TestGuardZones(t *testing.T) {
	d, _ := newTestDialog(t)

	cfg := guard.Config{Type: guard.TypeArc, InnerRange: 100, OuterRange: 800, StartBearing: 350, EndBearing: 20, Alarm: true}
	require.NoError(t, d.ConfigureZone(0, cfg))
	require.NoError(t, d.ConfigureZone(1, guard.Config{Type: guard.TypeCircle, OuterRange: 300}))

	err := d.ConfigureZone(0, guard.Config{InnerRange: 50, OuterRange: 10})
	assert.ErrorIs(t, err, guard.ErrInvalidGeometry)
	got, err := d.Zone(0)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	assert.ErrorIs(t, d.ConfigureZone(2, cfg), ErrUnknownZone)
	_, err = d.Zone(-1)
	assert.ErrorIs(t, err, ErrUnknownZone)

	assert.Equal(t, []int{0}, d.ZonesContaining(200, 5))
	assert.Empty(t, d.ZonesContaining(200, 90))

	v := d.View()
	assert.True(t, v.Zones[1].Contains(250, 90))
}

func TestZoneEditHidesPanelTemporarily(t *testing.T) {
	d, _ := newTestDialog(t)

	assert.ErrorIs(t, d.EditZone(0), panel.ErrNotShown)

	d.ShowDialog()
	require.NoError(t, d.EditZone(1))
	assert.Equal(t, panel.TemporarilyHidden, d.Visibility())
	idx, ok := d.EditingZone()
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	d.FinishZoneEdit()
	assert.Equal(t, panel.Shown, d.Visibility())
	_, ok = d.EditingZone()
	assert.False(t, ok)

	assert.ErrorIs(t, d.EditZone(5), ErrUnknownZone)
}

func TestAutoHide(t *testing.T) {
	d, _ := newTestDialog(t, WithAutoHide(30*time.Second))

	d.ShowDialog()
	assert.Equal(t, t0.Add(30*time.Second), d.View().AutoHideDeadline)

	assert.False(t, d.Tick(t0.Add(29*time.Second)))
	assert.True(t, d.Tick(t0.Add(31*time.Second)))
	assert.Equal(t, panel.Hidden, d.Visibility())

	d.ShowDialog()
	require.NoError(t, d.HideTemporarily())
	assert.False(t, d.Tick(t0.Add(time.Hour)))
	assert.Equal(t, panel.TemporarilyHidden, d.Visibility())
	d.UnHideTemporarily()
	assert.Equal(t, panel.Shown, d.Visibility())

	d.SetAutoHideTimeout(0)
	assert.False(t, d.Tick(t0.Add(time.Hour)))
}

func TestToggleAndPosition(t *testing.T) {
	d, _ := newTestDialog(t)
	d.ToggleDialog()
	assert.Equal(t, panel.Shown, d.Visibility())
	d.ToggleDialog()
	assert.Equal(t, panel.Hidden, d.Visibility())

	d.SetManuallyPositioned(true)
	assert.True(t, d.View().ManuallyPositioned)
}

func TestConcurrentReportsAndAdjustments(t *testing.T) {
	d, _ := newTestDialog(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = d.RouteAdjustment(control.KindGain, 1)
		}(i)
		go func(i int) {
			defer wg.Done()
			d.ReportFromDevice(control.KindGain, i, control.Manual())
		}(i)
	}
	wg.Wait()

	v, err := d.Parameter(control.KindGain)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v.Value, 0)
	assert.LessOrEqual(t, v.Value, 100)
}

func TestConcurrentCycleAutoAlternates(t *testing.T) {
	d, sink := newTestDialog(t)
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.CycleAuto(control.KindSea)
		}()
	}
	wg.Wait()

	cmds := sink.Commands()
	require.Len(t, cmds, 40)
	for i, cmd := range cmds {
		assert.Equal(t, control.AutoNamed(i%2), cmd.Mode, "command %d", i)
	}
}
