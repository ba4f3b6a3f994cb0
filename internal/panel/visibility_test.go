package panel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func TestShowHide(t *testing.T) {
	v := NewVisibility(0)
	assert.Equal(t, Hidden, v.State())

	v.ShowDialog(t0)
	assert.Equal(t, Shown, v.State())
	_, armed := v.Deadline()
	assert.False(t, armed)

	v.HideDialog()
	assert.Equal(t, Hidden, v.State())
}

func TestHideTemporarilyRoundTrip(t *testing.T) {
	v := NewVisibility(time.Minute)
	v.ShowDialog(t0)

	require.NoError(t, v.HideTemporarily())
	assert.Equal(t, TemporarilyHidden, v.State())
	require.NoError(t, v.HideTemporarily())
	assert.Equal(t, TemporarilyHidden, v.State())

	v.UnHideTemporarily(t0)
	assert.Equal(t, Shown, v.State())
}

func TestHideTemporarilyFromHiddenRejected(t *testing.T) {
	v := NewVisibility(0)
	assert.ErrorIs(t, v.HideTemporarily(), ErrNotShown)
	assert.Equal(t, Hidden, v.State())

	v.UnHideTemporarily(t0)
	assert.Equal(t, Hidden, v.State())
}

func TestHideWhileTemporarilyHidden(t *testing.T) {
	v := NewVisibility(0)
	v.ShowDialog(t0)
	require.NoError(t, v.HideTemporarily())

	v.HideDialog()
	assert.Equal(t, Hidden, v.State())
	v.UnHideTemporarily(t0)
	assert.Equal(t, Hidden, v.State())
}

func TestShowWhileTemporarilyHiddenWaits(t *testing.T) {
	v := NewVisibility(0)
	v.ShowDialog(t0)
	require.NoError(t, v.HideTemporarily())

	v.ShowDialog(t0)
	assert.Equal(t, TemporarilyHidden, v.State())
}

func TestTickAutoHide(t *testing.T) {
	v := NewVisibility(10 * time.Second)
	v.ShowDialog(t0)

	deadline, armed := v.Deadline()
	require.True(t, armed)
	assert.Equal(t, t0.Add(10*time.Second), deadline)

	assert.False(t, v.Tick(t0.Add(9*time.Second)))
	assert.Equal(t, Shown, v.State())

	assert.True(t, v.Tick(t0.Add(10*time.Second)))
	assert.Equal(t, Hidden, v.State())
}

func TestTickIgnoresTemporarilyHidden(t *testing.T) {
	v := NewVisibility(10 * time.Second)
	v.ShowDialog(t0)
	require.NoError(t, v.HideTemporarily())

	assert.False(t, v.Tick(t0.Add(time.Hour)))
	assert.Equal(t, TemporarilyHidden, v.State())
}

func TestTouchRearms(t *testing.T) {
	v := NewVisibility(10 * time.Second)
	v.ShowDialog(t0)
	v.Touch(t0.Add(8 * time.Second))

	assert.False(t, v.Tick(t0.Add(12*time.Second)))
	assert.True(t, v.Tick(t0.Add(18*time.Second)))
}

func TestSetAutoHideTimeout(t *testing.T) {
	v := NewVisibility(10 * time.Second)
	v.ShowDialog(t0)

	v.SetAutoHideTimeout(0, t0)
	_, armed := v.Deadline()
	assert.False(t, armed)
	assert.False(t, v.Tick(t0.Add(time.Hour)))
	assert.Equal(t, Shown, v.State())

	v.SetAutoHideTimeout(time.Second, t0)
	assert.True(t, v.Tick(t0.Add(time.Second)))
}

func TestManualPosition(t *testing.T) {
	v := NewVisibility(0)
	assert.True(t, v.ShouldAutoPosition())
	v.SetManuallyPositioned(true)
	assert.True(t, v.ManuallyPositioned())
	assert.False(t, v.ShouldAutoPosition())
}
