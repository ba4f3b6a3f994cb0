// Package panel tracks whether the control panel is shown, hidden, or
// temporarily hidden behind another dialog, and when it auto-hides.
package panel

import (
	"errors"
	"time"
)

// ErrNotShown is returned by HideTemporarily when the panel is not shown.
var ErrNotShown = errors.New("panel is not shown")

// State is the visibility state of the panel.
type State int

const (
	Hidden State = iota
	Shown
	TemporarilyHidden
)

func (s State) String() string {
	switch s {
	case Shown:
		return "shown"
	case TemporarilyHidden:
		return "temporarily hidden"
	default:
		return "hidden"
	}
}

// Visibility is the panel visibility state machine. Times are passed in so
// the tick source stays with the caller.
type Visibility struct {
	state State
	// restore is the state UnHideTemporarily returns to.
	restore State

	timeout  time.Duration // zero means never
	deadline time.Time     // zero means never

	manuallyPositioned bool
}

// NewVisibility creates a hidden panel with the given auto-hide timeout.
func NewVisibility(timeout time.Duration) *Visibility {
	if timeout < 0 {
		timeout = 0
	}
	return &Visibility{state: Hidden, timeout: timeout}
}

// State returns the current state.
func (v *Visibility) State() State { return v.state }

// Deadline returns the auto-hide deadline and whether one is armed.
func (v *Visibility) Deadline() (time.Time, bool) {
	return v.deadline, !v.deadline.IsZero()
}

// AutoHideTimeout returns the configured timeout, zero for never.
func (v *Visibility) AutoHideTimeout() time.Duration { return v.timeout }

// ShowDialog shows the panel and re-arms the auto-hide deadline. Showing a
// temporarily hidden panel leaves it hidden until UnHideTemporarily.
func (v *Visibility) ShowDialog(now time.Time) {
	if v.state == TemporarilyHidden {
		v.restore = Shown
		return
	}
	v.state = Shown
	v.arm(now)
}

// HideDialog hides the panel. A temporarily hidden panel is hidden for good
// and will not come back on UnHideTemporarily.
func (v *Visibility) HideDialog() {
	v.state = Hidden
	v.restore = Hidden
	v.deadline = time.Time{}
}

// HideTemporarily suppresses a shown panel while another dialog has focus.
// It is a no-op when already temporarily hidden.
func (v *Visibility) HideTemporarily() error {
	switch v.state {
	case TemporarilyHidden:
		return nil
	case Shown:
		v.restore = Shown
		v.state = TemporarilyHidden
		return nil
	default:
		return ErrNotShown
	}
}

// UnHideTemporarily restores the state remembered by HideTemporarily.
func (v *Visibility) UnHideTemporarily(now time.Time) {
	if v.state != TemporarilyHidden {
		return
	}
	v.state = v.restore
	if v.state == Shown {
		v.arm(now)
	}
}

// Touch re-arms the auto-hide deadline after user activity.
func (v *Visibility) Touch(now time.Time) {
	if v.state == Shown {
		v.arm(now)
	}
}

// Tick hides a shown panel whose auto-hide deadline has passed. It reports
// whether the state changed.
func (v *Visibility) Tick(now time.Time) bool {
	if v.state != Shown || v.timeout == 0 || v.deadline.IsZero() {
		return false
	}
	if now.Before(v.deadline) {
		return false
	}
	v.state = Hidden
	v.deadline = time.Time{}
	return true
}

// SetAutoHideTimeout changes the timeout; zero or negative means never.
func (v *Visibility) SetAutoHideTimeout(timeout time.Duration, now time.Time) {
	if timeout <= 0 {
		v.timeout = 0
		v.deadline = time.Time{}
		return
	}
	v.timeout = timeout
	if v.state == Shown {
		v.arm(now)
	}
}

// ManuallyPositioned reports whether the user placed the panel.
func (v *Visibility) ManuallyPositioned() bool { return v.manuallyPositioned }

// SetManuallyPositioned records whether the user placed the panel.
func (v *Visibility) SetManuallyPositioned(manual bool) { v.manuallyPositioned = manual }

// ShouldAutoPosition reports whether automatic placement may move the panel.
func (v *Visibility) ShouldAutoPosition() bool { return !v.manuallyPositioned }

func (v *Visibility) arm(now time.Time) {
	if v.timeout == 0 {
		v.deadline = time.Time{}
		return
	}
	v.deadline = now.Add(v.timeout)
}
