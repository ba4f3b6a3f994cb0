package dialog

import (
	"time"

	"go.uber.org/zap"
	"radar-panel.klederson.com/internal/panel"
)

// ShowDialog shows the control panel.
func (d *Dialog) ShowDialog() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vis.ShowDialog(d.now())
}

// HideDialog hides the control panel.
func (d *Dialog) HideDialog() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vis.HideDialog()
}

// ToggleDialog shows a hidden panel or hides a shown one.
func (d *Dialog) ToggleDialog() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.vis.State() == panel.Hidden {
		d.vis.ShowDialog(d.now())
	} else {
		d.vis.HideDialog()
	}
}

// HideTemporarily suppresses the panel while another dialog takes over.
func (d *Dialog) HideTemporarily() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.vis.HideTemporarily()
}

// UnHideTemporarily restores the panel hidden by HideTemporarily.
func (d *Dialog) UnHideTemporarily() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vis.UnHideTemporarily(d.now())
}

// Touch records user interaction with the panel, pushing the auto-hide
// deadline out.
func (d *Dialog) Touch() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vis.Touch(d.now())
}

// Tick applies auto-hide. It reports whether the panel was hidden.
func (d *Dialog) Tick(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.vis.Tick(now) {
		d.logger.Debug("Panel auto-hidden")
		return true
	}
	return false
}

// SetAutoHideTimeout changes the auto-hide timeout; zero means never.
func (d *Dialog) SetAutoHideTimeout(timeout time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vis.SetAutoHideTimeout(timeout, d.now())
	d.logger.Info("Auto-hide timeout", zap.Duration("timeout", timeout))
}

// SetManuallyPositioned records that the user placed the panel.
func (d *Dialog) SetManuallyPositioned(manual bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vis.SetManuallyPositioned(manual)
}

// Visibility returns the panel state.
func (d *Dialog) Visibility() panel.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.vis.State()
}
