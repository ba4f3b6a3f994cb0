package dialog

import (
	"time"

	"radar-panel.klederson.com/internal/control"
	"radar-panel.klederson.com/internal/guard"
	"radar-panel.klederson.com/internal/panel"
)

// ControlView is the renderable state of one parameter.
type ControlView struct {
	control.Display
	Kind  control.Kind
	Mode  control.Mode
	Value int // encoded value
}

// View is a snapshot of everything the presentation layer draws.
type View struct {
	Model              string
	Controls           []ControlView
	Zones              [guard.Count]guard.Zone
	Visibility         panel.State
	ManuallyPositioned bool
	AutoHideDeadline   time.Time // zero when auto-hide is off
	EditingZone        int       // -1 when no zone is being edited
	LastError          string
}

// View returns a snapshot of the dialog state.
func (d *Dialog) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := View{
		Model:              d.model,
		Controls:           make([]ControlView, 0, len(d.order)),
		Visibility:         d.vis.State(),
		ManuallyPositioned: d.vis.ManuallyPositioned(),
		EditingZone:        d.editing,
	}
	for _, kind := range d.order {
		v.Controls = append(v.Controls, d.controlView(kind))
	}
	for i, z := range d.zones {
		v.Zones[i] = *z
	}
	if deadline, ok := d.vis.Deadline(); ok {
		v.AutoHideDeadline = deadline
	}
	if d.lastErr != nil {
		v.LastError = d.lastErr.Error()
	}
	return v
}

func (d *Dialog) controlView(kind control.Kind) ControlView {
	if kind == control.KindRange {
		return ControlView{
			Display: d.rng.Display(),
			Kind:    kind,
			Mode:    d.rng.Mode(),
			Value:   d.rng.Value(),
		}
	}
	p := d.params[kind]
	return ControlView{
		Display: p.Display(),
		Kind:    kind,
		Mode:    p.Mode(),
		Value:   p.Value(),
	}
}
