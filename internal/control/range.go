package control

import "fmt"

// RangeParameter is the radar range control. Its bounds come from the radar
// capability report rather than the profile, and it has a single generic
// auto mode.
type RangeParameter struct {
	p           Parameter
	boundsKnown bool
}

// NewRangeParameter creates a range control with unknown bounds and no value.
func NewRangeParameter(unit string) *RangeParameter {
	return &RangeParameter{
		p: Parameter{
			spec: Spec{
				Kind: KindRange,
				Unit: unit,
				Auto: true,
			},
			mode:     Manual(),
			value:    UnsetValue,
			reported: true,
		},
	}
}

// Kind returns KindRange.
func (r *RangeParameter) Kind() Kind { return KindRange }

// Mode returns the current mode.
func (r *RangeParameter) Mode() Mode { return r.p.Mode() }

// Value returns the encoded value, UnsetValue if the range was never set.
func (r *RangeParameter) Value() int { return r.p.Value() }

// IsSet reports whether the range has a value or is in auto.
func (r *RangeParameter) IsSet() bool {
	return r.p.mode.IsAuto() || r.p.value != UnsetValue
}

// Bounds returns the supported range envelope and whether it is known.
func (r *RangeParameter) Bounds() (min, max int, known bool) {
	return r.p.min, r.p.max, r.boundsKnown
}

// Reported reports whether the device has confirmed the current state.
func (r *RangeParameter) Reported() bool { return r.p.reported }

// SetBoundsFromDevice applies a capability report. An unset value stays
// unset; a set value is clamped into the new envelope.
func (r *RangeParameter) SetBoundsFromDevice(min, max int) error {
	if min > max || min <= PendingSentinel {
		return fmt.Errorf("range [%d, %d]: %w", min, max, ErrInvalidBounds)
	}
	r.p.min = min
	r.p.max = max
	r.p.bounded = true
	r.boundsKnown = true

	if r.p.mode.Kind == ModeManual && r.p.value != UnsetValue {
		r.p.value = r.p.clamp(r.p.value)
	}
	if r.p.hasConfirmed {
		r.p.confirmed = r.p.clamp(r.p.confirmed)
	}
	return nil
}

// AdjustValue steps the range by delta. With nothing reported by the radar
// yet, the first step from the unset or auto state counts min as step one.
func (r *RangeParameter) AdjustValue(delta int) (Command, error) {
	if !r.boundsKnown {
		return Command{}, fmt.Errorf("%s: %w", KindRange, ErrBoundsUnknown)
	}
	if !r.p.hasConfirmed && !r.p.hasRealized && (r.p.mode.IsAuto() || r.p.value == UnsetValue) {
		r.p.mode = Manual()
		r.p.value = r.p.min - 1
	}
	return r.p.AdjustValue(delta)
}

// SetAuto switches to the range auto mode.
func (r *RangeParameter) SetAuto() (Command, error) {
	return r.p.SetAuto(0)
}

// ReportValue applies a device report of the current range.
func (r *RangeParameter) ReportValue(observed int, mode Mode) error {
	return r.p.ReportValue(observed, mode)
}

// Display derives the presentation tuple from the current state.
func (r *RangeParameter) Display() Display {
	if !r.IsSet() {
		return Display{
			Label: KindRange.String(),
			Value: "--",
			Unit:  r.p.spec.Unit,
		}
	}
	return r.p.Display()
}
