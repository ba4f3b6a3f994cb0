package control

import (
	"fmt"
	"math"
	"strconv"
)

// PendingLabel is shown for an auto mode the radar has not confirmed yet.
const PendingLabel = "Auto (pending)"

// Command is an instruction for the device layer. Value carries the manual
// value when Mode is manual and is zero otherwise.
type Command struct {
	Kind  Kind
	Mode  Mode
	Value int
}

// Encoded returns the command value in the single integer channel form.
func (c Command) Encoded() int {
	return EncodeValue(c.Mode, c.Value)
}

func (c Command) String() string {
	if c.Mode.IsAuto() {
		return fmt.Sprintf("%s: auto %d", c.Kind, c.Mode.VariantIndex())
	}
	return fmt.Sprintf("%s: %d", c.Kind, c.Value)
}

// Display is the presentation tuple for a parameter.
type Display struct {
	Label   string
	Value   string
	Unit    string
	Auto    bool
	Pending bool
}

// Parameter is the value and mode state of one adjustable radar setting.
// It is not safe for concurrent use; the dialog serializes access.
type Parameter struct {
	spec    Spec
	min     int
	max     int
	bounded bool

	mode  Mode
	value int

	// confirmed is the last manual value the device reported or the profile
	// default. Local adjustments do not touch it.
	confirmed    int
	hasConfirmed bool

	// reported is false while a local change awaits device confirmation.
	reported    bool
	realized    int
	hasRealized bool
}

// NewParameter creates a parameter from its profile entry. Parameters with
// auto support that start in auto are pending until the first device report.
func NewParameter(spec Spec) (*Parameter, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	p := &Parameter{
		spec:    spec,
		min:     spec.Min,
		max:     spec.Max,
		bounded: true,
	}
	if spec.StartAuto && spec.AutoVariants() > 0 {
		p.mode = AutoPending()
		return p, nil
	}
	p.mode = Manual()
	p.value = p.clamp(spec.Default)
	p.confirmed = p.value
	p.hasConfirmed = true
	p.reported = true
	return p, nil
}

// Kind returns the parameter identity.
func (p *Parameter) Kind() Kind { return p.spec.Kind }

// Spec returns the profile entry the parameter was built from.
func (p *Parameter) Spec() Spec { return p.spec }

// Mode returns the current mode.
func (p *Parameter) Mode() Mode { return p.mode }

// Min returns the lower manual bound.
func (p *Parameter) Min() int { return p.min }

// Max returns the upper manual bound.
func (p *Parameter) Max() int { return p.max }

// AutoVariants returns the number of selectable auto variants.
func (p *Parameter) AutoVariants() int { return p.spec.AutoVariants() }

// Value returns the encoded value: the manual value in manual mode, the
// sentinel of the variant otherwise.
func (p *Parameter) Value() int {
	return EncodeValue(p.mode, p.value)
}

// ManualValue returns the manual value and whether the parameter is manual.
func (p *Parameter) ManualValue() (int, bool) {
	if p.mode.Kind != ModeManual {
		return 0, false
	}
	return p.value, true
}

// Reported reports whether the device has confirmed the current state.
func (p *Parameter) Reported() bool { return p.reported }

// Realized returns the device-determined value last reported while in auto.
func (p *Parameter) Realized() (int, bool) {
	return p.realized, p.hasRealized
}

// AdjustValue moves the manual value by delta, leaving auto first if
// needed, and returns the command to send. Leaving auto starts from the value
// the device last reported: the realized auto value if there is one, else the
// last confirmed manual value, else min.
func (p *Parameter) AdjustValue(delta int) (Command, error) {
	if p.mode.Kind != ModeManual {
		p.value = p.autoExitValue()
		p.mode = Manual()
		p.hasRealized = false
	}
	p.value = p.clamp(addSaturating(p.value, delta))
	p.reported = false
	return Command{Kind: p.spec.Kind, Mode: Manual(), Value: p.value}, nil
}

// SetAuto selects auto variant index and returns the command to send.
func (p *Parameter) SetAuto(index int) (Command, error) {
	mode, err := p.autoMode(index)
	if err != nil {
		return Command{}, err
	}
	if mode != p.mode {
		p.hasRealized = false
	}
	p.mode = mode
	p.reported = false
	return Command{Kind: p.spec.Kind, Mode: mode}, nil
}

// NextAutoVariant returns the variant the auto button selects next.
func (p *Parameter) NextAutoVariant() int {
	n := p.AutoVariants()
	idx := p.mode.VariantIndex()
	if n == 0 || idx < 0 {
		return 0
	}
	return (idx + 1) % n
}

// ReportValue applies a device report. For auto modes observed is the
// device-determined value, kept for display only.
func (p *Parameter) ReportValue(observed int, mode Mode) error {
	if mode.Kind == ModeManual {
		if p.bounded {
			observed = p.clamp(observed)
		}
		p.mode = Manual()
		p.value = observed
		p.confirmed = observed
		p.hasConfirmed = true
		p.hasRealized = false
		p.reported = true
		return nil
	}
	if mode.Kind == ModeAutoPending {
		return fmt.Errorf("%s: report without variant: %w", p.spec.Kind, ErrInvalidVariant)
	}
	m, err := p.autoMode(mode.VariantIndex())
	if err != nil {
		return err
	}
	p.mode = m
	p.realized = observed
	p.hasRealized = true
	p.reported = true
	return nil
}

// Display derives the presentation tuple from the current state.
func (p *Parameter) Display() Display {
	d := Display{
		Label: p.spec.Kind.String(),
		Unit:  p.spec.Unit,
		Auto:  p.mode.IsAuto(),
	}
	if !d.Auto {
		d.Value = p.valueLabel(p.value)
		d.Pending = !p.reported
		return d
	}
	if !p.reported || p.mode.Kind == ModeAutoPending {
		d.Value = PendingLabel
		d.Pending = true
		return d
	}
	d.Value = p.autoLabel()
	if p.hasRealized {
		d.Value += " " + p.valueLabel(p.realized)
	}
	return d
}

func (p *Parameter) autoExitValue() int {
	switch {
	case p.hasRealized:
		return p.realized
	case p.hasConfirmed:
		return p.confirmed
	}
	return p.min
}

func (p *Parameter) valueLabel(v int) string {
	if v >= 0 && v < len(p.spec.Names) {
		return p.spec.Names[v]
	}
	return strconv.Itoa(v)
}

func (p *Parameter) autoLabel() string {
	idx := p.mode.VariantIndex()
	if idx >= 0 && idx < len(p.spec.AutoNames) {
		return "Auto: " + p.spec.AutoNames[idx]
	}
	if p.mode.Kind == ModeAutoNamed {
		return fmt.Sprintf("Auto %d", idx+1)
	}
	return "Auto"
}

func (p *Parameter) autoMode(index int) (Mode, error) {
	n := p.AutoVariants()
	if n == 0 {
		return Mode{}, fmt.Errorf("%s: %w", p.spec.Kind, ErrUnsupportedMode)
	}
	if index < 0 || index >= n {
		return Mode{}, fmt.Errorf("%s: variant %d of %d: %w", p.spec.Kind, index, n, ErrInvalidVariant)
	}
	if n == 1 {
		return AutoConfirmed(), nil
	}
	return AutoNamed(index), nil
}

func (p *Parameter) clamp(v int) int {
	if v < p.min {
		return p.min
	}
	if v > p.max {
		return p.max
	}
	return v
}

func addSaturating(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}
