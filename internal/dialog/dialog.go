// Package dialog coordinates the radar control parameters, the two guard
// zones and the panel visibility. It routes user intents to the owning
// object, forwards resulting commands to the device layer, and applies
// device reports.
package dialog

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"radar-panel.klederson.com/internal/control"
	"radar-panel.klederson.com/internal/guard"
	"radar-panel.klederson.com/internal/panel"
)

// Dialog errors.
var (
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrUnknownZone      = errors.New("unknown guard zone")
)

// CommandSink receives commands for the radar. Submit must not block.
type CommandSink interface {
	Submit(cmd control.Command)
}

// Option configures a Dialog.
type Option func(*Dialog)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dialog) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithClock sets the time source used to arm the auto-hide deadline.
func WithClock(now func() time.Time) Option {
	return func(d *Dialog) {
		if now != nil {
			d.now = now
		}
	}
}

// WithAutoHide sets the auto-hide timeout; zero means never.
func WithAutoHide(timeout time.Duration) Option {
	return func(d *Dialog) {
		d.autoHide = timeout
	}
}

// Dialog owns all panel state. All methods are safe for concurrent use;
// each is applied as one step under the dialog lock.
type Dialog struct {
	mu     sync.Mutex
	logger *zap.Logger
	now    func() time.Time
	sink   CommandSink

	model    string
	order    []control.Kind
	params   map[control.Kind]*control.Parameter
	rng      *control.RangeParameter
	zones    [guard.Count]*guard.Zone
	vis      *panel.Visibility
	autoHide time.Duration

	editing int
	lastErr error
}

// New builds a dialog for the radar model described by profile. Commands
// produced by user intents go to sink, which may be nil.
func New(profile *control.Profile, sink CommandSink, opts ...Option) (*Dialog, error) {
	d := &Dialog{
		logger:  zap.NewNop(),
		now:     time.Now,
		sink:    sink,
		model:   profile.Name,
		params:  make(map[control.Kind]*control.Parameter, len(profile.Controls)),
		rng:     control.NewRangeParameter(profile.Range.Unit),
		editing: -1,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With(zap.String("model", profile.Name))

	d.order = append(d.order, control.KindRange)
	for _, spec := range profile.Controls {
		p, err := control.NewParameter(spec)
		if err != nil {
			return nil, fmt.Errorf("control %s: %w", spec.Kind.Key(), err)
		}
		d.params[spec.Kind] = p
		d.order = append(d.order, spec.Kind)
	}
	for i := range d.zones {
		d.zones[i] = guard.New(i)
	}
	d.vis = panel.NewVisibility(d.autoHide)

	return d, nil
}

// Model returns the radar model name.
func (d *Dialog) Model() string { return d.model }

// Kinds returns the registered kinds in display order.
func (d *Dialog) Kinds() []control.Kind {
	return append([]control.Kind(nil), d.order...)
}

// Has reports whether kind is registered for this radar model.
func (d *Dialog) Has(kind control.Kind) bool {
	if kind == control.KindRange {
		return true
	}
	_, ok := d.params[kind]
	return ok
}

// RouteAdjustment moves the value of kind by delta.
func (d *Dialog) RouteAdjustment(kind control.Kind, delta int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var (
		cmd control.Command
		err error
	)
	if kind == control.KindRange {
		cmd, err = d.rng.AdjustValue(delta)
	} else if p, ok := d.params[kind]; ok {
		cmd, err = p.AdjustValue(delta)
	} else {
		err = fmt.Errorf("%s: %w", kind, ErrUnknownParameter)
	}
	return d.finish(cmd, err)
}

// RouteAuto selects auto variant index of kind.
func (d *Dialog) RouteAuto(kind control.Kind, index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.routeAuto(kind, index)
}

// routeAuto requires d.mu.
func (d *Dialog) routeAuto(kind control.Kind, index int) error {
	var (
		cmd control.Command
		err error
	)
	switch p, ok := d.params[kind]; {
	case kind == control.KindRange:
		if index != 0 {
			err = fmt.Errorf("%s: variant %d: %w", kind, index, control.ErrInvalidVariant)
			break
		}
		cmd, err = d.rng.SetAuto()
	case ok:
		cmd, err = p.SetAuto(index)
	default:
		err = fmt.Errorf("%s: %w", kind, ErrUnknownParameter)
	}
	return d.finish(cmd, err)
}

// CycleAuto selects the next auto variant of kind, or the first one when
// the parameter is manual.
func (d *Dialog) CycleAuto(kind control.Kind) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := 0
	if p, ok := d.params[kind]; ok {
		next = p.NextAutoVariant()
	}
	return d.routeAuto(kind, next)
}

func (d *Dialog) finish(cmd control.Command, err error) error {
	if err != nil {
		d.lastErr = err
		d.logger.Warn("Rejected adjustment", zap.Error(err))
		return err
	}
	d.lastErr = nil
	d.vis.Touch(d.now())
	d.logger.Debug("Command",
		zap.String("kind", cmd.Kind.Key()),
		zap.Stringer("mode", cmd.Mode),
		zap.Int("value", cmd.Value))
	if d.sink != nil {
		d.sink.Submit(cmd)
	}
	return nil
}

// ReportFromDevice applies a device report. Reports for kinds this model
// does not register are dropped.
func (d *Dialog) ReportFromDevice(kind control.Kind, observed int, mode control.Mode) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var err error
	if kind == control.KindRange {
		err = d.rng.ReportValue(observed, mode)
	} else if p, ok := d.params[kind]; ok {
		err = p.ReportValue(observed, mode)
	} else {
		d.logger.Debug("Dropped report for unknown parameter", zap.Int("kind", int(kind)))
		return
	}
	if err != nil {
		d.logger.Warn("Ignored device report",
			zap.String("kind", kind.Key()),
			zap.Stringer("mode", mode),
			zap.Error(err))
	}
}

// ReportBounds applies the radar's supported range envelope.
func (d *Dialog) ReportBounds(min, max int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.rng.SetBoundsFromDevice(min, max); err != nil {
		d.logger.Warn("Ignored range capability report", zap.Error(err))
		return err
	}
	d.logger.Info("Range bounds", zap.Int("min", min), zap.Int("max", max))
	return nil
}

// Parameter returns the display state of kind.
func (d *Dialog) Parameter(kind control.Kind) (ControlView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.Has(kind) {
		return ControlView{}, fmt.Errorf("%s: %w", kind, ErrUnknownParameter)
	}
	return d.controlView(kind), nil
}

// ConfigureZone replaces the configuration of zone index.
func (d *Dialog) ConfigureZone(index int, cfg guard.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	z, err := d.zone(index)
	if err == nil {
		err = z.Configure(cfg)
	}
	if err != nil {
		d.lastErr = err
		d.logger.Warn("Rejected guard zone", zap.Int("zone", index), zap.Error(err))
		return err
	}
	d.lastErr = nil
	d.logger.Info("Guard zone configured",
		zap.Int("zone", index),
		zap.Stringer("type", cfg.Type),
		zap.Float64("inner", cfg.InnerRange),
		zap.Float64("outer", cfg.OuterRange))
	return nil
}

// Zone returns the configuration of zone index.
func (d *Dialog) Zone(index int) (guard.Config, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	z, err := d.zone(index)
	if err != nil {
		return guard.Config{}, err
	}
	return z.Config(), nil
}

// ZonesContaining returns the alarm-enabled zones that contain a target at
// rng meters and bearing degrees.
func (d *Dialog) ZonesContaining(rng, bearing float64) []int {
	d.mu.Lock()
	defer d.mu.Unlock()

	var hits []int
	for i, z := range d.zones {
		if z.Config().Alarm && z.Contains(rng, bearing) {
			hits = append(hits, i)
		}
	}
	return hits
}

// EditZone opens the edit surface of zone index, temporarily hiding the
// control panel.
func (d *Dialog) EditZone(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.zone(index); err != nil {
		return err
	}
	if err := d.vis.HideTemporarily(); err != nil {
		return fmt.Errorf("edit %d: %w", index, err)
	}
	d.editing = index
	return nil
}

// FinishZoneEdit closes the zone edit surface and restores the panel.
func (d *Dialog) FinishZoneEdit() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.editing = -1
	d.vis.UnHideTemporarily(d.now())
}

// EditingZone returns the zone being edited, if any.
func (d *Dialog) EditingZone() (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editing, d.editing >= 0
}

func (d *Dialog) zone(index int) (*guard.Zone, error) {
	if index < 0 || index >= guard.Count {
		return nil, fmt.Errorf("zone %d: %w", index, ErrUnknownZone)
	}
	return d.zones[index], nil
}
