package device

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"radar-panel.klederson.com/internal/control"
)

// Simulated radar envelope in meters.
const (
	SimRangeMin = 50
	SimRangeMax = 72000
)

type simControl struct {
	spec     control.Spec
	mode     control.Mode
	value    int
	phase    float64
	variants int
}

type simTarget struct {
	id      int
	rng     float64
	bearing float64
	speed   float64 // meters per tick
	turn    float64 // degrees per tick
}

// Simulator is a demo radar. It applies commands in order after a short delay,
// reports auto values that drift over time, and moves a few targets.
type Simulator struct {
	program Sender
	logger  *zap.Logger
	latency time.Duration

	commands chan control.Command

	mu       sync.Mutex
	controls map[control.Kind]*simControl
	rangeVal int
	rangeAut bool
	targets  []simTarget

	cancel context.CancelFunc
}

// NewSimulator creates a simulated radar for the given model.
func NewSimulator(profile *control.Profile, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Simulator{
		logger:   logger.With(zap.String("device", "simulator")),
		latency:  300 * time.Millisecond,
		commands: make(chan control.Command, 64),
		controls: make(map[control.Kind]*simControl, len(profile.Controls)),
		rangeVal: 1852,
	}
	for _, spec := range profile.Controls {
		c := &simControl{
			spec:     spec,
			mode:     control.Manual(),
			value:    spec.Default,
			phase:    rand.Float64() * 2 * math.Pi,
			variants: spec.AutoVariants(),
		}
		switch c.variants {
		case 0:
		case 1:
			c.mode = control.AutoConfirmed()
		default:
			c.mode = control.AutoNamed(0)
		}
		s.controls[spec.Kind] = c
	}
	for i := 0; i < 4; i++ {
		s.targets = append(s.targets, simTarget{
			id:      i + 1,
			rng:     200 + rand.Float64()*1500,
			bearing: rand.Float64() * 360,
			speed:   (rand.Float64() - 0.5) * 8,
			turn:    (rand.Float64() - 0.5) * 2,
		})
	}
	return s
}

// Start begins the simulation. The first messages are the range envelope
// and the state of every control.
func (s *Simulator) Start(p Sender) error {
	s.program = p

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	return nil
}

// Submit queues a command. It never blocks; commands beyond the queue
// capacity are dropped.
func (s *Simulator) Submit(cmd control.Command) {
	select {
	case s.commands <- cmd:
	default:
		s.logger.Warn("Command queue full, dropped", zap.Stringer("command", cmd))
	}
}

// Stop halts the simulation.
func (s *Simulator) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// queued is a command waiting out the simulated latency.
type queued struct {
	due time.Time
	cmd control.Command
}

func (s *Simulator) loop(ctx context.Context) {
	s.send(BoundsMsg{Min: SimRangeMin, Max: SimRangeMax})
	s.reportAll(0)

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	// Commands are applied in submission order, so a newer setting always
	// lands after an older one.
	delay := time.NewTimer(s.latency)
	delay.Stop()
	defer delay.Stop()
	var (
		pending []queued
		due     <-chan time.Time
	)

	t := 0.0
	n := 0
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-s.commands:
			pending = append(pending, queued{due: time.Now().Add(s.latency), cmd: cmd})
			if len(pending) == 1 {
				delay.Reset(s.latency)
				due = delay.C
			}
		case now := <-due:
			for len(pending) > 0 && !pending[0].due.After(now) {
				if msg, ok := s.apply(pending[0].cmd); ok {
					s.send(msg)
				}
				pending = pending[1:]
			}
			if len(pending) > 0 {
				delay.Reset(time.Until(pending[0].due))
			} else {
				due = nil
			}
		case <-ticker.C:
			t += 0.2
			n++
			s.moveTargets()
			if n%5 == 0 {
				s.reportAuto(t)
			}
		}
	}
}

// apply updates the simulated radar state and returns the resulting report.
func (s *Simulator) apply(cmd control.Command) (ReportMsg, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cmd.Kind == control.KindRange {
		if cmd.Mode.IsAuto() {
			s.rangeAut = true
			return ReportMsg{Kind: cmd.Kind, Mode: control.AutoConfirmed(), Value: s.rangeVal}, true
		}
		s.rangeAut = false
		s.rangeVal = clampInt(cmd.Value, SimRangeMin, SimRangeMax)
		return ReportMsg{Kind: cmd.Kind, Mode: control.Manual(), Value: s.rangeVal}, true
	}

	c, ok := s.controls[cmd.Kind]
	if !ok {
		s.logger.Debug("Command for unsupported control", zap.Stringer("command", cmd))
		return ReportMsg{}, false
	}
	if cmd.Mode.IsAuto() {
		if c.variants == 0 {
			return ReportMsg{}, false
		}
		c.mode = cmd.Mode
		return ReportMsg{Kind: cmd.Kind, Mode: c.mode, Value: c.value}, true
	}
	c.mode = control.Manual()
	c.value = clampInt(cmd.Value, c.spec.Min, c.spec.Max)
	return ReportMsg{Kind: cmd.Kind, Mode: c.mode, Value: c.value}, true
}

func (s *Simulator) reportAll(t float64) {
	s.mu.Lock()
	msgs := make([]ReportMsg, 0, len(s.controls)+1)
	rangeMode := control.Manual()
	if s.rangeAut {
		rangeMode = control.AutoConfirmed()
	}
	msgs = append(msgs, ReportMsg{Kind: control.KindRange, Mode: rangeMode, Value: s.rangeVal})
	for kind, c := range s.controls {
		if c.mode.IsAuto() {
			c.value = c.drift(t)
		}
		msgs = append(msgs, ReportMsg{Kind: kind, Mode: c.mode, Value: c.value})
	}
	s.mu.Unlock()

	for _, m := range msgs {
		s.send(m)
	}
}

func (s *Simulator) reportAuto(t float64) {
	s.mu.Lock()
	var msgs []ReportMsg
	for kind, c := range s.controls {
		if !c.mode.IsAuto() {
			continue
		}
		c.value = c.drift(t)
		msgs = append(msgs, ReportMsg{Kind: kind, Mode: c.mode, Value: c.value})
	}
	s.mu.Unlock()

	for _, m := range msgs {
		s.send(m)
	}
}

func (s *Simulator) moveTargets() {
	s.mu.Lock()
	msgs := make([]TargetMsg, 0, len(s.targets))
	for i := range s.targets {
		tg := &s.targets[i]
		tg.rng += tg.speed
		if tg.rng < 100 || tg.rng > 2500 {
			tg.speed = -tg.speed
		}
		tg.bearing = math.Mod(tg.bearing+tg.turn+360, 360)
		msgs = append(msgs, TargetMsg{ID: tg.id, Range: tg.rng, Bearing: tg.bearing})
	}
	s.mu.Unlock()

	for _, m := range msgs {
		s.send(m)
	}
}

// drift is the value the radar settles on in auto: a slow sinusoid around
// the middle of the manual range.
func (c *simControl) drift(t float64) int {
	mid := float64(c.spec.Min+c.spec.Max) / 2
	amp := float64(c.spec.Max-c.spec.Min) / 5
	v := mid + amp*math.Sin(t*0.3+c.phase) + float64(c.mode.VariantIndex())*amp/2
	return clampInt(int(math.Round(v)), c.spec.Min, c.spec.Max)
}

func (s *Simulator) send(msg any) {
	if s.program != nil {
		s.program.Send(msg)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
