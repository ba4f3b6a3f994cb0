package guard

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry is returned for negative ranges, inner > outer, or
// non-finite values.
var ErrInvalidGeometry = errors.New("invalid guard zone geometry")

// Count is the number of guard zones a radar has.
const Count = 2

// Type is the shape of a guard zone.
type Type int

const (
	TypeArc Type = iota
	TypeCircle
)

func (t Type) String() string {
	if t == TypeCircle {
		return "Circle"
	}
	return "Arc"
}

// Config is the full geometry and alarm configuration of a zone. Ranges are
// in meters, bearings in degrees relative to the heading, clockwise.
type Config struct {
	Type         Type
	InnerRange   float64
	OuterRange   float64
	StartBearing float64
	EndBearing   float64
	ARPA         bool
	Alarm        bool
}

// Zone is one guard zone. An arc covers the clockwise sweep from
// StartBearing to EndBearing, both inclusive; equal bearings cover the full
// circle.
type Zone struct {
	index int
	cfg   Config
}

// New creates zone index with an empty circle configuration.
func New(index int) *Zone {
	return &Zone{index: index, cfg: Config{Type: TypeCircle}}
}

// Index returns the zone index, 0 or 1.
func (z *Zone) Index() int { return z.index }

// Name returns the display name of the zone.
func (z *Zone) Name() string {
	return fmt.Sprintf("Guard zone %d", z.index+1)
}

// Config returns the current configuration.
func (z *Zone) Config() Config { return z.cfg }

// Configure validates cfg and replaces the whole configuration. On error
// nothing is applied.
func (z *Zone) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", z.Name(), err)
	}
	cfg.StartBearing = NormalizeBearing(cfg.StartBearing)
	cfg.EndBearing = NormalizeBearing(cfg.EndBearing)
	z.cfg = cfg
	return nil
}

// Contains reports whether a target at rng meters and bearing degrees lies
// inside the zone.
func (z *Zone) Contains(rng, bearing float64) bool {
	if rng < z.cfg.InnerRange || rng > z.cfg.OuterRange {
		return false
	}
	if z.cfg.Type == TypeCircle {
		return true
	}
	return InArc(bearing, z.cfg.StartBearing, z.cfg.EndBearing)
}

// Validate checks the range geometry.
func (c Config) Validate() error {
	for _, v := range []float64{c.InnerRange, c.OuterRange, c.StartBearing, c.EndBearing} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value: %w", ErrInvalidGeometry)
		}
	}
	if c.InnerRange < 0 || c.OuterRange < 0 {
		return fmt.Errorf("negative range: %w", ErrInvalidGeometry)
	}
	if c.InnerRange > c.OuterRange {
		return fmt.Errorf("inner %.0f > outer %.0f: %w", c.InnerRange, c.OuterRange, ErrInvalidGeometry)
	}
	return nil
}

// NormalizeBearing wraps a bearing to [0, 360).
func NormalizeBearing(b float64) float64 {
	b = math.Mod(b, 360)
	if b < 0 {
		b += 360
	}
	if b >= 360 {
		b = 0
	}
	return b
}

// InArc reports whether bearing lies on the clockwise sweep from start to
// end inclusive. Equal start and end cover the full circle.
func InArc(bearing, start, end float64) bool {
	bearing = NormalizeBearing(bearing)
	start = NormalizeBearing(start)
	end = NormalizeBearing(end)
	if start == end {
		return true
	}
	sweep := NormalizeBearing(end - start)
	return NormalizeBearing(bearing-start) <= sweep
}
