package control

import (
	"fmt"
	"math"
)

// Sentinel encoding for the single-integer channel used at the device
// boundary. Manual values are always strictly greater than PendingSentinel.
const (
	// BaseSentinel encodes auto variant 0. Variant N encodes as BaseSentinel - N.
	BaseSentinel = -20000

	// PendingSentinel encodes "auto, variant not yet reported".
	PendingSentinel = BaseSentinel + 1

	// MaxAutoVariants caps the number of named variants a parameter may have,
	// which bounds the sentinel range to (BaseSentinel-MaxAutoVariants, PendingSentinel].
	MaxAutoVariants = 100

	// UnsetValue marks a range parameter that has never been set.
	UnsetValue = math.MinInt32
)

// ModeKind discriminates the Mode variants.
type ModeKind int

const (
	ModeManual ModeKind = iota
	ModeAutoPending
	ModeAutoConfirmed
	ModeAutoNamed
)

func (k ModeKind) String() string {
	switch k {
	case ModeManual:
		return "manual"
	case ModeAutoPending:
		return "auto-pending"
	case ModeAutoConfirmed:
		return "auto"
	case ModeAutoNamed:
		return "auto-named"
	default:
		return "unknown"
	}
}

// Mode is the tagged mode of a parameter. Variant is only meaningful for
// ModeAutoNamed.
type Mode struct {
	Kind    ModeKind
	Variant int
}

// Manual is the manual mode.
func Manual() Mode { return Mode{Kind: ModeManual} }

// AutoPending is auto mode whose variant the radar has not reported yet.
func AutoPending() Mode { return Mode{Kind: ModeAutoPending} }

// AutoConfirmed is the generic single-variant auto mode.
func AutoConfirmed() Mode { return Mode{Kind: ModeAutoConfirmed} }

// AutoNamed is the named auto variant with the given index.
func AutoNamed(index int) Mode { return Mode{Kind: ModeAutoNamed, Variant: index} }

// IsAuto reports whether m is any of the auto modes.
func (m Mode) IsAuto() bool {
	return m.Kind != ModeManual
}

// VariantIndex returns the auto variant index, 0 for the generic auto mode,
// and -1 for manual or pending.
func (m Mode) VariantIndex() int {
	switch m.Kind {
	case ModeAutoConfirmed:
		return 0
	case ModeAutoNamed:
		return m.Variant
	default:
		return -1
	}
}

func (m Mode) String() string {
	if m.Kind == ModeAutoNamed {
		return fmt.Sprintf("auto-named(%d)", m.Variant)
	}
	return m.Kind.String()
}

// SentinelFor returns the encoded value for auto variant index.
func SentinelFor(index int) int {
	return BaseSentinel - index
}

// EncodeValue packs a mode and a manual value into the single integer
// channel. The value is ignored for auto modes.
func EncodeValue(m Mode, value int) int {
	switch m.Kind {
	case ModeManual:
		return value
	case ModeAutoPending:
		return PendingSentinel
	case ModeAutoConfirmed:
		return BaseSentinel
	default:
		return SentinelFor(m.Variant)
	}
}

// DecodeValue unpacks a value from the single integer channel. variants is
// the number of auto variants of the parameter, used to tell the generic auto
// mode apart from named variant 0.
func DecodeValue(encoded, variants int) (Mode, int) {
	switch {
	case encoded == PendingSentinel:
		return AutoPending(), 0
	case encoded <= BaseSentinel && encoded > BaseSentinel-MaxAutoVariants:
		idx := BaseSentinel - encoded
		if variants <= 1 && idx == 0 {
			return AutoConfirmed(), 0
		}
		return AutoNamed(idx), 0
	default:
		return Manual(), encoded
	}
}
