package control

import "strings"

// Kind identifies an adjustable radar setting.
type Kind int

const (
	KindRange Kind = iota
	KindGain
	KindSea
	KindRain
	KindInterferenceRejection
	KindTargetBoost
	KindTargetExpansion
	KindNoiseRejection
	KindTargetSeparation
	KindScanSpeed
	KindSideLobeSuppression
	KindBearingAlignment
	KindAntennaHeight
	KindLocalInterferenceRejection
	KindTimedIdle
	KindTimedRun

	kindCount
)

var kindNames = [kindCount]string{
	KindRange:                      "Range",
	KindGain:                       "Gain",
	KindSea:                        "Sea clutter",
	KindRain:                       "Rain clutter",
	KindInterferenceRejection:      "Interf. rej",
	KindTargetBoost:                "Target boost",
	KindTargetExpansion:            "Target expansion",
	KindNoiseRejection:             "Noise rejection",
	KindTargetSeparation:           "Target separation",
	KindScanSpeed:                  "Scan speed",
	KindSideLobeSuppression:        "Side lobe sup.",
	KindBearingAlignment:           "Bearing alignment",
	KindAntennaHeight:              "Antenna height",
	KindLocalInterferenceRejection: "Local interf. rej",
	KindTimedIdle:                  "Timed idle",
	KindTimedRun:                   "Timed run",
}

var kindKeys = [kindCount]string{
	KindRange:                      "range",
	KindGain:                       "gain",
	KindSea:                        "sea",
	KindRain:                       "rain",
	KindInterferenceRejection:      "interference_rejection",
	KindTargetBoost:                "target_boost",
	KindTargetExpansion:            "target_expansion",
	KindNoiseRejection:             "noise_rejection",
	KindTargetSeparation:           "target_separation",
	KindScanSpeed:                  "scan_speed",
	KindSideLobeSuppression:        "side_lobe_suppression",
	KindBearingAlignment:           "bearing_alignment",
	KindAntennaHeight:              "antenna_height",
	KindLocalInterferenceRejection: "local_interference_rejection",
	KindTimedIdle:                  "timed_idle",
	KindTimedRun:                   "timed_run",
}

// String returns the display label of the kind.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// Key returns the stable identifier used in profiles and on the wire.
func (k Kind) Key() string {
	if k < 0 || k >= kindCount {
		return ""
	}
	return kindKeys[k]
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// ParseKind maps a stable key back to its Kind.
func ParseKind(key string) (Kind, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, k := range kindKeys {
		if k == key {
			return Kind(i), true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, ok := ParseKind(string(b))
	if !ok {
		return &unknownKindError{key: string(b)}
	}
	*k = parsed
	return nil
}
