package ui

import (
	"fmt"

	"radar-panel.klederson.com/internal/config"
	"radar-panel.klederson.com/internal/guard"
)

// ZoneField selects which guard zone setting the editor changes.
type ZoneField int

const (
	FieldType ZoneField = iota
	FieldInner
	FieldOuter
	FieldStart
	FieldEnd
	FieldARPA
	FieldAlarm
	zoneFieldCount
)

var zoneFieldNames = [...]string{"Type", "Inner", "Outer", "Start", "End", "ARPA", "Alarm"}

func (f ZoneField) String() string {
	if f < 0 || f >= zoneFieldCount {
		return "?"
	}
	return zoneFieldNames[f]
}

// ZoneForm holds the uncommitted edits for one guard zone. Nothing reaches
// the zone until the caller submits Config.
type ZoneForm struct {
	Index  int
	Config guard.Config
	Field  ZoneField
}

// NewZoneForm starts editing zone index from its current configuration.
func NewZoneForm(index int, cfg guard.Config) ZoneForm {
	return ZoneForm{Index: index, Config: cfg}
}

// NextField moves to the next editable field, skipping bearings for circles.
func (f *ZoneForm) NextField() {
	f.step(1)
}

// PrevField moves to the previous editable field.
func (f *ZoneForm) PrevField() {
	f.step(-1)
}

func (f *ZoneForm) step(dir int) {
	for {
		f.Field = (f.Field + ZoneField(dir) + zoneFieldCount) % zoneFieldCount
		if f.Enabled(f.Field) {
			return
		}
	}
}

// Enabled reports whether field applies to the current zone type.
func (f *ZoneForm) Enabled(field ZoneField) bool {
	if field == FieldStart || field == FieldEnd {
		return f.Config.Type == guard.TypeArc
	}
	return true
}

// Adjust changes the selected field by steps increments. Ranges move in
// ZoneStep meters and never go negative, bearings move in BearingStep
// degrees and wrap, the rest toggle.
func (f *ZoneForm) Adjust(steps int) {
	c := &f.Config
	switch f.Field {
	case FieldType:
		if c.Type == guard.TypeArc {
			c.Type = guard.TypeCircle
		} else {
			c.Type = guard.TypeArc
		}
	case FieldInner:
		c.InnerRange = nonNegative(c.InnerRange + float64(steps)*config.ZoneStep)
	case FieldOuter:
		c.OuterRange = nonNegative(c.OuterRange + float64(steps)*config.ZoneStep)
	case FieldStart:
		c.StartBearing = guard.NormalizeBearing(c.StartBearing + float64(steps)*config.BearingStep)
	case FieldEnd:
		c.EndBearing = guard.NormalizeBearing(c.EndBearing + float64(steps)*config.BearingStep)
	case FieldARPA:
		c.ARPA = !c.ARPA
	case FieldAlarm:
		c.Alarm = !c.Alarm
	}
}

// Value renders the current value of field.
func (f *ZoneForm) Value(field ZoneField) string {
	c := f.Config
	switch field {
	case FieldType:
		return c.Type.String()
	case FieldInner:
		return fmt.Sprintf("%.0f m", c.InnerRange)
	case FieldOuter:
		return fmt.Sprintf("%.0f m", c.OuterRange)
	case FieldStart:
		return fmt.Sprintf("%03.0f deg", c.StartBearing)
	case FieldEnd:
		return fmt.Sprintf("%03.0f deg", c.EndBearing)
	case FieldARPA:
		return onOff(c.ARPA)
	case FieldAlarm:
		return onOff(c.Alarm)
	}
	return ""
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
