package device

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"radar-panel.klederson.com/internal/control"
)

// Wire mode names.
const (
	wireManual = "manual"
	wireAuto   = "auto"
)

// CommandEnvelope is the JSON form of a command sent to the radar gateway.
// Encoded carries the single-integer form for gateways that only accept it.
type CommandEnvelope struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Kind      control.Kind `json:"kind"`
	Mode      string       `json:"mode"`
	Variant   int          `json:"variant,omitempty"`
	Value     int          `json:"value,omitempty"`
	Encoded   int          `json:"encoded"`
}

// ReportPayload is the JSON form of a radar report. Either Mode or Encoded
// must be present.
type ReportPayload struct {
	Kind    string `json:"kind"`
	Mode    string `json:"mode,omitempty"`
	Variant int    `json:"variant,omitempty"`
	Value   int    `json:"value"`
	Encoded *int   `json:"encoded,omitempty"`
}

// BoundsPayload is the JSON form of a range capability report.
type BoundsPayload struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// TargetPayload is the JSON form of a target position.
type TargetPayload struct {
	ID      int     `json:"id"`
	Range   float64 `json:"range"`
	Bearing float64 `json:"bearing"`
}

// EncodeCommand serializes cmd for the gateway.
func EncodeCommand(cmd control.Command, now time.Time) ([]byte, error) {
	env := CommandEnvelope{
		ID:        uuid.NewString(),
		Timestamp: now.UTC(),
		Kind:      cmd.Kind,
		Mode:      wireManual,
		Value:     cmd.Value,
		Encoded:   cmd.Encoded(),
	}
	if cmd.Mode.IsAuto() {
		env.Mode = wireAuto
		env.Variant = cmd.Mode.VariantIndex()
		env.Value = 0
	}
	return json.Marshal(env)
}

// DecodeReport parses a report. variants returns the number of auto
// variants of a kind and is used to decode the single-integer form.
func DecodeReport(payload []byte, variants func(control.Kind) int) (ReportMsg, error) {
	var p ReportPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return ReportMsg{}, fmt.Errorf("decode report: %w", err)
	}
	kind, ok := control.ParseKind(p.Kind)
	if !ok {
		return ReportMsg{}, fmt.Errorf("decode report: %w: %q", control.ErrUnknownKind, p.Kind)
	}

	msg := ReportMsg{Kind: kind, Value: p.Value}
	switch {
	case p.Encoded != nil:
		n := 0
		if variants != nil {
			n = variants(kind)
		}
		mode, v := control.DecodeValue(*p.Encoded, n)
		msg.Mode = mode
		if !mode.IsAuto() {
			msg.Value = v
		}
	case p.Mode == wireManual:
		msg.Mode = control.Manual()
	case p.Mode == wireAuto:
		msg.Mode = control.AutoNamed(p.Variant)
	default:
		return ReportMsg{}, fmt.Errorf("decode report: unknown mode %q", p.Mode)
	}
	return msg, nil
}

// DecodeBounds parses a range capability report.
func DecodeBounds(payload []byte) (BoundsMsg, error) {
	var p BoundsPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return BoundsMsg{}, fmt.Errorf("decode bounds: %w", err)
	}
	if p.Min == nil || p.Max == nil {
		return BoundsMsg{}, fmt.Errorf("decode bounds: min and max are required")
	}
	return BoundsMsg{Min: *p.Min, Max: *p.Max}, nil
}

// DecodeTarget parses a target position.
func DecodeTarget(payload []byte) (TargetMsg, error) {
	var p TargetPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return TargetMsg{}, fmt.Errorf("decode target: %w", err)
	}
	return TargetMsg(p), nil
}
