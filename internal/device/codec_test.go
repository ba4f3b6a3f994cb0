package device

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"radar-panel.klederson.com/internal/control"
)

func TestEncodeCommand(t *testing.T) {
	now := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

	t.Run("Manual", func(t *testing.T) {
		data, err := EncodeCommand(control.Command{Kind: control.KindGain, Mode: control.Manual(), Value: 70}, now)
		require.NoError(t, err)

		var env CommandEnvelope
		require.NoError(t, json.Unmarshal(data, &env))
		_, err = uuid.Parse(env.ID)
		assert.NoError(t, err)
		assert.Equal(t, control.KindGain, env.Kind)
		assert.Equal(t, "manual", env.Mode)
		assert.Equal(t, 70, env.Value)
		assert.Equal(t, 70, env.Encoded)
		assert.Equal(t, now, env.Timestamp)
	})

	t.Run("AutoVariant", func(t *testing.T) {
		data, err := EncodeCommand(control.Command{Kind: control.KindSea, Mode: control.AutoNamed(1)}, now)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"kind":"sea"`)

		var env CommandEnvelope
		require.NoError(t, json.Unmarshal(data, &env))
		assert.Equal(t, "auto", env.Mode)
		assert.Equal(t, 1, env.Variant)
		assert.Equal(t, control.BaseSentinel-1, env.Encoded)
	})
}

func TestDecodeReport(t *testing.T) {
	variants := func(k control.Kind) int {
		if k == control.KindSea {
			return 2
		}
		return 1
	}

	cases := []struct {
		name    string
		payload string
		want    ReportMsg
	}{
		{"manual", `{"kind":"gain","mode":"manual","value":42}`,
			ReportMsg{Kind: control.KindGain, Mode: control.Manual(), Value: 42}},
		{"auto variant", `{"kind":"sea","mode":"auto","variant":1,"value":33}`,
			ReportMsg{Kind: control.KindSea, Mode: control.AutoNamed(1), Value: 33}},
		{"encoded manual", `{"kind":"gain","encoded":17}`,
			ReportMsg{Kind: control.KindGain, Mode: control.Manual(), Value: 17}},
		{"encoded generic auto", `{"kind":"gain","encoded":-20000,"value":55}`,
			ReportMsg{Kind: control.KindGain, Mode: control.AutoConfirmed(), Value: 55}},
		{"encoded named", `{"kind":"sea","encoded":-20001}`,
			ReportMsg{Kind: control.KindSea, Mode: control.AutoNamed(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeReport([]byte(tc.payload), variants)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeReportErrors(t *testing.T) {
	for _, payload := range []string{
		`{`,
		`{"kind":"warp","mode":"manual"}`,
		`{"kind":"gain","mode":"turbo"}`,
	} {
		_, err := DecodeReport([]byte(payload), nil)
		assert.Error(t, err, payload)
	}
}

func TestDecodeBounds(t *testing.T) {
	b, err := DecodeBounds([]byte(`{"min":50,"max":72000}`))
	require.NoError(t, err)
	assert.Equal(t, BoundsMsg{Min: 50, Max: 72000}, b)

	_, err = DecodeBounds([]byte(`{"min":50}`))
	assert.Error(t, err)
}

func TestDecodeTarget(t *testing.T) {
	tg, err := DecodeTarget([]byte(`{"id":3,"range":420.5,"bearing":12}`))
	require.NoError(t, err)
	assert.Equal(t, TargetMsg{ID: 3, Range: 420.5, Bearing: 12}, tg)
}

func TestNewBridgeValidation(t *testing.T) {
	_, err := NewBridge(BridgeConfig{Prefix: "radar/1"}, nil, nil)
	assert.Error(t, err)
	_, err = NewBridge(BridgeConfig{BrokerURL: "tcp://localhost:1883"}, nil, nil)
	assert.Error(t, err)

	b, err := NewBridge(BridgeConfig{BrokerURL: "tcp://localhost:1883", ClientID: "t", Prefix: "radar/1"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "radar/1/command", b.Topic(TopicCommand))
	assert.Equal(t, 1, b.variants(control.KindRange))
	assert.Equal(t, 0, b.variants(control.KindGain))
}
