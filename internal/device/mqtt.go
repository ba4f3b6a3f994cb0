package device

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"radar-panel.klederson.com/internal/control"
)

// BridgeConfig holds the radar gateway connection settings.
type BridgeConfig struct {
	// BrokerURL is the MQTT broker URL (e.g., "tcp://localhost:1883")
	BrokerURL string
	// ClientID is the unique identifier for this client
	ClientID string
	// Prefix is the topic root of the radar, e.g. "radar/1"
	Prefix string
	// ConnectTimeout bounds the initial connect
	ConnectTimeout time.Duration
}

// Topic suffixes under the prefix.
const (
	TopicCommand      = "command"
	TopicReport       = "report"
	TopicCapabilities = "capabilities"
	TopicTarget       = "target"
)

// Bridge connects the panel to a radar gateway over MQTT. Commands are
// published fire-and-forget; the gateway owns retry and acknowledgement.
type Bridge struct {
	client  mqtt.Client
	cfg     BridgeConfig
	logger  *zap.Logger
	program Sender
	profile *control.Profile
}

// NewBridge creates a bridge. It does not connect until Start.
func NewBridge(cfg BridgeConfig, profile *control.Profile, logger *zap.Logger) (*Bridge, error) {
	if cfg.BrokerURL == "" {
		return nil, fmt.Errorf("broker URL is required")
	}
	if cfg.Prefix == "" {
		return nil, fmt.Errorf("topic prefix is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("device", "mqtt"), zap.String("prefix", cfg.Prefix))

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL)
	opts.SetClientID(cfg.ClientID)
	opts.SetConnectTimeout(cfg.ConnectTimeout)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		logger.Error("MQTT connection lost", zap.Error(err))
	})
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Info("MQTT connected", zap.String("broker", cfg.BrokerURL))
	})

	return &Bridge{
		client:  mqtt.NewClient(opts),
		cfg:     cfg,
		logger:  logger,
		profile: profile,
	}, nil
}

// Topic returns the full topic for suffix.
func (b *Bridge) Topic(suffix string) string {
	return b.cfg.Prefix + "/" + suffix
}

// Start connects and subscribes to the radar report topics.
func (b *Bridge) Start(p Sender) error {
	b.program = p

	token := b.client.Connect()
	if !token.WaitTimeout(b.cfg.ConnectTimeout) {
		return fmt.Errorf("connection timeout after %v", b.cfg.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	subs := map[string]mqtt.MessageHandler{
		b.Topic(TopicReport):       b.onReport,
		b.Topic(TopicCapabilities): b.onCapabilities,
		b.Topic(TopicTarget):       b.onTarget,
	}
	for topic, handler := range subs {
		token := b.client.Subscribe(topic, 1, handler)
		token.Wait()
		if err := token.Error(); err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		b.logger.Info("Subscribed to topic", zap.String("topic", topic))
	}
	return nil
}

// Submit publishes cmd without waiting for delivery.
func (b *Bridge) Submit(cmd control.Command) {
	payload, err := EncodeCommand(cmd, time.Now())
	if err != nil {
		b.logger.Error("Failed to encode command", zap.Stringer("command", cmd), zap.Error(err))
		return
	}
	if !b.client.IsConnected() {
		b.logger.Warn("Not connected, command dropped", zap.Stringer("command", cmd))
		return
	}
	token := b.client.Publish(b.Topic(TopicCommand), 1, false, payload)
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			b.logger.Error("Failed to publish command", zap.Stringer("command", cmd), zap.Error(err))
			b.send(ErrorMsg{Err: err})
		}
	}()
}

// Stop disconnects from the broker.
func (b *Bridge) Stop() {
	if b.client.IsConnected() {
		b.client.Disconnect(250)
	}
}

func (b *Bridge) onReport(_ mqtt.Client, m mqtt.Message) {
	msg, err := DecodeReport(m.Payload(), b.variants)
	if err != nil {
		b.logger.Warn("Bad report", zap.String("topic", m.Topic()), zap.Error(err))
		return
	}
	b.send(msg)
}

func (b *Bridge) onCapabilities(_ mqtt.Client, m mqtt.Message) {
	msg, err := DecodeBounds(m.Payload())
	if err != nil {
		b.logger.Warn("Bad capability report", zap.String("topic", m.Topic()), zap.Error(err))
		return
	}
	b.send(msg)
}

func (b *Bridge) onTarget(_ mqtt.Client, m mqtt.Message) {
	msg, err := DecodeTarget(m.Payload())
	if err != nil {
		b.logger.Warn("Bad target", zap.String("topic", m.Topic()), zap.Error(err))
		return
	}
	b.send(msg)
}

func (b *Bridge) variants(kind control.Kind) int {
	if kind == control.KindRange {
		return 1
	}
	if b.profile == nil {
		return 0
	}
	s, ok := b.profile.Spec(kind)
	if !ok {
		return 0
	}
	return s.AutoVariants()
}

func (b *Bridge) send(msg any) {
	if b.program != nil {
		b.program.Send(msg)
	}
}
