package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"radar-panel.klederson.com/internal/app"
	"radar-panel.klederson.com/internal/config"
	"radar-panel.klederson.com/internal/control"
	"radar-panel.klederson.com/internal/device"
)

var flagConfig string

func main() {
	rootCmd := &cobra.Command{
		Use:   "radar-panel",
		Short: "Radar Panel - Terminal control panel for marine radars",
		Long: `Radar Panel drives the gain, clutter, range and guard zone controls of a
marine radar from the terminal, with a live PPI view of tracked targets.

The radar is reached through an MQTT gateway (--broker). Use --demo to run
against a built-in simulated radar instead.`,
		RunE:         run,
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&flagConfig, "config", "", "Config file (yaml, toml or json)")
	flags.Bool("demo", false, "Run against a simulated radar (no gateway required)")
	flags.String("model", "halo", fmt.Sprintf("Radar model %v", control.Models()))
	flags.Duration("auto-hide", 0, "Hide the control panel after this long without input (0 = never)")
	flags.String("broker", "", "MQTT broker URL of the radar gateway, e.g. tcp://localhost:1883")
	flags.String("prefix", "radar/1", "MQTT topic prefix of the radar")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-file", "radar-panel.log", "Log file (the terminal is owned by the UI)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	profile, err := control.LoadProfile(cfg.Model)
	if err != nil {
		return err
	}

	var (
		link     app.Link
		linkName string
	)
	if cfg.Demo {
		link = device.NewSimulator(profile, logger)
		linkName = "demo"
	} else {
		bridge, err := device.NewBridge(device.BridgeConfig{
			BrokerURL:      cfg.MQTT.Broker,
			ClientID:       cfg.MQTT.ClientID,
			Prefix:         cfg.MQTT.Prefix,
			ConnectTimeout: cfg.MQTT.ConnectTimeout,
		}, profile, logger)
		if err != nil {
			return err
		}
		link = bridge
		linkName = cfg.MQTT.Broker
	}

	model, err := app.New(app.Options{
		Profile:  profile,
		Link:     link,
		LinkName: linkName,
		AutoHide: cfg.AutoHide,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	logger.Info("Starting",
		zap.String("model", profile.Name),
		zap.String("link", linkName),
		zap.Duration("auto_hide", cfg.AutoHide))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(30),
	)

	// Start the link with reference to the tea program
	if err := model.StartLink(p); err != nil {
		logger.Error("Radar link failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Could not reach the radar gateway. Try one of:")
		fmt.Fprintln(os.Stderr, "  radar-panel --broker tcp://<gateway>:1883")
		fmt.Fprintln(os.Stderr, "  radar-panel --demo    (simulated radar, no gateway needed)")
		return err
	}

	_, err = p.Run()
	return err
}

// newLogger builds a JSON file logger at the configured level.
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.OutputPaths = []string{cfg.File}
	zc.ErrorOutputPaths = []string{cfg.File}
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}
