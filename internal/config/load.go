package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the runtime configuration.
type Config struct {
	Model    string        `mapstructure:"model"`
	Demo     bool          `mapstructure:"demo"`
	AutoHide time.Duration `mapstructure:"auto_hide"`
	MQTT     MQTTConfig    `mapstructure:"mqtt"`
	Log      LogConfig     `mapstructure:"log"`
}

// MQTTConfig holds the radar gateway settings.
type MQTTConfig struct {
	Broker         string        `mapstructure:"broker"`
	ClientID       string        `mapstructure:"client_id"`
	Prefix         string        `mapstructure:"prefix"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// LogConfig holds the log settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("model", "halo")
	v.SetDefault("demo", false)
	v.SetDefault("auto_hide", time.Duration(0))
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "radar-panel")
	v.SetDefault("mqtt.prefix", "radar/1")
	v.SetDefault("mqtt.connect_timeout", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "radar-panel.log")
}

// Load reads the configuration from defaults, the optional file at path,
// RADARPANEL_* environment variables and flags, in increasing precedence.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("RADARPANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// flagKeys maps config keys to command line flag names.
var flagKeys = map[string]string{
	"model":       "model",
	"demo":        "demo",
	"auto_hide":   "auto-hide",
	"mqtt.broker": "broker",
	"mqtt.prefix": "prefix",
	"log.level":   "log-level",
	"log.file":    "log-file",
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Model == "" {
		return errors.New("model is required")
	}
	if c.AutoHide < 0 {
		return fmt.Errorf("auto_hide must not be negative, got %v", c.AutoHide)
	}
	if !c.Demo && c.MQTT.Broker == "" {
		return errors.New("either --demo or an MQTT broker is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
