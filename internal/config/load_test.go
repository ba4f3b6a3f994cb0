package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Bool("demo", false, "")
	fs.String("model", "halo", "")
	fs.Duration("auto-hide", 0, "")
	fs.String("broker", "", "")
	fs.String("log-level", "info", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", demoFlags(t, "--demo"))
	require.NoError(t, err)

	assert.True(t, cfg.Demo)
	assert.Equal(t, "halo", cfg.Model)
	assert.Equal(t, time.Duration(0), cfg.AutoHide)
	assert.Equal(t, "radar/1", cfg.MQTT.Prefix)
	assert.Equal(t, 5*time.Second, cfg.MQTT.ConnectTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	doc := "model: br24\nauto_hide: 45s\nmqtt:\n  broker: tcp://gateway:1883\n  prefix: radar/aft\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := Load(path, demoFlags(t, "--auto-hide=10s"))
	require.NoError(t, err)

	assert.Equal(t, "br24", cfg.Model)
	assert.Equal(t, 10*time.Second, cfg.AutoHide)
	assert.Equal(t, "tcp://gateway:1883", cfg.MQTT.Broker)
	assert.Equal(t, "radar/aft", cfg.MQTT.Prefix)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("RADARPANEL_MQTT_BROKER", "tcp://env:1883")
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "tcp://env:1883", cfg.MQTT.Broker)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("", demoFlags(t))
	assert.Error(t, err, "no broker and no demo")

	_, err = Load("", demoFlags(t, "--demo", "--log-level=loud"))
	assert.Error(t, err)

	_, err = Load("", demoFlags(t, "--demo", "--auto-hide=-1s"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}
