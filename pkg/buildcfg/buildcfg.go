// Package buildcfg loads the constants that would be flashed into the
// device image at build time: the server URL, device identifier, and
// network credentials (spec §6, "Link-layer configuration... build-time
// constants"). There is no flashing step in this implementation, so they
// are read once at process start from a YAML file and never touched
// again while the pipeline runs.
package buildcfg

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	defaultDir  = ".tvpulse"
	defaultFile = "device.yaml"
	envOverride = "TVPULSE_CONFIG"
)

// Config is the build-time constant set of spec §6.
type Config struct {
	DeviceID  string `yaml:"device_id"`
	ServerURL string `yaml:"server_url"`
	WifiSSID  string `yaml:"wifi_ssid"`
	WifiPSK   string `yaml:"wifi_psk"`
}

// DefaultPath resolves ~/.tvpulse/device.yaml, or $TVPULSE_CONFIG if set.
func DefaultPath() (string, error) {
	if p := os.Getenv(envOverride); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("buildcfg: resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultDir, defaultFile), nil
}

// Load reads and parses the build-time config from path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("buildcfg: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("buildcfg: parse %s: %w", path, err)
	}
	if cfg.DeviceID == "" {
		return Config{}, fmt.Errorf("buildcfg: %s missing device_id", path)
	}
	if cfg.ServerURL == "" {
		return Config{}, fmt.Errorf("buildcfg: %s missing server_url", path)
	}
	return cfg, nil
}
