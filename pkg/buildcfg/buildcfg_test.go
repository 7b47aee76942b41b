package buildcfg

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "device.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_ParsesAllFields(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
device_id: tvp-0001
server_url: https://aggregator.example.com/v1/fingerprints
wifi_ssid: livingroom
wifi_psk: secret123
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DeviceID != "tvp-0001" {
		t.Errorf("DeviceID = %q", cfg.DeviceID)
	}
	if cfg.ServerURL != "https://aggregator.example.com/v1/fingerprints" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.WifiSSID != "livingroom" || cfg.WifiPSK != "secret123" {
		t.Errorf("wifi fields = %q/%q", cfg.WifiSSID, cfg.WifiPSK)
	}
}

func TestLoad_MissingDeviceIDIsError(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
server_url: https://aggregator.example.com/v1/fingerprints
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing device_id")
	}
}

func TestLoad_MissingFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefaultPath_HonorsEnvOverride(t *testing.T) {
	t.Setenv(envOverride, "/tmp/custom-device.yaml")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if path != "/tmp/custom-device.yaml" {
		t.Fatalf("path = %q, want override", path)
	}
}

func TestDefaultPath_FallsBackToHomeDir(t *testing.T) {
	t.Setenv(envOverride, "")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if filepath.Base(path) != defaultFile {
		t.Fatalf("path = %q, want basename %q", path, defaultFile)
	}
}
