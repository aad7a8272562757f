package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
http:
  addr: ":9090"
matching:
  seats_per_vehicle: 6
  max_detour_minutes: 10
routing:
  provider: osrm
  osrm_endpoint: http://osrm:5000
logging:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("addr %q", cfg.HTTP.Addr)
	}
	if cfg.Matching.SeatsPerVehicle != 6 || cfg.Matching.MaxDetourMinutes != 10 {
		t.Errorf("matching %+v", cfg.Matching)
	}
	// Unset fields fall back to defaults.
	if cfg.Matching.StopServiceMinutes != 2 || cfg.Matching.TripBufferMinutes != 5 {
		t.Errorf("defaults not applied: %+v", cfg.Matching)
	}
	if cfg.Routing.Provider != ProviderOSRM || cfg.Routing.OSRMEndpoint != "http://osrm:5000" {
		t.Errorf("routing %+v", cfg.Routing)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level %q", cfg.Logging.Level)
	}
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "routing": {"provider": "mock"}
}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Routing.Provider != ProviderMock {
		t.Errorf("provider %q", cfg.Routing.Provider)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("default addr %q", cfg.HTTP.Addr)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("RIDEPOOL_HTTP__ADDR", ":7070")
	path := writeConfig(t, "config.yaml", `
routing:
  provider: mock
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":7070" {
		t.Errorf("env override ignored, addr %q", cfg.HTTP.Addr)
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", "")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLoad_InvalidRouting(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
routing:
  provider: teleport
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestLoad_MissingOSRMEndpoint(t *testing.T) {
	// The osrm provider is the default and requires an endpoint.
	path := writeConfig(t, "config.yaml", `
logging:
  level: info
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing osrm endpoint")
	}
}

func TestRoutingConfig_CacheValidation(t *testing.T) {
	c := RoutingConfig{Provider: ProviderMock, Cache: RouteCacheConfig{Enabled: true}}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for cache without redis address")
	}
	c.Cache.RedisAddr = "localhost:6379"
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
