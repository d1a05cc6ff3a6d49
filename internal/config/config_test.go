package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPPort != 6060 {
		t.Errorf("Expected default port 6060, got %d", cfg.Server.HTTPPort)
	}
	if cfg.Queue.Type != "memory" {
		t.Errorf("Expected default queue type memory, got %q", cfg.Queue.Type)
	}
	if cfg.Offload.Enabled {
		t.Error("Expected offload disabled by default")
	}
	if cfg.Offload.Timeout != 2*time.Second {
		t.Errorf("Expected default offload timeout 2s, got %s", cfg.Offload.Timeout)
	}
	if cfg.Engine.DefaultChartModel != "i" {
		t.Errorf("Expected default chart model i, got %q", cfg.Engine.DefaultChartModel)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  http_port: 7070
queue:
  type: nats
  url: nats://broker:4222
offload:
  enabled: true
  subject: calc.requests
  timeout: 500ms
  size_threshold: 100
engine:
  shift_n: 6
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPPort != 7070 {
		t.Errorf("Expected port 7070, got %d", cfg.Server.HTTPPort)
	}
	if cfg.Queue.Type != "nats" || cfg.Queue.URL != "nats://broker:4222" {
		t.Errorf("Unexpected queue config: %+v", cfg.Queue)
	}
	if !cfg.Offload.Enabled || cfg.Offload.Timeout != 500*time.Millisecond {
		t.Errorf("Unexpected offload config: %+v", cfg.Offload)
	}
	if cfg.Engine.ShiftN != 6 {
		t.Errorf("Expected shift_n 6, got %d", cfg.Engine.ShiftN)
	}
	// Unset keys keep their defaults.
	if cfg.Engine.TrendN != 7 {
		t.Errorf("Expected default trend_n 7, got %d", cfg.Engine.TrendN)
	}
}

func TestValidate_Rejections(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{HTTPPort: 6060},
			Engine: EngineConfig{ShiftN: 8, TrendN: 7},
		}
	}

	cfg := base()
	cfg.Server.HTTPPort = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected invalid port to be rejected")
	}

	cfg = base()
	cfg.Queue.Type = "kafka"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected unsupported queue type to be rejected")
	}

	cfg = base()
	cfg.Offload.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Error("Expected enabled offload without subject to be rejected")
	}

	cfg = base()
	cfg.Engine.ImprovementDirection = "sideways"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected unknown improvement direction to be rejected")
	}
}
