package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	originalPaths := Paths
	Paths = []string{t.TempDir()}
	defer func() { Paths = originalPaths }()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Queue.Capacity != 0 {
		t.Errorf("Queue.Capacity = %d, want 0", cfg.Queue.Capacity)
	}
	if cfg.Queue.PutTimeout != 0 || cfg.Queue.GetTimeout != 0 {
		t.Errorf("timeouts = %v/%v, want 0/0", cfg.Queue.PutTimeout, cfg.Queue.GetTimeout)
	}
}

func TestLoad_File(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "qcli.yaml")

	configContent := `
log:
  level: debug
queue:
  capacity: 10
  put_timeout: 250ms
  get_timeout: 2s
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	originalPaths := Paths
	Paths = []string{tmpDir}
	defer func() { Paths = originalPaths }()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Queue.Capacity != 10 {
		t.Errorf("Queue.Capacity = %d, want 10", cfg.Queue.Capacity)
	}
	if cfg.Queue.PutTimeout != 250*time.Millisecond {
		t.Errorf("Queue.PutTimeout = %v, want 250ms", cfg.Queue.PutTimeout)
	}
	if cfg.Queue.GetTimeout != 2*time.Second {
		t.Errorf("Queue.GetTimeout = %v, want 2s", cfg.Queue.GetTimeout)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	originalPaths := Paths
	Paths = []string{t.TempDir()}
	defer func() { Paths = originalPaths }()

	t.Setenv("QCLI_QUEUE_CAPACITY", "5")
	t.Setenv("QCLI_LOG_LEVEL", "warn")
	t.Setenv("QCLI_QUEUE_PUT_TIMEOUT", "750ms")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.Queue.Capacity != 5 {
		t.Errorf("Queue.Capacity = %d, want 5", cfg.Queue.Capacity)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Queue.PutTimeout != 750*time.Millisecond {
		t.Errorf("Queue.PutTimeout = %v, want 750ms", cfg.Queue.PutTimeout)
	}
}

func TestLoad_Invalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("queue:\n  capacity: -3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(configPath)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrReadConfig) {
		t.Fatalf("Load() error = %v, want ErrReadConfig", err)
	}
}
