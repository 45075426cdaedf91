package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// We pass nil for cmd to skip flags
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Expected default log level %s, got %s", DefaultLogLevel, cfg.Log.Level)
	}
	if cfg.Input.Path != DefaultInputPath {
		t.Errorf("Expected default input path %s, got %s", DefaultInputPath, cfg.Input.Path)
	}
	if cfg.Output.Path != DefaultOutputPath {
		t.Errorf("Expected default output path %s, got %s", DefaultOutputPath, cfg.Output.Path)
	}
	if cfg.Output.Pretty {
		t.Error("Expected pretty output to default to false")
	}
	if cfg.Output.PreviewOnly {
		t.Error("Expected preview-only output to default to false")
	}
}

func TestLoadGlobalConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".kiroku")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	yaml := "log:\n  level: debug\noutput:\n  pretty: true\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
	if !cfg.Output.Pretty {
		t.Error("Expected pretty output from config file")
	}
	if cfg.Input.Path != DefaultInputPath {
		t.Errorf("Unset keys should keep defaults, got input path %s", cfg.Input.Path)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("KIROKU_LOG_LEVEL", "warn")
	t.Setenv("KIROKU_OUTPUT_PATH", "/tmp/out.jsonl")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Expected env log level warn, got %s", cfg.Log.Level)
	}
	if cfg.Output.Path != "/tmp/out.jsonl" {
		t.Errorf("Expected env output path, got %s", cfg.Output.Path)
	}
}
