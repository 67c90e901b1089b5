package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/circuitry/pkg/errors"
	"github.com/matzehuels/circuitry/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	want := filepath.Join("/tmp/custom-config", appName, fileName)
	if path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestDefaultPathHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", appName, fileName)
	if path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
checkpoint = 10
strategy = "unionfind"
workers = 4
max_connections = 1000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := Config{Checkpoint: 10, Strategy: "unionfind", Workers: 4, MaxConnections: 1000}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadMissingDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default file should not fail: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("Load(\"\") = %+v, want zero config", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing explicit file", filepath.Join(t.TempDir(), "absent.toml")},
		{"syntax", writeConfig(t, "checkpoint = \n")},
		{"unknown key", writeConfig(t, "checkpoints = 5\n")},
		{"bad strategy", writeConfig(t, "strategy = \"quickfind\"\n")},
		{"negative checkpoint", writeConfig(t, "checkpoint = -1\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestApply(t *testing.T) {
	cfg := Config{Checkpoint: 10, Strategy: "unionfind", Workers: 4}
	opts := pipeline.Options{Checkpoint: 25, Strategy: "rehome"}

	cfg.Apply(&opts, func(name string) bool { return name == "checkpoint" })

	if opts.Checkpoint != 25 {
		t.Errorf("Checkpoint = %d, explicit flag should win", opts.Checkpoint)
	}
	if opts.Strategy != "unionfind" {
		t.Errorf("Strategy = %q, want file value", opts.Strategy)
	}
	if opts.Workers != 4 {
		t.Errorf("Workers = %d, want file value", opts.Workers)
	}
	if opts.MaxConnections != 0 {
		t.Errorf("MaxConnections = %d, zero file value must not override", opts.MaxConnections)
	}
}
