package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/nmis-digital/dppmap/config"
)

func TestRootCmdWiring(t *testing.T) {
	cmd := rootCmd()

	if cmd.Use != appName {
		t.Errorf("expected root command %q, got %q", appName, cmd.Use)
	}
	if cmd.Version != Version {
		t.Errorf("expected version %q, got %q", Version, cmd.Version)
	}

	want := map[string]bool{"index": false, "map": false, "validate": false, "export": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	if cmd.PersistentFlags().Lookup("log-level") == nil {
		t.Error("persistent flag log-level not registered")
	}
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		logger := setupLogger(tt.level)
		if logger == nil {
			t.Fatalf("setupLogger(%q) returned nil", tt.level)
		}
		if got := logger.Enabled(context.Background(), tt.want); !got {
			t.Errorf("setupLogger(%q): level %v not enabled", tt.level, tt.want)
		}
	}
}

func TestReadRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.yaml")
	content := "torque_rating: 2.4\nserial: SN-001\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write records: %v", err)
	}

	rec, err := readRecords(path)
	if err != nil {
		t.Fatalf("readRecords: %v", err)
	}

	names := rec.FieldNames()
	if len(names) != 2 || names[0] != "serial" || names[1] != "torque_rating" {
		t.Errorf("expected sorted field names, got %v", names)
	}

	if _, err := readRecords(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRegistryWithOverlays(t *testing.T) {
	dir := t.TempDir()
	overlay := `definitions:
  - layer: risk
    version: 2
    fields:
      - name: criticality
        required: true
        kind: mapping
      - name: hazard_class
        kind: enum
        allowed: ["A", "B", "C"]
`
	if err := os.WriteFile(filepath.Join(dir, "risk_v2.yaml"), []byte(overlay), 0644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Schemas.OverlayGlob = filepath.Join(dir, "*.yaml")

	reg, err := loadRegistry(cfg, slog.Default())
	if err != nil {
		t.Fatalf("loadRegistry: %v", err)
	}

	def, err := reg.Get("risk", 0)
	if err != nil {
		t.Fatalf("get risk schema: %v", err)
	}
	if def.Version != 2 {
		t.Errorf("expected overlay version 2 to win, got %d", def.Version)
	}
}
