package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/kinetic-ring/engine/clock"
	"github.com/Carmen-Shannon/kinetic-ring/engine/export"
)

func TestDefaultIsNormalized(t *testing.T) {
	cfg := Default()
	before := *cfg
	cfg.Normalize()
	if cfg.Camera != before.Camera || cfg.Window != before.Window || cfg.Ring != before.Ring {
		t.Errorf("expected defaults to survive normalization unchanged")
	}
	if cfg.MotionMode() != clock.Continuous {
		t.Errorf("expected continuous mode, got %v", cfg.MotionMode())
	}
	if cfg.ExportPreset() != export.Window {
		t.Errorf("expected window preset, got %v", cfg.ExportPreset())
	}
}

func TestParseClampsValues(t *testing.T) {
	doc := []byte(`
window:
  title: "  "
  width: -5
camera:
  fov: 400
  min_distance: 50
  max_distance: 99999
motion:
  mode: Stepped
mesh:
  steps: 0
export:
  preset: bogus
images:
  paths: ["a.png", "  ", "b.pdf"]
  placeholders: -1
  corner_fraction: 3
frame_limit: -30
`)
	cfg := Default()
	if err := Parse(doc, cfg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tests := []struct {
		name     string
		got, exp any
	}{
		{"title", cfg.Window.Title, DefaultTitle},
		{"width", cfg.Window.Width, DefaultWidth},
		{"fov", cfg.Camera.FovDegrees, 150.0},
		{"min distance", cfg.Camera.MinDistance, 200.0},
		{"max distance", cfg.Camera.MaxDistance, 10000.0},
		{"mode", cfg.Motion.Mode, "stepped"},
		{"steps", cfg.Mesh.Steps, 1},
		{"preset", cfg.Export.Preset, "window"},
		{"paths", len(cfg.Images.Paths), 2},
		{"placeholders", cfg.Images.Placeholders, 0},
		{"corner fraction", cfg.Images.CornerFraction, 0.5},
		{"frame limit", cfg.FrameLimit, 0},
	}
	for _, tt := range tests {
		if tt.got != tt.exp {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.exp, tt.got)
		}
	}
	if cfg.MotionMode() != clock.Stepped {
		t.Errorf("expected stepped mode, got %v", cfg.MotionMode())
	}
}

func TestParseKeepsUnsetDefaults(t *testing.T) {
	cfg := Default()
	if err := Parse([]byte("camera:\n  fov: 45\n"), cfg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Camera.FovDegrees != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Camera.FovDegrees)
	}
	if cfg.Ring.OrbitRadius != 420 {
		t.Errorf("expected default orbit radius 420, got %f", cfg.Ring.OrbitRadius)
	}
	if cfg.FrameLimit != DefaultFrameLimit {
		t.Errorf("expected default frame limit, got %d", cfg.FrameLimit)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if err := Parse([]byte("camera: [1, 2"), Default()); err == nil {
		t.Errorf("expected error for malformed YAML")
	}
}

func TestLoadAndWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ring.yaml")

	cfg := Default()
	cfg.Motion.Mode = "stepped"
	cfg.Export.Preset = "portrait"
	cfg.Images.Paths = []string{"one.png"}
	if err := cfg.Write(path); err != nil {
		t.Fatalf("expected no error writing, got %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error loading, got %v", err)
	}
	if loaded.ExportPreset() != export.Portrait {
		t.Errorf("expected portrait preset, got %v", loaded.ExportPreset())
	}
	if len(loaded.Images.Paths) != 1 || loaded.Images.Paths[0] != "one.png" {
		t.Errorf("expected image paths [one.png], got %v", loaded.Images.Paths)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	} else if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	if cfg, err := Load(""); err != nil || cfg.FrameLimit != DefaultFrameLimit {
		t.Errorf("expected defaults for empty path, got %v, %v", cfg, err)
	}
}
