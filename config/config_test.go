package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Geometry.Segments != 20 || cfg.Geometry.Stacks != 40 {
		t.Errorf("tessellation = %d/%d, want 20/40", cfg.Geometry.Segments, cfg.Geometry.Stacks)
	}
	if cfg.Geometry.EyeRotation != [3]float64{50, -40, 0} {
		t.Errorf("eye rotation = %v", cfg.Geometry.EyeRotation)
	}
	if cfg.Breeding.MutationChance != 0.05 {
		t.Errorf("mutation chance = %v, want 0.05", cfg.Breeding.MutationChance)
	}
	if cfg.Export.SolidName != "bird" || cfg.Export.HeadName != "head" {
		t.Errorf("export names = %q/%q", cfg.Export.SolidName, cfg.Export.HeadName)
	}
	if cfg.Derived.EyeSegments != 10 || cfg.Derived.EyeStacks != 20 {
		t.Errorf("eye tessellation = %d/%d, want 10/20", cfg.Derived.EyeSegments, cfg.Derived.EyeStacks)
	}
	if cfg.Derived.LogLifetime != 5*time.Second {
		t.Errorf("log lifetime = %v, want 5s", cfg.Derived.LogLifetime)
	}
	if len(cfg.Catalog) != 0 {
		t.Errorf("catalog = %v, want empty", cfg.Catalog)
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	path := writeFile(t, "user.yaml", `
geometry:
  segments: 12
breeding:
  mutation_chance: 0
catalog:
  - m.1.2.3.4.h.1.2.3.4.5.6.7.b.1.2.3.4.5.t.1.2.3.4.5.c.-100
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Geometry.Segments != 12 {
		t.Errorf("segments = %d, want 12", cfg.Geometry.Segments)
	}
	if cfg.Geometry.Stacks != 40 {
		t.Errorf("stacks = %d, want default 40", cfg.Geometry.Stacks)
	}
	if cfg.Breeding.MutationChance != 0 {
		t.Errorf("mutation chance = %v, want 0", cfg.Breeding.MutationChance)
	}
	if cfg.Derived.EyeSegments != 6 {
		t.Errorf("eye segments = %d, want 6", cfg.Derived.EyeSegments)
	}
	if len(cfg.Catalog) != 1 {
		t.Errorf("catalog has %d entries, want 1", len(cfg.Catalog))
	}
}

func TestLoadTOMLOverride(t *testing.T) {
	path := writeFile(t, "user.toml", `
[evolution]
generations = 3
side = "left"

[viewer]
log_lifetime = 2.5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Evolution.Generations != 3 || cfg.Evolution.Side != "left" {
		t.Errorf("evolution = %+v", cfg.Evolution)
	}
	if cfg.Derived.LogLifetime != 2500*time.Millisecond {
		t.Errorf("log lifetime = %v, want 2.5s", cfg.Derived.LogLifetime)
	}
	if cfg.Geometry.Segments != 20 {
		t.Errorf("segments = %d, want default 20", cfg.Geometry.Segments)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		want string
	}{
		{"bad side", "a.yaml", "evolution:\n  side: up\n", "side"},
		{"few segments", "b.yaml", "geometry:\n  segments: 2\n", "segments"},
		{"dominance range", "c.toml", "[breeding]\ndominance_min = 0.9\ndominance_max = 0.1\n", "dominance"},
		{"empty solid name", "d.yaml", "export:\n  solid_name: \"\"\n", "solid_name"},
		{"malformed yaml", "e.yaml", "geometry: [\n", "parsing config file"},
		{"malformed toml", "f.toml", "[geometry\n", "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.body))
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file loaded without error")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Geometry.Subdivisions = 2
	cfg.Evolution.Side = "right"

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if back.Geometry.Subdivisions != 2 || back.Evolution.Side != "right" {
		t.Errorf("round trip lost overrides: %+v %+v", back.Geometry, back.Evolution)
	}
}

func TestInitAndCfg(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Cfg().Viewer.TargetFPS != 60 {
		t.Errorf("target fps = %d, want 60", Cfg().Viewer.TargetFPS)
	}
}
