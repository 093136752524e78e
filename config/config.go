// Package config provides configuration loading and access for the bird generator.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all generator configuration parameters.
type Config struct {
	Geometry  GeometryConfig  `yaml:"geometry" toml:"geometry"`
	Breeding  BreedingConfig  `yaml:"breeding" toml:"breeding"`
	Export    ExportConfig    `yaml:"export" toml:"export"`
	Evolution EvolutionConfig `yaml:"evolution" toml:"evolution"`
	Viewer    ViewerConfig    `yaml:"viewer" toml:"viewer"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
	Catalog   []string        `yaml:"catalog" toml:"catalog"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" toml:"-"`
}

// GeometryConfig holds tessellation and construction constants for mesh building.
type GeometryConfig struct {
	Segments      int        `yaml:"segments" toml:"segments"`             // Sphere and frustum slices
	Stacks        int        `yaml:"stacks" toml:"stacks"`                 // Sphere pole-to-pole divisions
	EyeDivisor    int        `yaml:"eye_divisor" toml:"eye_divisor"`       // Eyes use segments/divisor
	TaperHeight   float64    `yaml:"taper_height" toml:"taper_height"`     // Length of beak and tail tapers
	EpsilonRadius float64    `yaml:"epsilon_radius" toml:"epsilon_radius"` // Stand-in for zero radii
	MinScale      float64    `yaml:"min_scale" toml:"min_scale"`           // Smallest scale magnitude
	HeadScale     float64    `yaml:"head_scale" toml:"head_scale"`
	Subdivisions  int        `yaml:"subdivisions" toml:"subdivisions"`
	BeakTilt      float64    `yaml:"beak_tilt" toml:"beak_tilt"` // Degrees about Y
	EyeRotation   [3]float64 `yaml:"eye_rotation" toml:"eye_rotation"`
}

// BreedingConfig holds crossover and mutation parameters.
type BreedingConfig struct {
	DominanceMin   float64 `yaml:"dominance_min" toml:"dominance_min"`
	DominanceMax   float64 `yaml:"dominance_max" toml:"dominance_max"`
	MutationChance float64 `yaml:"mutation_chance" toml:"mutation_chance"` // Per field
	MutationMin    float64 `yaml:"mutation_min" toml:"mutation_min"`
	MutationMax    float64 `yaml:"mutation_max" toml:"mutation_max"`
}

// ExportConfig holds STL naming.
type ExportConfig struct {
	SolidName string `yaml:"solid_name" toml:"solid_name"`
	HeadName  string `yaml:"head_name" toml:"head_name"`
	FileName  string `yaml:"file_name" toml:"file_name"`
}

// EvolutionConfig holds headless evolution loop settings.
type EvolutionConfig struct {
	Generations int    `yaml:"generations" toml:"generations"`
	Side        string `yaml:"side" toml:"side"` // left, right or auto
	RNGSeed     uint64 `yaml:"rng_seed" toml:"rng_seed"`
}

// ViewerConfig holds display settings.
type ViewerConfig struct {
	Width       int     `yaml:"width" toml:"width"`
	Height      int     `yaml:"height" toml:"height"`
	TargetFPS   int     `yaml:"target_fps" toml:"target_fps"`
	PanelWidth  int     `yaml:"panel_width" toml:"panel_width"`
	LogLifetime float64 `yaml:"log_lifetime" toml:"log_lifetime"` // Seconds a toast stays on screen
	OrbitRadius float64 `yaml:"orbit_radius" toml:"orbit_radius"`
	PreviewSize int     `yaml:"preview_size" toml:"preview_size"` // Offspring thumbnail edge in pixels
}

// TelemetryConfig holds lineage output settings.
type TelemetryConfig struct {
	LineageFile string `yaml:"lineage_file" toml:"lineage_file"`
	StatsEvery  int    `yaml:"stats_every" toml:"stats_every"` // Generations between diversity logs
}

// DerivedConfig holds values computed from other config values.
type DerivedConfig struct {
	EyeSegments int           // Geometry.Segments / EyeDivisor
	EyeStacks   int           // Geometry.Stacks / EyeDivisor
	LogLifetime time.Duration // Viewer.LogLifetime as a duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML or TOML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// decode overlays a user file onto cfg; only fields present in the file change.
func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// Validate rejects settings that would make generation or breeding meaningless.
func (c *Config) Validate() error {
	g := c.Geometry
	if g.Segments < 3 || g.Stacks < 2 {
		return fmt.Errorf("geometry: segments must be >= 3 and stacks >= 2, got %d and %d", g.Segments, g.Stacks)
	}
	if g.EyeDivisor < 1 {
		return fmt.Errorf("geometry: eye_divisor must be >= 1, got %d", g.EyeDivisor)
	}
	if g.EpsilonRadius <= 0 || g.MinScale <= 0 || g.TaperHeight <= 0 {
		return fmt.Errorf("geometry: epsilon_radius, min_scale and taper_height must be positive")
	}
	if g.Subdivisions < 0 {
		return fmt.Errorf("geometry: subdivisions must be >= 0, got %d", g.Subdivisions)
	}

	b := c.Breeding
	if b.DominanceMin > b.DominanceMax || b.DominanceMin < 0 || b.DominanceMax > 1 {
		return fmt.Errorf("breeding: dominance range [%v, %v] must lie within [0, 1]", b.DominanceMin, b.DominanceMax)
	}
	if b.MutationChance < 0 || b.MutationChance > 1 {
		return fmt.Errorf("breeding: mutation_chance %v must lie within [0, 1]", b.MutationChance)
	}
	if b.MutationMin > b.MutationMax {
		return fmt.Errorf("breeding: mutation_min %v exceeds mutation_max %v", b.MutationMin, b.MutationMax)
	}

	if strings.TrimSpace(c.Export.SolidName) == "" || strings.TrimSpace(c.Export.HeadName) == "" {
		return fmt.Errorf("export: solid_name and head_name are required")
	}
	switch c.Evolution.Side {
	case "left", "right", "auto":
	default:
		return fmt.Errorf("evolution: side must be left, right or auto, got %q", c.Evolution.Side)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.EyeSegments = max(c.Geometry.Segments/c.Geometry.EyeDivisor, 3)
	c.Derived.EyeStacks = max(c.Geometry.Stacks/c.Geometry.EyeDivisor, 2)
	c.Derived.LogLifetime = time.Duration(c.Viewer.LogLifetime * float64(time.Second))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
