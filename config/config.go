// Package config loads the kinetic ring settings from YAML.
// Missing keys keep their defaults and out-of-range values are clamped rather than rejected.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Carmen-Shannon/kinetic-ring/common"
	"github.com/Carmen-Shannon/kinetic-ring/engine/camera"
	"github.com/Carmen-Shannon/kinetic-ring/engine/clock"
	"github.com/Carmen-Shannon/kinetic-ring/engine/export"
	"github.com/Carmen-Shannon/kinetic-ring/engine/input"
	"github.com/Carmen-Shannon/kinetic-ring/engine/model"
	"github.com/Carmen-Shannon/kinetic-ring/engine/ring"
	"github.com/Carmen-Shannon/kinetic-ring/engine/scene"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTitle        = "Kinetic Ring"
	DefaultWidth        = 1280
	DefaultHeight       = 720
	DefaultFrameLimit   = 60
	DefaultPlaceholders = 6
	DefaultMaxDimension = 1024
	DefaultPDFDPI       = 150.0
)

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type CameraConfig struct {
	FovDegrees  float64 `yaml:"fov"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Sensitivity float64 `yaml:"sensitivity"`
	WheelStep   float64 `yaml:"wheel_step"`
}

type RingConfig struct {
	OrbitRadius float64 `yaml:"orbit_radius"`
	RingOffset  float64 `yaml:"ring_offset"`
	MaxSize     float64 `yaml:"max_size"`
	RelaxFactor float64 `yaml:"relax_factor"`
}

type MotionConfig struct {
	Mode string `yaml:"mode"`
}

type MeshConfig struct {
	Steps int `yaml:"steps"`
}

type ExportConfig struct {
	Preset string `yaml:"preset"`
}

type ImagesConfig struct {
	Paths        []string `yaml:"paths"`
	Placeholders int      `yaml:"placeholders"`
	MaxDimension int      `yaml:"max_dimension"`
	PDFDPI       float64  `yaml:"pdf_dpi"`
	// CornerFraction bakes rounded corners into the image pixels, e.g. 0.02; 0 leaves the
	// rounding to the plane mesh.
	CornerFraction float64 `yaml:"corner_fraction"`
}

// Config is the full application configuration.
type Config struct {
	Window         WindowConfig `yaml:"window"`
	Camera         CameraConfig `yaml:"camera"`
	Ring           RingConfig   `yaml:"ring"`
	Motion         MotionConfig `yaml:"motion"`
	Mesh           MeshConfig   `yaml:"mesh"`
	Export         ExportConfig `yaml:"export"`
	Images         ImagesConfig `yaml:"images"`
	FrameLimit     int          `yaml:"frame_limit"`
	ComputeWorkers int          `yaml:"compute_workers"`
	Profiling      bool         `yaml:"profiling"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - *Config: a fully populated configuration
func Default() *Config {
	return &Config{
		Window: WindowConfig{Title: DefaultTitle, Width: DefaultWidth, Height: DefaultHeight},
		Camera: CameraConfig{
			FovDegrees:  camera.DefaultFovDegrees,
			MinDistance: camera.DefaultMinDistance,
			MaxDistance: camera.DefaultMaxDistance,
			Sensitivity: camera.DefaultSensitivity,
			WheelStep:   input.DefaultWheelStep,
		},
		Ring: RingConfig{
			OrbitRadius: ring.DefaultOrbitRadius,
			RingOffset:  scene.DefaultRingOffset,
			MaxSize:     ring.DefaultMaxSize,
			RelaxFactor: ring.DefaultRelaxFactor,
		},
		Motion: MotionConfig{Mode: clock.Continuous.String()},
		Mesh:   MeshConfig{Steps: model.DefaultSteps},
		Export: ExportConfig{Preset: export.Window.String()},
		Images: ImagesConfig{
			Placeholders: DefaultPlaceholders,
			MaxDimension: DefaultMaxDimension,
			PDFDPI:       DefaultPDFDPI,
		},
		FrameLimit: DefaultFrameLimit,
	}
}

// Load reads a YAML file over the defaults and normalizes the result.
// An empty path returns the defaults.
//
// Parameters:
//   - path: path to the YAML file
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if the file cannot be read or parsed
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg and normalizes it.
//
// Parameters:
//   - data: YAML document
//   - cfg: configuration to decode into, usually from Default
//
// Returns:
//   - error: error if the document is malformed
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	cfg.Normalize()
	return nil
}

// Write stores the configuration as YAML.
//
// Parameters:
//   - path: destination file
//
// Returns:
//   - error: error if encoding or writing fails
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Normalize clamps every value into its supported range and replaces unknown names with defaults.
func (c *Config) Normalize() {
	def := Default()

	c.Window.Title = common.Coalesce(strings.TrimSpace(c.Window.Title), def.Window.Title)
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}

	c.Camera.FovDegrees = common.Clamp(common.Coalesce(c.Camera.FovDegrees, def.Camera.FovDegrees), camera.MinFovDegrees, camera.MaxFovDegrees)
	c.Camera.MinDistance = common.Clamp(common.Coalesce(c.Camera.MinDistance, def.Camera.MinDistance), camera.DefaultMinDistance, camera.DefaultMaxDistance)
	c.Camera.MaxDistance = common.Clamp(common.Coalesce(c.Camera.MaxDistance, def.Camera.MaxDistance), camera.DefaultMinDistance, camera.DefaultMaxDistance)
	if c.Camera.MaxDistance < c.Camera.MinDistance {
		c.Camera.MinDistance, c.Camera.MaxDistance = c.Camera.MaxDistance, c.Camera.MinDistance
	}
	if c.Camera.Sensitivity <= 0 {
		c.Camera.Sensitivity = def.Camera.Sensitivity
	}
	if c.Camera.WheelStep <= 0 {
		c.Camera.WheelStep = def.Camera.WheelStep
	}

	if c.Ring.OrbitRadius < 0 {
		c.Ring.OrbitRadius = def.Ring.OrbitRadius
	}
	if c.Ring.RingOffset < 0 {
		c.Ring.RingOffset = def.Ring.RingOffset
	}
	if c.Ring.MaxSize <= 0 {
		c.Ring.MaxSize = def.Ring.MaxSize
	}
	c.Ring.RelaxFactor = common.Clamp(c.Ring.RelaxFactor, 0, 1)

	if m, err := clock.ParseMode(strings.ToLower(strings.TrimSpace(c.Motion.Mode))); err != nil {
		log.Printf("[Config] %v, using %s", err, def.Motion.Mode)
		c.Motion.Mode = def.Motion.Mode
	} else {
		c.Motion.Mode = m.String()
	}

	if c.Mesh.Steps < 1 {
		c.Mesh.Steps = 1
	}

	if p, err := export.ParsePreset(c.Export.Preset); err != nil {
		log.Printf("[Config] %v, using %s", err, def.Export.Preset)
		c.Export.Preset = def.Export.Preset
	} else {
		c.Export.Preset = p.String()
	}

	paths := c.Images.Paths[:0]
	for _, p := range c.Images.Paths {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	c.Images.Paths = paths
	if c.Images.Placeholders < 0 {
		c.Images.Placeholders = 0
	}
	if c.Images.MaxDimension <= 0 {
		c.Images.MaxDimension = def.Images.MaxDimension
	}
	c.Images.CornerFraction = common.Clamp(c.Images.CornerFraction, 0, 0.5)
	if c.Images.PDFDPI <= 0 {
		c.Images.PDFDPI = def.Images.PDFDPI
	}

	if c.FrameLimit < 0 {
		c.FrameLimit = 0
	}
	if c.ComputeWorkers < 0 {
		c.ComputeWorkers = 0
	}
}

// MotionMode returns the parsed motion mode.
func (c *Config) MotionMode() clock.Mode {
	m, _ := clock.ParseMode(c.Motion.Mode)
	return m
}

// ExportPreset returns the parsed export preset.
func (c *Config) ExportPreset() export.Preset {
	p, _ := export.ParsePreset(c.Export.Preset)
	return p
}
