// Package config handles splinetool configuration loading and management.
package config

import (
	"github.com/Faultbox/splinekit/pkg/math"
	"github.com/Faultbox/splinekit/pkg/meshgen"
)

// Limits applied by Normalize.
const (
	MinSteps        = 2
	MaxSteps        = 20
	MinTimeInterval = 0.001
	MinSteepness    = 0.5
)

// Config holds all tool settings.
type Config struct {
	Resample ResampleConfig `yaml:"resample"`
	Mesh     MeshConfig     `yaml:"mesh"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ResampleConfig holds resampling settings.
type ResampleConfig struct {
	Steps int `yaml:"steps"` // Subdivisions per span, or points removed by simplify
}

// MeshConfig holds mesh generation settings.
type MeshConfig struct {
	Mode         meshgen.Mode             `yaml:"mode"`
	TimeInterval float32                  `yaml:"time_interval"`
	MaxSteepness float32                  `yaml:"max_steepness"` // Degrees
	MaxDepth     int                      `yaml:"max_depth"`
	MinInterval  float32                  `yaml:"min_interval"`
	Additional   []meshgen.AdditionalMesh `yaml:"additional,omitempty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	gen := meshgen.DefaultConfig()
	return &Config{
		Resample: ResampleConfig{
			Steps: MinSteps,
		},
		Mesh: MeshConfig{
			Mode:         gen.Mode,
			TimeInterval: gen.TimeInterval,
			MaxSteepness: gen.MaxSteepness,
			MaxDepth:     gen.MaxDepth,
			MinInterval:  gen.MinInterval,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Normalize clamps values into their valid ranges.
func (c *Config) Normalize() {
	c.Resample.Steps = min(max(c.Resample.Steps, MinSteps), MaxSteps)

	m := &c.Mesh
	m.TimeInterval = max(m.TimeInterval, MinTimeInterval)
	m.MaxSteepness = max(m.MaxSteepness, MinSteepness)
	if m.MaxDepth <= 0 {
		m.MaxDepth = meshgen.DefaultMaxDepth
	}
	if m.MinInterval <= 0 {
		m.MinInterval = meshgen.DefaultMinInterval
	}
	for i := range m.Additional {
		inst := &m.Additional[i].Instance
		if inst.Scale == (math.Vec3{}) {
			inst.Scale = math.Vec3{X: 1, Y: 1, Z: 1}
		}
	}
}

// Generator returns the mesh generator settings.
func (c *Config) Generator() meshgen.Config {
	return meshgen.Config{
		Mode:         c.Mesh.Mode,
		TimeInterval: c.Mesh.TimeInterval,
		MaxSteepness: c.Mesh.MaxSteepness,
		MaxDepth:     c.Mesh.MaxDepth,
		MinInterval:  c.Mesh.MinInterval,
		Additional:   c.Mesh.Additional,
	}
}
