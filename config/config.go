// Package config loads editor settings from an optional YAML file.
// The file is read once at startup; there is no runtime reconfiguration,
// so stage geometry and dancer radii are fixed for the process lifetime.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/larkwold/choreo/stage"
)

// Defaults
const (
	DefaultRadius     = 22.0
	DefaultCellAspect = 2.0
	DefaultDancers    = 5
)

// StageConfig describes the stage coordinate space
type StageConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Grid   float64 `yaml:"grid"`
}

// DancerConfig seeds one dancer. Radius falls back to the top-level
// dancer_radius when zero
type DancerConfig struct {
	ID     string  `yaml:"id"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius,omitempty"`
}

// Config is the root configuration document
type Config struct {
	Stage      StageConfig    `yaml:"stage"`
	Radius     float64        `yaml:"dancer_radius"`
	CellAspect float64        `yaml:"cell_aspect"`
	Audio      bool           `yaml:"audio"`
	Dancers    []DancerConfig `yaml:"dancers,omitempty"`
}

// Default returns the standard configuration: a 1000x600 stage with five
// dancers spaced along the vertical midline
func Default() Config {
	cfg := Config{
		Stage:      StageConfig{Width: stage.DefaultWidth, Height: stage.DefaultHeight, Grid: stage.DefaultPitch},
		Radius:     DefaultRadius,
		CellAspect: DefaultCellAspect,
		Audio:      true,
	}
	cfg.Dancers = defaultRow(cfg.Stage)
	return cfg
}

// defaultRow seeds dancers evenly spaced along the vertical midline of
// the given stage, so a fallback roster fits whatever stage the file
// configured instead of stacking up against the default stage's bounds
func defaultRow(s StageConfig) []DancerConfig {
	row := make([]DancerConfig, 0, DefaultDancers)
	step := s.Width / float64(DefaultDancers+1)
	for i := 0; i < DefaultDancers; i++ {
		row = append(row, DancerConfig{
			ID: fmt.Sprintf("d%d", i+1),
			X:  step * float64(i+1),
			Y:  s.Height / 2,
		})
	}
	return row
}

// Load reads the config file at path. A missing file yields defaults; a
// present but malformed file is an error (silently ignoring a file the
// user wrote would be worse than failing)
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	cfg.Dancers = nil // file roster replaces the default one
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Dancers) == 0 {
		cfg.Dancers = defaultRow(cfg.Stage)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks geometry constraints
func (c Config) Validate() error {
	if c.Stage.Width <= 0 || c.Stage.Height <= 0 {
		return fmt.Errorf("stage dimensions must be positive, got %gx%g", c.Stage.Width, c.Stage.Height)
	}
	if c.Radius <= 0 {
		return fmt.Errorf("dancer_radius must be positive, got %g", c.Radius)
	}
	if 2*c.Radius > c.Stage.Width || 2*c.Radius > c.Stage.Height {
		return fmt.Errorf("dancer_radius %g does not fit a %gx%g stage", c.Radius, c.Stage.Width, c.Stage.Height)
	}
	if c.CellAspect <= 0 {
		return fmt.Errorf("cell_aspect must be positive, got %g", c.CellAspect)
	}
	for _, d := range c.Dancers {
		if d.ID == "" {
			return fmt.Errorf("dancer with empty id")
		}
		if d.Radius < 0 || (d.Radius > 0 && (2*d.Radius > c.Stage.Width || 2*d.Radius > c.Stage.Height)) {
			return fmt.Errorf("dancer %s: radius %g does not fit the stage", d.ID, d.Radius)
		}
	}
	return nil
}

// Size returns the stage geometry
func (c Config) Size() stage.Size {
	return stage.Size{Width: c.Stage.Width, Height: c.Stage.Height, Pitch: c.Stage.Grid}
}

// Roster builds the seeded roster. Out-of-bounds seed positions are
// clamped into the stage rather than rejected, so a hand-edited file
// cannot violate the containment invariant. Duplicate ids are an error
func (c Config) Roster() (*stage.Roster, error) {
	size := c.Size()
	roster := stage.NewRoster()
	for _, dc := range c.Dancers {
		radius := dc.Radius
		if radius == 0 {
			radius = c.Radius
		}
		p := size.ClampInside(stage.Point{X: dc.X, Y: dc.Y}, radius)
		d := &stage.Dancer{ID: dc.ID, X: p.X, Y: p.Y, Radius: radius}
		if err := roster.Add(d); err != nil {
			return nil, fmt.Errorf("seed roster: %w", err)
		}
	}
	return roster, nil
}
