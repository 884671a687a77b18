package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "hemesh.yaml"

// ErrNoConfig is returned by FindProjectRoot when no hemesh.yaml exists in
// the working directory or any of its parents.
var ErrNoConfig = errors.New(configFileName + " not found")

// Shape kinds understood by the CLI.
const (
	ShapePolygon = "polygon"
	ShapeGrid    = "grid"
	ShapeBox     = "box"
)

// Config represents the configuration from hemesh.yaml.
type Config struct {
	LogLevel  string          `yaml:"log_level,omitempty"`
	QuadSplit QuadSplitConfig `yaml:"quadsplit"`
	Shape     ShapeConfig     `yaml:"shape"`
	Selection SelectionConfig `yaml:"selection"`
}

// QuadSplitConfig holds the QuadSplit operator settings.
type QuadSplitConfig struct {
	Offset     float64 `yaml:"offset"`
	Iterations int     `yaml:"iterations,omitempty"`
}

// ShapeConfig describes the primitive to build. Only the fields relevant to
// Kind are read.
type ShapeConfig struct {
	Kind   string  `yaml:"kind"`
	Sides  int     `yaml:"sides,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`
	Rows   int     `yaml:"rows,omitempty"`
	Cols   int     `yaml:"cols,omitempty"`
	Size   float64 `yaml:"size,omitempty"`
}

// SelectionConfig restricts operators to faces carrying one of the labels.
// An empty list means all faces.
type SelectionConfig struct {
	Labels []int32 `yaml:"labels,omitempty"`
}

// DefaultConfig returns the configuration used when no hemesh.yaml exists.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		QuadSplit: QuadSplitConfig{Iterations: 1},
		Shape: ShapeConfig{
			Kind:   ShapePolygon,
			Sides:  4,
			Radius: 1,
			Rows:   2,
			Cols:   2,
			Size:   1,
		},
	}
}

// FindProjectRoot walks up from the current working directory looking for hemesh.yaml.
// Returns the directory containing hemesh.yaml, or an error wrapping ErrNoConfig.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return findRoot(cwd)
}

func findRoot(start string) (string, error) {
	dir := start
	for {
		configPath := filepath.Join(dir, configFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in any parent directory of %s", ErrNoConfig, start)
		}
		dir = parent
	}
}

// LoadConfig loads and parses the hemesh.yaml file from the given project root.
// Fields missing from the file keep their defaults.
func LoadConfig(projectRoot string) (*Config, error) {
	configPath := filepath.Join(projectRoot, configFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", configFileName, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configFileName, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configFileName, err)
	}

	return config, nil
}

// Load finds hemesh.yaml above the working directory and loads it. Without a
// config file the defaults are returned.
func Load() (*Config, error) {
	root, err := FindProjectRoot()
	if errors.Is(err, ErrNoConfig) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return LoadConfig(root)
}

// Validate checks the fields that cannot be caught by YAML decoding.
func (c *Config) Validate() error {
	switch c.Shape.Kind {
	case ShapePolygon:
		if c.Shape.Sides < 3 {
			return fmt.Errorf("'shape.sides' must be at least 3, got %d", c.Shape.Sides)
		}
		if c.Shape.Radius <= 0 {
			return fmt.Errorf("'shape.radius' must be positive, got %g", c.Shape.Radius)
		}
	case ShapeGrid:
		if c.Shape.Rows < 1 || c.Shape.Cols < 1 {
			return fmt.Errorf("'shape.rows' and 'shape.cols' must be at least 1, got %dx%d", c.Shape.Rows, c.Shape.Cols)
		}
		if c.Shape.Size <= 0 {
			return fmt.Errorf("'shape.size' must be positive, got %g", c.Shape.Size)
		}
	case ShapeBox:
		if c.Shape.Size <= 0 {
			return fmt.Errorf("'shape.size' must be positive, got %g", c.Shape.Size)
		}
	default:
		return fmt.Errorf("unknown 'shape.kind' %q", c.Shape.Kind)
	}
	if c.QuadSplit.Iterations < 0 {
		return fmt.Errorf("'quadsplit.iterations' must not be negative, got %d", c.QuadSplit.Iterations)
	}
	return nil
}
