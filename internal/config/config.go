// Package config loads raytracer settings from YAML, layered over defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/df07/go-raytracer-core/pkg/renderer"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file Load reads when no path is given
const DefaultPath = "raytracer.yaml"

// Config holds all raytracer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds what to render and how.
type RenderConfig struct {
	Scene       string  `yaml:"scene"`        // Built-in scene name or scene file path
	Model       string  `yaml:"model"`        // PLY or glTF model for the mesh scene
	Mode        string  `yaml:"mode"`         // normal, depth, fresnel, refraction or shadow
	Width       int     `yaml:"width"`        // 0 keeps the scene's width
	TileSize    int     `yaml:"tile_size"`    // Pixels per tile side
	Workers     int     `yaml:"workers"`      // 0 means one per CPU
	MaxBounces  int     `yaml:"max_bounces"`  // Transparent surfaces followed in refraction mode
	MaxDistance float64 `yaml:"max_distance"` // Distance depth mode maps to black
	OutputDir   string  `yaml:"output_dir"`
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	ScenesDir string `yaml:"scenes_dir"` // Scene files offered by /api/scenes
	MaxWidth  int    `yaml:"max_width"`  // Largest image width a request may ask for
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	options := renderer.DefaultOptions()
	return &Config{
		Render: RenderConfig{
			Scene:       "default",
			Mode:        renderer.ModeNormal.String(),
			TileSize:    renderer.DefaultConfig().TileSize,
			MaxBounces:  options.MaxBounces,
			MaxDistance: options.MaxDistance,
			OutputDir:   "output",
		},
		Server: ServerConfig{
			Port:      8080,
			ScenesDir: "scenes",
			MaxWidth:  2000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty path
// reads DefaultPath if it exists and falls back to the defaults if it does not.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if _, err := renderer.ParseMode(c.Render.Mode); err != nil {
		return err
	}
	if c.Render.Width < 0 {
		return fmt.Errorf("render width must not be negative, got %d", c.Render.Width)
	}
	if c.Render.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.Render.TileSize)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Render.Workers)
	}
	if c.Render.MaxBounces < 0 {
		return fmt.Errorf("max bounces must not be negative, got %d", c.Render.MaxBounces)
	}
	if !(c.Render.MaxDistance > 0) {
		return fmt.Errorf("max distance must be positive, got %v", c.Render.MaxDistance)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Server.MaxWidth <= 0 {
		return fmt.Errorf("server max width must be positive, got %d", c.Server.MaxWidth)
	}
	return nil
}

// RenderOptions returns trace options for the configured mode and limits
func (c *Config) RenderOptions() (renderer.Options, error) {
	mode, err := renderer.ParseMode(c.Render.Mode)
	if err != nil {
		return renderer.Options{}, err
	}
	options := renderer.DefaultOptions()
	options.Mode = mode
	options.MaxBounces = c.Render.MaxBounces
	options.MaxDistance = c.Render.MaxDistance
	return options, nil
}

// RendererConfig returns the tile and worker settings for the renderer
func (c *Config) RendererConfig() renderer.Config {
	return renderer.Config{
		TileSize:   c.Render.TileSize,
		NumWorkers: c.Render.Workers,
	}
}
