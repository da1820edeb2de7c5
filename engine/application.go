package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/anima/engine/core"
)

// Duration reads "15s" style strings from TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type RenderConfig struct {
	// Initial capacity of the render thread task queue.
	QueueSize int `toml:"queue_size"`
}

type LoaderConfig struct {
	// Number of concurrent mesh loads.
	Workers int `toml:"workers"`
	// Timeout of a single HTTP mesh download. Zero disables it.
	HTTPTimeout Duration `toml:"http_timeout"`
	// Mesh locations loaded at startup, http(s) URLs or file paths.
	Models []string `toml:"models"`
}

type AssetsConfig struct {
	// Directory indexed for .vao meshes. Empty disables the asset manager.
	Dir string `toml:"dir"`
	// Reload meshes when files in Dir change.
	Watch bool `toml:"watch"`
}

type ApplicationConfig struct {
	// The application name used in windowing, if applicable.
	Name     string       `toml:"name"`
	LogLevel string       `toml:"log_level"`
	Render   RenderConfig `toml:"render"`
	Loader   LoaderConfig `toml:"loader"`
	Assets   AssetsConfig `toml:"assets"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:     "anima",
		LogLevel: "info",
		Render:   RenderConfig{QueueSize: 64},
		Loader: LoaderConfig{
			Workers:     4,
			HTTPTimeout: Duration{15 * time.Second},
		},
		Assets: AssetsConfig{Dir: "assets/meshes", Watch: true},
	}
}

// ParseConfig decodes TOML on top of the defaults.
func ParseConfig(data []byte) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func (c *ApplicationConfig) Validate() error {
	if c.Render.QueueSize <= 0 {
		return fmt.Errorf("%w: render.queue_size must be positive, got %d", core.ErrInvalidArgument, c.Render.QueueSize)
	}
	if c.Loader.Workers <= 0 {
		return fmt.Errorf("%w: loader.workers must be positive, got %d", core.ErrInvalidArgument, c.Loader.Workers)
	}
	if c.Loader.HTTPTimeout.Duration < 0 {
		return fmt.Errorf("%w: loader.http_timeout must not be negative", core.ErrInvalidArgument)
	}
	return nil
}
