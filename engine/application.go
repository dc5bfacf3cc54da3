package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/anima-scene/engine/core"
	"github.com/spaghettifunk/anima-scene/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-scene/engine/systems"
)

// DefaultConfigPath is the config file read when none is given.
const DefaultConfigPath = "anima.toml"

type ApplicationConfig struct {
	// The application name, printed as the log prefix.
	Name string `toml:"name"`
	// One of debug, info, warn, error, fatal.
	LogLevel string `toml:"log_level"`
	// Directory indexed and watched by the asset manager.
	AssetsDir string `toml:"assets_dir"`
	// Geometry file to load, relative to AssetsDir unless absolute.
	Scene string `toml:"scene"`
	// Reload the scene when its files change.
	Watch bool `toml:"watch"`
	// Decode the texture maps referenced by materials.
	LoadTextures bool `toml:"load_textures"`
	// Flip textures vertically on load.
	FlipTextures bool `toml:"flip_textures"`
	// Fields declared here override the built-in default material.
	DefaultMaterial *metadata.Material `toml:"default_material"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:         "Anima Scene",
		LogLevel:     "info",
		AssetsDir:    "assets",
		Watch:        false,
		LoadTextures: true,
		FlipTextures: true,
	}
}

// LoadApplicationConfig decodes a TOML file over the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseApplicationConfig(data)
}

// LoadApplicationConfigOrDefault is LoadApplicationConfig, except a missing
// file yields the defaults.
func LoadApplicationConfigOrDefault(path string) (*ApplicationConfig, error) {
	cfg, err := LoadApplicationConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogDebug("config file %s not found, using defaults", path)
		return DefaultApplicationConfig(), nil
	}
	return cfg, err
}

func ParseApplicationConfig(data []byte) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%w: %d:%d: %s", core.ErrInvalidConfig, row, col, derr.Error())
		}
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks the config and reports the first problem found.
func (c *ApplicationConfig) Validate() error {
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Scene == "" {
		return fmt.Errorf("%w: scene is required", core.ErrInvalidConfig)
	}
	if c.AssetsDir == "" {
		return fmt.Errorf("%w: assets_dir is required", core.ErrInvalidConfig)
	}
	return nil
}

// ScenePath is Scene resolved against AssetsDir.
func (c *ApplicationConfig) ScenePath() string {
	if filepath.IsAbs(c.Scene) {
		return c.Scene
	}
	return filepath.Join(c.AssetsDir, c.Scene)
}

// ResolvedDefaultMaterial is the built-in default material with the
// config's overrides applied.
func (c *ApplicationConfig) ResolvedDefaultMaterial() *metadata.Material {
	return systems.MergeMaterial(systems.DefaultMaterial(), c.DefaultMaterial)
}
