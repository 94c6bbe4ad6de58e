// Package config loads the viewer configuration: viewport tuning, the habitat
// description and the initial module layout. Values come from a TOML file and
// may be overridden through HABITAT_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-habitat/engine/game_object"
	"github.com/Carmen-Shannon/oxy-habitat/engine/habitat"
	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HABITAT_"

var (
	// ErrInvalidViewport is returned for viewport tuning that cannot drive the rig.
	ErrInvalidViewport = errors.New("invalid viewport configuration")
	// ErrInvalidModule is returned for a module entry with a bad kind or size.
	ErrInvalidModule = errors.New("invalid module")
)

// Config is the complete viewer configuration file.
type Config struct {
	Viewport Viewport       `toml:"viewport"`
	Habitat  habitat.Config `toml:"habitat"`
	Modules  []Module       `toml:"modules"`
}

// Module is one placed module in the layout file.
type Module struct {
	Kind     string     `toml:"kind"`
	Position [3]float32 `toml:"position"`
	Size     [3]float32 `toml:"size"`
}

// Default returns the built-in configuration: default viewport tuning, the default
// habitat and an empty layout.
func Default() Config {
	return Config{
		Viewport: DefaultViewport(),
		Habitat:  habitat.DefaultConfig(),
	}
}

// Load reads the configuration file at path on top of the defaults, applies
// environment overrides and validates the result. An empty path skips the file.
//
// Parameters:
//   - path: the TOML file to read, or "" for defaults only
//
// Returns:
//   - Config: the loaded configuration
//   - error: a wrapped read, decode, env or validation error
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Decode(bytes.NewReader(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg.Viewport); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode decodes TOML from r into cfg. Keys absent from the document keep the
// values already in cfg; unknown keys are rejected.
//
// Parameters:
//   - r: the TOML source
//   - cfg: the configuration to decode into
//
// Returns:
//   - error: a wrapped decode error
func Decode(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// ParseEnv applies HABITAT_* environment overrides to target. Fields whose
// variable is unset are left untouched.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the viewport, the habitat and every module entry.
func (c Config) Validate() error {
	if err := c.Viewport.Validate(); err != nil {
		return err
	}
	if err := c.Habitat.Validate(); err != nil {
		return fmt.Errorf("habitat: %w", err)
	}
	for i, m := range c.Modules {
		if m.Kind == "" {
			return fmt.Errorf("%w: modules[%d]: missing kind", ErrInvalidModule, i)
		}
		if m.Size[0] <= 0 || m.Size[1] <= 0 || m.Size[2] <= 0 {
			return fmt.Errorf("%w: modules[%d] %q: size must be positive, got %v", ErrInvalidModule, i, m.Kind, m.Size)
		}
	}
	return nil
}

// Objects converts the module list into placed objects. IDs follow file order
// starting at 1; positions are clamped into the habitat footprint.
//
// Returns:
//   - []game_object.PlacedObject: one object per module entry
func (c Config) Objects() []game_object.PlacedObject {
	bounds := c.Habitat.Bounds()
	objects := make([]game_object.PlacedObject, 0, len(c.Modules))
	for i, m := range c.Modules {
		x, z := bounds.Clamp(m.Position[0], m.Position[2], m.Size[0], m.Size[2])
		objects = append(objects, game_object.NewPlacedObject(
			game_object.WithID(uint64(i+1)),
			game_object.WithKind(m.Kind),
			game_object.WithSize(m.Size[0], m.Size[1], m.Size[2]),
			game_object.WithPosition(x, m.Position[1], z),
		))
	}
	return objects
}
