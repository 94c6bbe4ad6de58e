// Package habitat describes the enclosing habitat volume: its shape, dimensions,
// the horizontal footprint objects are confined to, and crew volume metrics.
package habitat

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Carmen-Shannon/oxy-habitat/common"
)

// Shape is the parametric habitat shape.
type Shape string

const (
	ShapeCylinder Shape = "cylinder"
	ShapeCapsule  Shape = "capsule"
	ShapeSphere   Shape = "sphere"
	ShapeDome     Shape = "dome"
	ShapeTorus    Shape = "torus"
	ShapeCube     Shape = "cube"
)

// MinVolumePerCrew is the smallest habitable volume per crew member, in m³.
const MinVolumePerCrew = 15.0

var (
	// ErrUnknownShape is returned for shapes outside the supported set.
	ErrUnknownShape = errors.New("unknown habitat shape")
	// ErrInvalidDimension is returned for non-positive dimensions.
	ErrInvalidDimension = errors.New("habitat dimensions must be positive")
	// ErrInvalidCrew is returned for a crew size below one.
	ErrInvalidCrew = errors.New("crew size must be at least 1")
)

// ParseShape converts a case-insensitive name into a Shape.
//
// Parameters:
//   - s: the shape name
//
// Returns:
//   - Shape: the parsed shape
//   - error: ErrUnknownShape if the name is not recognized
func ParseShape(s string) (Shape, error) {
	switch sh := Shape(strings.ToLower(strings.TrimSpace(s))); sh {
	case ShapeCylinder, ShapeCapsule, ShapeSphere, ShapeDome, ShapeTorus, ShapeCube:
		return sh, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
	}
}

// Config is the habitat configuration the viewport renders. Dimensions are in meters.
type Config struct {
	Name            string  `toml:"name"`
	Shape           Shape   `toml:"shape"`
	CrewSize        int     `toml:"crew_size"`
	MissionDuration int     `toml:"mission_duration"`
	MissionType     string  `toml:"mission_type"`
	DimX            float32 `toml:"dimension_x"`
	DimY            float32 `toml:"dimension_y"`
	DimZ            float32 `toml:"dimension_z"`
}

// DefaultConfig returns a 10 m cylinder for a crew of four.
func DefaultConfig() Config {
	return Config{
		Name:            "My Habitat",
		Shape:           ShapeCylinder,
		CrewSize:        4,
		MissionDuration: 30,
		MissionType:     "moon",
		DimX:            10,
		DimY:            10,
		DimZ:            10,
	}
}

// Validate checks shape, dimensions and crew size.
//
// Returns:
//   - error: a wrapped sentinel error describing the first problem found
func (c Config) Validate() error {
	if _, err := ParseShape(string(c.Shape)); err != nil {
		return err
	}
	if c.DimX <= 0 || c.DimY <= 0 || c.DimZ <= 0 {
		return fmt.Errorf("%w: got %gx%gx%g", ErrInvalidDimension, c.DimX, c.DimY, c.DimZ)
	}
	if c.CrewSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCrew, c.CrewSize)
	}
	return nil
}

// Bounds returns the horizontal half extents objects are confined to.
func (c Config) Bounds() Bounds {
	return Bounds{HalfWidth: c.DimX / 2, HalfDepth: c.DimZ / 2}
}

// Volume returns the enclosed volume in m³ for the configured shape.
func (c Config) Volume() float64 {
	x, y, z := float64(c.DimX), float64(c.DimY), float64(c.DimZ)
	switch c.Shape {
	case ShapeCylinder:
		r := x / 2
		return math.Pi * r * r * y
	case ShapeCapsule:
		r := math.Min(x, z) / 2
		cylinderHeight := math.Max(0, y-2*r)
		return math.Pi*r*r*cylinderHeight + (4.0/3.0)*math.Pi*r*r*r
	case ShapeSphere:
		r := x / 2
		return (4.0 / 3.0) * math.Pi * r * r * r
	case ShapeDome:
		r := x / 2
		return (2.0 / 3.0) * math.Pi * r * r * y
	case ShapeTorus:
		major := x / 2
		minor := y / 2
		return 2 * math.Pi * math.Pi * major * minor * minor
	default:
		return x * y * z
	}
}

// Bounds is the horizontal half-extent of the habitat floor, centered on the origin.
type Bounds struct {
	HalfWidth float32
	HalfDepth float32
}

// Limits returns the largest |x| and |z| an object of the given footprint may occupy.
// An object wider than the habitat is pinned to the center on that axis.
//
// Parameters:
//   - width, depth: the object's footprint
//
// Returns:
//   - maxX, maxZ: non-negative limits
func (b Bounds) Limits(width, depth float32) (maxX, maxZ float32) {
	maxX = b.HalfWidth - width/2
	maxZ = b.HalfDepth - depth/2
	if maxX < 0 {
		maxX = 0
	}
	if maxZ < 0 {
		maxZ = 0
	}
	return
}

// Clamp confines a horizontal position so the footprint stays inside the bounds.
//
// Parameters:
//   - x, z: candidate center position
//   - width, depth: the object's footprint
//
// Returns:
//   - cx, cz: the clamped position
func (b Bounds) Clamp(x, z, width, depth float32) (cx, cz float32) {
	maxX, maxZ := b.Limits(width, depth)
	return common.Clamp(x, -maxX, maxX), common.Clamp(z, -maxZ, maxZ)
}

// Contains reports whether a footprint centered at (x, z) lies inside the bounds.
func (b Bounds) Contains(x, z, width, depth float32) bool {
	maxX, maxZ := b.Limits(width, depth)
	return x >= -maxX && x <= maxX && z >= -maxZ && z <= maxZ
}
