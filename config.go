package polystrip

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunables of the engine. The zero Config is not usable;
// start from [DefaultConfig].
type Config struct {
	// MaxSegmentLength is the largest arc length between consecutive
	// interpolated frames of an edge.
	MaxSegmentLength float64 `toml:"max_segment_length"`
	// ArclenAccuracy is the absolute accuracy of arc length computations.
	ArclenAccuracy float64 `toml:"arclen_accuracy"`
	// DegenerateLength is the arc length below which an edge is sampled only
	// at its endpoints.
	DegenerateLength float64 `toml:"degenerate_length"`
	// OrthoTolerance is how far a transported frame may drift from
	// orthonormality before it is re-orthonormalized.
	OrthoTolerance float64 `toml:"ortho_tolerance"`
	// MaxSamples bounds the number of interpolated frames of one edge. Edges
	// that would need more fail to recompute.
	MaxSamples int `toml:"max_samples"`

	// DefaultRadius, DefaultNormal, DefaultTangentX and DefaultTangentY
	// orient vertices created from input that carries positions only.
	DefaultRadius   float64    `toml:"default_radius"`
	DefaultNormal   [3]float64 `toml:"default_normal"`
	DefaultTangentX [3]float64 `toml:"default_tangent_x"`
	DefaultTangentY [3]float64 `toml:"default_tangent_y"`

	// WeldTolerance is the distance within which mesh vertices are merged
	// by [Mesh.Weld] when exporting.
	WeldTolerance float64 `toml:"weld_tolerance"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxSegmentLength: 0.05,
		ArclenAccuracy:   1e-9,
		DegenerateLength: 1e-9,
		OrthoTolerance:   1e-9,
		MaxSamples:       100_000,
		DefaultRadius:    0.1,
		DefaultNormal:    [3]float64{0, 0, 1},
		DefaultTangentX:  [3]float64{1, 0, 0},
		DefaultTangentY:  [3]float64{0, 1, 0},
		WeldTolerance:    1e-6,
	}
}

// LoadConfig reads a TOML configuration from r. Keys missing from r keep
// their default values; unknown keys are an error.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that all tunables are in range. It returns an error
// wrapping [ErrInvalidParameter] or [ErrDegenerateInput] otherwise.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"max_segment_length", c.MaxSegmentLength},
		{"arclen_accuracy", c.ArclenAccuracy},
		{"degenerate_length", c.DegenerateLength},
		{"ortho_tolerance", c.OrthoTolerance},
	}
	for _, p := range positive {
		if !(p.v > 0) || !finite(p.v) {
			return fmt.Errorf("config %s = %g: %w", p.name, p.v, ErrInvalidParameter)
		}
	}
	if c.MaxSegmentLength <= 1e3*c.ArclenAccuracy {
		return fmt.Errorf("config max_segment_length = %g too small for arclen_accuracy %g: %w",
			c.MaxSegmentLength, c.ArclenAccuracy, ErrInvalidParameter)
	}
	if c.MaxSamples < 2 {
		return fmt.Errorf("config max_samples = %d: %w", c.MaxSamples, ErrInvalidParameter)
	}
	if !(c.WeldTolerance >= 0) {
		return fmt.Errorf("config weld_tolerance = %g: %w", c.WeldTolerance, ErrInvalidParameter)
	}
	if _, err := c.DefaultFrame(Point3{}); err != nil {
		return fmt.Errorf("config default frame: %w", err)
	}
	return nil
}

// DefaultFrame returns a frame at pos oriented and sized by the defaults.
func (c Config) DefaultFrame(pos Point3) (Frame, error) {
	return NewFrame(pos,
		Vec(c.DefaultNormal[0], c.DefaultNormal[1], c.DefaultNormal[2]),
		Vec(c.DefaultTangentX[0], c.DefaultTangentX[1], c.DefaultTangentX[2]),
		Vec(c.DefaultTangentY[0], c.DefaultTangentY[1], c.DefaultTangentY[2]),
		c.DefaultRadius)
}

// step returns the target arc length between samples. Sample positions and
// the edge length are each off by up to a few ArclenAccuracy, so the step
// stays that far below MaxSegmentLength.
func (c Config) step() float64 {
	return c.MaxSegmentLength*(1-1e-6) - 8*c.ArclenAccuracy
}
