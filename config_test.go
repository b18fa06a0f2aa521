package polystrip

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
max_segment_length = 0.01
default_radius = 0.25
default_normal = [0.0, 1.0, 0.0]
weld_tolerance = 0.0
`))
	require.NoError(t, err)
	want := DefaultConfig()
	want.MaxSegmentLength = 0.01
	want.DefaultRadius = 0.25
	want.DefaultNormal = [3]float64{0, 1, 0}
	want.WeldTolerance = 0
	assert.Equal(t, want, cfg)

	f, err := cfg.DefaultFrame(Pt(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, Vec(0, 1, 0), f.Normal())
	assert.Equal(t, 0.25, f.Radius())
	assert.Equal(t, Pt(1, 2, 3), f.Position())
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want error
	}{
		{"negative segment length", "max_segment_length = -1.0", ErrInvalidParameter},
		{"segment length below accuracy", "max_segment_length = 1e-8", ErrInvalidParameter},
		{"zero accuracy", "arclen_accuracy = 0.0", ErrInvalidParameter},
		{"nan tolerance", "ortho_tolerance = nan", ErrInvalidParameter},
		{"too few samples", "max_samples = 1", ErrInvalidParameter},
		{"negative weld tolerance", "weld_tolerance = -0.5", ErrInvalidParameter},
		{"zero radius", "default_radius = 0.0", ErrInvalidParameter},
		{"zero normal", "default_normal = [0.0, 0.0, 0.0]", ErrDegenerateInput},
		{"tangent along normal", "default_tangent_x = [0.0, 0.0, 1.0]\ndefault_tangent_y = [0.0, 0.0, -1.0]", ErrDegenerateInput},
		{"unknown key", "max_segment = 0.1", nil},
		{"malformed", "max_segment_length = ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(tt.toml))
			if tt.want == nil {
				assert.Error(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
