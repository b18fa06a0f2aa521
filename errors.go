package polystrip

import "errors"

var (
	// ErrInvalidParameter is returned for out-of-range scalar arguments, such
	// as a non-positive radius or scale factor.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateInput is returned when a frame has a zero-length normal or
	// tangent, or is otherwise not an orthonormal basis.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrEmptySurface is returned when a projection target has no usable
	// triangles.
	ErrEmptySurface = errors.New("empty surface")

	// ErrStale is returned when an edge is snapped before its interpolated
	// frames have been recomputed.
	ErrStale = errors.New("interpolated frames are stale")

	// ErrNotMember is returned when a vertex or edge does not belong to the
	// PolyStrips it is used with.
	ErrNotMember = errors.New("not a member of this polystrips")
)
