package polystrip

import (
	"fmt"
	"math"
)

// minVectorLength is the length below which a direction vector is treated as
// zero.
const minVectorLength = 1e-9

// Frame is an oriented cross-section of a strip: a position, a right-handed
// orthonormal basis and a radius.
//
// TangentX points along the strip, TangentY across it and Normal away from
// the surface, with TangentY = Normal × TangentX. Frames are constructed with
// [NewFrame] or [NewFrameFromNormal], which enforce these invariants; the zero
// Frame is invalid.
type Frame struct {
	pos    Point3
	normal Vec3
	tx     Vec3
	ty     Vec3
	radius float64
}

// NewFrame returns a frame at pos with the given orientation and radius.
//
// The basis is orthonormalized around normal: tangentX has its normal
// component removed and tangentY is recomputed as normal × tangentX. tangentY
// is only used to recover tangentX when tangentX is parallel to normal. The
// radius must be positive and finite.
func NewFrame(pos Point3, normal, tangentX, tangentY Vec3, radius float64) (Frame, error) {
	if err := checkRadius(radius); err != nil {
		return Frame{}, err
	}
	if pos.IsNaN() || pos.IsInf() {
		return Frame{}, fmt.Errorf("frame position %v: %w", pos, ErrInvalidParameter)
	}
	for _, v := range [...]struct {
		name string
		v    Vec3
	}{{"normal", normal}, {"tangent x", tangentX}, {"tangent y", tangentY}} {
		if !(v.v.Hypot() >= minVectorLength) {
			return Frame{}, fmt.Errorf("frame %s %v: %w", v.name, v.v, ErrDegenerateInput)
		}
	}
	f := Frame{pos: pos, radius: radius}
	if err := f.setBasis(normal, tangentX, tangentY); err != nil {
		return Frame{}, err
	}
	return f, nil
}

// NewFrameFromNormal returns a frame at pos whose tangents are an arbitrary
// but deterministic orthonormal pair perpendicular to normal.
func NewFrameFromNormal(pos Point3, normal Vec3, radius float64) (Frame, error) {
	if !(normal.Hypot() >= minVectorLength) {
		return Frame{}, fmt.Errorf("frame normal %v: %w", normal, ErrDegenerateInput)
	}
	n := normal.Normalize()
	tx := n.Ortho()
	return NewFrame(pos, n, tx, n.Cross(tx), radius)
}

func checkRadius(r float64) error {
	if !(r > 0) || math.IsInf(r, 0) {
		return fmt.Errorf("radius %g: %w", r, ErrInvalidParameter)
	}
	return nil
}

// setBasis orthonormalizes the basis around normal.
func (f *Frame) setBasis(normal, tangentX, tangentY Vec3) error {
	n := normal.Normalize()
	tx := tangentX.Reject(n)
	if tx.Hypot() < minVectorLength {
		tx = tangentY.Reject(n).Cross(n)
		if tx.Hypot() < minVectorLength {
			return fmt.Errorf("frame tangents parallel to normal %v: %w", n, ErrDegenerateInput)
		}
	}
	tx = tx.Normalize()
	f.normal = n
	f.tx = tx
	f.ty = n.Cross(tx)
	return nil
}

func (f Frame) Position() Point3 { return f.pos }
func (f Frame) Normal() Vec3     { return f.normal }
func (f Frame) TangentX() Vec3   { return f.tx }
func (f Frame) TangentY() Vec3   { return f.ty }
func (f Frame) Radius() float64  { return f.radius }

// WithPosition returns a copy of f moved to pos. The orientation is unchanged.
func (f Frame) WithPosition(pos Point3) Frame {
	f.pos = pos
	return f
}

// WithRadius returns a copy of f with the given radius.
func (f Frame) WithRadius(r float64) (Frame, error) {
	if err := checkRadius(r); err != nil {
		return f, err
	}
	f.radius = r
	return f, nil
}

// WithNormal returns a copy of f reoriented around normal. The tangents are
// re-orthogonalized against the new normal, keeping TangentX as close to its
// old direction as possible.
func (f Frame) WithNormal(normal Vec3) (Frame, error) {
	if !(normal.Hypot() >= minVectorLength) {
		return f, fmt.Errorf("frame normal %v: %w", normal, ErrDegenerateInput)
	}
	out := f
	if err := out.setBasis(normal, f.tx, f.ty); err != nil {
		return f, err
	}
	return out, nil
}

// Validate reports whether f satisfies the frame invariants within tolerance
// tol. A non-finite position or a basis that is not orthonormal yields an
// error wrapping [ErrDegenerateInput]; a bad radius one wrapping
// [ErrInvalidParameter].
func (f Frame) Validate(tol float64) error {
	if f.pos.IsNaN() || f.pos.IsInf() {
		return fmt.Errorf("frame position %v: %w", f.pos, ErrDegenerateInput)
	}
	if !f.IsOrthonormal(tol) {
		return fmt.Errorf("frame basis (%v, %v, %v): %w", f.tx, f.ty, f.normal, ErrDegenerateInput)
	}
	return checkRadius(f.radius)
}

// IsOrthonormal reports whether the basis vectors have unit length and are
// pairwise orthogonal, within tol.
func (f Frame) IsOrthonormal(tol float64) bool {
	b := f.basis()
	for i, v := range b {
		if math.Abs(v.Hypot()-1) > tol {
			return false
		}
		for _, w := range b[i+1:] {
			if math.Abs(v.Dot(w)) > tol {
				return false
			}
		}
	}
	return true
}

// Sides returns the two points offset from the position by ± radius along
// TangentY.
func (f Frame) Sides() (Point3, Point3) {
	d := f.ty.Mul(f.radius)
	return f.pos.Translate(d), f.pos.Translate(d.Negate())
}

// basis returns TangentX, TangentY and Normal, in that order.
func (f Frame) basis() [3]Vec3 {
	return [3]Vec3{f.tx, f.ty, f.normal}
}

// rotate rotates the orientation of f around the unit axis k.
func (f Frame) rotate(k Vec3, angle float64) Frame {
	f.tx = f.tx.Rotate(k, angle)
	f.ty = f.ty.Rotate(k, angle)
	f.normal = f.normal.Rotate(k, angle)
	return f
}

// toWorld maps coordinates in the (TangentX, TangentY, Normal) basis of f to
// a world-space vector.
func (f Frame) toWorld(l Vec3) Vec3 {
	return f.tx.Mul(l.X).Add(f.ty.Mul(l.Y)).Add(f.normal.Mul(l.Z))
}

// reorthonormalize removes accumulated drift from the basis, keeping the
// normal's direction.
func (f Frame) reorthonormalize() Frame {
	out := f
	if err := out.setBasis(f.normal, f.tx, f.ty); err != nil {
		return f
	}
	return out
}
