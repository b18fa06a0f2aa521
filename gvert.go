package polystrip

import (
	"fmt"
	"slices"
)

// maxGVertEdges is the number of edges a vertex can join.
const maxGVertEdges = 2

// GVert is a control vertex: a user-placed frame anchoring the ends of up to
// two edges.
//
// Edits through the setters mark the adjacent edges dirty; the edges are
// recomputed only when the caller asks for it.
type GVert struct {
	id    int
	owner *PolyStrips
	frame Frame
	edges []*GEdge
}

// NewGVert returns a vertex not owned by any [PolyStrips]. Most callers want
// [PolyStrips.AddGVert] instead.
func NewGVert(f Frame) (*GVert, error) {
	if err := f.Validate(frameTolerance); err != nil {
		return nil, err
	}
	return &GVert{frame: f}, nil
}

// frameTolerance is the tolerance frames are validated with on input.
const frameTolerance = 1e-6

// ID returns the vertex's identifier, unique within its PolyStrips. Vertices
// created with [NewGVert] have ID 0.
func (gv *GVert) ID() int { return gv.id }

func (gv *GVert) Frame() Frame     { return gv.frame }
func (gv *GVert) Position() Point3 { return gv.frame.pos }
func (gv *GVert) Radius() float64  { return gv.frame.radius }
func (gv *GVert) Normal() Vec3     { return gv.frame.normal }
func (gv *GVert) Edges() []*GEdge  { return slices.Clone(gv.edges) }
func (gv *GVert) String() string   { return fmt.Sprintf("gvert %d at %v", gv.id, gv.frame.pos) }

// SetPosition moves the vertex. The orientation is left unchanged; use
// [GVert.Reorient] to change it. A non-finite position is rejected with an
// error wrapping [ErrInvalidParameter].
func (gv *GVert) SetPosition(p Point3) error {
	if p.IsNaN() || p.IsInf() {
		return fmt.Errorf("%v: position %v: %w", gv, p, ErrInvalidParameter)
	}
	gv.frame.pos = p
	gv.invalidate()
	return nil
}

// SetRadius sets the radius of the vertex. It returns an error wrapping
// [ErrInvalidParameter] unless r is positive and finite.
func (gv *GVert) SetRadius(r float64) error {
	f, err := gv.frame.WithRadius(r)
	if err != nil {
		return fmt.Errorf("%v: %w", gv, err)
	}
	gv.frame = f
	gv.invalidate()
	return nil
}

// ScaleRadius multiplies the radius of the vertex by factor, which must be
// positive and finite.
func (gv *GVert) ScaleRadius(factor float64) error {
	if !(factor > 0) || !finite(factor) {
		return fmt.Errorf("%v: scale %g: %w", gv, factor, ErrInvalidParameter)
	}
	return gv.SetRadius(gv.frame.radius * factor)
}

// Reorient replaces the vertex's orientation. tangentX is orthogonalized
// against normal.
func (gv *GVert) Reorient(normal, tangentX Vec3) error {
	f, err := NewFrame(gv.frame.pos, normal, tangentX, normal.Cross(tangentX), gv.frame.radius)
	if err != nil {
		return fmt.Errorf("%v: %w", gv, err)
	}
	gv.frame = f
	gv.invalidate()
	return nil
}

// SnapToSurface moves the vertex to the closest point of s and aligns its
// normal with the surface there.
func (gv *GVert) SnapToSurface(s Surface) error {
	proj, err := projectorFor(s)
	if err != nil {
		return fmt.Errorf("snapping %v: %w", gv, err)
	}
	f, err := snapFrame(proj, gv.frame, gv.frame.pos)
	if err != nil {
		return fmt.Errorf("snapping %v: %w", gv, err)
	}
	gv.frame = f
	gv.invalidate()
	return nil
}

func (gv *GVert) invalidate() {
	for _, ge := range gv.edges {
		ge.Invalidate()
	}
}

// snapFrame moves f to the point of the surface closest to from and adopts
// the surface normal there, flipped if needed to face the same side as f's
// normal.
func snapFrame(p *Projector, f Frame, from Point3) (Frame, error) {
	hit := p.Nearest(from)
	if hit.Triangle < 0 {
		return f, fmt.Errorf("projecting %v: %w", from, ErrDegenerateInput)
	}
	n := hit.Normal
	if n.Dot(f.normal) < 0 {
		n = n.Negate()
	}
	return f.WithPosition(hit.Point).WithNormal(n)
}
