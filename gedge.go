package polystrip

import (
	"fmt"
	"math"
	"slices"
)

// IGVert is an interpolated frame: one sample along an edge.
type IGVert struct {
	// T is the curve parameter of the sample.
	T float64
	// Fraction is the arc length from the start of the edge to the sample,
	// as a fraction of the edge's total arc length.
	Fraction float64
	// Curve is the sample's position on the curve, before projection.
	Curve Point3
	// Frame is the sample's cross-section. Its position equals Curve until
	// the edge is snapped to a surface.
	Frame Frame
}

// GEdge is a control edge: a cubic Bézier between two vertices, shaped by
// two handle frames, and the cached frames interpolated along it.
//
// The cache is recomputed by [GEdge.RecalcApprox] and projected by
// [GEdge.SnapToSurface]. Both keep the previous cache when they fail.
type GEdge struct {
	id      int
	owner   *PolyStrips
	gv0     *GVert
	gv3     *GVert
	h1      Frame
	h2      Frame
	cfg     Config
	igverts []IGVert
	dirty   bool
	snapped bool
}

// NewGEdge returns an edge from gv0 to gv3 using the default configuration,
// and attaches it to both vertices. Most callers want [PolyStrips.AddGEdge]
// instead.
//
// Only the positions of the handles h1 and h2 shape the curve. A vertex joins
// at most two edges, and the two endpoints must differ.
func NewGEdge(gv0, gv3 *GVert, h1, h2 Frame) (*GEdge, error) {
	return newGEdge(gv0, gv3, h1, h2, DefaultConfig())
}

func newGEdge(gv0, gv3 *GVert, h1, h2 Frame, cfg Config) (*GEdge, error) {
	switch {
	case gv0 == nil || gv3 == nil:
		return nil, fmt.Errorf("edge endpoint missing: %w", ErrInvalidParameter)
	case gv0 == gv3:
		return nil, fmt.Errorf("edge from %v to itself: %w", gv0, ErrInvalidParameter)
	}
	for _, gv := range [...]*GVert{gv0, gv3} {
		if len(gv.edges) >= maxGVertEdges {
			return nil, fmt.Errorf("%v already joins %d edges: %w", gv, len(gv.edges), ErrInvalidParameter)
		}
	}
	for _, h := range [...]Frame{h1, h2} {
		if err := h.Validate(frameTolerance); err != nil {
			return nil, fmt.Errorf("edge handle: %w", err)
		}
	}
	ge := &GEdge{
		gv0:   gv0,
		gv3:   gv3,
		h1:    h1,
		h2:    h2,
		cfg:   cfg,
		dirty: true,
	}
	gv0.edges = append(gv0.edges, ge)
	gv3.edges = append(gv3.edges, ge)
	return ge, nil
}

// ID returns the edge's identifier, unique within its PolyStrips.
func (ge *GEdge) ID() int { return ge.id }

// GVert0 returns the start vertex.
func (ge *GEdge) GVert0() *GVert { return ge.gv0 }

// GVert3 returns the end vertex.
func (ge *GEdge) GVert3() *GVert { return ge.gv3 }

// Handles returns the two handle frames.
func (ge *GEdge) Handles() (Frame, Frame) { return ge.h1, ge.h2 }

// Dirty reports whether the interpolated frames are out of date.
func (ge *GEdge) Dirty() bool { return ge.dirty }

// Snapped reports whether the interpolated frames have been projected onto a
// surface since they were last recomputed.
func (ge *GEdge) Snapped() bool { return ge.snapped }

func (ge *GEdge) String() string {
	return fmt.Sprintf("gedge %d (%d-%d)", ge.id, ge.gv0.id, ge.gv3.id)
}

// Other returns the endpoint of ge that is not gv, or nil if gv is not an
// endpoint of ge.
func (ge *GEdge) Other(gv *GVert) *GVert {
	switch gv {
	case ge.gv0:
		return ge.gv3
	case ge.gv3:
		return ge.gv0
	default:
		return nil
	}
}

// handleNear returns the handle adjacent to the endpoint gv.
func (ge *GEdge) handleNear(gv *GVert) Frame {
	if gv == ge.gv0 {
		return ge.h1
	}
	return ge.h2
}

// Curve returns the Bézier curve through the endpoints and handle positions.
func (ge *GEdge) Curve() CubicBez {
	return CubicBez{
		P0: ge.gv0.frame.pos,
		P1: ge.h1.pos,
		P2: ge.h2.pos,
		P3: ge.gv3.frame.pos,
	}
}

// IGVerts returns a copy of the cached interpolated frames, in order from the
// start vertex to the end vertex. It is empty before the first successful
// [GEdge.RecalcApprox].
func (ge *GEdge) IGVerts() []IGVert {
	return slices.Clone(ge.igverts)
}

// SetHandles replaces the handle frames and marks the edge dirty.
func (ge *GEdge) SetHandles(h1, h2 Frame) error {
	for _, h := range [...]Frame{h1, h2} {
		if err := h.Validate(frameTolerance); err != nil {
			return fmt.Errorf("%v handle: %w", ge, err)
		}
	}
	ge.h1, ge.h2 = h1, h2
	ge.Invalidate()
	return nil
}

// SetHandlePositions moves the handles, keeping their orientation and radius,
// and marks the edge dirty.
func (ge *GEdge) SetHandlePositions(p1, p2 Point3) {
	ge.h1 = ge.h1.WithPosition(p1)
	ge.h2 = ge.h2.WithPosition(p2)
	ge.Invalidate()
}

// Invalidate marks the interpolated frames as out of date.
func (ge *GEdge) Invalidate() {
	ge.dirty = true
}

// detach removes ge from the edge lists of its endpoints.
func (ge *GEdge) detach() {
	for _, gv := range [...]*GVert{ge.gv0, ge.gv3} {
		gv.edges = slices.DeleteFunc(gv.edges, func(o *GEdge) bool { return o == ge })
	}
}

// RecalcApprox recomputes the interpolated frames from the endpoint frames and
// handles.
//
// Samples are spaced evenly by arc length, no more than the configured
// maximum segment length apart, with at least the two endpoints. Radii are
// interpolated linearly by arc length. Orientation is carried from the start
// frame by a rotation minimizing frame and blended into the end frame, so the
// first and last samples equal the endpoint frames.
//
// If an endpoint frame is degenerate, RecalcApprox returns an error wrapping
// [ErrDegenerateInput]. An edge that would need more than
// [Config.MaxSamples] frames yields an error wrapping [ErrInvalidParameter].
// Either way the cache and the dirty flag are left unchanged.
func (ge *GEdge) RecalcApprox() error {
	f0, f3 := ge.gv0.frame, ge.gv3.frame
	for _, gv := range [...]*GVert{ge.gv0, ge.gv3} {
		if err := gv.frame.Validate(frameTolerance); err != nil {
			return fmt.Errorf("%v: endpoint %v: %w", ge, gv, err)
		}
	}
	c := ge.Curve()
	if c.IsNaN() || c.IsInf() {
		return fmt.Errorf("%v: handles not finite: %w", ge, ErrDegenerateInput)
	}

	cfg := ge.cfg
	length := c.Arclen(cfg.ArclenAccuracy)
	n := 1
	if length > cfg.DegenerateLength {
		segments := math.Ceil(length / cfg.step())
		if !(segments < float64(cfg.MaxSamples)) {
			return fmt.Errorf("%v: arclen %g needs %g samples, more than max_samples %d: %w",
				ge, length, segments+1, cfg.MaxSamples, ErrInvalidParameter)
		}
		n = max(int(segments), 1)
	}

	// Solve for t finely enough that the arclength error stays within
	// ArclenAccuracy where the curve moves fastest.
	speed := 3 * max(c.P1.Sub(c.P0).Hypot(), c.P2.Sub(c.P1).Hypot(), c.P3.Sub(c.P2).Hypot())
	accuracy := cfg.ArclenAccuracy
	if speed > length {
		accuracy *= length / speed
	}

	ts := make([]float64, n+1)
	fractions := make([]float64, n+1)
	pos := make([]Point3, n+1)
	ts[n], fractions[n] = 1, 1
	for i := 1; i < n; i++ {
		fractions[i] = float64(i) / float64(n)
		t := c.SolveForArclen(length*fractions[i], length, accuracy)
		ts[i] = max(t, ts[i-1])
	}
	for i, t := range ts {
		pos[i] = c.Eval(t)
	}

	var frames []Frame
	if n == 1 {
		frames = []Frame{f0, f3}
	} else {
		tangents := make([]Vec3, n+1)
		for i, t := range ts {
			tangents[i] = c.Tangent(t)
		}
		frames = transportFrames(pos, tangents, fractions, f0, f3, cfg.OrthoTolerance)
	}

	lo, hi := min(f0.radius, f3.radius), max(f0.radius, f3.radius)
	igverts := make([]IGVert, n+1)
	for i := range igverts {
		f := frames[i]
		f.radius = min(max(f0.radius+(f3.radius-f0.radius)*fractions[i], lo), hi)
		igverts[i] = IGVert{
			T:        ts[i],
			Fraction: fractions[i],
			Curve:    pos[i],
			Frame:    f,
		}
	}
	igverts[0].Frame = f0
	igverts[n].Frame = f3

	ge.igverts = igverts
	ge.dirty = false
	ge.snapped = false
	return nil
}

// SnapToSurface projects the interior interpolated frames onto s. Each sample
// moves from its curve position to the closest point of the surface and takes
// the surface normal there; its tangents are re-orthogonalized against the
// new normal. The first and last samples stay on the endpoint vertices.
//
// If s is a [*Projector] it is used directly; otherwise a projector is built
// for this call. Snapping a dirty edge returns an error wrapping [ErrStale];
// snapping onto a surface without triangles returns an error wrapping
// [ErrEmptySurface]. On error the cached frames are left unchanged.
func (ge *GEdge) SnapToSurface(s Surface) error {
	if ge.dirty || len(ge.igverts) == 0 {
		return fmt.Errorf("snapping %v: %w", ge, ErrStale)
	}
	proj, err := projectorFor(s)
	if err != nil {
		return fmt.Errorf("snapping %v: %w", ge, err)
	}
	out := slices.Clone(ge.igverts)
	for i := 1; i < len(out)-1; i++ {
		f, err := snapFrame(proj, out[i].Frame, out[i].Curve)
		if err != nil {
			return fmt.Errorf("snapping %v sample %d: %w", ge, i, err)
		}
		out[i].Frame = f
	}
	ge.igverts = out
	ge.snapped = true
	return nil
}
