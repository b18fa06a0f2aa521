package polystrip

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pelletier/go-toml/v2"
)

// SplinePoint is a control point of an input Bézier spline. Handles are
// optional; a missing handle lies one third of the way towards the
// neighboring point.
type SplinePoint struct {
	Position    Point3
	HandleLeft  *Point3
	HandleRight *Point3
}

// FromSpline builds a PolyStrips with one vertex per spline point and one
// edge per pair of consecutive points. Vertices and handles are oriented and
// sized by the configuration's defaults. The edges are dirty; call
// [PolyStrips.RebuildAll] to compute them.
func FromSpline(points []SplinePoint, surface Surface, cfg Config, logger *slog.Logger) (*PolyStrips, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("spline with %d points: %w", len(points), ErrInvalidParameter)
	}
	ps, err := New(surface, cfg, logger)
	if err != nil {
		return nil, err
	}
	gverts := make([]*GVert, len(points))
	for i, pt := range points {
		f, err := cfg.DefaultFrame(pt.Position)
		if err != nil {
			return nil, fmt.Errorf("spline point %d: %w", i, err)
		}
		if gverts[i], err = ps.AddGVert(f); err != nil {
			return nil, fmt.Errorf("spline point %d: %w", i, err)
		}
	}
	for i := range len(points) - 1 {
		a, b := points[i], points[i+1]
		p1 := a.Position.Lerp(b.Position, 1.0/3.0)
		if a.HandleRight != nil {
			p1 = *a.HandleRight
		}
		p2 := b.Position.Lerp(a.Position, 1.0/3.0)
		if b.HandleLeft != nil {
			p2 = *b.HandleLeft
		}
		h1, err := cfg.DefaultFrame(p1)
		if err != nil {
			return nil, fmt.Errorf("spline segment %d: %w", i, err)
		}
		h2, err := cfg.DefaultFrame(p2)
		if err != nil {
			return nil, fmt.Errorf("spline segment %d: %w", i, err)
		}
		if _, err := ps.AddGEdge(gverts[i], gverts[i+1], h1, h2); err != nil {
			return nil, fmt.Errorf("spline segment %d: %w", i, err)
		}
	}
	ps.log.Debug("built polystrips from spline", "points", len(points))
	return ps, nil
}

type splineFile struct {
	Points []splinePoint `toml:"point"`
}

type splinePoint struct {
	Position    [3]float64  `toml:"position"`
	HandleLeft  *[3]float64 `toml:"handle_left"`
	HandleRight *[3]float64 `toml:"handle_right"`
}

// ReadSpline decodes spline points from TOML of the form
//
//	[[point]]
//	position = [0.0, 0.0, 0.0]
//	handle_right = [0.33, 0.0, 0.0]
//
//	[[point]]
//	position = [1.0, 0.0, 0.0]
//	handle_left = [0.66, 0.0, 0.0]
func ReadSpline(r io.Reader) ([]SplinePoint, error) {
	var sf splineFile
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&sf); err != nil {
		return nil, fmt.Errorf("decoding spline: %w", err)
	}
	toPoint := func(a *[3]float64) *Point3 {
		if a == nil {
			return nil
		}
		p := Pt(a[0], a[1], a[2])
		return &p
	}
	out := make([]SplinePoint, len(sf.Points))
	for i, p := range sf.Points {
		out[i] = SplinePoint{
			Position:    Pt(p.Position[0], p.Position[1], p.Position[2]),
			HandleLeft:  toPoint(p.HandleLeft),
			HandleRight: toPoint(p.HandleRight),
		}
	}
	return out, nil
}
