package polystrip

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// PolyStrips is a network of control vertices and edges bound to one target
// surface. It owns its vertices and edges; the surface is only referenced.
//
// A PolyStrips is not safe for concurrent use. Edits mark edges dirty and
// recomputation happens only in [PolyStrips.RebuildAll], or per edge through
// [GEdge.RecalcApprox] and [GEdge.SnapToSurface], so that a batch of edits
// costs a single rebuild.
type PolyStrips struct {
	surface Surface
	cfg     Config
	log     *slog.Logger
	gverts  []*GVert
	gedges  []*GEdge
	nextID  int
}

// New returns an empty PolyStrips bound to surface. A nil logger logs to
// [slog.Default].
func New(surface Surface, cfg Config, logger *slog.Logger) (*PolyStrips, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PolyStrips{
		surface: surface,
		cfg:     cfg,
		log:     logger,
		nextID:  1,
	}, nil
}

// Surface returns the target surface.
func (ps *PolyStrips) Surface() Surface { return ps.surface }

// Config returns the configuration.
func (ps *PolyStrips) Config() Config { return ps.cfg }

// SetSurface binds the strips to a new target surface. All edges become
// unsnapped; their frames are projected again by the next [PolyStrips.RebuildAll].
func (ps *PolyStrips) SetSurface(s Surface) {
	ps.surface = s
	for _, ge := range ps.gedges {
		ge.snapped = false
	}
}

// SetConfig replaces the configuration and marks every edge dirty.
func (ps *PolyStrips) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ps.cfg = cfg
	for _, ge := range ps.gedges {
		ge.cfg = cfg
	}
	ps.InvalidateAll()
	return nil
}

// GVerts returns the vertices in creation order.
func (ps *PolyStrips) GVerts() []*GVert { return slices.Clone(ps.gverts) }

// GEdges returns the edges in creation order.
func (ps *PolyStrips) GEdges() []*GEdge { return slices.Clone(ps.gedges) }

// GVert returns the vertex with the given ID, or nil.
func (ps *PolyStrips) GVert(id int) *GVert {
	i := slices.IndexFunc(ps.gverts, func(gv *GVert) bool { return gv.id == id })
	if i < 0 {
		return nil
	}
	return ps.gverts[i]
}

// GEdge returns the edge with the given ID, or nil.
func (ps *PolyStrips) GEdge(id int) *GEdge {
	i := slices.IndexFunc(ps.gedges, func(ge *GEdge) bool { return ge.id == id })
	if i < 0 {
		return nil
	}
	return ps.gedges[i]
}

// Dirty returns the edges whose interpolated frames are out of date.
func (ps *PolyStrips) Dirty() []*GEdge {
	var out []*GEdge
	for _, ge := range ps.gedges {
		if ge.dirty {
			out = append(out, ge)
		}
	}
	return out
}

// AddGVert adds a vertex with frame f.
func (ps *PolyStrips) AddGVert(f Frame) (*GVert, error) {
	gv, err := NewGVert(f)
	if err != nil {
		return nil, err
	}
	gv.id = ps.allocID()
	gv.owner = ps
	ps.gverts = append(ps.gverts, gv)
	return gv, nil
}

// AddGEdge adds an edge from gv0 to gv3 with handle frames h1 and h2. Both
// vertices must belong to ps and may join at most one other edge each.
func (ps *PolyStrips) AddGEdge(gv0, gv3 *GVert, h1, h2 Frame) (*GEdge, error) {
	for _, gv := range [...]*GVert{gv0, gv3} {
		if gv == nil || gv.owner != ps {
			return nil, fmt.Errorf("adding edge: %v: %w", gv, ErrNotMember)
		}
	}
	ge, err := newGEdge(gv0, gv3, h1, h2, ps.cfg)
	if err != nil {
		return nil, err
	}
	ge.id = ps.allocID()
	ge.owner = ps
	ps.gedges = append(ps.gedges, ge)
	return ge, nil
}

// Connect adds an edge from gv0 to gv3 with handles one third of the way
// along the chord from each end. The handles take the orientation and radius
// of the vertex they belong to.
func (ps *PolyStrips) Connect(gv0, gv3 *GVert) (*GEdge, error) {
	if gv0 == nil || gv3 == nil {
		return nil, fmt.Errorf("connecting: %w", ErrNotMember)
	}
	p0, p3 := gv0.frame.pos, gv3.frame.pos
	h1 := gv0.frame.WithPosition(p0.Lerp(p3, 1.0/3.0))
	h2 := gv3.frame.WithPosition(p3.Lerp(p0, 1.0/3.0))
	return ps.AddGEdge(gv0, gv3, h1, h2)
}

// RemoveGEdge removes an edge and detaches it from its vertices. The vertices
// remain.
func (ps *PolyStrips) RemoveGEdge(ge *GEdge) error {
	if ge == nil || ge.owner != ps {
		return fmt.Errorf("removing edge: %w", ErrNotMember)
	}
	ge.detach()
	ge.owner = nil
	ps.gedges = slices.DeleteFunc(ps.gedges, func(o *GEdge) bool { return o == ge })
	return nil
}

// RemoveGVert removes a vertex. A vertex ending a single edge takes that edge
// with it. A vertex joining two edges is dissolved: the two edges are replaced
// by one edge between their far endpoints, keeping the far handles, which
// approximates the removed pair with a single cubic.
func (ps *PolyStrips) RemoveGVert(gv *GVert) error {
	if gv == nil || gv.owner != ps {
		return fmt.Errorf("removing vertex: %w", ErrNotMember)
	}
	edges := slices.Clone(gv.edges)
	for _, ge := range edges {
		if err := ps.RemoveGEdge(ge); err != nil {
			return err
		}
	}
	gv.owner = nil
	ps.gverts = slices.DeleteFunc(ps.gverts, func(o *GVert) bool { return o == gv })

	if len(edges) != 2 {
		return nil
	}
	a, b := edges[0].Other(gv), edges[1].Other(gv)
	if a == b {
		// The two edges formed a closed loop through gv.
		return nil
	}
	merged, err := ps.AddGEdge(a, b, edges[0].handleNear(a), edges[1].handleNear(b))
	if err != nil {
		return fmt.Errorf("merging edges around %v: %w", gv, err)
	}
	ps.log.Debug("merged edges", "gvert", gv.id, "edge", merged.id,
		"from", []int{edges[0].id, edges[1].id})
	return nil
}

// InvalidateAll marks every edge dirty, so that the next
// [PolyStrips.RebuildAll] recomputes everything.
func (ps *PolyStrips) InvalidateAll() {
	for _, ge := range ps.gedges {
		ge.Invalidate()
	}
}

// RebuildAll recomputes the interpolated frames of every dirty edge and then
// snaps every unsnapped edge onto the surface, using a single projector for
// the whole pass.
//
// A failing edge keeps its previous frames and does not stop the others. The
// returned error joins all failures. If the surface has no triangles the
// edges stay unsnapped and the error wraps [ErrEmptySurface].
func (ps *PolyStrips) RebuildAll() error {
	var errs []error
	recalculated := 0
	for _, ge := range ps.gedges {
		if !ge.dirty {
			continue
		}
		if err := ge.RecalcApprox(); err != nil {
			ps.log.Warn("recomputing edge failed", "edge", ge.id, "err", err)
			errs = append(errs, err)
			continue
		}
		recalculated++
	}

	var pending []*GEdge
	for _, ge := range ps.gedges {
		if !ge.dirty && !ge.snapped && len(ge.igverts) > 0 {
			pending = append(pending, ge)
		}
	}
	snapped := 0
	if len(pending) > 0 {
		proj, err := projectorFor(ps.surface)
		if err != nil {
			ps.log.Warn("surface unavailable, edges left unsnapped", "edges", len(pending), "err", err)
			errs = append(errs, err)
		} else {
			for _, ge := range pending {
				if err := ge.SnapToSurface(proj); err != nil {
					ps.log.Warn("snapping edge failed", "edge", ge.id, "err", err)
					errs = append(errs, err)
					continue
				}
				snapped++
			}
		}
	}
	ps.log.Debug("rebuilt polystrips", "recalculated", recalculated, "snapped", snapped,
		"gverts", len(ps.gverts), "gedges", len(ps.gedges))
	return errors.Join(errs...)
}

// Mesh builds the quad strip mesh of all edges.
func (ps *PolyStrips) Mesh() Mesh {
	return StripMeshBuilder{}.Build(ps.gedges...)
}

func (ps *PolyStrips) allocID() int {
	id := ps.nextID
	ps.nextID++
	return id
}
