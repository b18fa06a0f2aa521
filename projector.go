package polystrip

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// minTriangleArea is the area below which a triangle is ignored for
// projection; such triangles have no meaningful normal.
const minTriangleArea = 1e-18

// bvhLeafSize is the maximum number of triangles in a leaf of the hierarchy.
const bvhLeafSize = 4

// Projection is the result of a nearest-point query against a surface.
type Projection struct {
	// Point is the point of the surface closest to the query.
	Point Point3
	// Normal is the unit normal of the triangle containing Point.
	Normal Vec3
	// Triangle is the index of that triangle in the surface's triangle list.
	Triangle int
	// Distance is the distance from the query to Point.
	Distance float64
}

// Projector answers exact nearest-point queries against a snapshot of a
// surface, using a bounding volume hierarchy over its triangles. A Projector
// is immutable once built and is itself a [Surface].
type Projector struct {
	tris    []Triangle
	normals []Vec3
	// order holds triangle indices, permuted so that every leaf covers a
	// contiguous range.
	order []int
	nodes []bvhNode
}

type bvhNode struct {
	box Box3
	// For leaves, start and count delimit the leaf's range in order. For
	// inner nodes count is 0 and left and right index the children.
	start, count int
	left, right  int
}

var _ Surface = (*Projector)(nil)

// NewProjector builds a projector for the triangles of s. Degenerate
// triangles are skipped. It returns an error wrapping [ErrEmptySurface] if no
// usable triangle remains.
func NewProjector(s Surface) (*Projector, error) {
	if s == nil {
		return nil, fmt.Errorf("no surface: %w", ErrEmptySurface)
	}
	tris := s.Triangles()
	p := &Projector{
		tris:    tris,
		normals: make([]Vec3, len(tris)),
	}
	for i, t := range tris {
		if !(t.Area() > minTriangleArea) {
			continue
		}
		p.normals[i] = t.Normal()
		p.order = append(p.order, i)
	}
	if len(p.order) == 0 {
		return nil, fmt.Errorf("surface with %d triangles, none usable: %w", len(tris), ErrEmptySurface)
	}
	p.nodes = make([]bvhNode, 0, 2*len(p.order)/bvhLeafSize+1)
	p.build(0, len(p.order))
	return p, nil
}

// projectorFor returns s itself if it already is a projector, or builds one.
func projectorFor(s Surface) (*Projector, error) {
	if p, ok := s.(*Projector); ok && p != nil {
		return p, nil
	}
	return NewProjector(s)
}

// Triangles implements [Surface].
func (p *Projector) Triangles() []Triangle {
	return p.tris
}

func (p *Projector) build(lo, hi int) int {
	idx := len(p.nodes)
	box := EmptyBox()
	centroids := EmptyBox()
	for _, ti := range p.order[lo:hi] {
		box = box.Union(p.tris[ti].BoundingBox())
		centroids = centroids.Extend(p.tris[ti].Centroid())
	}
	p.nodes = append(p.nodes, bvhNode{box: box, start: lo, count: hi - lo})
	if hi-lo <= bvhLeafSize {
		return idx
	}
	axis := centroids.LongestAxis()
	if centroids.Size() == (Vec3{}) {
		// All centroids coincide; no split separates them.
		return idx
	}

	slices.SortFunc(p.order[lo:hi], func(a, b int) int {
		ca := p.tris[a].Centroid().component(axis)
		cb := p.tris[b].Centroid().component(axis)
		return cmp.Or(cmp.Compare(ca, cb), cmp.Compare(a, b))
	})
	mid := (lo + hi) / 2
	left := p.build(lo, mid)
	right := p.build(mid, hi)
	p.nodes[idx].count = 0
	p.nodes[idx].left = left
	p.nodes[idx].right = right
	return idx
}

// Nearest returns the point of the surface closest to pt. Ties between
// equidistant triangles go to the lowest triangle index. For a query
// containing NaN, the returned Triangle is -1.
func (p *Projector) Nearest(pt Point3) Projection {
	bestD2 := math.Inf(1)
	bestTri := -1
	var bestPt Point3

	stack := make([]int, 1, 64)
	stack[0] = 0
	for len(stack) > 0 {
		node := &p.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if node.box.DistanceSquared(pt) > bestD2 {
			continue
		}
		if node.count > 0 {
			for _, ti := range p.order[node.start : node.start+node.count] {
				cp := p.tris[ti].ClosestPoint(pt)
				d2 := cp.DistanceSquared(pt)
				if d2 < bestD2 || (d2 == bestD2 && ti < bestTri) {
					bestD2, bestTri, bestPt = d2, ti, cp
				}
			}
			continue
		}
		// Push the farther child first so that the nearer one is visited
		// first and tightens the bound early.
		l, r := node.left, node.right
		if p.nodes[l].box.DistanceSquared(pt) < p.nodes[r].box.DistanceSquared(pt) {
			l, r = r, l
		}
		stack = append(stack, l, r)
	}
	if bestTri < 0 {
		// Only reachable for a NaN query.
		return Projection{Point: pt, Triangle: -1, Distance: math.NaN()}
	}
	return Projection{
		Point:    bestPt,
		Normal:   p.normals[bestTri],
		Triangle: bestTri,
		Distance: math.Sqrt(bestD2),
	}
}
