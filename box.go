package polystrip

import "math"

// Box3 is an axis-aligned bounding box. The zero value is the degenerate box
// containing only the origin; use [EmptyBox] as the identity for [Box3.Union].
type Box3 struct {
	X0, Y0, Z0 float64
	X1, Y1, Z1 float64
}

// EmptyBox returns a box that contains nothing. Extending it by a point
// yields the box containing just that point.
func EmptyBox() Box3 {
	inf := math.Inf(1)
	return Box3{inf, inf, inf, -inf, -inf, -inf}
}

// NewBoxFromPoints returns the smallest box containing p0 and p1.
func NewBoxFromPoints(p0, p1 Point3) Box3 {
	return EmptyBox().Extend(p0).Extend(p1)
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.X0 > b.X1 || b.Y0 > b.Y1 || b.Z0 > b.Z1
}

// Extend returns the smallest box containing b and pt.
func (b Box3) Extend(pt Point3) Box3 {
	return Box3{
		X0: min(b.X0, pt.X),
		Y0: min(b.Y0, pt.Y),
		Z0: min(b.Z0, pt.Z),
		X1: max(b.X1, pt.X),
		Y1: max(b.Y1, pt.Y),
		Z1: max(b.Z1, pt.Z),
	}
}

// Union returns the smallest box containing both b and o.
func (b Box3) Union(o Box3) Box3 {
	return Box3{
		X0: min(b.X0, o.X0),
		Y0: min(b.Y0, o.Y0),
		Z0: min(b.Z0, o.Z0),
		X1: max(b.X1, o.X1),
		Y1: max(b.Y1, o.Y1),
		Z1: max(b.Z1, o.Z1),
	}
}

func (b Box3) Min() Point3 { return Point3{b.X0, b.Y0, b.Z0} }
func (b Box3) Max() Point3 { return Point3{b.X1, b.Y1, b.Z1} }

// Center returns the center point of the box.
func (b Box3) Center() Point3 {
	return b.Min().Midpoint(b.Max())
}

// Size returns the box's extents along each axis.
func (b Box3) Size() Vec3 {
	return b.Max().Sub(b.Min())
}

// LongestAxis returns 0, 1 or 2 for the axis along which the box is longest.
func (b Box3) LongestAxis() int {
	s := b.Size()
	switch {
	case s.X >= s.Y && s.X >= s.Z:
		return 0
	case s.Y >= s.Z:
		return 1
	default:
		return 2
	}
}

// Contains reports whether pt lies inside or on the boundary of the box.
func (b Box3) Contains(pt Point3) bool {
	return pt.X >= b.X0 && pt.X <= b.X1 &&
		pt.Y >= b.Y0 && pt.Y <= b.Y1 &&
		pt.Z >= b.Z0 && pt.Z <= b.Z1
}

// DistanceSquared returns the squared distance from pt to the closest point of
// the box. It is zero for points inside the box.
func (b Box3) DistanceSquared(pt Point3) float64 {
	dx := max(b.X0-pt.X, 0, pt.X-b.X1)
	dy := max(b.Y0-pt.Y, 0, pt.Y-b.Y1)
	dz := max(b.Z0-pt.Z, 0, pt.Z-b.Z1)
	return dx*dx + dy*dy + dz*dz
}
