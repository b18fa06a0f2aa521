package polystrip

// Triangle is a triangle of a target surface. The winding A, B, C is
// counter-clockwise when seen from the side its normal points to.
type Triangle struct {
	A, B, C Point3
}

// Surface is a triangulated target surface that strips are snapped onto. The
// returned triangles must not change for the duration of a snap pass; the
// engine never modifies them.
type Surface interface {
	Triangles() []Triangle
}

// TriangleMesh is a [Surface] backed by a slice of triangles.
type TriangleMesh []Triangle

// Triangles implements [Surface].
func (m TriangleMesh) Triangles() []Triangle {
	return m
}

// Normal returns the unit normal of the triangle, or the zero vector if the
// triangle is degenerate.
func (t Triangle) Normal() Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Normalize()
}

// Area returns the area of the triangle.
func (t Triangle) Area() float64 {
	return 0.5 * t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Hypot()
}

func (t Triangle) BoundingBox() Box3 {
	return EmptyBox().Extend(t.A).Extend(t.B).Extend(t.C)
}

func (t Triangle) Centroid() Point3 {
	return Point3(Vec3(t.A).Add(Vec3(t.B)).Add(Vec3(t.C)).Div(3))
}

// ClosestPoint returns the point of the triangle closest to p.
//
// This is the Voronoi region method from Ericson, "Real-Time Collision
// Detection", section 5.1.5.
func (t Triangle) ClosestPoint(p Point3) Point3 {
	a, b, c := t.A, t.B, t.C
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Translate(ab.Mul(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Translate(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Translate(c.Sub(b).Mul(w))
	}

	// Inside the face.
	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Translate(ab.Mul(v)).Translate(ac.Mul(w))
}
