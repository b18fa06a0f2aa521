package polystrip

// StripMeshBuilder turns the interpolated frames of edges into a quad strip
// mesh. It has no state; the zero value is ready to use.
type StripMeshBuilder struct{}

// Build emits, for every interpolated frame of every edge, the two points
// offset by ± radius along the frame's TangentY, and one quad per pair of
// consecutive frames. Quads are wound counter-clockwise around the frames'
// normals. Edges without interpolated frames contribute nothing.
//
// Edges sharing a vertex produce coincident vertices at the junction; they
// are not merged. Use [Mesh.Weld] for that.
func (StripMeshBuilder) Build(edges ...*GEdge) Mesh {
	var m Mesh
	for _, ge := range edges {
		if ge == nil || len(ge.igverts) < 2 {
			continue
		}
		base := len(m.Vertices)
		for _, ig := range ge.igverts {
			left, right := ig.Frame.Sides()
			m.Vertices = append(m.Vertices, left, right)
			m.Normals = append(m.Normals, ig.Frame.normal, ig.Frame.normal)
		}
		for i := range len(ge.igverts) - 1 {
			l0, r0 := base+2*i, base+2*i+1
			l1, r1 := l0+2, r0+2
			q := [4]int{r0, r1, l1, l0}
			n := ge.igverts[i].Frame.normal.Add(ge.igverts[i+1].Frame.normal)
			if quadNormal(m.Vertices, q).Dot(n) < 0 {
				q = [4]int{l0, l1, r1, r0}
			}
			m.Quads = append(m.Quads, q)
		}
	}
	return m
}

// quadNormal returns the unnormalized normal of the quad q, the cross product
// of its diagonals.
func quadNormal(vs []Point3, q [4]int) Vec3 {
	return vs[q[2]].Sub(vs[q[0]]).Cross(vs[q[3]].Sub(vs[q[1]]))
}
