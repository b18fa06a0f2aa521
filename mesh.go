package polystrip

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"slices"

	"cogentcore.org/core/math32"
)

// Mesh is a quad mesh. Normals has one entry per vertex.
type Mesh struct {
	Vertices []Point3
	Normals  []Vec3
	Quads    [][4]int
}

// Triangles splits every quad along its first diagonal and returns the
// triangles as vertex index triples, preserving the winding.
func (m Mesh) Triangles() [][3]int {
	out := make([][3]int, 0, 2*len(m.Quads))
	for _, q := range m.Quads {
		out = append(out, [3]int{q[0], q[1], q[2]}, [3]int{q[0], q[2], q[3]})
	}
	return out
}

// BoundingBox returns the bounding box of the vertices.
func (m Mesh) BoundingBox() Box3 {
	b := EmptyBox()
	for _, v := range m.Vertices {
		b = b.Extend(v)
	}
	return b
}

// Weld returns a copy of m in which vertices closer than tolerance to an
// earlier vertex are merged into it. Merged normals are averaged. Quads that
// lose a corner to the merge are dropped. A tolerance of 0 merges only
// identical positions.
func (m Mesh) Weld(tolerance float64) Mesh {
	type cell [3]int64
	cellOf := func(p Point3) cell {
		if tolerance == 0 {
			// -0 and +0 are the same position.
			bits := func(f float64) int64 {
				if f == 0 {
					f = 0
				}
				return int64(math.Float64bits(f))
			}
			return cell{bits(p.X), bits(p.Y), bits(p.Z)}
		}
		return cell{
			int64(math.Floor(p.X / tolerance)),
			int64(math.Floor(p.Y / tolerance)),
			int64(math.Floor(p.Z / tolerance)),
		}
	}
	tol2 := tolerance * tolerance

	var out Mesh
	grid := make(map[cell][]int)
	remap := make([]int, len(m.Vertices))
	find := func(p Point3) int {
		c := cellOf(p)
		if tolerance == 0 {
			for _, j := range grid[c] {
				if out.Vertices[j] == p {
					return j
				}
			}
			return -1
		}
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, j := range grid[cell{c[0] + dx, c[1] + dy, c[2] + dz}] {
						if out.Vertices[j].DistanceSquared(p) <= tol2 {
							return j
						}
					}
				}
			}
		}
		return -1
	}
	for i, v := range m.Vertices {
		var n Vec3
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		if j := find(v); j >= 0 {
			remap[i] = j
			out.Normals[j] = out.Normals[j].Add(n)
			continue
		}
		j := len(out.Vertices)
		remap[i] = j
		out.Vertices = append(out.Vertices, v)
		out.Normals = append(out.Normals, n)
		c := cellOf(v)
		grid[c] = append(grid[c], j)
	}
	for j, n := range out.Normals {
		out.Normals[j] = n.Normalize()
	}
	for _, q := range m.Quads {
		r := [4]int{remap[q[0]], remap[q[1]], remap[q[2]], remap[q[3]]}
		s := r
		slices.Sort(s[:])
		if s[0] == s[1] || s[1] == s[2] || s[2] == s[3] {
			continue
		}
		out.Quads = append(out.Quads, r)
	}
	return out
}

// WriteOBJ writes m to w in Wavefront OBJ format, with vertex normals.
func (m Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	hasNormals := len(m.Normals) == len(m.Vertices)
	if hasNormals {
		for _, n := range m.Normals {
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
		}
	}
	for _, q := range m.Quads {
		bw.WriteString("f")
		for _, i := range q {
			// OBJ indices are 1-based.
			if hasNormals {
				fmt.Fprintf(bw, " %d//%d", i+1, i+1)
			} else {
				fmt.Fprintf(bw, " %d", i+1)
			}
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// RenderBuffers returns single precision vertex positions and normals and a
// triangle index list, the layout GPU vertex and index buffers expect.
func (m Mesh) RenderBuffers() (positions, normals []math32.Vector3, indices []uint32) {
	positions = make([]math32.Vector3, len(m.Vertices))
	normals = make([]math32.Vector3, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = math32.Vec3(float32(v.X), float32(v.Y), float32(v.Z))
		if i < len(m.Normals) {
			n := m.Normals[i]
			normals[i] = math32.Vec3(float32(n.X), float32(n.Y), float32(n.Z))
		}
	}
	tris := m.Triangles()
	indices = make([]uint32, 0, 3*len(tris))
	for _, t := range tris {
		indices = append(indices, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	return positions, normals, indices
}
