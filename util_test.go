package polystrip

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// frameOpts lets cmp look inside frames.
var frameOpts = cmp.AllowUnexported(Frame{})

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustFrame(tb testing.TB, pos Point3, normal, tangentX Vec3, radius float64) Frame {
	tb.Helper()
	f, err := NewFrame(pos, normal, tangentX, normal.Cross(tangentX), radius)
	if err != nil {
		tb.Fatal(err)
	}
	return f
}

// upFrame returns a frame at pos with Normal +Z and TangentX +X.
func upFrame(tb testing.TB, pos Point3, radius float64) Frame {
	tb.Helper()
	return mustFrame(tb, pos, Vec(0, 0, 1), Vec(1, 0, 0), radius)
}

func randVec(r *rand.Rand) Vec3 {
	return Vec(2*r.Float64()-1, 2*r.Float64()-1, 2*r.Float64()-1)
}

func randPoint(r *rand.Rand) Point3 {
	return Point3(randVec(r))
}

// randFrame returns a frame at pos with a random orientation and a radius in
// [0.05, 1.05).
func randFrame(tb testing.TB, r *rand.Rand, pos Point3) Frame {
	tb.Helper()
	for {
		n, tx := randVec(r), randVec(r)
		if n.Hypot() < 0.1 || n.Cross(tx).Hypot() < 0.1 {
			continue
		}
		return mustFrame(tb, pos, n, tx, 0.05+r.Float64())
	}
}

func newTestStrips(tb testing.TB, s Surface) *PolyStrips {
	tb.Helper()
	return newTestStripsWith(tb, s, DefaultConfig())
}

func newTestStripsWith(tb testing.TB, s Surface, cfg Config) *PolyStrips {
	tb.Helper()
	ps, err := New(s, cfg, quietLogger())
	if err != nil {
		tb.Fatal(err)
	}
	return ps
}

// addEdge adds vertices with frames f0 and f3 to ps and joins them with an
// edge whose handles lie at p1 and p2.
func addEdge(tb testing.TB, ps *PolyStrips, f0, f3 Frame, p1, p2 Point3) *GEdge {
	tb.Helper()
	gv0, err := ps.AddGVert(f0)
	if err != nil {
		tb.Fatal(err)
	}
	gv3, err := ps.AddGVert(f3)
	if err != nil {
		tb.Fatal(err)
	}
	ge, err := ps.AddGEdge(gv0, gv3, f0.WithPosition(p1), f3.WithPosition(p2))
	if err != nil {
		tb.Fatal(err)
	}
	return ge
}

// plane returns the square [-size, size]² at height z as two triangles wound
// counter-clockwise when seen from +Z.
func plane(z, size float64) TriangleMesh {
	a := Pt(-size, -size, z)
	b := Pt(size, -size, z)
	c := Pt(size, size, z)
	d := Pt(-size, size, z)
	return TriangleMesh{{a, b, c}, {a, c, d}}
}

// heightField triangulates z = h(x, y) over [-size, size]² with n×n cells,
// wound counter-clockwise when seen from +Z.
func heightField(n int, size float64, h func(x, y float64) float64) TriangleMesh {
	at := func(i, j int) Point3 {
		x := -size + 2*size*float64(i)/float64(n)
		y := -size + 2*size*float64(j)/float64(n)
		return Pt(x, y, h(x, y))
	}
	var out TriangleMesh
	for i := range n {
		for j := range n {
			a, b, c, d := at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)
			out = append(out, Triangle{a, b, c}, Triangle{a, c, d})
		}
	}
	return out
}

func checkFrame(t *testing.T, f Frame, tol float64) {
	t.Helper()
	if !f.IsOrthonormal(tol) {
		t.Errorf("frame basis (%v, %v, %v) not orthonormal", f.TangentX(), f.TangentY(), f.Normal())
	}
	if d := f.Normal().Cross(f.TangentX()).Sub(f.TangentY()).Hypot(); d > tol {
		t.Errorf("frame not right-handed: |n × tx - ty| = %g", d)
	}
	if f.Position().IsNaN() || f.Position().IsInf() {
		t.Errorf("frame position %v not finite", f.Position())
	}
}
