package polystrip

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestTriangleClosestPoint(t *testing.T) {
	tri := Triangle{Pt(0, 0, 0), Pt(1, 0, 0), Pt(0, 1, 0)}
	tests := []struct {
		name string
		p    Point3
		want Point3
	}{
		{"face", Pt(0.25, 0.25, 1), Pt(0.25, 0.25, 0)},
		{"vertex a", Pt(-1, -1, 0.5), Pt(0, 0, 0)},
		{"vertex b", Pt(2, -0.5, 0), Pt(1, 0, 0)},
		{"vertex c", Pt(-0.5, 2, -1), Pt(0, 1, 0)},
		{"edge ab", Pt(0.5, -1, 0), Pt(0.5, 0, 0)},
		{"edge ac", Pt(-1, 0.5, 3), Pt(0, 0.5, 0)},
		{"edge bc", Pt(1, 1, 0), Pt(0.5, 0.5, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.want, tri.ClosestPoint(tt.p), cmpopts.EquateApprox(0, 1e-15))
		})
	}
}

func TestTriangleNormal(t *testing.T) {
	tri := Triangle{Pt(0, 0, 0), Pt(2, 0, 0), Pt(0, 2, 0)}
	diff(t, Vec(0, 0, 1), tri.Normal())
	diff(t, 2.0, tri.Area())
	diff(t, Vec3{}, Triangle{Pt(0, 0, 0), Pt(1, 1, 1), Pt(2, 2, 2)}.Normal())
}

// nearestBruteForce returns the index of the closest usable triangle, the
// lowest one among equally close triangles.
func nearestBruteForce(tris []Triangle, p Point3) (int, float64) {
	best, bestD2 := -1, math.Inf(1)
	for i, tri := range tris {
		if !(tri.Area() > minTriangleArea) {
			continue
		}
		if d2 := tri.ClosestPoint(p).DistanceSquared(p); d2 < bestD2 {
			best, bestD2 = i, d2
		}
	}
	return best, bestD2
}

func TestProjectorMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(21, 22))
	var surface TriangleMesh
	for range 300 {
		c := randPoint(r).Translate(randVec(r).Mul(4))
		surface = append(surface, Triangle{
			c.Translate(randVec(r)),
			c.Translate(randVec(r)),
			c.Translate(randVec(r)),
		})
	}
	proj, err := NewProjector(surface)
	if err != nil {
		t.Fatal(err)
	}
	for range 500 {
		q := Point3(randVec(r).Mul(7))
		want, wantD2 := nearestBruteForce(surface, q)
		got := proj.Nearest(q)
		if got.Triangle != want {
			t.Errorf("query %v: got triangle %d, want %d", q, got.Triangle, want)
			continue
		}
		diff(t, surface[want].ClosestPoint(q), got.Point)
		diff(t, math.Sqrt(wantD2), got.Distance)
		diff(t, surface[want].Normal(), got.Normal)
	}
}

func TestProjectorTies(t *testing.T) {
	r := rand.New(rand.NewPCG(23, 24))
	dup := Triangle{Pt(-1, -1, 0), Pt(1, -1, 0), Pt(0, 1, 0)}
	var surface TriangleMesh
	for i := range 12 {
		if i == 2 || i == 7 || i == 9 {
			surface = append(surface, dup)
			continue
		}
		// Far away from the query.
		c := Pt(20, 20, 20).Translate(randVec(r).Mul(5))
		surface = append(surface, Triangle{c, c.Translate(Vec(1, 0, 0)), c.Translate(Vec(0, 1, 0))})
	}
	proj, err := NewProjector(surface)
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range []Point3{Pt(0, 0, 1), Pt(0, 0, -1), Pt(5, 5, 0)} {
		if got := proj.Nearest(q); got.Triangle != 2 {
			t.Errorf("query %v: got triangle %d, want 2", q, got.Triangle)
		}
	}
}

func TestProjectorSkipsDegenerateTriangles(t *testing.T) {
	surface := TriangleMesh{
		{Pt(0, 0, 0), Pt(0, 0, 0), Pt(0, 0, 0)},
		{Pt(0, 0, -1), Pt(1, 0, -1), Pt(0, 1, -1)},
	}
	proj, err := NewProjector(surface)
	if err != nil {
		t.Fatal(err)
	}
	got := proj.Nearest(Pt(0, 0, 0))
	diff(t, 1, got.Triangle)
	diff(t, Pt(0, 0, -1), got.Point)
	diff(t, 1.0, got.Distance)
}

func TestNewProjectorEmpty(t *testing.T) {
	for _, s := range []Surface{
		nil,
		TriangleMesh{},
		TriangleMesh{{Pt(0, 0, 0), Pt(1, 1, 1), Pt(2, 2, 2)}},
	} {
		if _, err := NewProjector(s); !errors.Is(err, ErrEmptySurface) {
			t.Errorf("surface %v: got error %v, want %v", s, err, ErrEmptySurface)
		}
	}
}

func TestProjectorNaNQuery(t *testing.T) {
	proj, err := NewProjector(plane(0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got := proj.Nearest(Pt(math.NaN(), 0, 0)); got.Triangle != -1 {
		t.Errorf("got triangle %d for NaN query, want -1", got.Triangle)
	}
}

func TestProjectorIsSurface(t *testing.T) {
	surface := plane(1, 2)
	proj, err := NewProjector(surface)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Triangle(surface), proj.Triangles())
	again, err := projectorFor(proj)
	if err != nil {
		t.Fatal(err)
	}
	if again != proj {
		t.Error("projectorFor rebuilt an existing projector")
	}
}

func BenchmarkProjectorNearest(b *testing.B) {
	surface := heightField(100, 3, func(x, y float64) float64 {
		return 0.3 * math.Sin(x) * math.Cos(y)
	})
	proj, err := NewProjector(surface)
	if err != nil {
		b.Fatal(err)
	}
	r := rand.New(rand.NewPCG(1, 1))
	queries := make([]Point3, 1024)
	for i := range queries {
		queries[i] = Point3(randVec(r).Mul(3))
	}
	b.ResetTimer()
	for i := range b.N {
		proj.Nearest(queries[i%len(queries)])
	}
}

func BenchmarkNewProjector(b *testing.B) {
	surface := heightField(100, 3, func(x, y float64) float64 {
		return 0.3 * math.Sin(x) * math.Cos(y)
	})
	for range b.N {
		if _, err := NewProjector(surface); err != nil {
			b.Fatal(err)
		}
	}
}
