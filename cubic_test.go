package polystrip

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCubicBezDeriv(t *testing.T) {
	// y = x^2, z = x
	c := CubicBez{
		Pt(0.0, 0.0, 0.0),
		Pt(1.0/3.0, 0.0, 1.0/3.0),
		Pt(2.0/3.0, 1.0/3.0, 2.0/3.0),
		Pt(1.0, 1.0, 1.0),
	}

	const n = 10
	const delta = 1e-6
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		p := c.Eval(ts)
		p1 := c.Eval(ts + delta)
		dApprox := p1.Sub(p).Mul(1.0 / delta)
		d := c.Deriv(ts)
		if l := d.Sub(dApprox).Hypot(); l >= delta*4 {
			t.Errorf("got difference of %g, want at most %g", l, delta*4)
		}
	}
}

func TestCubicBezEvalEndpoints(t *testing.T) {
	c := CubicBez{Pt(0.1, 0.2, 0.3), Pt(1.7, -3, 2), Pt(-0.4, 2.2, 9), Pt(0.7, 0.11, -0.3)}
	if got := c.Eval(0); got != c.P0 {
		t.Errorf("Eval(0) = %v, want %v", got, c.P0)
	}
	if got := c.Eval(1); got != c.P3 {
		t.Errorf("Eval(1) = %v, want %v", got, c.P3)
	}
}

func TestCubicBezTangent(t *testing.T) {
	// The first handle coincides with the start point, so the derivative
	// vanishes at t = 0.
	c := CubicBez{Pt(0, 0, 0), Pt(0, 0, 0), Pt(1, 1, 0), Pt(2, 1, 0)}
	diff(t, Vec(1, 1, 0).Normalize(), c.Tangent(0), cmpopts.EquateApprox(0, 1e-12))

	// Likewise for the second handle at t = 1.
	c = CubicBez{Pt(0, 0, 0), Pt(1, 0, 0), Pt(2, 1, 0), Pt(2, 1, 0)}
	diff(t, Vec(1, 1, 0).Normalize(), c.Tangent(1), cmpopts.EquateApprox(0, 1e-12))

	// Both handles on their endpoints: a straight line.
	c = CubicBez{Pt(0, 0, 0), Pt(0, 0, 0), Pt(0, 0, 3), Pt(0, 0, 3)}
	for _, ts := range []float64{0, 0.5, 1} {
		diff(t, Vec(0, 0, 1), c.Tangent(ts), cmpopts.EquateApprox(0, 1e-12))
	}

	// A curve collapsed to a point has no tangent.
	c = CubicBez{Pt(1, 1, 1), Pt(1, 1, 1), Pt(1, 1, 1), Pt(1, 1, 1)}
	diff(t, Vec3{}, c.Tangent(0.5))
}

func TestCubicBezArclen(t *testing.T) {
	c := CubicBez{
		Pt(0.0, 0.0, 0.0),
		Pt(1.0/3.0, 0.0, 0.0),
		Pt(2.0/3.0, 1.0/3.0, 0.0),
		Pt(1.0, 1.0, 0.0),
	}
	trueArclen := 0.5*math.Sqrt(5.0) + 0.25*math.Log(2.0+math.Sqrt(5.0))
	for i := range 12 {
		accuracy := math.Pow(0.1, float64(i))
		diff(t, trueArclen, c.Arclen(accuracy), cmpopts.EquateApprox(0, accuracy))
	}
}

func TestCubicBezArclenTilted(t *testing.T) {
	// The parabola of TestCubicBezArclen, tilted by 45° about the x axis.
	s := 1 / math.Sqrt2
	c := CubicBez{
		Pt(0.0, 0.0, 0.0),
		Pt(1.0/3.0, 0.0, 0.0),
		Pt(2.0/3.0, s/3.0, s/3.0),
		Pt(1.0, s, s),
	}
	trueArclen := 0.5*math.Sqrt(5.0) + 0.25*math.Log(2.0+math.Sqrt(5.0))
	for i := range 8 {
		accuracy := math.Pow(0.1, float64(i))
		diff(t, trueArclen, c.Arclen(accuracy), cmpopts.EquateApprox(0, accuracy))
	}
}

func TestCubicBezArclenDegenerate(t *testing.T) {
	p := Pt(3, -2, 1)
	c := CubicBez{p, p, p, p}
	if got := c.Arclen(1e-9); got != 0 {
		t.Errorf("got arclen %g for a point, want 0", got)
	}
}

func TestCubicBezSolveForArclen(t *testing.T) {
	// y = x^2 / 100
	c := CubicBez{
		Pt(0.0, 0.0, 0.0),
		Pt(100.0/3.0, 0.0, 0.0),
		Pt(200.0/3.0, 100.0/3.0, 0.0),
		Pt(100.0, 100.0, 0.0),
	}
	trueArclen := 100.0 * (0.5*math.Sqrt(5.0) + 0.25*math.Log(2.0+math.Sqrt(5.0)))
	for i := range 10 {
		accuracy := math.Pow(0.1, float64(i))
		total := c.Arclen(accuracy * 0.5)
		n := 10
		for j := range n + 1 {
			arc := float64(j) * (1.0 / float64(n) * trueArclen)
			tt := c.SolveForArclen(arc, total, accuracy*0.5)
			actualArc := c.Subsegment(0.0, tt).Arclen(accuracy * 0.5)
			diff(t, arc, actualArc, cmpopts.EquateApprox(0, accuracy))
		}
	}
}

func TestCubicBezSolveForArclenBounds(t *testing.T) {
	c := CubicBez{Pt(0, 0, 0), Pt(1, 0, 0), Pt(1, 1, 0), Pt(1, 1, 1)}
	total := c.Arclen(1e-9)
	if got := c.SolveForArclen(0, total, 1e-9); got != 0 {
		t.Errorf("got t = %g for arclen 0, want 0", got)
	}
	if got := c.SolveForArclen(-1, total, 1e-9); got != 0 {
		t.Errorf("got t = %g for negative arclen, want 0", got)
	}
	if got := c.SolveForArclen(total, total, 1e-9); got != 1 {
		t.Errorf("got t = %g for full arclen, want 1", got)
	}
}

func TestCubicBezSubdivide(t *testing.T) {
	c := CubicBez{Pt(0.2, 0.73, 0), Pt(0.35, 1.08, 0.5), Pt(0.85, 1.08, -0.5), Pt(1.0, 0.73, 0.1)}
	c0, c1 := c.Subdivide()
	const n = 8
	for i := range n + 1 {
		ts := float64(i) / n
		diff(t, c.Eval(ts/2), c0.Eval(ts), cmpopts.EquateApprox(0, 1e-12))
		diff(t, c.Eval(0.5+ts/2), c1.Eval(ts), cmpopts.EquateApprox(0, 1e-12))
	}
	sub := c.Subsegment(0.25, 0.75)
	for i := range n + 1 {
		ts := float64(i) / n
		diff(t, c.Eval(0.25+ts/2), sub.Eval(ts), cmpopts.EquateApprox(0, 1e-12))
	}
}

func TestCubicBezBoundingBox(t *testing.T) {
	c := CubicBez{Pt(0, 0, 0), Pt(1, -1, 2), Pt(3, 1, -2), Pt(2, 0, 0)}
	bb := c.BoundingBox()
	for i := range 21 {
		if p := c.Eval(float64(i) / 20); !bb.Contains(p) {
			t.Errorf("%v outside control polygon box %v", p, bb)
		}
	}
}

func BenchmarkCubicBezArclen(b *testing.B) {
	shape := CubicBez{
		P0: Pt(20, 40, 0),
		P1: Pt(40, 80, 10),
		P2: Pt(-40, 40, -10),
		P3: Pt(42, 62, 5),
	}
	for i := range 6 {
		acc := 1.0 / math.Pow(10, float64(2*i))
		b.Run(fmt.Sprintf("1e-%d", 2*i), func(b *testing.B) {
			for range b.N {
				shape.Arclen(acc)
			}
		})
	}
}
