package polystrip

import (
	"math"
)

// CubicBez is a cubic Bézier segment in 3-space.
type CubicBez struct {
	P0 Point3
	P1 Point3
	P2 Point3
	P3 Point3
}

func (c CubicBez) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

// BoundingBox returns the bounding box of the control polygon, which contains
// the curve.
func (c CubicBez) BoundingBox() Box3 {
	return EmptyBox().Extend(c.P0).Extend(c.P1).Extend(c.P2).Extend(c.P3)
}

// Arclen returns the arc length of c to within accuracy. It integrates the
// speed with an 8, 16 or 24 point Gauss-Legendre rule, picked by an error
// estimate from the curve's bending, and halves the curve when none of them
// is accurate enough.
func (c CubicBez) Arclen(accuracy float64) float64 {
	return c.arclen(accuracy, 0)
}

func (c CubicBez) arclen(accuracy float64, depth int) float64 {
	d03 := c.P3.Sub(c.P0)
	d01 := c.P1.Sub(c.P0)
	d12 := c.P2.Sub(c.P1)
	d23 := c.P3.Sub(c.P2)
	// Control polygon length over chord length scales every error estimate.
	excess := d01.Hypot() + d12.Hypot() + d23.Hypot() - d03.Hypot()
	dd1 := d12.Sub(d01)
	dd2 := d23.Sub(d12)
	// Derivatives at t = 0.5, in the local parameter of [-1, 1] and without
	// the factor 3 of the cubic's hodograph.
	dm := d01.Add(d23).Mul(0.25).Add(d12.Mul(0.5))
	dm1 := dd2.Add(dd1).Mul(0.5)
	dm2 := dd2.Sub(dd1).Mul(0.25)

	var bend float64
	for _, coeff := range gaussLegendreCoeffs8 {
		wi, xi := coeff[0], coeff[1]
		dNorm2 := dm.Add(dm1.Mul(xi)).Add(dm2.Mul(xi * xi)).Hypot2()
		ddNorm2 := dm1.Add(dm2.Mul(2.0 * xi)).Hypot2()
		f := ddNorm2 / dNorm2
		bend += wi * f
	}
	if math.IsNaN(bend) || math.IsInf(bend, 0) {
		// Zero speed somewhere: a cusp or coincident control points.
		bend = 0
	}

	estGauss8Error := min(math.Pow(bend, 3)*2.5e-6, 3e-2) * excess
	if estGauss8Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs8Half[:], dm, dm1, dm2)
	}
	estGauss16Error := min(math.Pow(bend, 6)*1.5e-11, 9e-3) * excess
	if estGauss16Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs16Half[:], dm, dm1, dm2)
	}
	estGauss24Error := min(math.Pow(bend, 9)*3.5e-16, 3.5e-3) * excess
	if estGauss24Error < accuracy || depth >= 20 {
		return arclenQuadratureCore(gaussLegendreCoeffs24Half[:], dm, dm1, dm2)
	}
	c0, c1 := c.Subdivide()
	return c0.arclen(accuracy*0.5, depth+1) + c1.arclen(accuracy*0.5, depth+1)
}

func arclenQuadratureCore(coeffs [][2]float64, dm Vec3, dm1 Vec3, dm2 Vec3) float64 {
	var sum float64
	for _, coeff := range coeffs {
		wi, xi := coeff[0], coeff[1]
		d := dm.Add(dm2.Mul(xi * xi))
		dpx := d.Add(dm1.Mul(xi)).Hypot()
		dmx := d.Sub(dm1.Mul(xi)).Hypot()
		sum += math.Sqrt(2.25) * wi * (dpx + dmx)
	}
	return sum
}

// Eval evaluates the curve at t. The endpoints are returned exactly for t = 0
// and t = 1.
func (c CubicBez) Eval(t float64) Point3 {
	switch t {
	case 0:
		return c.P0
	case 1:
		return c.P3
	}
	mt := 1.0 - t
	a := Vec3(c.P0).Mul(mt * mt * mt)
	b := Vec3(c.P1).Mul(mt * mt * 3.0)
	d := Vec3(c.P2).Mul(mt * 3.0)
	e := Vec3(c.P3)
	v := a.Add(b.Add(d.Add(e.Mul(t)).Mul(t)).Mul(t))
	return Point3(v)
}

// Deriv returns the first derivative of the curve at t.
func (c CubicBez) Deriv(t float64) Vec3 {
	d0 := c.P1.Sub(c.P0).Mul(3)
	d1 := c.P2.Sub(c.P1).Mul(3)
	d2 := c.P3.Sub(c.P2).Mul(3)
	mt := 1.0 - t
	return d0.Mul(mt * mt).Add(d1.Mul(2 * mt * t)).Add(d2.Mul(t * t))
}

// Tangent returns the unit tangent at t. Where the derivative vanishes (a
// handle coinciding with its endpoint), the direction of the second and then
// third derivative is used instead, and the chord as a last resort. The zero
// vector is returned only for a curve collapsed to a point.
func (c CubicBez) Tangent(t float64) Vec3 {
	const eps = 1e-12
	if d := c.Deriv(t); d.Hypot2() > eps {
		return d.Normalize()
	}
	// Second derivative: 6((1-t)(P2-2P1+P0) + t(P3-2P2+P1)).
	a := c.P2.Sub(c.P1).Sub(c.P1.Sub(c.P0))
	b := c.P3.Sub(c.P2).Sub(c.P2.Sub(c.P1))
	dd := a.Lerp(b, t)
	if dd.Hypot2() > eps {
		// Moving away from t=0 the curve follows +dd; arriving at t=1 it
		// follows -dd.
		if t > 0.5 {
			dd = dd.Negate()
		}
		return dd.Normalize()
	}
	return c.P3.Sub(c.P0).Normalize()
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.Eval(0.5)
	return CubicBez{
			c.P0,
			c.P0.Midpoint(c.P1),
			Point3(Vec3(c.P0).Add(Vec3(c.P1).Mul(2.0)).Add(Vec3(c.P2)).Mul(0.25)),
			pm,
		},
		CubicBez{
			pm,
			Point3(Vec3(c.P1).Add(Vec3(c.P2).Mul(2.0)).Add(Vec3(c.P3)).Mul(0.25)),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

// Subsegment returns the part of the curve between t0 and t1.
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(c.Deriv(t0).Mul(scale))
	p2 := p3.Translate(c.Deriv(t1).Mul(scale).Negate())
	return CubicBez{p0, p1, p2, p3}
}

// SolveForArclen returns the parameter t at which the arc length from the
// start of c equals arclen. totalArclen is the length of the whole curve from
// [CubicBez.Arclen]. t is exact to accuracy/totalArclen; the arc length at t
// is therefore off by up to that times the curve's top speed.
//
// Each step of the root finder measures only the piece between the previous
// and the new guess and keeps a running total.
func (c CubicBez) SolveForArclen(arclen, totalArclen, accuracy float64) float64 {
	if arclen <= 0.0 {
		return 0.0
	}
	if arclen >= totalArclen {
		return 1.0
	}
	tLast := 0.0
	arclenLast := 0.0
	epsilon := accuracy / totalArclen
	n := 1.0 - min(math.Ceil(math.Log2(epsilon)), 0.0)
	innerAccuracy := accuracy / n
	f := func(t float64) float64 {
		var rangeStart, rangeEnd, dir float64
		if t > tLast {
			rangeStart = tLast
			rangeEnd = t
			dir = 1.0
		} else {
			rangeStart = t
			rangeEnd = tLast
			dir = -1.0
		}
		arc := c.Subsegment(rangeStart, rangeEnd).Arclen(innerAccuracy)
		arclenLast += arc * dir
		tLast = t
		return arclenLast - arclen
	}
	return solveITP(f, 0.0, 1.0, epsilon, -arclen, totalArclen-arclen)
}
