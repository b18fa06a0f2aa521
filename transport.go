package polystrip

import "math"

// rmf is one frame of a rotation minimizing frame along a curve: the unit
// tangent t and a unit reference vector r perpendicular to it. The third axis
// is t × r.
type rmf struct {
	t Vec3
	r Vec3
}

// newRMF starts a rotation minimizing frame with tangent t, choosing the
// reference vector as the component of hint perpendicular to t.
func newRMF(t, hint Vec3) rmf {
	r := hint.Reject(t)
	if r.Hypot() < minVectorLength {
		r = t.Ortho()
	}
	return rmf{t: t, r: r.Normalize()}
}

func (m rmf) s() Vec3 {
	return m.t.Cross(m.r)
}

// next transports m from x0 to x1, where the curve's unit tangent is t1, using
// the double reflection method of Wang, Jüttler, Zheng and Liu, "Computation of
// Rotation Minimizing Frames" (2008).
func (m rmf) next(x0, x1 Point3, t1 Vec3) rmf {
	const eps = 1e-24
	r, t := m.r, m.t
	// Reflect in the bisecting plane of x0 and x1.
	if v1 := x1.Sub(x0); v1.Hypot2() > eps {
		r = r.Reflect(v1)
		t = t.Reflect(v1)
	}
	// Reflect in the plane that carries the reflected tangent onto t1.
	if v2 := t1.Sub(t); v2.Hypot2() > eps {
		r = r.Reflect(v2)
	}
	// The reflections preserve orthogonality in exact arithmetic only.
	r = r.Reject(t1)
	if r.Hypot() < minVectorLength {
		return newRMF(t1, m.r)
	}
	return rmf{t: t1, r: r.Normalize()}
}

func (m rmf) toLocal(v Vec3) Vec3 {
	return Vec(v.Dot(m.t), v.Dot(m.r), v.Dot(m.s()))
}

func (m rmf) toWorld(l Vec3) Vec3 {
	return m.t.Mul(l.X).Add(m.r.Mul(l.Y)).Add(m.s().Mul(l.Z))
}

// transportFrames orients one frame per sample by carrying start along the
// curve without twisting. pos and tangents hold the sample positions and unit
// curve tangents, fractions the arc-length fraction of each sample.
//
// The first frame's orientation is start's. The residual rotation between the
// transported last frame and end is spread over the samples in proportion to
// their arc-length fraction, so the last frame's orientation is end's. Frames
// drifting from orthonormality by more than tol are re-orthonormalized.
func transportFrames(pos []Point3, tangents []Vec3, fractions []float64, start, end Frame, tol float64) []Frame {
	n := len(pos)
	frames := make([]Frame, n)
	frames[0] = start.WithPosition(pos[0])

	m := newRMF(tangents[0], start.normal)
	var local [3]Vec3
	for i, v := range start.basis() {
		local[i] = m.toLocal(v)
	}
	for i := 1; i < n; i++ {
		m = m.next(pos[i-1], pos[i], tangents[i])
		f := start.WithPosition(pos[i])
		f.tx = m.toWorld(local[0])
		f.ty = m.toWorld(local[1])
		f.normal = m.toWorld(local[2])
		if !f.IsOrthonormal(tol) {
			f = f.reorthonormalize()
		}
		frames[i] = f
	}

	axis, angle := residualRotation(frames[n-1], end)
	if angle != 0 {
		for i := 1; i < n-1; i++ {
			f := frames[i]
			f = f.rotate(f.toWorld(axis), angle*fractions[i])
			if !f.IsOrthonormal(tol) {
				f = f.reorthonormalize()
			}
			frames[i] = f
		}
	}
	frames[n-1] = end.WithPosition(pos[n-1])
	return frames
}

// residualRotation returns the rotation that carries the basis of from onto
// the basis of to, as a unit axis expressed in from's (TangentX, TangentY,
// Normal) coordinates and an angle in [0, π]. The angle is zero if the bases
// coincide.
func residualRotation(from, to Frame) (Vec3, float64) {
	a, b := from.basis(), to.basis()
	// m[j][k] is the j-th coordinate of b[k] in the basis a.
	var m [3][3]float64
	for j := range 3 {
		for k := range 3 {
			m[j][k] = a[j].Dot(b[k])
		}
	}

	// Quaternion from rotation matrix, branching on the largest diagonal
	// element for stability.
	var w, x, y, z float64
	switch trace := m[0][0] + m[1][1] + m[2][2]; {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		w = 0.25 * s
		x = (m[2][1] - m[1][2]) / s
		y = (m[0][2] - m[2][0]) / s
		z = (m[1][0] - m[0][1]) / s
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := math.Sqrt(1+m[0][0]-m[1][1]-m[2][2]) * 2
		w = (m[2][1] - m[1][2]) / s
		x = 0.25 * s
		y = (m[0][1] + m[1][0]) / s
		z = (m[0][2] + m[2][0]) / s
	case m[1][1] > m[2][2]:
		s := math.Sqrt(1+m[1][1]-m[0][0]-m[2][2]) * 2
		w = (m[0][2] - m[2][0]) / s
		x = (m[0][1] + m[1][0]) / s
		y = 0.25 * s
		z = (m[1][2] + m[2][1]) / s
	default:
		s := math.Sqrt(1+m[2][2]-m[0][0]-m[1][1]) * 2
		w = (m[1][0] - m[0][1]) / s
		x = (m[0][2] + m[2][0]) / s
		y = (m[1][2] + m[2][1]) / s
		z = 0.25 * s
	}
	if w < 0 {
		w, x, y, z = -w, -x, -y, -z
	}
	v := Vec(x, y, z)
	sin := v.Hypot()
	if sin < 1e-15 {
		return Vec3{}, 0
	}
	return v.Div(sin), 2 * math.Atan2(sin, w)
}
