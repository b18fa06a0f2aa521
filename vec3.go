package polystrip

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Vec3 is a displacement in 3-space. Its algebra is that of [r3.Vector]; the
// distinct type keeps displacements and locations ([Point3]) apart.
type Vec3 r3.Vector

// Vec returns the vector ⟨x, y, z⟩.
func Vec(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("⟨%g, %g, %g⟩", v.X, v.Y, v.Z)
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return r3.Vector(v).Dot(r3.Vector(o))
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3(r3.Vector(v).Cross(r3.Vector(o)))
}

// Hypot returns the magnitude of the vector.
func (v Vec3) Hypot() float64 {
	return r3.Vector(v).Norm()
}

// Hypot2 returns the squared magnitude of the vector.
//
// This function is more efficient than squaring the result of [Vec3.Hypot].
func (v Vec3) Hypot2() float64 {
	return r3.Vector(v).Norm2()
}

// Normalize returns a vector of magnitude 1.0 with the same direction as v.
// Unlike a plain division, the zero vector normalizes to the zero vector.
func (v Vec3) Normalize() Vec3 {
	return Vec3(r3.Vector(v).Normalize())
}

// Ortho returns a unit vector that is orthogonal to v.
func (v Vec3) Ortho() Vec3 {
	return Vec3(r3.Vector(v).Ortho())
}

// Lerp linearly interpolates between two vectors.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	// v + t * (o-v)
	return v.Add(o.Sub(v).Mul(t))
}

// IsInf reports whether at least one of x, y and z is infinite.
func (v Vec3) IsInf() bool {
	return math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsInf(v.Z, 0)
}

// IsNaN reports whether at least one of x, y and z is NaN.
func (v Vec3) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// Add adds two vectors and returns the resulting vector.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3(r3.Vector(v).Add(r3.Vector(o)))
}

// Sub subtracts two vectors and returns the resulting vector.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3(r3.Vector(v).Sub(r3.Vector(o)))
}

func (v Vec3) Mul(f float64) Vec3 {
	return Vec3(r3.Vector(v).Mul(f))
}

func (v Vec3) Div(f float64) Vec3 {
	return Vec3{
		X: v.X / f,
		Y: v.Y / f,
		Z: v.Z / f,
	}
}

// Negate returns a new vector with the signs of x, y and z flipped.
func (v Vec3) Negate() Vec3 {
	return Vec3{
		X: -v.X,
		Y: -v.Y,
		Z: -v.Z,
	}
}

// Reflect reflects v in the plane through the origin whose normal is n. n
// need not be of unit length but must not be zero.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n) / n.Hypot2()))
}

// Rotate rotates v by angle radians around the unit axis k, using Rodrigues'
// rotation formula.
func (v Vec3) Rotate(k Vec3, angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return v.Mul(cos).
		Add(k.Cross(v).Mul(sin)).
		Add(k.Mul(k.Dot(v) * (1 - cos)))
}

// Reject returns the component of v orthogonal to the unit vector n.
func (v Vec3) Reject(n Vec3) Vec3 {
	return v.Sub(n.Mul(v.Dot(n)))
}
