// Package vector complements mgl64.Vec3 with the few operations the simulation
// relies on that mathgl does not make safe.
//
// mgl64.Vec3 is a value type: every arithmetic method returns a new vector, so
// callers never share mutable vector state.
package vector

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// unitDiagonal is (1,1,1)/|(1,1,1)|, returned when normalizing the zero vector.
var unitDiagonal = mgl64.Vec3{1 / math.Sqrt(3), 1 / math.Sqrt(3), 1 / math.Sqrt(3)}

// Zero returns the zero vector
func Zero() mgl64.Vec3 {
	return mgl64.Vec3{0, 0, 0}
}

// Magnitude returns the euclidean length of v. The zero vector has a magnitude of exactly 0.
func Magnitude(v mgl64.Vec3) float64 {
	return math.Sqrt(v.X()*v.X() + v.Y()*v.Y() + v.Z()*v.Z())
}

// Normalize returns v scaled to unit length.
// mgl64.Vec3.Normalize divides by zero on the zero vector and yields NaN components;
// here the zero vector normalizes to the unit diagonal instead.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	m := Magnitude(v)
	if m == 0 {
		return unitDiagonal
	}

	return v.Mul(1.0 / m)
}

// Divide returns v with every component divided by s
func Divide(v mgl64.Vec3, s float64) mgl64.Vec3 {
	return mgl64.Vec3{v.X() / s, v.Y() / s, v.Z() / s}
}

// IsFinite reports whether no component of v is NaN or infinite
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}

	return true
}
