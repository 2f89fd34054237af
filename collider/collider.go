// Package collider implements narrow-phase tests between analytic collision shapes.
//
// A collision test takes two colliders and returns the deepest point of each shape
// into the other, the normal going from the first shape to the second, and the
// penetration depth. Tests never fail: pairs without an implementation report no collision.
package collider

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ColliderType represents the type of collision shape
type ColliderType int

const (
	ColliderTypeSphere ColliderType = iota
	ColliderTypePlane

	colliderTypeCount
)

func (t ColliderType) String() string {
	switch t {
	case ColliderTypeSphere:
		return "sphere"
	case ColliderTypePlane:
		return "plane"
	default:
		return "unknown"
	}
}

// Collider is implemented by Sphere and Plane only
type Collider interface {
	Type() ColliderType
	// Translate returns a copy of the collider moved by offset
	Translate(offset mgl64.Vec3) Collider
	sealed()
}

// Sphere represents a spherical collider, in world space
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

func (s Sphere) Type() ColliderType { return ColliderTypeSphere }

func (s Sphere) Translate(offset mgl64.Vec3) Collider {
	return Sphere{Center: s.Center.Add(offset), Radius: s.Radius}
}

func (Sphere) sealed() {}

// Plane represents an infinite plane collider.
// The points p of the plane satisfy: Normal · p = Distance
// Normal must be normalized by the caller, it is never normalized here: repeated
// normalization compounds floating-point drift.
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

// NewPlane normalizes normal once and builds a plane from it
func NewPlane(normal mgl64.Vec3, distance float64) Plane {
	return Plane{Normal: normal.Normalize(), Distance: distance}
}

func (p Plane) Type() ColliderType { return ColliderTypePlane }

func (p Plane) Translate(offset mgl64.Vec3) Collider {
	return Plane{Normal: p.Normal, Distance: p.Distance + offset.Dot(p.Normal)}
}

func (Plane) sealed() {}

// CircleContainsPoint returns true if point falls within the circle, on the XY plane.
// A small tolerance accounts for floating point imprecision on the circle's edge.
func CircleContainsPoint(center mgl64.Vec2, radius float64, point mgl64.Vec2) bool {
	const tolerance = 0.0001

	dx := center.X() - point.X()
	dy := center.Y() - point.Y()

	return radius*radius+tolerance >= dx*dx+dy*dy
}

func absDiff(a, b float64) float64 {
	return math.Abs(a - b)
}
