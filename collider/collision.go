package collider

import (
	"math"

	"github.com/akmonengine/particles/vector"
	"github.com/go-gl/mathgl/mgl64"
)

type collisionFunc func(a, b Collider) CollisionPoints

// collisionTests holds one test per unordered pair, indexed [lower type][higher type].
// TestCollision orders the arguments before the lookup.
var collisionTests = [colliderTypeCount][colliderTypeCount]collisionFunc{
	ColliderTypeSphere: {
		ColliderTypeSphere: func(a, b Collider) CollisionPoints {
			return SphereSphere(a.(Sphere), b.(Sphere))
		},
		ColliderTypePlane: func(a, b Collider) CollisionPoints {
			return SpherePlane(a.(Sphere), b.(Plane))
		},
	},
	ColliderTypePlane: {
		ColliderTypePlane: func(a, b Collider) CollisionPoints {
			return PlanePlane(a.(Plane), b.(Plane))
		},
	},
}

// TestCollision runs the narrow-phase test between a and b.
// The result is always expressed from a towards b, whatever the argument order.
func TestCollision(a, b Collider) CollisionPoints {
	if a == nil || b == nil {
		return CollisionPoints{}
	}

	typeA, typeB := a.Type(), b.Type()
	if typeA > typeB {
		return collisionTests[typeB][typeA](b, a).Swap()
	}

	return collisionTests[typeA][typeB](a, b)
}

// SphereSphere tests two spheres.
//
// Overlap is checked per axis, against the biggest radius: a collision is reported as soon
// as the centers are closer than that radius on any single axis. This is an interval test,
// not a euclidean distance test, and can report collisions for spheres that are apart
// diagonally.
//
// On each axis, a sphere reaches toward the other sphere's center by the smallest radius,
// without going past that center.
func SphereSphere(a, b Sphere) CollisionPoints {
	rBig := math.Max(a.Radius, b.Radius)
	rSmall := math.Min(a.Radius, b.Radius)

	var pointA, pointB mgl64.Vec3
	hasCollision := false
	for i := 0; i < 3; i++ {
		if absDiff(a.Center[i], b.Center[i]) < rBig {
			hasCollision = true
		}

		pointA[i] = deepestOnAxis(a.Center[i], b.Center[i], rSmall)
		pointB[i] = deepestOnAxis(b.Center[i], a.Center[i], rSmall)
	}

	delta := pointB.Sub(pointA)

	return newCollisionPoints(pointA, pointB, vector.Magnitude(delta), hasCollision)
}

// deepestOnAxis moves from toward target by reach, clamped on target
func deepestOnAxis(from, target, reach float64) float64 {
	if from <= target {
		return math.Min(from+reach, target)
	}

	return math.Max(from-reach, target)
}

// SpherePlane tests a sphere against a plane, whose normal must be normalized.
// Depth is signed: it is negative when the sphere is above the plane without touching it.
func SpherePlane(s Sphere, p Plane) CollisionPoints {
	// Point on the plane closest to the origin
	onPlane := p.Normal.Mul(p.Distance)
	// Signed distance from the sphere center to the plane
	distance := s.Center.Sub(onPlane).Dot(p.Normal)

	// Lowest point of the sphere along -normal, and the center projected onto the plane
	pointA := s.Center.Sub(p.Normal.Mul(s.Radius))
	pointB := s.Center.Sub(p.Normal.Mul(distance))

	return newCollisionPoints(pointA, pointB, s.Radius-distance, distance < s.Radius)
}

// PlanePlane is not implemented, it never reports a collision and carries no contact data
func PlanePlane(a, b Plane) CollisionPoints {
	return CollisionPoints{}
}
