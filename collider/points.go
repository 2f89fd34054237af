package collider

import (
	"github.com/akmonengine/particles/vector"
	"github.com/go-gl/mathgl/mgl64"
)

// CollisionPoints describes how two colliders A and B overlap.
// It is built per test and owned by the caller.
type CollisionPoints struct {
	A            mgl64.Vec3 // Deepest point of A into B
	B            mgl64.Vec3 // Deepest point of B into A
	Normal       mgl64.Vec3 // B - A, normalized
	Depth        float64
	HasCollision bool
}

// newCollisionPoints derives the normal from the two contact points
func newCollisionPoints(a, b mgl64.Vec3, depth float64, hasCollision bool) CollisionPoints {
	return CollisionPoints{
		A:            a,
		B:            b,
		Normal:       vector.Normalize(b.Sub(a)),
		Depth:        depth,
		HasCollision: hasCollision,
	}
}

// Swap returns the same contact seen from the other collider
func (c CollisionPoints) Swap() CollisionPoints {
	return CollisionPoints{
		A:            c.B,
		B:            c.A,
		Normal:       c.Normal.Mul(-1),
		Depth:        c.Depth,
		HasCollision: c.HasCollision,
	}
}
