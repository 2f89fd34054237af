package actor

import (
	"github.com/akmonengine/particles/collider"
	"github.com/akmonengine/particles/vector"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Object is a rigid body owning a Transform and a Collider.
// The collider is described in the object's local space.
type Object struct {
	ID        uuid.UUID
	Transform Transform
	Velocity  mgl64.Vec3
	Force     mgl64.Vec3
	Mass      float64
	Collider  collider.Collider
}

// NewObject creates an object with a fresh ID
func NewObject(transform Transform, shape collider.Collider, mass float64) *Object {
	return &Object{
		ID:        uuid.New(),
		Transform: transform,
		Mass:      mass,
		Collider:  shape,
	}
}

// WorldCollider returns the collider placed in world space.
// Spheres follow the full transform, their radius grows with the largest scale factor.
// Planes are only translated: they are infinite, and rotating them would require
// normalizing the normal again.
func (o *Object) WorldCollider() collider.Collider {
	switch shape := o.Collider.(type) {
	case collider.Sphere:
		return collider.Sphere{
			Center: o.Transform.Apply(shape.Center),
			Radius: shape.Radius * o.Transform.MaxScale(),
		}
	case collider.Plane:
		return shape.Translate(o.Transform.Position)
	default:
		return nil
	}
}

// TestCollision runs the narrow phase between o and other, in world space
func (o *Object) TestCollision(other *Object) collider.CollisionPoints {
	return collider.TestCollision(o.WorldCollider(), other.WorldCollider())
}

// Integrate moves the object by its velocity over dt seconds, gravity included
func (o *Object) Integrate(dt float64, gravity mgl64.Vec3) {
	acceleration := gravity
	if o.Mass > 0 {
		acceleration = acceleration.Add(vector.Divide(o.Force, o.Mass))
	}

	o.Velocity = o.Velocity.Add(acceleration.Mul(dt))
	o.Transform.Position = o.Transform.Position.Add(o.Velocity.Mul(dt))
	o.Force = vector.Zero()
}
