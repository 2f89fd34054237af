package actor

import (
	"github.com/akmonengine/particles/vector"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Particle is a point mass moving on the arena plane.
// Position is in pixels, Velocity in meters per second (both signed, per axis).
// Only X and Y are simulated, Z is carried along untouched.
type Particle struct {
	ID       uuid.UUID
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	// Force accumulator, not consumed by the simulation yet
	Force mgl64.Vec3
	// Mass in kilograms, must be positive
	Mass float64
}

// NewParticle creates a particle with a fresh ID
func NewParticle(position mgl64.Vec3, velocity mgl64.Vec3, mass float64) *Particle {
	return &Particle{
		ID:       uuid.New(),
		Position: position,
		Velocity: velocity,
		Mass:     mass,
	}
}

// AddForce accumulates a force in newtons
func (p *Particle) AddForce(force mgl64.Vec3) {
	p.Force = p.Force.Add(force)
}

// ClearForces resets the force accumulator
func (p *Particle) ClearForces() {
	p.Force = vector.Zero()
}
