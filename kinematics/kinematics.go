// Package kinematics computes the velocity changes applied to a particle each tick.
// All functions are pure: they read the particle and return a delta, the caller applies it.
package kinematics

import (
	"math"

	"github.com/akmonengine/particles/actor"
	"github.com/akmonengine/particles/arena"
)

// CutoffVelocity is the speed (m/s) under which a particle is not considered moving
const CutoffVelocity = 0.0001

// GravityEffect returns the change in Y velocity (m/s) caused by gravity over dt seconds.
// A particle resting on the ground does not accelerate.
func GravityEffect(p *actor.Particle, a arena.Config, gravity float64, dt float64) float64 {
	if a.TouchingGround(p.Position) {
		return 0.0
	}

	return gravity * dt
}

// FrictionDeceleration returns the change in X velocity (m/s) caused by the ground's
// dynamic friction. It is applied once per tick, to particles touching the ground only.
//
// The result opposes the X velocity and never exceeds it: friction can stop a particle
// but never make it go backward. This holds for non negative coefficients.
func FrictionDeceleration(p *actor.Particle, a arena.Config, coefficient float64) float64 {
	if !a.TouchingGround(p.Position) {
		return 0.0
	}

	vx := p.Velocity.X()
	if math.Abs(vx) < CutoffVelocity {
		return 0.0
	}

	// F = μ * m * g, then a = F / m
	frictionForce := coefficient * p.Mass * a.Gravity
	deceleration := frictionForce / p.Mass

	if deceleration > math.Abs(vx) {
		return -vx
	}
	if vx > 0 {
		return -deceleration
	}

	return deceleration
}

// Acceleration returns dv/dt, both velocities sharing the same unit
func Acceleration(newVelocity, oldVelocity, dt float64) float64 {
	return (newVelocity - oldVelocity) / dt
}
