// Package bounce resolves the reflections of a particle against the arena walls
// over a single tick.
//
// Each axis is solved on its own. The distance left to travel during the tick is
// reflected and damped by the bounce coefficient every time it would carry the particle
// past a wall, so a fast particle may bounce several times within one tick.
package bounce

import (
	"math"

	"github.com/akmonengine/particles/actor"
	"github.com/akmonengine/particles/arena"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// NoBounceThreshold is the coefficient under which a particle does not bounce at all
	NoBounceThreshold = 0.0001

	// DefaultMaxIterations bounds the reflections of one axis within a tick
	DefaultMaxIterations = arena.DefaultMaxBounceIterations
)

// Axis selects the arena dimension being solved
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Result is the post-bounce state of a particle
type Result struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	// Number of reflections, all axes included
	Bounces int
}

// Calculate returns the state of p after dt seconds of travel within the arena.
//
// The particle is not modified. A particle may bounce zero or more times. If its position
// is already out of bounds, an *OutOfBoundsError is returned; if its velocity is so extreme
// that the reflections do not settle within the configured iterations,
// ErrCalculationDepthExceeded is returned.
//
// coefficient is the bounciness of the particle: 0 means no bounce, it must stay below 1.
func Calculate(p *actor.Particle, a arena.Config, coefficient float64, dt float64) (Result, error) {
	result := Result{
		Position: p.Position,
		Velocity: p.Velocity,
	}

	if coefficient <= NoBounceThreshold {
		return result, nil
	}

	if p.Position.X()-a.ParticleRadius < 0 ||
		p.Position.Y()-a.ParticleRadius < 0 ||
		p.Position.X()+a.ParticleRadius > a.Width ||
		p.Position.Y()+a.ParticleRadius > a.Height {
		return Result{}, &OutOfBoundsError{X: p.Position.X(), Y: p.Position.Y()}
	}

	for _, axis := range []Axis{AxisX, AxisY} {
		state, err := resolveAxis(axis, p.Position[axis], p.Velocity[axis], a, coefficient, dt)
		if err != nil {
			return Result{}, err
		}

		result.Position[axis] = state.position
		result.Velocity[axis] = state.velocity
		result.Bounces += state.iterations
	}

	return result, nil
}

// axisState tracks the reflections of one axis
type axisState struct {
	// Signed distance (pixels) the particle still has to travel during the tick
	travelRemaining float64
	// Signed velocity (m/s)
	velocity float64
	// Reflections done so far
	iterations int

	position float64
}

// settled reports whether the remaining travel keeps the particle within its allowances,
// or if the particle moves too slowly to be worth bouncing
func (s axisState) settled(lowerAllowance, upperAllowance float64) bool {
	return math.Floor(math.Abs(s.velocity)) == 0 ||
		(s.velocity <= 0 && s.travelRemaining >= lowerAllowance) ||
		(s.velocity >= 0 && s.travelRemaining <= upperAllowance)
}

func (s *axisState) reflect(coefficient float64) {
	s.travelRemaining = -s.travelRemaining * coefficient
	s.velocity = -s.velocity * coefficient
	s.iterations++
}

func resolveAxis(axis Axis, position, velocity float64, a arena.Config, coefficient, dt float64) (axisState, error) {
	maxIterations := a.MaxBounceIterations
	if maxIterations < 1 {
		maxIterations = DefaultMaxIterations
	}

	size := a.Width
	if axis == AxisY {
		size = a.Height
	}
	minAllowedPosition := a.ParticleRadius
	maxAllowedPosition := size - a.ParticleRadius

	// Signed distances the particle may travel toward the lower (<= 0) and upper (>= 0) walls,
	// rounded toward the particle so the result never ends past a wall
	lowerAllowance := math.Ceil(minAllowedPosition - position)
	upperAllowance := math.Floor(maxAllowedPosition - position)

	state := axisState{
		travelRemaining: arena.MetersToPixels(velocity*dt, a.PixelsPerMeter),
		velocity:        velocity,
	}

	for !state.settled(lowerAllowance, upperAllowance) {
		if state.iterations+1 >= maxIterations {
			return axisState{}, ErrCalculationDepthExceeded
		}

		state.reflect(coefficient)
	}

	state.position = position + state.travelRemaining

	// Stopping on a slow velocity may leave the particle slightly out of bounds.
	// Past the upper wall, the particle is more or less resting on it: its velocity is nullified.
	// Past the lower wall only the position is snapped, the velocity is kept.
	if state.position > maxAllowedPosition {
		state.position = maxAllowedPosition
		state.velocity = 0
	}
	if state.position < minAllowedPosition {
		state.position = minAllowedPosition
	}

	return state, nil
}
