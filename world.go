// Package particles runs a particle sandbox: particles fall under gravity, slide with
// friction on the ground, and bounce against the walls of a rectangular arena.
package particles

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/particles/actor"
	"github.com/akmonengine/particles/arena"
	"github.com/akmonengine/particles/bounce"
	"github.com/akmonengine/particles/kinematics"
	"github.com/akmonengine/particles/vector"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const DEFAULT_WORKERS = 1

type World struct {
	// List of all particles in the world
	Particles []*actor.Particle
	Arena     arena.Config
	Workers   int
	Logger    *zap.Logger

	Events Events
}

// NewWorld creates an empty world. A nil logger discards all logs.
func NewWorld(config arena.Config, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &World{
		Arena:   config,
		Workers: DEFAULT_WORKERS,
		Logger:  logger,
	}
}

// AddParticle adds a particle to the world.
// The particle must spawn fully within the arena, or an *bounce.OutOfBoundsError is returned.
func (w *World) AddParticle(p *actor.Particle) error {
	if p == nil {
		return errors.New("spawn particle: nil particle")
	}
	if !vector.IsFinite(p.Position) || !vector.IsFinite(p.Velocity) {
		return fmt.Errorf("spawn particle %s: non finite state %v, %v", p.ID, p.Position, p.Velocity)
	}
	if !w.Arena.Contains(p.Position) {
		return fmt.Errorf("spawn particle %s: %w", p.ID, &bounce.OutOfBoundsError{X: p.Position.X(), Y: p.Position.Y()})
	}
	if p.Mass <= 0 {
		return fmt.Errorf("spawn particle %s: mass %v must be positive", p.ID, p.Mass)
	}

	w.Particles = append(w.Particles, p)

	return nil
}

// RemoveParticle removes a particle from the world
func (w *World) RemoveParticle(p *actor.Particle) {
	k := -1
	for i, particle := range w.Particles {
		if particle == p {
			k = i
			break
		}
	}

	if k != -1 {
		w.Particles = append(w.Particles[:k], w.Particles[k+1:]...)
	}
}

// Respawn moves every particle back to the arena center, at rest
func (w *World) Respawn() {
	for _, p := range w.Particles {
		if p == nil {
			continue
		}
		w.reset(p)
	}
}

// SimulationTick advances particles by dt seconds within the arena described by config.
// The particles are updated in place.
func SimulationTick(particles []*actor.Particle, config arena.Config, dt float64) {
	w := World{Particles: particles, Arena: config, Logger: zap.NewNop()}
	w.Step(dt)
}

type tickOutcome struct {
	before  actor.Particle
	bounces int
	clamped bool
	err     error
}

// Step advances the simulation by dt seconds.
//
// Each particle goes through gravity, friction and then bounces. A particle whose bounces
// cannot be resolved is reset to the arena center with no velocity, Step never fails.
// Nil entries are skipped.
func (w *World) Step(dt float64) {
	if w.Logger == nil {
		w.Logger = zap.NewNop()
	}

	outcomes := make([]tickOutcome, len(w.Particles))
	task(w.Workers, w.Particles, func(i int, p *actor.Particle) {
		if p == nil {
			return
		}
		outcomes[i] = w.tickParticle(p, dt)
	})

	// Logs and events are emitted in particle order, whatever the number of workers
	for i, p := range w.Particles {
		if p == nil {
			continue
		}
		w.report(p, outcomes[i])
	}

	w.Events.flush()
}

func (w *World) tickParticle(p *actor.Particle, dt float64) tickOutcome {
	outcome := tickOutcome{before: *p}

	p.Velocity[1] += kinematics.GravityEffect(p, w.Arena, w.Arena.Gravity, dt)
	p.Velocity[0] += kinematics.FrictionDeceleration(p, w.Arena, w.Arena.DynamicFriction)

	result, err := bounce.Calculate(p, w.Arena, w.Arena.BounceCoefficient, dt)
	if err != nil {
		outcome.err = err
		w.reset(p)
		return outcome
	}

	outcome.bounces = result.Bounces
	outcome.clamped = ClampWithinBounds(p, w.Arena, result.Position, result.Velocity)

	return outcome
}

func (w *World) reset(p *actor.Particle) {
	ClampWithinBounds(p, w.Arena, w.Arena.Center(), vector.Zero())
}

func (w *World) report(p *actor.Particle, outcome tickOutcome) {
	logger := w.Logger.With(zap.Stringer("particle", p.ID))

	if outcome.err != nil {
		var oob *bounce.OutOfBoundsError
		switch {
		case errors.As(outcome.err, &oob):
			logger.Warn("failed to calculate bounces, input particle out of bounds, resetting particle",
				zap.Float64("x", oob.X),
				zap.Float64("y", oob.Y),
				zap.Error(outcome.err))
		case errors.Is(outcome.err, bounce.ErrCalculationDepthExceeded):
			logger.Warn("calculation depth exceeded when calculating bounces, resetting particle",
				zap.Float64("vx", outcome.before.Velocity.X()),
				zap.Float64("vy", outcome.before.Velocity.Y()),
				zap.Error(outcome.err))
		default:
			logger.Warn("failed to calculate bounces, resetting particle", zap.Error(outcome.err))
		}

		w.Events.emit(ResetEvent{Particle: p, Err: outcome.err})
		return
	}

	if ce := logger.Check(zap.DebugLevel, "particle updated"); ce != nil {
		ce.Write(
			zap.Float64("x_before", outcome.before.Position.X()),
			zap.Float64("y_before", outcome.before.Position.Y()),
			zap.Float64("vx_before", outcome.before.Velocity.X()),
			zap.Float64("vy_before", outcome.before.Velocity.Y()),
			zap.Float64("x", p.Position.X()),
			zap.Float64("y", p.Position.Y()),
			zap.Float64("vx", p.Velocity.X()),
			zap.Float64("vy", p.Velocity.Y()),
			zap.Int("bounces", outcome.bounces),
		)
	}

	if outcome.bounces > 0 {
		w.Events.emit(BounceEvent{Particle: p, Bounces: outcome.bounces})
	}
	if outcome.clamped {
		logger.Debug("particle fully or partially off-screen, clamped within bounds",
			zap.Float64("x", p.Position.X()),
			zap.Float64("y", p.Position.Y()))
		w.Events.emit(ClampEvent{Particle: p})
	}
}

// ClampWithinBounds sets the position and velocity of p, keeping the particle within the
// arena: an axis found (partially) off-screen is snapped back to the closest legal
// coordinate and its velocity nullified. It returns true if any axis was snapped.
func ClampWithinBounds(p *actor.Particle, a arena.Config, position, velocity mgl64.Vec3) bool {
	p.Position = position
	p.Velocity = velocity

	clamped := false
	limits := [2]float64{a.Width, a.Height}
	for axis, limit := range limits {
		switch {
		case limit < math.Floor(p.Position[axis]+a.ParticleRadius):
			p.Position[axis] = limit - a.ParticleRadius
		case 0 > math.Ceil(p.Position[axis]-a.ParticleRadius):
			p.Position[axis] = a.ParticleRadius
		default:
			continue
		}
		p.Velocity[axis] = 0
		clamped = true
	}

	return clamped
}
