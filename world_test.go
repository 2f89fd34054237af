package particles

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/akmonengine/particles/actor"
	"github.com/akmonengine/particles/arena"
	"github.com/akmonengine/particles/bounce"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func newParticle(x, y, vx, vy float64) *actor.Particle {
	return actor.NewParticle(mgl64.Vec3{x, y, 0}, mgl64.Vec3{vx, vy, 0}, 1.0)
}

func assertValid(t *testing.T, a arena.Config, p *actor.Particle) {
	t.Helper()
	for _, c := range []float64{p.Position.X(), p.Position.Y(), p.Velocity.X(), p.Velocity.Y()} {
		if math.IsNaN(c) {
			t.Fatalf("particle %+v has NaN state", p)
		}
	}
	if p.Position.X() < 0 || p.Position.X() > a.Width+0.1 {
		t.Errorf("X = %v is off-screen", p.Position.X())
	}
	if p.Position.Y() < 0 || p.Position.Y() > a.Height+0.1 {
		t.Errorf("Y = %v is off-screen", p.Position.Y())
	}
}

// =============================================================================
// Step
// =============================================================================

func TestWorld_Step_StaysInBounds(t *testing.T) {
	a := arena.Default()
	w := NewWorld(a, nil)
	w.Particles = []*actor.Particle{
		newParticle(0.5*a.Width, 0.5*a.Height, 0, 50),
		newParticle(0.25*a.Width, 0.25*a.Height, 0, -50),
	}

	for i := 0; i < 10; i++ {
		w.Step(1.0)
	}

	for _, p := range w.Particles {
		assertValid(t, a, p)
	}
}

func TestWorld_Step_Deterministic(t *testing.T) {
	a := arena.Default()
	w1 := NewWorld(a, nil)
	w2 := NewWorld(a, nil)
	w1.Particles = []*actor.Particle{newParticle(0.5*a.Width, 0.5*a.Height, 0, 0)}
	w2.Particles = []*actor.Particle{newParticle(0.5*a.Width, 0.5*a.Height, 0, 0)}

	for i := 0; i < 10; i++ {
		w1.Step(1.0)
		w2.Step(1.0)
	}

	p1, p2 := w1.Particles[0], w2.Particles[0]
	if p1.Position != p2.Position || p1.Velocity != p2.Velocity {
		t.Errorf("runs diverged: %+v vs %+v", p1, p2)
	}
}

func TestWorld_Step_Gravity(t *testing.T) {
	a := arena.Default()
	w := NewWorld(a, nil)
	p := newParticle(540, 100, 0, 0)
	w.Particles = []*actor.Particle{p}

	w.Step(0.1)

	if !almostEqual(p.Velocity.Y(), 0.98, 1e-9) {
		t.Errorf("Y velocity = %v, want 0.98", p.Velocity.Y())
	}
	// 0.98 m/s over 0.1s is 0.098m, 0.98px
	if !almostEqual(p.Position.Y(), 100.98, 1e-9) {
		t.Errorf("Y = %v, want 100.98", p.Position.Y())
	}
	if p.Position.X() != 540 || p.Velocity.X() != 0 {
		t.Errorf("X state changed: %v, %v", p.Position.X(), p.Velocity.X())
	}
}

func TestWorld_Step_FrictionOnGround(t *testing.T) {
	a := arena.Default()
	w := NewWorld(a, nil)
	p := newParticle(540, a.Height-a.ParticleRadius, 5, 0)
	w.Particles = []*actor.Particle{p}

	w.Step(0.1)

	// No gravity on the ground, friction removes μg = 0.049 m/s
	if p.Velocity.Y() != 0 {
		t.Errorf("Y velocity = %v, want 0", p.Velocity.Y())
	}
	if !almostEqual(p.Velocity.X(), 4.951, 1e-9) {
		t.Errorf("X velocity = %v, want 4.951", p.Velocity.X())
	}
	if !almostEqual(p.Position.X(), 544.951, 1e-9) {
		t.Errorf("X = %v, want 544.951", p.Position.X())
	}
}

func TestWorld_Step_FrictionStopsParticle(t *testing.T) {
	a := arena.Default()
	w := NewWorld(a, nil)
	p := newParticle(540, a.Height-a.ParticleRadius, 0.5, 0)
	w.Particles = []*actor.Particle{p}

	for i := 0; i < 20; i++ {
		w.Step(0.1)
		if p.Velocity.X() < 0 {
			t.Fatalf("friction reversed the velocity to %v", p.Velocity.X())
		}
	}

	if p.Velocity.X() != 0 {
		t.Errorf("X velocity = %v, want 0", p.Velocity.X())
	}
}

func TestWorld_Step_ResetOutOfBounds(t *testing.T) {
	a := arena.Default()
	w := NewWorld(a, nil)
	p := newParticle(a.Width+1, a.Height+1, 3, -5)
	w.Particles = []*actor.Particle{p}

	w.Step(0.1)

	if p.Position != a.Center() {
		t.Errorf("Position = %v, want the arena center %v", p.Position, a.Center())
	}
	if p.Velocity != (mgl64.Vec3{0, 0, 0}) {
		t.Errorf("Velocity = %v, want zero", p.Velocity)
	}
}

func TestWorld_Step_ResetDepthExceeded(t *testing.T) {
	a := arena.Default()
	a.BounceCoefficient = 0.99
	w := NewWorld(a, nil)
	p := newParticle(540, 360, 1e6, 0)
	w.Particles = []*actor.Particle{p}

	w.Step(1.0)

	if p.Position != a.Center() || p.Velocity != (mgl64.Vec3{0, 0, 0}) {
		t.Errorf("particle = %+v, want reset to the arena center at rest", p)
	}
}

func TestWorld_Step_NoBounceCoefficient(t *testing.T) {
	a := arena.Default()
	a.BounceCoefficient = 0
	w := NewWorld(a, nil)
	p := newParticle(540, 360, 200, 0)
	w.Particles = []*actor.Particle{p}

	w.Step(1.0)

	// The bounce step is skipped, the position is not advanced, the velocity is kept
	if p.Position != (mgl64.Vec3{540, 360, 0}) {
		t.Errorf("Position = %v, want unchanged", p.Position)
	}
	if p.Velocity.X() != 200 {
		t.Errorf("X velocity = %v, want 200", p.Velocity.X())
	}
}

func TestWorld_Step_LogsReset(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := NewWorld(arena.Default(), zap.New(core))
	p := newParticle(-5, 100, 0, 0)
	w.Particles = []*actor.Particle{p}

	w.Step(0.1)

	entries := logs.FilterMessageSnippet("out of bounds").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 out of bounds warning, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["particle"] != p.ID.String() {
		t.Errorf("particle field = %v, want %v", fields["particle"], p.ID)
	}
	if fields["x"] != -5.0 || fields["y"] != 100.0 {
		t.Errorf("position fields = (%v,%v), want (-5,100)", fields["x"], fields["y"])
	}
}

func TestWorld_Step_WorkersMatchSequential(t *testing.T) {
	a := arena.Default()
	rng := rand.New(rand.NewSource(7))

	sequential := NewWorld(a, nil)
	parallel := NewWorld(a, nil)
	parallel.Workers = 4

	legal := a.LegalBounds()
	for i := 0; i < 101; i++ {
		x := legal.Min.X() + rng.Float64()*(legal.Max.X()-legal.Min.X())
		y := legal.Min.Y() + rng.Float64()*(legal.Max.Y()-legal.Min.Y())
		vx := (rng.Float64()*2 - 1) * 300
		vy := (rng.Float64()*2 - 1) * 300

		sequential.Particles = append(sequential.Particles, newParticle(x, y, vx, vy))
		parallel.Particles = append(parallel.Particles, newParticle(x, y, vx, vy))
	}

	for i := 0; i < 30; i++ {
		sequential.Step(1.0 / 60.0)
		parallel.Step(1.0 / 60.0)
	}

	for i := range sequential.Particles {
		s, p := sequential.Particles[i], parallel.Particles[i]
		if s.Position != p.Position || s.Velocity != p.Velocity {
			t.Fatalf("particle %d diverged: %+v vs %+v", i, s, p)
		}
		assertValid(t, a, p)
	}
}

func TestSimulationTick(t *testing.T) {
	a := arena.Default()
	particles := []*actor.Particle{newParticle(540, 100, 0, 0), newParticle(a.Width+20, 100, 0, 0)}

	SimulationTick(particles, a, 0.1)

	if !almostEqual(particles[0].Velocity.Y(), 0.98, 1e-9) {
		t.Errorf("Y velocity = %v, want 0.98", particles[0].Velocity.Y())
	}
	if particles[1].Position != a.Center() {
		t.Errorf("Position = %v, want reset to the arena center", particles[1].Position)
	}
}

// =============================================================================
// Particles management
// =============================================================================

func TestWorld_AddParticle(t *testing.T) {
	a := arena.Default()
	w := NewWorld(a, nil)

	if err := w.AddParticle(newParticle(540, 360, 0, 0)); err != nil {
		t.Fatalf("AddParticle() error = %v", err)
	}
	if len(w.Particles) != 1 {
		t.Errorf("len(Particles) = %d, want 1", len(w.Particles))
	}

	err := w.AddParticle(newParticle(a.ParticleRadius-1, 360, 0, 0))
	var oob *bounce.OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Errorf("AddParticle() error = %v, want *bounce.OutOfBoundsError", err)
	}

	massless := newParticle(540, 360, 0, 0)
	massless.Mass = 0
	if err := w.AddParticle(massless); err == nil {
		t.Error("AddParticle() accepted a massless particle")
	}

	if len(w.Particles) != 1 {
		t.Errorf("len(Particles) = %d, want 1", len(w.Particles))
	}
}

func TestWorld_RemoveParticle(t *testing.T) {
	w := NewWorld(arena.Default(), nil)
	p1 := newParticle(100, 100, 0, 0)
	p2 := newParticle(200, 200, 0, 0)
	w.Particles = []*actor.Particle{p1, p2}

	w.RemoveParticle(p1)
	if len(w.Particles) != 1 || w.Particles[0] != p2 {
		t.Errorf("Particles = %v, want only p2", w.Particles)
	}

	// Removing an unknown particle is a no-op
	w.RemoveParticle(p1)
	if len(w.Particles) != 1 {
		t.Errorf("len(Particles) = %d, want 1", len(w.Particles))
	}
}

func TestWorld_Respawn(t *testing.T) {
	a := arena.Default()
	w := NewWorld(a, nil)
	w.Particles = []*actor.Particle{newParticle(100, 100, 5, 5), newParticle(900, 600, -3, 1)}

	w.Respawn()

	for _, p := range w.Particles {
		if p.Position != a.Center() || p.Velocity != (mgl64.Vec3{0, 0, 0}) {
			t.Errorf("particle = %+v, want at the center at rest", p)
		}
	}
}

// =============================================================================
// ClampWithinBounds
// =============================================================================

func TestClampWithinBounds(t *testing.T) {
	a := arena.Default()

	tests := []struct {
		name         string
		position     mgl64.Vec3
		velocity     mgl64.Vec3
		wantPosition mgl64.Vec3
		wantVelocity mgl64.Vec3
		wantClamped  bool
	}{
		{
			name:         "inside",
			position:     mgl64.Vec3{540, 360, 0},
			velocity:     mgl64.Vec3{1, 2, 0},
			wantPosition: mgl64.Vec3{540, 360, 0},
			wantVelocity: mgl64.Vec3{1, 2, 0},
		},
		{
			name:         "below the floor",
			position:     mgl64.Vec3{540, 715, 0},
			velocity:     mgl64.Vec3{1, 2, 0},
			wantPosition: mgl64.Vec3{540, 710, 0},
			wantVelocity: mgl64.Vec3{1, 0, 0},
			wantClamped:  true,
		},
		{
			name:         "above the ceiling",
			position:     mgl64.Vec3{540, 5, 0},
			velocity:     mgl64.Vec3{1, -2, 0},
			wantPosition: mgl64.Vec3{540, 10, 0},
			wantVelocity: mgl64.Vec3{1, 0, 0},
			wantClamped:  true,
		},
		{
			name:         "past both walls",
			position:     mgl64.Vec3{-50, 2000, 0},
			velocity:     mgl64.Vec3{-1, 2, 0},
			wantPosition: mgl64.Vec3{10, 710, 0},
			wantVelocity: mgl64.Vec3{0, 0, 0},
			wantClamped:  true,
		},
		{
			name:         "past the right wall",
			position:     mgl64.Vec3{1075, 360, 0},
			velocity:     mgl64.Vec3{3, 0, 0},
			wantPosition: mgl64.Vec3{1070, 360, 0},
			wantVelocity: mgl64.Vec3{0, 0, 0},
			wantClamped:  true,
		},
		{
			name:         "sub pixel overlap is tolerated",
			position:     mgl64.Vec3{540, 710.5, 0},
			velocity:     mgl64.Vec3{0, 1, 0},
			wantPosition: mgl64.Vec3{540, 710.5, 0},
			wantVelocity: mgl64.Vec3{0, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParticle(0, 0, 0, 0)

			clamped := ClampWithinBounds(p, a, tt.position, tt.velocity)

			if clamped != tt.wantClamped {
				t.Errorf("clamped = %v, want %v", clamped, tt.wantClamped)
			}
			if p.Position != tt.wantPosition {
				t.Errorf("Position = %v, want %v", p.Position, tt.wantPosition)
			}
			if p.Velocity != tt.wantVelocity {
				t.Errorf("Velocity = %v, want %v", p.Velocity, tt.wantVelocity)
			}
		})
	}
}

func TestWorld_Step_SkipsNilParticles(t *testing.T) {
	a := arena.Default()
	for _, workers := range []int{1, 3} {
		w := NewWorld(a, nil)
		w.Workers = workers
		p := newParticle(540, 100, 0, 0)
		w.Particles = []*actor.Particle{nil, p, nil}

		w.Step(0.1)
		w.Respawn()
		stats := w.Stats()

		if p.Position != a.Center() {
			t.Errorf("workers=%d: Position = %v, want the arena center", workers, p.Position)
		}
		if stats.Count != 1 {
			t.Errorf("workers=%d: Count = %d, want 1", workers, stats.Count)
		}
	}

	SimulationTick([]*actor.Particle{nil}, a, 0.1)
}

func TestWorld_AddParticle_RejectsInvalidState(t *testing.T) {
	w := NewWorld(arena.Default(), nil)

	if err := w.AddParticle(nil); err == nil {
		t.Error("AddParticle(nil) returned no error")
	}
	if err := w.AddParticle(newParticle(540, 360, math.NaN(), 0)); err == nil {
		t.Error("AddParticle() accepted a NaN velocity")
	}
	if err := w.AddParticle(newParticle(540, 360, 0, math.Inf(1))); err == nil {
		t.Error("AddParticle() accepted an infinite velocity")
	}
	if len(w.Particles) != 0 {
		t.Errorf("len(Particles) = %d, want 0", len(w.Particles))
	}
}
