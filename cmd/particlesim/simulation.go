package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/akmonengine/particles"
	"github.com/akmonengine/particles/actor"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	// Longer frames, e.g. after the terminal was suspended, are stepped as this duration
	maxFrameTime = 100 * time.Millisecond
	// Spawned particles get a random velocity within [-maxSpawnSpeed, maxSpawnSpeed] on each axis (m/s)
	maxSpawnSpeed = 40.0

	sampleRate = beep.SampleRate(44100)
	toneHz     = 880
	toneLength = 30 * time.Millisecond
)

type simulation struct {
	world  *particles.World
	screen tcell.Screen
	logger *zap.Logger
	rng    *rand.Rand

	audioInit bool
	bounced   bool

	bounces int
	resets  int
}

func newSimulation(world *particles.World, screen tcell.Screen, logger *zap.Logger) *simulation {
	s := &simulation{
		world:  world,
		screen: screen,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	world.Events.Subscribe(particles.PARTICLE_BOUNCE, func(event particles.Event) {
		s.bounces += event.(particles.BounceEvent).Bounces
		s.bounced = true
	})
	world.Events.Subscribe(particles.PARTICLE_RESET, func(event particles.Event) {
		s.resets++
	})

	return s
}

func (s *simulation) initAudio() error {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		s.audioInit = true
	}
	return err
}

func (s *simulation) close() {
	if s.audioInit {
		speaker.Close()
	}
}

func (s *simulation) playBounceSound() {
	if !s.audioInit {
		return
	}

	sine, err := generators.SineTone(sampleRate, toneHz)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(toneLength), sine))
}

// spawn adds a particle at a random legal position with a random velocity
func (s *simulation) spawn() {
	legal := s.world.Arena.LegalBounds()
	position := mgl64.Vec3{
		legal.Min.X() + s.rng.Float64()*(legal.Max.X()-legal.Min.X()),
		legal.Min.Y() + s.rng.Float64()*(legal.Max.Y()-legal.Min.Y()),
		0,
	}
	velocity := mgl64.Vec3{
		(s.rng.Float64()*2 - 1) * maxSpawnSpeed,
		(s.rng.Float64()*2 - 1) * maxSpawnSpeed,
		0,
	}

	p := actor.NewParticle(position, velocity, 1.0)
	if err := s.world.AddParticle(p); err != nil {
		s.logger.Warn("failed to spawn particle", zap.Error(err))
		return
	}
	s.logger.Debug("particle spawned",
		zap.Stringer("particle", p.ID),
		zap.Float64("x", position.X()),
		zap.Float64("y", position.Y()))
}

func (s *simulation) run(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	lastTick := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !s.handleInput(ev) {
				return nil
			}

		case <-ticker.C:
			dt := min(time.Since(lastTick), maxFrameTime)
			lastTick = time.Now()

			s.world.Step(dt.Seconds())
			if s.bounced {
				s.playBounceSound()
				s.bounced = false
			}
			s.draw()
		}
	}
}

// handleInput returns false when the simulation must stop
func (s *simulation) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				s.spawn()
			case 'r':
				s.world.Respawn()
				s.logger.Info("particles respawned", zap.Int("particles", len(s.world.Particles)))
			}
		}

	case *tcell.EventResize:
		s.screen.Sync()
	}

	return true
}
