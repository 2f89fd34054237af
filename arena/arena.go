// Package arena holds the simulation constants and the geometry of the
// rectangle [0, Width] x [0, Height] particles live in.
//
// Positions are in pixels with Y growing downward: the ground is at Y = Height.
// Velocities are in meters per second, PixelsPerMeter converts between the two.
package arena

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultWidth               = 1080.0
	DefaultHeight              = 720.0
	DefaultParticleRadius      = 10.0
	DefaultPixelsPerMeter      = 10.0
	DefaultGravity             = 9.8
	DefaultDynamicFriction     = 0.005
	DefaultBounceCoefficient   = 0.9
	DefaultMaxBounceIterations = 100
)

// Config is the set of constants driving a simulation
type Config struct {
	// Arena size, in pixels
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Radius of every particle, in pixels. Independent from collider radii.
	ParticleRadius float64 `yaml:"particle_radius"`
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`
	// Gravity acceleration (m/s²)
	Gravity         float64 `yaml:"gravity"`
	DynamicFriction float64 `yaml:"dynamic_friction"`
	// 0 = no bounce, must stay below 1
	BounceCoefficient   float64 `yaml:"bounce_coefficient"`
	MaxBounceIterations int     `yaml:"max_bounce_iterations"`
}

// Default returns the configuration of the reference sandbox
func Default() Config {
	return Config{
		Width:               DefaultWidth,
		Height:              DefaultHeight,
		ParticleRadius:      DefaultParticleRadius,
		PixelsPerMeter:      DefaultPixelsPerMeter,
		Gravity:             DefaultGravity,
		DynamicFriction:     DefaultDynamicFriction,
		BounceCoefficient:   DefaultBounceCoefficient,
		MaxBounceIterations: DefaultMaxBounceIterations,
	}
}

var ErrInvalidConfig = errors.New("invalid arena config")

// Validate rejects values the simulation cannot work with
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"particle radius", c.ParticleRadius},
		{"pixels per meter", c.PixelsPerMeter},
		{"gravity", c.Gravity},
		{"dynamic friction", c.DynamicFriction},
		{"bounce coefficient", c.BounceCoefficient},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s %v is not finite", ErrInvalidConfig, f.name, f.value)
		}
	}

	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: arena size %vx%v must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.ParticleRadius < 0:
		return fmt.Errorf("%w: particle radius %v is negative", ErrInvalidConfig, c.ParticleRadius)
	case 2*c.ParticleRadius > c.Width || 2*c.ParticleRadius > c.Height:
		return fmt.Errorf("%w: particle radius %v does not fit in %vx%v", ErrInvalidConfig, c.ParticleRadius, c.Width, c.Height)
	case c.PixelsPerMeter <= 0:
		return fmt.Errorf("%w: pixels per meter %v must be positive", ErrInvalidConfig, c.PixelsPerMeter)
	case c.Gravity < 0:
		return fmt.Errorf("%w: gravity %v is negative", ErrInvalidConfig, c.Gravity)
	case c.DynamicFriction < 0:
		return fmt.Errorf("%w: dynamic friction %v is negative", ErrInvalidConfig, c.DynamicFriction)
	case c.BounceCoefficient < 0 || c.BounceCoefficient >= 1:
		return fmt.Errorf("%w: bounce coefficient %v is outside [0, 1)", ErrInvalidConfig, c.BounceCoefficient)
	case c.MaxBounceIterations < 1:
		return fmt.Errorf("%w: max bounce iterations %d must be at least 1", ErrInvalidConfig, c.MaxBounceIterations)
	}

	return nil
}

// MetersToPixels converts a distance in meters to pixels
func MetersToPixels(meters float64, pixelsPerMeter float64) float64 {
	return meters * pixelsPerMeter
}

// PixelsToMeters converts a distance in pixels to meters
func PixelsToMeters(pixels float64, pixelsPerMeter float64) float64 {
	return pixels / pixelsPerMeter
}
