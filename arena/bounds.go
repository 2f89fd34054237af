package arena

import "github.com/go-gl/mathgl/mgl64"

// Bounds represents an axis-aligned rectangle on the XY plane
type Bounds struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// ContainsPoint checks if a point is inside the bounds, edges included
func (b Bounds) ContainsPoint(point mgl64.Vec2) bool {
	return point.X() >= b.Min.X() && point.X() <= b.Max.X() &&
		point.Y() >= b.Min.Y() && point.Y() <= b.Max.Y()
}

// Clamp returns the closest point to point inside the bounds
func (b Bounds) Clamp(point mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		min(max(point.X(), b.Min.X()), b.Max.X()),
		min(max(point.Y(), b.Min.Y()), b.Max.Y()),
	}
}

// Bounds returns the whole arena rectangle
func (c Config) Bounds() Bounds {
	return Bounds{
		Min: mgl64.Vec2{0, 0},
		Max: mgl64.Vec2{c.Width, c.Height},
	}
}

// LegalBounds returns the rectangle a particle center must stay in for the
// particle to be fully inside the arena
func (c Config) LegalBounds() Bounds {
	return Bounds{
		Min: mgl64.Vec2{c.ParticleRadius, c.ParticleRadius},
		Max: mgl64.Vec2{c.Width - c.ParticleRadius, c.Height - c.ParticleRadius},
	}
}

// Center returns the middle of the arena, on the XY plane
func (c Config) Center() mgl64.Vec3 {
	return mgl64.Vec3{0.5 * c.Width, 0.5 * c.Height, 0}
}

// Contains reports whether a particle centered on position lies fully inside the arena
func (c Config) Contains(position mgl64.Vec3) bool {
	return c.LegalBounds().ContainsPoint(position.Vec2())
}

// TouchingGround returns true if a particle at position reaches the floor.
// A particle that fell below the floor also counts as touching it.
func (c Config) TouchingGround(position mgl64.Vec3) bool {
	return position.Y()+c.ParticleRadius >= c.Height
}
