package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform describes an object's location in 3D space
type Transform struct {
	Position mgl64.Vec3
	Scale    mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Scale:    mgl64.Vec3{1, 1, 1},
		Rotation: mgl64.QuatIdent(),
	}
}

// Apply maps a point from local space to world space: scale, then rotate, then translate
func (t Transform) Apply(local mgl64.Vec3) mgl64.Vec3 {
	scaled := mgl64.Vec3{local.X() * t.Scale.X(), local.Y() * t.Scale.Y(), local.Z() * t.Scale.Z()}

	return t.Rotation.Rotate(scaled).Add(t.Position)
}

// MaxScale returns the largest absolute scale factor, used to scale uniform shapes
func (t Transform) MaxScale() float64 {
	m := 0.0
	for _, s := range t.Scale {
		if s < 0 {
			s = -s
		}
		m = max(m, s)
	}

	return m
}
