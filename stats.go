package particles

import "github.com/akmonengine/particles/arena"

// Stats summarizes the state of the world
type Stats struct {
	Count         int
	MeanVelocityX float64 // m/s
	MeanVelocityY float64 // m/s
	// Arena height, in meters
	HeightMeters float64
	// Mean distance between the particles and the ground, in meters
	MeanAltitudeMeters float64
}

// Stats computes the world statistics. Nil particles are ignored, means are 0 for an empty world.
func (w *World) Stats() Stats {
	stats := Stats{
		HeightMeters: arena.PixelsToMeters(w.Arena.Height, w.Arena.PixelsPerMeter),
	}

	var sumVelocityX, sumVelocityY, sumY float64
	for _, p := range w.Particles {
		if p == nil {
			continue
		}
		stats.Count++
		sumVelocityX += p.Velocity.X()
		sumVelocityY += p.Velocity.Y()
		sumY += p.Position.Y()
	}
	if stats.Count == 0 {
		return stats
	}

	n := float64(stats.Count)
	stats.MeanVelocityX = sumVelocityX / n
	stats.MeanVelocityY = sumVelocityY / n
	stats.MeanAltitudeMeters = arena.PixelsToMeters(w.Arena.Height-sumY/n, w.Arena.PixelsPerMeter)

	return stats
}
