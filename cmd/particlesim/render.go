package main

import (
	"fmt"

	"github.com/akmonengine/particles"
	"github.com/akmonengine/particles/arena"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	particleStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	groundStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	panelStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// cellFor maps an arena position to a terminal cell of a cols x rows screen
func cellFor(position mgl64.Vec3, a arena.Config, cols, rows int) (int, int) {
	x := int(position.X() / a.Width * float64(cols))
	y := int(position.Y() / a.Height * float64(rows))

	return min(max(x, 0), cols-1), min(max(y, 0), rows-1)
}

func statsLines(stats particles.Stats, bounces, resets int) []string {
	return []string{
		fmt.Sprintf("particles %d", stats.Count),
		fmt.Sprintf("mean vx %.2f m/s", stats.MeanVelocityX),
		fmt.Sprintf("mean vy %.2f m/s", stats.MeanVelocityY),
		fmt.Sprintf("altitude %.1f/%.1f m", stats.MeanAltitudeMeters, stats.HeightMeters),
		fmt.Sprintf("bounces %d resets %d", bounces, resets),
		"space spawn  r respawn  q quit",
	}
}

func (s *simulation) draw() {
	s.screen.Clear()
	cols, rows := s.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}

	for x := range cols {
		s.screen.SetContent(x, rows-1, '▔', nil, groundStyle)
	}

	for _, p := range s.world.Particles {
		x, y := cellFor(p.Position, s.world.Arena, cols, rows)
		s.screen.SetContent(x, y, '●', nil, particleStyle)
	}

	for i, line := range statsLines(s.world.Stats(), s.bounces, s.resets) {
		drawText(s.screen, cols-len(line)-1, i, line, panelStyle)
	}

	s.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
