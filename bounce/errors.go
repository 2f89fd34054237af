package bounce

import (
	"errors"
	"fmt"
)

// ErrCalculationDepthExceeded is returned when the reflections of a particle against the
// arena walls did not settle within the iteration limit
var ErrCalculationDepthExceeded = errors.New("bounce calculation depth exceeded")

// OutOfBoundsError reports a particle whose position was already outside the arena
// before any bounce was computed
type OutOfBoundsError struct {
	X float64
	Y float64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("object's location (X=%v,Y=%v) is out of bounds", e.X, e.Y)
}
