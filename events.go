package particles

import "github.com/akmonengine/particles/actor"

const (
	PARTICLE_BOUNCE EventType = iota
	PARTICLE_CLAMP
	PARTICLE_RESET
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// BounceEvent is sent when a particle bounced at least once during a step
type BounceEvent struct {
	Particle *actor.Particle
	Bounces  int
}

func (e BounceEvent) Type() EventType { return PARTICLE_BOUNCE }

// ClampEvent is sent when a particle was snapped back inside the arena
type ClampEvent struct {
	Particle *actor.Particle
}

func (e ClampEvent) Type() EventType { return PARTICLE_CLAMP }

// ResetEvent is sent when a particle could not be resolved and was respawned
type ResetEvent struct {
	Particle *actor.Particle
	Err      error
}

func (e ResetEvent) Type() EventType { return PARTICLE_RESET }

// EventListener - callback for events
type EventListener func(event Event)

// Events buffers the events of a step and dispatches them to listeners on flush.
// The zero value is ready to use.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	if len(e.listeners[event.Type()]) == 0 {
		return
	}
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	clear(e.buffer)
	e.buffer = e.buffer[:0]
}
