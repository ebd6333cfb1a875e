package ldtk

import (
	"fmt"

	"github.com/jakecoffman/cp/v2"
)

// SpawnKind identifies what a spawn event asks the gameplay layer to create.
type SpawnKind int

const (
	SpawnPlayer SpawnKind = iota
	SpawnEnemy
)

func (k SpawnKind) String() string {
	switch k {
	case SpawnPlayer:
		return "player"
	case SpawnEnemy:
		return "enemy"
	}
	return "unknown"
}

// SpawnEvent is a request derived from an entity-layer placement. Events
// are produced in layer-scan then entity-scan order and drained in that
// same order within one tick.
type SpawnEvent struct {
	Kind SpawnKind
	// Name is the enemy archetype; empty for the player.
	Name string
	// Position is in world pixels, Y-up.
	Position cp.Vector
}

// EventQueue is a FIFO of spawn events.
type EventQueue struct {
	items []SpawnEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt SpawnEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all queued events in order and clears the queue.
func (q *EventQueue) Drain() []SpawnEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// WorldOffset returns the level's world position in Y-up pixel space.
func (l *Level) WorldOffset() cp.Vector {
	if l == nil {
		return cp.Vector{}
	}
	return cp.Vector{X: float64(l.WorldX), Y: -float64(l.WorldY)}
}

// ScanEntities walks the level's entity layers in order and queues spawn
// events for the placements it recognizes. An Enemy placement without a
// name field fails the scan at that point.
func ScanEntities(level *Level, q *EventQueue) error {
	if level == nil || q == nil {
		return nil
	}
	offset := level.WorldOffset()
	for i := range level.LayerInstances {
		layer := &level.LayerInstances[i]
		if layer.Type != LayerEntities {
			continue
		}
		for j := range layer.EntityInstances {
			ent := &layer.EntityInstances[j]
			pos := cp.Vector{X: float64(ent.Px[0]), Y: -float64(ent.Px[1])}.Add(offset)
			switch ent.Identifier {
			case "PlayerStart":
				q.Push(SpawnEvent{Kind: SpawnPlayer, Position: pos})
			case "Enemy":
				name, ok := ent.StringField("name")
				if !ok {
					return fmt.Errorf("%w: enemy at %v has no name field", ErrMissingField, ent.Px)
				}
				q.Push(SpawnEvent{Kind: SpawnEnemy, Name: name, Position: pos})
			}
		}
	}
	return nil
}
