package ecs

import (
	"github.com/phanxgames/thicket"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// RoutedEventType carries thicket.RoutedEvent values into a Donburi world.
// An event arrives once per routed delivery to a control whose EntityID is
// set: enter and leave, clicks, drag phases, keys and focus changes.
var RoutedEventType = events.NewEventType[thicket.RoutedEvent]()

type donburiStore struct {
	world donburi.World
	kinds map[thicket.EventKind]bool // nil forwards every kind
}

// NewDonburiStore returns an EntityStore that publishes to RoutedEventType in
// world. With no kinds every routed event is published; otherwise only the
// listed kinds are. Systems drain the queue with RoutedEventType.ProcessEvents
// or events.ProcessAllEvents.
func NewDonburiStore(world donburi.World, kinds ...thicket.EventKind) thicket.EntityStore {
	s := &donburiStore{world: world}
	if len(kinds) > 0 {
		s.kinds = make(map[thicket.EventKind]bool, len(kinds))
		for _, k := range kinds {
			s.kinds[k] = true
		}
	}
	return s
}

func (s *donburiStore) EmitEvent(ev thicket.RoutedEvent) {
	if s.kinds != nil && !s.kinds[ev.Kind] {
		return
	}
	RoutedEventType.Publish(s.world, ev)
}
