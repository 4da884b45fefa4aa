// Package ecs bridges thicket's event routing into a [Donburi] world.
//
// [NewDonburiStore] returns a thicket.EntityStore. Once it is set on a
// Stage, every event routed to a control with a non-zero EntityID is
// published as a [RoutedEventType] event, optionally narrowed to a set of
// event kinds:
//
//	stage.SetEntityStore(ecs.NewDonburiStore(world, thicket.EventClick, thicket.EventDragEnd))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
