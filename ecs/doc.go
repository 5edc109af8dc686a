// Package ecs bridges kinetic animation and gesture events into a
// [Donburi] world.
//
// [NewStore] implements kinetic.EventStore. Install it on the engine and
// subscribe to [AnimationEventType] and [GestureEventType] in ECS systems:
//
//	store := ecs.NewStore(world)
//	engine.SetEventStore(store)
//	store.Attach(entry, el)
//
// Events are queued by Donburi until ProcessEvents runs.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
