package ecs

import (
	"github.com/phanxgames/kinetic"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AnimationEvent is an animation lifecycle event with the entity owning
// the animated element, or donburi.Null if the element is not attached.
type AnimationEvent struct {
	Entity donburi.Entity
	kinetic.LifecycleEvent
}

// GestureEvent is a recognized gesture on an attached element.
type GestureEvent struct {
	Entity  donburi.Entity
	Element uint64
	kinetic.GestureEvent
}

// AnimationEventType carries animation lifecycle events.
var AnimationEventType = events.NewEventType[AnimationEvent]()

// GestureEventType carries gesture events of mounted elements.
var GestureEventType = events.NewEventType[GestureEvent]()

// ElementData links an entity to its animated element.
type ElementData struct {
	Element *kinetic.Element
}

// Element is the component holding an entity's element.
var Element = donburi.NewComponentType[ElementData]()

// Store publishes kinetic events into a Donburi world.
type Store struct {
	world    donburi.World
	entities map[uint64]donburi.Entity
}

// NewStore returns a store publishing into world.
func NewStore(world donburi.World) *Store {
	return &Store{world: world, entities: map[uint64]donburi.Entity{}}
}

// Attach links entry to el. entry gains the Element component if it lacks
// it.
func (s *Store) Attach(entry *donburi.Entry, el *kinetic.Element) {
	if !entry.HasComponent(Element) {
		entry.AddComponent(Element)
	}
	Element.SetValue(entry, ElementData{Element: el})
	s.entities[el.ID()] = entry.Entity()
}

// Detach forgets the entity linked to el.
func (s *Store) Detach(el *kinetic.Element) {
	delete(s.entities, el.ID())
}

// Entity returns the entity linked to the element id.
func (s *Store) Entity(element uint64) (donburi.Entity, bool) {
	e, ok := s.entities[element]
	return e, ok
}

func (s *Store) entity(element uint64) donburi.Entity {
	if e, ok := s.entities[element]; ok {
		return e
	}
	return donburi.Null
}

// EmitAnimation implements kinetic.EventStore.
func (s *Store) EmitAnimation(ev kinetic.LifecycleEvent) {
	AnimationEventType.Publish(s.world, AnimationEvent{Entity: s.entity(ev.Element), LifecycleEvent: ev})
}

// EmitGesture implements kinetic.EventStore.
func (s *Store) EmitGesture(element uint64, ev kinetic.GestureEvent) {
	GestureEventType.Publish(s.world, GestureEvent{Entity: s.entity(element), Element: element, GestureEvent: ev})
}

var _ kinetic.EventStore = (*Store)(nil)
