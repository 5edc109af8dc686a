package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var elementQuery = donburi.NewQuery(filter.Contains(Element))

// Prune detaches and removes the Element component from entities whose
// element was disposed. It returns the number pruned.
func (s *Store) Prune() int {
	var stale []*donburi.Entry
	elementQuery.Each(s.world, func(entry *donburi.Entry) {
		if el := Element.Get(entry).Element; el == nil || el.Disposed() {
			stale = append(stale, entry)
		}
	})
	for _, entry := range stale {
		if el := Element.Get(entry).Element; el != nil {
			s.Detach(el)
		}
		entry.RemoveComponent(Element)
	}
	return len(stale)
}
