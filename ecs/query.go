package ecs

import (
	"slices"

	"github.com/milk9111/peanut/ecs/component"
)

// Query returns live entities that have every listed component, in slot order.
func (w *World) Query(kinds ...component.ComponentID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.stores[k]
		if s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate smallest set
	slices.SortFunc(sets, func(a, b *SparseSet) int { return a.Len() - b.Len() })

	ids := make([]entityID, 0, sets[0].Len())
outer:
	for _, id := range sets[0].ids() {
		for _, other := range sets[1:] {
			if !other.Has(id) {
				continue outer
			}
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := w.entities.resolve(id); ok {
			out = append(out, e)
		}
	}
	return out
}
