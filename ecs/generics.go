package ecs

import (
	"fmt"

	"github.com/milk9111/peanut/ecs/component"
)

// Add stores a copy of value on e, replacing any existing component of that kind.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	v := value
	if err := w.addComponent(e, handle.Kind().ID(), &v); err != nil {
		return fmt.Errorf("add %s to %v: %w", handle.Kind().Name(), e, err)
	}
	return nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.removeComponent(e, handle.Kind().ID())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.hasComponent(e, handle.Kind().ID())
}

// Get returns a pointer to the stored component; writes through it are visible
// to every later reader.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	value, ok := w.getComponent(e, handle.Kind().ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok
}

func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(e Entity, a *A, b *B)) {
	for _, e := range w.Query(ha.Kind().ID(), hb.Kind().ID()) {
		a, okA := Get(w, e, ha)
		b, okB := Get(w, e, hb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}
