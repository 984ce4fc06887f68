package ecs

import (
	"errors"
	"strings"
	"testing"

	"github.com/milk9111/peanut/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false the second time")
				}
			}
		})
	}
}

func TestSparseWorldRecycledSlotIsNotAlias(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := w.CreateEntity()
	if err := Add(w, old, h, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	w.DestroyEntity(old)

	fresh := w.CreateEntity()
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v and %v", old, fresh)
	}
	if fresh == old {
		t.Fatalf("recycled handle must differ by generation")
	}
	if Has(w, fresh, h) {
		t.Fatalf("component leaked across recycled slot")
	}
	err := Add(w, old, h, 2)
	if !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
	if !strings.Contains(err.Error(), "add int to "+old.String()) {
		t.Fatalf("error should name the component and entity, got %v", err)
	}
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()
	h3 := component.NewComponent[float64]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1, 10) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1)
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2, "a"); err != nil {
					return err
				}
				return Add(w, e2, h2, "b")
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2) || !Has(w, e2, h2) {
					t.Fatalf("expected both entities to have string component")
				}
				if Has(w, e3, h2) {
					t.Fatalf("e3 should not have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, h2) },
		},
		{
			name:  "pointer_writes_persist",
			setup: func() error { return Add(w, e1, h3, 1.5) },
			check: func(t *testing.T) {
				v, _ := Get(w, e1, h3)
				*v = 2.5
				again, _ := Get(w, e1, h3)
				if *again != 2.5 {
					t.Fatalf("expected write-through, got %v", *again)
				}
			},
			teardown: func() bool { return Remove(w, e1, h3) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown should remove component")
			}
		})
	}

	t.Run("query_intersection", func(t *testing.T) {
		_ = Add(w, e1, h1, 1)
		_ = Add(w, e2, h1, 2)
		_ = Add(w, e3, h1, 3)
		_ = Add(w, e3, h2, "c")

		got := w.Query(h1.Kind().ID(), h2.Kind().ID())
		want := toSet([]Entity{e2, e3})
		if len(got) != len(want) {
			t.Fatalf("expected %d entities, got %v", len(want), got)
		}
		for _, e := range got {
			if _, ok := want[e]; !ok {
				t.Fatalf("unexpected entity %v in query", e)
			}
		}
		if got[0] != e2 {
			t.Fatalf("query must be in slot order, got %v", got)
		}
	})

	t.Run("destroy_clears_components", func(t *testing.T) {
		w.DestroyEntity(e2)
		for _, e := range w.Query(h1.Kind().ID()) {
			if e == e2 {
				t.Fatalf("destroyed entity still returned by query")
			}
		}
	})
}

func TestWorldClockAndEvents(t *testing.T) {
	w := NewWorld()
	var seen []float64
	w.AddSystem(systemFunc(func(w *World) {
		seen = append(seen, w.Delta())
		w.Events().Push(Event{Type: EventAttack})
		w.Events().Push(Event{Type: EventAIStateChanged})
		if got := w.Events().DrainType(EventAttack); len(got) != 1 {
			t.Fatalf("expected one attack event, got %d", len(got))
		}
		if w.Events().Len() != 1 {
			t.Fatalf("non-matching events must stay queued")
		}
	}))

	w.Update(0.5)
	w.Update(0.25)
	w.Update(-1)

	if w.Elapsed() != 0.75 {
		t.Fatalf("expected elapsed 0.75, got %v", w.Elapsed())
	}
	if w.Ticks() != 3 {
		t.Fatalf("expected 3 ticks, got %d", w.Ticks())
	}
	if len(seen) != 3 || seen[2] != 0 {
		t.Fatalf("negative dt must clamp to zero, got %v", seen)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("events must be flushed at end of tick")
	}
}

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestSchedulerRunsInOrderAndSeesEarlierEvents(t *testing.T) {
	s := NewScheduler()
	s.Add(nil)

	var order []string
	s.Add(systemFunc(func(w *World) {
		order = append(order, "first")
		w.Events().Push(Event{Type: EventDeath})
	}))
	s.Add(systemFunc(func(w *World) {
		order = append(order, "second")
		if w.Events().Len() != 1 {
			t.Fatalf("later system should see the event pushed earlier in the tick")
		}
	}))

	if s.Len() != 2 {
		t.Fatalf("nil systems must be ignored, got %d", s.Len())
	}
	s.Update(NewWorld())
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected order %v", order)
	}
}
