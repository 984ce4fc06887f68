package system

import (
	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"go.uber.org/zap"
)

// EventLogSystem writes state changes and deaths to the log. It runs last and
// consumes what the other systems left queued.
type EventLogSystem struct {
	logger *zap.Logger
}

func NewEventLogSystem(logger *zap.Logger) *EventLogSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventLogSystem{logger: logger}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().DrainType(ecs.EventAIStateChanged) {
		change, ok := evt.Data.(ecs.AIStateChanged)
		if !ok {
			continue
		}
		s.logger.Info("agent state changed",
			zap.String("agent", entityName(w, change.Entity)),
			zap.Stringer("from", change.From),
			zap.Stringer("to", change.To),
			zap.Float64("at", change.At),
		)
	}

	for _, evt := range w.Events().DrainType(ecs.EventDeath) {
		death, ok := evt.Data.(ecs.Death)
		if !ok {
			continue
		}
		s.logger.Info("combatant died",
			zap.String("entity", entityName(w, death.Entity)),
			zap.String("killer", entityName(w, death.Killer)),
			zap.Float64("at", w.Elapsed()),
		)
	}
}

func entityName(w *ecs.World, e ecs.Entity) string {
	id, ok := ecs.Get(w, e, component.IdentityComponent)
	if !ok || id.Name == "" {
		return e.String()
	}
	if id.SpawnID == "" {
		return id.Name
	}
	return id.Name + "/" + id.SpawnID
}
