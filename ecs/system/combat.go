package system

import (
	"errors"

	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"go.uber.org/zap"
)

// CombatSystem resolves the attacks queued this tick. Damage comes from the
// attacker's weapon when it has one, otherwise from the combatant itself.
type CombatSystem struct {
	logger *zap.Logger
}

func NewCombatSystem(logger *zap.Logger) *CombatSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CombatSystem{logger: logger}
}

func (s *CombatSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().DrainType(ecs.EventAttack) {
		atk, ok := evt.Data.(ecs.Attack)
		if !ok {
			continue
		}
		s.resolve(w, atk)
	}
}

func (s *CombatSystem) resolve(w *ecs.World, atk ecs.Attack) {
	if !w.IsAlive(atk.Attacker) || !w.IsAlive(atk.Target) {
		return
	}
	target, ok := ecs.Get(w, atk.Target, component.CombatantComponent)
	if !ok || target.HasDied() {
		return
	}

	damage, ok := s.damage(w, atk)
	if !ok {
		return
	}

	target.TakeDamage(damage)
	s.logger.Debug("combat: hit",
		zap.Stringer("attacker", atk.Attacker),
		zap.Stringer("target", atk.Target),
		zap.Float64("damage", damage),
		zap.Float64("health", target.Health),
	)

	if target.HasDied() {
		w.Events().Push(ecs.Event{
			Type: ecs.EventDeath,
			Data: ecs.Death{Entity: atk.Target, Killer: atk.Attacker},
		})
	}
}

func (s *CombatSystem) damage(w *ecs.World, atk ecs.Attack) (float64, bool) {
	if weapon, ok := ecs.Get(w, atk.Attacker, component.WeaponComponent); ok {
		return weapon.Fire(atk.At)
	}

	attacker, ok := ecs.Get(w, atk.Attacker, component.CombatantComponent)
	if !ok {
		return 0, false
	}
	damage, err := attacker.DealDamage()
	if err != nil {
		if errors.Is(err, component.ErrNotImplemented) {
			s.logger.Warn("combat: attacker cannot deal damage", zap.Stringer("attacker", atk.Attacker), zap.Error(err))
		}
		return 0, false
	}
	return damage, true
}
