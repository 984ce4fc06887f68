package component

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotImplemented = errors.New("combat: not implemented for this kind")

// EntityKind tags a combatant variant. Behaviour is dispatched on it instead
// of through a type hierarchy.
type EntityKind uint8

const (
	KindPlayer EntityKind = iota + 1
	KindEnemy
	KindScout
)

func ParseEntityKind(name string) (EntityKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "player":
		return KindPlayer, nil
	case "enemy":
		return KindEnemy, nil
	case "scout":
		return KindScout, nil
	}
	return 0, fmt.Errorf("unknown entity kind %q", name)
}

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindScout:
		return "scout"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Combatant is anything that can deal damage, take damage, and die.
type Combatant struct {
	Kind      EntityKind
	Health    float64
	MaxHealth float64
	Damage    float64
}

// DealDamage returns the damage this combatant deals unarmed.
func (c *Combatant) DealDamage() (float64, error) {
	if c == nil {
		return 0, ErrNotImplemented
	}
	switch c.Kind {
	case KindPlayer, KindEnemy:
		return c.Damage, nil
	case KindScout:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: deal damage (%v)", ErrNotImplemented, c.Kind)
	}
}

// TakeDamage lowers health, never below zero. Scouts shrug damage off.
func (c *Combatant) TakeDamage(amount float64) {
	if c == nil || amount <= 0 {
		return
	}
	switch c.Kind {
	case KindPlayer, KindEnemy:
		c.Health -= amount
		if c.Health < 0 {
			c.Health = 0
		}
	}
}

func (c *Combatant) HasDied() bool {
	if c == nil {
		return false
	}
	switch c.Kind {
	case KindPlayer, KindEnemy, KindScout:
		return c.Health <= 0
	}
	return false
}

var CombatantComponent = NewComponent[Combatant]()
