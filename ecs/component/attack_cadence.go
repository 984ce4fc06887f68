package component

import (
	"time"

	"golang.org/x/time/rate"
)

// DefaultAttacksPerSecond applies when an agent carries no weapon.
const DefaultAttacksPerSecond = 1.0

var simEpoch = time.Unix(0, 0)

// AttackCadence gates how often an attacking agent may strike. It runs on
// simulation seconds, not the wall clock.
type AttackCadence struct {
	limiter *rate.Limiter
}

func NewAttackCadence(perSecond float64) AttackCadence {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Limit(DefaultAttacksPerSecond)
	}
	return AttackCadence{limiter: rate.NewLimiter(limit, 1)}
}

// Allow consumes one attack if the cadence permits one at simulation time now.
func (c *AttackCadence) Allow(now float64) bool {
	if c == nil || c.limiter == nil {
		return true
	}
	return c.limiter.AllowN(simTime(now), 1)
}

func simTime(seconds float64) time.Time {
	return simEpoch.Add(time.Duration(seconds * float64(time.Second)))
}

var AttackCadenceComponent = NewComponent[AttackCadence]()
