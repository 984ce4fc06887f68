package component

import (
	"errors"
	"fmt"
)

var ErrInvalidAI = errors.New("ai: invalid configuration")

// AI holds an agent's static tuning. It is validated once at construction and
// never written afterwards.
type AI struct {
	MoveSpeed          float64
	DetectionRadius    float64
	ViewAngleDegrees   float64
	AttackRange        float64
	TotalDetectionTime float64
	// PollInterval is the delay between visibility polls while detecting.
	PollInterval float64
	TargetLayer  uint32
	// AttackFallback lets an attacking agent drop back to chasing or detecting
	// when its target leaves range or dies.
	AttackFallback bool
}

func (a AI) Validate() error {
	switch {
	case a.MoveSpeed < 0:
		return fmt.Errorf("%w: move speed %v is negative", ErrInvalidAI, a.MoveSpeed)
	case a.DetectionRadius <= 0:
		return fmt.Errorf("%w: detection radius %v must be positive", ErrInvalidAI, a.DetectionRadius)
	case a.ViewAngleDegrees <= 0 || a.ViewAngleDegrees > 360:
		return fmt.Errorf("%w: view angle %v must be in (0, 360]", ErrInvalidAI, a.ViewAngleDegrees)
	case a.AttackRange <= 0:
		return fmt.Errorf("%w: attack range %v must be positive", ErrInvalidAI, a.AttackRange)
	case a.TotalDetectionTime <= 0:
		return fmt.Errorf("%w: detection time %v must be positive", ErrInvalidAI, a.TotalDetectionTime)
	case a.PollInterval <= 0:
		return fmt.Errorf("%w: poll interval %v must be positive", ErrInvalidAI, a.PollInterval)
	case a.TargetLayer == 0:
		return fmt.Errorf("%w: target layer is empty", ErrInvalidAI)
	}
	return nil
}

var AIComponent = NewComponent[AI]()
