package prefabs

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ColliderSpec describes a ground-plane collider: a circle when Radius is
// set, otherwise a Width x Depth box.
type ColliderSpec struct {
	Radius float64 `yaml:"radius"`
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
}

func (c ColliderSpec) validate() error {
	if c.Radius > 0 || (c.Width > 0 && c.Depth > 0) {
		return nil
	}
	return fmt.Errorf("%w: collider needs a radius or a width and depth", ErrInvalidSpec)
}

type EnemySpec struct {
	Name             string       `yaml:"name"`
	Kind             string       `yaml:"kind"`
	Health           float64      `yaml:"health"`
	Damage           float64      `yaml:"damage"`
	MoveSpeed        float64      `yaml:"move_speed"`
	DetectionRadius  float64      `yaml:"detection_radius"`
	ViewAngle        float64      `yaml:"view_angle"`
	AttackRange      float64      `yaml:"attack_range"`
	DetectionTime    float64      `yaml:"detection_time"`
	PollInterval     float64      `yaml:"poll_interval"`
	TargetLayer      string       `yaml:"target_layer"`
	AttackFallback   bool         `yaml:"attack_fallback"`
	AttacksPerSecond float64      `yaml:"attacks_per_second"`
	Weapon           string       `yaml:"weapon"`
	Script           string       `yaml:"script"`
	Collider         ColliderSpec `yaml:"collider"`
}

// Validate checks the fields a spec can get wrong on its own. Ranges that
// depend on the AI model are checked again when the enemy is built.
func (s *EnemySpec) Validate() error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("%w: enemy has no name", ErrInvalidSpec)
	case s.Health <= 0:
		return fmt.Errorf("%w: enemy %s health %v must be positive", ErrInvalidSpec, s.Name, s.Health)
	case s.DetectionTime <= 0:
		return fmt.Errorf("%w: enemy %s detection_time %v must be positive", ErrInvalidSpec, s.Name, s.DetectionTime)
	case s.PollInterval < 0:
		return fmt.Errorf("%w: enemy %s poll_interval %v is negative", ErrInvalidSpec, s.Name, s.PollInterval)
	case strings.TrimSpace(s.TargetLayer) == "":
		return fmt.Errorf("%w: enemy %s has no target_layer", ErrInvalidSpec, s.Name)
	}
	if err := s.Collider.validate(); err != nil {
		return fmt.Errorf("enemy %s: %w", s.Name, err)
	}
	return nil
}

// EffectivePollInterval falls back to the detection time when no interval is set.
func (s *EnemySpec) EffectivePollInterval() float64 {
	if s.PollInterval > 0 {
		return s.PollInterval
	}
	return s.DetectionTime
}

func LoadEnemySpec(filename string) (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name     string       `yaml:"name"`
	Health   float64      `yaml:"health"`
	Damage   float64      `yaml:"damage"`
	Collider ColliderSpec `yaml:"collider"`
}

func (s *PlayerSpec) Validate() error {
	if s.Health <= 0 {
		return fmt.Errorf("%w: player health %v must be positive", ErrInvalidSpec, s.Health)
	}
	return s.Collider.validate()
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: player.yaml: %w", err)
	}
	return &spec, nil
}

type WeaponSpec struct {
	Name       string  `yaml:"name"`
	Kind       string  `yaml:"kind"`
	Damage     float64 `yaml:"damage"`
	MagSize    int     `yaml:"mag_size"`
	FireRate   float64 `yaml:"fire_rate"`
	ReloadTime float64 `yaml:"reload_time"`
	MeleeSpeed float64 `yaml:"melee_speed"`
}

func (s *WeaponSpec) Validate() error {
	switch {
	case s.Damage < 0:
		return fmt.Errorf("%w: weapon %s damage %v is negative", ErrInvalidSpec, s.Name, s.Damage)
	case s.MagSize < 0:
		return fmt.Errorf("%w: weapon %s mag_size %d is negative", ErrInvalidSpec, s.Name, s.MagSize)
	case s.ReloadTime < 0:
		return fmt.Errorf("%w: weapon %s reload_time %v is negative", ErrInvalidSpec, s.Name, s.ReloadTime)
	}
	return nil
}

func LoadWeaponSpec(filename string) (*WeaponSpec, error) {
	spec, err := LoadSpec[WeaponSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}
