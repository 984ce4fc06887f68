package component

import (
	"fmt"
	"strings"
)

type WeaponKind uint8

const (
	WeaponGun WeaponKind = iota + 1
	WeaponMelee
)

func ParseWeaponKind(name string) (WeaponKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gun":
		return WeaponGun, nil
	case "melee":
		return WeaponMelee, nil
	}
	return 0, fmt.Errorf("unknown weapon kind %q", name)
}

func (k WeaponKind) String() string {
	switch k {
	case WeaponGun:
		return "gun"
	case WeaponMelee:
		return "melee"
	default:
		return fmt.Sprintf("weapon(%d)", uint8(k))
	}
}

// Weapon is a tagged weapon variant. Gun fields are ignored for melee and
// vice versa.
type Weapon struct {
	Kind   WeaponKind
	Name   string
	Damage float64

	// gun
	MagSize    int
	CurrentMag int
	FireRate   float64
	ReloadTime float64

	// melee, in swings per second
	MeleeSpeed float64

	reloading   bool
	reloadUntil float64
}

// AttacksPerSecond is the cadence this weapon allows.
func (w *Weapon) AttacksPerSecond() float64 {
	if w == nil {
		return 0
	}
	switch w.Kind {
	case WeaponGun:
		return w.FireRate
	case WeaponMelee:
		return w.MeleeSpeed
	}
	return 0
}

func (w *Weapon) Reloading() bool {
	return w != nil && w.reloading
}

// Fire attempts one attack at simulation time now and returns the damage
// dealt. Guns consume a round and reload when empty; a zero MagSize never runs dry.
func (w *Weapon) Fire(now float64) (float64, bool) {
	if w == nil {
		return 0, false
	}
	switch w.Kind {
	case WeaponMelee:
		return w.Damage, true
	case WeaponGun:
		if w.MagSize <= 0 {
			return w.Damage, true
		}
		if w.reloading {
			if now < w.reloadUntil {
				return 0, false
			}
			w.reloading = false
			w.CurrentMag = w.MagSize
		}
		if w.CurrentMag <= 0 {
			w.startReload(now)
			return 0, false
		}
		w.CurrentMag--
		if w.CurrentMag == 0 {
			w.startReload(now)
		}
		return w.Damage, true
	}
	return 0, false
}

func (w *Weapon) startReload(now float64) {
	w.reloading = true
	w.reloadUntil = now + w.ReloadTime
}

var WeaponComponent = NewComponent[Weapon]()
