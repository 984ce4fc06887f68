package component

import (
	"errors"

	"github.com/milk9111/peanut/common"
)

var ErrEmptyRoute = errors.New("ai: patrol route has no waypoints")

// PatrolRoute is an ordered, read-only loop of waypoints. Several agents may
// share one route.
type PatrolRoute struct {
	Name      string
	Waypoints []common.Vec3
}

func NewPatrolRoute(name string, waypoints ...common.Vec3) (*PatrolRoute, error) {
	if len(waypoints) == 0 {
		return nil, ErrEmptyRoute
	}
	return &PatrolRoute{Name: name, Waypoints: append([]common.Vec3(nil), waypoints...)}, nil
}

func (r *PatrolRoute) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Waypoints)
}

// At returns the waypoint at i, wrapping modulo the route length.
func (r *PatrolRoute) At(i int) common.Vec3 {
	n := len(r.Waypoints)
	return r.Waypoints[((i%n)+n)%n]
}

// Next returns the index after i, wrapping to 0.
func (r *PatrolRoute) Next(i int) int {
	return (i + 1) % len(r.Waypoints)
}

// Patrol attaches a shared route to an agent.
type Patrol struct {
	Route *PatrolRoute
}

var PatrolComponent = NewComponent[Patrol]()
