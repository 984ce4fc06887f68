package common

import "math"

// ArriveDistance is how close an agent must get to a waypoint to count as arrived.
const ArriveDistance = 0.1

// Epsilon absorbs float drift in angle and timer comparisons.
const Epsilon = 1e-9

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
