package angle

import "math"

// Normalize wraps an angle in degrees to [0, 360).
func Normalize(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// CircularDistance returns the shortest angular distance between two angles
// in degrees. Result is in [0, 180].
func CircularDistance(a, b int) int {
	d := Normalize(a) - Normalize(b)
	if d < 0 {
		d = -d
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Radians converts degrees to radians, 0=north, increasing clockwise.
func Radians(deg int) float64 {
	return float64(Normalize(deg)) * math.Pi / 180
}

var points = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Point returns the 8-point compass direction closest to deg.
func Point(deg int) string {
	idx := ((Normalize(deg) + 22) / 45) % 8
	return points[idx]
}
