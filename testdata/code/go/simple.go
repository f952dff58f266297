package shapes

import "math"

// Area returns the area of a circle with the given radius.
func Area(radius float64) float64 {
	if radius < 0 {
		panic("negative radius")
	}
	return math.Pi * radius * radius
}
