// Package geometry holds the point arithmetic shared by the measurement code.
package geometry

import (
	"math"

	"github.com/menta2k/mfit/pkg/types"
)

// Distance returns the Euclidean distance between two points
func Distance(p1, p2 types.Point) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the arithmetic mean of two points
func Midpoint(p1, p2 types.Point) types.Point {
	return types.Point{
		X: (p1.X + p2.X) / 2,
		Y: (p1.Y + p2.Y) / 2,
	}
}

// PathLength sums the distances between consecutive points
func PathLength(points ...types.Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}
