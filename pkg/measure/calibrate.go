package measure

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/menta2k/mfit/pkg/types"
)

// Scale is the real-world length in centimeters covered by one pixel.
type Scale float64

// Length converts a pixel length to centimeters
func (s Scale) Length(px float64) float64 {
	return px * float64(s)
}

// Calibrate derives the centimeter-per-pixel scale from the subject's height
// and the vertical extent of every front landmark. The topmost and bottommost
// detected points define the extent, whatever their names.
func Calibrate(front types.LandmarkSet, heightCm float64) (Scale, error) {
	if len(front) == 0 {
		return 0, invalidInput("front landmark set is empty")
	}
	if !(heightCm > 0) || math.IsInf(heightCm, 0) {
		return 0, invalidInput("height must be positive, got %v", heightCm)
	}

	ys := make([]float64, 0, len(front))
	for l, p := range front {
		if !finite(p) {
			return 0, invalidInput("landmark %s has non-finite coordinates (%v, %v)", l, p.X, p.Y)
		}
		ys = append(ys, p.Y)
	}

	heightPx := floats.Max(ys) - floats.Min(ys)
	if heightPx <= 0 {
		return 0, invalidInput("height in pixels must be positive, got %v", heightPx)
	}

	return Scale(heightCm / heightPx), nil
}

func finite(p types.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
