package measure

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/menta2k/mfit/pkg/geometry"
	"github.com/menta2k/mfit/pkg/types"
)

// EllipseCircumference approximates the perimeter of an ellipse with semi-axes
// a and b using Ramanujan's second formula. It is exact for a circle.
func EllipseCircumference(a, b float64) float64 {
	return math.Pi * (3*(a+b) - math.Sqrt((3*a+b)*(a+3*b)))
}

// crossSection evaluates the ellipse for a pixel width and depth. The semi-axes
// are converted to centimeters before the formula is applied.
func crossSection(widthPx, depthPx float64, scale Scale) float64 {
	a := scale.Length(widthPx / 2)
	b := scale.Length(depthPx / 2)
	return EllipseCircumference(a, b)
}

// bandDepth returns the x range of every side-view landmark whose y lies
// strictly within tol of targetY. When no landmark falls in the band the
// fallback depth is returned.
func bandDepth(side types.LandmarkSet, targetY, tol, fallback float64) float64 {
	xs := make([]float64, 0, len(side))
	for _, p := range side {
		if math.Abs(p.Y-targetY) < tol {
			xs = append(xs, p.X)
		}
	}
	if len(xs) == 0 {
		return fallback
	}
	return floats.Max(xs) - floats.Min(xs)
}

// Calculator computes circumferences with a fixed set of coefficients. It
// holds no mutable state and is safe for concurrent use.
type Calculator struct {
	coeff Coefficients
}

// New creates a Calculator with the default coefficients
func New() *Calculator {
	return &Calculator{coeff: DefaultCoefficients()}
}

// NewWithConfig creates a Calculator with custom coefficients. Every ratio
// must be positive.
func NewWithConfig(coeff Coefficients) (*Calculator, error) {
	if err := coeff.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &Calculator{coeff: coeff}, nil
}

// Coefficients returns the ratios in use
func (c *Calculator) Coefficients() Coefficients {
	return c.coeff
}

// Neck scales shoulder width for the neck width and the side-view shoulder
// spread for its depth. A depth below NeckMinDepthRatio of the width is
// replaced by NeckFallbackDepthRatio of the width.
func (c *Calculator) Neck(front, side types.LandmarkSet, scale Scale) (float64, error) {
	if err := requireLandmarks(front, FrontView, types.LeftShoulder, types.RightShoulder); err != nil {
		return 0, err
	}
	if err := requireLandmarks(side, SideView, types.LeftShoulder, types.RightShoulder); err != nil {
		return 0, err
	}

	width := geometry.Distance(front[types.LeftShoulder], front[types.RightShoulder]) * c.coeff.NeckWidthRatio

	spread := math.Abs(side[types.LeftShoulder].X - side[types.RightShoulder].X)
	depth := spread * c.coeff.NeckDepthRatio
	if depth < width*c.coeff.NeckMinDepthRatio {
		depth = width * c.coeff.NeckFallbackDepthRatio
	}

	return crossSection(width, depth, scale), nil
}

// Chest widens shoulder width and band-searches the side view around shoulder
// height, with the tolerance tied to the shoulder-to-hip gap.
func (c *Calculator) Chest(front, side types.LandmarkSet, scale Scale) (float64, error) {
	if err := requireLandmarks(front, FrontView, types.LeftShoulder, types.RightShoulder); err != nil {
		return 0, err
	}
	if err := requireLandmarks(side, SideView, types.LeftShoulder, types.RightShoulder, types.LeftHip); err != nil {
		return 0, err
	}

	width := geometry.Distance(front[types.LeftShoulder], front[types.RightShoulder]) * c.coeff.ChestWidthRatio

	ls, rs := side[types.LeftShoulder], side[types.RightShoulder]
	level := geometry.Midpoint(ls, rs).Y
	tol := math.Abs(ls.Y-side[types.LeftHip].Y) * c.coeff.ChestBandRatio
	depth := bandDepth(side, level, tol, math.Abs(ls.X-rs.X))

	return crossSection(width, depth, scale), nil
}

// Waist uses hip width and band-searches around hip height, with the tolerance
// tied to the hip-to-shoulder gap.
func (c *Calculator) Waist(front, side types.LandmarkSet, scale Scale) (float64, error) {
	if err := requireLandmarks(front, FrontView, types.LeftHip, types.RightHip); err != nil {
		return 0, err
	}
	if err := requireLandmarks(side, SideView, types.LeftHip, types.RightHip, types.LeftShoulder); err != nil {
		return 0, err
	}

	width := geometry.Distance(front[types.LeftHip], front[types.RightHip])

	lh, rh := side[types.LeftHip], side[types.RightHip]
	level := geometry.Midpoint(lh, rh).Y
	tol := math.Abs(lh.Y-side[types.LeftShoulder].Y) * c.coeff.WaistBandRatio
	depth := bandDepth(side, level, tol, math.Abs(lh.X-rh.X))

	return crossSection(width, depth, scale), nil
}

// Hip uses hip width and band-searches around hip height, with the tolerance
// tied to the hip-to-knee gap.
func (c *Calculator) Hip(front, side types.LandmarkSet, scale Scale) (float64, error) {
	if err := requireLandmarks(front, FrontView, types.LeftHip, types.RightHip); err != nil {
		return 0, err
	}
	if err := requireLandmarks(side, SideView, types.LeftHip, types.RightHip, types.LeftKnee); err != nil {
		return 0, err
	}

	width := geometry.Distance(front[types.LeftHip], front[types.RightHip])

	lh, rh := side[types.LeftHip], side[types.RightHip]
	level := geometry.Midpoint(lh, rh).Y
	tol := math.Abs(lh.Y-side[types.LeftKnee].Y) * c.coeff.HipBandRatio
	depth := bandDepth(side, level, tol, math.Abs(lh.X-rh.X))

	return crossSection(width, depth, scale), nil
}

// Bicep scales the upper arm length in each view.
func (c *Calculator) Bicep(front, side types.LandmarkSet, scale Scale, s types.Side) (float64, error) {
	return c.limb(front, side, scale, s.Shoulder(), s.Elbow(), c.coeff.BicepRatio)
}

// Thigh scales the hip-to-knee length in each view.
func (c *Calculator) Thigh(front, side types.LandmarkSet, scale Scale, s types.Side) (float64, error) {
	return c.limb(front, side, scale, s.Hip(), s.Knee(), c.coeff.ThighRatio)
}

func (c *Calculator) limb(front, side types.LandmarkSet, scale Scale, from, to types.Landmark, ratio float64) (float64, error) {
	if err := requireLandmarks(front, FrontView, from, to); err != nil {
		return 0, err
	}
	if err := requireLandmarks(side, SideView, from, to); err != nil {
		return 0, err
	}
	width := geometry.Distance(front[from], front[to]) * ratio
	depth := geometry.Distance(side[from], side[to]) * ratio
	return crossSection(width, depth, scale), nil
}
