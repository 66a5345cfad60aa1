package measure

import "fmt"

// Coefficients are the empirical ratios behind the circumference estimates.
// The defaults are provisional and tuned by eye, not taken from anthropometric
// data; change them through configuration rather than code.
type Coefficients struct {
	// NeckWidthRatio scales front shoulder width to neck width.
	NeckWidthRatio float64 `json:"neck_width_ratio"`
	// NeckDepthRatio scales the side-view shoulder x spread to neck depth.
	NeckDepthRatio float64 `json:"neck_depth_ratio"`
	// NeckMinDepthRatio is the depth/width ratio below which the depth is
	// considered degenerate.
	NeckMinDepthRatio float64 `json:"neck_min_depth_ratio"`
	// NeckFallbackDepthRatio replaces a degenerate depth, as a fraction of width.
	NeckFallbackDepthRatio float64 `json:"neck_fallback_depth_ratio"`

	ChestWidthRatio float64 `json:"chest_width_ratio"`
	// Band ratios size the band search tolerance as a fraction of a vertical
	// landmark gap in the side view.
	ChestBandRatio float64 `json:"chest_band_ratio"`
	WaistBandRatio float64 `json:"waist_band_ratio"`
	HipBandRatio   float64 `json:"hip_band_ratio"`

	// BicepRatio scales shoulder-to-elbow length to bicep width and depth.
	BicepRatio float64 `json:"bicep_ratio"`
	// ThighRatio scales hip-to-knee length to thigh width and depth.
	ThighRatio float64 `json:"thigh_ratio"`
}

const (
	DefaultNeckWidthRatio         = 0.30
	DefaultNeckDepthRatio         = 0.30
	DefaultNeckMinDepthRatio      = 0.3
	DefaultNeckFallbackDepthRatio = 0.7
	DefaultChestWidthRatio        = 1.10
	DefaultChestBandRatio         = 0.2
	DefaultWaistBandRatio         = 0.1
	DefaultHipBandRatio           = 0.2
	DefaultBicepRatio             = 0.20
	DefaultThighRatio             = 0.25
)

// DefaultCoefficients returns the stock ratios
func DefaultCoefficients() Coefficients {
	return Coefficients{
		NeckWidthRatio:         DefaultNeckWidthRatio,
		NeckDepthRatio:         DefaultNeckDepthRatio,
		NeckMinDepthRatio:      DefaultNeckMinDepthRatio,
		NeckFallbackDepthRatio: DefaultNeckFallbackDepthRatio,
		ChestWidthRatio:        DefaultChestWidthRatio,
		ChestBandRatio:         DefaultChestBandRatio,
		WaistBandRatio:         DefaultWaistBandRatio,
		HipBandRatio:           DefaultHipBandRatio,
		BicepRatio:             DefaultBicepRatio,
		ThighRatio:             DefaultThighRatio,
	}
}

// Validate checks that every ratio is positive
func (c Coefficients) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"neck_width_ratio", c.NeckWidthRatio},
		{"neck_depth_ratio", c.NeckDepthRatio},
		{"neck_min_depth_ratio", c.NeckMinDepthRatio},
		{"neck_fallback_depth_ratio", c.NeckFallbackDepthRatio},
		{"chest_width_ratio", c.ChestWidthRatio},
		{"chest_band_ratio", c.ChestBandRatio},
		{"waist_band_ratio", c.WaistBandRatio},
		{"hip_band_ratio", c.HipBandRatio},
		{"bicep_ratio", c.BicepRatio},
		{"thigh_ratio", c.ThighRatio},
	}
	for _, f := range fields {
		if !(f.value > 0) {
			return fmt.Errorf("measurement.%s must be positive, got %v", f.name, f.value)
		}
	}
	return nil
}
