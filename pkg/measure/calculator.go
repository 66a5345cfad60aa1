// Package measure turns front and side landmark sets into body measurements.
//
// Calibrate derives a centimeter-per-pixel scale from the subject's height.
// Linear measurements (shoulder width, sleeves, inseam, outseam) are path
// lengths in the front view. Circumferences model a cross-section as an ellipse
// whose semi-axes come from front-view width and side-view depth.
//
// Every function is pure: no I/O, no logging, no shared state.
package measure

import (
	"github.com/menta2k/mfit/pkg/types"
)

// CalculateAll computes every measurement with the default coefficients.
func CalculateAll(front, side types.LandmarkSet, heightCm float64) (types.MeasurementSet, error) {
	return New().CalculateAll(front, side, heightCm)
}

// CalculateAll calibrates once, then runs every linear and circumference
// measurement against that scale. The first failure aborts the run and no
// partial set is returned.
func (c *Calculator) CalculateAll(front, side types.LandmarkSet, heightCm float64) (types.MeasurementSet, error) {
	scale, err := Calibrate(front, heightCm)
	if err != nil {
		return types.MeasurementSet{}, err
	}

	steps := []struct {
		m  types.Measurement
		fn func() (float64, error)
	}{
		{types.ShoulderWidth, func() (float64, error) { return ShoulderWidth(front, scale) }},
		{types.LeftSleeveLength, func() (float64, error) { return SleeveLength(front, scale, types.Left) }},
		{types.RightSleeveLength, func() (float64, error) { return SleeveLength(front, scale, types.Right) }},
		{types.Inseam, func() (float64, error) { return Inseam(front, scale) }},
		{types.Outseam, func() (float64, error) { return Outseam(front, scale) }},
		{types.NeckCircumference, func() (float64, error) { return c.Neck(front, side, scale) }},
		{types.ChestCircumference, func() (float64, error) { return c.Chest(front, side, scale) }},
		{types.WaistCircumference, func() (float64, error) { return c.Waist(front, side, scale) }},
		{types.HipCircumference, func() (float64, error) { return c.Hip(front, side, scale) }},
		{types.LeftBicepCircumference, func() (float64, error) { return c.Bicep(front, side, scale, types.Left) }},
		{types.RightBicepCircumference, func() (float64, error) { return c.Bicep(front, side, scale, types.Right) }},
		{types.LeftThighCircumference, func() (float64, error) { return c.Thigh(front, side, scale, types.Left) }},
		{types.RightThighCircumference, func() (float64, error) { return c.Thigh(front, side, scale, types.Right) }},
	}

	values := make(map[types.Measurement]float64, types.NumMeasurements)
	values[types.Height] = heightCm
	for _, step := range steps {
		v, err := step.fn()
		if err != nil {
			return types.MeasurementSet{}, wrapMeasurement(step.m, err)
		}
		values[step.m] = v
	}

	return types.NewMeasurementSet(values)
}
