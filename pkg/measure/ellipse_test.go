package measure

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/mfit/pkg/geometry"
	"github.com/menta2k/mfit/pkg/types"
)

func TestEllipseCircumferenceCircle(t *testing.T) {
	for _, r := range []float64{0.5, 1, 7.25, 42, 1000} {
		got := EllipseCircumference(r, r)
		want := 2 * math.Pi * r
		assert.InEpsilon(t, want, got, 1e-6, "r=%v", r)
	}
	assert.Equal(t, 0.0, EllipseCircumference(0, 0))
}

func TestEllipseCircumferenceMonotonic(t *testing.T) {
	for _, fixed := range []float64{0, 1, 10, 55.5} {
		prevA, prevB := EllipseCircumference(0, fixed), EllipseCircumference(fixed, 0)
		for v := 0.25; v <= 100; v += 0.25 {
			a := EllipseCircumference(v, fixed)
			b := EllipseCircumference(fixed, v)
			assert.GreaterOrEqual(t, a, prevA-1e-12, "a=%v b=%v", v, fixed)
			assert.GreaterOrEqual(t, b, prevB-1e-12, "a=%v b=%v", fixed, v)
			prevA, prevB = a, b
		}
	}
}

func TestEllipseCircumferenceSymmetric(t *testing.T) {
	assert.Equal(t, EllipseCircumference(12, 4), EllipseCircumference(4, 12))
}

func TestDefaultCoefficientsPinned(t *testing.T) {
	c := DefaultCoefficients()
	assert.Equal(t, 0.30, c.NeckWidthRatio)
	assert.Equal(t, 0.30, c.NeckDepthRatio)
	assert.Equal(t, 0.3, c.NeckMinDepthRatio)
	assert.Equal(t, 0.7, c.NeckFallbackDepthRatio)
	assert.Equal(t, 1.10, c.ChestWidthRatio)
	assert.Equal(t, 0.2, c.ChestBandRatio)
	assert.Equal(t, 0.1, c.WaistBandRatio)
	assert.Equal(t, 0.2, c.HipBandRatio)
	assert.Equal(t, 0.20, c.BicepRatio)
	assert.Equal(t, 0.25, c.ThighRatio)
	require.NoError(t, c.Validate())

	assert.Equal(t, c, New().Coefficients())
}

func TestCoefficientsValidate(t *testing.T) {
	c := DefaultCoefficients()
	c.HipBandRatio = 0
	assert.ErrorContains(t, c.Validate(), "hip_band_ratio")

	c = DefaultCoefficients()
	c.ThighRatio = math.NaN()
	assert.Error(t, c.Validate())
}

func TestBandDepth(t *testing.T) {
	side := types.LandmarkSet{
		types.LeftShoulder:  {X: 200, Y: 200},
		types.RightShoulder: {X: 210, Y: 205},
		types.LeftElbow:     {X: 260, Y: 215},
		types.Nose:          {X: 400, Y: 20},
	}

	assert.Equal(t, 60.0, bandDepth(side, 202.5, 20, -1))
	// The band is strict: a point exactly tol away is outside.
	assert.Equal(t, 10.0, bandDepth(side, 202.5, 12.5, -1))
	assert.Equal(t, -1.0, bandDepth(side, 600, 20, -1))
	assert.Equal(t, 7.0, bandDepth(side, 202.5, 0, 7))
}

func TestChestFallsBackWithoutBandPoints(t *testing.T) {
	front := frontPose()
	// Shoulders sit 100 px either side of their mean while the band is only
	// 0.2 * |100 - 400| = 60 px wide, and every other point is far away.
	side := types.LandmarkSet{
		types.Nose:          {X: 500, Y: 0},
		types.LeftShoulder:  {X: 180, Y: 100},
		types.RightShoulder: {X: 240, Y: 300},
		types.LeftHip:       {X: 190, Y: 400},
		types.RightHip:      {X: 200, Y: 410},
		types.LeftKnee:      {X: 195, Y: 700},
	}
	scale := Scale(0.2)

	got, err := New().Chest(front, side, scale)
	require.NoError(t, err)

	width := 200 * DefaultChestWidthRatio
	want := EllipseCircumference(scale.Length(width/2), scale.Length(60.0/2))
	assert.InDelta(t, want, got, 1e-9)
}

func TestChestBandSearch(t *testing.T) {
	front := frontPose()
	side := sidePose()
	side[types.LeftElbow] = types.Point{X: 260, Y: 215}
	scale := Scale(0.2)

	got, err := New().Chest(front, side, scale)
	require.NoError(t, err)

	// band: level 202.5, tol 60; points in band are both shoulders and the elbow.
	depth := 260.0 - 200.0
	want := EllipseCircumference(scale.Length(220.0/2), scale.Length(depth/2))
	assert.InDelta(t, want, got, 1e-9)
}

func TestWaistAndHipBands(t *testing.T) {
	front := frontPose()
	side := sidePose()
	side[types.LeftWrist] = types.Point{X: 215, Y: 460}
	side[types.RightWrist] = types.Point{X: 220, Y: 462}
	scale := Scale(0.25)
	calc := New()

	// waist tol = 0.1 * |500 - 200| = 30 around y=501: both hips only.
	waist, err := calc.Waist(front, side, scale)
	require.NoError(t, err)
	assert.InDelta(t, EllipseCircumference(scale.Length(60), scale.Length(5)), waist, 1e-9)

	// hip tol = 0.2 * |500 - 750| = 50 around y=501: wrists at 460/462 join the hips.
	hip, err := calc.Hip(front, side, scale)
	require.NoError(t, err)
	assert.InDelta(t, EllipseCircumference(scale.Length(60), scale.Length((220.0-195.0)/2)), hip, 1e-9)
}

func TestNeckDepthFloor(t *testing.T) {
	front := frontPose()
	scale := Scale(0.2)
	width := 200 * DefaultNeckWidthRatio

	// Side shoulders 10 px apart give depth 3 px, below 0.3 * 60 = 18 px.
	got, err := New().Neck(front, sidePose(), scale)
	require.NoError(t, err)
	want := EllipseCircumference(scale.Length(width/2), scale.Length(width*0.7/2))
	assert.InDelta(t, want, got, 1e-9)

	// A wide spread keeps the measured depth.
	side := sidePose()
	side[types.RightShoulder] = types.Point{X: 300, Y: 205}
	got, err = New().Neck(front, side, scale)
	require.NoError(t, err)
	want = EllipseCircumference(scale.Length(width/2), scale.Length(100*0.3/2))
	assert.InDelta(t, want, got, 1e-9)
}

func TestLimbCircumferences(t *testing.T) {
	front, side := frontPose(), sidePose()
	scale := Scale(0.2)
	calc := New()

	bicep, err := calc.Bicep(front, side, scale, types.Left)
	require.NoError(t, err)
	w := geometry.Distance(front[types.LeftShoulder], front[types.LeftElbow]) * 0.20
	d := geometry.Distance(side[types.LeftShoulder], side[types.LeftElbow]) * 0.20
	assert.InDelta(t, EllipseCircumference(scale.Length(w/2), scale.Length(d/2)), bicep, 1e-9)

	thigh, err := calc.Thigh(front, side, scale, types.Right)
	require.NoError(t, err)
	w = geometry.Distance(front[types.RightHip], front[types.RightKnee]) * 0.25
	d = geometry.Distance(side[types.RightHip], side[types.RightKnee]) * 0.25
	assert.InDelta(t, EllipseCircumference(scale.Length(w/2), scale.Length(d/2)), thigh, 1e-9)
}

func TestCustomCoefficients(t *testing.T) {
	c := DefaultCoefficients()
	c.ThighRatio = 0.5
	front, side := frontPose(), sidePose()

	base, err := New().Thigh(front, side, 1, types.Left)
	require.NoError(t, err)
	calc, err := NewWithConfig(c)
	require.NoError(t, err)
	doubled, err := calc.Thigh(front, side, 1, types.Left)
	require.NoError(t, err)

	// Both semi-axes double, and the formula is homogeneous of degree one.
	assert.InDelta(t, 2*base, doubled, 1e-9)
}

func TestNewWithConfigRejectsBadCoefficients(t *testing.T) {
	for name, mutate := range map[string]func(*Coefficients){
		"zero":     func(c *Coefficients) { c.ChestBandRatio = 0 },
		"nan":      func(c *Coefficients) { c.BicepRatio = math.NaN() },
		"negative": func(c *Coefficients) { c.NeckWidthRatio = -0.1 },
		"empty":    func(c *Coefficients) { *c = Coefficients{} },
	} {
		c := DefaultCoefficients()
		mutate(&c)
		calc, err := NewWithConfig(c)
		assert.ErrorIs(t, err, ErrInvalidInput, name)
		assert.Nil(t, calc, name)
	}
}

func TestCircumferenceMissingLandmark(t *testing.T) {
	calc := New()
	cases := []struct {
		name  string
		front []types.Landmark
		side  []types.Landmark
		fn    func(front, side types.LandmarkSet) error
	}{
		{"neck", []types.Landmark{types.LeftShoulder, types.RightShoulder}, []types.Landmark{types.LeftShoulder, types.RightShoulder},
			func(f, s types.LandmarkSet) error { _, err := calc.Neck(f, s, 1); return err }},
		{"chest", []types.Landmark{types.LeftShoulder, types.RightShoulder}, []types.Landmark{types.LeftShoulder, types.RightShoulder, types.LeftHip},
			func(f, s types.LandmarkSet) error { _, err := calc.Chest(f, s, 1); return err }},
		{"waist", []types.Landmark{types.LeftHip, types.RightHip}, []types.Landmark{types.LeftHip, types.RightHip, types.LeftShoulder},
			func(f, s types.LandmarkSet) error { _, err := calc.Waist(f, s, 1); return err }},
		{"hip", []types.Landmark{types.LeftHip, types.RightHip}, []types.Landmark{types.LeftHip, types.RightHip, types.LeftKnee},
			func(f, s types.LandmarkSet) error { _, err := calc.Hip(f, s, 1); return err }},
		{"left bicep", []types.Landmark{types.LeftShoulder, types.LeftElbow}, []types.Landmark{types.LeftShoulder, types.LeftElbow},
			func(f, s types.LandmarkSet) error { _, err := calc.Bicep(f, s, 1, types.Left); return err }},
		{"right bicep", []types.Landmark{types.RightShoulder, types.RightElbow}, []types.Landmark{types.RightShoulder, types.RightElbow},
			func(f, s types.LandmarkSet) error { _, err := calc.Bicep(f, s, 1, types.Right); return err }},
		{"left thigh", []types.Landmark{types.LeftHip, types.LeftKnee}, []types.Landmark{types.LeftHip, types.LeftKnee},
			func(f, s types.LandmarkSet) error { _, err := calc.Thigh(f, s, 1, types.Left); return err }},
		{"right thigh", []types.Landmark{types.RightHip, types.RightKnee}, []types.Landmark{types.RightHip, types.RightKnee},
			func(f, s types.LandmarkSet) error { _, err := calc.Thigh(f, s, 1, types.Right); return err }},
	}

	check := func(t *testing.T, err error, view View, l types.Landmark) {
		t.Helper()
		require.Error(t, err)
		var missing *MissingLandmarkError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, l, missing.Landmark)
		assert.Equal(t, view, missing.View)
	}

	for _, tc := range cases {
		for _, l := range tc.front {
			t.Run(tc.name+"/front/"+l.String(), func(t *testing.T) {
				check(t, tc.fn(without(frontPose(), l), sidePose()), FrontView, l)
			})
		}
		for _, l := range tc.side {
			t.Run(tc.name+"/side/"+l.String(), func(t *testing.T) {
				check(t, tc.fn(frontPose(), without(sidePose(), l)), SideView, l)
			})
		}
	}
}
