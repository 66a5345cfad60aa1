package measure

import (
	"math"

	"github.com/menta2k/mfit/pkg/geometry"
	"github.com/menta2k/mfit/pkg/types"
)

// ShoulderWidth is the straight distance between the two front shoulders.
func ShoulderWidth(front types.LandmarkSet, scale Scale) (float64, error) {
	if err := requireLandmarks(front, FrontView, types.LeftShoulder, types.RightShoulder); err != nil {
		return 0, err
	}
	px := geometry.Distance(front[types.LeftShoulder], front[types.RightShoulder])
	return scale.Length(px), nil
}

// SleeveLength follows shoulder, elbow and wrist so a bent arm is measured
// along its path rather than shoulder to wrist directly.
func SleeveLength(front types.LandmarkSet, scale Scale, side types.Side) (float64, error) {
	shoulder, elbow, wrist := side.Shoulder(), side.Elbow(), side.Wrist()
	if err := requireLandmarks(front, FrontView, shoulder, elbow, wrist); err != nil {
		return 0, err
	}
	px := geometry.PathLength(front[shoulder], front[elbow], front[wrist])
	return scale.Length(px), nil
}

// crotchPoint sits horizontally between the hips at the height of the lower
// (larger y) hip.
func crotchPoint(leftHip, rightHip types.Point) types.Point {
	return types.Point{
		X: (leftHip.X + rightHip.X) / 2,
		Y: math.Max(leftHip.Y, rightHip.Y),
	}
}

// Inseam averages the crotch-to-ankle distance of both legs.
func Inseam(front types.LandmarkSet, scale Scale) (float64, error) {
	if err := requireLandmarks(front, FrontView, types.LeftHip, types.RightHip, types.LeftAnkle, types.RightAnkle); err != nil {
		return 0, err
	}
	crotch := crotchPoint(front[types.LeftHip], front[types.RightHip])
	left := geometry.Distance(crotch, front[types.LeftAnkle])
	right := geometry.Distance(crotch, front[types.RightAnkle])
	return scale.Length((left + right) / 2), nil
}

// Outseam averages the hip-to-ankle distance of both legs.
func Outseam(front types.LandmarkSet, scale Scale) (float64, error) {
	if err := requireLandmarks(front, FrontView, types.LeftHip, types.RightHip, types.LeftAnkle, types.RightAnkle); err != nil {
		return 0, err
	}
	left := geometry.Distance(front[types.LeftHip], front[types.LeftAnkle])
	right := geometry.Distance(front[types.RightHip], front[types.RightAnkle])
	return scale.Length((left + right) / 2), nil
}
