package measure

import "github.com/menta2k/mfit/pkg/types"

// frontPose is an A-pose facing the camera. The nose is the topmost point
// (y=10) and the ankles the bottommost (y=1000).
func frontPose() types.LandmarkSet {
	return types.LandmarkSet{
		types.Nose:          {X: 200, Y: 10},
		types.LeftShoulder:  {X: 100, Y: 200},
		types.RightShoulder: {X: 300, Y: 200},
		types.LeftElbow:     {X: 80, Y: 350},
		types.RightElbow:    {X: 320, Y: 350},
		types.LeftWrist:     {X: 70, Y: 480},
		types.RightWrist:    {X: 330, Y: 480},
		types.LeftHip:       {X: 140, Y: 500},
		types.RightHip:      {X: 260, Y: 500},
		types.LeftKnee:      {X: 145, Y: 750},
		types.RightKnee:     {X: 255, Y: 750},
		types.LeftAnkle:     {X: 150, Y: 1000},
		types.RightAnkle:    {X: 250, Y: 1000},
	}
}

// sidePose is the same subject photographed from the left, facing right.
func sidePose() types.LandmarkSet {
	return types.LandmarkSet{
		types.Nose:          {X: 230, Y: 15},
		types.LeftShoulder:  {X: 200, Y: 200},
		types.RightShoulder: {X: 210, Y: 205},
		types.LeftElbow:     {X: 205, Y: 350},
		types.RightElbow:    {X: 212, Y: 352},
		types.LeftWrist:     {X: 215, Y: 480},
		types.RightWrist:    {X: 220, Y: 482},
		types.LeftHip:       {X: 195, Y: 500},
		types.RightHip:      {X: 205, Y: 502},
		types.LeftKnee:      {X: 200, Y: 750},
		types.RightKnee:     {X: 206, Y: 752},
		types.LeftAnkle:     {X: 198, Y: 1000},
		types.RightAnkle:    {X: 204, Y: 1000},
	}
}

func without(set types.LandmarkSet, l types.Landmark) types.LandmarkSet {
	out := set.Clone()
	delete(out, l)
	return out
}
