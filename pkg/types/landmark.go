package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Landmark identifies an anatomical pose point. Values follow the MediaPipe
// pose landmark indices.
type Landmark int

const (
	Nose Landmark = iota
	LeftEyeInner
	LeftEye
	LeftEyeOuter
	RightEyeInner
	RightEye
	RightEyeOuter
	LeftEar
	RightEar
	MouthLeft
	MouthRight
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftPinky
	RightPinky
	LeftIndex
	RightIndex
	LeftThumb
	RightThumb
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
	LeftHeel
	RightHeel
	LeftFootIndex
	RightFootIndex

	NumLandmarks int = iota
)

var landmarkNames = [NumLandmarks]string{
	"NOSE",
	"LEFT_EYE_INNER",
	"LEFT_EYE",
	"LEFT_EYE_OUTER",
	"RIGHT_EYE_INNER",
	"RIGHT_EYE",
	"RIGHT_EYE_OUTER",
	"LEFT_EAR",
	"RIGHT_EAR",
	"MOUTH_LEFT",
	"MOUTH_RIGHT",
	"LEFT_SHOULDER",
	"RIGHT_SHOULDER",
	"LEFT_ELBOW",
	"RIGHT_ELBOW",
	"LEFT_WRIST",
	"RIGHT_WRIST",
	"LEFT_PINKY",
	"RIGHT_PINKY",
	"LEFT_INDEX",
	"RIGHT_INDEX",
	"LEFT_THUMB",
	"RIGHT_THUMB",
	"LEFT_HIP",
	"RIGHT_HIP",
	"LEFT_KNEE",
	"RIGHT_KNEE",
	"LEFT_ANKLE",
	"RIGHT_ANKLE",
	"LEFT_HEEL",
	"RIGHT_HEEL",
	"LEFT_FOOT_INDEX",
	"RIGHT_FOOT_INDEX",
}

// requiredLandmarks is the minimum subset every measurement session needs.
var requiredLandmarks = []Landmark{
	Nose,
	LeftShoulder, RightShoulder,
	LeftElbow, RightElbow,
	LeftWrist, RightWrist,
	LeftHip, RightHip,
	LeftKnee, RightKnee,
	LeftAnkle, RightAnkle,
}

// RequiredLandmarks returns the landmarks a detector must locate for a full
// measurement session.
func RequiredLandmarks() []Landmark {
	out := make([]Landmark, len(requiredLandmarks))
	copy(out, requiredLandmarks)
	return out
}

// AllLandmarks returns every landmark in index order
func AllLandmarks() []Landmark {
	out := make([]Landmark, NumLandmarks)
	for i := range out {
		out[i] = Landmark(i)
	}
	return out
}

// Valid reports whether l is a known landmark
func (l Landmark) Valid() bool {
	return l >= 0 && int(l) < NumLandmarks
}

func (l Landmark) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Landmark(%d)", int(l))
	}
	return landmarkNames[l]
}

// ParseLandmark resolves a landmark name. Matching ignores case and accepts
// spaces or hyphens in place of underscores.
func ParseLandmark(name string) (Landmark, bool) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	for i, n := range landmarkNames {
		if n == key {
			return Landmark(i), true
		}
	}
	return 0, false
}

// MarshalText encodes the landmark as its name so map keys stay readable in JSON.
func (l Landmark) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid landmark %d", int(l))
	}
	return []byte(landmarkNames[l]), nil
}

// UnmarshalText decodes a landmark name
func (l *Landmark) UnmarshalText(text []byte) error {
	v, ok := ParseLandmark(string(text))
	if !ok {
		return fmt.Errorf("unknown landmark %q", string(text))
	}
	*l = v
	return nil
}

// Side selects the left or right limb of a bilateral measurement
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

func (s Side) pick(left, right Landmark) Landmark {
	if s == Right {
		return right
	}
	return left
}

func (s Side) Shoulder() Landmark { return s.pick(LeftShoulder, RightShoulder) }
func (s Side) Elbow() Landmark    { return s.pick(LeftElbow, RightElbow) }
func (s Side) Wrist() Landmark    { return s.pick(LeftWrist, RightWrist) }
func (s Side) Hip() Landmark      { return s.pick(LeftHip, RightHip) }
func (s Side) Knee() Landmark     { return s.pick(LeftKnee, RightKnee) }

// LandmarkSet maps each detected landmark to its pixel coordinate for one view.
type LandmarkSet map[Landmark]Point

// Get returns the point for l and whether it was detected
func (s LandmarkSet) Get(l Landmark) (Point, bool) {
	p, ok := s[l]
	return p, ok
}

// Has reports whether every given landmark is present
func (s LandmarkSet) Has(landmarks ...Landmark) bool {
	return len(s.Missing(landmarks...)) == 0
}

// Missing returns the given landmarks absent from the set, in argument order.
func (s LandmarkSet) Missing(landmarks ...Landmark) []Landmark {
	var missing []Landmark
	for _, l := range landmarks {
		if _, ok := s[l]; !ok {
			missing = append(missing, l)
		}
	}
	return missing
}

// UnmarshalJSON decodes a name-keyed object. Names are matched leniently, and
// two names that resolve to the same landmark are rejected.
func (s *LandmarkSet) UnmarshalJSON(data []byte) error {
	var raw map[string]Point
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(LandmarkSet, len(raw))
	seen := make(map[Landmark]string, len(raw))
	for _, name := range names {
		l, ok := ParseLandmark(name)
		if !ok {
			return fmt.Errorf("unknown landmark %q", name)
		}
		if prev, dup := seen[l]; dup {
			return fmt.Errorf("landmark %s given twice (%q and %q)", l, prev, name)
		}
		seen[l] = name
		out[l] = raw[name]
	}
	*s = out
	return nil
}

// Clone returns an independent copy of the set
func (s LandmarkSet) Clone() LandmarkSet {
	out := make(LandmarkSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
