package detection

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/menta2k/mfit/pkg/client"
	"github.com/menta2k/mfit/pkg/types"
)

// SimpleTestPrompt for testing if the model can see images
const SimpleTestPrompt = `What do you see in this image? Describe it briefly.`

// DefaultPrompt asks the model for the MediaPipe pose landmarks of one person
const DefaultPrompt = `You are a human pose landmark locator.

The image shows one person standing in an A-pose (arms slightly away from the torso).
Locate their body landmarks and return JSON only:
{
  "landmarks": {
    "NOSE": {"x": 0.0, "y": 0.0},
    "LEFT_SHOULDER": {"x": 0.0, "y": 0.0},
    ...
  },
  "confidence": 0.0,
  "description": "short neutral sentence (≤ 20 words)"
}

LANDMARK NAMES (use exactly these keys):
NOSE, LEFT_EYE_INNER, LEFT_EYE, LEFT_EYE_OUTER, RIGHT_EYE_INNER, RIGHT_EYE, RIGHT_EYE_OUTER,
LEFT_EAR, RIGHT_EAR, MOUTH_LEFT, MOUTH_RIGHT, LEFT_SHOULDER, RIGHT_SHOULDER, LEFT_ELBOW,
RIGHT_ELBOW, LEFT_WRIST, RIGHT_WRIST, LEFT_PINKY, RIGHT_PINKY, LEFT_INDEX, RIGHT_INDEX,
LEFT_THUMB, RIGHT_THUMB, LEFT_HIP, RIGHT_HIP, LEFT_KNEE, RIGHT_KNEE, LEFT_ANKLE, RIGHT_ANKLE,
LEFT_HEEL, RIGHT_HEEL, LEFT_FOOT_INDEX, RIGHT_FOOT_INDEX

HARD RULES
- All coordinates are normalized to [0,1] (NOT pixels), origin at the top-left, y grows downward.
- LEFT and RIGHT refer to the person's own left and right, not the viewer's.
- Always include NOSE, both shoulders, elbows, wrists, hips, knees and ankles. Estimate occluded points.
- Omit any other landmark you cannot place.
- If no person is visible, return {"landmarks": {}, "confidence": 0.0, "description": "no person"}.
- JSON only. No markdown, no code fences, no comments, no trailing commas.`

// ErrNoPose is returned when the model reports no usable landmarks at all
var ErrNoPose = errors.New("no pose detected")

// IncompletePoseError lists the required landmarks the model did not return
type IncompletePoseError struct {
	Missing []types.Landmark
}

func (e *IncompletePoseError) Error() string {
	names := make([]string, len(e.Missing))
	for i, l := range e.Missing {
		names[i] = l.String()
	}
	return fmt.Sprintf("pose is missing required landmarks: %s", strings.Join(names, ", "))
}

// Detector handles pose landmark detection using vision models
type Detector struct {
	client client.VisionClient
	prompt string
}

// NewDetector creates a new detector with a vision client
func NewDetector(client client.VisionClient) *Detector {
	return &Detector{client: client, prompt: DefaultPrompt}
}

// WithPrompt replaces the landmark prompt
func (d *Detector) WithPrompt(prompt string) *Detector {
	d.prompt = prompt
	return d
}

// DetectLandmarks asks the model for pose landmarks and converts them to
// pixel coordinates of a width x height image. The raw model result is
// returned alongside the set, also on error, for debugging.
func (d *Detector) DetectLandmarks(ctx context.Context, model, imageB64 string, width, height int) (types.LandmarkSet, *types.PoseResult, error) {
	if width <= 0 || height <= 0 {
		return nil, nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}

	result, err := d.client.DetectPose(ctx, model, d.prompt, imageB64)
	if err != nil {
		return nil, nil, err
	}

	set := ToPixels(result, width, height)
	if len(set) == 0 {
		return nil, result, ErrNoPose
	}
	if missing := set.Missing(types.RequiredLandmarks()...); len(missing) > 0 {
		return nil, result, &IncompletePoseError{Missing: missing}
	}

	return set, result, nil
}

// TestVision tests if the model can actually see the image with a simple prompt
func (d *Detector) TestVision(ctx context.Context, model, imageB64 string) (string, error) {
	return d.client.SimpleQuery(ctx, model, SimpleTestPrompt, imageB64)
}

// ToPixels maps normalized model output onto image pixels. Unknown names
// and non-finite points are dropped, the rest are clamped to the frame. When
// several names resolve to one landmark the exact canonical name wins, then
// the first alias in sorted order.
func ToPixels(result *types.PoseResult, width, height int) types.LandmarkSet {
	set := types.LandmarkSet{}
	if result == nil {
		return set
	}

	names := make([]string, 0, len(result.Landmarks))
	for name := range result.Landmarks {
		names = append(names, name)
	}
	sort.Strings(names)

	canonical := map[types.Landmark]bool{}
	for _, name := range names {
		p := result.Landmarks[name]
		l, ok := types.ParseLandmark(name)
		if !ok {
			continue
		}
		if !finite(p.X) || !finite(p.Y) {
			continue
		}
		exact := name == l.String()
		if _, seen := set[l]; seen && (canonical[l] || !exact) {
			continue
		}
		canonical[l] = exact
		set[l] = types.Point{
			X: clamp(p.X, 0, 1) * float64(width),
			Y: clamp(p.Y, 0, 1) * float64(height),
		}
	}
	return set
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// clamp ensures a value is within the given bounds
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
