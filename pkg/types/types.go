package types

// Point is a pixel coordinate with the origin at the top-left corner of the
// image and Y increasing downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PoseResult contains the raw pose returned by a vision model. Coordinates are
// normalized to the [0,1] range and keyed by landmark name as the model wrote it.
type PoseResult struct {
	Landmarks   map[string]Point `json:"landmarks"`
	Confidence  float64          `json:"confidence"`
	Description string           `json:"description"`
}

// ProcessingOptions contains options for preparing a photo for the vision model
type ProcessingOptions struct {
	SendFormat  string
	SendMaxSide int
	SendQuality int
}
