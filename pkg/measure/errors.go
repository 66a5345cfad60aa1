package measure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/menta2k/mfit/pkg/types"
)

// View names which photo a landmark set came from
type View string

const (
	FrontView View = "front"
	SideView  View = "side"
)

var (
	// ErrInvalidInput is returned for an empty landmark set, a non-positive
	// height, non-finite coordinates, or a zero vertical pixel extent.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingLandmark matches every *MissingLandmarkError via errors.Is.
	ErrMissingLandmark = errors.New("missing landmark")
)

// MissingLandmarkError names the landmark a measurement needed but did not find.
type MissingLandmarkError struct {
	View     View
	Landmark types.Landmark
}

func (e *MissingLandmarkError) Error() string {
	return fmt.Sprintf("missing landmark %s in %s view", e.Landmark, e.View)
}

func (e *MissingLandmarkError) Is(target error) bool {
	return target == ErrMissingLandmark
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// requireLandmarks checks that every named landmark is present in set and reports the
// first absent one.
func requireLandmarks(set types.LandmarkSet, view View, landmarks ...types.Landmark) error {
	if missing := set.Missing(landmarks...); len(missing) > 0 {
		return &MissingLandmarkError{View: view, Landmark: missing[0]}
	}
	return nil
}

// wrapMeasurement prefixes err with the measurement being computed.
func wrapMeasurement(m types.Measurement, err error) error {
	return fmt.Errorf("%s: %w", strings.ReplaceAll(m.String(), "_", " "), err)
}
