package types

import (
	"encoding/json"
	"fmt"
)

// Measurement names one value of a MeasurementSet
type Measurement int

const (
	Height Measurement = iota
	ShoulderWidth
	LeftSleeveLength
	RightSleeveLength
	Inseam
	Outseam
	NeckCircumference
	ChestCircumference
	WaistCircumference
	HipCircumference
	LeftBicepCircumference
	RightBicepCircumference
	LeftThighCircumference
	RightThighCircumference

	NumMeasurements int = iota
)

var measurementNames = [NumMeasurements]string{
	"height",
	"shoulder_width",
	"left_sleeve_length",
	"right_sleeve_length",
	"inseam",
	"outseam",
	"neck_circumference",
	"chest_circumference",
	"waist_circumference",
	"hip_circumference",
	"left_bicep_circumference",
	"right_bicep_circumference",
	"left_thigh_circumference",
	"right_thigh_circumference",
}

func (m Measurement) Valid() bool {
	return m >= 0 && int(m) < NumMeasurements
}

func (m Measurement) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Measurement(%d)", int(m))
	}
	return measurementNames[m]
}

// ParseMeasurement resolves a measurement key such as "chest_circumference"
func ParseMeasurement(name string) (Measurement, bool) {
	for i, n := range measurementNames {
		if n == name {
			return Measurement(i), true
		}
	}
	return 0, false
}

// AllMeasurements returns every measurement in report order
func AllMeasurements() []Measurement {
	out := make([]Measurement, NumMeasurements)
	for i := range out {
		out[i] = Measurement(i)
	}
	return out
}

// MeasurementSet holds one value per Measurement, in centimeters. It is a
// value type: copies never share storage.
type MeasurementSet struct {
	values [NumMeasurements]float64
}

// NewMeasurementSet builds a set from a name-keyed map. Every measurement must
// be present.
func NewMeasurementSet(values map[Measurement]float64) (MeasurementSet, error) {
	var ms MeasurementSet
	for _, m := range AllMeasurements() {
		v, ok := values[m]
		if !ok {
			return MeasurementSet{}, fmt.Errorf("measurement %s missing", m)
		}
		ms.values[m] = v
	}
	return ms, nil
}

// Get returns the value for m, or 0 for an unknown measurement.
func (ms MeasurementSet) Get(m Measurement) float64 {
	if !m.Valid() {
		return 0
	}
	return ms.values[m]
}

// Map returns a fresh name-keyed copy of the values
func (ms MeasurementSet) Map() map[string]float64 {
	out := make(map[string]float64, NumMeasurements)
	for i, v := range ms.values {
		out[measurementNames[i]] = v
	}
	return out
}

func (ms MeasurementSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(ms.Map())
}

func (ms *MeasurementSet) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	values := make(map[Measurement]float64, len(raw))
	for k, v := range raw {
		m, ok := ParseMeasurement(k)
		if !ok {
			return fmt.Errorf("unknown measurement %q", k)
		}
		values[m] = v
	}
	parsed, err := NewMeasurementSet(values)
	if err != nil {
		return err
	}
	*ms = parsed
	return nil
}

// MeasurementValue pairs a measurement with its value
type MeasurementValue struct {
	Measurement Measurement
	Value       float64
}

// All returns every measurement with its value in declaration order
func (ms MeasurementSet) All() []MeasurementValue {
	out := make([]MeasurementValue, NumMeasurements)
	for i, v := range ms.values {
		out[i] = MeasurementValue{Measurement: Measurement(i), Value: v}
	}
	return out
}
