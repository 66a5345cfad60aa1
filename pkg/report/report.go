// Package report formats and persists a measurement set for people and
// for other programs.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/menta2k/mfit/internal/utils"
	"github.com/menta2k/mfit/pkg/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrExists is returned by Save when the target file exists and overwrite is off
var ErrExists = errors.New("report file already exists")

// Format selects the on-disk representation of a report
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text", "txt" or "json" in any case
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text or json)", s)
}

// Extension returns the file extension for the format, without the dot
func (f Format) Extension() string {
	if f == FormatJSON {
		return "json"
	}
	return "txt"
}

// Report is one measurement session ready for export
type Report struct {
	ID           uuid.UUID            `json:"id"`
	Generated    time.Time            `json:"generated"`
	Measurements types.MeasurementSet `json:"measurements"`
}

// New stamps ms with a fresh ID and the current time
func New(ms types.MeasurementSet) *Report {
	return &Report{
		ID:           uuid.New(),
		Generated:    time.Now(),
		Measurements: ms,
	}
}

type section struct {
	title string
	rows  []row
}

type row struct {
	label string
	m     types.Measurement
}

var sections = []section{
	{"LINEAR MEASUREMENTS", []row{
		{"Shoulder Width", types.ShoulderWidth},
		{"Left Sleeve Length", types.LeftSleeveLength},
		{"Right Sleeve Length", types.RightSleeveLength},
		{"Inseam", types.Inseam},
		{"Outseam", types.Outseam},
	}},
	{"CIRCUMFERENTIAL MEASUREMENTS", []row{
		{"Neck Circumference", types.NeckCircumference},
		{"Chest Circumference", types.ChestCircumference},
		{"Waist Circumference", types.WaistCircumference},
		{"Hip Circumference", types.HipCircumference},
		{"Left Bicep Circumference", types.LeftBicepCircumference},
		{"Right Bicep Circumference", types.RightBicepCircumference},
		{"Left Thigh Circumference", types.LeftThighCircumference},
		{"Right Thigh Circumference", types.RightThighCircumference},
	}},
}

const (
	ruleWidth  = 80
	labelWidth = 30
)

// Disclaimer closes every text report
const Disclaimer = "These measurements are estimates. Accuracy depends on photo quality.\n" +
	"For best results, follow all guidelines carefully."

// FormatText renders the report as plain text
func (r *Report) FormatText() string {
	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)

	b.WriteString(rule + "\n")
	b.WriteString("MFIT - BODY MEASUREMENTS REPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "\nGenerated: %s\n", r.Generated.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Report ID: %s\n", r.ID)
	fmt.Fprintf(&b, "\nHeight: %.1f cm\n", r.Measurements.Get(types.Height))

	for _, s := range sections {
		fmt.Fprintf(&b, "\n--- %s ---\n", s.title)
		for _, row := range s.rows {
			fmt.Fprintf(&b, "%-*s%6.1f cm\n", labelWidth, row.label+":", r.Measurements.Get(row.m))
		}
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString("DISCLAIMER:\n")
	b.WriteString(Disclaimer + "\n")
	b.WriteString(rule)

	return b.String()
}

// WriteText writes FormatText to w followed by a newline
func (r *Report) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, r.FormatText()+"\n")
	return err
}

// WriteJSON writes the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Write renders the report in the given format
func (r *Report) Write(w io.Writer, format Format) error {
	if format == FormatJSON {
		return r.WriteJSON(w)
	}
	return r.WriteText(w)
}

// DefaultFilename names a text report after the time it was generated
func DefaultFilename(now time.Time) string {
	return "measurements_" + now.Format("20060102_150405") + ".txt"
}

// Save writes the report to path, adding the format's extension when it is
// missing. An existing file is only replaced when overwrite is set. The final
// path is returned.
func (r *Report) Save(path string, format Format, overwrite bool) (string, error) {
	if path == "" {
		path = strings.TrimSuffix(DefaultFilename(r.Generated), ".txt")
	}
	path = utils.EnsureExtension(path, format.Extension())

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return path, fmt.Errorf("%w: %s", ErrExists, path)
		}
		return path, fmt.Errorf("failed to create report: %w", err)
	}

	if err := r.Write(f, format); err != nil {
		f.Close()
		return path, fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return path, fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
