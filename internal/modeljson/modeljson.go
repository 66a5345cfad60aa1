// Package modeljson cleans up and decodes the JSON that vision models emit.
package modeljson

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/menta2k/mfit/pkg/types"
)

var (
	reBlock    = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reLine     = regexp.MustCompile(`(?m)^\s*//.*$`)
	reInline   = regexp.MustCompile(`(?m)//.*$`)
	reTrailing = regexp.MustCompile(`,(\s*[}\]])`)
)

// Sanitize removes code fences, comments, and trailing commas from a model
// response and keeps only the outermost {...}.
func Sanitize(raw string) string {
	raw = stripFences(raw)

	raw = reBlock.ReplaceAllString(raw, "")
	raw = reLine.ReplaceAllString(raw, "")
	raw = reInline.ReplaceAllString(raw, "")
	raw = reTrailing.ReplaceAllString(raw, "$1")

	return outermost(raw)
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)

	// Strip triple-backtick fences if present
	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.TrimSpace(raw)
	return strings.Trim(raw, "`")
}

// outermost keeps the text from the first '{' to the last '}'
func outermost(raw string) string {
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}

// ParsePose decodes a pose response. The outermost object is decoded as is
// first; comments and trailing commas are only stripped when that fails, so
// "//" inside a string value survives. A reply that holds no usable JSON yields
// an empty result carrying the reason in Description rather than an error, so
// the detector reports it as "no pose found".
func ParsePose(raw string) *types.PoseResult {
	var result types.PoseResult
	if err := json.Unmarshal([]byte(outermost(stripFences(raw))), &result); err != nil {
		cleaned := Sanitize(raw)
		if !strings.HasPrefix(cleaned, "{") {
			return &types.PoseResult{Description: "model returned non-JSON response"}
		}

		result = types.PoseResult{}
		if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
			return &types.PoseResult{Description: "failed to parse model response: " + err.Error()}
		}
	}
	if result.Landmarks == nil {
		result.Landmarks = map[string]types.Point{}
	}
	return &result
}
