package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Heights outside this range (cm) are accepted but unusual
const (
	MinTypicalHeight = 100.0
	MaxTypicalHeight = 250.0
)

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// GetFileExtension returns the file extension without the dot
func GetFileExtension(filename string) string {
	ext := filepath.Ext(filename)
	if len(ext) > 0 {
		return strings.ToLower(ext[1:])
	}
	return ""
}

// EnsureExtension appends .ext to filename unless it already ends with it
func EnsureExtension(filename, ext string) string {
	if GetFileExtension(filename) == strings.ToLower(ext) {
		return filename
	}
	return filename + "." + ext
}

// IsURL reports whether source is an http(s) URL rather than a file path
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// GenerateOutputFilename generates an output filename based on input and parameters
func GenerateOutputFilename(inputFile, outputDir, prefix, suffix, format string) string {
	baseName := filepath.Base(inputFile)
	if IsURL(inputFile) {
		baseName = SanitizeFilename(baseName)
	}
	nameWithoutExt := strings.TrimSuffix(baseName, filepath.Ext(baseName))

	if format == "" {
		format = GetFileExtension(inputFile)
		if format == "" {
			format = "jpg"
		}
	}

	outputName := fmt.Sprintf("%s%s%s.%s", prefix, nameWithoutExt, suffix, format)
	return filepath.Join(outputDir, outputName)
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// SanitizeFilename removes or replaces invalid characters in filenames
func SanitizeFilename(filename string) string {
	// Replace invalid characters with underscores
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", "&", "="}
	result := filename

	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}

	// Remove leading/trailing spaces and dots
	result = strings.Trim(result, " .")

	return result
}

// IsTypicalHeight reports whether heightCm lies in the usual adult range
func IsTypicalHeight(heightCm float64) bool {
	return heightCm >= MinTypicalHeight && heightCm <= MaxTypicalHeight
}
