package analyzer

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/menta2k/mfit/internal/utils"
)

// ErrInvalidPhoto is wrapped by every validation failure
var ErrInvalidPhoto = errors.New("invalid photo")

// ImageAnalyzer checks that photos are usable for pose detection
type ImageAnalyzer struct {
	config Config
}

// Config holds configuration for the image analyzer
type Config struct {
	SupportedFormats []string
	MinImageSize     int
}

// New creates a new ImageAnalyzer with default configuration
func New() *ImageAnalyzer {
	return &ImageAnalyzer{
		config: Config{
			SupportedFormats: []string{"jpg", "jpeg", "png", "webp"},
			MinImageSize:     100,
		},
	}
}

// NewWithConfig creates a new ImageAnalyzer with custom configuration
func NewWithConfig(config Config) *ImageAnalyzer {
	return &ImageAnalyzer{config: config}
}

// ValidatePath checks that path names an existing regular file with a
// supported image extension.
func (a *ImageAnalyzer) ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: no file path given", ErrInvalidPhoto)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: file not found: %s", ErrInvalidPhoto, path)
		}
		return fmt.Errorf("%w: %v", ErrInvalidPhoto, err)
	}
	if !info.IsDir() && info.Mode().IsRegular() {
		ext := utils.GetFileExtension(path)
		if !a.isFormatSupported(ext) {
			return fmt.Errorf("%w: unsupported image format %q (supported: %s)",
				ErrInvalidPhoto, ext, strings.Join(a.config.SupportedFormats, ", "))
		}
		return nil
	}
	return fmt.Errorf("%w: not a file: %s", ErrInvalidPhoto, path)
}

// GetImageInfo returns basic information about an image
func (a *ImageAnalyzer) GetImageInfo(img image.Image) ImageInfo {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	info := ImageInfo{
		Width:  width,
		Height: height,
		Area:   width * height,
	}
	if height > 0 {
		info.AspectRatio = float64(width) / float64(height)
	}
	return info
}

// ImageInfo contains basic image metadata
type ImageInfo struct {
	Width       int
	Height      int
	AspectRatio float64
	Area        int
}

// IsPortrait reports whether the image is taller than it is wide. Full-body
// photos are expected to be portrait.
func (i ImageInfo) IsPortrait() bool {
	return i.Height > i.Width
}

func (a *ImageAnalyzer) isFormatSupported(format string) bool {
	for _, supported := range a.config.SupportedFormats {
		if strings.EqualFold(format, supported) {
			return true
		}
	}
	return false
}

// ValidateImage checks if an image meets minimum requirements
func (a *ImageAnalyzer) ValidateImage(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() < a.config.MinImageSize || bounds.Dy() < a.config.MinImageSize {
		return fmt.Errorf("%w: image too small: %dx%d (minimum: %d)",
			ErrInvalidPhoto, bounds.Dx(), bounds.Dy(), a.config.MinImageSize)
	}
	return nil
}
