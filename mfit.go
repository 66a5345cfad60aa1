// Package mfit estimates body measurements from two photos of a person.
//
// A front photo and a side photo are sent to a vision model that locates the
// MediaPipe pose landmarks. The front landmarks are calibrated against the
// person's declared height, and the measurement core (pkg/measure) derives
// linear lengths and elliptical circumferences from both views.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/menta2k/mfit"
//		"github.com/menta2k/mfit/pkg/ollama"
//	)
//
//	func main() {
//		client, err := ollama.NewClient("http://localhost:11434")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		est, err := mfit.New(client, mfit.Options{Model: "qwen2.5vl:7b"})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		res, err := est.Measure(context.Background(), "front.jpg", "side.jpg", 178)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		for _, mv := range res.Measurements.All() {
//			fmt.Printf("%-28s %6.1f cm\n", mv.Measurement, mv.Value)
//		}
//	}
//
// Landmarks produced by another detector can skip the model entirely through
// MeasureLandmarks, or through measure.CalculateAll for the bare core.
package mfit

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"math"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/menta2k/mfit/internal/config"
	"github.com/menta2k/mfit/internal/logger"
	"github.com/menta2k/mfit/internal/utils"
	"github.com/menta2k/mfit/pkg/analyzer"
	"github.com/menta2k/mfit/pkg/client"
	"github.com/menta2k/mfit/pkg/detection"
	"github.com/menta2k/mfit/pkg/llamacpp"
	"github.com/menta2k/mfit/pkg/measure"
	"github.com/menta2k/mfit/pkg/ollama"
	"github.com/menta2k/mfit/pkg/processing"
	"github.com/menta2k/mfit/pkg/types"
)

// Version of the mfit library
const Version = "1.0.0"

// Backends understood by NewVisionClient
const (
	BackendOllama   = "ollama"
	BackendLlamaCpp = "llamacpp"
)

// Options configures an Estimator. Zero values fall back to defaults.
type Options struct {
	Model        string
	Processing   types.ProcessingOptions
	Analyzer     analyzer.Config
	Coefficients measure.Coefficients
	Prompt       string
	Logger       *logrus.Logger
}

// Estimator runs the full photo to measurement pipeline
type Estimator struct {
	processor  *processing.Processor
	analyzer   *analyzer.ImageAnalyzer
	detector   *detection.Detector
	calculator *measure.Calculator
	log        *logrus.Logger
	model      string
	send       types.ProcessingOptions
}

// View is one photo with the landmarks found on it
type View struct {
	Name      measure.View
	Source    string
	Image     image.Image
	Info      analyzer.ImageInfo
	Landmarks types.LandmarkSet
	Pose      *types.PoseResult
	Elapsed   time.Duration
}

// Result is the outcome of one measurement session
type Result struct {
	ID           uuid.UUID
	Front        *View
	Side         *View
	Measurements types.MeasurementSet
}

// New creates an Estimator that detects landmarks through vc
func New(vc client.VisionClient, opts Options) (*Estimator, error) {
	if opts.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	coeff := opts.Coefficients
	if coeff == (measure.Coefficients{}) {
		coeff = measure.DefaultCoefficients()
	}
	calc, err := measure.NewWithConfig(coeff)
	if err != nil {
		return nil, err
	}

	analyzerConfig := opts.Analyzer
	an := analyzer.New()
	if len(analyzerConfig.SupportedFormats) > 0 {
		an = analyzer.NewWithConfig(analyzerConfig)
	}

	send := opts.Processing
	if send.SendFormat == "" {
		send.SendFormat = "jpg"
	}
	if send.SendQuality == 0 {
		send.SendQuality = 90
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	var det *detection.Detector
	if vc != nil {
		det = detection.NewDetector(vc)
		if opts.Prompt != "" {
			det = det.WithPrompt(opts.Prompt)
		}
	}

	return &Estimator{
		processor:  processing.NewProcessor(),
		analyzer:   an,
		detector:   det,
		calculator: calc,
		log:        log,
		model:      opts.Model,
		send:       send,
	}, nil
}

// NewFromConfig builds the vision client and Estimator described by cfg
func NewFromConfig(cfg *config.Config, log *logrus.Logger) (*Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	vc, err := NewVisionClient(cfg.Backend.Type, cfg.Backend.URL)
	if err != nil {
		return nil, err
	}

	return New(vc, Options{
		Model: cfg.Backend.Model,
		Processing: types.ProcessingOptions{
			SendFormat:  cfg.Processing.SendFormat,
			SendMaxSide: cfg.Processing.SendMaxSide,
			SendQuality: cfg.Processing.SendQuality,
		},
		Analyzer: analyzer.Config{
			SupportedFormats: cfg.Analyzer.SupportedFormats,
			MinImageSize:     cfg.Analyzer.MinImageSize,
		},
		Coefficients: cfg.Coefficients,
		Logger:       log,
	})
}

// NewVisionClient creates the client for backend ("ollama" or "llamacpp")
func NewVisionClient(backend, url string) (client.VisionClient, error) {
	switch strings.ToLower(backend) {
	case BackendOllama:
		c, err := ollama.NewClient(url)
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return c, nil
	case BackendLlamaCpp:
		c, err := llamacpp.NewClient(url)
		if err != nil {
			return nil, fmt.Errorf("failed to create llama.cpp client: %w", err)
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown backend: %s (use 'ollama' or 'llamacpp')", backend)
}

// DetectView loads, checks and sends one photo to the model
func (e *Estimator) DetectView(ctx context.Context, name measure.View, source string) (*View, error) {
	if e.detector == nil {
		return nil, fmt.Errorf("%s view: no vision client configured", name)
	}

	if !utils.IsURL(source) {
		if err := e.analyzer.ValidatePath(source); err != nil {
			return nil, fmt.Errorf("%s view: %w", name, err)
		}
	}

	img, err := e.processor.LoadImageSmart(source)
	if err != nil {
		return nil, fmt.Errorf("%s view: failed to load image: %w", name, err)
	}
	if err := e.analyzer.ValidateImage(img); err != nil {
		return nil, fmt.Errorf("%s view: %w", name, err)
	}

	info := e.analyzer.GetImageInfo(img)
	fields := logger.Fields{"view": name, "source": source, "width": info.Width, "height": info.Height}
	if !info.IsPortrait() {
		e.log.WithFields(fields).Warn("[mfit.DetectView] photo is not portrait, full body may be cut off")
	}

	imgB64, err := e.processor.PrepareImageForModel(img, e.send.SendFormat, e.send.SendMaxSide, e.send.SendQuality)
	if err != nil {
		return nil, fmt.Errorf("%s view: failed to prepare image: %w", name, err)
	}

	e.log.WithFields(fields).Debug("[mfit.DetectView] requesting landmarks")
	start := time.Now()
	set, pose, err := e.detector.DetectLandmarks(ctx, e.model, imgB64, info.Width, info.Height)
	elapsed := time.Since(start)
	if err != nil {
		fields["error"] = err.Error()
		e.log.WithFields(fields).Error("[mfit.DetectView] landmark detection failed")
		return nil, fmt.Errorf("%s view: %w", name, err)
	}

	fields["landmarks"] = len(set)
	fields["confidence"] = pose.Confidence
	fields["elapsed"] = elapsed.Round(time.Millisecond).String()
	e.log.WithFields(fields).Info("[mfit.DetectView] landmarks detected")

	return &View{
		Name:      name,
		Source:    source,
		Image:     img,
		Info:      info,
		Landmarks: set,
		Pose:      pose,
		Elapsed:   elapsed,
	}, nil
}

// Measure detects both views concurrently and measures the person
func (e *Estimator) Measure(ctx context.Context, front, side string, heightCm float64) (*Result, error) {
	if !(heightCm > 0) || math.IsInf(heightCm, 0) {
		return nil, fmt.Errorf("%w: height must be a positive number of centimeters, got %v", measure.ErrInvalidInput, heightCm)
	}

	var frontView, sideView *View
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := e.DetectView(gctx, measure.FrontView, front)
		frontView = v
		return err
	})
	g.Go(func() error {
		v, err := e.DetectView(gctx, measure.SideView, side)
		sideView = v
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res, err := e.MeasureLandmarks(frontView.Landmarks, sideView.Landmarks, heightCm)
	if err != nil {
		return nil, err
	}
	res.Front = frontView
	res.Side = sideView
	return res, nil
}

// MeasureLandmarks runs only the measurement core on known landmarks
func (e *Estimator) MeasureLandmarks(front, side types.LandmarkSet, heightCm float64) (*Result, error) {
	ms, err := e.calculator.CalculateAll(front, side, heightCm)
	if err != nil {
		e.log.WithFields(logger.Fields{"height": heightCm, "error": err.Error()}).
			Error("[mfit.MeasureLandmarks] measurement failed")
		return nil, err
	}

	res := &Result{
		ID:           uuid.New(),
		Front:        &View{Name: measure.FrontView, Landmarks: front},
		Side:         &View{Name: measure.SideView, Landmarks: side},
		Measurements: ms,
	}
	e.log.WithFields(logger.Fields{"id": res.ID, "height": heightCm}).Info("[mfit.MeasureLandmarks] measurements calculated")
	return res, nil
}

// TestVision checks that the model can see an image at all
func (e *Estimator) TestVision(ctx context.Context, source string) (string, error) {
	if e.detector == nil {
		return "", fmt.Errorf("no vision client configured")
	}
	img, err := e.processor.LoadImageSmart(source)
	if err != nil {
		return "", err
	}
	imgB64, err := e.processor.PrepareImageForModel(img, e.send.SendFormat, e.send.SendMaxSide, e.send.SendQuality)
	if err != nil {
		return "", err
	}
	return e.detector.TestVision(ctx, e.model, imgB64)
}

// SaveOverlay draws the view's landmarks on its photo and writes a PNG to
// dir. The written path is returned.
func (e *Estimator) SaveOverlay(v *View, dir string, showLabels bool) (string, error) {
	if v == nil || v.Image == nil {
		return "", fmt.Errorf("no image to draw landmarks on")
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create overlay directory: %w", err)
	}

	overlay := e.processor.CreateLandmarkOverlay(v.Image, v.Landmarks, showLabels)
	path := utils.GenerateOutputFilename(v.Source, dir, "", "_"+string(v.Name)+"_landmarks", "png")
	if err := e.processor.SaveImage(overlay, path, "png", 0, false); err != nil {
		return "", fmt.Errorf("failed to save overlay: %w", err)
	}

	e.log.WithFields(logger.Fields{"view": v.Name, "path": path}).Debug("[mfit.SaveOverlay] overlay written")
	return path, nil
}

// LoadLandmarks reads a JSON object of landmark name to {"x", "y"} pixel
// coordinates.
func LoadLandmarks(path string) (types.LandmarkSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read landmarks: %w", err)
	}

	var set types.LandmarkSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse landmarks %s: %w", path, err)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no landmarks in %s", path)
	}
	return set, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
