package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/menta2k/mfit"
	"github.com/menta2k/mfit/internal/config"
	"github.com/menta2k/mfit/internal/logger"
	"github.com/menta2k/mfit/internal/utils"
	"github.com/menta2k/mfit/pkg/detection"
	"github.com/menta2k/mfit/pkg/llamacpp"
	"github.com/menta2k/mfit/pkg/measure"
	"github.com/menta2k/mfit/pkg/ollama"
	"github.com/menta2k/mfit/pkg/report"
)

type options struct {
	front, side         string
	frontLandmarks      string
	sideLandmarks       string
	height              float64
	backend, url, model string
	configPath          string
	save                string
	format              string
	force               bool
	overlayDir          string
	labels              bool
	debug               bool
}

func main() {
	var opts options

	flag.StringVar(&opts.front, "front", "", "front photo path or URL (jpg/png/webp)")
	flag.StringVar(&opts.side, "side", "", "side photo path or URL (jpg/png/webp)")
	flag.StringVar(&opts.frontLandmarks, "front-landmarks", "", "JSON file of front landmarks in pixels, skips detection")
	flag.StringVar(&opts.sideLandmarks, "side-landmarks", "", "JSON file of side landmarks in pixels, skips detection")
	flag.Float64Var(&opts.height, "height", 0, "height of the person in cm")
	flag.StringVar(&opts.backend, "backend", "", "backend to use: ollama or llamacpp (default from config)")
	flag.StringVar(&opts.url, "url", "", "server URL (default from config)")
	flag.StringVar(&opts.model, "model", "", "model name (default from config)")
	flag.StringVar(&opts.configPath, "config", "", "config file (default "+config.GetConfigPath()+" if present)")
	flag.StringVar(&opts.save, "save", "", "save the report to this file; \"auto\" picks measurements_<time>")
	flag.StringVar(&opts.format, "format", "", "report format: text|json")
	flag.BoolVar(&opts.force, "force", false, "overwrite an existing report file")
	flag.StringVar(&opts.overlayDir, "overlay", "", "write landmark overlay images to this directory")
	flag.BoolVar(&opts.labels, "labels", false, "label landmarks on overlay images")
	flag.BoolVar(&opts.debug, "debug", false, "debug logging")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if hint := hintFor(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.height == 0 {
		return fmt.Errorf("usage: %s -front front.jpg -side side.jpg -height 178 [-backend ollama|llamacpp] [-url server_url] [-model name] [-save file] [-overlay dir]",
			filepath.Base(os.Args[0]))
	}

	cfgPath := opts.configPath
	if cfgPath == "" && utils.FileExists(config.GetConfigPath()) {
		cfgPath = config.GetConfigPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File, Caller: opts.debug})
	if err != nil {
		return err
	}

	if !utils.IsTypicalHeight(opts.height) {
		log.WithFields(logger.Fields{"height": opts.height}).
			Warnf("[main.run] height is outside the usual %.0f-%.0f cm range, check the unit", utils.MinTypicalHeight, utils.MaxTypicalHeight)
	}

	est, err := mfit.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := measureViews(ctx, est, opts, log)
	if err != nil {
		return err
	}

	if cfg.Output.OverlayDir != "" {
		for _, v := range []*mfit.View{res.Front, res.Side} {
			if v.Image == nil {
				continue
			}
			path, err := est.SaveOverlay(v, cfg.Output.OverlayDir, opts.labels)
			if err != nil {
				log.WithFields(logger.Fields{"view": v.Name, "error": err.Error()}).Warn("[main.run] overlay save failed")
				continue
			}
			log.WithFields(logger.Fields{"view": v.Name}).Infof("[main.run] wrote %s", path)
		}
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	rep := report.New(res.Measurements)
	rep.ID = res.ID
	if err := rep.Write(os.Stdout, format); err != nil {
		return err
	}

	if opts.save != "" {
		target := opts.save
		if target == "auto" {
			target = ""
		}
		path, err := rep.Save(target, format, opts.force)
		if err != nil {
			if errors.Is(err, report.ErrExists) {
				return fmt.Errorf("%w (use -force to overwrite)", err)
			}
			return err
		}
		log.WithFields(logger.Fields{"id": rep.ID}).Infof("[main.run] measurements saved to %s", path)
	}

	return nil
}

// measureViews detects or loads both views and runs the measurements
func measureViews(ctx context.Context, est *mfit.Estimator, opts options, log *logrus.Logger) (*mfit.Result, error) {
	if opts.frontLandmarks != "" || opts.sideLandmarks != "" {
		if opts.frontLandmarks == "" || opts.sideLandmarks == "" {
			return nil, fmt.Errorf("-front-landmarks and -side-landmarks must be given together")
		}
		front, err := mfit.LoadLandmarks(opts.frontLandmarks)
		if err != nil {
			return nil, err
		}
		side, err := mfit.LoadLandmarks(opts.sideLandmarks)
		if err != nil {
			return nil, err
		}
		log.Debug("[main.measureViews] using landmark files, skipping detection")
		return est.MeasureLandmarks(front, side, opts.height)
	}

	if opts.front == "" || opts.side == "" {
		return nil, fmt.Errorf("both -front and -side photos are required")
	}
	return est.Measure(ctx, opts.front, opts.side, opts.height)
}

func applyFlags(cfg *config.Config, opts options) {
	if opts.backend != "" {
		backend := strings.ToLower(opts.backend)
		if backend != cfg.Backend.Type && opts.url == "" {
			switch backend {
			case mfit.BackendOllama:
				cfg.Backend.URL = ollama.DefaultURL
			case mfit.BackendLlamaCpp:
				cfg.Backend.URL = llamacpp.DefaultURL
			}
		}
		cfg.Backend.Type = backend
	}
	if opts.url != "" {
		cfg.Backend.URL = opts.url
	}
	if opts.model != "" {
		cfg.Backend.Model = opts.model
	}
	if opts.format != "" {
		cfg.Output.Format = strings.ToLower(opts.format)
	}
	if opts.overlayDir != "" {
		cfg.Output.OverlayDir = opts.overlayDir
	}
	if opts.debug {
		cfg.Log.Level = "debug"
	}
}

// hintFor suggests what to change before trying again
func hintFor(err error) string {
	var missing *measure.MissingLandmarkError
	var incomplete *detection.IncompletePoseError
	switch {
	case errors.As(err, &missing):
		return fmt.Sprintf("The %s photo must show the %s clearly. Retake it with the whole body in frame.",
			missing.View, strings.ToLower(strings.ReplaceAll(missing.Landmark.String(), "_", " ")))
	case errors.As(err, &incomplete), errors.Is(err, detection.ErrNoPose):
		return "Stand in an A-pose against a plain background with your full body visible, then retake the photo."
	case errors.Is(err, measure.ErrInvalidInput):
		return "Check the height value and that the landmarks span the full body."
	}
	return ""
}
