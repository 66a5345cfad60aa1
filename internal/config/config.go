package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/menta2k/mfit/pkg/measure"
)

// Environment variables that override file settings
const (
	EnvBackend  = "MFIT_BACKEND"
	EnvURL      = "MFIT_URL"
	EnvModel    = "MFIT_MODEL"
	EnvLogLevel = "MFIT_LOG_LEVEL"
)

// Config holds the application configuration
type Config struct {
	Backend      BackendConfig        `json:"backend"`
	Analyzer     AnalyzerConfig       `json:"analyzer"`
	Processing   ProcessingConfig     `json:"processing"`
	Coefficients measure.Coefficients `json:"coefficients"`
	Output       OutputConfig         `json:"output"`
	Log          LogConfig            `json:"log"`
}

// BackendConfig selects the vision model server
type BackendConfig struct {
	Type  string `json:"type" validate:"required,oneof=ollama llamacpp"`
	URL   string `json:"url" validate:"required,url"`
	Model string `json:"model" validate:"required"`
}

// AnalyzerConfig holds configuration for photo checks
type AnalyzerConfig struct {
	SupportedFormats []string `json:"supported_formats" validate:"required,min=1,dive,required"`
	MinImageSize     int      `json:"min_image_size" validate:"gte=1"`
}

// ProcessingConfig controls how images are sent to the model
type ProcessingConfig struct {
	SendFormat  string `json:"send_format" validate:"oneof=jpg jpeg png"`
	SendMaxSide int    `json:"send_max_side" validate:"gte=0"`
	SendQuality int    `json:"send_quality" validate:"gte=1,lte=100"`
}

// OutputConfig holds configuration for report and overlay output
type OutputConfig struct {
	Format     string `json:"format" validate:"oneof=text json"`
	OverlayDir string `json:"overlay_dir"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `json:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	File  string `json:"file"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			Type:  "ollama",
			URL:   "http://localhost:11434",
			Model: "qwen2.5vl:7b",
		},
		Analyzer: AnalyzerConfig{
			SupportedFormats: []string{"jpg", "jpeg", "png", "webp"},
			MinImageSize:     100,
		},
		Processing: ProcessingConfig{
			SendFormat:  "jpg",
			SendMaxSide: 1024,
			SendQuality: 90,
		},
		Coefficients: measure.DefaultCoefficients(),
		Output: OutputConfig{
			Format: "text",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads .env if present, then the config file (defaults when filename
// is empty), and applies environment overrides. The result is not validated,
// so callers can layer their own overrides before calling Validate.
func Load(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if filename != "" {
		loaded, err := LoadFromFile(filename)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFromFile loads configuration from a JSON file. Fields missing from the
// file keep their defaults.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides backend and log settings from the environment
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" {
		c.Backend.Type = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvURL)); v != "" {
		c.Backend.URL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvModel)); v != "" {
		c.Backend.Model = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := NewValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := c.Coefficients.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// NewValidator returns a validator that reports JSON field names
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "mfit", "config.json")
}
