// Package config loads the optional account.yaml settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/account/internal/model"
	"github.com/idilsaglam/account/internal/photo"
)

const (
	// EnvPath overrides the config location, like -config.
	EnvPath         = "ACCOUNT_CONFIG"
	DefaultFileName = "account.yaml"
)

const (
	SinkLog  = "log"
	SinkFile = "file"
)

type Config struct {
	LogLevel    string      `yaml:"log_level"`
	LogFile     string      `yaml:"log_file"`
	Theme       string      `yaml:"theme"`
	MaxChildren int         `yaml:"max_children"` // 0 = unlimited
	Photo       PhotoConfig `yaml:"photo"`
	Sink        SinkConfig  `yaml:"sink"`
}

type PhotoConfig struct {
	Placeholder  string `yaml:"placeholder"`
	MaxBytes     int    `yaml:"max_bytes"`
	MaxDimension int    `yaml:"max_dimension"` // 0 keeps uploads as-is
}

type SinkConfig struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		LogFile:  "account.log",
		Theme:    "classic",
		Photo: PhotoConfig{
			Placeholder: model.DefaultPhoto,
			MaxBytes:    photo.DefaultMaxBytes,
		},
		Sink: SinkConfig{Type: SinkLog},
	}
}

// Load reads path, falling back to $ACCOUNT_CONFIG and then ./account.yaml.
// Only an explicitly named file has to exist; otherwise defaults apply.
func Load(path string) (Config, error) {
	explicit := true
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvPath))
	}
	if path == "" {
		path, explicit = DefaultFileName, false
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Sink.Type {
	case SinkLog:
	case SinkFile:
		if strings.TrimSpace(c.Sink.Path) == "" {
			return fmt.Errorf("sink.path is required for the file sink")
		}
	default:
		return fmt.Errorf("unknown sink.type %q (want %s or %s)", c.Sink.Type, SinkLog, SinkFile)
	}
	switch strings.ToLower(c.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if c.MaxChildren < 0 || c.Photo.MaxBytes < 0 || c.Photo.MaxDimension < 0 {
		return fmt.Errorf("max_children, photo.max_bytes and photo.max_dimension must not be negative")
	}
	return nil
}

// PhotoOptions converts the photo section for the decoder.
func (c Config) PhotoOptions() photo.Options {
	return photo.Options{MaxBytes: c.Photo.MaxBytes, MaxDimension: c.Photo.MaxDimension}
}
