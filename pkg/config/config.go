// Package config loads and validates run configuration for the
// neighbourhood similarity pipeline.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-neighbourhoods/pkg/algorithms"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/logging"
	"github.com/dd0wney/cluso-neighbourhoods/pkg/validation"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Defaults
const (
	DefaultThreshold  = 20.0
	DefaultTopK       = 5
	DefaultSampleSize = 5
)

// S3Config holds connection settings for s3:// sources.
type S3Config struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"` // custom endpoint, e.g. MinIO
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// Config is the full run configuration.
type Config struct {
	// Source is a local path or s3://bucket/key; a .sz suffix means snappy framed.
	Source string `yaml:"source"`
	// Threshold is the largest average price difference that links two neighbourhoods.
	Threshold float64 `yaml:"threshold"`
	// Start names the neighbourhood to traverse from; empty means the first node.
	Start           string   `yaml:"start"`
	TopK            int      `yaml:"top_k"`
	UnreachedPolicy string   `yaml:"unreached_policy"`
	Output          string   `yaml:"output"`
	SampleSize      int      `yaml:"sample_size"`
	LogLevel        string   `yaml:"log_level"`
	MetricsFile     string   `yaml:"metrics_file"`
	S3              S3Config `yaml:"s3"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Threshold:       DefaultThreshold,
		TopK:            DefaultTopK,
		UnreachedPolicy: algorithms.UnreachedAsZero.String(),
		Output:          OutputText,
		SampleSize:      DefaultSampleSize,
		LogLevel:        "info",
	}
}

// Load reads a YAML file on top of Default. An empty path returns Default.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays YAML from r onto cfg.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Policy returns the parsed unreached-node policy.
func (c Config) Policy() (algorithms.UnreachedPolicy, error) {
	return algorithms.ParseUnreachedPolicy(c.UnreachedPolicy)
}

// Level returns the parsed log level.
func (c Config) Level() logging.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// IsS3 reports whether the source is an S3 object.
func (c Config) IsS3() bool {
	return strings.HasPrefix(c.Source, "s3://")
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Required("Source", c.Source).
		NonNegativeFloat("Threshold", c.Threshold).
		Positive("TopK", c.TopK).
		NonNegative("SampleSize", c.SampleSize).
		OneOf("Output", c.Output, []string{OutputText, OutputJSON}).
		Custom("UnreachedPolicy", func() error {
			_, err := c.Policy()
			return err
		}).
		Custom("LogLevel", func() error {
			if _, ok := logging.ParseLevel(c.LogLevel); !ok {
				return fmt.Errorf("unknown log level %q", c.LogLevel)
			}
			return nil
		}).
		When(c.IsS3(), func(cv *validation.ConfigValidator) {
			cv.S3URI("Source", c.Source)
			cv.When(c.S3.AccessKeyID != "" || c.S3.SecretAccessKey != "", func(cv *validation.ConfigValidator) {
				cv.Required("S3.AccessKeyID", c.S3.AccessKeyID)
				cv.Required("S3.SecretAccessKey", c.S3.SecretAccessKey)
			})
		}).
		Validate()
}
