package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/routeparser"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "routec.json"

	// DefaultPort is the default playground server port.
	DefaultPort = 7070

	// DefaultHost is the default playground server host.
	DefaultHost = "localhost"

	// DefaultMode is the default capture field mode.
	DefaultMode = "unnamed"

	// DefaultCacheSize is the default number of compiled routes kept.
	DefaultCacheSize = 1024

	// DefaultMetricsNamespace prefixes every exported metric.
	DefaultMetricsNamespace = "routematch"

	// DefaultTracerName is the OpenTelemetry instrumentation name.
	DefaultTracerName = "github.com/vango-dev/routematch"

	// DefaultLogLevel is the default slog level.
	DefaultLogLevel = "info"
)

// Config represents the complete routec.json configuration.
type Config struct {
	// Mode is the field mode used when neither the manifest entry nor the
	// command line names one: "named" or "unnamed".
	Mode string `json:"mode,omitempty"`

	// Manifest is the path to the route manifest (.json, .yaml or .yml).
	Manifest string `json:"manifest,omitempty"`

	// Serve contains playground server configuration.
	Serve ServeConfig `json:"serve,omitempty"`

	// Compiler contains route compiler configuration.
	Compiler CompilerConfig `json:"compiler,omitempty"`

	// Telemetry contains metrics and tracing configuration.
	Telemetry TelemetryConfig `json:"telemetry,omitempty"`

	// S3 locates a manifest stored in S3.
	S3 S3Config `json:"s3,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"logLevel,omitempty"`

	// NoColor disables ANSI colors in terminal output.
	NoColor bool `json:"noColor,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServeConfig contains playground server settings.
type ServeConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// CompilerConfig contains compiler settings.
type CompilerConfig struct {
	// CacheSize bounds the compiled route cache. Zero disables caching.
	CacheSize int `json:"cacheSize,omitempty"`
}

// TelemetryConfig names the exported metrics and spans.
type TelemetryConfig struct {
	MetricsNamespace string `json:"metricsNamespace,omitempty"`
	TracerName       string `json:"tracerName,omitempty"`
}

// S3Config locates a manifest object in S3 or an S3-compatible store.
type S3Config struct {
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
	Bucket   string `json:"bucket,omitempty"`
	Key      string `json:"key,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Mode: DefaultMode,
		Serve: ServeConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Compiler: CompilerConfig{
			CacheSize: DefaultCacheSize,
		},
		Telemetry: TelemetryConfig{
			MetricsNamespace: DefaultMetricsNamespace,
			TracerName:       DefaultTracerName,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Load reads configuration from the specified directory.
// It looks for routec.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C101").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass --config").
				Wrap(err)
		}
		return nil, errors.New("C101").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C101").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("C101").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C101").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return "."
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = DefaultMode
	}
	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}
	if c.Telemetry.MetricsNamespace == "" {
		c.Telemetry.MetricsNamespace = DefaultMetricsNamespace
	}
	if c.Telemetry.TracerName == "" {
		c.Telemetry.TracerName = DefaultTracerName
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := routeparser.ParseFieldMode(c.Mode); err != nil {
		return errors.New("C102").
			WithDetail("mode is " + strconv.Quote(c.Mode) + ", want \"named\" or \"unnamed\"").
			Wrap(err)
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New("C100").
			WithDetail("serve.port must be between 0 and 65535")
	}
	if c.Compiler.CacheSize < 0 {
		return errors.New("C100").
			WithDetail("compiler.cacheSize must not be negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		return errors.New("C100").
			WithDetail("logLevel must be one of debug, info, warn or error").
			Wrap(err)
	}
	return nil
}

// FieldMode returns the configured field mode. Call Validate first; an
// unknown mode falls back to routeparser.FieldsUnnamed.
func (c *Config) FieldMode() routeparser.FieldMode {
	mode, err := routeparser.ParseFieldMode(c.Mode)
	if err != nil {
		return routeparser.FieldsUnnamed
	}
	return mode
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

// ServeAddress returns the listen address for the playground server.
func (c *Config) ServeAddress() string {
	return c.Serve.Host + ":" + strconv.Itoa(c.Serve.Port)
}

// ManifestPath returns the manifest path resolved against the config
// directory, or "" when none is configured.
func (c *Config) ManifestPath() string {
	if c.Manifest == "" || filepath.IsAbs(c.Manifest) {
		return c.Manifest
	}
	return filepath.Join(c.Dir(), c.Manifest)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the directory containing
// routec.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("C101").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or its nearest parent holding routec.json. When none exists it returns the
// defaults.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return New(), nil
	}

	return Load(root)
}
