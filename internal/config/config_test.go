package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/routeparser"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Serve.Port != DefaultPort {
		t.Errorf("Serve.Port = %d, want %d", cfg.Serve.Port, DefaultPort)
	}
	if cfg.Serve.Host != DefaultHost {
		t.Errorf("Serve.Host = %q, want %q", cfg.Serve.Host, DefaultHost)
	}
	if cfg.Mode != DefaultMode {
		t.Errorf("Mode = %q, want %q", cfg.Mode, DefaultMode)
	}
	if cfg.Compiler.CacheSize != DefaultCacheSize {
		t.Errorf("Compiler.CacheSize = %d, want %d", cfg.Compiler.CacheSize, DefaultCacheSize)
	}
	if cfg.Telemetry.MetricsNamespace != DefaultMetricsNamespace {
		t.Errorf("Telemetry.MetricsNamespace = %q, want %q", cfg.Telemetry.MetricsNamespace, DefaultMetricsNamespace)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if err == nil {
		t.Fatal("Expected error for missing config")
	}
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Errorf("missing config error should wrap os.ErrNotExist: %v", err)
	}

	configJSON := `{
  "mode": "named",
  "manifest": "routes.yaml",
  "serve": {
    "host": "0.0.0.0",
    "port": 8080
  },
  "compiler": {
    "cacheSize": 16
  },
  "s3": {
    "region": "eu-west-1",
    "bucket": "routes",
    "key": "prod/routes.yaml"
  },
  "logLevel": "debug"
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Serve.Port != 8080 {
		t.Errorf("Serve.Port = %d, want %d", cfg.Serve.Port, 8080)
	}
	if cfg.Serve.Host != "0.0.0.0" {
		t.Errorf("Serve.Host = %q, want %q", cfg.Serve.Host, "0.0.0.0")
	}
	if cfg.FieldMode() != routeparser.FieldsNamed {
		t.Errorf("FieldMode() = %s, want named", cfg.FieldMode())
	}
	if cfg.Compiler.CacheSize != 16 {
		t.Errorf("Compiler.CacheSize = %d, want 16", cfg.Compiler.CacheSize)
	}
	if cfg.S3.Bucket != "routes" || cfg.S3.Key != "prod/routes.yaml" {
		t.Errorf("S3 = %+v", cfg.S3)
	}
	if got := cfg.ManifestPath(); got != filepath.Join(tmpDir, "routes.yaml") {
		t.Errorf("ManifestPath() = %q, want %q", got, filepath.Join(tmpDir, "routes.yaml"))
	}
	if level, err := cfg.SlogLevel(); err != nil || level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v; want debug", level, err)
	}
	// Untouched sections keep their defaults.
	if cfg.Telemetry.TracerName != DefaultTracerName {
		t.Errorf("Telemetry.TracerName = %q, want %q", cfg.Telemetry.TracerName, DefaultTracerName)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(configPath, []byte("not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "C101") {
		t.Errorf("Expected C101 error, got: %v", err)
	}
}

func TestLoadFile_EmptyFieldsGetDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(configPath, []byte(`{"mode":"","serve":{"port":0}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Mode != DefaultMode {
		t.Errorf("Mode = %q, want %q", cfg.Mode, DefaultMode)
	}
	if cfg.Serve.Port != DefaultPort {
		t.Errorf("Serve.Port = %d, want %d", cfg.Serve.Port, DefaultPort)
	}
}

func TestSaveTo(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := New()
	cfg.Serve.Port = 9000
	cfg.Mode = "named"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Serve.Port != 9000 {
		t.Errorf("Serve.Port = %d, want %d", loaded.Serve.Port, 9000)
	}
	if loaded.Mode != "named" {
		t.Errorf("Mode = %q, want named", loaded.Mode)
	}

	loaded.Serve.Port = 9001
	if err := loaded.SaveTo(loaded.Path()); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	reloaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if reloaded.Serve.Port != 9001 {
		t.Errorf("Serve.Port = %d, want %d", reloaded.Serve.Port, 9001)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "named mode", mutate: func(c *Config) { c.Mode = "Named" }},
		{name: "unknown mode", mutate: func(c *Config) { c.Mode = "positional" }, wantCode: "C102"},
		{name: "negative port", mutate: func(c *Config) { c.Serve.Port = -1 }, wantCode: "C100"},
		{name: "large port", mutate: func(c *Config) { c.Serve.Port = 70000 }, wantCode: "C100"},
		{name: "negative cache", mutate: func(c *Config) { c.Compiler.CacheSize = -5 }, wantCode: "C100"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantCode: "C100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var ce *errors.Error
			if !stderrors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *errors.Error", err)
			}
			if ce.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", ce.Code, tt.wantCode)
			}
		})
	}
}

func TestServeAddress(t *testing.T) {
	cfg := New()
	cfg.Serve.Port = 8080
	cfg.Serve.Host = "0.0.0.0"

	if addr := cfg.ServeAddress(); addr != "0.0.0.0:8080" {
		t.Errorf("ServeAddress = %q, want %q", addr, "0.0.0.0:8080")
	}
}

func TestManifestPath(t *testing.T) {
	cfg := New()
	if got := cfg.ManifestPath(); got != "" {
		t.Errorf("ManifestPath() = %q, want empty", got)
	}

	cfg.Manifest = "routes.json"
	if got := cfg.ManifestPath(); got != filepath.Join(".", "routes.json") {
		t.Errorf("ManifestPath() = %q", got)
	}

	abs := filepath.Join(t.TempDir(), "routes.json")
	cfg.Manifest = abs
	if got := cfg.ManifestPath(); got != abs {
		t.Errorf("ManifestPath() = %q, want %q", got, abs)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := FindProjectRoot(nested); err == nil {
		t.Error("Expected error without " + ConfigFileName)
	}

	if err := New().SaveTo(filepath.Join(root, ConfigFileName)); err != nil {
		t.Fatal(err)
	}
	if !Exists(root) {
		t.Error("Exists should be true after SaveTo")
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot = %q, want %q", got, want)
	}
}
