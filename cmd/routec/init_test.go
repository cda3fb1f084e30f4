package main

import (
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/routematch/internal/config"
	"github.com/vango-dev/routematch/internal/errors"
)

func TestRunInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "api")

	cfg := config.New()
	cfg.Mode = "named"
	cfg.Manifest = "routes.yaml"
	if err := runInit(cfg, dir, false); err != nil {
		t.Fatalf("runInit() = %v", err)
	}
	if want := filepath.Join(dir, config.ConfigFileName); cfg.Path() != want {
		t.Errorf("Path() = %q, want %q", cfg.Path(), want)
	}

	loaded, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if loaded.Mode != "named" || loaded.ManifestPath() != filepath.Join(dir, "routes.yaml") {
		t.Errorf("loaded mode %q manifest %q", loaded.Mode, loaded.ManifestPath())
	}

	err = runInit(config.New(), dir, false)
	if !stderrors.Is(err, errors.New("C103")) {
		t.Fatalf("second runInit() = %v, want C103", err)
	}

	if err := runInit(config.New(), dir, true); err != nil {
		t.Fatalf("runInit(force) = %v", err)
	}
	loaded, err = config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Mode != config.DefaultMode {
		t.Errorf("Mode after --force = %q, want %q", loaded.Mode, config.DefaultMode)
	}
}

func TestRunInit_InvalidMode(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New()
	cfg.Mode = "positional"

	if err := runInit(cfg, dir, false); !stderrors.Is(err, errors.New("C102")) {
		t.Errorf("runInit() = %v, want C102", err)
	}
	if config.Exists(dir) {
		t.Error("invalid config was written")
	}
}

func TestExplainCode(t *testing.T) {
	var b strings.Builder
	if err := explainCode(&b, "r105"); err != nil {
		t.Fatalf("explainCode() = %v", err)
	}
	if !strings.HasPrefix(b.String(), "R105 [route] Bad identifier character") {
		t.Errorf("explainCode() = %q", b.String())
	}

	if err := explainCode(&b, "X1"); !stderrors.Is(err, errors.New("S101")) {
		t.Errorf("explainCode(X1) = %v, want S101", err)
	}

	b.Reset()
	listCodes(&b)
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != len(errors.GetAllCodes()) {
		t.Errorf("listCodes() printed %d lines, want %d", len(lines), len(errors.GetAllCodes()))
	}
	if !strings.HasPrefix(lines[0], "C100") {
		t.Errorf("first line = %q, want C100 first", lines[0])
	}
}
