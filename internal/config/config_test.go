package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graph.Threshold != 2 {
		t.Errorf("expected threshold 2, got %d", cfg.Graph.Threshold)
	}
	if cfg.Graph.StrengthScale != 10 {
		t.Errorf("expected strength scale 10, got %g", cfg.Graph.StrengthScale)
	}
	if cfg.Layout.Bounds.Z != 50 {
		t.Errorf("expected z bound 50, got %g", cfg.Layout.Bounds.Z)
	}
	if cfg.Server.FPS != 60 {
		t.Errorf("expected 60 fps, got %d", cfg.Server.FPS)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	dir := ConfigDir()
	if dir != "/tmp/test-xdg/galaxy" {
		t.Errorf("expected /tmp/test-xdg/galaxy, got %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	dir = ConfigDir()
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", "galaxy")
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := Default()
	cfg.Layout.Damping = 0.95
	cfg.Server.FPS = 30

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Layout.Damping != 0.95 {
		t.Errorf("expected damping 0.95, got %g", loaded.Layout.Damping)
	}
	if loaded.Server.FPS != 30 {
		t.Errorf("expected fps 30, got %d", loaded.Server.FPS)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[layout]\nrepulsion = 250.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.Repulsion != 250 {
		t.Errorf("expected repulsion 250, got %g", cfg.Layout.Repulsion)
	}
	if cfg.Layout.Damping != Default().Layout.Damping {
		t.Errorf("unset keys should keep defaults, got damping %g", cfg.Layout.Damping)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GALAXY_DB", "/data/episodes.db")
	t.Setenv("GALAXY_ADDR", ":9000")
	t.Setenv("GALAXY_SEED", "42")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DB != "/data/episodes.db" || cfg.Server.Addr != ":9000" || cfg.Graph.Seed != 42 {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_InvalidRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[layout]\ndamping = 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for damping >= 1")
	}
}

func TestEnsureExists(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "galaxy", "config.toml")); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}
