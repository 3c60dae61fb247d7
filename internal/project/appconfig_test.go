package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CollageCut/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.PosterMargin = 8.0
	cfg.Theme = "dark"
	cfg.AutoSaveInterval = 5
	cfg.RecentProjects = []string{"/tmp/proj1.collage", "/tmp/proj2.collage"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.PosterMargin != 8.0 {
		t.Errorf("expected PosterMargin=8.0, got %f", loaded.PosterMargin)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if loaded.AutoSaveInterval != 5 {
		t.Errorf("expected AutoSaveInterval=5, got %d", loaded.AutoSaveInterval)
	}
	if len(loaded.RecentProjects) != 2 {
		t.Errorf("expected 2 recent projects, got %d", len(loaded.RecentProjects))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DXFCanvasSize != defaults.DXFCanvasSize {
		t.Errorf("expected default DXF canvas size %f, got %f", defaults.DXFCanvasSize, cfg.DXFCanvasSize)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"theme":"light","recent_projects":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil after loading")
	}
	if cfg.Theme != "light" {
		t.Errorf("expected theme=light, got %s", cfg.Theme)
	}
	if cfg.PageSize != "A4" {
		t.Errorf("expected default page size A4, got %s", cfg.PageSize)
	}
}

func TestReadEnv(t *testing.T) {
	t.Setenv("COLLAGECUT_THEME", "dark")
	t.Setenv("COLLAGECUT_LOG_LEVEL", "debug")
	t.Setenv("COLLAGECUT_PAGE_SIZE", "Letter")
	t.Setenv("COLLAGECUT_CONFIG_DIR", "/tmp/collagecut-test")

	env, err := ReadEnv()
	if err != nil {
		t.Fatalf("ReadEnv failed: %v", err)
	}
	if env.ConfigDir != "/tmp/collagecut-test" {
		t.Errorf("expected config dir override, got %q", env.ConfigDir)
	}

	cfg := env.Apply(model.DefaultAppConfig())
	if cfg.Theme != "dark" || cfg.LogLevel != "debug" || cfg.PageSize != "Letter" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if got := DefaultConfigDir(); got != "/tmp/collagecut-test" {
		t.Errorf("DefaultConfigDir = %q, want override", got)
	}
}

func TestEnvOverridesEmptyKeepsConfig(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.Theme = "light"

	got := EnvOverrides{}.Apply(cfg)
	if got.Theme != "light" || got.LogLevel != cfg.LogLevel {
		t.Errorf("empty overrides changed config: %+v", got)
	}
}

func TestLoadEffectiveConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("COLLAGECUT_CONFIG_DIR", dir)
	t.Setenv("COLLAGECUT_LOG_LEVEL", "warn")

	cfg := model.DefaultAppConfig()
	cfg.Theme = "dark"
	if err := SaveAppConfig(filepath.Join(dir, "config.json"), cfg); err != nil {
		t.Fatal(err)
	}

	got, err := LoadEffectiveConfig()
	if err != nil {
		t.Fatalf("LoadEffectiveConfig failed: %v", err)
	}
	if got.Theme != "dark" {
		t.Errorf("expected theme from file, got %s", got.Theme)
	}
	if got.LogLevel != "warn" {
		t.Errorf("expected log level from env, got %s", got.LogLevel)
	}
}
