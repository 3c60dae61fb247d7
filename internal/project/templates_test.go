package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CollageCut/internal/engine"
	"github.com/piwi3910/CollageCut/internal/model"
)

func TestSaveAndLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	store := model.NewTemplateStore()
	cells := model.BuiltInTemplates[4].Cells()
	tmpl := model.NewLayoutTemplate("Triptych", "Feature with two stacked", cells)
	store.Add(tmpl)

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}

	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	if loaded.Templates[0].Name != "Triptych" {
		t.Errorf("expected 'Triptych', got %q", loaded.Templates[0].Name)
	}
	if len(loaded.Templates[0].Frames) != 3 {
		t.Errorf("expected 3 frames, got %d", len(loaded.Templates[0].Frames))
	}
	if loaded.Templates[0].Frames[0] != cells[0].Frame {
		t.Errorf("frame mismatch: %v vs %v", loaded.Templates[0].Frames[0], cells[0].Frame)
	}
}

func TestLoadTemplates_NotFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.json")

	store, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %d templates", len(store.Templates))
	}
}

func TestSaveAndLoadTemplates_Multiple(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	store := model.NewTemplateStore()
	store.Add(model.NewLayoutTemplate("T1", "First", model.BuiltInTemplates[0].Cells()))
	store.Add(model.NewLayoutTemplate("T2", "Second", model.BuiltInTemplates[1].Cells()))
	store.Add(model.NewLayoutTemplate("T3", "Third", model.BuiltInTemplates[2].Cells()))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}
	if len(loaded.Templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(loaded.Templates))
	}
	if got := len(loaded.All()); got != 3+len(model.BuiltInTemplates) {
		t.Errorf("expected built-ins ahead of stored templates, got %d", got)
	}
}

func TestSaveDefaultTemplatesUsesConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("COLLAGECUT_CONFIG_DIR", dir)

	store := model.NewTemplateStore()
	store.Add(model.NewLayoutTemplate("Env", "", model.BuiltInTemplates[3].Cells()))
	if err := SaveDefaultTemplates(store); err != nil {
		t.Fatalf("SaveDefaultTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(filepath.Join(dir, "templates.json"))
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}
	if len(loaded.Templates) != 1 || loaded.Templates[0].Name != "Env" {
		t.Errorf("unexpected store: %+v", loaded.Templates)
	}
}

func TestCheckTemplate(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    model.LayoutTemplate
		wantErr error
	}{
		{"built-in grid", model.BuiltInTemplates[3], nil},
		{"no frames", model.LayoutTemplate{Name: "Empty"}, engine.ErrNoCells},
		{"gap", model.LayoutTemplate{Name: "Gap", Frames: []model.Rect{{X: 0, Y: 0, Width: 0.5, Height: 1}}}, engine.ErrCoverage},
		{"sliver", model.LayoutTemplate{Name: "Sliver", Frames: []model.Rect{
			{X: 0, Y: 0, Width: 0.9, Height: 1},
			{X: 0.9, Y: 0, Width: 0.1, Height: 1},
		}}, engine.ErrTooSmall},
		{"unnamed", model.LayoutTemplate{ID: "x", Frames: []model.Rect{model.Canvas}}, ErrInvalidTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTemplate(tt.tmpl)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected valid template, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidTemplate) || !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadTemplatesDropsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	data := []byte(`{"templates":[
		{"id":"ok","name":"Halves","frames":[{"x":0,"y":0,"width":0.5,"height":1},{"x":0.5,"y":0,"width":0.5,"height":1}]},
		{"id":"bad","name":"Overscan","frames":[{"x":0,"y":0,"width":0.7,"height":1},{"x":0.5,"y":0,"width":0.5,"height":0.1}]}
	]}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	store, err := LoadTemplates(path)
	if !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}
	if len(store.Templates) != 1 || store.Templates[0].ID != "ok" {
		t.Fatalf("expected only the valid template, got %+v", store.Templates)
	}

	proj := store.Templates[0].ToProject("From template")
	if err := engine.Validate(proj.Initial); err != nil {
		t.Errorf("kept template should seed a valid project: %v", err)
	}
}

func TestSaveTemplatesRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	store := model.NewTemplateStore()
	store.Add(model.LayoutTemplate{ID: "bad", Name: "Gap", Frames: []model.Rect{{X: 0, Y: 0, Width: 0.5, Height: 1}}})

	if err := SaveTemplates(path, store); !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an invalid store")
	}
}

func TestLoadTemplatesParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	store, err := LoadTemplates(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if len(store.All()) != len(model.BuiltInTemplates) {
		t.Error("built-ins should still be offered after a parse error")
	}
}
