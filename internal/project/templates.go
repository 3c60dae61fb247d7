package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/CollageCut/internal/engine"
	"github.com/piwi3910/CollageCut/internal/model"
)

// ErrInvalidTemplate marks a layout template whose frames do not tile the
// canvas.
var ErrInvalidTemplate = errors.New("invalid layout template")

// CheckTemplate reports whether t can seed a collage: it needs a name and
// frames that form a valid partition of the canvas.
func CheckTemplate(t model.LayoutTemplate) error {
	if t.Name == "" {
		return fmt.Errorf("%w %s: missing name", ErrInvalidTemplate, t.ID)
	}
	if err := engine.Validate(t.Cells()); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidTemplate, t.Name, err)
	}
	return nil
}

// validTemplates keeps the templates that pass CheckTemplate, in order, and
// joins the errors of the rest.
func validTemplates(templates []model.LayoutTemplate) ([]model.LayoutTemplate, error) {
	valid := make([]model.LayoutTemplate, 0, len(templates))
	var errs []error
	for _, t := range templates {
		if err := CheckTemplate(t); err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, t)
	}
	return valid, errors.Join(errs...)
}

// DefaultTemplatePath returns templates.json inside DefaultConfigDir,
// creating the directory.
func DefaultTemplatePath() (string, error) {
	dir := DefaultConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return filepath.Join(dir, "templates.json"), nil
}

// SaveTemplates writes the user templates to path. Nothing is written if any
// template is invalid.
func SaveTemplates(path string, store model.TemplateStore) error {
	if _, err := validTemplates(store.Templates); err != nil {
		return fmt.Errorf("failed to save templates: %w", err)
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal templates: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create templates directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write templates file: %w", err)
	}
	return nil
}

// LoadTemplates reads the user templates stored at path. A missing file
// gives an empty store.
//
// Templates that fail CheckTemplate are dropped. The store of the remaining
// templates is returned together with an error wrapping ErrInvalidTemplate
// for each one dropped, so callers can report them and carry on.
func LoadTemplates(path string) (model.TemplateStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewTemplateStore(), nil
		}
		return model.NewTemplateStore(), fmt.Errorf("failed to read templates file: %w", err)
	}
	var store model.TemplateStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.NewTemplateStore(), fmt.Errorf("failed to parse templates file: %w", err)
	}

	valid, err := validTemplates(store.Templates)
	store.Templates = valid
	return store, err
}

// LoadDefaultTemplates loads templates from DefaultTemplatePath, with the
// same partial result as LoadTemplates.
func LoadDefaultTemplates() (model.TemplateStore, error) {
	path, err := DefaultTemplatePath()
	if err != nil {
		return model.NewTemplateStore(), err
	}
	return LoadTemplates(path)
}

// SaveDefaultTemplates saves templates to DefaultTemplatePath.
func SaveDefaultTemplates(store model.TemplateStore) error {
	path, err := DefaultTemplatePath()
	if err != nil {
		return err
	}
	return SaveTemplates(path, store)
}
