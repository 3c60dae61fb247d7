package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/CollageCut/internal/engine"
	"github.com/piwi3910/CollageCut/internal/model"
)

// FileExtension is the extension of saved collage projects.
const FileExtension = ".collage"

// Save writes a project to path as indented JSON, creating parent
// directories as needed.
func Save(path string, proj model.Project) error {
	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Load reads a project from path. A project saved without an initial layout
// uses its current cells as the initial layout. The initial layout is the
// reset target, so a project whose initial layout is not a valid partition
// is rejected with an error wrapping engine.ErrInvalidLayout. The current
// cells are left for the caller to check.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var proj model.Project
	if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if len(proj.Cells) == 0 {
		return model.Project{}, fmt.Errorf("invalid project file: no cells")
	}
	if len(proj.Initial) == 0 {
		proj.Initial = append([]model.Cell(nil), proj.Cells...)
	}
	if err := engine.Validate(proj.Initial); err != nil {
		return model.Project{}, fmt.Errorf("invalid project file: initial layout: %w", err)
	}
	return proj, nil
}
