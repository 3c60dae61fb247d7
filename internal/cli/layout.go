package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/CollageCut/internal/engine"
	"github.com/piwi3910/CollageCut/internal/importer"
	"github.com/piwi3910/CollageCut/internal/model"
	"github.com/piwi3910/CollageCut/internal/project"
)

var errNoOutput = errors.New("imported layouts need --output to save")

// isProjectFile reports whether path names a saved project rather than an
// importable layout.
func isProjectFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == project.FileExtension || ext == ".json"
}

// loadLayout reads a saved project, or imports any layout file the importer
// supports into a new project named after the file.
func loadLayout(ctx context.Context, path string) (model.Project, error) {
	logger := loggerFromContext(ctx)

	if isProjectFile(path) {
		proj, err := project.Load(path)
		if err != nil {
			return model.Project{}, err
		}
		logger.Debug("loaded project", "file", path, "cells", len(proj.Cells))
		return proj, nil
	}

	result := importer.ImportFile(path)
	for _, w := range result.Warnings {
		logger.Warn(w, "file", path)
	}
	if !result.OK() {
		if len(result.Errors) == 0 {
			return model.Project{}, fmt.Errorf("failed to import %s: no cells", path)
		}
		return model.Project{}, fmt.Errorf("failed to import %s: %s", path, strings.Join(result.Errors, "; "))
	}
	logger.Debug("imported layout", "file", path, "cells", len(result.Cells))

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return model.NewProjectFromCells(name, result.Cells), nil
}

// openCollage builds an engine for proj with its initial layout as the
// reset target and its saved layout live. Both layouts must be valid.
func openCollage(ctx context.Context, proj model.Project) (*engine.Collage, error) {
	if err := engine.Validate(proj.Initial); err != nil {
		return nil, fmt.Errorf("project %q initial layout: %w", proj.Name, err)
	}
	c := engine.New(proj.Initial)
	c.SetLogger(loggerFromContext(ctx))
	if err := c.Load(proj.Current()); err != nil {
		return nil, fmt.Errorf("project %q: %w", proj.Name, err)
	}
	return c, nil
}

// editTarget returns where an edited layout is written: output when given,
// otherwise the input itself when it is a project.
func editTarget(input, output string) (string, error) {
	if output != "" {
		return output, nil
	}
	if isProjectFile(input) {
		return input, nil
	}
	return "", errNoOutput
}

// editProject loads input, runs edit on its collage and saves the result.
func editProject(ctx context.Context, input, output string, edit func(c *engine.Collage) error) (string, error) {
	target, err := editTarget(input, output)
	if err != nil {
		return "", err
	}
	proj, err := loadLayout(ctx, input)
	if err != nil {
		return "", err
	}
	c, err := openCollage(ctx, proj)
	if err != nil {
		return "", err
	}
	if err := edit(c); err != nil {
		return "", err
	}
	proj.Update(c.Snapshot())
	if err := project.Save(target, proj); err != nil {
		return "", err
	}
	loggerFromContext(ctx).Debug("saved project", "file", target, "cells", c.Len())
	return target, nil
}

// selectCell selects id when it is set, and returns the selected cell.
func selectCell(c *engine.Collage, id string) (model.Cell, error) {
	if id != "" {
		if err := c.SetSelected(id); err != nil {
			return model.Cell{}, err
		}
	}
	cell, ok := c.Selected()
	if !ok {
		return model.Cell{}, fmt.Errorf("no cell selected")
	}
	return cell, nil
}
