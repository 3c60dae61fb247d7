package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/piwi3910/CollageCut/internal/export"
	"github.com/piwi3910/CollageCut/internal/importer"
	"github.com/piwi3910/CollageCut/internal/model"
	"github.com/piwi3910/CollageCut/internal/project"
)

var (
	projectFilter = storage.NewExtensionFileFilter([]string{project.FileExtension, ".json"})
	layoutFilter  = storage.NewExtensionFileFilter([]string{".csv", ".tsv", ".txt", ".xlsx", ".xlsm", ".dxf", ".toml"})
	imageFilter   = storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"})
)

// ─── Projects ──────────────────────────────────────────────

func (a *App) saveProject(saveAs bool) {
	if !saveAs && a.projectPath != "" {
		if err := a.writeProject(a.projectPath); err != nil {
			dialog.ShowError(err, a.window)
		}
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := a.writeProject(path); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(a.project.Name + project.FileExtension)
	d.SetFilter(projectFilter)
	d.Show()
}

// writeProject stores the live layout in the project and saves it to path.
func (a *App) writeProject(path string) error {
	a.project.Update(a.collage.Snapshot())
	if err := project.Save(path, a.project); err != nil {
		return err
	}
	a.projectPath = path
	a.dirty = false
	a.updateTitle()
	a.rememberRecent(path)
	a.logger.Info("saved project", "file", path, "cells", a.collage.Len())
	return nil
}

func (a *App) openProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.openProjectFile(reader.URI().Path())
	}, a.window)
	d.SetFilter(projectFilter)
	d.Show()
}

func (a *App) openProjectFile(path string) {
	proj, err := project.Load(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	if a.switchProject(proj, path) {
		a.rememberRecent(path)
	}
}

// rememberRecent records path in the recent list and rebuilds the menus.
func (a *App) rememberRecent(path string) {
	a.config.AddRecentProject(path)
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("could not save recent projects", "err", err)
	}
	a.SetupMenus()
}

func (a *App) recentMenu() *fyne.Menu {
	if len(a.config.RecentProjects) == 0 {
		item := fyne.NewMenuItem("(none)", nil)
		item.Disabled = true
		return fyne.NewMenu("", item)
	}
	items := make([]*fyne.MenuItem, 0, len(a.config.RecentProjects))
	for _, path := range a.config.RecentProjects {
		items = append(items, fyne.NewMenuItem(filepath.Base(path), func() {
			a.confirmDiscard(func() { a.openProjectFile(path) })
		}))
	}
	return fyne.NewMenu("", items...)
}

// ─── Import ────────────────────────────────────────────────

func (a *App) importLayout() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		a.handleImportResult(path, importer.ImportFile(path))
	}, a.window)
	d.SetFilter(layoutFilter)
	d.Show()
}

// handleImportResult opens a successful import as a new untitled project.
// A layout with errors is never opened, since skipping rows leaves gaps.
func (a *App) handleImportResult(path string, result importer.ImportResult) {
	for _, w := range result.Warnings {
		a.logger.Warn(w, "file", path)
	}

	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
		return
	}
	if len(result.Cells) == 0 {
		dialog.ShowInformation("Nothing Imported", "The file does not contain any cells.", a.window)
		return
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !a.switchProject(model.NewProjectFromCells(name, result.Cells), "") {
		return
	}
	a.markDirty()

	msg := fmt.Sprintf("Successfully imported %d cells.", len(result.Cells))
	if len(result.Warnings) > 0 {
		msg += fmt.Sprintf("\n\n%d warnings:\n%s", len(result.Warnings), strings.Join(result.Warnings, "\n"))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

// ─── Images ────────────────────────────────────────────────

func (a *App) chooseImage() {
	sel, ok := a.collage.Selected()
	if !ok {
		return
	}
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		payload := sel.Payload
		payload.Image = reader.URI().Path()
		if err := a.collage.SetPayload(sel.ID, payload); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFilter(imageFilter)
	d.Show()
}

// ─── Export ────────────────────────────────────────────────

// exportTo asks for a destination named after the project and runs write.
func (a *App) exportTo(kind, ext string, write func(path string, cells []model.Cell) error) {
	cells := a.collage.Cells()
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		// Close before writing; the exporters create the file themselves.
		writer.Close()
		if err := write(path, cells); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export %s: %w", kind, err), a.window)
			return
		}
		a.logger.Info("exported", "kind", kind, "file", path)
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s saved to %s", kind, path), a.window)
	}, a.window)
	d.SetFileName(a.project.Name + ext)
	d.Show()
}

func (a *App) exportPDF() {
	opts := export.PosterOptionsFromConfig(a.project.Name, a.config)
	a.exportTo("Poster", ".pdf", func(path string, cells []model.Cell) error {
		return export.ExportPDF(path, cells, opts)
	})
}

func (a *App) exportLabels() {
	a.exportTo("Labels", "-labels.pdf", export.ExportLabels)
}

func (a *App) exportDXF() {
	opts := export.DXFOptionsFromConfig(a.config)
	a.exportTo("DXF", ".dxf", func(path string, cells []model.Cell) error {
		return export.ExportDXF(path, cells, opts)
	})
}

func (a *App) exportExcel() {
	a.exportTo("Excel", ".xlsx", export.ExportExcel)
}
