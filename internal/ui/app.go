package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/CollageCut/internal/engine"
	"github.com/piwi3910/CollageCut/internal/model"
	"github.com/piwi3910/CollageCut/internal/project"
	"github.com/piwi3910/CollageCut/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	app       fyne.App
	window    fyne.Window
	logger    *log.Logger
	config    model.AppConfig
	templates model.TemplateStore

	project     model.Project
	projectPath string
	dirty       bool
	collage     *engine.Collage
	unsubscribe func()
	stopSave    chan struct{}

	// UI references for dynamic updates
	canvas *widgets.CollageCanvas
	status *ttwidget.Label
}

// NewApp loads settings and templates and opens an untitled project.
func NewApp(application fyne.App, window fyne.Window, logger *log.Logger) *App {
	a := &App{
		app:    application,
		window: window,
		logger: logger,
	}

	cfg, err := project.LoadEffectiveConfig()
	if err != nil {
		logger.Warn("using default settings", "err", err)
	}
	a.config = cfg

	templates, err := project.LoadDefaultTemplates()
	if err != nil {
		logger.Warn("could not load templates", "err", err)
	}
	a.templates = templates

	a.applyConfig()
	if err := a.setProject(model.NewProject(), ""); err != nil {
		logger.Fatal("could not create a project", "err", err)
	}
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	newMenu := fyne.NewMenuItem("New from Template", nil)
	newMenu.ChildMenu = a.templateMenu()

	recentMenu := fyne.NewMenuItem("Open Recent", nil)
	recentMenu.ChildMenu = a.recentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.confirmDiscard(func() { a.switchProject(model.NewProject(), "") })
		}),
		newMenu,
		fyne.NewMenuItem("Open Project...", func() {
			a.confirmDiscard(a.openProject)
		}),
		recentMenu,
		fyne.NewMenuItem("Save Project", func() {
			a.saveProject(false)
		}),
		fyne.NewMenuItem("Save Project As...", func() {
			a.saveProject(true)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Layout...", func() {
			a.confirmDiscard(a.importLayout)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Poster...", func() {
			a.exportPDF()
		}),
		fyne.NewMenuItem("Export Cell Labels...", func() {
			a.exportLabels()
		}),
		fyne.NewMenuItem("Export DXF...", func() {
			a.exportDXF()
		}),
		fyne.NewMenuItem("Export Excel...", func() {
			a.exportExcel()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.confirmDiscard(a.window.Close)
		}),
	)

	cellMenu := fyne.NewMenu("Cell",
		fyne.NewMenuItem("Split Vertically", func() { a.split(model.AxisVertical) }),
		fyne.NewMenuItem("Split Horizontally", func() { a.split(model.AxisHorizontal) }),
		fyne.NewMenuItem("Merge", a.merge),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Recolour", a.recolour),
		fyne.NewMenuItem("Set Image...", a.chooseImage),
		fyne.NewMenuItem("Clear Image", a.clearImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Layout", a.reset),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Layout Templates...", a.showTemplatesDialog),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
		fyne.NewMenuItem("Backup / Restore...", a.showImportExportDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, cellMenu, toolsMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About CollageCut",
		"CollageCut: Collage Layout Editor\n\n"+
			"Split, merge and resize the cells of a collage,\n"+
			"then export it as a poster, labels, DXF or Excel.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.canvas = widgets.NewCollageCanvas(a.collage)
	a.canvas.OutlineCells = a.config.OutlineCells
	a.canvas.ShowLabels = a.config.ShowCellLabels

	a.status = newStatusLabel()
	a.updateStatus()

	toolbar := container.NewHBox(
		newIconButtonWithTooltip(theme.NewThemedResource(splitVerticalIcon), "Split vertically (left/right)", func() {
			a.split(model.AxisVertical)
		}),
		newIconButtonWithTooltip(theme.NewThemedResource(splitHorizontalIcon), "Split horizontally (top/bottom)", func() {
			a.split(model.AxisHorizontal)
		}),
		newIconButtonWithTooltip(theme.ContentRemoveIcon(), "Merge the selected cell into its neighbours", a.merge),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ColorPaletteIcon(), "Give the selected cell a new colour", a.recolour),
		newIconButtonWithTooltip(theme.FileImageIcon(), "Show an image in the selected cell", a.chooseImage),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Reset to the initial layout", a.reset),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save project", func() { a.saveProject(false) }),
	)

	return container.NewBorder(toolbar, a.status, nil, nil, a.canvas)
}

// ─── Collage wiring ────────────────────────────────────────

// setProject replaces the open project and rebuilds its collage. A project
// whose initial layout is invalid is refused and the open project is kept.
func (a *App) setProject(proj model.Project, path string) error {
	if err := engine.Validate(proj.Initial); err != nil {
		return fmt.Errorf("project %q has an invalid initial layout: %w", proj.Name, err)
	}
	c := engine.New(proj.Initial)
	c.SetLogger(a.logger)
	if err := c.Load(proj.Current()); err != nil {
		a.logger.Warn("saved layout is invalid, using the initial layout", "project", proj.Name, "err", err)
	}

	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.project = proj
	a.projectPath = path
	a.collage = c
	a.unsubscribe = c.Subscribe(a)
	a.dirty = false

	if a.canvas != nil {
		a.canvas.SetCollage(c)
	}
	a.updateStatus()
	a.updateTitle()
	a.logger.Debug("opened project", "name", proj.Name, "cells", c.Len(), "file", path)
	return nil
}

// switchProject switches to proj, reporting a refused project in a dialog.
func (a *App) switchProject(proj model.Project, path string) bool {
	if err := a.setProject(proj, path); err != nil {
		a.logger.Error("could not open project", "name", proj.Name, "err", err)
		dialog.ShowError(err, a.window)
		return false
	}
	return true
}

// SelectionChanged implements engine.Listener.
func (a *App) SelectionChanged(_ *engine.Collage, _ model.Cell) {
	a.refreshCanvas()
	a.updateStatus()
}

// CollageChanged implements engine.Listener.
func (a *App) CollageChanged(_ *engine.Collage) {
	a.markDirty()
	a.refreshCanvas()
	a.updateStatus()
}

// StateChanged implements engine.Listener. Only frames changed.
func (a *App) StateChanged(_ *engine.Collage, _ model.Snapshot) {
	a.markDirty()
	a.refreshCanvas()
	a.updateStatus()
}

func (a *App) refreshCanvas() {
	if a.canvas != nil {
		a.canvas.Refresh()
	}
}

func (a *App) markDirty() {
	if !a.dirty {
		a.dirty = true
		a.updateTitle()
	}
}

func (a *App) updateTitle() {
	title := "CollageCut - " + a.project.Name
	if a.dirty {
		title += " *"
	}
	a.window.SetTitle(title)
}

func (a *App) updateStatus() {
	if a.status == nil {
		return
	}
	text := fmt.Sprintf("%d cells", a.collage.Len())
	if sel, ok := a.collage.Selected(); ok {
		text += fmt.Sprintf(" | Selected: %s %s", sel.DisplayName(), sel.Frame)
	}
	a.status.SetText(text)
	a.status.SetToolTip(text)
}

// ─── Cell actions ──────────────────────────────────────────

func (a *App) split(axis model.Axis) {
	if !a.collage.SplitSelectedCell(axis) {
		a.showRejected("Cannot split", "Both halves must be at least the minimum cell size.")
	}
}

func (a *App) merge() {
	if !a.collage.MergeSelectedCell() {
		a.showRejected("Cannot merge", "No neighbour can take the place of the selected cell.")
	}
}

func (a *App) recolour() {
	sel, ok := a.collage.Selected()
	if !ok {
		return
	}
	payload := sel.Payload
	for payload.Color == sel.Payload.Color {
		payload.Color = model.RandomPayload().Color
	}
	a.setPayload(sel.ID, payload)
}

func (a *App) clearImage() {
	sel, ok := a.collage.Selected()
	if !ok || sel.Payload.Image == "" {
		return
	}
	payload := sel.Payload
	payload.Image = ""
	a.setPayload(sel.ID, payload)
}

// setPayload updates a cell's payload, logging an id the collage no longer
// knows.
func (a *App) setPayload(id string, p model.Payload) bool {
	if err := a.collage.SetPayload(id, p); err != nil {
		a.logger.Debug("payload not applied", "cell", id, "err", err)
		return false
	}
	return true
}

func (a *App) reset() {
	dialog.ShowConfirm("Reset Layout", "Discard all changes and return to the initial layout?", func(ok bool) {
		if ok {
			a.collage.Reset()
		}
	}, a.window)
}

func (a *App) showRejected(title, msg string) {
	a.logger.Debug("operation rejected", "op", title)
	dialog.ShowInformation(title, msg, a.window)
}

// confirmDiscard runs next, first asking when there are unsaved changes.
func (a *App) confirmDiscard(next func()) {
	if !a.dirty {
		next()
		return
	}
	dialog.ShowConfirm("Unsaved Changes", "Discard the changes to "+a.project.Name+"?", func(ok bool) {
		if ok {
			next()
		}
	}, a.window)
}

// ─── Config ────────────────────────────────────────────────

// applyConfig applies theme, log level, canvas options and auto-save from
// the current config.
func (a *App) applyConfig() {
	a.app.Settings().SetTheme(ThemeFromConfig(a.config.Theme))

	if level, err := log.ParseLevel(a.config.LogLevel); err == nil {
		a.logger.SetLevel(level)
	}

	if a.canvas != nil {
		a.canvas.OutlineCells = a.config.OutlineCells
		a.canvas.ShowLabels = a.config.ShowCellLabels
		a.canvas.Refresh()
	}

	a.startAutoSave()
}

// startAutoSave (re)starts the auto-save ticker for the configured interval.
func (a *App) startAutoSave() {
	if a.stopSave != nil {
		close(a.stopSave)
		a.stopSave = nil
	}
	if a.config.AutoSaveInterval <= 0 {
		return
	}

	stop := make(chan struct{})
	a.stopSave = stop
	ticker := time.NewTicker(time.Duration(a.config.AutoSaveInterval) * time.Minute)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fyne.Do(a.autoSave)
			case <-stop:
				return
			}
		}
	}()
}

// autoSave writes the project when it has a file and unsaved changes.
func (a *App) autoSave() {
	if !a.dirty || a.projectPath == "" {
		return
	}
	if err := a.writeProject(a.projectPath); err != nil {
		a.logger.Error("auto-save failed", "file", a.projectPath, "err", err)
		return
	}
	a.logger.Info("auto-saved", "file", a.projectPath)
}
