package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CollageCut/internal/model"
	"github.com/piwi3910/CollageCut/internal/project"
)

// ─── Layout Templates Dialog ───────────────────────────────

func (a *App) showTemplatesDialog() {
	list := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		list.RemoveAll()

		header := container.NewGridWithColumns(5,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Cells", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Description", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		)
		list.Add(header)
		list.Add(widget.NewSeparator())

		for _, t := range a.templates.All() {
			deleteBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.templates.Remove(t.ID)
				a.saveTemplates()
				refreshList()
			})
			if t.BuiltIn {
				deleteBtn.Disable()
			}
			desc := widget.NewLabel(t.Description)
			desc.Truncation = fyne.TextTruncateEllipsis
			row := container.NewGridWithColumns(5,
				widget.NewLabel(t.Name),
				widget.NewLabel(fmt.Sprintf("%d", len(t.Frames))),
				desc,
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.confirmDiscard(func() { a.applyTemplate(t) })
				}),
				deleteBtn,
			)
			list.Add(row)
		}
	}

	refreshList()

	saveBtn := widget.NewButtonWithIcon("Save Current Layout...", theme.ContentAddIcon(), func() {
		a.showSaveTemplateDialog(refreshList)
	})

	toolbar := container.NewHBox(saveBtn, layout.NewSpacer())

	content := container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(list),
	)

	d := dialog.NewCustom("Layout Templates", "Close", content, a.window)
	d.Resize(fyne.NewSize(700, 450))
	d.Show()
}

func (a *App) showSaveTemplateDialog(onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Template name")
	nameEntry.SetText(a.project.Name)

	descEntry := widget.NewEntry()
	descEntry.SetPlaceHolder("Optional description")

	form := dialog.NewForm("Save as Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(fmt.Errorf("template name is required"), a.window)
				return
			}
			if existing := a.templates.FindByName(name); existing != nil && existing.BuiltIn {
				dialog.ShowError(fmt.Errorf("%q is a built-in template name", name), a.window)
				return
			}
			a.templates.Add(model.NewLayoutTemplate(name, strings.TrimSpace(descEntry.Text), a.collage.Cells()))
			a.saveTemplates()
			a.SetupMenus()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 200))
	form.Show()
}

// applyTemplate opens a new project laid out like t.
func (a *App) applyTemplate(t model.LayoutTemplate) {
	a.switchProject(t.ToProject(t.Name), "")
}

func (a *App) templateMenu() *fyne.Menu {
	all := a.templates.All()
	items := make([]*fyne.MenuItem, 0, len(all))
	for _, t := range all {
		items = append(items, fyne.NewMenuItem(t.Name, func() {
			a.confirmDiscard(func() { a.applyTemplate(t) })
		}))
	}
	return fyne.NewMenu("", items...)
}

func (a *App) saveTemplates() {
	if err := project.SaveDefaultTemplates(a.templates); err != nil {
		a.logger.Error("could not save templates", "err", err)
		dialog.ShowError(fmt.Errorf("failed to save templates: %w", err), a.window)
	}
}
