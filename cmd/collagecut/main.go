// CollageCut - Collage Layout Editor
//
// A cross-platform desktop application for laying out collages: split the
// canvas into cells, drag cell edges, merge cells away, then export the
// layout as a PDF poster, cell labels, DXF or Excel.
//
// Build:
//   go build -o collagecut ./cmd/collagecut
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/CollageCut/internal/ui"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          "collagecut",
	})

	application := app.NewWithID("com.piwi3910.collagecut")
	window := application.NewWindow("CollageCut")

	appUI := ui.NewApp(application, window, logger)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1000, 700))
	window.CenterOnScreen()
	window.ShowAndRun()
}
