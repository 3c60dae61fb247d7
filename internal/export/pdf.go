// Package export writes collage layouts to PDF posters, QR-coded cell
// labels, DXF outlines and Excel sheets.
package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/CollageCut/internal/model"
)

// PosterOptions controls the page and drawing of ExportPDF.
type PosterOptions struct {
	Title       string
	PageSize    string  // "A4" or "Letter"
	Orientation string  // "L" or "P"
	Margin      float64 // mm
	Legend      bool
	Width       float64 // physical poster width in mm, 0 for a square canvas
	Height      float64 // physical poster height in mm
}

// PosterOptionsFromConfig fills PosterOptions from the app config.
func PosterOptionsFromConfig(title string, cfg model.AppConfig) PosterOptions {
	return PosterOptions{
		Title:       title,
		PageSize:    cfg.PageSize,
		Orientation: cfg.Orientation,
		Margin:      cfg.PosterMargin,
		Legend:      cfg.PosterLegend,
	}
}

func (o PosterOptions) aspect() float64 {
	if o.Width > 0 && o.Height > 0 {
		return o.Width / o.Height
	}
	return 1
}

func (o PosterOptions) normalized() PosterOptions {
	if o.PageSize != "Letter" {
		o.PageSize = "A4"
	}
	if o.Orientation != "P" {
		o.Orientation = "L"
	}
	if o.Margin <= 0 {
		o.Margin = 15
	}
	if o.Title == "" {
		o.Title = "Collage"
	}
	return o
}

// Page layout constants in mm.
const (
	headerHeight = 12.0
	legendHeight = 20.0
	footerHeight = 6.0
)

// ExportPDF renders the collage as a poster: one page with the cells drawn
// to scale in their colours (or their image when it is a local PNG or JPEG
// file), followed by a page listing every cell.
func ExportPDF(path string, cells []model.Cell, opts PosterOptions) error {
	if len(cells) == 0 {
		return fmt.Errorf("no cells to export")
	}
	opts = opts.normalized()

	pdf := fpdf.New(opts.Orientation, "mm", opts.PageSize, "")
	pdf.SetAutoPageBreak(false, opts.Margin)

	pdf.AddPage()
	renderPosterPage(pdf, cells, opts)

	pdf.AddPage()
	renderCellTablePage(pdf, cells, opts)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// renderPosterPage draws the canvas and every cell on the current page.
func renderPosterPage(pdf *fpdf.Fpdf, cells []model.Cell, opts PosterOptions) {
	pageWidth, pageHeight := pdf.GetPageSize()
	margin := opts.Margin

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageWidth-2*margin, headerHeight, opts.Title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(margin, margin+headerHeight)
	stats := fmt.Sprintf("Cells: %d | Smallest cell: %.1f%% of the canvas", len(cells), smallestArea(cells)*100)
	pdf.CellFormat(pageWidth-2*margin, 5, stats, "", 0, "L", false, 0, "")

	drawAreaTop := margin + headerHeight + 5.0
	drawWidth := pageWidth - 2*margin
	drawHeight := pageHeight - drawAreaTop - margin - footerHeight
	if opts.Legend {
		drawHeight -= legendHeight
	}

	// Scale the canvas to fit the drawing area, keeping its aspect ratio
	aspect := opts.aspect()
	canvasW := math.Min(drawWidth, drawHeight*aspect)
	canvasH := canvasW / aspect

	offsetX := margin + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, c := range cells {
		cx := offsetX + c.Frame.X*canvasW
		cy := offsetY + c.Frame.Y*canvasH
		cw := c.Frame.Width * canvasW
		ch := c.Frame.Height * canvasH

		col := c.Payload.Color
		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(cx, cy, cw, ch, "FD")

		if img, ok := imageType(c.Payload.Image); ok {
			// Stretched to the cell; the border is redrawn on top
			pdf.ImageOptions(c.Payload.Image, cx, cy, cw, ch, false, fpdf.ImageOptions{ImageType: img}, 0, "")
			pdf.Rect(cx, cy, cw, ch, "D")
		}

		// Cell label (only if rectangle is large enough)
		if cw > 15 && ch > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(cw, ch))
			r, g, b := textColor(col)
			pdf.SetTextColor(r, g, b)

			label := c.DisplayName()
			dims := fmt.Sprintf("%.0f%% x %.0f%%", c.Frame.Width*100, c.Frame.Height*100)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < cw-2 {
				pdf.SetXY(cx+(cw-labelW)/2, cy+ch/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ch > 14 && dimsW < cw-2 {
				pdf.SetXY(cx+(cw-dimsW)/2, cy+ch/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
			pdf.SetTextColor(0, 0, 0)
		}
	}

	if opts.Width > 0 && opts.Height > 0 {
		drawDimensionAnnotations(pdf, opts, offsetX, offsetY, canvasW, canvasH)
	}

	if opts.Legend {
		drawCellsLegend(pdf, cells, offsetY+canvasH+5, pageWidth, margin)
	}

	drawFooter(pdf, pageWidth, pageHeight, margin)
}

// imageType returns the fpdf image type of a local image file.
func imageType(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	var typ string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		typ = "PNG"
	case ".jpg", ".jpeg":
		typ = "JPG"
	default:
		return "", false
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", false
	}
	return typ, true
}

// textColor picks black or white text for legibility on fill.
func textColor(fill model.Color) (int, int, int) {
	luma := 0.299*float64(fill.R) + 0.587*float64(fill.G) + 0.114*float64(fill.B)
	if luma < 110 {
		return 255, 255, 255
	}
	return 0, 0, 0
}

// drawDimensionAnnotations adds the physical poster size outside the canvas.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, opts PosterOptions, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the canvas)
	widthLabel := fmt.Sprintf("%.0f mm", opts.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the canvas, rotated)
	heightLabel := fmt.Sprintf("%.0f mm", opts.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawCellsLegend renders a compact legend of the cells below the canvas.
func drawCellsLegend(pdf *fpdf.Fpdf, cells []model.Cell, startY, pageWidth, margin float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(margin, startY)
	pdf.CellFormat(30, 4, "Cells:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := margin + 32
	maxX := pageWidth - margin

	for _, c := range cells {
		label := fmt.Sprintf("%s (%.0f%% x %.0f%%)", c.DisplayName(), c.Frame.Width*100, c.Frame.Height*100)
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = margin
		}

		pdf.SetFillColor(int(c.Payload.Color.R), int(c.Payload.Color.G), int(c.Payload.Color.B))
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderCellTablePage lists every cell with its frame and payload.
func renderCellTablePage(pdf *fpdf.Fpdf, cells []model.Cell, opts PosterOptions) {
	pageWidth, pageHeight := pdf.GetPageSize()
	margin := opts.Margin

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageWidth-2*margin, 10, opts.Title+": cells", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(margin, margin+12, pageWidth-margin, margin+12)

	y := margin + 18

	colWidths := []float64{12, 45, 22, 22, 22, 22, 22, 25}
	headers := []string{"#", "Cell", "X", "Y", "Width", "Height", "Area", "Colour"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := margin
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, c := range cells {
		if y > pageHeight-margin-footerHeight-6 {
			drawFooter(pdf, pageWidth, pageHeight, margin)
			pdf.AddPage()
			y = margin
		}

		xPos = margin
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			c.DisplayName(),
			fmt.Sprintf("%.3f", c.Frame.X),
			fmt.Sprintf("%.3f", c.Frame.Y),
			fmt.Sprintf("%.3f", c.Frame.Width),
			fmt.Sprintf("%.3f", c.Frame.Height),
			fmt.Sprintf("%.1f%%", c.Frame.Area()*100),
			c.Payload.Color.String(),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	drawFooter(pdf, pageWidth, pageHeight, margin)
}

func drawFooter(pdf *fpdf.Fpdf, pageWidth, pageHeight, margin float64) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(margin, pageHeight-margin)
	pdf.CellFormat(pageWidth-2*margin, 4, "Generated by CollageCut", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

func smallestArea(cells []model.Cell) float64 {
	smallest := math.Inf(1)
	for _, c := range cells {
		smallest = math.Min(smallest, c.Frame.Area())
	}
	return smallest
}
