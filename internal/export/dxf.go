package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/CollageCut/internal/model"
)

// DXF layer names.
const (
	LayerCanvas = "CANVAS"
	LayerCells  = "CELLS"
	LayerLabels = "LABELS"
)

// DXFOptions controls ExportDXF.
type DXFOptions struct {
	Size   float64 // drawing units (mm) the unit canvas maps to
	Labels bool    // write cell names as TEXT on the LABELS layer
}

// DXFOptionsFromConfig fills DXFOptions from the app config.
func DXFOptionsFromConfig(cfg model.AppConfig) DXFOptions {
	return DXFOptions{Size: cfg.DXFCanvasSize, Labels: cfg.ShowCellLabels}
}

// ExportDXF writes every cell as a closed LWPOLYLINE on the CELLS layer and
// the canvas outline on the CANVAS layer. DXF y grows upwards, so the canvas
// top edge is at y = Size.
func ExportDXF(path string, cells []model.Cell, opts DXFOptions) error {
	if len(cells) == 0 {
		return fmt.Errorf("no cells to export")
	}
	size := opts.Size
	if size <= 0 {
		size = 1000
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		cl   color.ColorNumber
	}{
		{LayerCanvas, color.White},
		{LayerCells, color.Cyan},
		{LayerLabels, color.Yellow},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.cl, table.LT_CONTINUOUS, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	// A single cell already traces the canvas
	if len(cells) > 1 {
		if err := d.ChangeLayer(LayerCanvas); err != nil {
			return fmt.Errorf("failed to select layer %s: %w", LayerCanvas, err)
		}
		if _, err := d.LwPolyline(true, dxfRect(model.Rect{Width: 1, Height: 1}, size)...); err != nil {
			return fmt.Errorf("failed to write canvas outline: %w", err)
		}
	}

	if err := d.ChangeLayer(LayerCells); err != nil {
		return fmt.Errorf("failed to select layer %s: %w", LayerCells, err)
	}
	for _, c := range cells {
		if _, err := d.LwPolyline(true, dxfRect(c.Frame, size)...); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", c.ID, err)
		}
	}

	if opts.Labels {
		if err := d.ChangeLayer(LayerLabels); err != nil {
			return fmt.Errorf("failed to select layer %s: %w", LayerLabels, err)
		}
		for _, c := range cells {
			center := c.Frame.Center()
			height := size * min(c.Frame.Width, c.Frame.Height) / 10
			if _, err := d.Text(c.DisplayName(), center.X*size, (1-center.Y)*size, 0, height); err != nil {
				return fmt.Errorf("failed to write label for %s: %w", c.ID, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}

// dxfRect returns the corners of r in drawing units, counter-clockwise from
// the bottom left, with y flipped.
func dxfRect(r model.Rect, size float64) [][]float64 {
	x0, x1 := r.MinX()*size, r.MaxX()*size
	y0, y1 := (1-r.MaxY())*size, (1-r.MinY())*size
	return [][]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}
