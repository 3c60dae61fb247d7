package widgets

import (
	"image/color"
	"math"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/CollageCut/internal/engine"
	"github.com/piwi3910/CollageCut/internal/model"
)

// GripHitSize is the side in pixels of the square around a grip handle that
// starts a resize drag.
const GripHitSize = 40

const gripHandleSize = 12

// CollageCanvas draws a collage and turns taps into selection and drags on
// the selected cell's grip handles into resizes.
type CollageCanvas struct {
	widget.BaseWidget
	collage      *engine.Collage
	OutlineCells bool
	ShowLabels   bool

	dragging    bool
	dragGrip    model.GripPosition
	dragStart   fyne.Position
	dragApplied float64
}

// NewCollageCanvas creates a canvas for c.
func NewCollageCanvas(c *engine.Collage) *CollageCanvas {
	cc := &CollageCanvas{collage: c, OutlineCells: true}
	cc.ExtendBaseWidget(cc)
	return cc
}

// SetCollage replaces the collage being drawn.
func (cc *CollageCanvas) SetCollage(c *engine.Collage) {
	cc.collage = c
	cc.dragging = false
	cc.Refresh()
}

func (cc *CollageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &collageCanvasRenderer{cc: cc}
}

// Tapped selects the cell under the pointer.
func (cc *CollageCanvas) Tapped(ev *fyne.PointEvent) {
	if cc.collage == nil {
		return
	}
	cell, ok := cc.collage.CellAt(ToCanvasPoint(ev.Position, cc.Size()))
	if !ok {
		return
	}
	_ = cc.collage.SetSelected(cell.ID)
}

// Dragged resizes the selected cell when the drag started on one of its
// grip handles. The edge follows the pointer's total travel since the drag
// started, so a step rejected at the size floor is caught up by a later one.
func (cc *CollageCanvas) Dragged(ev *fyne.DragEvent) {
	if cc.collage == nil {
		return
	}
	size := cc.Size()
	if !cc.dragging {
		selected, ok := cc.collage.Selected()
		if !ok {
			return
		}
		start := ev.Position.Subtract(ev.Dragged)
		grip, ok := GripAt(selected, start, size)
		if !ok {
			return
		}
		cc.dragging = true
		cc.dragGrip = grip
		cc.dragStart = start
		cc.dragApplied = 0
	}

	travel := ev.Position.Subtract(cc.dragStart)
	target := DragValue(cc.dragGrip, fyne.NewDelta(travel.X, travel.Y), size)
	if step := target - cc.dragApplied; step != 0 {
		if cc.collage.ChangeSelectedCellSize(cc.dragGrip, step) {
			cc.dragApplied = target
		}
	}
}

// DragEnd finishes a resize drag.
func (cc *CollageCanvas) DragEnd() {
	cc.dragging = false
}

// ToCanvasPoint maps a widget position onto the unit canvas.
func ToCanvasPoint(pos fyne.Position, size fyne.Size) model.Point {
	if size.Width <= 0 || size.Height <= 0 {
		return model.Point{}
	}
	return model.Point{X: float64(pos.X / size.Width), Y: float64(pos.Y / size.Height)}
}

// ToWidgetPosition maps a canvas point onto a widget of the given size.
func ToWidgetPosition(p model.Point, size fyne.Size) fyne.Position {
	return fyne.NewPos(float32(p.X)*size.Width, float32(p.Y)*size.Height)
}

// GripAt returns the grip of cell whose handle is within GripHitSize/2 of pos.
func GripAt(cell model.Cell, pos fyne.Position, size fyne.Size) (model.GripPosition, bool) {
	half := float32(GripHitSize) / 2
	for _, g := range cell.Grips() {
		center := ToWidgetPosition(g.CenterPoint(cell.Frame), size)
		if abs32(pos.X-center.X) <= half && abs32(pos.Y-center.Y) <= half {
			return g, true
		}
	}
	return 0, false
}

// DragValue converts a pointer delta into the normalized distance a grip
// moves: vertical delta for top and bottom grips, horizontal for left and
// right.
func DragValue(grip model.GripPosition, delta fyne.Delta, size fyne.Size) float64 {
	if grip.Axis() == model.AxisHorizontal {
		if size.Height <= 0 {
			return 0
		}
		return float64(delta.DY / size.Height)
	}
	if size.Width <= 0 {
		return 0
	}
	return float64(delta.DX / size.Width)
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

type collageCanvasRenderer struct {
	cc      *CollageCanvas
	objects []fyne.CanvasObject
}

func (r *collageCanvasRenderer) Layout(size fyne.Size) {
	r.rebuild(size)
}

func (r *collageCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *collageCanvasRenderer) Refresh() {
	r.rebuild(r.cc.Size())
	canvas.Refresh(r.cc)
}

func (r *collageCanvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *collageCanvasRenderer) Destroy() {}

func (r *collageCanvasRenderer) rebuild(size fyne.Size) {
	r.objects = nil
	c := r.cc.collage
	if c == nil {
		return
	}

	bg := canvas.NewRectangle(color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	bg.Resize(size)
	r.objects = append(r.objects, bg)

	cells := c.Cells()
	selected, hasSelection := c.Selected()

	for _, cell := range cells {
		pos := ToWidgetPosition(model.Point{X: cell.Frame.X, Y: cell.Frame.Y}, size)
		sz := fyne.NewSize(float32(cell.Frame.Width)*size.Width, float32(cell.Frame.Height)*size.Height)

		fill := canvas.NewRectangle(cell.Payload.Color.NRGBA())
		fill.Resize(sz)
		fill.Move(pos)
		r.objects = append(r.objects, fill)

		if img := cell.Payload.Image; img != "" {
			if info, err := os.Stat(img); err == nil && !info.IsDir() {
				pic := canvas.NewImageFromFile(img)
				pic.FillMode = canvas.ImageFillContain
				pic.Resize(sz)
				pic.Move(pos)
				r.objects = append(r.objects, pic)
			}
		}

		if r.cc.OutlineCells {
			outline := canvas.NewRectangle(color.Transparent)
			outline.StrokeColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			outline.StrokeWidth = 1
			outline.Resize(sz)
			outline.Move(pos)
			r.objects = append(r.objects, outline)
		}

		if r.cc.ShowLabels && sz.Width > 40 && sz.Height > 20 {
			label := canvas.NewText(cell.DisplayName(), color.Black)
			label.TextSize = 11
			label.Move(fyne.NewPos(pos.X+4, pos.Y+2))
			r.objects = append(r.objects, label)
		}
	}

	if !hasSelection {
		return
	}

	pos := ToWidgetPosition(model.Point{X: selected.Frame.X, Y: selected.Frame.Y}, size)
	sz := fyne.NewSize(float32(selected.Frame.Width)*size.Width, float32(selected.Frame.Height)*size.Height)
	highlight := canvas.NewRectangle(color.Transparent)
	highlight.StrokeColor = theme.Color(theme.ColorNamePrimary)
	highlight.StrokeWidth = 3
	highlight.Resize(sz)
	highlight.Move(pos)
	r.objects = append(r.objects, highlight)

	for _, g := range selected.Grips() {
		center := ToWidgetPosition(g.CenterPoint(selected.Frame), size)
		handle := canvas.NewCircle(theme.Color(theme.ColorNamePrimary))
		handle.StrokeColor = color.White
		handle.StrokeWidth = 2
		handle.Resize(fyne.NewSize(gripHandleSize, gripHandleSize))
		handle.Move(fyne.NewPos(center.X-gripHandleSize/2, center.Y-gripHandleSize/2))
		r.objects = append(r.objects, handle)
	}
}
