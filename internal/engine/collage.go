// Package engine implements the collage partition engine: a set of
// rectangular cells that always covers the unit canvas exactly, and the
// split, resize, merge and reset operations that restructure it.
//
// Every mutation either commits a valid layout or leaves the collage
// exactly as it was. A Collage is not safe for concurrent use; the host
// calls it from one goroutine and receives notifications on that goroutine.
package engine

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/CollageCut/internal/model"
)

// Collage owns the live cells of a layout and the selected cell.
type Collage struct {
	cells      []model.Cell
	selectedID string
	initial    model.Snapshot

	subs      []subscription
	nextSubID int
	logger    *log.Logger
}

// New creates a collage from cells. An empty list yields a single cell
// covering the canvas. Cells with a repeated ID are dropped. The last cell
// is selected, and the resulting layout becomes the reset target. Cells
// without an ID are given one.
func New(cells []model.Cell) *Collage {
	c := &Collage{logger: log.Default()}
	for _, cell := range cells {
		if cell.ID == "" {
			cell.ID = model.NewCell(cell.Payload, cell.Frame).ID
		}
		c.add(cell)
	}
	if len(c.cells) == 0 {
		c.cells = []model.Cell{model.NewCell(model.RandomPayload(), model.Canvas)}
	}
	c.selectedID = c.cells[len(c.cells)-1].ID
	c.initial = c.Snapshot()
	return c
}

// SetLogger replaces the logger used for rejected operations.
func (c *Collage) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// ─── Queries ───────────────────────────────────────────────

// Cells returns a copy of the live cells in order.
func (c *Collage) Cells() []model.Cell {
	cp := make([]model.Cell, len(c.cells))
	copy(cp, c.cells)
	return cp
}

// Len returns the number of live cells.
func (c *Collage) Len() int {
	return len(c.cells)
}

// Selected returns the selected cell, or false when nothing is selected.
func (c *Collage) Selected() (model.Cell, bool) {
	return c.CellByID(c.selectedID)
}

// CellByID looks up a live cell.
func (c *Collage) CellByID(id string) (model.Cell, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.cells[i], true
	}
	return model.Cell{}, false
}

// CellAt returns the first cell whose frame contains p.
func (c *Collage) CellAt(p model.Point) (model.Cell, bool) {
	for _, cell := range c.cells {
		if cell.Frame.Contains(p) {
			return cell, true
		}
	}
	return model.Cell{}, false
}

// IsFullsized reports whether the live cells cover the canvas exactly.
func (c *Collage) IsFullsized() bool {
	return isFullsized(c.cells)
}

// Snapshot captures the live cells and selection.
func (c *Collage) Snapshot() model.Snapshot {
	return model.NewSnapshot(c.cells, c.selectedID)
}

// InitialSnapshot returns the layout Reset restores.
func (c *Collage) InitialSnapshot() model.Snapshot {
	return c.initial
}

// ─── Mutations ─────────────────────────────────────────────

// SetSelected selects the cell with the given ID. Selecting the current
// selection is a no-op. An unknown ID leaves the selection unchanged and
// returns ErrCellNotFound.
func (c *Collage) SetSelected(id string) error {
	if id != "" && id == c.selectedID {
		return nil
	}
	cell, ok := c.CellByID(id)
	if !ok {
		c.logger.Debug("select rejected", "cell", id, "reason", "not found")
		return fmt.Errorf("%w: %q", ErrCellNotFound, id)
	}
	c.selectedID = cell.ID
	c.notifySelectionChanged(cell)
	return nil
}

// SetPayload replaces the display content of a cell.
func (c *Collage) SetPayload(id string, p model.Payload) error {
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrCellNotFound, id)
	}
	c.cells[i].Payload = p
	c.notifyCollageChanged()
	return nil
}

// SplitSelectedCell divides the selected cell in half along axis. The first
// half keeps the payload, the second gets a fresh colour and becomes the
// selection. The split is rejected without notification when either half
// would be smaller than the minimum cell size.
func (c *Collage) SplitSelectedCell(axis model.Axis) bool {
	selected, ok := c.Selected()
	if !ok {
		return false
	}

	firstFrame, secondFrame := selected.Frame.Split(axis)
	if !isAllowed(firstFrame) || !isAllowed(secondFrame) {
		c.logger.Debug("split rejected", "cell", selected.ID, "axis", axis, "reason", "below minimum size")
		return false
	}

	first := model.NewCell(selected.Payload, firstFrame)
	first.Label = selected.Label
	second := model.NewCell(model.RandomPayload(), secondFrame)

	c.add(first)
	c.add(second)
	c.remove(selected.ID)
	c.selectedID = second.ID
	c.notifySelectionChanged(second)
	c.notifyCollageChanged()
	return true
}

// ChangeSelectedCellSize drags the selected cell's edge at grip by value (a
// signed fraction of the canvas). Every cell with an edge on the same line
// moves with it. It returns false when the edge is on the canvas boundary,
// or when the result would break the layout, in which case the previous
// state is restored exactly.
func (c *Collage) ChangeSelectedCellSize(grip model.GripPosition, value float64) bool {
	return c.changeSize(grip, value, false)
}

// MergeSelectedCell collapses the selected cell into its neighbours across
// the first grip where that yields a valid layout.
func (c *Collage) MergeSelectedCell() bool {
	selected, ok := c.Selected()
	if !ok {
		return false
	}
	for _, g := range selected.Grips() {
		if c.changeSize(g, g.SideChangeValue(selected.Frame), true) {
			return true
		}
	}
	return false
}

// Reset restores the layout the collage was created with.
func (c *Collage) Reset() {
	c.cells = nil
	c.restore(c.initial)
	c.notifyCollageChanged()
}

// Load replaces the live layout with s, keeping the reset target. It fails
// with ErrInvalidLayout and changes nothing if s is not a valid layout.
func (c *Collage) Load(s model.Snapshot) error {
	cells := s.Cells()
	if err := Validate(cells); err != nil {
		return err
	}
	c.cells = cells
	if _, ok := s.Selected(); ok {
		c.selectedID = s.SelectedID()
	} else {
		c.selectedID = cells[len(cells)-1].ID
	}
	c.notifyCollageChanged()
	return nil
}

func (c *Collage) changeSize(grip model.GripPosition, value float64, merging bool) bool {
	selected, ok := c.Selected()
	if !ok {
		return false
	}

	var changing []model.Cell
	if merging {
		changing = c.mergingCells(selected, grip)
	} else {
		changing = c.affectedCells(selected, grip)
	}
	if len(changing) == 0 || !selected.HasGrip(grip) {
		return false
	}

	start := c.Snapshot()

	intermediate := make([]model.Cell, 0, len(changing))
	for _, cell := range changing {
		changeGrip := cell.GripPositionRelativeTo(selected, grip)
		frame := cell.Frame
		if cell.HasGrip(changeGrip) {
			frame = frame.Adjusted(changeGrip, value)
		}
		intermediate = append(intermediate, cell.WithFrame(frame))
	}

	selectedID := selected.ID
	if merging {
		c.remove(selected.ID)
		selectedID = intermediate[len(intermediate)-1].ID
	}
	state := model.NewSnapshot(intermediate, selectedID)
	c.apply(state)

	if !allAllowed(intermediate) || !c.IsFullsized() {
		c.restore(start)
		c.logger.Debug("resize rejected",
			"cell", selected.ID, "grip", grip, "value", value, "merging", merging)
		c.notifyCollageChanged()
		return false
	}

	if merging {
		c.notifyCollageChanged()
	} else {
		c.notifyStateChanged(state)
	}
	return true
}

// affectedCells returns every cell with an edge on the line through the
// selected cell's edge at grip, the selected cell included.
func (c *Collage) affectedCells(selected model.Cell, grip model.GripPosition) []model.Cell {
	line := grip.CenterPoint(selected.Frame)
	var cells []model.Cell
	for _, cell := range c.cells {
		if cell.Frame.BelongsToParallelLine(grip.Axis(), line) {
			cells = append(cells, cell)
		}
	}
	return cells
}

// mergingCells returns the neighbours directly across the selected cell's
// edge at grip.
func (c *Collage) mergingCells(selected model.Cell, grip model.GripPosition) []model.Cell {
	var cells []model.Cell
	for _, cell := range c.cells {
		if cell.Same(selected) {
			continue
		}
		if cell.Frame.IntersectsOn(selected.Frame, grip) {
			cells = append(cells, cell)
		}
	}
	return cells
}

// apply writes the frames in s onto the matching live cells and takes its
// selection if that cell is live.
func (c *Collage) apply(s model.Snapshot) {
	for _, cell := range s.Cells() {
		if i := c.indexOf(cell.ID); i >= 0 {
			c.cells[i].Frame = cell.Frame
		}
	}
	c.selectedID = ""
	if c.indexOf(s.SelectedID()) >= 0 {
		c.selectedID = s.SelectedID()
	}
}

// restore replaces the live state with s verbatim.
func (c *Collage) restore(s model.Snapshot) {
	c.cells = s.Cells()
	c.selectedID = s.SelectedID()
}

func (c *Collage) add(cell model.Cell) {
	if c.indexOf(cell.ID) < 0 {
		c.cells = append(c.cells, cell)
	}
}

func (c *Collage) remove(id string) {
	if i := c.indexOf(id); i >= 0 {
		c.cells = append(c.cells[:i:i], c.cells[i+1:]...)
	}
}

func (c *Collage) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, cell := range c.cells {
		if cell.ID == id {
			return i
		}
	}
	return -1
}

func allAllowed(cells []model.Cell) bool {
	for _, cell := range cells {
		if !isAllowed(cell.Frame) {
			return false
		}
	}
	return true
}
