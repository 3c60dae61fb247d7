package model

// Snapshot is an immutable record of cell frames and the selection. It is
// the reset target of a collage and the proposed state during a resize.
type Snapshot struct {
	cells      []Cell
	selectedID string
}

// NewSnapshot copies cells (in order) and the selected cell ID. An empty
// selectedID means nothing is selected.
func NewSnapshot(cells []Cell, selectedID string) Snapshot {
	return Snapshot{
		cells:      copyCells(cells),
		selectedID: selectedID,
	}
}

// Cells returns a copy of the recorded cells in order.
func (s Snapshot) Cells() []Cell {
	return copyCells(s.cells)
}

// Len returns the number of recorded cells.
func (s Snapshot) Len() int {
	return len(s.cells)
}

// IDs returns the recorded cell IDs in order.
func (s Snapshot) IDs() []string {
	ids := make([]string, len(s.cells))
	for i, c := range s.cells {
		ids[i] = c.ID
	}
	return ids
}

// Cell looks up a recorded cell by ID.
func (s Snapshot) Cell(id string) (Cell, bool) {
	for _, c := range s.cells {
		if c.ID == id {
			return c, true
		}
	}
	return Cell{}, false
}

// Frame returns the recorded frame of the cell with the given ID.
func (s Snapshot) Frame(id string) (Rect, bool) {
	c, ok := s.Cell(id)
	return c.Frame, ok
}

// SelectedID returns the ID of the selected cell, or "" if none.
func (s Snapshot) SelectedID() string {
	return s.selectedID
}

// Selected returns the selected cell if it is part of the snapshot.
func (s Snapshot) Selected() (Cell, bool) {
	if s.selectedID == "" {
		return Cell{}, false
	}
	return s.Cell(s.selectedID)
}
