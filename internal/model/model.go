package model

import "time"

// Project ties a collage together for save/load. Initial is the layout the
// collage resets to; Cells is the layout at the time of saving.
type Project struct {
	Name       string `json:"name"`
	Initial    []Cell `json:"initial"`
	Cells      []Cell `json:"cells"`
	SelectedID string `json:"selected_id,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// NewProject returns an untitled project with one full-canvas cell.
func NewProject() Project {
	cell := NewCell(RandomPayload(), Canvas)
	return NewProjectFromCells("Untitled", []Cell{cell})
}

// NewProjectFromCells uses cells as both the initial and current layout.
// The last cell is selected.
func NewProjectFromCells(name string, cells []Cell) Project {
	now := time.Now().UTC().Format(time.RFC3339)
	p := Project{
		Name:      name,
		Initial:   copyCells(cells),
		Cells:     copyCells(cells),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(cells) > 0 {
		p.SelectedID = cells[len(cells)-1].ID
	}
	return p
}

// Current returns the saved layout as a snapshot.
func (p Project) Current() Snapshot {
	return NewSnapshot(p.Cells, p.SelectedID)
}

// Update records s as the current layout and bumps UpdatedAt.
func (p *Project) Update(s Snapshot) {
	p.Cells = s.Cells()
	p.SelectedID = s.SelectedID()
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}
