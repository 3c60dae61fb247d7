package model

import (
	"time"

	"github.com/google/uuid"
)

// LayoutTemplate is a reusable starting layout. Frames are kept, IDs and
// payloads are regenerated when a project is made from it.
type LayoutTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	Frames      []Rect `json:"frames"`
	BuiltIn     bool   `json:"-"`
}

// NewLayoutTemplate captures the frames of cells as a template.
func NewLayoutTemplate(name, description string, cells []Cell) LayoutTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	frames := make([]Rect, len(cells))
	for i, c := range cells {
		frames[i] = c.Frame
	}
	return LayoutTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Frames:      frames,
	}
}

// Cells creates fresh cells for the template frames, one palette colour each.
func (t LayoutTemplate) Cells() []Cell {
	cells := make([]Cell, len(t.Frames))
	for i, f := range t.Frames {
		cells[i] = NewCell(Payload{Color: Palette[i%len(Palette)]}, f)
	}
	return cells
}

// ToProject creates a new Project from this template.
func (t LayoutTemplate) ToProject(projectName string) Project {
	return NewProjectFromCells(projectName, t.Cells())
}

// BuiltInTemplates are always offered, ahead of user templates.
var BuiltInTemplates = []LayoutTemplate{
	{
		ID: "single", Name: "Single", Description: "One cell covering the canvas", BuiltIn: true,
		Frames: []Rect{Canvas},
	},
	{
		ID: "halves-v", Name: "Halves (vertical)", Description: "Left and right halves", BuiltIn: true,
		Frames: []Rect{{X: 0, Y: 0, Width: 0.5, Height: 1}, {X: 0.5, Y: 0, Width: 0.5, Height: 1}},
	},
	{
		ID: "halves-h", Name: "Halves (horizontal)", Description: "Top and bottom halves", BuiltIn: true,
		Frames: []Rect{{X: 0, Y: 0, Width: 1, Height: 0.5}, {X: 0, Y: 0.5, Width: 1, Height: 0.5}},
	},
	{
		ID: "grid-2x2", Name: "Grid 2x2", Description: "Four equal quarters", BuiltIn: true,
		Frames: []Rect{
			{X: 0, Y: 0, Width: 0.5, Height: 0.5}, {X: 0.5, Y: 0, Width: 0.5, Height: 0.5},
			{X: 0, Y: 0.5, Width: 0.5, Height: 0.5}, {X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5},
		},
	},
	{
		ID: "feature-left", Name: "Feature left", Description: "Large left cell with two stacked on the right", BuiltIn: true,
		Frames: []Rect{
			{X: 0, Y: 0, Width: 0.6, Height: 1},
			{X: 0.6, Y: 0, Width: 0.4, Height: 0.5}, {X: 0.6, Y: 0.5, Width: 0.4, Height: 0.5},
		},
	},
}

// TemplateStore holds user-defined layout templates.
type TemplateStore struct {
	Templates []LayoutTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []LayoutTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t LayoutTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// All returns the built-in templates followed by the stored ones.
func (ts *TemplateStore) All() []LayoutTemplate {
	all := make([]LayoutTemplate, 0, len(BuiltInTemplates)+len(ts.Templates))
	all = append(all, BuiltInTemplates...)
	return append(all, ts.Templates...)
}

// Names returns the names of All for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	all := ts.All()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.Name
	}
	return names
}

// FindByName returns the first template in All with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *LayoutTemplate {
	all := ts.All()
	for i := range all {
		if all[i].Name == name {
			return &all[i]
		}
	}
	return nil
}
