package model

const maxRecentProjects = 10

// AppConfig holds application-wide preferences and export defaults.
type AppConfig struct {
	// Export defaults
	PageSize       string  `json:"page_size"`        // "A4" or "Letter"
	Orientation    string  `json:"orientation"`      // "L" or "P"
	PosterMargin   float64 `json:"poster_margin"`    // mm around the poster drawing
	PosterLegend   bool    `json:"poster_legend"`    // Print a cell legend below the poster
	DXFCanvasSize  float64 `json:"dxf_canvas_size"`  // mm the unit canvas maps to in DXF output
	OutlineCells   bool    `json:"outline_cells"`    // Stroke cell borders in the editor
	ShowCellLabels bool    `json:"show_cell_labels"` // Draw cell names in the editor

	// Application preferences
	LogLevel         string   `json:"log_level"`          // "debug", "info", "warn", "error"
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentProjects   []string `json:"recent_projects"`
	Theme            string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		PageSize:         "A4",
		Orientation:      "L",
		PosterMargin:     15.0,
		PosterLegend:     true,
		DXFCanvasSize:    1000.0,
		OutlineCells:     true,
		ShowCellLabels:   false,
		LogLevel:         "info",
		AutoSaveInterval: 0,
		RecentProjects:   []string{},
		Theme:            "system",
	}
}

// AddRecentProject moves path to the front of RecentProjects, dropping
// duplicates and keeping at most ten entries.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}
