package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CollageCut/internal/model"
)

// buildTestCells creates a three-cell feature layout for testing.
func buildTestCells() []model.Cell {
	return []model.Cell{
		{ID: "hero", Label: "Hero", Payload: model.Payload{Color: model.Palette[0]}, Frame: model.Rect{X: 0, Y: 0, Width: 0.6, Height: 1}},
		{ID: "top", Label: "Top Right", Payload: model.Payload{Color: model.Palette[1]}, Frame: model.Rect{X: 0.6, Y: 0, Width: 0.4, Height: 0.5}},
		{ID: "bottom", Payload: model.Payload{Color: model.Palette[7]}, Frame: model.Rect{X: 0.6, Y: 0.5, Width: 0.4, Height: 0.5}},
	}
}

// buildGridCells creates an n x n grid covering the unit canvas.
func buildGridCells(n int) []model.Cell {
	size := 1 / float64(n)
	cells := make([]model.Cell, 0, n*n)
	for i := 0; i < n*n; i++ {
		cells = append(cells, model.Cell{
			ID:      fmt.Sprintf("c%d", i),
			Label:   fmt.Sprintf("Cell %d", i+1),
			Payload: model.Payload{Color: model.Palette[i%len(model.Palette)]},
			Frame:   model.Rect{X: float64(i%n) * size, Y: float64(i/n) * size, Width: size, Height: size},
		})
	}
	return cells
}

func assertNonEmptyFile(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("file is empty")
	}
	if info.Size() < minSize {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test_output.pdf")

	err := ExportPDF(path, buildTestCells(), PosterOptions{Title: "Summer"})
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	// Poster page plus cell table page
	assertNonEmptyFile(t, path, 500)
}

func TestExportPDF_EmptyCells(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := ExportPDF(path, nil, PosterOptions{})
	if err == nil {
		t.Fatal("expected error for empty layout, got nil")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("no file should be written for an empty layout")
	}
}

func TestExportPDF_FromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.pdf")

	cfg := model.DefaultAppConfig()
	cfg.PageSize = "Letter"
	cfg.Orientation = "P"
	cfg.PosterLegend = false

	opts := PosterOptionsFromConfig("Config", cfg)
	if opts.PageSize != "Letter" || opts.Orientation != "P" || opts.Legend {
		t.Fatalf("PosterOptionsFromConfig did not copy the config: %+v", opts)
	}

	if err := ExportPDF(path, buildTestCells(), opts); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path, 500)
}

func TestExportPDF_PhysicalSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sized.pdf")

	opts := PosterOptions{Title: "Wide", Width: 1200, Height: 400, Legend: true}
	if err := ExportPDF(path, buildTestCells(), opts); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path, 500)
}

func TestExportPDF_WithImage(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "photo.png")

	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	f, err := os.Create(imgPath)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	f.Close()

	cells := buildTestCells()
	cells[0].Payload.Image = imgPath
	cells[1].Payload.Image = filepath.Join(dir, "missing.png")

	path := filepath.Join(dir, "images.pdf")
	if err := ExportPDF(path, cells, PosterOptions{}); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path, 500)
}

func TestExportPDF_ManyCells(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many_cells.pdf")

	// More cells than colours and more rows than fit on one table page
	if err := ExportPDF(path, buildGridCells(7), PosterOptions{Legend: true}); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path, 500)
}

func TestPosterOptionsNormalized(t *testing.T) {
	got := PosterOptions{PageSize: "B5", Orientation: "X"}.normalized()
	if got.PageSize != "A4" {
		t.Errorf("PageSize = %q, want A4", got.PageSize)
	}
	if got.Orientation != "L" {
		t.Errorf("Orientation = %q, want L", got.Orientation)
	}
	if got.Margin != 15 {
		t.Errorf("Margin = %v, want 15", got.Margin)
	}
	if got.Title != "Collage" {
		t.Errorf("Title = %q, want Collage", got.Title)
	}

	if a := (PosterOptions{Width: 300, Height: 200}).aspect(); a != 1.5 {
		t.Errorf("aspect() = %v, want 1.5", a)
	}
	if a := (PosterOptions{}).aspect(); a != 1 {
		t.Errorf("aspect() of unsized poster = %v, want 1", a)
	}
}

func TestImageType(t *testing.T) {
	dir := t.TempDir()
	jpg := filepath.Join(dir, "a.JPG")
	if err := os.WriteFile(jpg, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if typ, ok := imageType(jpg); !ok || typ != "JPG" {
		t.Errorf("imageType(%q) = %q, %v; want JPG, true", jpg, typ, ok)
	}
	if _, ok := imageType(filepath.Join(dir, "none.png")); ok {
		t.Error("imageType should reject a missing file")
	}
	if _, ok := imageType("https://example.com/a.png"); ok {
		t.Error("imageType should reject a URL")
	}
	if _, ok := imageType(""); ok {
		t.Error("imageType should reject an empty path")
	}
}

func TestTextColor(t *testing.T) {
	if r, g, b := textColor(model.Color{R: 0, G: 0, B: 0, A: 255}); r != 255 || g != 255 || b != 255 {
		t.Errorf("textColor(black) = %d,%d,%d; want white", r, g, b)
	}
	if r, g, b := textColor(model.Color{R: 255, G: 235, B: 59, A: 255}); r != 0 || g != 0 || b != 0 {
		t.Errorf("textColor(yellow) = %d,%d,%d; want black", r, g, b)
	}
}

func TestSmallestArea(t *testing.T) {
	got := smallestArea(buildTestCells())
	if got < 0.2-1e-9 || got > 0.2+1e-9 {
		t.Errorf("smallestArea() = %v, want 0.2", got)
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{30, 25, 7},
		{10, 15, 6},
	}
	for _, tt := range tests {
		got := labelFontSize(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
