package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CollageCut/internal/model"
)

const tomlFeature = `
[canvas]
width = 1200
height = 800

[[cell]]
label = "Hero"
x = 0
y = 0
width = 600
height = 800
color = "#ff5722"
image = "hero.jpg"

[[cell]]
label = "Top"
x = 600
y = 0
width = 600
height = 400

[[cell]]
label = "Bottom"
x = 600
y = 400
width = 600
height = 400
`

func TestImportTOMLString(t *testing.T) {
	result := ImportTOMLString(tomlFeature)

	if !result.OK() {
		t.Fatalf("expected OK, errors: %v", result.Errors)
	}
	if len(result.Cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(result.Cells))
	}
	hero := result.Cells[0]
	if hero.Label != "Hero" || hero.Payload.Image != "hero.jpg" {
		t.Errorf("unexpected hero %+v", hero)
	}
	if hero.Payload.Color != (model.Color{R: 0xff, G: 0x57, B: 0x22, A: 0xff}) {
		t.Errorf("unexpected colour %v", hero.Payload.Color)
	}
	if !near(hero.Frame.Width, 0.5) || !near(result.Cells[2].Frame.Y, 0.5) {
		t.Errorf("unexpected frames %v / %v", hero.Frame, result.Cells[2].Frame)
	}
}

func TestImportTOMLString_CanvasLargerThanCells(t *testing.T) {
	doc := `
[canvas]
width = 200
height = 100

[[cell]]
x = 0
y = 0
width = 100
height = 100
`
	result := ImportTOMLString(doc)

	if !hasMessage(result.Errors, "not a valid collage") {
		t.Errorf("expected coverage error, got %v", result.Errors)
	}
	if len(result.Cells) != 1 || !near(result.Cells[0].Frame.Width, 0.5) {
		t.Errorf("expected cell scaled against the canvas, got %+v", result.Cells)
	}
}

func TestImportTOMLString_Warnings(t *testing.T) {
	doc := `
[[cell]]
x = 0
y = 0
width = 1
height = 1
color = "nope"
rotation = 45
`
	result := ImportTOMLString(doc)

	if !result.OK() {
		t.Fatalf("expected OK, errors: %v", result.Errors)
	}
	if !hasMessage(result.Warnings, "Unknown color 'nope'") {
		t.Errorf("expected colour warning, got %v", result.Warnings)
	}
	if !hasMessage(result.Warnings, "rotation") {
		t.Errorf("expected unknown key warning, got %v", result.Warnings)
	}
}

func TestImportTOMLString_Errors(t *testing.T) {
	if result := ImportTOMLString("[[cell]\n"); len(result.Errors) == 0 {
		t.Error("expected parse error")
	}

	result := ImportTOMLString("[[cell]]\nx = 0\ny = 0\nwidth = 0\nheight = 1\n")
	if !hasMessage(result.Errors, "must be positive") {
		t.Errorf("expected size error, got %v", result.Errors)
	}
}

func TestImportTOML_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	if err := os.WriteFile(path, []byte(tomlFeature), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportFile(path)

	if !result.OK() {
		t.Fatalf("expected OK, errors: %v", result.Errors)
	}
	if len(result.Cells) != 3 {
		t.Errorf("expected 3 cells, got %d", len(result.Cells))
	}
}
