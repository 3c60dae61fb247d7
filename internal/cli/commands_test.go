package cli

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/CollageCut/internal/engine"
	"github.com/piwi3910/CollageCut/internal/model"
	"github.com/piwi3910/CollageCut/internal/project"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("COLLAGECUT_CONFIG_DIR", t.TempDir())

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func featureCells() []model.Cell {
	return []model.Cell{
		{ID: "a", Label: "Hero", Payload: model.Payload{Color: model.Palette[0]}, Frame: model.Rect{X: 0, Y: 0, Width: 0.5, Height: 1}},
		{ID: "b", Payload: model.Payload{Color: model.Palette[1]}, Frame: model.Rect{X: 0.5, Y: 0, Width: 0.5, Height: 0.5}},
		{ID: "c", Payload: model.Payload{Color: model.Palette[2]}, Frame: model.Rect{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5}},
	}
}

func writeProject(t *testing.T, cells []model.Cell) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout"+project.FileExtension)
	if err := project.Save(path, model.NewProjectFromCells("Feature", cells)); err != nil {
		t.Fatalf("failed to save project: %v", err)
	}
	return path
}

func loadProject(t *testing.T, path string) model.Project {
	t.Helper()
	proj, err := project.Load(path)
	if err != nil {
		t.Fatalf("failed to load project: %v", err)
	}
	if err := engine.Validate(proj.Cells); err != nil {
		t.Fatalf("saved layout is invalid: %v", err)
	}
	return proj
}

func frameOf(t *testing.T, proj model.Project, id string) model.Rect {
	t.Helper()
	f, ok := proj.Current().Frame(id)
	if !ok {
		t.Fatalf("cell %q missing from project", id)
	}
	return f
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ─── validate / inspect ───────────────────────────────────

func TestValidate_Project(t *testing.T) {
	out, err := runCLI(t, "validate", writeProject(t, featureCells()))
	if err != nil {
		t.Fatalf("validate returned error: %v", err)
	}
	if !strings.Contains(out, "valid layout with 3 cells") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestValidate_InvalidProject(t *testing.T) {
	cells := featureCells()
	cells[2].Frame.Y = 0.4 // overlaps b
	_, err := runCLI(t, "validate", writeProject(t, cells))
	if !errors.Is(err, engine.ErrInvalidLayout) {
		t.Errorf("expected ErrInvalidLayout, got %v", err)
	}
}

func TestValidate_ImportedLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	data := `
[[cell]]
label = "Left"
x = 0
y = 0
width = 300
height = 200

[[cell]]
label = "Right"
x = 300
y = 0
width = 300
height = 200
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "validate", path)
	if err != nil {
		t.Fatalf("validate returned error: %v", err)
	}
	if !strings.Contains(out, "2 cells") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := runCLI(t, "validate", filepath.Join(t.TempDir(), "none.collage"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestInspect(t *testing.T) {
	out, err := runCLI(t, "inspect", writeProject(t, featureCells()))
	if err != nil {
		t.Fatalf("inspect returned error: %v", err)
	}
	for _, want := range []string{"Feature", "Hero", "0.5000", "left,bottom", model.Palette[2].String()} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

// ─── convert / export ─────────────────────────────────────

func TestConvert_CSV(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cells.csv")
	data := "label,x,y,width,height,color\nTop,0,0,100,50,#ff0000\nBottom,0,50,100,50,#0000ff\n"
	if err := os.WriteFile(in, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "cells.collage")

	if _, err := runCLI(t, "convert", in, outPath, "--name", "Stack"); err != nil {
		t.Fatalf("convert returned error: %v", err)
	}

	proj := loadProject(t, outPath)
	if proj.Name != "Stack" {
		t.Errorf("expected name Stack, got %q", proj.Name)
	}
	if len(proj.Cells) != 2 || len(proj.Initial) != 2 {
		t.Fatalf("expected 2 cells and 2 initial cells, got %d and %d", len(proj.Cells), len(proj.Initial))
	}
	if proj.Cells[0].Label != "Top" || !near(proj.Cells[0].Frame.Height, 0.5) {
		t.Errorf("unexpected first cell %+v", proj.Cells[0])
	}
}

func TestConvert_InvalidLayout(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "gap.csv")
	data := "label,x,y,width,height\nA,0,0,40,100\nB,60,0,40,100\n"
	if err := os.WriteFile(in, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "convert", in, filepath.Join(dir, "gap.collage")); err == nil {
		t.Fatal("expected error for a layout with a gap")
	}
}

func TestExport_AllFormats(t *testing.T) {
	in := writeProject(t, featureCells())
	dir := t.TempDir()
	paths := map[string]string{
		"--pdf":    filepath.Join(dir, "poster.pdf"),
		"--labels": filepath.Join(dir, "labels.pdf"),
		"--dxf":    filepath.Join(dir, "layout.dxf"),
		"--xlsx":   filepath.Join(dir, "cells.xlsx"),
	}
	args := []string{"export", in, "--width", "600", "--height", "400"}
	for flag, p := range paths {
		args = append(args, flag, p)
	}

	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	for flag, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.Size() == 0 {
			t.Errorf("%s output %s missing or empty", flag, p)
		}
		if !strings.Contains(out, p) {
			t.Errorf("output does not list %s", p)
		}
	}
}

func TestExport_NothingRequested(t *testing.T) {
	if _, err := runCLI(t, "export", writeProject(t, featureCells())); err == nil {
		t.Fatal("expected error when no format is requested")
	}
}

// ─── edits ────────────────────────────────────────────────

func TestSplit(t *testing.T) {
	path := writeProject(t, featureCells())

	if _, err := runCLI(t, "split", path, "--cell", "a", "--axis", "horizontal"); err != nil {
		t.Fatalf("split returned error: %v", err)
	}

	proj := loadProject(t, path)
	if len(proj.Cells) != 4 {
		t.Fatalf("expected 4 cells after split, got %d", len(proj.Cells))
	}
	if _, ok := proj.Current().Cell("a"); ok {
		t.Error("split cell should be replaced by its halves")
	}
	sel, ok := proj.Current().Selected()
	if !ok {
		t.Fatal("expected a selected cell after split")
	}
	if !sel.Frame.Equal(model.Rect{X: 0, Y: 0.5, Width: 0.5, Height: 0.5}) {
		t.Errorf("expected the bottom half selected, got %v", sel.Frame)
	}
	if len(proj.Initial) != 3 {
		t.Errorf("initial layout should be kept, got %d cells", len(proj.Initial))
	}
}

func TestSplit_UnknownCell(t *testing.T) {
	path := writeProject(t, featureCells())
	_, err := runCLI(t, "split", path, "--cell", "zz")
	if !errors.Is(err, engine.ErrCellNotFound) {
		t.Errorf("expected ErrCellNotFound, got %v", err)
	}
}

func TestSplit_ImportedNeedsOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cells.csv")
	if err := os.WriteFile(in, []byte("label,x,y,width,height\nA,0,0,1,1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "split", in); !errors.Is(err, errNoOutput) {
		t.Fatalf("expected errNoOutput, got %v", err)
	}

	out := filepath.Join(dir, "split.collage")
	if _, err := runCLI(t, "split", in, "-o", out); err != nil {
		t.Fatalf("split returned error: %v", err)
	}
	if proj := loadProject(t, out); len(proj.Cells) != 2 {
		t.Errorf("expected 2 cells, got %d", len(proj.Cells))
	}
}

func TestResize(t *testing.T) {
	path := writeProject(t, featureCells())

	if _, err := runCLI(t, "resize", path, "--cell", "b", "--grip", "bottom", "--value=-0.1"); err != nil {
		t.Fatalf("resize returned error: %v", err)
	}

	proj := loadProject(t, path)
	b, c := frameOf(t, proj, "b"), frameOf(t, proj, "c")
	if !near(b.Height, 0.4) {
		t.Errorf("expected b height 0.4, got %v", b.Height)
	}
	if !near(c.Y, 0.4) || !near(c.Height, 0.6) {
		t.Errorf("expected c to follow the edge, got %v", c)
	}
}

func TestResize_BoundaryGrip(t *testing.T) {
	path := writeProject(t, featureCells())
	if _, err := runCLI(t, "resize", path, "--cell", "a", "--grip", "left", "--value=0.1"); err == nil {
		t.Fatal("expected error for a canvas boundary edge")
	}
	proj := loadProject(t, path)
	if !frameOf(t, proj, "a").Equal(model.Rect{X: 0, Y: 0, Width: 0.5, Height: 1}) {
		t.Error("rejected resize must not change the project")
	}
}

func TestResize_UnknownGrip(t *testing.T) {
	path := writeProject(t, featureCells())
	if _, err := runCLI(t, "resize", path, "--grip", "middle", "--value=0.1"); err == nil {
		t.Fatal("expected error for an unknown grip")
	}
}

func TestMerge(t *testing.T) {
	path := writeProject(t, featureCells())

	if _, err := runCLI(t, "merge", path, "--cell", "c"); err != nil {
		t.Fatalf("merge returned error: %v", err)
	}

	proj := loadProject(t, path)
	if len(proj.Cells) != 2 {
		t.Fatalf("expected 2 cells after merge, got %d", len(proj.Cells))
	}
	if b := frameOf(t, proj, "b"); !b.Equal(model.Rect{X: 0.5, Y: 0, Width: 0.5, Height: 1}) {
		t.Errorf("expected b to fill the right column, got %v", b)
	}
}

func TestMerge_SingleCell(t *testing.T) {
	path := writeProject(t, []model.Cell{{ID: "only", Frame: model.Canvas}})
	if _, err := runCLI(t, "merge", path); err == nil {
		t.Fatal("expected error merging the only cell")
	}
}

func TestReset(t *testing.T) {
	path := writeProject(t, featureCells())

	if _, err := runCLI(t, "split", path, "--cell", "b"); err != nil {
		t.Fatalf("split returned error: %v", err)
	}
	if _, err := runCLI(t, "reset", path); err != nil {
		t.Fatalf("reset returned error: %v", err)
	}

	proj := loadProject(t, path)
	if len(proj.Cells) != 3 {
		t.Fatalf("expected 3 cells after reset, got %d", len(proj.Cells))
	}
	for _, want := range featureCells() {
		if got := frameOf(t, proj, want.ID); !got.Equal(want.Frame) {
			t.Errorf("cell %s: got %v, want %v", want.ID, got, want.Frame)
		}
	}
}

func corruptInitialCells() []model.Cell {
	return []model.Cell{
		{ID: "wide", Frame: model.Rect{X: 0, Y: 0, Width: 0.7, Height: 1}},
		{ID: "sliver", Frame: model.Rect{X: 0.5, Y: 0, Width: 0.5, Height: 0.1}},
	}
}

func TestReset_InvalidInitialLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt"+project.FileExtension)
	proj := model.NewProjectFromCells("Corrupt", featureCells())
	proj.Initial = corruptInitialCells()
	if err := project.Save(path, proj); err != nil {
		t.Fatalf("failed to save project: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	_, err = runCLI(t, "reset", path)
	if !errors.Is(err, engine.ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout, got %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("a rejected reset must not rewrite the project")
	}
}

func TestOpenCollage_InvalidInitialLayout(t *testing.T) {
	proj := model.NewProjectFromCells("Corrupt", featureCells())
	proj.Initial = corruptInitialCells()

	c, err := openCollage(context.Background(), proj)
	if !errors.Is(err, engine.ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout, got %v", err)
	}
	if c != nil {
		t.Error("no collage should be built from an invalid reset target")
	}
}
