package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/CollageCut/internal/model"
)

// dxfTolerance is the distance in drawing units below which two points are
// treated as the same point.
const dxfTolerance = 0.01

// segment represents a line segment between two points, used for chaining
// disconnected LINE entities into closed outlines.
type segment struct {
	start model.Point
	end   model.Point
}

// ImportDXF imports a layout from a DXF file. Every closed axis-aligned
// rectangle (an LWPOLYLINE, or a chain of four connected LINEs) becomes a
// cell. DXF y grows upwards, so the drawing is flipped onto the canvas. A
// rectangle spanning the whole drawing is taken as the canvas outline and
// not imported as a cell.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]model.Point
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if hasBulge(e) {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with arc segments")
				continue
			}
			outline := make([]model.Point, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				outline = append(outline, model.Point{X: v[0], Y: v[1]})
			}
			outlines = append(outlines, outline)

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	outlines = append(outlines, chainSegments(segments, dxfTolerance)...)

	var rects []model.Rect
	for _, outline := range outlines {
		r, ok := outlineRect(outline, dxfTolerance)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped non-rectangular outline with %d vertices", len(outline)))
			continue
		}
		if r.Width < dxfTolerance || r.Height < dxfTolerance {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate rectangle (%.2f x %.2f)", r.Width, r.Height))
			continue
		}
		rects = append(rects, r)
	}

	if len(rects) == 0 {
		result.Errors = append(result.Errors, "No closed rectangles found in DXF file")
		return result
	}

	rects = dropCanvasOutline(rects, &result)

	for i, r := range rects {
		cell := model.NewCell(model.Payload{Color: model.Palette[i%len(model.Palette)]},
			model.Rect{X: r.X, Y: -r.MaxY(), Width: r.Width, Height: r.Height})
		cell.Label = fmt.Sprintf("DXF Cell %d", i+1)
		result.Cells = append(result.Cells, cell)
	}

	return finish(result, model.Rect{})
}

func hasBulge(lw *entity.LwPolyline) bool {
	for _, b := range lw.Bulges {
		if math.Abs(b) > 1e-9 {
			return true
		}
	}
	return false
}

// outlineRect returns the rectangle an outline traces, or false when the
// outline is not an axis-aligned rectangle.
func outlineRect(outline []model.Point, tolerance float64) (model.Rect, bool) {
	if len(outline) >= 2 && pointsClose(outline[0], outline[len(outline)-1], tolerance) {
		outline = outline[:len(outline)-1]
	}
	if len(outline) != 4 {
		return model.Rect{}, false
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range outline {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	corners := []model.Point{{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY}}
	seen := make([]bool, len(corners))
	for _, p := range outline {
		matched := false
		for i, c := range corners {
			if !seen[i] && pointsClose(p, c, tolerance) {
				seen[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return model.Rect{}, false
		}
	}
	return model.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// dropCanvasOutline removes a rectangle equal to the bounding box of all the
// others when there are at least two others.
func dropCanvasOutline(rects []model.Rect, result *ImportResult) []model.Rect {
	if len(rects) < 3 {
		return rects
	}
	for i, r := range rects {
		var bounds model.Rect
		first := true
		for j, o := range rects {
			if j == i {
				continue
			}
			if first {
				bounds, first = o, false
			} else {
				bounds = bounds.Union(o)
			}
		}
		if rectsClose(r, bounds, dxfTolerance) {
			result.Warnings = append(result.Warnings, "Skipped canvas outline")
			return append(rects[:i:i], rects[i+1:]...)
		}
	}
	return rects
}

func rectsClose(a, b model.Rect, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Width-b.Width) <= tolerance && math.Abs(a.Height-b.Height) <= tolerance
}

// chainSegments connects individual segments into closed outlines, in the
// order their first segment appears.
// tolerance is the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) [][]model.Point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]model.Point

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []model.Point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Only closed chains are outlines
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain)
		}
	}

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point, tolerance float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}
