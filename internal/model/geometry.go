package model

import (
	"fmt"
	"math"
)

// Tolerance is the allowed error for every floating point comparison on
// normalized canvas coordinates (machine epsilon scaled by 10000).
const Tolerance = 2.220446049250313e-16 * 10000

// MinCellSize is the smallest width or height a committed cell may have.
const MinCellSize = 0.2

// Canvas is the unit square every layout must cover exactly.
var Canvas = Rect{X: 0, Y: 0, Width: 1, Height: 1}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// Point represents a canvas-relative coordinate in [0,1].
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Axis names the direction of a dividing line.
type Axis int

const (
	AxisHorizontal Axis = iota // Horizontal line: top/bottom halves, moves y
	AxisVertical               // Vertical line: left/right halves, moves x
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis converts "horizontal"/"h" or "vertical"/"v" to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "horizontal", "h":
		return AxisHorizontal, nil
	case "vertical", "v":
		return AxisVertical, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", s)
	}
}

// Rect is an axis-aligned rectangle in normalized canvas coordinates.
// Values are not clamped; validity is checked at the layout level.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Area returns width * height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Equal compares two rectangles within Tolerance.
func (r Rect) Equal(other Rect) bool {
	return approxEqual(r.X, other.X) && approxEqual(r.Y, other.Y) &&
		approxEqual(r.Width, other.Width) && approxEqual(r.Height, other.Height)
}

// IsInBounds reports whether r lies entirely inside bounds.
func (r Rect) IsInBounds(bounds Rect) bool {
	return r.MinX() >= bounds.MinX()-Tolerance &&
		r.MinY() >= bounds.MinY()-Tolerance &&
		r.MaxX() <= bounds.MaxX()+Tolerance &&
		r.MaxY() <= bounds.MaxY()+Tolerance
}

// Contains reports whether p lies inside r. Edges are half-open so a point
// on a shared edge belongs to one cell only; the far canvas edges are closed.
func (r Rect) Contains(p Point) bool {
	inX := p.X >= r.MinX() && (p.X < r.MaxX() || (p.X == r.MaxX() && approxEqual(r.MaxX(), Canvas.MaxX())))
	inY := p.Y >= r.MinY() && (p.Y < r.MaxY() || (p.Y == r.MaxY() && approxEqual(r.MaxY(), Canvas.MaxY())))
	return inX && inY
}

// Intersection returns the overlapping region of r and other. The result
// has zero width or height when they do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x0 := math.Max(r.MinX(), other.MinX())
	y0 := math.Max(r.MinY(), other.MinY())
	x1 := math.Min(r.MaxX(), other.MaxX())
	y1 := math.Min(r.MaxY(), other.MaxY())
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Overlaps reports whether r and other share a region of positive area.
// Touching edges do not count.
func (r Rect) Overlaps(other Rect) bool {
	in := r.Intersection(other)
	return in.Width > Tolerance && in.Height > Tolerance
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	x0 := math.Min(r.MinX(), other.MinX())
	y0 := math.Min(r.MinY(), other.MinY())
	x1 := math.Max(r.MaxX(), other.MaxX())
	y1 := math.Max(r.MaxY(), other.MaxY())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Split divides r in half along axis. AxisVertical yields left and right
// halves, AxisHorizontal yields top and bottom halves. The second half is
// derived from the first so the union reconstructs r exactly.
func (r Rect) Split(axis Axis) (Rect, Rect) {
	first, second := r, r
	switch axis {
	case AxisVertical:
		first.Width = r.Width / 2
		second.X = r.X + first.Width
		second.Width = r.Width - first.Width
	default:
		first.Height = r.Height / 2
		second.Y = r.Y + first.Height
		second.Height = r.Height - first.Height
	}
	return first, second
}

// IntersectsOn reports whether r sits directly across other's edge at grip:
// the edges coincide and the perpendicular extents overlap.
func (r Rect) IntersectsOn(other Rect, grip GripPosition) bool {
	switch grip {
	case GripLeft:
		return approxEqual(r.MaxX(), other.MinX()) && overlapLength(r.MinY(), r.MaxY(), other.MinY(), other.MaxY()) > Tolerance
	case GripRight:
		return approxEqual(r.MinX(), other.MaxX()) && overlapLength(r.MinY(), r.MaxY(), other.MinY(), other.MaxY()) > Tolerance
	case GripTop:
		return approxEqual(r.MaxY(), other.MinY()) && overlapLength(r.MinX(), r.MaxX(), other.MinX(), other.MaxX()) > Tolerance
	case GripBottom:
		return approxEqual(r.MinY(), other.MaxY()) && overlapLength(r.MinX(), r.MaxX(), other.MinX(), other.MaxX()) > Tolerance
	}
	return false
}

func overlapLength(a0, a1, b0, b1 float64) float64 {
	return math.Min(a1, b1) - math.Max(a0, b0)
}

// BelongsToParallelLine reports whether r has an edge on the line through p
// with the given direction.
func (r Rect) BelongsToParallelLine(axis Axis, p Point) bool {
	if axis == AxisVertical {
		return approxEqual(r.MinX(), p.X) || approxEqual(r.MaxX(), p.X)
	}
	return approxEqual(r.MinY(), p.Y) || approxEqual(r.MaxY(), p.Y)
}

// Adjusted moves the edge at grip by value. Moving the left or top edge
// shifts the origin and shrinks the dimension; moving right or bottom only
// changes the dimension.
func (r Rect) Adjusted(grip GripPosition, value float64) Rect {
	switch grip {
	case GripLeft:
		r.X += value
		r.Width -= value
	case GripRight:
		r.Width += value
	case GripTop:
		r.Y += value
		r.Height -= value
	case GripBottom:
		r.Height += value
	}
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("{%.4g, %.4g, %.4g, %.4g}", r.X, r.Y, r.Width, r.Height)
}
