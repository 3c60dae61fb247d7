package model

import "fmt"

// GripPosition identifies one of the four edges of a cell.
type GripPosition int

const (
	GripLeft GripPosition = iota
	GripRight
	GripTop
	GripBottom
)

// AllGrips lists every grip position in the order merges try them.
var AllGrips = []GripPosition{GripLeft, GripRight, GripTop, GripBottom}

func (g GripPosition) String() string {
	switch g {
	case GripLeft:
		return "left"
	case GripRight:
		return "right"
	case GripTop:
		return "top"
	case GripBottom:
		return "bottom"
	default:
		return fmt.Sprintf("GripPosition(%d)", int(g))
	}
}

// ParseGrip converts a grip name to a GripPosition.
func ParseGrip(s string) (GripPosition, error) {
	for _, g := range AllGrips {
		if g.String() == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown grip %q", s)
}

func (g GripPosition) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *GripPosition) UnmarshalText(text []byte) error {
	parsed, err := ParseGrip(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Axis returns the direction of the line the edge lies on. Left and right
// edges are vertical lines dragged along x; top and bottom are horizontal
// lines dragged along y.
func (g GripPosition) Axis() Axis {
	if g == GripLeft || g == GripRight {
		return AxisVertical
	}
	return AxisHorizontal
}

// Opposite returns the edge facing g on a neighbouring cell.
func (g GripPosition) Opposite() GripPosition {
	switch g {
	case GripLeft:
		return GripRight
	case GripRight:
		return GripLeft
	case GripTop:
		return GripBottom
	default:
		return GripTop
	}
}

// CenterPoint returns the midpoint of the edge of r at g.
func (g GripPosition) CenterPoint(r Rect) Point {
	switch g {
	case GripLeft:
		return Point{X: r.MinX(), Y: r.Y + r.Height/2}
	case GripRight:
		return Point{X: r.MaxX(), Y: r.Y + r.Height/2}
	case GripTop:
		return Point{X: r.X + r.Width/2, Y: r.MinY()}
	default:
		return Point{X: r.X + r.Width/2, Y: r.MaxY()}
	}
}

// SideChangeValue is the signed adjustment that makes a neighbour across g
// absorb the whole of r.
func (g GripPosition) SideChangeValue(r Rect) float64 {
	switch g {
	case GripLeft:
		return r.Width
	case GripRight:
		return -r.Width
	case GripTop:
		return r.Height
	default:
		return -r.Height
	}
}
