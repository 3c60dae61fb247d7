package model

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Color is an RGBA fill colour, serialized as "#rrggbbaa".
type Color struct {
	R, G, B, A uint8
}

// NRGBA converts c for use with image/color based renderers.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor accepts "#rrggbb" or "#rrggbbaa" (leading # optional).
func ParseColor(s string) (Color, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var c Color
	switch len(s) {
	case 6:
		c.A = 255
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
	default:
		return Color{}, fmt.Errorf("invalid color %q: expected 6 or 8 hex digits", s)
	}
	return c, nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Palette is the set of fill colours handed out to new cells.
var Palette = []Color{
	{R: 76, G: 175, B: 80, A: 255},  // green
	{R: 33, G: 150, B: 243, A: 255}, // blue
	{R: 255, G: 152, B: 0, A: 255},  // orange
	{R: 156, G: 39, B: 176, A: 255}, // purple
	{R: 0, G: 188, B: 212, A: 255},  // cyan
	{R: 244, G: 67, B: 54, A: 255},  // red
	{R: 255, G: 235, B: 59, A: 255}, // yellow
	{R: 121, G: 85, B: 72, A: 255},  // brown
}

// Payload is the display content of a cell. The engine never inspects it.
type Payload struct {
	Color Color  `json:"color" toml:"color"`
	Image string `json:"image,omitempty" toml:"image"` // Path or URI of an image, empty for a plain colour
}

// RandomPayload returns a palette colour with no image.
func RandomPayload() Payload {
	return Payload{Color: Palette[rand.IntN(len(Palette))]}
}

// Cell is one rectangle of the layout. Two cells are the same cell when
// their IDs match, whatever their frames.
type Cell struct {
	ID      string  `json:"id"`
	Label   string  `json:"label,omitempty"`
	Payload Payload `json:"payload"`
	Frame   Rect    `json:"frame"`
}

// NewCell creates a cell with a fresh short ID.
func NewCell(payload Payload, frame Rect) Cell {
	return Cell{
		ID:      uuid.New().String()[:8],
		Payload: payload,
		Frame:   frame,
	}
}

// Same reports whether c and other are the same cell.
func (c Cell) Same(other Cell) bool {
	return c.ID == other.ID
}

// WithFrame returns a copy of c with its frame replaced.
func (c Cell) WithFrame(frame Rect) Cell {
	c.Frame = frame
	return c
}

// Grips returns the draggable edges of c: every edge that does not lie on
// the canvas boundary.
func (c Cell) Grips() []GripPosition {
	var grips []GripPosition
	for _, g := range AllGrips {
		if c.HasGrip(g) {
			grips = append(grips, g)
		}
	}
	return grips
}

// HasGrip reports whether the edge at g is interior to the canvas.
func (c Cell) HasGrip(g GripPosition) bool {
	f := c.Frame
	switch g {
	case GripLeft:
		return f.MinX() > Canvas.MinX()+Tolerance
	case GripRight:
		return f.MaxX() < Canvas.MaxX()-Tolerance
	case GripTop:
		return f.MinY() > Canvas.MinY()+Tolerance
	case GripBottom:
		return f.MaxY() < Canvas.MaxY()-Tolerance
	}
	return false
}

// GripPositionRelativeTo maps the edge at grip of other onto the edge of c
// that lies on the same line, so both can move together. When c starts on
// the line it is c's left (or top) edge, otherwise its right (or bottom).
func (c Cell) GripPositionRelativeTo(other Cell, grip GripPosition) GripPosition {
	line := grip.CenterPoint(other.Frame)
	if grip.Axis() == AxisVertical {
		if approxEqual(c.Frame.MinX(), line.X) {
			return GripLeft
		}
		return GripRight
	}
	if approxEqual(c.Frame.MinY(), line.Y) {
		return GripTop
	}
	return GripBottom
}

// DisplayName returns the label, falling back to the ID.
func (c Cell) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

func copyCells(cells []Cell) []Cell {
	if cells == nil {
		return nil
	}
	cp := make([]Cell, len(cells))
	copy(cp, cells)
	return cp
}
