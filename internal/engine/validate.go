package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/piwi3910/CollageCut/internal/model"
)

var (
	// ErrCellNotFound is returned when an ID does not name a live cell.
	ErrCellNotFound = errors.New("cell not found")
	// ErrInvalidLayout wraps the reason a set of cells is not a valid layout.
	ErrInvalidLayout = errors.New("invalid layout")
)

// Reasons wrapped by ErrInvalidLayout.
var (
	ErrOutOfBounds = errors.New("cell outside canvas")
	ErrCoverage    = errors.New("cells do not cover the canvas")
	ErrOverlap     = errors.New("cells overlap")
	ErrTooSmall    = errors.New("cell smaller than minimum size")
	ErrDuplicateID = errors.New("duplicate cell id")
	ErrNoCells     = errors.New("no cells")
)

// isAllowed is the minimum size policy for a single frame.
func isAllowed(frame model.Rect) bool {
	return math.Min(frame.Width, frame.Height) >= model.MinCellSize-model.Tolerance
}

// isFullsized reports whether cells exactly cover the canvas: all frames in
// bounds, no two overlapping, and the areas summing to the canvas area.
func isFullsized(cells []model.Cell) bool {
	return coverageError(cells) == nil
}

func coverageError(cells []model.Cell) error {
	var area float64
	for i, c := range cells {
		if !c.Frame.IsInBounds(model.Canvas) {
			return fmt.Errorf("%w: %s at %v", ErrOutOfBounds, c.ID, c.Frame)
		}
		area += c.Frame.Area()
		for _, other := range cells[i+1:] {
			if c.Frame.Overlaps(other.Frame) {
				return fmt.Errorf("%w: %s and %s", ErrOverlap, c.ID, other.ID)
			}
		}
	}
	if math.Abs(model.Canvas.Area()-area) >= model.Tolerance {
		return fmt.Errorf("%w: total area %.6f", ErrCoverage, area)
	}
	return nil
}

// Validate checks that cells form a layout the engine would accept: unique
// IDs, every cell at least the minimum size, and full coverage of the
// canvas. The returned error wraps ErrInvalidLayout and the specific reason.
func Validate(cells []model.Cell) error {
	if len(cells) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, ErrNoCells)
	}
	seen := make(map[string]bool, len(cells))
	for _, c := range cells {
		if seen[c.ID] {
			return fmt.Errorf("%w: %w: %s", ErrInvalidLayout, ErrDuplicateID, c.ID)
		}
		seen[c.ID] = true
		if !isAllowed(c.Frame) {
			return fmt.Errorf("%w: %w: %s is %.3f x %.3f", ErrInvalidLayout, ErrTooSmall, c.ID, c.Frame.Width, c.Frame.Height)
		}
	}
	if err := coverageError(cells); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	return nil
}
