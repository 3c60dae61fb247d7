package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/CollageCut/internal/model"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		cells []model.Cell
		want  error
	}{
		{"valid feature layout", featureLayout(), nil},
		{"valid grid", gridLayout(), nil},
		{"empty", nil, ErrNoCells},
		{"gap", []model.Cell{cell("a", frame(0, 0, 0.5, 1))}, ErrCoverage},
		{"out of bounds", []model.Cell{cell("a", frame(0.5, 0, 1, 1))}, ErrOutOfBounds},
		{
			"overlap hidden by gap",
			[]model.Cell{
				cell("a", frame(0, 0, 0.6, 1)),
				cell("b", frame(0.4, 0, 0.4, 1)),
				cell("c", frame(0.8, 0, 0.2, 0.5)),
				cell("d", frame(0.8, 0.5, 0.2, 0.5)),
			},
			ErrOverlap,
		},
		{"too small", []model.Cell{cell("a", frame(0, 0, 0.9, 1)), cell("b", frame(0.9, 0, 0.1, 1))}, ErrTooSmall},
		{"duplicate id", []model.Cell{cell("a", frame(0, 0, 0.5, 1)), cell("a", frame(0.5, 0, 0.5, 1))}, ErrDuplicateID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cells)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidLayout)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIsAllowed(t *testing.T) {
	assert.True(t, isAllowed(frame(0, 0, 0.2, 0.2)), "exactly the minimum is allowed")
	assert.True(t, isAllowed(frame(0, 0, 0.5-0.3, 1)))
	assert.False(t, isAllowed(frame(0, 0, 0.19, 1)))
	assert.False(t, isAllowed(frame(0, 0, 1, 0.15)))
}
