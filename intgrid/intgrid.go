// Package intgrid holds the semantic input grid of a level: a dense 2d
// array of integer tags saying what type of thing occupies each cell.
//
// Most commonly this acts as the collision map. A level designer might
// assign 1 to walkable areas and 2 to walls, or different terrain types.
// What each value actually means is up to the game; the only value with a
// built-in meaning is Empty (0), which marks a cell with nothing in it.
package intgrid

import (
	"fmt"
	"strings"

	"chosenoffset.com/autotile/gridutil"
)

// Empty is the reserved cell value meaning nothing has been placed there.
const Empty = 0

// Grid stores width*height cell values in row-major order, (0, 0) at the
// top-left.
type Grid struct {
	width  int
	height int
	cells  []uint16
}

// New allocates a grid of the given dimensions with every cell Empty.
func New(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]uint16, width*height),
	}
}

// NewWithValues creates a grid that takes ownership of the given values.
// len(values) must equal width*height.
func NewWithValues(width, height int, values []uint16) (*Grid, error) {
	if len(values) != width*height {
		return nil, fmt.Errorf("intgrid: values length %d does not match %dx%d", len(values), width, height)
	}
	return &Grid{width: width, height: height, cells: values}, nil
}

// Width returns the number of cells in the x-axis.
func (g *Grid) Width() int { return g.width }

// Height returns the number of cells in the y-axis.
func (g *Grid) Height() int { return g.height }

// Size returns the total number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// At returns the value at (x, y). Coordinates must be within bounds.
func (g *Grid) At(x, y int) uint16 {
	return g.cells[gridutil.Index(x, y, g.width)]
}

// AtIndex returns the value at a linear cell index.
func (g *Grid) AtIndex(idx int) uint16 {
	return g.cells[idx]
}

// Set assigns the value at (x, y).
func (g *Grid) Set(x, y int, value uint16) {
	g.cells[gridutil.Index(x, y, g.width)] = value
}

// SetIndex assigns the value at a linear cell index.
func (g *Grid) SetIndex(idx int, value uint16) {
	g.cells[idx] = value
}

// IsWithinHorizontalBounds reports whether x is inside the grid.
func (g *Grid) IsWithinHorizontalBounds(x int) bool {
	return gridutil.IsWithinHorizontalBounds(x, g.width)
}

// IsWithinVerticalBounds reports whether y is inside the grid.
func (g *Grid) IsWithinVerticalBounds(y int) bool {
	return gridutil.IsWithinVerticalBounds(y, g.height)
}

// IsWithinBounds reports whether (x, y) is inside the grid.
func (g *Grid) IsWithinBounds(x, y int) bool {
	return gridutil.IsWithinBounds(x, y, g.width, g.height)
}

// SetSize changes the grid's dimensions, keeping existing values where the
// linear storage overlaps.
func (g *Grid) SetSize(width, height int) {
	if g.width == width && g.height == height {
		return
	}
	cells := make([]uint16, width*height)
	copy(cells, g.cells)
	g.width = width
	g.height = height
	g.cells = cells
}

// Reset replaces the grid's dimensions and values outright.
// len(values) must equal width*height.
func (g *Grid) Reset(width, height int, values []uint16) error {
	if len(values) != width*height {
		return fmt.Errorf("intgrid: values length %d does not match %dx%d", len(values), width, height)
	}
	g.width = width
	g.height = height
	g.cells = values
	return nil
}

// CleanUp assigns Empty to every cell. Dimensions are unchanged.
func (g *Grid) CleanUp() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// String renders the cell values row by row, for debugging.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if x > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d", g.At(x, y))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
