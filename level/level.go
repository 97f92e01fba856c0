// Package level holds the runtime data of one actual level: the semantic
// IntGrid the game filled in, and the per-layer tile grids the rule engine
// writes its results into.
package level

import (
	"strings"

	"chosenoffset.com/autotile/intgrid"
	"chosenoffset.com/autotile/tile"
)

// Level owns the input IntGrid and the output tile grids of a single rule
// run. A Level may be reused across runs; the tile grids are cleared at
// the start of each run.
//
// A Level must not be shared between concurrent runs.
type Level struct {
	grid      intgrid.Grid
	tileGrids []*tile.Grid
}

// SetIntGrid assigns dimensions and values to the level's IntGrid and
// resizes the tile grids to match. len(values) must equal width*height.
func (l *Level) SetIntGrid(width, height int, values []uint16) error {
	if err := l.grid.Reset(width, height, values); err != nil {
		return err
	}
	for _, tg := range l.tileGrids {
		tg.SetSize(width, height)
	}
	return nil
}

// SetCell assigns the value of one IntGrid cell.
func (l *Level) SetCell(x, y int, value uint16) {
	l.grid.Set(x, y, value)
}

// SetCellIndex assigns the value of one IntGrid cell by linear index.
func (l *Level) SetCellIndex(idx int, value uint16) {
	l.grid.SetIndex(idx, value)
}

// Width returns the number of cells in the x-axis.
func (l *Level) Width() int { return l.grid.Width() }

// Height returns the number of cells in the y-axis.
func (l *Level) Height() int { return l.grid.Height() }

// IsWithinBounds reports whether (x, y) is inside the level.
func (l *Level) IsWithinBounds(x, y int) bool {
	return l.grid.IsWithinBounds(x, y)
}

// IntGrid returns the level's semantic grid.
func (l *Level) IntGrid() *intgrid.Grid {
	return &l.grid
}

// TileGridCount returns the number of tile grids in the level.
func (l *Level) TileGridCount() int { return len(l.tileGrids) }

// SetTileGridCount grows or shrinks the list of tile grids. New grids are
// sized to the current IntGrid.
func (l *Level) SetTileGridCount(count int) {
	for len(l.tileGrids) < count {
		l.tileGrids = append(l.tileGrids, tile.NewGrid(l.grid.Width(), l.grid.Height()))
	}
	if len(l.tileGrids) > count {
		l.tileGrids = l.tileGrids[:count]
	}
}

// TileGrid returns the tile grid at the given layer index.
func (l *Level) TileGrid(idx int) *tile.Grid {
	return l.tileGrids[idx]
}

// CleanUpIntGrid assigns 0 to all IntGrid cells.
func (l *Level) CleanUpIntGrid() {
	l.grid.CleanUp()
}

// CleanUpTileGrids removes all previously placed tiles from every tile
// grid. Dimensions stay the same.
func (l *Level) CleanUpTileGrids() {
	for _, tg := range l.tileGrids {
		tg.CleanUp()
	}
}

// DebugString renders the IntGrid and every tile grid, for debugging.
func (l *Level) DebugString() string {
	var sb strings.Builder
	sb.WriteString(l.grid.String())
	for _, tg := range l.tileGrids {
		sb.WriteString(tg.TileIDString())
	}
	return sb.String()
}
