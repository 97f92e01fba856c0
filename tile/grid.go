package tile

import (
	"fmt"
	"math"
	"strings"

	"chosenoffset.com/autotile/gridutil"
)

// Grid is a 2d grid of stacked tiles to be drawn on-screen.
//
// Unlike an intgrid.Grid, which defines what type of thing is in a cell, a
// tile Grid only defines what is visually displayed there. Each cell holds
// the tiles placed by rules, in placement order.
type Grid struct {
	layerUID   int
	randomSeed uint32
	width      int
	height     int
	cells      [][]InCell
}

// NewGrid allocates a grid of empty cells with the given dimensions.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([][]InCell, width*height),
	}
}

// Width returns the number of cells in the x-axis.
func (g *Grid) Width() int { return g.width }

// Height returns the number of cells in the y-axis.
func (g *Grid) Height() int { return g.height }

// Size returns the total number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// SetLayerUID records which layer definition this grid was generated for.
func (g *Grid) SetLayerUID(uid int) { g.layerUID = uid }

// LayerUID returns the uid of the layer this grid was generated for.
func (g *Grid) LayerUID() int { return g.layerUID }

// SetRandomSeed records the seed used during the rule matching process,
// so a generated level can be recreated later.
func (g *Grid) SetRandomSeed(seed uint32) { g.randomSeed = seed }

// RandomSeed returns the seed used during the rule matching process.
func (g *Grid) RandomSeed() uint32 { return g.randomSeed }

// TilesAt returns the stack of tiles placed at (x, y). The first element
// is visually on top. The returned slice is owned by the grid.
func (g *Grid) TilesAt(x, y int) []InCell {
	return g.cells[gridutil.Index(x, y, g.width)]
}

// TilesAtIndex returns the stack of tiles at a linear cell index.
func (g *Grid) TilesAtIndex(idx int) []InCell {
	return g.cells[idx]
}

// Put places a tile at (x, y). Placing outside the grid is a programmer
// error and panics; the rule runner clips stamps before calling this.
func (g *Grid) Put(t InCell, x, y int) {
	if !gridutil.IsWithinBounds(x, y, g.width, g.height) {
		panic(fmt.Sprintf("tile: put at (%d, %d) outside %dx%d grid", x, y, g.width, g.height))
	}
	idx := gridutil.Index(x, y, g.width)
	g.cells[idx] = append(g.cells[idx], t)
}

// CanStillPlaceTiles reports whether (x, y) admits more tiles. A cell is
// closed once any tile with the Final flag has been placed in it.
func (g *Grid) CanStillPlaceTiles(x, y int) bool {
	for _, t := range g.cells[gridutil.Index(x, y, g.width)] {
		if t.Flags.IsFinal() {
			return false
		}
	}
	return true
}

// HighestPriority returns the numerically lowest Priority placed at
// (x, y), which is the highest-ranking rule to have touched the cell.
// Returns math.MaxUint8 for a cell with no tiles.
func (g *Grid) HighestPriority(x, y int) uint8 {
	result := uint8(math.MaxUint8)
	for _, t := range g.cells[gridutil.Index(x, y, g.width)] {
		if t.Priority < result {
			result = t.Priority
		}
	}
	return result
}

// SetSize changes the grid's dimensions. Existing stacks are kept where
// the linear storage overlaps.
func (g *Grid) SetSize(width, height int) {
	if g.width == width && g.height == height {
		return
	}
	cells := make([][]InCell, width*height)
	copy(cells, g.cells)
	g.width = width
	g.height = height
	g.cells = cells
}

// CleanUp removes all placed tiles. Dimensions stay the same.
func (g *Grid) CleanUp() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// TileIDString renders the tile ids stacked in each cell, row by row.
// Cells print as bracketed lists, e.g. "[], [1337], [2, 1]".
func (g *Grid) TileIDString() string {
	return g.debugString(func(t InCell) string { return fmt.Sprintf("%d", t.ID) })
}

// PriorityString renders the rule priorities stacked in each cell, in the
// same layout as TileIDString.
func (g *Grid) PriorityString() string {
	return g.debugString(func(t InCell) string { return fmt.Sprintf("%d", t.Priority) })
}

func (g *Grid) debugString(cell func(InCell) string) string {
	var sb strings.Builder
	sb.WriteString("\n")
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if x > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("[")
			for n, t := range g.TilesAt(x, y) {
				if n > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(cell(t))
			}
			sb.WriteString("]")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
