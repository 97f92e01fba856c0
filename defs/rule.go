package defs

import (
	"fmt"
	"math"

	"chosenoffset.com/autotile/gridutil"
	"chosenoffset.com/autotile/intgrid"
	"chosenoffset.com/autotile/tile"
)

const (
	// PatternAnything in a pattern cell means any non-empty value matches.
	PatternAnything int32 = 1000001

	// PatternNothing in a pattern cell means only an empty cell matches.
	PatternNothing int32 = -1000001
)

// chanceMax is the granularity of the Chance roll.
const chanceMax = 100

// CheckerMode offsets every other row or column when a rule uses modulo
// cell selection, producing a staggered pattern.
type CheckerMode uint8

const (
	CheckerNone CheckerMode = iota
	CheckerHorizontal
	CheckerVertical
)

// TileMode determines how a rule's tiles are placed on a matched cell.
//
// Single places one tile into the matched cell; if the rule lists several
// tile ids, one is chosen pseudo-randomly.
//
// Stamp places all listed tiles at once, keeping the shape they have in
// the tileset image. StampPivotX/Y anchor the shape on the matched cell.
type TileMode uint8

const (
	TileModeSingle TileMode = iota
	TileModeStamp
)

// StampOffset is the cached placement of one tile in a stamp, relative to
// the matched cell. Computed once by DefFile.PreProcess.
type StampOffset struct {
	// X and Y are in cell units, relative to the matched cell.
	X int16
	Y int16

	// Flags carries OffsetLeft and/or OffsetUp when the stamp's pivot
	// lands between cells, meaning the renderer must shift the tile by
	// half a cell. Happens when the stamp has an even width/height and a
	// 0.5 pivot.
	Flags tile.Flags
}

// HasHalfCellOffset reports whether the tile sits half a cell off-grid.
func (o StampOffset) HasHalfCellOffset() bool {
	return o.Flags.HasOffsetLeft() || o.Flags.HasOffsetUp()
}

// Rule specifies what tile(s) to place for cells that match a specific
// pattern of IntGrid values.
type Rule struct {
	// UID uniquely identifies this rule. It also contributes to the seed
	// of the pseudo-random checks.
	UID int

	// Active rules are processed; deactivated rules are skipped.
	Active bool

	// Chance below 1.0 makes the rule pass a per-cell random check before
	// it is applied. At or below 0 the rule never applies.
	Chance float32

	// BreakOnMatch makes a successful placement prevent later rules
	// (across all groups of the layer) from writing to the same cell.
	BreakOnMatch bool

	// FlipX also tries the rule as a horizontally flipped version.
	FlipX bool

	// FlipY also tries the rule as a vertically flipped version.
	FlipY bool

	// Opacity of placed tiles, 0 to 100.
	Opacity uint8

	// PosXOffset moves placed tiles horizontally, in pixels. For stamps
	// this applies after the stamp offsets.
	PosXOffset int16

	// PosYOffset moves placed tiles vertically, in pixels. Negative is up.
	PosYOffset int16

	// RandomPosXOffsetMin/Max add a random horizontal pixel offset in
	// [min, max] to each placed tile. The editor keeps min <= max.
	RandomPosXOffsetMin int16
	RandomPosXOffsetMax int16

	// RandomPosYOffsetMin/Max add a random vertical pixel offset.
	RandomPosYOffsetMin int16
	RandomPosYOffsetMax int16

	// XModulo selects every nth column for matching; 1 checks every
	// column. XModuloOffset shifts which column the stride starts at.
	XModulo       int
	XModuloOffset int

	// YModulo selects every nth row; YModuloOffset shifts the start row.
	YModulo       int
	YModuloOffset int

	// Checker staggers the modulo selection on alternate rows or columns.
	// When not CheckerNone, the corresponding modulo offset is ignored.
	Checker CheckerMode

	// VerticalOutOfBoundsValue substitutes for cells the pattern reads
	// above or below the grid (and diagonally outside it). -1 aborts the
	// match instead of substituting.
	VerticalOutOfBoundsValue int

	// HorizontalOutOfBoundsValue substitutes for cells read past the left
	// or right edge. -1 aborts the match.
	HorizontalOutOfBoundsValue int

	// Pattern is a square grid of conditions, stored row-major, side
	// length PatternSize. 0 means don't care; a positive value requires
	// that IntGrid value; a negative value forbids it; PatternAnything
	// requires any non-empty cell; PatternNothing requires an empty cell.
	Pattern []int32

	// PatternSize is the side length of Pattern: 1, 3, 5 or 7.
	PatternSize int

	// TileIDs are the tiles to place on a match, as tileset indices.
	TileIDs []uint16

	// TileMode selects Single or Stamp placement.
	TileMode TileMode

	// StampPivotX/Y anchor a stamp on the matched cell, normalized 0..1.
	// The editor only assigns 0, 0.5 and 1.
	StampPivotX float32
	StampPivotY float32

	// StampTileOffsets caches where each tile of a stamp lands relative
	// to the matched cell, one entry per TileIDs element. Computed when
	// the def file is pre-processed; must be recomputed if the rule is
	// ever edited at runtime.
	StampTileOffsets []StampOffset
}

// NewRule returns a rule with the editor's defaults.
func NewRule() Rule {
	return Rule{
		Active:                     true,
		Chance:                     1,
		BreakOnMatch:               true,
		Opacity:                    100,
		XModulo:                    1,
		YModulo:                    1,
		VerticalOutOfBoundsValue:   -1,
		HorizontalOutOfBoundsValue: -1,
	}
}

// Validate reports whether the rule can be run safely.
func (r *Rule) Validate() error {
	if r.XModulo < 1 || r.YModulo < 1 {
		return fmt.Errorf("rule %d: %w: divisor is zero (xModulo: %d, yModulo: %d)",
			r.UID, ErrInvalidConfig, r.XModulo, r.YModulo)
	}

	switch r.PatternSize {
	case 1, 3, 5, 7:
	default:
		return fmt.Errorf("rule %d: %w: pattern size must be 1, 3, 5 or 7, got %d",
			r.UID, ErrInvalidConfig, r.PatternSize)
	}

	if len(r.Pattern) != r.PatternSize*r.PatternSize {
		return fmt.Errorf("rule %d: %w: pattern length %d does not match size %d",
			r.UID, ErrInvalidConfig, len(r.Pattern), r.PatternSize)
	}

	if math.IsNaN(float64(r.Chance)) || math.IsInf(float64(r.Chance), 0) {
		return fmt.Errorf("rule %d: %w: chance is not finite", r.UID, ErrInvalidConfig)
	}

	if r.Active && r.Chance > 0 && r.TileMode == TileModeStamp && len(r.StampTileOffsets) != len(r.TileIDs) {
		return fmt.Errorf("rule %d: %w: stamp offsets not pre-processed (%d offsets for %d tiles)",
			r.UID, ErrInvalidConfig, len(r.StampTileOffsets), len(r.TileIDs))
	}

	if r.RandomPosXOffsetMin > r.RandomPosXOffsetMax {
		return fmt.Errorf("rule %d: %w: random x offset min %d greater than max %d",
			r.UID, ErrInvalidConfig, r.RandomPosXOffsetMin, r.RandomPosXOffsetMax)
	}
	if r.RandomPosYOffsetMin > r.RandomPosYOffsetMax {
		return fmt.Errorf("rule %d: %w: random y offset min %d greater than max %d",
			r.UID, ErrInvalidConfig, r.RandomPosYOffsetMin, r.RandomPosYOffsetMax)
	}

	return nil
}

// matchesCell checks the rule's pattern against the cell at (cellX,
// cellY). dirX/dirY are 1 or -1; a flipped variant is checked by flipping
// how the IntGrid is read, not by flipping the pattern.
func (r *Rule) matchesCell(cells *intgrid.Grid, cellX, cellY, dirX, dirY, randomSeed int) bool {
	// Rules with chance <= 0 were already filtered out by the runner.
	if r.Chance < 1 {
		chance100 := int(math.Round(float64(r.Chance) * chanceMax))
		if gridutil.RandomIndex(randomSeed+r.UID, cellX, cellY, chanceMax) >= chance100 {
			return false
		}
	}

	// TODO check perlin noise data here, once patterns carry it

	// radius turns the pattern's top-left-based coordinates into offsets
	// around the cell being matched
	radius := r.PatternSize / 2

	for py := 0; py < r.PatternSize; py++ {
		for px := 0; px < r.PatternSize; px++ {
			patternValue := r.Pattern[px+py*r.PatternSize]
			if patternValue == 0 {
				// pattern doesn't care about this cell
				continue
			}

			checkX := cellX + (px-radius)*dirX
			checkY := cellY + (py-radius)*dirY

			var value int
			withinHorizontal := cells.IsWithinHorizontalBounds(checkX)
			withinVertical := cells.IsWithinVerticalBounds(checkY)
			switch {
			case withinHorizontal && withinVertical:
				value = int(cells.At(checkX, checkY))
			case !withinHorizontal && withinVertical:
				// out of bounds to the left or right only
				if r.HorizontalOutOfBoundsValue == -1 {
					return false
				}
				value = r.HorizontalOutOfBoundsValue
			default:
				// out of bounds above/below, or diagonally
				if r.VerticalOutOfBoundsValue == -1 {
					return false
				}
				value = r.VerticalOutOfBoundsValue
			}

			switch {
			case patternValue == PatternAnything:
				if value == intgrid.Empty {
					return false
				}
			case patternValue == PatternNothing:
				if value != intgrid.Empty {
					return false
				}
			case patternValue > 0:
				if value != int(patternValue) {
					return false
				}
			default:
				// negative: any value is fine except that specific one
				if value == int(-patternValue) {
					return false
				}
			}
		}
	}

	return true
}

// passes checks modulo/checker cell selection, then the pattern and its
// flipped variants. On a match it returns the FlippedX/FlippedY flags of
// the variant that matched (possibly none) and true.
func (r *Rule) passes(cells *intgrid.Grid, cellX, cellY, randomSeed int) (tile.Flags, bool) {
	// modulo acts as a filter
	if r.Checker != CheckerVertical && (cellY-r.YModuloOffset)%r.YModulo != 0 {
		return 0, false
	}
	if r.Checker == CheckerVertical && (cellY+(cellX/r.XModulo)%2)%r.YModulo != 0 {
		return 0, false
	}
	if r.Checker != CheckerHorizontal && (cellX-r.XModuloOffset)%r.XModulo != 0 {
		return 0, false
	}
	if r.Checker == CheckerHorizontal && (cellX+(cellY/r.YModulo)%2)%r.XModulo != 0 {
		return 0, false
	}

	if r.matchesCell(cells, cellX, cellY, 1, 1, randomSeed) {
		return tile.NoFlags, true
	}
	if r.FlipX && r.FlipY && r.matchesCell(cells, cellX, cellY, -1, -1, randomSeed) {
		return tile.FlippedX | tile.FlippedY, true
	}
	if r.FlipX && r.matchesCell(cells, cellX, cellY, -1, 1, randomSeed) {
		return tile.FlippedX, true
	}
	if r.FlipY && r.matchesCell(cells, cellX, cellY, 1, -1, randomSeed) {
		return tile.FlippedY, true
	}

	return 0, false
}

// apply runs the rule over the whole IntGrid, placing tiles for every
// matched cell into tileGrid. priority is the rule's ordinal in the
// layer's placement order; lower ranks higher in z-order.
func (r *Rule) apply(tileGrid *tile.Grid, cells *intgrid.Grid, randomSeed int, priority uint8, settings RunSettings, trace Tracer) {
	if len(r.TileIDs) == 0 {
		// no tile to apply
		return
	}

	breakFlag := tile.NoFlags
	if r.BreakOnMatch {
		breakFlag = tile.Final
	}

	for cellY := 0; cellY < cells.Height(); cellY++ {
		for cellX := 0; cellX < cells.Width(); cellX++ {
			if !tileGrid.CanStillPlaceTiles(cellX, cellY) {
				continue
			}

			matchFlags, ok := r.passes(cells, cellX, cellY, randomSeed)
			if !ok {
				continue
			}
			if trace != nil {
				trace.RuleMatched(tileGrid.LayerUID(), r.UID, cellX, cellY, matchFlags)
			}

			posX, posY := r.pixelOffsets(randomSeed, cellX, cellY)

			switch r.TileMode {
			case TileModeSingle:
				// choose one tile at random
				id := r.TileIDs[0]
				if len(r.TileIDs) > 1 {
					id = r.TileIDs[gridutil.RandomIndex(randomSeed+r.UID, cellX, cellY, len(r.TileIDs))]
				}
				tileGrid.Put(tile.InCell{
					ID:         id,
					Flags:      matchFlags | breakFlag,
					Priority:   priority,
					PosXOffset: posX,
					PosYOffset: posY,
					Opacity:    r.Opacity,
				}, cellX, cellY)

			case TileModeStamp:
				r.applyStamp(tileGrid, cells, cellX, cellY, matchFlags, breakFlag, priority, posX, posY, settings)
			}
		}
	}
}

// applyStamp places every tile of a stamp around the matched cell.
func (r *Rule) applyStamp(tileGrid *tile.Grid, cells *intgrid.Grid, cellX, cellY int, matchFlags, breakFlag tile.Flags, priority uint8, posX, posY int16, settings RunSettings) {
	dirX, dirY := 1, 1
	if matchFlags.IsFlippedX() {
		dirX = -1
	}
	if matchFlags.IsFlippedY() {
		dirY = -1
	}

	for i, id := range r.TileIDs {
		offset := r.StampTileOffsets[i]
		flags := matchFlags | offset.Flags

		// The Final flag only extends to the cell the rule matched on; a
		// stamp tile landing elsewhere must not close its cell, or it
		// would block rules that never matched there. In faster mode all
		// whole-cell stamp tiles finalize (unusable if stamps have
		// transparency).
		if settings.HasFasterStampBreakOnMatch() {
			if !offset.HasHalfCellOffset() {
				flags |= breakFlag
			}
		} else if offset.X == 0 && offset.Y == 0 && !offset.HasHalfCellOffset() {
			flags |= breakFlag
		}

		locX := cellX + int(offset.X)*dirX
		locY := cellY + int(offset.Y)*dirY
		if locX < 0 || locX >= cells.Width() || locY < 0 || locY >= cells.Height() {
			// part of the stamp went over the map edge, skip that tile
			continue
		}

		// A tile drawn with a left offset overlaps the cell to its left.
		// If a higher-priority rule already placed there, move the tile
		// into that cell and turn the left offset into a right offset:
		// visually identical, but now it stacks below the higher-priority
		// rule's tile.
		if flags.HasOffsetLeft() && locX > 0 && tileGrid.HighestPriority(locX-1, locY) < priority {
			locX--
			flags &^= tile.OffsetLeft
			flags |= tile.OffsetRight
		}

		// Same in the y-axis.
		if flags.HasOffsetUp() && locY > 0 && tileGrid.HighestPriority(locX, locY-1) < priority {
			locY--
			flags &^= tile.OffsetUp
			flags |= tile.OffsetDown
		}

		tileGrid.Put(tile.InCell{
			ID:         id,
			Flags:      flags,
			Priority:   priority,
			PosXOffset: posX,
			PosYOffset: posY,
			Opacity:    r.Opacity,
		}, locX, locY)
	}
}

// pixelOffsets resolves the rule's fixed and random per-tile pixel
// offsets for one matched cell. The y-axis roll perturbs the seed so the
// two axes don't move in lockstep.
func (r *Rule) pixelOffsets(randomSeed, cellX, cellY int) (int16, int16) {
	posX := r.PosXOffset
	if r.RandomPosXOffsetMin != 0 || r.RandomPosXOffsetMax != 0 {
		posX += int16(gridutil.RandomIndexRange(randomSeed+r.UID, cellX, cellY,
			int(r.RandomPosXOffsetMin), int(r.RandomPosXOffsetMax)))
	}
	posY := r.PosYOffset
	if r.RandomPosYOffsetMin != 0 || r.RandomPosYOffsetMax != 0 {
		posY += int16(gridutil.RandomIndexRange(randomSeed+r.UID+1, cellX, cellY,
			int(r.RandomPosYOffsetMin), int(r.RandomPosYOffsetMax)))
	}
	return posX, posY
}
