// Package tile holds the output side of the rule engine: placed-tile
// records, their draw flags, and the per-layer grid that stacks them.
//
// A tile id is an index into a tileset image atlas, 0 being the top-left
// tile, counting left-to-right then top-to-bottom.
package tile

// InCell is one tile placed on a cell by a rule. Many of these can be
// stacked in a single cell; the first one placed is visually on top.
type InCell struct {
	// ID is the index of the tile to display, in tileset grid terms.
	ID uint16

	// Flags describes how the tile is drawn and whether it is final.
	Flags Flags

	// Priority is the ordinal of the rule that placed this tile within its
	// layer. Lower values were placed earlier and rank higher in z-order.
	// Only used during the matching process to fix stamp z-order.
	Priority uint8

	// PosXOffset moves the tile horizontally by whole pixels after
	// placement, on top of any half-cell offset flag.
	PosXOffset int16

	// PosYOffset moves the tile vertically by whole pixels after
	// placement. Negative moves up.
	PosYOffset int16

	// Opacity goes from 0 to 100. The editor enforces 1 as the minimum.
	Opacity uint8
}

// OffsetX returns the half-cell pixel offset in the x-axis, given half the
// displayed cell width. Accounts for the tile being flipped horizontally,
// which mirrors the offset direction.
func (t InCell) OffsetX(halfWidth float32) float32 {
	dir := float32(1)
	if t.Flags.IsFlippedX() {
		dir = -1
	}
	switch {
	case t.Flags.HasOffsetRight():
		return dir * halfWidth
	case t.Flags.HasOffsetLeft():
		return dir * -halfWidth
	}
	return 0
}

// OffsetY returns the half-cell pixel offset in the y-axis, given half the
// displayed cell height. Accounts for the tile being flipped vertically.
func (t InCell) OffsetY(halfHeight float32) float32 {
	dir := float32(1)
	if t.Flags.IsFlippedY() {
		dir = -1
	}
	switch {
	case t.Flags.HasOffsetDown():
		return dir * halfHeight
	case t.Flags.HasOffsetUp():
		return dir * -halfHeight
	}
	return 0
}
