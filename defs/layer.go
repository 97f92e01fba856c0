package defs

import "chosenoffset.com/autotile/intgrid"

// Layer is one layer definition of a project: which tileset it draws
// from, how big its cells display, and the rule groups that generate its
// tiles.
type Layer struct {
	// Name is the user-defined identifier of the layer.
	Name string

	// UID uniquely identifies this layer definition.
	UID int

	// CellPixelSize is how many pixels each cell is displayed as, in both
	// width and height.
	CellPixelSize int

	// TilesetDefUID refers to the TileSet all rules of this layer use.
	TilesetDefUID int

	// UseAutoSourceLayerDefUID marks layers that match against another
	// layer's IntGrid values instead of their own.
	UseAutoSourceLayerDefUID bool

	// AutoSourceLayerDefUID is the uid of that other layer.
	AutoSourceLayerDefUID int

	// InitialRandomSeed is the seed used for this layer's pseudo-random
	// checks when the caller doesn't ask for randomized seeds.
	InitialRandomSeed uint32

	// IntGridValues names the integer tags this layer's patterns refer to.
	IntGridValues []intgrid.Value

	// RuleGroups holds all the layer's rules, in definition order.
	RuleGroups []RuleGroup
}

// IntGridValue returns the named value with the given id, or nil.
func (l *Layer) IntGridValue(id uint16) *intgrid.Value {
	for i := range l.IntGridValues {
		if l.IntGridValues[i].ID == id {
			return &l.IntGridValues[i]
		}
	}
	return nil
}
