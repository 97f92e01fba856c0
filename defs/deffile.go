// Package defs holds the in-memory definition tree of an auto-tile
// project (layers, rule groups, rules and tilesets) and the rule runner
// that applies it to a level's IntGrid.
//
// A DefFile is populated once (normally by the ldtkfile parser),
// pre-processed once, and is then immutable for the lifetime of the
// program. That makes it safe to share read-only across goroutines; only
// the Level being written to needs exclusive ownership.
package defs

import (
	"fmt"
	"math"
	"math/rand"

	"chosenoffset.com/autotile/level"
	"chosenoffset.com/autotile/tile"
)

// DefFile is the definition side of a project: everything the rules need,
// none of the per-level cell data.
type DefFile struct {
	// Filename is where the project was loaded from, if anywhere.
	Filename string

	// ProjectUniqueID is the project's stable identifier.
	ProjectUniqueID string

	// FileVersion is the editor version that saved the project.
	FileVersion string

	// BgColorHex is the level background color as saved ("#rrggbb").
	BgColorHex string

	// BgColor8 and BgColorF are the parsed background color.
	BgColor8 Color8
	BgColorF ColorF

	// Trace, when non-nil, observes pre-processing and rule matching.
	Trace Tracer

	layers   []Layer
	tilesets []TileSet
}

// AddLayer appends a layer definition. Layers are kept in draw order:
// index 0 is visually topmost.
func (f *DefFile) AddLayer(l Layer) {
	f.layers = append(f.layers, l)
}

// AddTileset appends a tileset definition.
func (f *DefFile) AddTileset(ts TileSet) {
	f.tilesets = append(f.tilesets, ts)
}

// Layers returns all layer definitions in draw order.
func (f *DefFile) Layers() []Layer {
	return f.layers
}

// Tilesets returns all tileset definitions.
func (f *DefFile) Tilesets() []TileSet {
	return f.tilesets
}

// Layer returns the layer definition with the given uid, or nil.
func (f *DefFile) Layer(uid int) *Layer {
	for i := range f.layers {
		if f.layers[i].UID == uid {
			return &f.layers[i]
		}
	}
	return nil
}

// Tileset returns the tileset definition with the given uid, or nil.
func (f *DefFile) Tileset(uid int) *TileSet {
	for i := range f.tilesets {
		if f.tilesets[i].UID == uid {
			return &f.tilesets[i]
		}
	}
	return nil
}

// RuleGroupOfRule returns the group holding the rule with the given uid,
// or nil.
func (f *DefFile) RuleGroupOfRule(ruleUID int) *RuleGroup {
	for li := range f.layers {
		groups := f.layers[li].RuleGroups
		for gi := range groups {
			for ri := range groups[gi].Rules {
				if groups[gi].Rules[ri].UID == ruleUID {
					return &groups[gi]
				}
			}
		}
	}
	return nil
}

// SetLayerInitialSeed stores the seed a layer instance was saved with.
func (f *DefFile) SetLayerInitialSeed(layerUID int, seed uint32) {
	if l := f.Layer(layerUID); l != nil {
		l.InitialRandomSeed = seed
	}
}

// PreProcess fills in the derived data rules need before they can run:
// the background color and, for every stamp rule, the per-tile offset
// cache. Call once after the definition is populated and before the first
// RunRules. includeDeactivated also processes inactive groups and rules,
// for tooling that toggles them at runtime.
func (f *DefFile) PreProcess(includeDeactivated bool) {
	f.BgColor8, f.BgColorF = parseHexColor(f.BgColorHex)

	for li := range f.layers {
		layer := &f.layers[li]
		tileset := f.Tileset(layer.TilesetDefUID)
		if tileset == nil {
			// no tileset, nothing to resolve stamp shapes against
			continue
		}

		for gi := range layer.RuleGroups {
			group := &layer.RuleGroups[gi]
			if !group.Active && !includeDeactivated {
				continue
			}
			for ri := range group.Rules {
				rule := &group.Rules[ri]
				if !rule.Active && !includeDeactivated {
					continue
				}
				if rule.TileMode != TileModeStamp || len(rule.TileIDs) == 0 {
					continue
				}
				preProcessStamp(rule, tileset)
				if f.Trace != nil {
					f.Trace.StampOffsetsComputed(rule.UID, rule.StampTileOffsets)
				}
			}
		}
	}
}

// preProcessStamp computes where each tile of a stamp lands relative to
// the matched cell, given the stamp's shape in the tileset and its pivot.
func preProcessStamp(rule *Rule, tileset *TileSet) {
	// stamp bounds within the tilesheet, in tile coordinates
	top, left := math.MaxInt32, math.MaxInt32
	bottom, right := math.MinInt32, math.MinInt32
	for _, id := range rule.TileIDs {
		x, y := tileset.Coordinates(int(id))
		top = min(top, y)
		left = min(left, x)
		bottom = max(bottom, y)
		right = max(right, x)
	}

	// Width and height are zero-based (a 3-wide stamp has stampWidth 2),
	// which is what the pivot math below wants.
	stampWidth := right - left
	stampHeight := bottom - top

	// The cell offsets can only hold whole cells. A 0.5 pivot on an
	// even-sized stamp lands between cells; the leftover half cell is
	// recorded as an OffsetLeft/OffsetUp flag for the renderer to apply
	// in pixels.
	horizontalWhole, horizontalFraction := math.Modf(float64(rule.StampPivotX) * float64(stampWidth))
	verticalWhole, verticalFraction := math.Modf(float64(rule.StampPivotY) * float64(stampHeight))

	rule.StampTileOffsets = rule.StampTileOffsets[:0]
	for _, id := range rule.TileIDs {
		x, y := tileset.Coordinates(int(id))

		offset := StampOffset{
			X: int16(x - left - int(horizontalWhole)),
			Y: int16(y - top - int(verticalWhole)),
		}
		if horizontalFraction > 0 {
			offset.Flags |= tile.OffsetLeft
		}
		if verticalFraction > 0 {
			offset.Flags |= tile.OffsetUp
		}
		rule.StampTileOffsets = append(rule.StampTileOffsets, offset)
	}
}

// Validate checks every active rule with tiles to place. It returns nil
// for a definition that can run safely, or the first ErrInvalidConfig
// found.
func (f *DefFile) Validate() error {
	for li := range f.layers {
		layer := &f.layers[li]
		for gi := range layer.RuleGroups {
			group := &layer.RuleGroups[gi]
			if !group.Active {
				continue
			}
			for ri := range group.Rules {
				rule := &group.Rules[ri]
				if !rule.Active || len(rule.TileIDs) == 0 {
					continue
				}
				if err := rule.Validate(); err != nil {
					return fmt.Errorf("layer %d group %q: %w", layer.UID, group.Name, err)
				}
			}
		}
	}
	return nil
}

// IsValid reports whether Validate passes.
func (f *DefFile) IsValid() bool {
	return f.Validate() == nil
}

// RunRules applies every layer's rules to the level's IntGrid, filling
// one tile grid per layer. The level's tile grids are resized and cleared
// first; on an invalid definition the run stops there and the grids stay
// cleared.
//
// Rules are visited in definition order (group, then rule), cells row by
// row. That order is part of the engine's contract: outputs are
// bit-identical across runs for the same definition, IntGrid and seeds.
func (f *DefFile) RunRules(lv *level.Level, settings RunSettings) error {
	grid := lv.IntGrid()
	if grid.Width() == 0 || grid.Height() == 0 {
		return fmt.Errorf("%w: level has no cells", ErrInvalidConfig)
	}

	// ensure the level has one tile grid per layer, all empty
	lv.SetTileGridCount(len(f.layers))
	lv.CleanUpTileGrids()

	if err := f.Validate(); err != nil {
		return err
	}

	for layerIdx := range f.layers {
		seed := f.layers[layerIdx].InitialRandomSeed
		if settings.HasRandomizeSeeds() {
			seed = rand.Uint32()
		}
		f.runRulesOnLayer(lv, layerIdx, seed, settings)
	}

	return nil
}

// runRulesOnLayer applies one layer's rules with the given seed.
func (f *DefFile) runRulesOnLayer(lv *level.Level, layerIdx int, seed uint32, settings RunSettings) {
	layer := &f.layers[layerIdx]
	tileGrid := lv.TileGrid(layerIdx)

	tileGrid.SetRandomSeed(seed)
	tileGrid.SetLayerUID(layer.UID)

	// Each rule actually visited gets the next priority ordinal; the
	// hash wants a plain int seed, wrapped the same way on every
	// platform.
	priority := uint8(0)
	hashSeed := int(int32(seed))

	for gi := range layer.RuleGroups {
		group := &layer.RuleGroups[gi]
		if !group.Active {
			continue
		}
		for ri := range group.Rules {
			rule := &group.Rules[ri]
			if !rule.Active || len(rule.TileIDs) == 0 || rule.Chance <= 0 {
				continue
			}

			rule.apply(tileGrid, lv.IntGrid(), hashSeed, priority, settings, f.Trace)
			priority++
		}
	}
}
