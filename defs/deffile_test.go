package defs

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/autotile/gridutil"
	"chosenoffset.com/autotile/intgrid"
	"chosenoffset.com/autotile/level"
	"chosenoffset.com/autotile/tile"
)

// gridCells copies every cell stack out of a tile grid for comparison.
func gridCells(tg *tile.Grid) [][]tile.InCell {
	out := make([][]tile.InCell, tg.Size())
	for i := range out {
		out[i] = append([]tile.InCell(nil), tg.TilesAtIndex(i)...)
	}
	return out
}

func TestAccessors(t *testing.T) {
	var def DefFile
	def.AddLayer(Layer{Name: "Ground", UID: 10})
	def.AddLayer(Layer{Name: "Walls", UID: 20, RuleGroups: []RuleGroup{
		{Name: "edges", Active: true, Rules: []Rule{{UID: 77}}},
	}})
	def.AddTileset(TileSet{Name: "Main", UID: 5})

	require.Len(t, def.Layers(), 2)
	require.Equal(t, "Ground", def.Layers()[0].Name)

	require.NotNil(t, def.Layer(20))
	require.Equal(t, "Walls", def.Layer(20).Name)
	require.Nil(t, def.Layer(99))

	require.NotNil(t, def.Tileset(5))
	require.Nil(t, def.Tileset(6))

	group := def.RuleGroupOfRule(77)
	require.NotNil(t, group)
	require.Equal(t, "edges", group.Name)
	require.Nil(t, def.RuleGroupOfRule(78))

	def.SetLayerInitialSeed(20, 1234)
	require.Equal(t, uint32(1234), def.Layer(20).InitialRandomSeed)
}

func TestLayerIntGridValueLookup(t *testing.T) {
	layer := Layer{IntGridValues: []intgrid.Value{
		{ID: 1, Name: "Floor"},
		{ID: 2, Name: "Wall"},
	}}
	require.Equal(t, "Wall", layer.IntGridValue(2).Name)
	require.Nil(t, layer.IntGridValue(3))
}

func TestTilesetCoordinates(t *testing.T) {
	ts := TileSet{TileCountWidth: 8, TileCountHeight: 4}
	x, y := ts.Coordinates(0)
	require.Equal(t, 0, x)
	require.Equal(t, 0, y)
	x, y = ts.Coordinates(11)
	require.Equal(t, 3, x)
	require.Equal(t, 1, y)
}

func TestValidateRejectsBadRules(t *testing.T) {
	base := func() Rule {
		r := NewRule()
		r.PatternSize = 1
		r.Pattern = []int32{1}
		r.TileIDs = []uint16{1}
		return r
	}

	cases := []struct {
		name   string
		mutate func(*Rule)
	}{
		{"even pattern size", func(r *Rule) { r.PatternSize = 2; r.Pattern = []int32{0, 0, 0, 0} }},
		{"pattern length mismatch", func(r *Rule) { r.PatternSize = 3 }},
		{"non-finite chance", func(r *Rule) { r.Chance = float32(math.NaN()) }},
		{"random x offset min above max", func(r *Rule) { r.RandomPosXOffsetMin = 3; r.RandomPosXOffsetMax = 1 }},
		{"random y offset min above max", func(r *Rule) { r.RandomPosYOffsetMin = 3; r.RandomPosYOffsetMax = 1 }},
		{"stamp without offsets", func(r *Rule) { r.TileMode = TileModeStamp }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := base()
			tc.mutate(&rule)
			def := singleRuleDef(rule)
			require.ErrorIs(t, def.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateSkipsInactiveAndEmptyRules(t *testing.T) {
	inactive := NewRule()
	inactive.Active = false
	inactive.XModulo = 0 // would fail validation if it were active

	noTiles := NewRule()
	noTiles.XModulo = 0

	var def DefFile
	def.AddLayer(Layer{RuleGroups: []RuleGroup{
		{Active: true, Rules: []Rule{inactive, noTiles}},
		{Active: false, Rules: []Rule{inactive}},
	}})
	require.NoError(t, def.Validate())
}

func TestRunRulesRejectsEmptyLevel(t *testing.T) {
	def := singleRuleDef(NewRule())
	var lv level.Level
	require.ErrorIs(t, def.RunRules(&lv, RunDefault), ErrInvalidConfig)
}

func TestFlippedVariants(t *testing.T) {
	// The pattern requires the matched cell plus its upper-left diagonal
	// neighbour, so each flipped variant looks at a different corner.
	pattern := []int32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 0,
	}

	cases := []struct {
		name     string
		corner   [2]int
		expected tile.Flags
	}{
		{"flipped both", [2]int{2, 2}, tile.FlippedX | tile.FlippedY},
		{"flipped x", [2]int{2, 0}, tile.FlippedX},
		{"flipped y", [2]int{0, 2}, tile.FlippedY},
		{"not flipped", [2]int{0, 0}, tile.NoFlags},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := NewRule()
			rule.PatternSize = 3
			rule.Pattern = pattern
			rule.TileIDs = []uint16{3}
			rule.FlipX = true
			rule.FlipY = true
			def := singleRuleDef(rule)

			lv := newTestLevel(t, 3, 3, make([]uint16, 9))
			lv.SetCell(1, 1, 1)
			lv.SetCell(tc.corner[0], tc.corner[1], 1)

			require.NoError(t, def.RunRules(lv, RunDefault))
			tiles := lv.TileGrid(0).TilesAt(1, 1)
			require.Len(t, tiles, 1)
			require.Equal(t, tc.expected|tile.Final, tiles[0].Flags)
		})
	}
}

func TestOutOfBoundsSubstitution(t *testing.T) {
	t.Run("vertical substitute allows a match past the top edge", func(t *testing.T) {
		rule := NewRule()
		rule.PatternSize = 3
		rule.Pattern = []int32{
			0, 2, 0,
			0, 1, 0,
			0, 0, 0,
		}
		rule.TileIDs = []uint16{6}
		rule.VerticalOutOfBoundsValue = 2
		def := singleRuleDef(rule)

		lv := newTestLevel(t, 1, 1, []uint16{1})
		require.NoError(t, def.RunRules(lv, RunDefault))
		require.Len(t, lv.TileGrid(0).TilesAt(0, 0), 1)
	})

	t.Run("vertical -1 aborts the match", func(t *testing.T) {
		rule := NewRule()
		rule.PatternSize = 3
		rule.Pattern = []int32{
			0, 2, 0,
			0, 1, 0,
			0, 0, 0,
		}
		rule.TileIDs = []uint16{6}
		def := singleRuleDef(rule)

		lv := newTestLevel(t, 1, 1, []uint16{1})
		require.NoError(t, def.RunRules(lv, RunDefault))
		require.Empty(t, lv.TileGrid(0).TilesAt(0, 0))
	})

	t.Run("horizontal substitute is separate from vertical", func(t *testing.T) {
		rule := NewRule()
		rule.PatternSize = 3
		rule.Pattern = []int32{
			0, 0, 0,
			2, 1, 0,
			0, 0, 0,
		}
		rule.TileIDs = []uint16{6}
		rule.HorizontalOutOfBoundsValue = 2
		def := singleRuleDef(rule)

		lv := newTestLevel(t, 1, 1, []uint16{1})
		require.NoError(t, def.RunRules(lv, RunDefault))
		require.Len(t, lv.TileGrid(0).TilesAt(0, 0), 1)
	})

	t.Run("diagonal reads use the vertical substitute", func(t *testing.T) {
		rule := NewRule()
		rule.PatternSize = 3
		rule.Pattern = []int32{
			2, 0, 0,
			0, 1, 0,
			0, 0, 0,
		}
		rule.TileIDs = []uint16{6}
		rule.VerticalOutOfBoundsValue = 2
		rule.HorizontalOutOfBoundsValue = -1
		def := singleRuleDef(rule)

		lv := newTestLevel(t, 1, 1, []uint16{1})
		require.NoError(t, def.RunRules(lv, RunDefault))
		require.Len(t, lv.TileGrid(0).TilesAt(0, 0), 1)
	})
}

func TestPatternAnythingAndNothing(t *testing.T) {
	anything := NewRule()
	anything.PatternSize = 1
	anything.Pattern = []int32{PatternAnything}
	anything.TileIDs = []uint16{1}
	anything.BreakOnMatch = false

	nothing := NewRule()
	nothing.PatternSize = 1
	nothing.Pattern = []int32{PatternNothing}
	nothing.TileIDs = []uint16{2}
	nothing.BreakOnMatch = false

	var def DefFile
	def.AddLayer(Layer{RuleGroups: []RuleGroup{
		{Active: true, Rules: []Rule{anything, nothing}},
	}})

	lv := newTestLevel(t, 3, 1, []uint16{0, 7, 300})
	require.NoError(t, def.RunRules(lv, RunDefault))

	require.Equal(t, `
[2], [1], [1]
`, lv.TileGrid(0).TileIDString())
}

func TestBreakOnMatchBlocksLaterRules(t *testing.T) {
	first := NewRule()
	first.PatternSize = 1
	first.Pattern = []int32{1}
	first.TileIDs = []uint16{10}

	second := NewRule()
	second.PatternSize = 1
	second.Pattern = []int32{PatternAnything}
	second.TileIDs = []uint16{20}

	t.Run("final cells admit no further tiles", func(t *testing.T) {
		var def DefFile
		def.AddLayer(Layer{RuleGroups: []RuleGroup{
			{Active: true, Rules: []Rule{first, second}},
		}})

		lv := newTestLevel(t, 2, 1, []uint16{1, 2})
		require.NoError(t, def.RunRules(lv, RunDefault))

		require.Equal(t, `
[10], [20]
`, lv.TileGrid(0).TileIDString())
	})

	t.Run("without breakOnMatch the rules stack", func(t *testing.T) {
		open := first
		open.BreakOnMatch = false

		var def DefFile
		def.AddLayer(Layer{RuleGroups: []RuleGroup{
			{Active: true, Rules: []Rule{open, second}},
		}})

		lv := newTestLevel(t, 2, 1, []uint16{1, 2})
		require.NoError(t, def.RunRules(lv, RunDefault))

		tiles := lv.TileGrid(0).TilesAt(0, 0)
		require.Len(t, tiles, 2)
		require.Equal(t, uint16(10), tiles[0].ID)
		require.Equal(t, uint8(0), tiles[0].Priority)
		require.Equal(t, uint16(20), tiles[1].ID)
		require.Equal(t, uint8(1), tiles[1].Priority)
	})
}

func TestChance(t *testing.T) {
	t.Run("zero chance skips the rule and its priority slot", func(t *testing.T) {
		never := NewRule()
		never.UID = 1
		never.PatternSize = 1
		never.Pattern = []int32{1}
		never.TileIDs = []uint16{10}
		never.Chance = 0

		always := NewRule()
		always.UID = 2
		always.PatternSize = 1
		always.Pattern = []int32{1}
		always.TileIDs = []uint16{20}

		var def DefFile
		def.AddLayer(Layer{RuleGroups: []RuleGroup{
			{Active: true, Rules: []Rule{never, always}},
		}})

		lv := newTestLevel(t, 1, 1, []uint16{1})
		require.NoError(t, def.RunRules(lv, RunDefault))

		tiles := lv.TileGrid(0).TilesAt(0, 0)
		require.Len(t, tiles, 1)
		require.Equal(t, uint16(20), tiles[0].ID)
		require.Equal(t, uint8(0), tiles[0].Priority)
	})

	t.Run("partial chance matches the hash exactly", func(t *testing.T) {
		rule := NewRule()
		rule.UID = 42
		rule.PatternSize = 1
		rule.Pattern = []int32{1}
		rule.TileIDs = []uint16{9}
		rule.Chance = 0.5

		var def DefFile
		def.AddLayer(Layer{
			InitialRandomSeed: 9001,
			RuleGroups:        []RuleGroup{{Active: true, Rules: []Rule{rule}}},
		})

		lv := newTestLevel(t, 8, 8, onesGrid(8*8))
		require.NoError(t, def.RunRules(lv, RunDefault))

		placedAny := false
		skippedAny := false
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				placed := len(lv.TileGrid(0).TilesAt(x, y)) > 0
				expected := gridutil.RandomIndex(9001+42, x, y, 100) < 50
				require.Equal(t, expected, placed, "cell (%d, %d)", x, y)
				placedAny = placedAny || placed
				skippedAny = skippedAny || !placed
			}
		}
		require.True(t, placedAny)
		require.True(t, skippedAny)
	})
}

func onesGrid(n int) []uint16 {
	values := make([]uint16, n)
	for i := range values {
		values[i] = 1
	}
	return values
}

func TestSingleModeChoosesTileByHash(t *testing.T) {
	rule := NewRule()
	rule.UID = 7
	rule.PatternSize = 1
	rule.Pattern = []int32{1}
	rule.TileIDs = []uint16{100, 200, 300}

	var def DefFile
	def.AddLayer(Layer{
		InitialRandomSeed: 555,
		RuleGroups:        []RuleGroup{{Active: true, Rules: []Rule{rule}}},
	})

	lv := newTestLevel(t, 4, 4, onesGrid(16))
	require.NoError(t, def.RunRules(lv, RunDefault))

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			tiles := lv.TileGrid(0).TilesAt(x, y)
			require.Len(t, tiles, 1)
			expected := rule.TileIDs[gridutil.RandomIndex(555+7, x, y, 3)]
			require.Equal(t, expected, tiles[0].ID, "cell (%d, %d)", x, y)
		}
	}
}

func TestRuleRunIsDeterministic(t *testing.T) {
	rule := NewRule()
	rule.UID = 13
	rule.PatternSize = 1
	rule.Pattern = []int32{1}
	rule.TileIDs = []uint16{1, 2, 3, 4}
	rule.Chance = 0.7

	build := func() *DefFile {
		var def DefFile
		def.AddLayer(Layer{
			InitialRandomSeed: 31337,
			RuleGroups:        []RuleGroup{{Active: true, Rules: []Rule{rule}}},
		})
		return &def
	}

	run := func(def *DefFile) [][]tile.InCell {
		lv := newTestLevel(t, 6, 6, onesGrid(36))
		require.NoError(t, def.RunRules(lv, RunDefault))
		return gridCells(lv.TileGrid(0))
	}

	first := run(build())
	second := run(build())
	require.Empty(t, cmp.Diff(first, second))
}

func TestSeedBookkeeping(t *testing.T) {
	rule := NewRule()
	rule.PatternSize = 1
	rule.Pattern = []int32{1}
	rule.TileIDs = []uint16{1}

	var def DefFile
	def.AddLayer(Layer{
		UID:               44,
		InitialRandomSeed: 777,
		RuleGroups:        []RuleGroup{{Active: true, Rules: []Rule{rule}}},
	})

	lv := newTestLevel(t, 2, 2, onesGrid(4))
	require.NoError(t, def.RunRules(lv, RunDefault))
	require.Equal(t, uint32(777), lv.TileGrid(0).RandomSeed())
	require.Equal(t, 44, lv.TileGrid(0).LayerUID())

	// randomized runs still complete and record whatever seed they drew
	require.NoError(t, def.RunRules(lv, RandomizeSeeds))
}

func TestPreProcessStampOffsets(t *testing.T) {
	t.Run("bottom-center pivot on an odd-width stamp", func(t *testing.T) {
		def := stampDef(0.5, 1.0)
		def.PreProcess(false)

		rule := &def.Layers()[0].RuleGroups[0].Rules[0]
		expected := []StampOffset{
			{X: -1, Y: -2},
			{X: 0, Y: -2},
			{X: 1, Y: -2},
			{X: 0, Y: -1},
			{X: 0, Y: 0},
		}
		require.Empty(t, cmp.Diff(expected, rule.StampTileOffsets))
	})

	t.Run("center pivot on an even stamp records half-cell flags", func(t *testing.T) {
		rule := NewRule()
		rule.PatternSize = 1
		rule.Pattern = []int32{1}
		rule.TileIDs = []uint16{0, 1, 2, 3}
		rule.TileMode = TileModeStamp
		rule.StampPivotX = 0.5
		rule.StampPivotY = 0.5

		var def DefFile
		def.AddLayer(Layer{
			TilesetDefUID: 1,
			RuleGroups:    []RuleGroup{{Active: true, Rules: []Rule{rule}}},
		})
		def.AddTileset(TileSet{UID: 1, TileCountWidth: 2, TileCountHeight: 2})
		def.PreProcess(false)

		got := def.Layers()[0].RuleGroups[0].Rules[0].StampTileOffsets
		expected := []StampOffset{
			{X: 0, Y: 0, Flags: tile.OffsetLeft | tile.OffsetUp},
			{X: 1, Y: 0, Flags: tile.OffsetLeft | tile.OffsetUp},
			{X: 0, Y: 1, Flags: tile.OffsetLeft | tile.OffsetUp},
			{X: 1, Y: 1, Flags: tile.OffsetLeft | tile.OffsetUp},
		}
		require.Empty(t, cmp.Diff(expected, got))
		for _, o := range got {
			require.True(t, o.HasHalfCellOffset())
		}
	})

	t.Run("pre-processing twice is idempotent", func(t *testing.T) {
		def := stampDef(0.5, 1.0)
		def.PreProcess(false)
		first := append([]StampOffset(nil), def.Layers()[0].RuleGroups[0].Rules[0].StampTileOffsets...)
		def.PreProcess(false)
		require.Empty(t, cmp.Diff(first, def.Layers()[0].RuleGroups[0].Rules[0].StampTileOffsets))
	})
}

func TestHalfCellZOrderFixup(t *testing.T) {
	// A 2-wide stamp centered on its cell hangs half a cell to the left.
	// When the cell it overlaps was already claimed by a higher-priority
	// rule, the tile must migrate into that cell with a right offset so
	// the earlier rule stays on top.
	single := NewRule()
	single.UID = 1
	single.PatternSize = 1
	single.Pattern = []int32{2}
	single.TileIDs = []uint16{9}

	stamp := NewRule()
	stamp.UID = 2
	stamp.PatternSize = 1
	stamp.Pattern = []int32{1}
	stamp.TileIDs = []uint16{0, 1}
	stamp.TileMode = TileModeStamp
	stamp.StampPivotX = 0.5

	var def DefFile
	def.AddLayer(Layer{
		TilesetDefUID: 7,
		RuleGroups:    []RuleGroup{{Active: true, Rules: []Rule{single, stamp}}},
	})
	def.AddTileset(TileSet{UID: 7, TileCountWidth: 2, TileCountHeight: 1})
	def.PreProcess(false)

	lv := newTestLevel(t, 3, 1, []uint16{2, 1, 0})
	require.NoError(t, def.RunRules(lv, RunDefault))
	tg := lv.TileGrid(0)

	// the overlapped cell: single's final tile on top, the migrated
	// stamp tile below it with the offset direction flipped
	left := tg.TilesAt(0, 0)
	require.Len(t, left, 2)
	require.Equal(t, uint16(9), left[0].ID)
	require.True(t, left[0].Flags.IsFinal())
	require.Equal(t, uint16(0), left[1].ID)
	require.True(t, left[1].Flags.HasOffsetRight())
	require.False(t, left[1].Flags.HasOffsetLeft())
	require.Equal(t, uint8(1), left[1].Priority)

	// the matched cell itself ends up empty
	require.Empty(t, tg.TilesAt(1, 0))

	// the second stamp tile had no higher-priority neighbour and stays put
	right := tg.TilesAt(2, 0)
	require.Len(t, right, 1)
	require.Equal(t, uint16(1), right[0].ID)
	require.True(t, right[0].Flags.HasOffsetLeft())
}

func TestFasterStampBreakOnMatch(t *testing.T) {
	fill := NewRule()
	fill.UID = 9
	fill.PatternSize = 1
	fill.Pattern = []int32{PatternNothing}
	fill.TileIDs = []uint16{5}

	build := func() *DefFile {
		def := stampDef(0.5, 1.0)
		layer := &def.Layers()[0]
		layer.RuleGroups = append(layer.RuleGroups, RuleGroup{Active: true, Rules: []Rule{fill}})
		def.PreProcess(false)
		return def
	}

	t.Run("strict keeps non-anchor stamp cells open", func(t *testing.T) {
		lv := stampTestLevel(t)
		require.NoError(t, build().RunRules(lv, RunDefault))
		tiles := lv.TileGrid(0).TilesAt(0, 0)
		require.Len(t, tiles, 2)
		require.Equal(t, uint16(0), tiles[0].ID)
		require.Equal(t, uint16(5), tiles[1].ID)
	})

	t.Run("faster finalizes every whole-cell stamp tile", func(t *testing.T) {
		lv := stampTestLevel(t)
		require.NoError(t, build().RunRules(lv, FasterStampBreakOnMatch))

		// the stamp tile closed the cell, so the fill rule never ran here
		tiles := lv.TileGrid(0).TilesAt(0, 0)
		require.Len(t, tiles, 1)
		require.Equal(t, uint16(0), tiles[0].ID)
		require.True(t, tiles[0].Flags.IsFinal())

		// cells the stamp never touched still get filled
		require.Equal(t, uint16(5), lv.TileGrid(0).TilesAt(0, 4)[0].ID)
	})
}

func TestPixelOffsetsPropagate(t *testing.T) {
	rule := NewRule()
	rule.PatternSize = 1
	rule.Pattern = []int32{1}
	rule.TileIDs = []uint16{3}
	rule.Opacity = 55
	rule.PosXOffset = 3
	rule.PosYOffset = -2
	// a degenerate random range pins the roll to its only value
	rule.RandomPosYOffsetMin = 5
	rule.RandomPosYOffsetMax = 5
	def := singleRuleDef(rule)

	lv := newTestLevel(t, 1, 1, []uint16{1})
	require.NoError(t, def.RunRules(lv, RunDefault))

	tiles := lv.TileGrid(0).TilesAt(0, 0)
	require.Len(t, tiles, 1)
	require.Equal(t, uint8(55), tiles[0].Opacity)
	require.Equal(t, int16(3), tiles[0].PosXOffset)
	require.Equal(t, int16(3), tiles[0].PosYOffset) // -2 + 5
}

type recordingTracer struct {
	matches int
	stamps  int
}

func (r *recordingTracer) RuleMatched(layerUID, ruleUID, x, y int, flags tile.Flags) {
	r.matches++
}

func (r *recordingTracer) StampOffsetsComputed(ruleUID int, offsets []StampOffset) {
	r.stamps++
}

func TestTracerObservesMatchesAndPreProcessing(t *testing.T) {
	def := stampDef(0.5, 1.0)
	tracer := &recordingTracer{}
	def.Trace = tracer

	def.PreProcess(false)
	require.Equal(t, 1, tracer.stamps)

	lv := stampTestLevel(t)
	require.NoError(t, def.RunRules(lv, RunDefault))
	require.Equal(t, 3, tracer.matches)
}

func TestInactiveGroupsAndRulesAreSkipped(t *testing.T) {
	active := NewRule()
	active.PatternSize = 1
	active.Pattern = []int32{1}
	active.TileIDs = []uint16{1}

	dormant := active
	dormant.Active = false
	dormant.TileIDs = []uint16{2}

	var def DefFile
	def.AddLayer(Layer{RuleGroups: []RuleGroup{
		{Active: false, Rules: []Rule{active}},
		{Active: true, Rules: []Rule{dormant, active}},
	}})

	lv := newTestLevel(t, 1, 1, []uint16{1})
	require.NoError(t, def.RunRules(lv, RunDefault))

	tiles := lv.TileGrid(0).TilesAt(0, 0)
	require.Len(t, tiles, 1)
	require.Equal(t, uint16(1), tiles[0].ID)
	require.Equal(t, uint8(0), tiles[0].Priority)
}

func TestRunRulesCreatesOneGridPerLayer(t *testing.T) {
	rule := NewRule()
	rule.PatternSize = 1
	rule.Pattern = []int32{1}
	rule.TileIDs = []uint16{1}

	var def DefFile
	def.AddLayer(Layer{UID: 1, RuleGroups: []RuleGroup{{Active: true, Rules: []Rule{rule}}}})
	def.AddLayer(Layer{UID: 2})
	def.AddLayer(Layer{UID: 3})

	lv := newTestLevel(t, 2, 2, onesGrid(4))
	require.NoError(t, def.RunRules(lv, RunDefault))

	require.Equal(t, 3, lv.TileGridCount())
	for idx := 0; idx < 3; idx++ {
		require.Equal(t, 2, lv.TileGrid(idx).Width())
		require.Equal(t, 2, lv.TileGrid(idx).Height())
	}
	require.Equal(t, 2, lv.TileGrid(1).LayerUID())
	require.Empty(t, lv.TileGrid(1).TilesAt(0, 0))
}
