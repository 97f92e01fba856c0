// Package ldtkfile reads LDtk project files into a defs.DefFile.
//
// Only the parts of the format the rule engine consumes are read: layer
// definitions of type IntGrid or AutoLayer, their rule groups and rules,
// tileset metadata, the per-level layer seeds and the background color.
// Entities, enums and level cell data are ignored.
package ldtkfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"chosenoffset.com/autotile/defs"
	"chosenoffset.com/autotile/intgrid"
)

// ErrMalformedInput marks a project file the parser could not make sense
// of: unreadable JSON or missing required fields.
var ErrMalformedInput = errors.New("malformed project file")

const (
	layerTypeAutoLayer = "AutoLayer"
	layerTypeIntGrid   = "IntGrid"

	checkerModeNone       = "None"
	checkerModeHorizontal = "Horizontal"
	checkerModeVertical   = "Vertical"

	tileModeSingle = "Single"
	tileModeStamp  = "Stamp"
)

// projectJSON mirrors the slice of the LDtk format the engine needs.
type projectJSON struct {
	IID                 string      `json:"iid"`
	JSONVersion         string      `json:"jsonVersion"`
	DefaultLevelBgColor string      `json:"defaultLevelBgColor"`
	Defs                defsJSON    `json:"defs"`
	Levels              []levelJSON `json:"levels"`
}

type defsJSON struct {
	Layers   []layerJSON   `json:"layers"`
	Tilesets []tilesetJSON `json:"tilesets"`
}

type layerJSON struct {
	Type                  string             `json:"__type"`
	Identifier            string             `json:"identifier"`
	UID                   int                `json:"uid"`
	GridSize              int                `json:"gridSize"`
	TilesetDefUID         *int               `json:"tilesetDefUid"`
	AutoSourceLayerDefUID *int               `json:"autoSourceLayerDefUid"`
	IntGridValues         []intGridValueJSON `json:"intGridValues"`
	AutoRuleGroups        []ruleGroupJSON    `json:"autoRuleGroups"`
}

type intGridValueJSON struct {
	Value      int    `json:"value"`
	Identifier string `json:"identifier"`
}

type ruleGroupJSON struct {
	Name   string     `json:"name"`
	Active bool       `json:"active"`
	Rules  []ruleJSON `json:"rules"`
}

type ruleJSON struct {
	UID              int      `json:"uid"`
	Active           bool     `json:"active"`
	Size             int      `json:"size"`
	TileIDs          []int    `json:"tileIds"`
	Chance           float64  `json:"chance"`
	BreakOnMatch     bool     `json:"breakOnMatch"`
	Pattern          []int32  `json:"pattern"`
	FlipX            bool     `json:"flipX"`
	FlipY            bool     `json:"flipY"`
	XModulo          int      `json:"xModulo"`
	YModulo          int      `json:"yModulo"`
	XOffset          int      `json:"xOffset"`
	YOffset          int      `json:"yOffset"`
	Checker          string   `json:"checker"`
	TileMode         string   `json:"tileMode"`
	PivotX           float64  `json:"pivotX"`
	PivotY           float64  `json:"pivotY"`
	OutOfBoundsValue *int     `json:"outOfBoundsValue"`
	Alpha            *float64 `json:"alpha"`
	TileXOffset      int      `json:"tileXOffset"`
	TileYOffset      int      `json:"tileYOffset"`
	TileRandomXMin   int      `json:"tileRandomXMin"`
	TileRandomXMax   int      `json:"tileRandomXMax"`
	TileRandomYMin   int      `json:"tileRandomYMin"`
	TileRandomYMax   int      `json:"tileRandomYMax"`
}

type tilesetJSON struct {
	CWid         int    `json:"__cWid"`
	CHei         int    `json:"__cHei"`
	Identifier   string `json:"identifier"`
	UID          int    `json:"uid"`
	RelPath      string `json:"relPath"`
	PxWid        int    `json:"pxWid"`
	PxHei        int    `json:"pxHei"`
	TileGridSize int    `json:"tileGridSize"`
	Spacing      int    `json:"spacing"`
	Padding      int    `json:"padding"`
}

type levelJSON struct {
	BgColor        string              `json:"__bgColor"`
	LayerInstances []layerInstanceJSON `json:"layerInstances"`
}

type layerInstanceJSON struct {
	LayerDefUID int    `json:"layerDefUid"`
	Seed        uint32 `json:"seed"`
}

// LoadFile reads and parses an LDtk project file and pre-processes the
// resulting definition, ready for rule runs. loadDeactivated also keeps
// (and pre-processes) deactivated rule groups and rules, for tooling that
// toggles them at runtime.
func LoadFile(path string, loadDeactivated bool) (*defs.DefFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}
	return LoadBytes(data, path, loadDeactivated)
}

// LoadBytes parses LDtk project JSON. filename is recorded on the
// definition for diagnostics only.
func LoadBytes(data []byte, filename string, loadDeactivated bool) (*defs.DefFile, error) {
	var project projectJSON
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrMalformedInput, filename, err)
	}

	if project.IID == "" {
		return nil, fmt.Errorf("%w: %s is missing \"iid\"", ErrMalformedInput, filename)
	}
	if project.JSONVersion == "" {
		return nil, fmt.Errorf("%w: %s is missing \"jsonVersion\"", ErrMalformedInput, filename)
	}

	file := &defs.DefFile{
		Filename:        filename,
		ProjectUniqueID: project.IID,
		FileVersion:     project.JSONVersion,
	}

	for _, layer := range project.Defs.Layers {
		if layer.Type != layerTypeAutoLayer && layer.Type != layerTypeIntGrid {
			// not a layer type the rule engine supports
			slog.Debug("skipping unsupported layer type", "layer", layer.Identifier, "type", layer.Type)
			continue
		}
		file.AddLayer(buildLayer(layer, loadDeactivated))
	}

	for _, ts := range project.Defs.Tilesets {
		file.AddTileset(defs.TileSet{
			Name:            ts.Identifier,
			UID:             ts.UID,
			ImagePath:       ts.RelPath,
			ImageWidth:      ts.PxWid,
			ImageHeight:     ts.PxHei,
			TileSize:        ts.TileGridSize,
			TileCountWidth:  ts.CWid,
			TileCountHeight: ts.CHei,
			Margin:          ts.Padding,
			Spacing:         ts.Spacing,
		})
	}

	// Levels carry the seeds the layers were last generated with. Every
	// level's layer instances are applied in order, so a later level
	// overwrites an earlier level's seed for the same layer. The
	// background color comes from the first level that has one.
	bgColor := ""
	for _, lvl := range project.Levels {
		if bgColor == "" {
			bgColor = lvl.BgColor
		}
		if lvl.LayerInstances == nil {
			// level was probably saved in a separate file
			continue
		}
		for _, inst := range lvl.LayerInstances {
			file.SetLayerInitialSeed(inst.LayerDefUID, inst.Seed)
		}
	}
	if bgColor == "" {
		bgColor = project.DefaultLevelBgColor
	}
	file.BgColorHex = bgColor

	file.PreProcess(loadDeactivated)

	return file, nil
}

// buildLayer converts one parsed layer definition into the engine model.
func buildLayer(layer layerJSON, loadDeactivated bool) defs.Layer {
	result := defs.Layer{
		Name:          layer.Identifier,
		UID:           layer.UID,
		CellPixelSize: layer.GridSize,
	}
	if layer.TilesetDefUID != nil {
		result.TilesetDefUID = *layer.TilesetDefUID
	}
	if layer.AutoSourceLayerDefUID != nil {
		result.UseAutoSourceLayerDefUID = true
		result.AutoSourceLayerDefUID = *layer.AutoSourceLayerDefUID
	}

	for _, v := range layer.IntGridValues {
		result.IntGridValues = append(result.IntGridValues, intgrid.Value{
			ID:   uint16(v.Value),
			Name: v.Identifier,
		})
	}

	for _, group := range layer.AutoRuleGroups {
		if !group.Active && !loadDeactivated {
			continue
		}
		newGroup := defs.RuleGroup{
			Name:   group.Name,
			Active: group.Active,
		}
		for _, rule := range group.Rules {
			if !rule.Active && !loadDeactivated {
				continue
			}
			newGroup.Rules = append(newGroup.Rules, buildRule(rule))
		}
		result.RuleGroups = append(result.RuleGroups, newGroup)
	}

	return result
}

// buildRule converts one parsed rule, applying the format's defaults:
// unknown checker/tileMode strings fall back to None/Single, a null
// out-of-bounds value means abort-on-OOB, and modulo values are coerced
// to at least 1 since they are used as divisors.
func buildRule(rule ruleJSON) defs.Rule {
	result := defs.NewRule()
	result.UID = rule.UID
	result.Active = rule.Active
	result.PatternSize = rule.Size
	result.Chance = float32(rule.Chance)
	result.BreakOnMatch = rule.BreakOnMatch
	result.Pattern = rule.Pattern
	result.FlipX = rule.FlipX
	result.FlipY = rule.FlipY
	result.XModulo = max(rule.XModulo, 1)
	result.YModulo = max(rule.YModulo, 1)
	result.XModuloOffset = rule.XOffset
	result.YModuloOffset = rule.YOffset
	result.StampPivotX = float32(rule.PivotX)
	result.StampPivotY = float32(rule.PivotY)
	result.PosXOffset = int16(rule.TileXOffset)
	result.PosYOffset = int16(rule.TileYOffset)
	result.RandomPosXOffsetMin = int16(rule.TileRandomXMin)
	result.RandomPosXOffsetMax = int16(rule.TileRandomXMax)
	result.RandomPosYOffsetMin = int16(rule.TileRandomYMin)
	result.RandomPosYOffsetMax = int16(rule.TileRandomYMax)

	for _, id := range rule.TileIDs {
		result.TileIDs = append(result.TileIDs, uint16(id))
	}

	switch rule.Checker {
	case checkerModeHorizontal:
		result.Checker = defs.CheckerHorizontal
	case checkerModeVertical:
		result.Checker = defs.CheckerVertical
	default:
		result.Checker = defs.CheckerNone
	}

	switch rule.TileMode {
	case tileModeStamp:
		result.TileMode = defs.TileModeStamp
	default:
		result.TileMode = defs.TileModeSingle
	}

	if rule.OutOfBoundsValue != nil {
		result.VerticalOutOfBoundsValue = *rule.OutOfBoundsValue
		result.HorizontalOutOfBoundsValue = *rule.OutOfBoundsValue
	}

	// alpha was added in LDtk 1.3.1; older files default to opaque
	if rule.Alpha != nil {
		result.Opacity = uint8(*rule.Alpha * 100)
	}

	return result
}
