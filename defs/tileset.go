package defs

import "chosenoffset.com/autotile/gridutil"

// TileSet is the metadata of a tile image atlas: images laid out in a
// grid. The actual pixels are the renderer's concern; the engine only
// needs the grid layout to map tile ids to positions.
type TileSet struct {
	// Name is the user-defined identifier of the tileset.
	Name string

	// UID uniquely identifies this tileset.
	UID int

	// ImagePath is the path of the atlas image, relative to the project.
	ImagePath string

	// ImageWidth and ImageHeight are the atlas dimensions in pixels.
	ImageWidth  int
	ImageHeight int

	// TileSize is how big one tile is in pixels (tiles are squares).
	TileSize int

	// TileCountWidth and TileCountHeight are how many tiles the atlas
	// holds horizontally and vertically.
	TileCountWidth  int
	TileCountHeight int

	// Margin is where tiles start relative to the image edges; some
	// artists put a border around their sheet.
	Margin int

	// Spacing is the pixel gap between tiles.
	Spacing int
}

// Coordinates maps a tile id to its (x, y) position in the atlas grid.
// Tile id 0 is at (0, 0), id 1 at (1, 0), and so on left-to-right then
// top-to-bottom.
func (ts *TileSet) Coordinates(id int) (x, y int) {
	return gridutil.Coordinates(id, ts.TileCountWidth)
}
