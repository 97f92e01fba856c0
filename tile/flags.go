package tile

// Flags is a bitfield describing how a placed tile should be drawn and
// whether it finalizes its cell. The bit assignments are stable for
// wire/file compatibility with adjacent tools.
type Flags uint8

const (
	// NoFlags means the tile is drawn normally.
	NoFlags Flags = 0

	// OffsetLeft means the tile is drawn half a cell to the left.
	OffsetLeft Flags = 1 << 0

	// OffsetUp means the tile is drawn half a cell upwards.
	OffsetUp Flags = 1 << 1

	// OffsetRight means the tile is drawn half a cell to the right.
	OffsetRight Flags = 1 << 2

	// OffsetDown means the tile is drawn half a cell downwards.
	OffsetDown Flags = 1 << 3

	// FlippedX means the tile is drawn mirrored horizontally.
	FlippedX Flags = 1 << 4

	// FlippedY means the tile is drawn mirrored vertically.
	FlippedY Flags = 1 << 5

	// Final means the tile prevents later rules from placing into its cell.
	Final Flags = 1 << 6
)

// HasOffsetLeft reports whether the half-cell left offset bit is set.
func (f Flags) HasOffsetLeft() bool { return f&OffsetLeft == OffsetLeft }

// HasOffsetUp reports whether the half-cell up offset bit is set.
func (f Flags) HasOffsetUp() bool { return f&OffsetUp == OffsetUp }

// HasOffsetRight reports whether the half-cell right offset bit is set.
func (f Flags) HasOffsetRight() bool { return f&OffsetRight == OffsetRight }

// HasOffsetDown reports whether the half-cell down offset bit is set.
func (f Flags) HasOffsetDown() bool { return f&OffsetDown == OffsetDown }

// IsFlippedX reports whether the tile is mirrored horizontally.
func (f Flags) IsFlippedX() bool { return f&FlippedX == FlippedX }

// IsFlippedY reports whether the tile is mirrored vertically.
func (f Flags) IsFlippedY() bool { return f&FlippedY == FlippedY }

// IsFinal reports whether the tile finalizes its cell.
func (f Flags) IsFinal() bool { return f&Final == Final }
