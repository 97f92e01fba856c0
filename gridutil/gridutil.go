// Package gridutil provides helpers for 1-dimensional slices used as 2d
// grids, plus the deterministic coordinate hash that all pseudo-random
// decisions in the rule engine are built on.
package gridutil

// Index converts an (x, y) coordinate to the slice index for a row-major
// grid of the given width.
func Index(x, y, width int) int {
	return y*width + x
}

// Coordinates converts a slice index back to (x, y) coordinates for a
// row-major grid of the given width.
func Coordinates(index, width int) (x, y int) {
	y = index / width
	x = index - (width * y)
	return x, y
}

// IsWithinBounds reports whether (x, y) falls inside a grid anchored at
// (0, 0) with the given width and height. Negative coordinates are always
// out of bounds.
func IsWithinBounds(x, y, width, height int) bool {
	return x >= 0 && x < width && y >= 0 && y < height
}

// IsWithinHorizontalBounds reports whether x falls inside a grid of the
// given width.
func IsWithinHorizontalBounds(x, width int) bool {
	return x >= 0 && x < width
}

// IsWithinVerticalBounds reports whether y falls inside a grid of the
// given height.
func IsWithinVerticalBounds(y, height int) bool {
	return y >= 0 && y < height
}

// hash mixes a seed with a cell coordinate into a 32-bit value.
// Based on xxhash; the multiplies are meant to overflow. The exact bit
// pattern is part of the engine's reproducibility contract, so the
// arithmetic must stay wrapping int32.
func hash(seed, x, y int) int32 {
	h := int32(seed) + int32(x)*374761393 + int32(y)*668265263 // all constants are prime
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// RandomIndex returns a deterministic value in [0, max) for the given seed
// and cell coordinate. max must be greater than zero.
func RandomIndex(seed, x, y, max int) int {
	r := int(hash(seed, x, y)) % max
	if r < 0 {
		r += max
	}
	return r
}

// RandomIndexRange returns a deterministic value in [min, max] for the
// given seed and cell coordinate.
func RandomIndexRange(seed, x, y, min, max int) int {
	return RandomIndex(seed, x, y, max-min+1) + min
}
