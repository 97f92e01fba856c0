package defs

import "errors"

// ErrInvalidConfig marks a definition that fails validation: a bad
// modulo, a malformed pattern, an un-pre-processed stamp. RunRules
// returns it (wrapped with detail) before placing any tile.
var ErrInvalidConfig = errors.New("invalid config")
