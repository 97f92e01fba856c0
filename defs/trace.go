package defs

import (
	"log/slog"

	"chosenoffset.com/autotile/tile"
)

// Tracer observes the rule matching process. Implementations must be
// cheap; the runner calls RuleMatched once per matched cell. A nil Tracer
// on the DefFile disables tracing entirely.
type Tracer interface {
	// RuleMatched is called after a rule matched a cell, before its tiles
	// are placed. flags carries the FlippedX/FlippedY bits of the variant
	// that matched.
	RuleMatched(layerUID, ruleUID, x, y int, flags tile.Flags)

	// StampOffsetsComputed is called once per stamp rule during
	// pre-processing with the computed offset cache.
	StampOffsetsComputed(ruleUID int, offsets []StampOffset)
}

// slogTracer logs every observation through a slog.Logger.
type slogTracer struct {
	log *slog.Logger
}

// NewSlogTracer returns a Tracer that writes debug records to the given
// logger.
func NewSlogTracer(log *slog.Logger) Tracer {
	return &slogTracer{log: log}
}

func (t *slogTracer) RuleMatched(layerUID, ruleUID, x, y int, flags tile.Flags) {
	t.log.Debug("rule matched",
		"layer", layerUID,
		"rule", ruleUID,
		"x", x,
		"y", y,
		"flippedX", flags.IsFlippedX(),
		"flippedY", flags.IsFlippedY(),
	)
}

func (t *slogTracer) StampOffsetsComputed(ruleUID int, offsets []StampOffset) {
	t.log.Debug("stamp offsets computed", "rule", ruleUID, "count", len(offsets))
}
