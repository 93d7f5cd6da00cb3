// Package logging writes content lifecycle signals to a zerolog logger.
package logging

import (
	"github.com/rs/zerolog"

	"github.com/sarchlab/stagehand/content"
	"github.com/sarchlab/stagehand/hooking"
	"github.com/sarchlab/stagehand/timing"
)

// A LogHook writes one structured line for every signal it receives. Attach
// it to a slot, or to a manager to log every slot.
type LogHook struct {
	logger zerolog.Logger
	clock  timing.TimeTeller
}

// NewLogHook creates a LogHook. The clock is optional; if set, every line
// carries the current time of the clock.
func NewLogHook(logger zerolog.Logger, clock timing.TimeTeller) *LogHook {
	return &LogHook{logger: logger, clock: clock}
}

// Func writes a line for the signal.
func (h *LogHook) Func(ctx hooking.HookCtx) {
	var evt *zerolog.Event

	switch ctx.Pos {
	case content.HookPosPhaseFailed:
		evt = h.logger.Error()
	case content.HookPosPhaseStalled, content.HookPosPendingSuperseded:
		evt = h.logger.Warn()
	default:
		evt = h.logger.Debug()
	}

	if !evt.Enabled() {
		return
	}

	evt = evt.Str("event", ctx.Pos.Name)

	if slot, ok := ctx.Domain.(*content.Slot); ok {
		evt = evt.Str("slot", slot.ID())
	}

	if unit, ok := ctx.Item.(content.Unit); ok && unit != nil {
		evt = evt.Str("unit", unit.ID())
	}

	if h.clock != nil {
		evt = evt.Float64("time", float64(h.clock.CurrentTime()))
	}

	switch detail := ctx.Detail.(type) {
	case error:
		evt = evt.Err(detail)
	case content.StallReport:
		evt = evt.
			Str("phase", detail.Phase.String()).
			Float64("elapsed", float64(detail.Elapsed))
	}

	evt.Msg("content lifecycle")
}
