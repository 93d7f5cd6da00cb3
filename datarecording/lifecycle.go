package datarecording

import (
	"github.com/sarchlab/stagehand/content"
	"github.com/sarchlab/stagehand/hooking"
	"github.com/sarchlab/stagehand/timing"
)

// LifecycleEntry is a row of the lifecycle table.
type LifecycleEntry struct {
	Time   float64
	Slot   string
	Unit   string
	Event  string
	Phase  string
	Detail string
}

// A LifecycleRecorder is a hook that writes one row for every slot signal.
type LifecycleRecorder struct {
	recorder  DataRecorder
	tableName string
	clock     timing.TimeTeller
}

// NewLifecycleRecorder creates a LifecycleRecorder and the table it writes
// into. The clock may be nil, in which case every row has time 0.
func NewLifecycleRecorder(
	recorder DataRecorder,
	tableName string,
	clock timing.TimeTeller,
) *LifecycleRecorder {
	recorder.CreateTable(tableName, LifecycleEntry{})

	return &LifecycleRecorder{
		recorder:  recorder,
		tableName: tableName,
		clock:     clock,
	}
}

// Func records the signal. Signals that are not raised by a slot are ignored.
func (r *LifecycleRecorder) Func(ctx hooking.HookCtx) {
	slot, ok := ctx.Domain.(*content.Slot)
	if !ok {
		return
	}

	entry := LifecycleEntry{
		Slot:  slot.ID(),
		Event: ctx.Pos.Name,
	}

	if r.clock != nil {
		entry.Time = float64(r.clock.CurrentTime())
	}

	if unit, ok := ctx.Item.(content.Unit); ok && unit != nil {
		entry.Unit = unit.ID()
	}

	switch detail := ctx.Detail.(type) {
	case *content.PhaseError:
		entry.Phase = detail.Phase.String()
		entry.Detail = detail.Err.Error()
	case content.StallReport:
		entry.Phase = detail.Phase.String()
	case error:
		entry.Detail = detail.Error()
	}

	r.recorder.InsertData(r.tableName, entry)
}
