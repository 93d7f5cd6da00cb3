package content

import (
	"github.com/sarchlab/stagehand/hooking"
)

// Signals raised by a unit. A slot listens to them on the unit it is driving.
var (
	// HookPosUnitLoaded is triggered when a unit finishes loading.
	HookPosUnitLoaded = &hooking.HookPos{Name: "UnitLoaded"}

	// HookPosUnitEntered is triggered when a unit finishes playing in.
	HookPosUnitEntered = &hooking.HookPos{Name: "UnitEntered"}

	// HookPosUnitExited is triggered when a unit finishes playing out.
	HookPosUnitExited = &hooking.HookPos{Name: "UnitExited"}

	// HookPosUnitClearRequested is triggered when a unit asks to be removed
	// from its slot.
	HookPosUnitClearRequested = &hooking.HookPos{Name: "UnitClearRequested"}

	// HookPosUnitFailed is triggered when a unit cannot finish its current
	// phase. The detail is a *PhaseError.
	HookPosUnitFailed = &hooking.HookPos{Name: "UnitFailed"}
)

// A Unit is one displayable item managed by a slot.
//
// The slot is the only caller of Load, EnterAfterLoad, ExitForRemoval, and
// Dispose. Each of the first three starts an asynchronous phase that ends with
// the unit invoking the matching signal hook, possibly on a later tick.
type Unit interface {
	hooking.Hookable

	// ID returns the identifier of the unit.
	ID() string

	// State returns the lifecycle state of the unit.
	State() State

	// Slot returns the slot the unit is active in, nil before that.
	Slot() *Slot

	// BindSlot records the slot that made the unit active.
	BindSlot(slot *Slot)

	// Owner returns the slot holding the unit as active or pending, nil if
	// no slot holds it.
	Owner() *Slot

	// Claim records the slot holding the unit. A nil slot releases the claim.
	Claim(slot *Slot)

	// Load starts loading the unit.
	Load() error

	// EnterAfterLoad starts playing the loaded unit in.
	EnterAfterLoad() error

	// ExitForRemoval starts playing the shown unit out.
	ExitForRemoval() error

	// ContentObject returns the presentable object, nil before it is loaded.
	ContentObject() *Node

	// InitAfterLoad runs after the slot has published the load completion.
	InitAfterLoad()

	// InitAfterPlayIn runs after the slot has published the play-in
	// completion.
	InitAfterPlayIn()

	// Dispose releases everything the unit owns.
	Dispose()
}
