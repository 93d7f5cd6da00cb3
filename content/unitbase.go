package content

import (
	"github.com/sarchlab/stagehand/hooking"
	"github.com/sarchlab/stagehand/idgen"
)

// UnitBase implements the state bookkeeping that every unit shares. Concrete
// units embed it and implement Load, EnterAfterLoad, and ExitForRemoval on top
// of the Begin and Complete methods.
type UnitBase struct {
	*hooking.HookableBase

	id           string
	state        State
	slot         *Slot
	owner        *Slot
	object       *Node
	exitFinished bool
	disposers    []func()
}

// NewUnitBase creates a UnitBase in the Created state. An empty id is replaced
// by a generated one.
func NewUnitBase(id string) *UnitBase {
	if id == "" {
		id = idgen.Get().Generate()
	}

	return &UnitBase{
		HookableBase: hooking.NewHookableBase(),
		id:           id,
		state:        StateCreated,
	}
}

// ID returns the identifier of the unit.
func (u *UnitBase) ID() string {
	return u.id
}

// State returns the lifecycle state of the unit.
func (u *UnitBase) State() State {
	return u.state
}

// Slot returns the slot the unit is active in.
func (u *UnitBase) Slot() *Slot {
	return u.slot
}

// BindSlot records the slot that made the unit active. A unit can only be
// bound once.
func (u *UnitBase) BindSlot(slot *Slot) {
	if u.slot != nil && u.slot != slot {
		panic("content: unit " + u.id + " is already bound to a slot")
	}

	u.slot = slot
}

// Owner returns the slot holding the unit as active or pending.
func (u *UnitBase) Owner() *Slot {
	return u.owner
}

// Claim records the slot holding the unit. A unit held by one slot cannot be
// claimed by another until the claim is released with a nil slot.
func (u *UnitBase) Claim(slot *Slot) {
	if slot != nil && u.owner != nil && u.owner != slot {
		panic("content: unit " + u.id + " is already held by a slot")
	}

	u.owner = slot
}

// ContentObject returns the presentable object of the unit.
func (u *UnitBase) ContentObject() *Node {
	return u.object
}

// SetContentObject sets the presentable object. The unit destroys the object
// when it is disposed.
func (u *UnitBase) SetContentObject(n *Node) {
	u.object = n
}

// InitAfterLoad does nothing by default.
func (u *UnitBase) InitAfterLoad() {}

// InitAfterPlayIn does nothing by default.
func (u *UnitBase) InitAfterPlayIn() {}

// OnDispose registers a function that runs when the unit is disposed.
// Functions run in reverse registration order.
func (u *UnitBase) OnDispose(f func()) {
	u.disposers = append(u.disposers, f)
}

// Dispose moves the unit to the Disposed state, runs the registered dispose
// functions, and destroys the content object. Only the first call has an
// effect.
func (u *UnitBase) Dispose() {
	if u.state == StateDisposed {
		return
	}

	u.state = StateDisposed

	disposers := u.disposers
	u.disposers = nil

	for i := len(disposers) - 1; i >= 0; i-- {
		disposers[i]()
	}

	if u.object != nil {
		u.object.Destroy()
	}
}

func (u *UnitBase) transition(op string, from, to State) error {
	if u.state != from {
		return &InvalidSequenceError{Unit: u.id, Op: op, State: u.state}
	}

	u.state = to

	return nil
}

func (u *UnitBase) signal(pos *hooking.HookPos, detail any) {
	u.InvokeHook(hooking.HookCtx{
		Domain: u,
		Pos:    pos,
		Item:   u,
		Detail: detail,
	})
}

// BeginLoad moves the unit from Created to Loading.
func (u *UnitBase) BeginLoad() error {
	return u.transition("load", StateCreated, StateLoading)
}

// CompleteLoad moves the unit from Loading to Loaded and signals it.
func (u *UnitBase) CompleteLoad() error {
	if err := u.transition("complete loading", StateLoading, StateLoaded); err != nil {
		return err
	}

	u.signal(HookPosUnitLoaded, nil)

	return nil
}

// BeginEnter moves the unit from Loaded to Entering.
func (u *UnitBase) BeginEnter() error {
	return u.transition("enter", StateLoaded, StateEntering)
}

// CompleteEnter moves the unit from Entering to Shown and signals it.
func (u *UnitBase) CompleteEnter() error {
	if err := u.transition("complete entering", StateEntering, StateShown); err != nil {
		return err
	}

	u.signal(HookPosUnitEntered, nil)

	return nil
}

// BeginExit moves the unit from Shown to Exiting.
func (u *UnitBase) BeginExit() error {
	return u.transition("exit", StateShown, StateExiting)
}

// CompleteExit signals that the unit finished playing out. The unit stays in
// Exiting until it is disposed.
func (u *UnitBase) CompleteExit() error {
	if u.state != StateExiting || u.exitFinished {
		return &InvalidSequenceError{Unit: u.id, Op: "complete exiting", State: u.state}
	}

	u.exitFinished = true
	u.signal(HookPosUnitExited, nil)

	return nil
}

// RequestClear asks the slot to remove the unit.
func (u *UnitBase) RequestClear() error {
	switch u.state {
	case StateCreated, StateDisposed:
		return &InvalidSequenceError{Unit: u.id, Op: "request clear", State: u.state}
	}

	u.signal(HookPosUnitClearRequested, nil)

	return nil
}

// Fail reports that the current phase cannot be completed.
func (u *UnitBase) Fail(cause error) error {
	var phase Phase

	switch u.state {
	case StateLoading:
		phase = PhaseLoad
	case StateEntering:
		phase = PhasePlayIn
	case StateExiting:
		if u.exitFinished {
			return &InvalidSequenceError{Unit: u.id, Op: "fail", State: u.state}
		}

		phase = PhasePlayOut
	default:
		return &InvalidSequenceError{Unit: u.id, Op: "fail", State: u.state}
	}

	u.signal(HookPosUnitFailed, &PhaseError{Unit: u.id, Phase: phase, Err: cause})

	return nil
}
