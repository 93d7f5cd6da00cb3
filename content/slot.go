package content

import (
	"reflect"

	"github.com/sarchlab/stagehand/hooking"
	"github.com/sarchlab/stagehand/timing"
)

// StallReport is the detail of HookPosPhaseStalled.
type StallReport struct {
	Phase   Phase
	Elapsed timing.VTimeInSec
}

// A Slot is a named display location that shows at most one unit at a time.
//
// Show and Clear never abort a phase in flight. The slot waits for the active
// unit to signal the end of its current phase, plays it out, disposes it, and
// only then starts loading the pending unit.
type Slot struct {
	*hooking.HookableBase

	id      string
	manager *Manager
	root    *Node

	active        Unit
	activeSub     hooking.Subscription
	pending       Unit
	phase         Phase
	exitRequested bool

	updateHandle  *timing.UpdateHandle
	registration  *timing.Registration
	phaseElapsed  timing.VTimeInSec
	stallReported bool

	disposed bool
}

// ID returns the identifier of the slot.
func (s *Slot) ID() string {
	return s.id
}

// Manager returns the manager that created the slot.
func (s *Slot) Manager() *Manager {
	return s.manager
}

// Root returns the node that content objects are attached to.
func (s *Slot) Root() *Node {
	return s.root
}

// Active returns the unit currently owned by the slot, nil if there is none.
func (s *Slot) Active() Unit {
	return s.active
}

// Pending returns the unit waiting to become active, nil if there is none.
func (s *Slot) Pending() Unit {
	return s.pending
}

// Phase returns what the slot is doing with its active unit.
func (s *Slot) Phase() Phase {
	return s.phase
}

// PhaseElapsed returns how long the current phase has been running. It only
// advances if the manager has a driver.
func (s *Slot) PhaseElapsed() timing.VTimeInSec {
	return s.phaseElapsed
}

// IsDisposed tells if the slot has been disposed.
func (s *Slot) IsDisposed() bool {
	return s.disposed
}

// Show queues the unit to be shown. An untyped nil unit means showing
// nothing. A nil pointer of a concrete unit type is rejected with ErrNilUnit.
//
// A unit that is already pending replaces nothing. Any other pending unit is
// superseded and disposed. If the slot is idle, the unit starts loading
// immediately. If a unit is shown, it starts playing out. If a unit is loading
// or playing in, it plays out as soon as it is shown.
func (s *Slot) Show(u Unit) error {
	if s.disposed {
		return ErrSlotDisposed
	}

	if u != nil {
		if isNilUnit(u) {
			return ErrNilUnit
		}

		if u == s.pending {
			return nil
		}

		if err := s.validate(u); err != nil {
			return err
		}
	}

	s.replacePending(u)

	switch s.phase {
	case PhaseIdle:
		s.promotePending()
	case PhaseShown:
		s.beginExit()
	case PhaseLoad, PhasePlayIn:
		s.exitRequested = true
	case PhasePlayOut:
	}

	return nil
}

// Clear removes the active unit and drops the pending one.
func (s *Slot) Clear() error {
	return s.Show(nil)
}

func isNilUnit(u Unit) bool {
	v := reflect.ValueOf(u)

	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

func (s *Slot) validate(u Unit) error {
	if u == s.active {
		return ErrUnitActive
	}

	if u.Owner() != nil || u.Slot() != nil {
		return ErrUnitOwned
	}

	if u.State() != StateCreated {
		return &InvalidSequenceError{Unit: u.ID(), Op: "show", State: u.State()}
	}

	return nil
}

func (s *Slot) replacePending(u Unit) {
	old := s.pending
	s.pending = u

	if u != nil {
		u.Claim(s)
	}

	if old == nil {
		return
	}

	old.Claim(nil)
	s.invoke(HookPosPendingSuperseded, old, nil)
	old.Dispose()
}

func (s *Slot) promotePending() {
	u := s.pending
	if u == nil {
		s.setPhase(PhaseIdle)
		return
	}

	s.pending = nil
	s.active = u
	s.exitRequested = false

	u.BindSlot(s)
	s.activeSub = u.AcceptHook(&unitListener{slot: s, unit: u})

	s.setPhase(PhaseLoad)
	s.invoke(HookPosLoadStart, u, nil)

	if !s.isCurrent(u, PhaseLoad) {
		return
	}

	if err := u.Load(); err != nil {
		s.fail(u, err)
	}
}

func (s *Slot) handleLoaded(u Unit) {
	if !s.isCurrent(u, PhaseLoad) {
		return
	}

	s.invoke(HookPosLoadComplete, u, nil)

	if !s.isCurrent(u, PhaseLoad) {
		return
	}

	u.InitAfterLoad()

	obj := u.ContentObject()
	if obj == nil {
		s.fail(u, ErrNoContentObject)
		return
	}

	obj.Attach(s.root, Identity())

	s.setPhase(PhasePlayIn)
	s.invoke(HookPosPlayInStart, u, nil)

	if !s.isCurrent(u, PhasePlayIn) {
		return
	}

	if err := u.EnterAfterLoad(); err != nil {
		s.fail(u, err)
	}
}

func (s *Slot) handleEntered(u Unit) {
	if !s.isCurrent(u, PhasePlayIn) {
		return
	}

	s.invoke(HookPosPlayInComplete, u, nil)

	if !s.isCurrent(u, PhasePlayIn) {
		return
	}

	u.InitAfterPlayIn()
	s.setPhase(PhaseShown)

	if s.exitRequested {
		s.exitRequested = false
		s.beginExit()
	}
}

func (s *Slot) beginExit() {
	u := s.active

	s.setPhase(PhasePlayOut)
	s.invoke(HookPosPlayOutStart, u, nil)

	if !s.isCurrent(u, PhasePlayOut) {
		return
	}

	if err := u.ExitForRemoval(); err != nil {
		s.fail(u, err)
	}
}

func (s *Slot) handleExited(u Unit) {
	if !s.isCurrent(u, PhasePlayOut) {
		return
	}

	s.invoke(HookPosPlayOutComplete, u, nil)

	if !s.isCurrent(u, PhasePlayOut) {
		return
	}

	s.release(u)
	s.promotePending()
}

func (s *Slot) handleClearRequested(u Unit) {
	if s.disposed || s.active != u {
		return
	}

	_ = s.Clear()
}

func (s *Slot) fail(u Unit, cause error) {
	if s.disposed || s.active != u {
		return
	}

	s.invoke(HookPosPhaseFailed, u, &PhaseError{
		Unit:  u.ID(),
		Phase: s.phase,
		Err:   cause,
	})

	if s.disposed || s.active != u {
		return
	}

	s.release(u)
	s.promotePending()
}

func (s *Slot) release(u Unit) {
	s.activeSub.Unsubscribe()
	s.activeSub = nil

	u.Claim(nil)
	u.Dispose()

	s.active = nil
	s.setPhase(PhaseIdle)
}

func (s *Slot) isCurrent(u Unit, phase Phase) bool {
	return !s.disposed && s.active == u && s.phase == phase
}

func (s *Slot) setPhase(p Phase) {
	s.phase = p
	s.phaseElapsed = 0
	s.stallReported = false
}

func (s *Slot) invoke(pos *hooking.HookPos, u Unit, detail any) {
	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    pos,
		Item:   u,
		Detail: detail,
	})
}

func (s *Slot) onUpdate(elapsed timing.VTimeInSec, _ timing.Source) {
	if s.disposed || !s.phase.InFlight() {
		return
	}

	s.phaseElapsed += elapsed

	threshold := s.manager.stallThreshold
	if threshold <= 0 || s.stallReported || s.phaseElapsed < threshold {
		return
	}

	s.stallReported = true
	s.invoke(HookPosPhaseStalled, s.active, StallReport{
		Phase:   s.phase,
		Elapsed: s.phaseElapsed,
	})
}

// Dispose releases the slot. The active and pending units are disposed
// without playing out, the update handle is released, and the root node is
// destroyed. HookPosSlotDisposed is triggered last. Calling Dispose more than
// once has no effect.
func (s *Slot) Dispose() {
	if s.disposed {
		return
	}

	s.disposed = true

	if s.registration != nil {
		s.registration.Cancel()
		s.updateHandle.Dispose()
		s.registration = nil
	}

	if s.activeSub != nil {
		s.activeSub.Unsubscribe()
		s.activeSub = nil
	}

	for _, u := range []Unit{s.active, s.pending} {
		if u != nil {
			u.Claim(nil)
			u.Dispose()
		}
	}

	s.active = nil
	s.pending = nil
	s.exitRequested = false
	s.setPhase(PhaseIdle)

	s.root.Destroy()
	s.invoke(HookPosSlotDisposed, nil, nil)
	s.manager.unregister(s)
}

// SlotSnapshot is a copy of the observable state of a slot.
type SlotSnapshot struct {
	ID            string
	Path          string
	Phase         string
	PhaseElapsed  float64
	ActiveID      string
	ActiveState   string
	PendingID     string
	ExitRequested bool
	Disposed      bool
}

// Snapshot returns a copy of the observable state of the slot.
func (s *Slot) Snapshot() SlotSnapshot {
	snap := SlotSnapshot{
		ID:            s.id,
		Path:          s.root.Path(),
		Phase:         s.phase.String(),
		PhaseElapsed:  float64(s.phaseElapsed),
		ExitRequested: s.exitRequested,
		Disposed:      s.disposed,
	}

	if s.active != nil {
		snap.ActiveID = s.active.ID()
		snap.ActiveState = s.active.State().String()
	}

	if s.pending != nil {
		snap.PendingID = s.pending.ID()
	}

	return snap
}

type unitListener struct {
	slot *Slot
	unit Unit
}

func (l *unitListener) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case HookPosUnitLoaded:
		l.slot.handleLoaded(l.unit)
	case HookPosUnitEntered:
		l.slot.handleEntered(l.unit)
	case HookPosUnitExited:
		l.slot.handleExited(l.unit)
	case HookPosUnitClearRequested:
		l.slot.handleClearRequested(l.unit)
	case HookPosUnitFailed:
		l.slot.handleFailed(l.unit, ctx.Detail)
	}
}

func (s *Slot) handleFailed(u Unit, detail any) {
	if !s.isCurrent(u, s.phase) || !s.phase.InFlight() {
		return
	}

	cause, ok := detail.(error)
	if !ok {
		cause = &InvalidSequenceError{Unit: u.ID(), Op: "fail", State: u.State()}
	}

	if perr, ok := cause.(*PhaseError); ok {
		cause = perr.Err
	}

	s.fail(u, cause)
}
