package content

import (
	"fmt"

	"github.com/sarchlab/stagehand/hooking"
	"github.com/sarchlab/stagehand/timing"
)

// A Manager owns a set of slots. Every signal published by one of its slots is
// republished to the hooks of the manager, with the slot as the domain.
type Manager struct {
	*hooking.HookableBase

	root           *Node
	driver         *timing.Driver
	stallThreshold timing.VTimeInSec

	slots     map[string]*Slot
	slotOrder []*Slot
	slotSubs  map[*Slot]hooking.Subscription

	disposed bool
}

// Root returns the node that slot roots are attached to by default.
func (m *Manager) Root() *Node {
	return m.root
}

// Driver returns the driver used by the slots of the manager. It may be nil.
func (m *Manager) Driver() *timing.Driver {
	return m.driver
}

// StallThreshold returns the time after which an in-flight phase is reported
// as stalled. Zero disables the report.
func (m *Manager) StallThreshold() timing.VTimeInSec {
	return m.stallThreshold
}

// Slot returns the slot with the given ID.
func (m *Manager) Slot(id string) (*Slot, bool) {
	s, ok := m.slots[id]
	return s, ok
}

// Slots returns the live slots in creation order.
func (m *Manager) Slots() []*Slot {
	slots := make([]*Slot, len(m.slotOrder))
	copy(slots, m.slotOrder)

	return slots
}

// CreateSlot creates a slot in the manager. See CreateSlot.
func (m *Manager) CreateSlot(
	id string,
	position Vec3,
	parent *Node,
) (*Slot, error) {
	return CreateSlot(m, id, position, parent)
}

// CreateSlot creates a slot. The root node of the slot is placed at position
// under parent, or under the root of the manager if parent is nil.
func CreateSlot(
	m *Manager,
	id string,
	position Vec3,
	parent *Node,
) (*Slot, error) {
	if m.disposed {
		return nil, ErrManagerDisposed
	}

	if id == "" {
		return nil, ErrEmptySlotID
	}

	if _, exists := m.slots[id]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSlot, id)
	}

	s := &Slot{
		HookableBase: hooking.NewHookableBase(),
		id:           id,
		manager:      m,
		root:         NewNode("[slot " + id + "]"),
	}

	if parent == nil {
		parent = m.root
	}

	s.root.Attach(parent, At(position))

	if m.driver != nil {
		s.updateHandle = timing.NewUpdateHandle(
			s.onUpdate, timing.Sources(timing.SourceUpdate))

		reg, err := m.driver.Register(timing.SourceUpdate, s.updateHandle)
		if err != nil {
			s.root.Destroy()
			return nil, fmt.Errorf("content: create slot %q: %w", id, err)
		}

		s.registration = reg
	}

	m.register(s)

	return s, nil
}

func (m *Manager) register(s *Slot) {
	m.slots[s.id] = s
	m.slotOrder = append(m.slotOrder, s)
	m.slotSubs[s] = s.AcceptHook(hooking.HookFunc(m.InvokeHook))
}

func (m *Manager) unregister(s *Slot) {
	if m.slots[s.id] != s {
		return
	}

	delete(m.slots, s.id)

	if sub, ok := m.slotSubs[s]; ok {
		sub.Unsubscribe()
		delete(m.slotSubs, s)
	}

	for i, o := range m.slotOrder {
		if o == s {
			m.slotOrder = append(m.slotOrder[:i], m.slotOrder[i+1:]...)
			break
		}
	}
}

// Owner returns the slot of this manager that holds the unit, either as
// active or as pending.
func (m *Manager) Owner(u Unit) (*Slot, bool) {
	s := u.Owner()
	if s == nil || s.manager != m {
		return nil, false
	}

	return s, true
}

// IsDisposed tells if the manager has been disposed.
func (m *Manager) IsDisposed() bool {
	return m.disposed
}

// Dispose disposes every slot and destroys the root node. Calling Dispose more
// than once has no effect.
func (m *Manager) Dispose() {
	if m.disposed {
		return
	}

	m.disposed = true

	for _, s := range m.Slots() {
		s.Dispose()
	}

	m.root.Destroy()
}
