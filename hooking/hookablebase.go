package hooking

type hookEntry struct {
	hook    Hook
	removed bool
}

type subscription struct {
	base  *HookableBase
	entry *hookEntry
}

func (s *subscription) Unsubscribe() {
	s.base.remove(s.entry)
}

func (s *subscription) Active() bool {
	return !s.entry.removed
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
//
// Hooks are invoked in the order they are accepted. While InvokeHook is
// running, a hook that gets unsubscribed and has not been reached yet is
// skipped, and a hook that gets accepted is only invoked starting from the
// next InvokeHook call.
type HookableBase struct {
	entries     []*hookEntry
	dispatching int
	dirty       bool
}

// NewHookableBase creates a HookableBase object.
func NewHookableBase() *HookableBase {
	h := new(HookableBase)
	h.entries = make([]*hookEntry, 0)

	return h
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	n := 0

	for _, e := range h.entries {
		if !e.removed {
			n++
		}
	}

	return n
}

// Hooks returns all the hooks registered.
func (h *HookableBase) Hooks() []Hook {
	hooks := make([]Hook, 0, len(h.entries))

	for _, e := range h.entries {
		if !e.removed {
			hooks = append(hooks, e.hook)
		}
	}

	return hooks
}

// AcceptHook register a hook.
func (h *HookableBase) AcceptHook(hook Hook) Subscription {
	h.mustNotHaveDuplicatedHook(hook)

	e := &hookEntry{hook: hook}
	h.entries = append(h.entries, e)

	return &subscription{base: h, entry: e}
}

func (h *HookableBase) mustNotHaveDuplicatedHook(hook Hook) {
	for _, e := range h.entries {
		if !e.removed && e.hook == hook {
			panic("duplicated hook")
		}
	}
}

// RemoveHook unsubscribes every registration of the given hook.
func (h *HookableBase) RemoveHook(hook Hook) {
	for _, e := range h.entries {
		if e.hook == hook {
			h.remove(e)
		}
	}
}

func (h *HookableBase) remove(e *hookEntry) {
	if e.removed {
		return
	}

	e.removed = true
	h.dirty = true

	if h.dispatching == 0 {
		h.compact()
	}
}

func (h *HookableBase) compact() {
	if !h.dirty {
		return
	}

	kept := h.entries[:0]
	for _, e := range h.entries {
		if !e.removed {
			kept = append(kept, e)
		}
	}

	for i := len(kept); i < len(h.entries); i++ {
		h.entries[i] = nil
	}

	h.entries = kept
	h.dirty = false
}

// InvokeHook triggers the register Hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	h.dispatching++
	defer h.endDispatch()

	n := len(h.entries)
	for i := 0; i < n; i++ {
		e := h.entries[i]
		if e.removed {
			continue
		}

		e.hook.Func(ctx)
	}
}

func (h *HookableBase) endDispatch() {
	h.dispatching--
	if h.dispatching == 0 {
		h.compact()
	}
}

var _ Hookable = (*HookableBase)(nil)
