package timing

// An UpdateHandle invokes a function on every tick until it is disposed.
type UpdateHandle struct {
	fn        func(elapsed VTimeInSec, source Source)
	permitted SourceSet
	disposed  bool
}

// NewUpdateHandle creates an UpdateHandle that is advanced by the permitted
// sources.
func NewUpdateHandle(
	fn func(elapsed VTimeInSec, source Source),
	permitted SourceSet,
) *UpdateHandle {
	if fn == nil {
		panic("timing: update handle requires a function")
	}

	if permitted.IsEmpty() {
		panic("timing: update handle requires at least one permitted source")
	}

	return &UpdateHandle{fn: fn, permitted: permitted}
}

// PermittedSources returns the sources that can advance the handle.
func (h *UpdateHandle) PermittedSources() SourceSet {
	return h.permitted
}

// OnTick invokes the function of the handle.
func (h *UpdateHandle) OnTick(elapsed VTimeInSec, source Source) error {
	if err := checkSource(source, h.permitted); err != nil {
		return err
	}

	if elapsed < 0 {
		return ErrNegativeElapsed
	}

	if h.disposed {
		return nil
	}

	h.fn(elapsed, source)

	return nil
}

// Finished returns true after the handle is disposed.
func (h *UpdateHandle) Finished() bool {
	return h.disposed
}

// Disposed returns true after the handle is disposed.
func (h *UpdateHandle) Disposed() bool {
	return h.disposed
}

// Dispose stops the handle. It is safe to call Dispose more than once.
func (h *UpdateHandle) Dispose() {
	h.disposed = true
	h.fn = nil
}
