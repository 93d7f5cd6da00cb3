package timing

// A DelayedCallback is a one-shot countdown. It accumulates the elapsed time of
// the ticks it receives and invokes its callback exactly once when the
// accumulated time reaches the wait time.
type DelayedCallback struct {
	wait      VTimeInSec
	waited    VTimeInSec
	callback  func()
	permitted SourceSet

	completed bool
	disposed  bool
}

// NewDelayedCallback creates an armed DelayedCallback. The callback will only
// be advanced by the permitted sources.
func NewDelayedCallback(
	wait VTimeInSec,
	callback func(),
	permitted SourceSet,
) *DelayedCallback {
	if callback == nil {
		panic("timing: delayed callback requires a callback")
	}

	if permitted.IsEmpty() {
		panic("timing: delayed callback requires at least one permitted source")
	}

	return &DelayedCallback{
		wait:      wait,
		callback:  callback,
		permitted: permitted,
	}
}

// PermittedSources returns the sources that can advance the callback.
func (c *DelayedCallback) PermittedSources() SourceSet {
	return c.permitted
}

// Wait returns the configured wait time.
func (c *DelayedCallback) Wait() VTimeInSec {
	return c.wait
}

// Elapsed returns the time accumulated so far.
func (c *DelayedCallback) Elapsed() VTimeInSec {
	return c.waited
}

// Completed returns true if the callback has been invoked.
func (c *DelayedCallback) Completed() bool {
	return c.completed
}

// Disposed returns true if the callback was cancelled before completing.
func (c *DelayedCallback) Disposed() bool {
	return c.disposed
}

// Finished returns true if the callback either fired or was disposed.
func (c *DelayedCallback) Finished() bool {
	return c.completed || c.disposed
}

// OnTick accumulates elapsed and fires the callback once the wait time is
// reached.
func (c *DelayedCallback) OnTick(elapsed VTimeInSec, source Source) error {
	if err := checkSource(source, c.permitted); err != nil {
		return err
	}

	if elapsed < 0 {
		return ErrNegativeElapsed
	}

	if c.Finished() {
		return nil
	}

	c.waited += elapsed
	if c.waited < c.wait {
		return nil
	}

	c.completed = true
	callback := c.callback
	c.callback = nil
	callback()

	return nil
}

// Dispose cancels the callback. A disposed callback is never invoked. Calling
// Dispose after completion or more than once has no effect.
func (c *DelayedCallback) Dispose() {
	if c.Finished() {
		return
	}

	c.disposed = true
	c.callback = nil
}
