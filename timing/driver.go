package timing

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sarchlab/stagehand/hooking"
)

// HookPosBeforeTick is a hook position that triggers before a source ticks.
var HookPosBeforeTick = &hooking.HookPos{Name: "BeforeTick"}

// HookPosAfterTick is a hook position that triggers after a source ticks.
var HookPosAfterTick = &hooking.HookPos{Name: "AfterTick"}

// TickInfo is the item carried by the tick hooks.
type TickInfo struct {
	Source  Source
	Elapsed VTimeInSec
	Frame   uint64
	Now     VTimeInSec
}

// A Registration binds a tickable to the source that advances it.
type Registration struct {
	source    Source
	tickable  Tickable
	cancelled bool
}

// Source returns the source the tickable is registered with.
func (r *Registration) Source() Source {
	return r.source
}

// Tickable returns the registered tickable.
func (r *Registration) Tickable() Tickable {
	return r.tickable
}

// Cancel stops the driver from ticking the tickable. It is safe to call Cancel
// more than once.
func (r *Registration) Cancel() {
	r.cancelled = true
}

func (r *Registration) done() bool {
	return r.cancelled || r.tickable.Finished()
}

// A Driver is the per-frame tick source. It keeps one list of tickables per
// source and advances them in registration order.
//
// Everything that is registered with a driver runs on the goroutine that
// calls Tick. Ticks never nest: ticking any source from inside a tick panics.
// Pause, Continue and Inspect may be called from other goroutines to look at
// the state between ticks.
type Driver struct {
	*hooking.HookableBase

	timeLock sync.RWMutex
	now      VTimeInSec
	frame    uint64

	registrations [numSources][]*Registration

	tickingLock   sync.Mutex
	inTick        bool
	tickingSource Source

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex
}

// NewDriver creates a Driver.
func NewDriver() *Driver {
	return &Driver{
		HookableBase: hooking.NewHookableBase(),
	}
}

// Register adds a tickable to the list of the given source. It fails with a
// ConfigurationError if the tickable does not permit the source.
func (d *Driver) Register(source Source, t Tickable) (*Registration, error) {
	if source >= numSources {
		return nil, fmt.Errorf("timing: unknown source %d", source)
	}

	if err := checkSource(source, t.PermittedSources()); err != nil {
		return nil, err
	}

	r := &Registration{source: source, tickable: t}
	d.registrations[source] = append(d.registrations[source], r)

	return r, nil
}

// NumRegistered returns the number of live tickables registered with a
// source.
func (d *Driver) NumRegistered(source Source) int {
	n := 0

	for _, r := range d.registrations[source] {
		if !r.done() {
			n++
		}
	}

	return n
}

// Tick advances all the tickables registered with the source. Ticking the
// Update source also advances the current time and the frame counter.
// Tickables registered during the tick are first advanced on the next tick.
func (d *Driver) Tick(source Source, elapsed VTimeInSec) error {
	if source >= numSources {
		return fmt.Errorf("timing: unknown source %d", source)
	}

	if elapsed < 0 {
		return ErrNegativeElapsed
	}

	d.enterTick(source)
	defer d.exitTick()

	d.pauseLock.Lock()
	defer d.pauseLock.Unlock()

	if source == SourceUpdate {
		d.advance(elapsed)
	}

	info := TickInfo{
		Source:  source,
		Elapsed: elapsed,
		Frame:   d.Frame(),
		Now:     d.CurrentTime(),
	}
	hookCtx := hooking.HookCtx{
		Domain: d,
		Pos:    HookPosBeforeTick,
		Item:   info,
	}
	d.InvokeHook(hookCtx)

	errs := d.dispatch(source, elapsed)
	d.prune(source)

	hookCtx.Pos = HookPosAfterTick
	d.InvokeHook(hookCtx)

	if len(errs) > 0 {
		return fmt.Errorf("timing: tick %s: %w", source, errors.Join(errs...))
	}

	return nil
}

func (d *Driver) enterTick(source Source) {
	d.tickingLock.Lock()
	defer d.tickingLock.Unlock()

	if d.inTick {
		panic(fmt.Sprintf("timing: re-entrant tick of source %s while %s is ticking",
			source, d.tickingSource))
	}

	d.inTick = true
	d.tickingSource = source
}

func (d *Driver) exitTick() {
	d.tickingLock.Lock()
	defer d.tickingLock.Unlock()

	d.inTick = false
}

func (d *Driver) dispatch(source Source, elapsed VTimeInSec) []error {
	var errs []error

	list := d.registrations[source]
	n := len(list)

	for i := 0; i < n; i++ {
		r := d.registrations[source][i]
		if r.done() {
			continue
		}

		if err := r.tickable.OnTick(elapsed, source); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

func (d *Driver) prune(source Source) {
	list := d.registrations[source]
	kept := list[:0]

	for _, r := range list {
		if !r.done() {
			kept = append(kept, r)
		}
	}

	for i := len(kept); i < len(list); i++ {
		list[i] = nil
	}

	d.registrations[source] = kept
}

// Step runs one frame: the Update source followed by the LateUpdate source.
func (d *Driver) Step(elapsed VTimeInSec) error {
	if err := d.Tick(SourceUpdate, elapsed); err != nil {
		return err
	}

	return d.Tick(SourceLateUpdate, elapsed)
}

func (d *Driver) advance(elapsed VTimeInSec) {
	d.timeLock.Lock()
	d.now += elapsed
	d.frame++
	d.timeLock.Unlock()
}

// CurrentTime returns the sum of the elapsed time of all Update ticks.
func (d *Driver) CurrentTime() VTimeInSec {
	d.timeLock.RLock()
	defer d.timeLock.RUnlock()

	return d.now
}

// Frame returns the number of Update ticks so far.
func (d *Driver) Frame() uint64 {
	d.timeLock.RLock()
	defer d.timeLock.RUnlock()

	return d.frame
}

// Pause blocks further ticks until Continue is called.
func (d *Driver) Pause() {
	d.isPausedLock.Lock()
	defer d.isPausedLock.Unlock()

	if d.isPaused {
		return
	}

	d.pauseLock.Lock()
	d.isPaused = true
}

// Continue allows the driver to tick again.
func (d *Driver) Continue() {
	d.isPausedLock.Lock()
	defer d.isPausedLock.Unlock()

	if !d.isPaused {
		return
	}

	d.pauseLock.Unlock()
	d.isPaused = false
}

// IsPaused tells if the driver is paused.
func (d *Driver) IsPaused() bool {
	d.isPausedLock.Lock()
	defer d.isPausedLock.Unlock()

	return d.isPaused
}

// Inspect runs fn while no tick is in progress.
func (d *Driver) Inspect(fn func()) {
	d.isPausedLock.Lock()
	defer d.isPausedLock.Unlock()

	if d.isPaused {
		fn()
		return
	}

	d.pauseLock.Lock()
	defer d.pauseLock.Unlock()

	fn()
}
