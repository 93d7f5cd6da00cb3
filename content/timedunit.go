package content

import (
	"github.com/sarchlab/stagehand/timing"
)

// A TimedUnit is a unit whose phases take a fixed amount of time on a driver.
// It creates its content object when loading completes, and can ask to be
// cleared a while after it is shown.
type TimedUnit struct {
	*UnitBase

	driver *timing.Driver
	source timing.Source

	loadTime       timing.VTimeInSec
	enterTime      timing.VTimeInSec
	exitTime       timing.VTimeInSec
	autoClearAfter timing.VTimeInSec

	timer        *timing.DelayedCallback
	registration *timing.Registration
}

// TimedUnitBuilder can build TimedUnits.
type TimedUnitBuilder struct {
	driver         *timing.Driver
	source         timing.Source
	loadTime       timing.VTimeInSec
	enterTime      timing.VTimeInSec
	exitTime       timing.VTimeInSec
	autoClearAfter timing.VTimeInSec
}

// MakeTimedUnitBuilder creates a builder whose units are driven by the Update
// source and complete every phase on the first tick.
func MakeTimedUnitBuilder() TimedUnitBuilder {
	return TimedUnitBuilder{
		source: timing.SourceUpdate,
	}
}

// WithDriver sets the driver that advances the units.
func (b TimedUnitBuilder) WithDriver(d *timing.Driver) TimedUnitBuilder {
	b.driver = d
	return b
}

// WithSource sets the source that advances the units.
func (b TimedUnitBuilder) WithSource(s timing.Source) TimedUnitBuilder {
	b.source = s
	return b
}

// WithLoadTime sets how long loading takes.
func (b TimedUnitBuilder) WithLoadTime(t timing.VTimeInSec) TimedUnitBuilder {
	b.loadTime = t
	return b
}

// WithEnterTime sets how long playing in takes.
func (b TimedUnitBuilder) WithEnterTime(t timing.VTimeInSec) TimedUnitBuilder {
	b.enterTime = t
	return b
}

// WithExitTime sets how long playing out takes.
func (b TimedUnitBuilder) WithExitTime(t timing.VTimeInSec) TimedUnitBuilder {
	b.exitTime = t
	return b
}

// WithAutoClearAfter makes the unit request its own removal after being shown
// for the given time. Zero disables it.
func (b TimedUnitBuilder) WithAutoClearAfter(
	t timing.VTimeInSec,
) TimedUnitBuilder {
	b.autoClearAfter = t
	return b
}

// Build creates a TimedUnit. An empty id is replaced by a generated one.
func (b TimedUnitBuilder) Build(id string) *TimedUnit {
	if b.driver == nil {
		panic("content: timed unit requires a driver")
	}

	u := &TimedUnit{
		UnitBase:       NewUnitBase(id),
		driver:         b.driver,
		source:         b.source,
		loadTime:       b.loadTime,
		enterTime:      b.enterTime,
		exitTime:       b.exitTime,
		autoClearAfter: b.autoClearAfter,
	}
	u.OnDispose(u.cancelTimer)

	return u
}

// Load starts the load timer.
func (u *TimedUnit) Load() error {
	if err := u.BeginLoad(); err != nil {
		return err
	}

	return u.after(u.loadTime, u.finishLoad)
}

func (u *TimedUnit) finishLoad() {
	u.SetContentObject(NewNode(u.ID()))
	_ = u.CompleteLoad()
}

// EnterAfterLoad starts the play-in timer.
func (u *TimedUnit) EnterAfterLoad() error {
	if err := u.BeginEnter(); err != nil {
		return err
	}

	return u.after(u.enterTime, u.finishEnter)
}

func (u *TimedUnit) finishEnter() {
	_ = u.CompleteEnter()

	if u.autoClearAfter > 0 && u.State() == StateShown {
		_ = u.after(u.autoClearAfter, func() { _ = u.RequestClear() })
	}
}

// ExitForRemoval starts the play-out timer.
func (u *TimedUnit) ExitForRemoval() error {
	if err := u.BeginExit(); err != nil {
		return err
	}

	return u.after(u.exitTime, func() { _ = u.CompleteExit() })
}

func (u *TimedUnit) after(wait timing.VTimeInSec, f func()) error {
	u.cancelTimer()

	timer := timing.NewDelayedCallback(wait, f, timing.Sources(u.source))

	reg, err := u.driver.Register(u.source, timer)
	if err != nil {
		return err
	}

	u.timer = timer
	u.registration = reg

	return nil
}

func (u *TimedUnit) cancelTimer() {
	if u.timer == nil {
		return
	}

	u.timer.Dispose()
	u.registration.Cancel()
	u.timer = nil
	u.registration = nil
}
