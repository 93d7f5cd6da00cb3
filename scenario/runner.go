package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sarchlab/stagehand/content"
	"github.com/sarchlab/stagehand/timing"
)

// A FrameListener is notified after every frame of a run.
type FrameListener interface {
	FrameDone(frame, total uint64)
}

// A Runner plays a scenario on its own driver and manager.
type Runner struct {
	scenario *Scenario
	driver   *timing.Driver
	manager  *content.Manager
	units    map[string]*content.TimedUnit

	realTime  bool
	listeners []FrameListener
	errs      []error
}

// RunnerBuilder can build runners.
type RunnerBuilder struct {
	realTime bool
}

// MakeRunnerBuilder creates a builder of runners that run as fast as
// possible.
func MakeRunnerBuilder() RunnerBuilder {
	return RunnerBuilder{}
}

// WithRealTime makes the runner wait for one period of wall-clock time between
// two frames.
func (b RunnerBuilder) WithRealTime(realTime bool) RunnerBuilder {
	b.realTime = realTime
	return b
}

// Build creates the slots and the units of the scenario and schedules its
// actions.
func (b RunnerBuilder) Build(s *Scenario) (*Runner, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		scenario: s,
		driver:   timing.NewDriver(),
		units:    make(map[string]*content.TimedUnit),
		realTime: b.realTime,
	}

	rootName := s.Name
	if rootName == "" {
		rootName = "stage"
	}

	managerBuilder := content.MakeBuilder().
		WithDriver(r.driver).
		WithRootName(rootName)

	if s.StallThreshold > 0 {
		managerBuilder = managerBuilder.
			WithStallThreshold(timing.VTimeInSec(s.StallThreshold))
	}

	r.manager = managerBuilder.Build()

	if err := r.createSlots(); err != nil {
		return nil, err
	}

	r.createUnits()

	if err := r.scheduleActions(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Runner) createSlots() error {
	for _, spec := range r.scenario.Slots {
		var pos content.Vec3
		if len(spec.Position) == 3 {
			pos = content.Vec3{
				X: spec.Position[0],
				Y: spec.Position[1],
				Z: spec.Position[2],
			}
		}

		if _, err := r.manager.CreateSlot(spec.ID, pos, nil); err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) createUnits() {
	for _, spec := range r.scenario.Units {
		source := timing.SourceUpdate
		if spec.Source != "" {
			source, _ = timing.ParseSource(spec.Source)
		}

		r.units[spec.ID] = content.MakeTimedUnitBuilder().
			WithDriver(r.driver).
			WithSource(source).
			WithLoadTime(timing.VTimeInSec(spec.Load)).
			WithEnterTime(timing.VTimeInSec(spec.Enter)).
			WithExitTime(timing.VTimeInSec(spec.Exit)).
			WithAutoClearAfter(timing.VTimeInSec(spec.AutoClear)).
			Build(spec.ID)
	}
}

func (r *Runner) scheduleActions() error {
	for i, a := range r.scenario.Actions {
		timer := timing.NewDelayedCallback(
			timing.VTimeInSec(a.At),
			func() { r.perform(i, a) },
			timing.Sources(timing.SourceUpdate),
		)

		if _, err := r.driver.Register(timing.SourceUpdate, timer); err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) perform(i int, a Action) {
	slot, ok := r.manager.Slot(a.Slot)
	if !ok {
		r.errs = append(r.errs,
			fmt.Errorf("actions[%d]: slot %q is gone", i, a.Slot))
		return
	}

	var err error
	if a.Clear {
		err = slot.Clear()
	} else {
		err = slot.Show(r.units[a.Show])
	}

	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("actions[%d]: %w", i, err))
	}
}

// Driver returns the driver of the runner.
func (r *Runner) Driver() *timing.Driver {
	return r.driver
}

// Manager returns the manager of the runner.
func (r *Runner) Manager() *content.Manager {
	return r.manager
}

// Unit returns a unit of the scenario.
func (r *Runner) Unit(id string) (*content.TimedUnit, bool) {
	u, ok := r.units[id]
	return u, ok
}

// AddFrameListener adds a listener that is notified after every frame.
func (r *Runner) AddFrameListener(l FrameListener) {
	r.listeners = append(r.listeners, l)
}

// Run plays the scenario frame by frame. Each frame ticks FixedUpdate, Update,
// and LateUpdate once with the frame period. Run stops early if the context is
// cancelled. Errors of the actions are returned after the last frame.
func (r *Runner) Run(ctx context.Context) error {
	period := r.scenario.Freq().Period()
	total := r.scenario.NumFrames()

	var ticker *time.Ticker
	if r.realTime {
		ticker = time.NewTicker(time.Duration(float64(period) * float64(time.Second)))
		defer ticker.Stop()
	}

	for frame := uint64(1); frame <= total; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.step(period); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}

		for _, l := range r.listeners {
			l.FrameDone(frame, total)
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	}

	if len(r.errs) > 0 {
		return errors.Join(r.errs...)
	}

	return nil
}

func (r *Runner) step(period timing.VTimeInSec) error {
	if err := r.driver.Tick(timing.SourceFixedUpdate, period); err != nil {
		return err
	}

	return r.driver.Step(period)
}

// Snapshots returns the state of every slot.
func (r *Runner) Snapshots() []content.SlotSnapshot {
	var snapshots []content.SlotSnapshot

	r.driver.Inspect(func() {
		for _, s := range r.manager.Slots() {
			snapshots = append(snapshots, s.Snapshot())
		}
	})

	return snapshots
}

// Dispose releases the manager and all the slots.
func (r *Runner) Dispose() {
	r.manager.Dispose()
}

// Scenario returns the scenario played by the runner.
func (r *Runner) Scenario() *Scenario {
	return r.scenario
}
