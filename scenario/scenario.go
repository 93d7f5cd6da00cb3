// Package scenario describes and runs a scripted sequence of content on a set
// of slots.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/stagehand/timing"
)

// DefaultFrameRate is the frame rate of a scenario that does not set one.
const DefaultFrameRate = 60.0

// A Scenario is a set of slots, the units that can be shown in them, and the
// actions that show and clear the units over time.
type Scenario struct {
	Name           string     `yaml:"name"`
	FrameRate      float64    `yaml:"frame_rate"`
	Duration       float64    `yaml:"duration"`
	StallThreshold float64    `yaml:"stall_threshold"`
	Slots          []SlotSpec `yaml:"slots"`
	Units          []UnitSpec `yaml:"units"`
	Actions        []Action   `yaml:"actions"`
}

// SlotSpec describes a slot.
type SlotSpec struct {
	ID       string    `yaml:"id"`
	Position []float64 `yaml:"position"`
}

// UnitSpec describes a timed unit.
type UnitSpec struct {
	ID        string  `yaml:"id"`
	Source    string  `yaml:"source"`
	Load      float64 `yaml:"load"`
	Enter     float64 `yaml:"enter"`
	Exit      float64 `yaml:"exit"`
	AutoClear float64 `yaml:"auto_clear"`
}

// An Action shows a unit in a slot, or clears the slot, at a given time.
type Action struct {
	At    float64 `yaml:"at"`
	Slot  string  `yaml:"slot"`
	Show  string  `yaml:"show"`
	Clear bool    `yaml:"clear"`
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	return s, nil
}

// Parse reads a scenario in YAML and validates it. Unknown fields are
// rejected.
func Parse(r io.Reader) (*Scenario, error) {
	s := &Scenario{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks that the scenario can be run.
func (s *Scenario) Validate() error {
	var errs []error

	if s.FrameRate < 0 {
		errs = append(errs, fmt.Errorf("frame_rate must not be negative"))
	}

	if s.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive"))
	}

	if s.StallThreshold < 0 {
		errs = append(errs, fmt.Errorf("stall_threshold must not be negative"))
	}

	slots := make(map[string]bool)
	for i, spec := range s.Slots {
		errs = append(errs, s.validateSlot(i, spec, slots)...)
	}

	units := make(map[string]bool)
	for i, spec := range s.Units {
		errs = append(errs, validateUnit(i, spec, units)...)
	}

	shown := make(map[string]bool)
	for i, a := range s.Actions {
		errs = append(errs, s.validateAction(i, a, slots, units, shown)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid scenario: %w", errors.Join(errs...))
	}

	return nil
}

func (s *Scenario) validateSlot(
	i int,
	spec SlotSpec,
	slots map[string]bool,
) []error {
	var errs []error

	switch {
	case spec.ID == "":
		errs = append(errs, fmt.Errorf("slots[%d]: missing id", i))
	case slots[spec.ID]:
		errs = append(errs, fmt.Errorf("slots[%d]: duplicated id %q", i, spec.ID))
	}

	if len(spec.Position) != 0 && len(spec.Position) != 3 {
		errs = append(errs,
			fmt.Errorf("slots[%d]: position needs 3 values, got %d",
				i, len(spec.Position)))
	}

	slots[spec.ID] = true

	return errs
}

func validateUnit(i int, spec UnitSpec, units map[string]bool) []error {
	var errs []error

	switch {
	case spec.ID == "":
		errs = append(errs, fmt.Errorf("units[%d]: missing id", i))
	case units[spec.ID]:
		errs = append(errs, fmt.Errorf("units[%d]: duplicated id %q", i, spec.ID))
	}

	if spec.Source != "" {
		if _, ok := timing.ParseSource(spec.Source); !ok {
			errs = append(errs,
				fmt.Errorf("units[%d]: unknown source %q", i, spec.Source))
		}
	}

	if spec.Load < 0 || spec.Enter < 0 || spec.Exit < 0 || spec.AutoClear < 0 {
		errs = append(errs, fmt.Errorf("units[%d]: negative duration", i))
	}

	units[spec.ID] = true

	return errs
}

func (s *Scenario) validateAction(
	i int,
	a Action,
	slots, units, shown map[string]bool,
) []error {
	var errs []error

	if a.At < 0 || (s.Duration > 0 && a.At > s.Duration) {
		errs = append(errs,
			fmt.Errorf("actions[%d]: time %g is outside the scenario", i, a.At))
	}

	if !slots[a.Slot] {
		errs = append(errs, fmt.Errorf("actions[%d]: unknown slot %q", i, a.Slot))
	}

	switch {
	case a.Clear && a.Show != "":
		errs = append(errs,
			fmt.Errorf("actions[%d]: cannot both show and clear", i))
	case !a.Clear && a.Show == "":
		errs = append(errs,
			fmt.Errorf("actions[%d]: needs either show or clear", i))
	case a.Show != "" && !units[a.Show]:
		errs = append(errs, fmt.Errorf("actions[%d]: unknown unit %q", i, a.Show))
	case a.Show != "" && shown[a.Show]:
		errs = append(errs,
			fmt.Errorf("actions[%d]: unit %q is shown more than once", i, a.Show))
	}

	if a.Show != "" {
		shown[a.Show] = true
	}

	return errs
}

// Freq returns the frame rate of the scenario, DefaultFrameRate if it is not
// set.
func (s *Scenario) Freq() timing.Freq {
	if s.FrameRate == 0 {
		return timing.Freq(DefaultFrameRate) * timing.Hz
	}

	return timing.Freq(s.FrameRate) * timing.Hz
}

// NumFrames returns the number of frames needed to cover the duration.
func (s *Scenario) NumFrames() uint64 {
	freq := s.Freq()
	frames := freq.Cycle(timing.VTimeInSec(s.Duration))

	covered := float64(freq.Period()) * float64(frames)
	if covered < s.Duration-1e-9 {
		frames++
	}

	return frames
}
