package content

import (
	"github.com/sarchlab/stagehand/hooking"
	"github.com/sarchlab/stagehand/timing"
)

// Builder can build managers.
type Builder struct {
	driver         *timing.Driver
	stallThreshold timing.VTimeInSec
	rootName       string
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		rootName: "content",
	}
}

// WithDriver sets the driver that advances the update handles of the slots.
func (b Builder) WithDriver(d *timing.Driver) Builder {
	b.driver = d
	return b
}

// WithStallThreshold sets how long a phase may run before it is reported as
// stalled. It requires a driver.
func (b Builder) WithStallThreshold(t timing.VTimeInSec) Builder {
	b.stallThreshold = t
	return b
}

// WithRootName sets the name of the root node.
func (b Builder) WithRootName(name string) Builder {
	b.rootName = name
	return b
}

// Build creates a manager.
func (b Builder) Build() *Manager {
	if b.stallThreshold > 0 && b.driver == nil {
		panic("content: a stall threshold requires a driver")
	}

	return &Manager{
		HookableBase:   hooking.NewHookableBase(),
		root:           NewNode(b.rootName),
		driver:         b.driver,
		stallThreshold: b.stallThreshold,
		slots:          make(map[string]*Slot),
		slotSubs:       make(map[*Slot]hooking.Subscription),
	}
}
