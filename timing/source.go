package timing

import (
	"strings"
)

// Source identifies which per-frame driver is advancing a timer.
type Source uint8

// The sources a Driver can tick.
const (
	SourceUpdate Source = iota
	SourceLateUpdate
	SourceFixedUpdate

	numSources
)

var sourceNames = [numSources]string{
	SourceUpdate:      "Update",
	SourceLateUpdate:  "LateUpdate",
	SourceFixedUpdate: "FixedUpdate",
}

func (s Source) String() string {
	if s >= numSources {
		return "Unknown"
	}

	return sourceNames[s]
}

// ParseSource converts a source name back into a Source.
func ParseSource(name string) (Source, bool) {
	for i, n := range sourceNames {
		if strings.EqualFold(n, name) {
			return Source(i), true
		}
	}

	return 0, false
}

// SourceSet is a finite set of sources.
type SourceSet uint8

// Sources builds a SourceSet from individual sources.
func Sources(sources ...Source) SourceSet {
	var set SourceSet

	for _, s := range sources {
		if s >= numSources {
			panic("timing: unknown source")
		}

		set |= 1 << s
	}

	return set
}

// FrameSources are the sources that advance once per rendered frame by the
// frame delta time.
var FrameSources = Sources(SourceUpdate, SourceLateUpdate)

// Contains tells if the source is part of the set.
func (s SourceSet) Contains(source Source) bool {
	if source >= numSources {
		return false
	}

	return s&(1<<source) != 0
}

// IsEmpty returns true if no source is part of the set.
func (s SourceSet) IsEmpty() bool {
	return s == 0
}

// List returns the sources in the set in declaration order.
func (s SourceSet) List() []Source {
	list := make([]Source, 0, numSources)

	for i := Source(0); i < numSources; i++ {
		if s.Contains(i) {
			list = append(list, i)
		}
	}

	return list
}

func (s SourceSet) String() string {
	names := make([]string, 0, numSources)
	for _, src := range s.List() {
		names = append(names, src.String())
	}

	return "{" + strings.Join(names, ", ") + "}"
}
