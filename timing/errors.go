package timing

import (
	"errors"
	"fmt"
)

// ErrNegativeElapsed is returned when a tick carries a negative elapsed time.
var ErrNegativeElapsed = errors.New("timing: elapsed time cannot be negative")

// ConfigurationError reports that a tickable is driven by a source that it does
// not permit.
type ConfigurationError struct {
	Source    Source
	Permitted SourceSet
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf(
		"timing: source %s is not permitted, expecting one of %s",
		e.Source, e.Permitted,
	)
}

func checkSource(source Source, permitted SourceSet) error {
	if !permitted.Contains(source) {
		return &ConfigurationError{Source: source, Permitted: permitted}
	}

	return nil
}
