package timing

// A Tickable is an object that is advanced by a Driver.
type Tickable interface {
	// PermittedSources returns the sources that are allowed to advance the
	// tickable.
	PermittedSources() SourceSet

	// OnTick advances the tickable by elapsed. It returns a
	// ConfigurationError if the source is not permitted.
	OnTick(elapsed VTimeInSec, source Source) error

	// Finished returns true once the tickable no longer needs ticks. The
	// driver drops finished tickables.
	Finished() bool
}
