// Package timing provides the per-frame tick source and the timers that are
// advanced by it.
package timing

// VTimeInSec defines time in the unit of second.
type VTimeInSec float64

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}
