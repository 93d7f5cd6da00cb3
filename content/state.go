package content

// State is the lifecycle state of a content unit. A unit only ever moves
// forward through the states in declaration order.
type State int

// The states of a content unit.
const (
	StateCreated State = iota
	StateLoading
	StateLoaded
	StateEntering
	StateShown
	StateExiting
	StateDisposed
)

var stateNames = []string{
	"Created",
	"Loading",
	"Loaded",
	"Entering",
	"Shown",
	"Exiting",
	"Disposed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}

	return stateNames[s]
}

// Phase is what a slot is doing with its active unit.
type Phase int

// The phases of a slot.
const (
	PhaseIdle Phase = iota
	PhaseLoad
	PhasePlayIn
	PhaseShown
	PhasePlayOut
)

var phaseNames = []string{
	"Idle",
	"Load",
	"PlayIn",
	"Shown",
	"PlayOut",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "Unknown"
	}

	return phaseNames[p]
}

// InFlight tells if the phase waits for a completion signal from the unit.
func (p Phase) InFlight() bool {
	return p == PhaseLoad || p == PhasePlayIn || p == PhasePlayOut
}
