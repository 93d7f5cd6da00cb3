package content

import "github.com/sarchlab/stagehand/hooking"

// Lifecycle signals published by a slot. Unless noted, the item of a signal
// is the Unit concerned.
var (
	// HookPosLoadStart is triggered before a unit starts loading.
	HookPosLoadStart = &hooking.HookPos{Name: "LoadStart"}

	// HookPosLoadComplete is triggered after a unit finished loading.
	HookPosLoadComplete = &hooking.HookPos{Name: "LoadComplete"}

	// HookPosPlayInStart is triggered before a unit starts playing in.
	HookPosPlayInStart = &hooking.HookPos{Name: "PlayInStart"}

	// HookPosPlayInComplete is triggered after a unit finished playing in.
	HookPosPlayInComplete = &hooking.HookPos{Name: "PlayInComplete"}

	// HookPosPlayOutStart is triggered before a unit starts playing out.
	HookPosPlayOutStart = &hooking.HookPos{Name: "PlayOutStart"}

	// HookPosPlayOutComplete is triggered after a unit finished playing out,
	// right before it is disposed.
	HookPosPlayOutComplete = &hooking.HookPos{Name: "PlayOutComplete"}

	// HookPosPhaseFailed is triggered when the active unit fails a phase. The
	// detail is a *PhaseError. The unit is disposed afterwards.
	HookPosPhaseFailed = &hooking.HookPos{Name: "PhaseFailed"}

	// HookPosPhaseStalled is triggered once per phase when a phase runs longer
	// than the stall threshold of the manager. The detail is a StallReport.
	HookPosPhaseStalled = &hooking.HookPos{Name: "PhaseStalled"}

	// HookPosPendingSuperseded is triggered when a pending unit is replaced
	// before it became active. The unit is disposed afterwards.
	HookPosPendingSuperseded = &hooking.HookPos{Name: "PendingSuperseded"}

	// HookPosSlotDisposed is triggered once when the slot is disposed. It has
	// no item.
	HookPosSlotDisposed = &hooking.HookPos{Name: "SlotDisposed"}
)

// LifecyclePositions lists the six signals that every shown unit goes through.
var LifecyclePositions = []*hooking.HookPos{
	HookPosLoadStart,
	HookPosLoadComplete,
	HookPosPlayInStart,
	HookPosPlayInComplete,
	HookPosPlayOutStart,
	HookPosPlayOutComplete,
}
