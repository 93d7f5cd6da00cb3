// Package hooking provides the observer list used by every lifecycle signal in
// stagehand.
package hooking

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered.
type HookCtx struct {
	// Domain is the hookable object that is raising this hook.
	Domain Hookable

	// Pos identifies the lifecycle stage the hook is firing from.
	Pos *HookPos

	// Item carries the primary subject associated with the hook (usually a
	// content unit).
	Item any

	// Detail holds optional auxiliary data; hook sites may leave it nil.
	Detail any
}

// Hookable defines an object that accept Hooks.
type Hookable interface {
	// AcceptHook registers a hook. The returned Subscription removes the hook
	// again.
	AcceptHook(hook Hook) Subscription

	// NumHooks returns the number of hooks registered.
	NumHooks() int

	// Hooks returns all the hooks registered.
	Hooks() []Hook

	// InvokeHook triggers the registered Hooks.
	InvokeHook(ctx HookCtx)
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

type funcHook struct {
	f func(ctx HookCtx)
}

func (h *funcHook) Func(ctx HookCtx) {
	h.f(ctx)
}

// HookFunc wraps a plain function into a Hook. Every call returns a distinct
// hook, so the same function can be registered more than once.
func HookFunc(f func(ctx HookCtx)) Hook {
	return &funcHook{f: f}
}

// Subscription is the token returned when a hook is accepted.
type Subscription interface {
	// Unsubscribe removes the hook. Calling it more than once is a no-op.
	Unsubscribe()

	// Active tells if the hook is still registered.
	Active() bool
}
