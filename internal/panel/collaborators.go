package panel

import (
	"context"
	"time"
)

// Task is a handle to deferred work that has not run yet.
type Task interface {
	// Cancel stops the task from running. Cancelling a task that already ran
	// or was already cancelled does nothing.
	Cancel()
}

// Scheduler runs deferred work on the event loop.
type Scheduler interface {
	// After arranges for fn to run on the loop once d has elapsed.
	After(d time.Duration, fn func()) Task

	// Go runs work off the loop. The func it returns is then applied on the
	// loop, in arrival order with every other event.
	Go(work func() func())
}

// Renderer presents panels. It is told about every visibility change and
// receives content the first time a panel has some to show.
type Renderer interface {
	Transition(t Transition)
	Populate(id PanelID, p Payload)
}

// Provider builds content synchronously. Unknown keys yield Fallback, never
// an error. Implementations must be safe to call more than once per key.
type Provider interface {
	Lookup(key string) Payload
}

// Fetcher builds content asynchronously. A non-nil error is treated as
// unavailable content.
type Fetcher interface {
	Fetch(ctx context.Context, key string) (Payload, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(key string) Payload

// Lookup calls f.
func (f ProviderFunc) Lookup(key string) Payload { return f(key) }

type nopRenderer struct{}

func (nopRenderer) Transition(Transition) {}
func (nopRenderer) Populate(PanelID, Payload) {}
