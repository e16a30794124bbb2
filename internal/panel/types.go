// Package panel implements hoverable lazy panels: dropdown surfaces that open
// when their trigger is hovered, build their content once, and close on
// hover-out (debounced), outside interaction or explicit dismissal. At most
// one panel is open at a time.
//
// Everything in this package runs on a single event loop. The Scheduler is
// the only source of deferred work and must invoke callbacks on that loop.
package panel

import "time"

// DefaultCloseDelay is the hover-out debounce applied when no delay is
// configured.
const DefaultCloseDelay = 150 * time.Millisecond

// PanelID identifies a trigger and the panel it owns.
type PanelID string

// Trigger is a hoverable element that owns exactly one panel.
type Trigger struct {
	ID       PanelID
	Label    string
	Category string // content category key used for lazy loading
}

// Visibility is the presentation state of a panel.
type Visibility int

const (
	Closed Visibility = iota
	Opening
	Open
	Closing
)

func (v Visibility) String() string {
	switch v {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	}
	return "unknown"
}

// Showing reports whether the panel is open or on its way there.
func (v Visibility) Showing() bool {
	return v == Opening || v == Open
}

// LoadState records whether a panel's content has been built. It only ever
// moves from Unloaded to Loaded.
type LoadState int

const (
	Unloaded LoadState = iota
	Loaded
)

func (s LoadState) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "unloaded"
}

// Link is a navigation entry in the left column of a dropdown.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Card is a feature card in the right column of a dropdown.
type Card struct {
	Title   string `json:"title"`
	Body    string `json:"body,omitempty"`
	Pattern string `json:"pattern,omitempty"`
}

// Payload is the content shown inside a panel.
type Payload struct {
	Category    string `json:"category"`
	Links       []Link `json:"links,omitempty"`
	Cards       []Card `json:"cards,omitempty"`
	Unavailable bool   `json:"-"`
	Message     string `json:"message,omitempty"`
}

// UnavailableMessage is the text carried by fallback payloads.
const UnavailableMessage = "Content not available"

// Fallback returns the payload shown for a category nobody can provide.
func Fallback(category string) Payload {
	return Payload{
		Category:    category,
		Unavailable: true,
		Message:     UnavailableMessage,
	}
}

// Transition is a visibility change handed to the Renderer.
type Transition struct {
	Panel PanelID
	From  Visibility
	To    Visibility
}

// State is a read-only snapshot of one panel.
type State struct {
	Trigger      Trigger
	Visibility   Visibility
	Load         LoadState
	Loading      bool // an asynchronous fetch is in flight
	Content      Payload
	ClosePending bool
}
