package panel

import "github.com/rs/zerolog"

// EventKind is the kind of raw input routed through a Dispatcher.
type EventKind int

const (
	EventHoverEnter EventKind = iota
	EventHoverLeave
	EventPointerDown
	EventEscape
)

func (k EventKind) String() string {
	switch k {
	case EventHoverEnter:
		return "hover-enter"
	case EventHoverLeave:
		return "hover-leave"
	case EventPointerDown:
		return "pointer-down"
	case EventEscape:
		return "escape"
	}
	return "unknown"
}

// Event is one input event. Trigger is empty for input that landed on no
// trigger at all.
type Event struct {
	Kind    EventKind
	Trigger PanelID
}

// Handler receives events addressed to one trigger.
type Handler func(Event)

// Dispatcher is the subscription table between input sources and the
// controller. Each registered trigger gets a controller-backed handler;
// further handlers can be subscribed per trigger and run after it.
type Dispatcher struct {
	ctrl  *Controller
	table map[PanelID][]Handler
	log   zerolog.Logger
}

// NewDispatcher builds the table from the controller's registered triggers.
func NewDispatcher(ctrl *Controller, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		ctrl:  ctrl,
		table: make(map[PanelID][]Handler),
		log:   log,
	}
	for _, t := range ctrl.Triggers() {
		d.table[t.ID] = []Handler{d.controllerHandler}
	}
	return d
}

// Subscribe adds h to the handlers for id. It reports false when id is not
// a registered trigger.
func (d *Dispatcher) Subscribe(id PanelID, h Handler) bool {
	hs, ok := d.table[id]
	if !ok {
		return false
	}
	d.table[id] = append(hs, h)
	return true
}

// Dispatch routes ev. Escape, and pointer-down that hits no trigger, dismiss
// the active panel. Events for unregistered triggers are logged and dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	if ev.Kind == EventEscape || (ev.Kind == EventPointerDown && ev.Trigger == "") {
		d.ctrl.Dismiss()
		return
	}

	hs, ok := d.table[ev.Trigger]
	if !ok {
		if ev.Kind == EventPointerDown {
			// Input on something that is not a trigger counts as outside.
			d.ctrl.Dismiss()
			return
		}
		d.log.Warn().
			Err(&UnknownTriggerError{ID: ev.Trigger}).
			Stringer("event", ev.Kind).
			Msg("dropping event")
		return
	}
	for _, h := range hs {
		h(ev)
	}
}

func (d *Dispatcher) controllerHandler(ev Event) {
	switch ev.Kind {
	case EventHoverEnter, EventPointerDown:
		_ = d.ctrl.HoverEnter(ev.Trigger)
	case EventHoverLeave:
		_ = d.ctrl.HoverLeave(ev.Trigger)
	}
}
