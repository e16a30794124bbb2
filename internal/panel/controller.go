package panel

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Controller owns every registered panel, the active-panel slot and the
// pending hover-out closes. It is not safe for concurrent use; drive it from
// one event loop.
type Controller struct {
	ctx      context.Context
	sched    Scheduler
	provider Provider
	fetcher  Fetcher
	renderer Renderer
	delay    time.Duration
	log      zerolog.Logger

	order   []PanelID
	panels  map[PanelID]*entry
	active  PanelID
	pending map[PanelID]*pendingClose
	seq     uint64
}

type entry struct {
	trigger   Trigger
	vis       Visibility
	load      LoadState
	content   Payload
	presented bool
	inflight  uint64 // sequence of the outstanding fetch, 0 when idle
}

type pendingClose struct {
	task Task
}

// Option configures a Controller.
type Option func(*Controller)

// WithCloseDelay sets the hover-out debounce. Negative values are treated as
// zero.
func WithCloseDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d < 0 {
			d = 0
		}
		c.delay = d
	}
}

// WithProvider sets the synchronous content source.
func WithProvider(p Provider) Option {
	return func(c *Controller) { c.provider = p }
}

// WithFetcher sets an asynchronous content source. It takes precedence over
// the provider.
func WithFetcher(f Fetcher) Option {
	return func(c *Controller) { c.fetcher = f }
}

// WithRenderer sets the presentation collaborator.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// WithLogger sets the logger used for event tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithContext sets the context passed to the fetcher.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// NewController creates a Controller with no triggers registered.
func NewController(sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		ctx:      context.Background(),
		sched:    sched,
		provider: ProviderFunc(Fallback),
		renderer: nopRenderer{},
		delay:    DefaultCloseDelay,
		log:      zerolog.Nop(),
		panels:   make(map[PanelID]*entry),
		pending:  make(map[PanelID]*pendingClose),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds a trigger and its closed, unloaded panel.
func (c *Controller) Register(t Trigger) error {
	if t.ID == "" {
		return ErrEmptyTriggerID
	}
	if _, ok := c.panels[t.ID]; ok {
		return &DuplicateTriggerError{ID: t.ID}
	}
	c.panels[t.ID] = &entry{trigger: t}
	c.order = append(c.order, t.ID)
	return nil
}

// CloseDelay returns the configured hover-out debounce.
func (c *Controller) CloseDelay() time.Duration { return c.delay }

// Active returns the open panel, if any.
func (c *Controller) Active() (PanelID, bool) {
	return c.active, c.active != ""
}

// Triggers returns the registered triggers in registration order.
func (c *Controller) Triggers() []Trigger {
	out := make([]Trigger, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.panels[id].trigger)
	}
	return out
}

// Panel returns a snapshot of one panel.
func (c *Controller) Panel(id PanelID) (State, bool) {
	e, ok := c.panels[id]
	if !ok {
		return State{}, false
	}
	_, pending := c.pending[id]
	return State{
		Trigger:      e.trigger,
		Visibility:   e.vis,
		Load:         e.load,
		Loading:      e.inflight != 0,
		Content:      e.content,
		ClosePending: pending,
	}, true
}

// Panels returns a snapshot of every panel in registration order.
func (c *Controller) Panels() []State {
	out := make([]State, 0, len(c.order))
	for _, id := range c.order {
		st, _ := c.Panel(id)
		out = append(out, st)
	}
	return out
}

// HoverEnter opens the trigger's panel. Any pending close is cancelled, a
// different open panel is closed at once, and content is requested the
// first time the panel opens.
func (c *Controller) HoverEnter(id PanelID) error {
	e, ok := c.panels[id]
	if !ok {
		return c.unknown("hover enter", id)
	}

	c.cancelAllPending()

	if c.active != "" && c.active != id {
		c.closeNow(c.active, "superseded")
	}

	if e.load == Unloaded && e.inflight == 0 {
		c.load(e)
	}

	c.open(e)
	return nil
}

// HoverLeave schedules the trigger's panel to close after the debounce
// delay, replacing any close already pending for it.
func (c *Controller) HoverLeave(id PanelID) error {
	if _, ok := c.panels[id]; !ok {
		return c.unknown("hover leave", id)
	}

	c.cancelPending(id)

	p := &pendingClose{}
	p.task = c.sched.After(c.delay, func() {
		if c.pending[id] != p {
			return
		}
		delete(c.pending, id)
		c.closeNow(id, "hover out")
	})
	c.pending[id] = p

	c.log.Debug().Str("panel", string(id)).Dur("delay", c.delay).Msg("close scheduled")
	return nil
}

// Dismiss closes the active panel immediately, skipping the debounce. It is
// the handler for clicks outside every trigger and for Escape. With no
// active panel it does nothing.
func (c *Controller) Dismiss() {
	if c.active == "" {
		c.log.Debug().Msg("dismiss with no active panel")
		return
	}
	c.closeNow(c.active, "dismissed")
}

// Close closes one panel immediately, whether or not it is active.
func (c *Controller) Close(id PanelID) error {
	if _, ok := c.panels[id]; !ok {
		return c.unknown("close", id)
	}
	c.closeNow(id, "closed")
	return nil
}

func (c *Controller) unknown(op string, id PanelID) error {
	err := &UnknownTriggerError{ID: id}
	c.log.Warn().Err(err).Str("op", op).Msg("ignoring event for unregistered trigger")
	return err
}

func (c *Controller) open(e *entry) {
	id := e.trigger.ID
	if e.vis != Open {
		c.transition(e, Opening)
		c.transition(e, Open)
	}
	c.active = id

	if e.load == Loaded && !e.presented {
		c.present(e)
	}
}

func (c *Controller) closeNow(id PanelID, reason string) {
	c.cancelPending(id)

	e := c.panels[id]
	if e.vis != Closed {
		c.transition(e, Closing)
		c.transition(e, Closed)
		c.log.Debug().Str("panel", string(id)).Str("reason", reason).Msg("panel closed")
	}
	if c.active == id {
		c.active = ""
	}
}

func (c *Controller) transition(e *entry, to Visibility) {
	from := e.vis
	e.vis = to
	c.renderer.Transition(Transition{Panel: e.trigger.ID, From: from, To: to})
}

func (c *Controller) cancelPending(id PanelID) {
	if p, ok := c.pending[id]; ok {
		p.task.Cancel()
		delete(c.pending, id)
	}
}

func (c *Controller) cancelAllPending() {
	for id, p := range c.pending {
		p.task.Cancel()
		delete(c.pending, id)
	}
}

func (c *Controller) load(e *entry) {
	id, key := e.trigger.ID, e.trigger.Category

	if c.fetcher == nil {
		c.store(e, c.provider.Lookup(key))
		c.present(e)
		return
	}

	c.seq++
	seq := c.seq
	e.inflight = seq
	fetcher, ctx := c.fetcher, c.ctx

	c.log.Debug().Str("panel", string(id)).Str("category", key).Msg("fetching content")
	c.sched.Go(func() func() {
		p, err := fetcher.Fetch(ctx, key)
		return func() { c.complete(id, seq, p, err) }
	})
}

// complete applies a fetch result on the loop. The content is kept either
// way so the panel never fetches twice, but it is only presented when the
// panel is still the one the user has open.
func (c *Controller) complete(id PanelID, seq uint64, p Payload, err error) {
	e, ok := c.panels[id]
	if !ok || e.inflight != seq {
		return
	}
	e.inflight = 0

	if err != nil {
		c.log.Warn().Err(err).Str("panel", string(id)).Msg("content fetch failed, using fallback")
		p = Fallback(e.trigger.Category)
	}
	c.store(e, p)

	if c.active != id || e.vis != Open {
		c.log.Debug().Str("panel", string(id)).Msg("content arrived for inactive panel, holding")
		return
	}
	c.present(e)
}

func (c *Controller) store(e *entry, p Payload) {
	e.content = p
	e.load = Loaded
	if p.Unavailable {
		c.log.Info().Str("panel", string(e.trigger.ID)).Str("category", e.trigger.Category).Msg("content unavailable, showing fallback")
	}
}

func (c *Controller) present(e *entry) {
	e.presented = true
	c.renderer.Populate(e.trigger.ID, e.content)
}
