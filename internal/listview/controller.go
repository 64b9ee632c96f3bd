package listview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/commerceops/backoffice/internal"
	"github.com/commerceops/backoffice/internal/core/events"
	"github.com/commerceops/backoffice/internal/core/pagination"
)

// MutationState tracks one mutation through its lifecycle.
type MutationState int

const (
	MutationIdle MutationState = iota
	MutationValidating
	MutationSubmitting
	MutationSucceeded
	MutationConflict
	MutationFailed
)

func (s MutationState) String() string {
	switch s {
	case MutationIdle:
		return "idle"
	case MutationValidating:
		return "validating"
	case MutationSubmitting:
		return "submitting"
	case MutationSucceeded:
		return "succeeded"
	case MutationConflict:
		return "conflict"
	case MutationFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MutationKind distinguishes deletes, whose missing-row answer reads as a
// conflict rather than a success.
type MutationKind int

const (
	MutationWrite MutationKind = iota
	MutationDelete
)

// Outcome is the settled result of one mutation.
type Outcome struct {
	State   MutationState
	Message string
	Err     error
}

// FetchFunc loads one page of rows for a query.
type FetchFunc[T any] func(ctx context.Context, query pagination.PageQuery) (*pagination.PageResult[T], error)

// Controller owns the paging, search, refresh and mutation state of one
// management screen. Fetches are asynchronous; a completed fetch is applied
// only when its query still equals the controller's current query, so a
// stale response can never overwrite a newer one.
type Controller[T any] struct {
	fetch     FetchFunc[T]
	bus       *events.EventBus
	debouncer *Debouncer
	logger    *slog.Logger

	mu         sync.Mutex
	query      pagination.PageQuery
	rows       []T
	totalRows  int64
	totalPages int
	fetchErr   error
	loading    bool
	draft      map[string]string
	mutation   MutationState
	lastResult Outcome
	subs       []events.Subscription
	closed     bool
	searchDone chan struct{}
	swapped    chan struct{}
}

// NewController builds a controller starting at page 1 with no search.
func NewController[T any](fetch FetchFunc[T], bus *events.EventBus, logger *slog.Logger) *Controller[T] {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller[T]{
		fetch:      fetch,
		bus:        bus,
		debouncer:  NewDebouncer(DefaultDebounceDelay),
		logger:     logger,
		query:      pagination.NewPageQuery(1, pagination.DefaultPageSize, ""),
		draft:      make(map[string]string),
		searchDone: make(chan struct{}),
		swapped:    make(chan struct{}, 1),
	}
	go c.consumeSearch()
	return c
}

// SetDebounceDelay replaces the debouncer with one using the given quiet
// window. Only sensible before the first SetSearch call.
func (c *Controller[T]) SetDebounceDelay(delay time.Duration) {
	c.mu.Lock()
	old := c.debouncer
	c.debouncer = NewDebouncer(delay)
	c.mu.Unlock()
	old.Stop()

	select {
	case c.swapped <- struct{}{}:
	default:
	}
}

func (c *Controller[T]) consumeSearch() {
	for {
		c.mu.Lock()
		d := c.debouncer
		done := c.searchDone
		c.mu.Unlock()

		select {
		case term := <-d.C():
			c.applySearch(term)
		case <-c.swapped:
			// re-select against the new debouncer
		case <-done:
			return
		}
	}
}

func (c *Controller[T]) applySearch(term string) {
	c.mu.Lock()
	c.query = pagination.NewPageQuery(1, c.query.PageSize, term)
	q := c.query
	c.mu.Unlock()
	c.startFetch(q)
}

// SetSearch feeds the raw input through the debouncer. Only the last value
// of a burst triggers a fetch.
func (c *Controller[T]) SetSearch(term string) {
	c.mu.Lock()
	d := c.debouncer
	c.mu.Unlock()
	d.Observe(term)
}

// SetPage jumps to a page and refetches.
func (c *Controller[T]) SetPage(page int) {
	c.mu.Lock()
	c.query = pagination.NewPageQuery(page, c.query.PageSize, c.query.Search)
	q := c.query
	c.mu.Unlock()
	c.startFetch(q)
}

// Refresh refetches the current query.
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	q := c.query
	c.mu.Unlock()
	c.startFetch(q)
}

func (c *Controller[T]) startFetch(q pagination.PageQuery) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.loading = true
	c.mu.Unlock()

	go func() {
		result, err := c.fetch(context.Background(), q)

		c.mu.Lock()
		defer c.mu.Unlock()

		// Discard stale responses: only the fetch whose query matches the
		// current one may land.
		if c.query != q {
			return
		}
		c.loading = false
		if err != nil {
			c.fetchErr = err
			c.logger.Error("list fetch failed", "error", err)
			return
		}
		c.fetchErr = nil
		c.rows = result.Items
		c.totalRows = result.TotalRows
		c.totalPages = result.TotalPages
	}()
}

// Mutate runs op through the mutation lifecycle. On success the controller
// resets to page 1, keeps the search, refetches and clears the draft.
func (c *Controller[T]) Mutate(kind MutationKind, op func() error) Outcome {
	c.setMutation(MutationValidating)
	c.setMutation(MutationSubmitting)

	err := op()
	outcome := c.classify(kind, err)

	c.mu.Lock()
	c.mutation = outcome.State
	c.lastResult = outcome
	if outcome.State == MutationSucceeded {
		c.query = pagination.NewPageQuery(1, c.query.PageSize, c.query.Search)
		c.draft = make(map[string]string)
	}
	q := c.query
	c.mutation = MutationIdle
	c.mu.Unlock()

	if outcome.State == MutationSucceeded {
		c.startFetch(q)
	}
	return outcome
}

func (c *Controller[T]) classify(kind MutationKind, err error) Outcome {
	if err == nil {
		return Outcome{State: MutationSucceeded}
	}

	if appErr, ok := internal.IsAppError(err); ok {
		switch {
		case appErr.Type == internal.ErrorTypeConflict:
			return Outcome{State: MutationConflict, Message: appErr.Message, Err: err}
		case appErr.Type == internal.ErrorTypeNotFound && kind == MutationDelete:
			// The row is already gone; never report a phantom success.
			return Outcome{State: MutationConflict, Message: appErr.Message, Err: err}
		}
		return Outcome{State: MutationFailed, Message: appErr.Message, Err: err}
	}
	return Outcome{State: MutationFailed, Message: err.Error(), Err: err}
}

func (c *Controller[T]) setMutation(state MutationState) {
	c.mu.Lock()
	c.mutation = state
	c.mu.Unlock()
}

// WatchReferences refreshes reference data through refetch whenever one of
// the entity-changed event types fires. The in-progress draft is never
// touched by a reference update.
func (c *Controller[T]) WatchReferences(eventTypes []string, refetch func()) {
	if c.bus == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	for _, eventType := range eventTypes {
		sub := c.bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			refetch()
			return nil
		})
		c.subs = append(c.subs, sub)
	}
}

// SetDraftField records unsaved form input.
func (c *Controller[T]) SetDraftField(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft[field] = value
}

// Draft returns a copy of the unsaved form input.
func (c *Controller[T]) Draft() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make(map[string]string, len(c.draft))
	for k, v := range c.draft {
		copied[k] = v
	}
	return copied
}

// Snapshot reports the current screen state.
type Snapshot[T any] struct {
	Query      pagination.PageQuery
	Rows       []T
	TotalRows  int64
	TotalPages int
	Loading    bool
	FetchErr   error
	LastResult Outcome
}

func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([]T, len(c.rows))
	copy(rows, c.rows)
	return Snapshot[T]{
		Query:      c.query,
		Rows:       rows,
		TotalRows:  c.totalRows,
		TotalPages: c.totalPages,
		Loading:    c.loading,
		FetchErr:   c.fetchErr,
		LastResult: c.lastResult,
	}
}

// Close tears the controller down: the debouncer stops and every event
// subscription is released.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	subs := c.subs
	c.subs = nil
	d := c.debouncer
	close(c.searchDone)
	c.mu.Unlock()

	d.Stop()
	if c.bus != nil {
		for _, sub := range subs {
			c.bus.Unsubscribe(sub)
		}
	}
}
