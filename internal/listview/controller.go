package listview

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the quiet interval a search edit must survive before a
// fetch is issued.
const DefaultDebounce = 400 * time.Millisecond

// DefaultPageSize is used when a query carries no explicit page size.
const DefaultPageSize = 10

// Fetcher loads one page for a query.
type Fetcher[T any] func(ctx context.Context, q Query) (Snapshot[T], error)

// ControllerOptions groups dependencies for a Controller.
type ControllerOptions[T any] struct {
	// Fetch is required.
	Fetch Fetcher[T]
	// Debounce overrides the search debounce interval. Zero means
	// DefaultDebounce.
	Debounce time.Duration
	// PageSize is the initial page size. Zero means DefaultPageSize.
	PageSize int
	// OnChange, when set, is invoked after every state transition with the
	// controller lock held; it must not call back into the Controller.
	// Follow mode in the CLI redraws from it.
	OnChange func(State, Snapshot[T], error)
}

// Controller owns the query state of one paginated list. Search edits are
// debounced and coalesced into a single fetch carrying the latest text;
// filter and page changes fetch immediately. Every fetch carries a sequence
// token and a response bearing a stale token is discarded, so out-of-order
// completions can never overwrite newer results. A failed fetch keeps the
// previous snapshot visible alongside the error.
type Controller[T any] struct {
	fetch    Fetcher[T]
	debounce time.Duration
	onChange func(State, Snapshot[T], error)

	mu          sync.Mutex
	query       Query
	snapshot    Snapshot[T]
	hasSnapshot bool
	lastErr     error
	inFlight    int
	seq         uint64

	pendingSearch string
	searchTimer   *time.Timer

	closed bool
	wg     sync.WaitGroup
}

// NewController constructs a Controller. It issues no fetch until the first
// setter or Refresh call.
func NewController[T any](opts ControllerOptions[T]) *Controller[T] {
	if opts.Fetch == nil {
		panic("Fetch is required")
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller[T]{
		fetch:    opts.Fetch,
		debounce: debounce,
		onChange: opts.OnChange,
		query:    Query{Page: 1, PageSize: pageSize},
	}
}

// Query returns a copy of the authoritative query. A pending debounced
// search edit is not reflected until it commits.
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.clone()
}

// Snapshot returns the last successful snapshot and whether one exists yet.
func (c *Controller[T]) Snapshot() (Snapshot[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot, c.hasSnapshot
}

// Err returns the error of the most recent completed fetch, nil after a
// success.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// State reports the controller phase.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller[T]) stateLocked() State {
	switch {
	case c.inFlight > 0:
		return StateLoading
	case c.lastErr != nil:
		return StateError
	default:
		return StateIdle
	}
}

// SetSearch records a search edit. The fetch is deferred by the debounce
// interval; further edits inside the window restart it, so a burst of
// keystrokes produces exactly one fetch carrying the final text. Committing
// the search resets to page 1.
func (c *Controller[T]) SetSearch(ctx context.Context, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pendingSearch = text
	if c.searchTimer != nil {
		c.searchTimer.Stop()
	}
	c.searchTimer = time.AfterFunc(c.debounce, func() {
		c.commitSearch(ctx)
	})
}

func (c *Controller[T]) commitSearch(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.query.Search = c.pendingSearch
	c.query.Page = 1
	c.startFetchLocked(ctx)
}

// SetFilter sets one filter value and fetches immediately, resetting to
// page 1. An empty value removes the filter.
func (c *Controller[T]) SetFilter(ctx context.Context, key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if value == "" {
		delete(c.query.Filters, key)
	} else {
		if c.query.Filters == nil {
			c.query.Filters = make(map[string]string)
		}
		c.query.Filters[key] = value
	}
	c.query.Page = 1
	c.startFetchLocked(ctx)
}

// SetPage navigates to a page, preserving search and filters. The target is
// clamped to the page range known from the last snapshot; a request that
// clamps back to the current page is a no-op and issues no fetch.
func (c *Controller[T]) SetPage(ctx context.Context, page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	page = c.clampPageLocked(page)
	if page == c.query.Page {
		return
	}
	c.query.Page = page
	c.startFetchLocked(ctx)
}

// SetPageSize changes the page size and fetches immediately from page 1.
func (c *Controller[T]) SetPageSize(ctx context.Context, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	c.query.PageSize = size
	c.query.Page = 1
	c.startFetchLocked(ctx)
}

// Refresh refetches the current query unchanged. Callers use it after
// create/update/delete mutations instead of patching the snapshot locally.
func (c *Controller[T]) Refresh(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.startFetchLocked(ctx)
}

// Close cancels any pending debounced search and blocks further setters.
// In-flight fetches drain but their results are discarded.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	c.closed = true
	if c.searchTimer != nil {
		c.searchTimer.Stop()
		c.searchTimer = nil
	}
	c.mu.Unlock()
	c.wg.Wait()
}

// clampPageLocked bounds a page number to [1, TotalPages] when a snapshot
// has established the range, else just to >= 1.
func (c *Controller[T]) clampPageLocked(page int) int {
	if page < 1 {
		return 1
	}
	if c.hasSnapshot && c.snapshot.TotalPages > 0 && page > c.snapshot.TotalPages {
		return c.snapshot.TotalPages
	}
	return page
}

// startFetchLocked issues an asynchronous fetch for the current query. The
// caller must hold c.mu.
func (c *Controller[T]) startFetchLocked(ctx context.Context) {
	c.seq++
	token := c.seq
	q := c.query.clone()
	c.inFlight++
	c.notifyLocked()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		snap, err := c.fetch(ctx, q)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.inFlight--
		if token != c.seq || c.closed {
			// A newer fetch superseded this one; its result no longer
			// describes the authoritative query.
			return
		}
		if err != nil {
			c.lastErr = err
			c.notifyLocked()
			return
		}
		c.snapshot = snap
		c.hasSnapshot = true
		c.lastErr = nil
		// The result may reveal the requested page no longer exists
		// (rows were deleted underneath us). Fall back to the last page.
		if snap.TotalPages > 0 && q.Page > snap.TotalPages {
			c.query.Page = snap.TotalPages
			c.startFetchLocked(ctx)
			return
		}
		c.notifyLocked()
	}()
}

func (c *Controller[T]) notifyLocked() {
	if c.onChange == nil {
		return
	}
	c.onChange(c.stateLocked(), c.snapshot, c.lastErr)
}
