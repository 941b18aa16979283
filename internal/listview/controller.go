// Package listview holds the fetch, paginate and reconcile contract shared by every
// list view. A Controller owns the state of one view; the newest issued load is the
// only one allowed to write it.
package listview

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/clock"
	"go.uber.org/zap"
)

// DefaultMessageTTL is how long a success message stays visible.
const DefaultMessageTTL = 5 * time.Second

// ErrSuperseded is returned by a load whose result was discarded because a newer
// load was issued while it was in flight.
var ErrSuperseded = errors.New("listview: load superseded")

// Fetcher loads one page.
type Fetcher[T any] func(ctx context.Context, page int) (Page[T], error)

// Mutation is a server write followed, on success, by a local patch.
type Mutation[T any] struct {
	// Write performs the request and returns the patch reconciling local items.
	Write   func(ctx context.Context) (Patch[T], error)
	Success string
	Failure string
}

// Config configures a Controller.
type Config struct {
	Name string
	// FailureMessage is shown when a load fails without a server-provided message.
	FailureMessage string
	MessageTTL     time.Duration
	Clock          clock.Clock
}

// Controller is a concurrent-safe list view state machine.
type Controller[T any] struct {
	name     string
	fetch    Fetcher[T]
	fallback string
	ttl      time.Duration
	clock    clock.Clock
	logger   *zap.Logger

	mu       sync.Mutex
	state    State[T]
	seq      uint64
	cancel   context.CancelFunc
	flash    clock.Timer
	flashSeq uint64
}

// New constructs a Controller over fetch.
func New[T any](cfg Config, fetch Fetcher[T], logger *zap.Logger) *Controller[T] {
	if cfg.MessageTTL <= 0 {
		cfg.MessageTTL = DefaultMessageTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.FailureMessage == "" {
		cfg.FailureMessage = "Failed to load data"
	}
	return &Controller[T]{
		name:     cfg.Name,
		fetch:    fetch,
		fallback: cfg.FailureMessage,
		ttl:      cfg.MessageTTL,
		clock:    cfg.Clock,
		logger:   logger.Named("listview").With(zap.String("view", cfg.Name)),
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Items = append([]T(nil), c.state.Items...)
	return s
}

// Load fetches page and, unless a newer load was issued meanwhile, writes the
// outcome to state. A failed load keeps the previously loaded items.
func (c *Controller[T]) Load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	fetchCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.state.Loading = true
	c.state.Error = ""
	c.mu.Unlock()

	res, err := c.fetch(fetchCtx, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		cancel()
		c.logger.Debug("discarding superseded load", zap.Int("page", page), zap.Uint64("seq", seq))
		return ErrSuperseded
	}
	c.cancel = nil
	cancel()
	c.state.Loading = false

	if err != nil {
		c.state.Error = apiclient.Message(err, c.fallback)
		c.logger.Warn("load failed", zap.Int("page", page), zap.Error(err))
		return err
	}

	c.state.Items = res.Items
	c.state.Pagination = res.Pagination
	if c.state.Pagination.Page == 0 {
		c.state.Pagination.Page = page
	}
	return nil
}

// Reload fetches the current page again.
func (c *Controller[T]) Reload(ctx context.Context) error {
	c.mu.Lock()
	page := c.state.Pagination.Page
	c.mu.Unlock()
	return c.Load(ctx, page)
}

// Next loads the following page. At the last page it does nothing and reports false.
func (c *Controller[T]) Next(ctx context.Context) (bool, error) {
	c.mu.Lock()
	p := c.state.Pagination
	c.mu.Unlock()
	if !p.HasNext() {
		return false, nil
	}
	return true, c.Load(ctx, p.Page+1)
}

// Prev loads the preceding page. At page 1 it does nothing and reports false.
func (c *Controller[T]) Prev(ctx context.Context) (bool, error) {
	c.mu.Lock()
	p := c.state.Pagination
	c.mu.Unlock()
	if !p.HasPrev() {
		return false, nil
	}
	return true, c.Load(ctx, p.Page-1)
}

// GoTo loads page if it is within bounds.
func (c *Controller[T]) GoTo(ctx context.Context, page int) (bool, error) {
	c.mu.Lock()
	p := c.state.Pagination
	c.mu.Unlock()
	if !p.Contains(page) {
		return false, nil
	}
	return true, c.Load(ctx, page)
}

// Mutate performs m.Write and, once the server confirmed it, applies the returned
// patch and shows m.Success. Applying a patch supersedes any load still in flight.
// On failure local items are left as they were.
func (c *Controller[T]) Mutate(ctx context.Context, m Mutation[T]) error {
	patch, err := m.Write(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		fallback := m.Failure
		if fallback == "" {
			fallback = c.fallback
		}
		c.state.Error = apiclient.Message(err, fallback)
		c.logger.Warn("mutation failed", zap.Error(err))
		return err
	}

	c.state.Error = ""
	if patch != nil {
		// A load issued before the write would overwrite the patched items.
		c.seq++
		if c.cancel != nil {
			c.cancel()
			c.cancel = nil
		}
		c.state.Loading = false

		before := len(c.state.Items)
		items := patch(append([]T(nil), c.state.Items...))
		c.state.Items, c.state.Pagination = reconcile(items, c.state.Pagination, len(items)-before)
	}
	if m.Success != "" {
		c.showLocked(m.Success)
	}
	return nil
}

// Dismiss clears the error and success message.
func (c *Controller[T]) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Error = ""
	c.state.Message = ""
	c.stopFlashLocked()
}

// Close cancels an in-flight load and pending timers. The state stays readable.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state.Loading = false
	c.stopFlashLocked()
}

func (c *Controller[T]) showLocked(msg string) {
	c.stopFlashLocked()
	c.flashSeq++
	seq := c.flashSeq
	c.state.Message = msg
	c.flash = c.clock.AfterFunc(c.ttl, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.flashSeq == seq {
			c.state.Message = ""
			c.flash = nil
		}
	})
}

func (c *Controller[T]) stopFlashLocked() {
	if c.flash != nil {
		c.flash.Stop()
		c.flash = nil
	}
}
