// Package poller runs a cancellable periodic fetch that keeps the last good value.
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/energypulse/internal/clock"
	"go.uber.org/zap"
)

// DefaultInterval is the refresh period of the weather widget.
const DefaultInterval = 5 * time.Minute

// ErrInvalid marks a fetched value rejected by the validity check.
var ErrInvalid = errors.New("poller: invalid value")

// Config configures a Poller.
type Config[T any] struct {
	Interval time.Duration
	// Valid rejects values that must not replace the last good one. Nil accepts all.
	Valid func(T) bool
	// OnUpdate is called after every poll with the current snapshot.
	OnUpdate func(Snapshot[T])
}

// Snapshot is the value a consumer renders.
type Snapshot[T any] struct {
	Value     T
	Has       bool
	UpdatedAt time.Time
	// LastErr is the error of the most recent poll, nil when it succeeded.
	LastErr error
}

// Poller refreshes a value on a fixed interval.
type Poller[T any] struct {
	fetch    func(ctx context.Context) (T, error)
	valid    func(T) bool
	onUpdate func(Snapshot[T])
	interval time.Duration
	metrics  Metrics
	logger   *zap.Logger
	sleep    func(context.Context, time.Duration) error
	now      func() time.Time

	mu   sync.RWMutex
	snap Snapshot[T]
}

// New constructs a Poller.
func New[T any](cfg Config[T], fetch func(ctx context.Context) (T, error), metrics Metrics, logger *zap.Logger) (*Poller[T], error) {
	if fetch == nil {
		return nil, errors.New("poller fetch is required")
	}
	if metrics == nil {
		return nil, errors.New("poller metrics is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Poller[T]{
		fetch:    fetch,
		valid:    cfg.Valid,
		onUpdate: cfg.OnUpdate,
		interval: cfg.Interval,
		metrics:  metrics,
		logger:   logger.Named("poller"),
		sleep:    clock.SleepWithContext,
		now:      time.Now,
	}, nil
}

// Run polls immediately and then once per interval until ctx is cancelled.
// Failed polls are logged and never stop the loop.
func (p *Poller[T]) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := p.Poll(ctx); err != nil && ctx.Err() == nil {
			p.logger.Warn("poll failed, keeping last value", zap.Error(err), zap.Duration("next_in", p.interval))
		}
		if err := p.sleep(ctx, p.interval); err != nil {
			return err
		}
	}
}

// Poll performs one fetch. The stored value changes only when the fetch succeeds
// and the value is valid.
func (p *Poller[T]) Poll(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		p.metrics.ObservePoll(err, started)
	}()

	v, err := p.fetch(ctx)
	if err == nil && p.valid != nil && !p.valid(v) {
		err = fmt.Errorf("%w: %+v", ErrInvalid, v)
	}

	p.mu.Lock()
	if err == nil {
		p.snap.Value = v
		p.snap.Has = true
		p.snap.UpdatedAt = p.now()
	}
	p.snap.LastErr = err
	snap := p.snap
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(snap)
	}
	return err
}

// Current returns the last good value and the outcome of the latest poll.
func (p *Poller[T]) Current() Snapshot[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}
