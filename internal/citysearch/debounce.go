package citysearch

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/goodnatureofminers/energypulse/internal/clock"
	"go.uber.org/zap"
)

const (
	// DefaultDelay is the quiet period after the last keystroke before searching.
	DefaultDelay = 600 * time.Millisecond
	// MinQueryLength is the shortest query that triggers a search.
	MinQueryLength = 3
)

// State is what the autocomplete renders.
type State struct {
	Query     string
	Results   []Place
	Searching bool
	Err       error
}

// Autocomplete debounces keystrokes into searches. Only the latest input may
// write results; typing again cancels both the pending timer and any search
// already in flight.
type Autocomplete struct {
	searcher Searcher
	clock    clock.Clock
	delay    time.Duration
	onChange func(State)
	logger   *zap.Logger

	mu     sync.Mutex
	state  State
	seq    uint64
	timer  clock.Timer
	cancel context.CancelFunc
}

// NewAutocomplete constructs an Autocomplete. onChange may be nil.
func NewAutocomplete(searcher Searcher, c clock.Clock, onChange func(State), logger *zap.Logger) *Autocomplete {
	if c == nil {
		c = clock.Real()
	}
	return &Autocomplete{
		searcher: searcher,
		clock:    c,
		delay:    DefaultDelay,
		onChange: onChange,
		logger:   logger.Named("autocomplete"),
	}
}

// Input records the current text of the search box.
func (a *Autocomplete) Input(ctx context.Context, text string) {
	a.mu.Lock()
	a.seq++
	seq := a.seq
	a.stopLocked()
	a.state.Query = text

	if utf8.RuneCountInString(text) < MinQueryLength {
		a.state.Results = nil
		a.state.Searching = false
		a.state.Err = nil
		snap := a.snapshotLocked()
		a.mu.Unlock()
		a.notify(snap)
		return
	}

	searchCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.state.Searching = true
	a.timer = a.clock.AfterFunc(a.delay, func() {
		a.search(searchCtx, seq, text)
	})
	snap := a.snapshotLocked()
	a.mu.Unlock()
	a.notify(snap)
}

// Select picks a suggestion, clears the list and returns the city and region to
// put in the form.
func (a *Autocomplete) Select(p Place) (city, region string) {
	city, region = p.City(), p.Region()

	a.mu.Lock()
	a.seq++
	a.stopLocked()
	a.state = State{Query: city}
	snap := a.snapshotLocked()
	a.mu.Unlock()
	a.notify(snap)
	return city, region
}

// State returns a copy of the current state.
func (a *Autocomplete) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// Close cancels pending and in-flight searches.
func (a *Autocomplete) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	a.stopLocked()
	a.state.Searching = false
}

func (a *Autocomplete) search(ctx context.Context, seq uint64, query string) {
	places, err := a.searcher.Search(ctx, query)

	a.mu.Lock()
	if seq != a.seq {
		a.mu.Unlock()
		return
	}
	a.state.Searching = false
	if err != nil {
		a.logger.Warn("city search failed", zap.String("query", query), zap.Error(err))
		a.state.Err = err
	} else {
		a.state.Results = places
		a.state.Err = nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	snap := a.snapshotLocked()
	a.mu.Unlock()
	a.notify(snap)
}

func (a *Autocomplete) stopLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Autocomplete) snapshotLocked() State {
	s := a.state
	s.Results = append([]Place(nil), a.state.Results...)
	return s
}

func (a *Autocomplete) notify(s State) {
	if a.onChange != nil {
		a.onChange(s)
	}
}
