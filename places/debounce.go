package places

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/helper-hub/api-go/types"
)

const (
	defaultDebounceDelay = 300 * time.Millisecond
	minQueryLength       = 2
)

// ErrSuperseded is returned to a debounced caller whose query was replaced
// by a newer one before its timer fired.
var ErrSuperseded = errors.New("query superseded by a newer one")

// Suggester is anything that can resolve a query to suggestions. The
// debouncer sits in front of one of these.
type Suggester interface {
	Suggest(ctx context.Context, query string) ([]types.PlaceSuggestion, error)
}

// cacheProber is optionally implemented by a Suggester that can tell whether
// a query would be served from cache. The repeat-query bypass only skips the
// debounce window when a cached answer exists; without one the repeat waits
// like any other query.
type cacheProber interface {
	HasCached(query string) bool
}

// Debouncer coalesces rapid-fire queries from one input stream (one typing
// user) so only the final query in a burst reaches the backend. Each new
// query cancels the pending timer and arms a fresh one; callers whose query
// got replaced receive ErrSuperseded.
type Debouncer struct {
	suggester Suggester
	delay     time.Duration

	mu        sync.Mutex
	pending   *pendingCall
	lastQuery string
}

type pendingCall struct {
	timer      *time.Timer
	superseded chan struct{}
}

func NewDebouncer(suggester Suggester) *Debouncer {
	return &Debouncer{
		suggester: suggester,
		delay:     defaultDebounceDelay,
	}
}

// SetDelay overrides the debounce window. Tests shorten it.
func (d *Debouncer) SetDelay(delay time.Duration) {
	d.delay = delay
}

// LastQuery reports the most recent query that actually fired.
func (d *Debouncer) LastQuery() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastQuery
}

// Search debounces the query. Three outcomes:
//   - queries whose trimmed length is under the floor resolve immediately to
//     an empty result, cancelling anything pending,
//   - a repeat of the last fired query with a cached answer responds
//     synchronously, skipping the debounce window,
//   - otherwise the caller blocks for the debounce window and either runs
//     the search or gets ErrSuperseded when a newer query lands first.
func (d *Debouncer) Search(ctx context.Context, query string) ([]types.PlaceSuggestion, error) {
	if len(strings.TrimSpace(query)) < minQueryLength {
		d.cancelPending()
		return []types.PlaceSuggestion{}, nil
	}

	d.mu.Lock()
	if query == d.lastQuery && d.hasCached(query) {
		d.mu.Unlock()
		return d.suggester.Suggest(ctx, query)
	}

	if d.pending != nil {
		d.pending.timer.Stop()
		close(d.pending.superseded)
	}
	call := &pendingCall{
		timer:      time.NewTimer(d.delay),
		superseded: make(chan struct{}),
	}
	d.pending = call
	d.mu.Unlock()

	select {
	case <-call.timer.C:
	case <-call.superseded:
		return nil, ErrSuperseded
	case <-ctx.Done():
		d.mu.Lock()
		if d.pending == call {
			d.pending = nil
			call.timer.Stop()
		}
		d.mu.Unlock()
		return nil, ctx.Err()
	}

	d.mu.Lock()
	if d.pending == call {
		d.pending = nil
	}
	d.lastQuery = query
	d.mu.Unlock()

	return d.suggester.Suggest(ctx, query)
}

func (d *Debouncer) hasCached(query string) bool {
	p, ok := d.suggester.(cacheProber)
	if !ok {
		return true
	}
	return p.HasCached(query)
}

func (d *Debouncer) cancelPending() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.timer.Stop()
		close(d.pending.superseded)
		d.pending = nil
	}
}
