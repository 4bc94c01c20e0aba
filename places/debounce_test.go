package places

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helper-hub/api-go/types"
)

type fakeSuggester struct {
	calls   int64
	queries []string
}

func (f *fakeSuggester) Suggest(ctx context.Context, query string) ([]types.PlaceSuggestion, error) {
	atomic.AddInt64(&f.calls, 1)
	f.queries = append(f.queries, query)
	return []types.PlaceSuggestion{{ID: "result-for-" + query, Name: query}}, nil
}

func TestDebouncerShortQueryReturnsImmediately(t *testing.T) {
	suggester := &fakeSuggester{}
	debouncer := NewDebouncer(suggester)
	debouncer.SetDelay(time.Hour) // would hang if the floor check did not short-circuit

	// The floor applies to the trimmed length, so whitespace padding around a
	// single character does not sneak past it.
	for _, query := range []string{"a", " a ", "  ", "\ta\n"} {
		start := time.Now()
		suggestions, err := debouncer.Search(context.Background(), query)
		require.NoError(t, err)

		assert.Empty(t, suggestions, "query %q", query)
		assert.Less(t, time.Since(start), time.Second)
	}
	assert.EqualValues(t, 0, suggester.calls)
}

func TestDebouncerCoalescesRapidQueries(t *testing.T) {
	suggester := &fakeSuggester{}
	debouncer := NewDebouncer(suggester)
	debouncer.SetDelay(50 * time.Millisecond)

	firstErr := make(chan error, 1)
	go func() {
		_, err := debouncer.Search(context.Background(), "harv")
		firstErr <- err
	}()

	// Let the first call arm its timer, then replace it.
	time.Sleep(10 * time.Millisecond)
	suggestions, err := debouncer.Search(context.Background(), "harvard")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "result-for-harvard", suggestions[0].ID)

	assert.ErrorIs(t, <-firstErr, ErrSuperseded)
	assert.EqualValues(t, 1, suggester.calls)
	assert.Equal(t, "harvard", debouncer.LastQuery())
}

func TestDebouncerRepeatQueryAnswersSynchronously(t *testing.T) {
	suggester := &fakeSuggester{}
	debouncer := NewDebouncer(suggester)
	debouncer.SetDelay(30 * time.Millisecond)

	_, err := debouncer.Search(context.Background(), "harvard")
	require.NoError(t, err)
	require.EqualValues(t, 1, suggester.calls)

	// Same query again skips the debounce window entirely.
	start := time.Now()
	suggestions, err := debouncer.Search(context.Background(), "harvard")
	require.NoError(t, err)
	assert.Len(t, suggestions, 1)
	assert.Less(t, time.Since(start), 30*time.Millisecond)
	assert.EqualValues(t, 2, suggester.calls)
}

type probedSuggester struct {
	fakeSuggester
	cached bool
}

func (p *probedSuggester) HasCached(query string) bool { return p.cached }

func TestDebouncerRepeatQueryWithoutCacheWaitsAgain(t *testing.T) {
	suggester := &probedSuggester{}
	debouncer := NewDebouncer(suggester)
	debouncer.SetDelay(40 * time.Millisecond)

	_, err := debouncer.Search(context.Background(), "harvard")
	require.NoError(t, err)
	require.EqualValues(t, 1, suggester.calls)

	// No cache entry survived the first call, so the repeat goes through the
	// full debounce window instead of firing synchronously.
	start := time.Now()
	_, err = debouncer.Search(context.Background(), "harvard")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	assert.EqualValues(t, 2, suggester.calls)
}

func TestDebouncerRepeatQueryWithCacheSkipsWindow(t *testing.T) {
	suggester := &probedSuggester{cached: true}
	debouncer := NewDebouncer(suggester)
	debouncer.SetDelay(30 * time.Millisecond)

	_, err := debouncer.Search(context.Background(), "harvard")
	require.NoError(t, err)

	start := time.Now()
	_, err = debouncer.Search(context.Background(), "harvard")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 30*time.Millisecond)
	assert.EqualValues(t, 2, suggester.calls)
}

func TestDebouncerShortQueryCancelsPending(t *testing.T) {
	suggester := &fakeSuggester{}
	debouncer := NewDebouncer(suggester)
	debouncer.SetDelay(50 * time.Millisecond)

	firstErr := make(chan error, 1)
	go func() {
		_, err := debouncer.Search(context.Background(), "harv")
		firstErr <- err
	}()

	time.Sleep(10 * time.Millisecond)
	_, err := debouncer.Search(context.Background(), "h")
	require.NoError(t, err)

	assert.ErrorIs(t, <-firstErr, ErrSuperseded)
	assert.EqualValues(t, 0, suggester.calls)
}

func TestDebouncerContextCancellation(t *testing.T) {
	suggester := &fakeSuggester{}
	debouncer := NewDebouncer(suggester)
	debouncer.SetDelay(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := debouncer.Search(ctx, "harvard")
		errCh <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled search never returned")
	}
	assert.EqualValues(t, 0, suggester.calls)
}
