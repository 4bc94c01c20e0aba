package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helper-hub/api-go/types"
)

type fakeProvider struct {
	autocompleteCalls int64
	detailsCalls      int64

	predictions []types.AutocompletePrediction
	results     map[string]types.PlaceResult
	failDetails map[string]bool
}

func (f *fakeProvider) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/maps/api/place/autocomplete/json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.autocompleteCalls, 1)
		json.NewEncoder(w).Encode(types.AutocompleteResponse{
			Predictions: f.predictions,
			Status:      "OK",
		})
	})
	mux.HandleFunc("/maps/api/place/details/json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.detailsCalls, 1)
		placeID := r.URL.Query().Get("place_id")
		if f.failDetails[placeID] {
			json.NewEncoder(w).Encode(types.PlaceDetailsResponse{Status: "NOT_FOUND"})
			return
		}
		json.NewEncoder(w).Encode(types.PlaceDetailsResponse{
			Result: f.results[placeID],
			Status: "OK",
		})
	})
	return mux
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

func harvardProvider() *fakeProvider {
	return &fakeProvider{
		predictions: []types.AutocompletePrediction{
			{Description: "Harvard University, Cambridge, MA", PlaceID: "harvard-1"},
		},
		results: map[string]types.PlaceResult{
			"harvard-1": {
				PlaceID:          "harvard-1",
				Name:             "Harvard University",
				FormattedAddress: "Cambridge, MA 02138, USA",
				Geometry:         types.Geometry{Location: types.Location{Lat: 42.3770, Lng: -71.1167}},
				Types:            []string{"university", "point_of_interest"},
				Rating:           ptrFloat(4.5),
				UserRatingsTotal: ptrInt(1200),
				Website:          "https://www.harvard.edu/",
			},
		},
	}
}

func newTestSearcher(t *testing.T, provider *fakeProvider, key string) *Searcher {
	t.Helper()
	server := httptest.NewServer(provider.handler())
	t.Cleanup(server.Close)

	searcher := NewSearcher(server.URL, func() string { return key }, NewCache())
	searcher.SetRetryDelay(time.Millisecond)
	return searcher
}

func TestSearchClassifiesResults(t *testing.T) {
	provider := harvardProvider()
	searcher := newTestSearcher(t, provider, "test-key")

	suggestions, err := searcher.Search(context.Background(), "  Harvard  ")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	got := suggestions[0]
	assert.Equal(t, "harvard-1", got.PlaceID)
	assert.Equal(t, "Harvard University", got.Name)
	assert.Equal(t, "Education", got.Category)
	assert.Equal(t, "🎓", got.Icon)
	assert.True(t, got.IsPopular)
	assert.Equal(t, "Website: https://www.harvard.edu/", got.Description)
	assert.InDelta(t, 42.3770, got.Lat, 0.0001)
}

func TestSearchCachesByNormalizedQuery(t *testing.T) {
	provider := harvardProvider()
	searcher := newTestSearcher(t, provider, "test-key")

	_, err := searcher.Search(context.Background(), "  Harvard  ")
	require.NoError(t, err)
	require.EqualValues(t, 1, provider.autocompleteCalls)

	// Different casing and whitespace, same cache key.
	again, err := searcher.Search(context.Background(), "HARVARD")
	require.NoError(t, err)
	assert.Len(t, again, 1)
	assert.EqualValues(t, 1, provider.autocompleteCalls)
	assert.EqualValues(t, 1, provider.detailsCalls)
}

func TestSearchClearCacheRefetches(t *testing.T) {
	provider := harvardProvider()
	searcher := newTestSearcher(t, provider, "test-key")

	_, err := searcher.Search(context.Background(), "harvard")
	require.NoError(t, err)

	searcher.Cache().Clear()

	_, err = searcher.Search(context.Background(), "harvard")
	require.NoError(t, err)
	assert.EqualValues(t, 2, provider.autocompleteCalls)
	assert.EqualValues(t, 2, provider.detailsCalls)
}

func TestSearchEmptyQueryShortCircuits(t *testing.T) {
	provider := harvardProvider()
	searcher := newTestSearcher(t, provider, "test-key")

	suggestions, err := searcher.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
	assert.EqualValues(t, 0, provider.autocompleteCalls)
}

func TestSearchDropsFailedPrediction(t *testing.T) {
	provider := harvardProvider()
	provider.predictions = append(provider.predictions, types.AutocompletePrediction{
		Description: "Harvard Square", PlaceID: "harvard-2",
	})
	provider.failDetails = map[string]bool{"harvard-2": true}
	searcher := newTestSearcher(t, provider, "test-key")

	suggestions, err := searcher.Search(context.Background(), "harvard")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "harvard-1", suggestions[0].PlaceID)
	assert.EqualValues(t, 2, provider.detailsCalls)
}

func TestSearchCapsPredictions(t *testing.T) {
	provider := &fakeProvider{results: map[string]types.PlaceResult{}}
	for i := 0; i < 12; i++ {
		id := string(rune('a' + i))
		provider.predictions = append(provider.predictions, types.AutocompletePrediction{PlaceID: id})
		provider.results[id] = types.PlaceResult{
			PlaceID:  id,
			Name:     "Place " + id,
			Geometry: types.Geometry{Location: types.Location{Lat: 1, Lng: 2}},
		}
	}
	searcher := newTestSearcher(t, provider, "test-key")

	suggestions, err := searcher.Search(context.Background(), "place")
	require.NoError(t, err)
	assert.Len(t, suggestions, maxPredictions)
	assert.EqualValues(t, maxPredictions, provider.detailsCalls)
}

func TestSearchWaitsOnceForLateKey(t *testing.T) {
	provider := harvardProvider()
	server := httptest.NewServer(provider.handler())
	t.Cleanup(server.Close)

	var keyChecks int64
	searcher := NewSearcher(server.URL, func() string {
		if atomic.AddInt64(&keyChecks, 1) == 1 {
			return ""
		}
		return "test-key"
	}, NewCache())
	searcher.SetRetryDelay(time.Millisecond)

	// Key provisioning lands between the first check and the re-check, so the
	// search succeeds instead of degrading.
	suggestions, err := searcher.Search(context.Background(), "harvard")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.EqualValues(t, 1, provider.autocompleteCalls)

	// One empty check plus exactly one delayed re-check inside Search; the
	// details fetch then sees the key on its first look.
	assert.EqualValues(t, 3, keyChecks)
}

func TestSearchWithoutAPIKeyDegrades(t *testing.T) {
	provider := harvardProvider()
	searcher := newTestSearcher(t, provider, "")

	suggestions, err := searcher.Search(context.Background(), "harvard")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
	assert.EqualValues(t, 0, provider.autocompleteCalls)
}

func TestDetailsReusesCacheAcrossQueries(t *testing.T) {
	provider := harvardProvider()
	searcher := newTestSearcher(t, provider, "test-key")

	_, err := searcher.Search(context.Background(), "harvard")
	require.NoError(t, err)

	details, err := searcher.Details(context.Background(), "harvard-1")
	require.NoError(t, err)
	assert.Equal(t, "Harvard University", details.Name)
	// Served from the details cache, no second fetch.
	assert.EqualValues(t, 1, provider.detailsCalls)
}

func TestCacheStats(t *testing.T) {
	provider := harvardProvider()
	searcher := newTestSearcher(t, provider, "test-key")

	_, err := searcher.Search(context.Background(), "harvard")
	require.NoError(t, err)

	stats := searcher.Cache().Stats()
	assert.Equal(t, 1, stats.SearchEntries)
	assert.Equal(t, 1, stats.DetailEntries)

	searcher.Cache().Clear()
	stats = searcher.Cache().Stats()
	assert.Equal(t, 0, stats.SearchEntries)
	assert.Equal(t, 0, stats.DetailEntries)
}
