package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helper-hub/api-go/types"
)

func TestServiceSuggestCatalogFirst(t *testing.T) {
	provider := harvardProvider()
	provider.predictions[0].PlaceID = "harvard-1"
	searcher := newTestSearcher(t, provider, "test-key")
	service := NewService(NewCatalog(), searcher)

	// "university" hits both the curated catalog and the live provider.
	suggestions, err := service.Suggest(context.Background(), "university")
	require.NoError(t, err)
	require.True(t, len(suggestions) >= 2)

	// Catalog matches lead in catalog order, live results follow.
	assert.Equal(t, "ubc-aquatic", suggestions[0].ID)
	assert.Equal(t, "harvard-1", suggestions[len(suggestions)-1].ID)
}

func TestServiceSuggestKeepsDuplicates(t *testing.T) {
	provider := harvardProvider()
	searcher := newTestSearcher(t, provider, "test-key")
	service := NewService(NewCatalog(), searcher)

	// No cross-source dedup: the same place from catalog and provider shows
	// up twice and the client decides.
	suggestions, err := service.Suggest(context.Background(), "harvard")
	require.NoError(t, err)
	assert.Len(t, suggestions, 1) // catalog has no harvard entry, just the live one
}

func TestServiceSuggestDegradesOnProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	searcher := NewSearcher(server.URL, func() string { return "test-key" }, NewCache())
	searcher.SetRetryDelay(time.Millisecond)
	service := NewService(NewCatalog(), searcher)

	suggestions, err := service.Suggest(context.Background(), "ubc")
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "ubc-main-mall", suggestions[0].ID)
}

func TestServiceSuggestEmptyEverywhere(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	searcher := NewSearcher(server.URL, func() string { return "test-key" }, NewCache())
	searcher.SetRetryDelay(time.Millisecond)
	service := NewService(NewCatalog(), searcher)

	suggestions, err := service.Suggest(context.Background(), "atlantis")
	require.NoError(t, err)
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}

func TestServiceSuggestBothSourcesMissIsEmptyNotNil(t *testing.T) {
	provider := &fakeProvider{results: map[string]types.PlaceResult{}}
	searcher := newTestSearcher(t, provider, "test-key")
	service := NewService(NewCatalog(), searcher)

	// The provider answers with zero predictions and the catalog has no
	// match; the merged result must still serialize as an empty list.
	suggestions, err := service.Suggest(context.Background(), "atlantis")
	require.NoError(t, err)
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}

func TestServiceHasCachedTracksSearchCache(t *testing.T) {
	provider := harvardProvider()
	searcher := newTestSearcher(t, provider, "test-key")
	service := NewService(NewCatalog(), searcher)

	assert.False(t, service.HasCached("harvard"))

	_, err := service.Suggest(context.Background(), "harvard")
	require.NoError(t, err)
	assert.True(t, service.HasCached("harvard"))
	assert.True(t, service.HasCached("  HARVARD  "))

	searcher.Cache().Clear()
	assert.False(t, service.HasCached("harvard"))
}
