package places

import (
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/helper-hub/api-go/types"
)

// Cache holds search results and place details so repeated queries and
// recurring places skip the provider. Entries never expire during a session;
// Clear is the only invalidation.
type Cache struct {
	suggestions *gocache.Cache
	details     *gocache.Cache
}

type CacheStats struct {
	SearchEntries int `json:"searchCache"`
	DetailEntries int `json:"detailsCache"`
}

func NewCache() *Cache {
	return &Cache{
		suggestions: gocache.New(gocache.NoExpiration, 0),
		details:     gocache.New(gocache.NoExpiration, 0),
	}
}

// NormalizeQuery produces the cache key for a search query.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func (c *Cache) GetSuggestions(key string) ([]types.PlaceSuggestion, bool) {
	v, found := c.suggestions.Get(key)
	if !found {
		return nil, false
	}
	suggestions, ok := v.([]types.PlaceSuggestion)
	return suggestions, ok
}

func (c *Cache) SetSuggestions(key string, suggestions []types.PlaceSuggestion) {
	c.suggestions.Set(key, suggestions, gocache.NoExpiration)
}

func (c *Cache) GetDetails(placeID string) (*types.PlaceDetails, bool) {
	v, found := c.details.Get(placeID)
	if !found {
		return nil, false
	}
	details, ok := v.(*types.PlaceDetails)
	return details, ok
}

func (c *Cache) SetDetails(details *types.PlaceDetails) {
	c.details.Set(details.PlaceID, details, gocache.NoExpiration)
}

func (c *Cache) Clear() {
	c.suggestions.Flush()
	c.details.Flush()
}

func (c *Cache) Stats() CacheStats {
	return CacheStats{
		SearchEntries: c.suggestions.ItemCount(),
		DetailEntries: c.details.ItemCount(),
	}
}
