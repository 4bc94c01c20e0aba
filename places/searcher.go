package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/helper-hub/api-go/types"
)

const (
	maxPredictions    = 8
	defaultRetryDelay = time.Second
)

// countryAllowList restricts autocomplete to the markets the app serves.
var countryAllowList = []string{
	"us", "ca", "kr", "jp", "gb", "au", "de", "fr", "it", "es",
	"nl", "se", "no", "dk", "fi", "ch", "at", "be", "ie", "nz",
	"sg", "hk", "tw", "my", "th", "ph", "id", "vn", "in", "cn",
}

// KeyProvider supplies the provider API key at call time. The key can become
// available after the process starts (deferred provisioning), which is why
// the searcher re-checks it instead of capturing it once.
type KeyProvider func() string

// Searcher wraps the Google Places autocomplete and details web services
// behind a stable signature, owning response caching and category
// normalization.
type Searcher struct {
	client     *http.Client
	baseURL    string
	key        KeyProvider
	cache      *Cache
	retryDelay time.Duration
}

// NewSearcher builds a searcher against the given API base URL (the real
// Google endpoint in production, an httptest server in tests).
func NewSearcher(baseURL string, key KeyProvider, cache *Cache) *Searcher {
	return &Searcher{
		client:     &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		key:        key,
		cache:      cache,
		retryDelay: defaultRetryDelay,
	}
}

// SetRetryDelay overrides the not-ready re-check delay. Tests use this to
// avoid real sleeps.
func (s *Searcher) SetRetryDelay(d time.Duration) {
	s.retryDelay = d
}

func (s *Searcher) Cache() *Cache {
	return s.cache
}

// apiKey returns the provider key, waiting once for late provisioning.
// Exactly one delayed re-check, then give up.
func (s *Searcher) apiKey(ctx context.Context) string {
	if key := s.key(); key != "" {
		return key
	}
	log.Printf("places: provider not configured, retrying once in %s", s.retryDelay)
	select {
	case <-time.After(s.retryDelay):
	case <-ctx.Done():
		return ""
	}
	return s.key()
}

// Search resolves a free-text query into classified place suggestions.
// Results come back in provider relevance order. A query that cannot be
// served (empty input, provider unavailable) yields an empty slice, not an
// error: search degrades, it does not fail the caller.
func (s *Searcher) Search(ctx context.Context, query string) ([]types.PlaceSuggestion, error) {
	if strings.TrimSpace(query) == "" {
		return []types.PlaceSuggestion{}, nil
	}

	cacheKey := NormalizeQuery(query)
	if cached, ok := s.cache.GetSuggestions(cacheKey); ok {
		return cached, nil
	}

	key := s.apiKey(ctx)
	if key == "" {
		log.Printf("places: giving up search for %q, provider still not configured", query)
		return []types.PlaceSuggestion{}, nil
	}

	predictions, err := s.autocomplete(ctx, key, query)
	if err != nil {
		return nil, err
	}
	if len(predictions) > maxPredictions {
		predictions = predictions[:maxPredictions]
	}

	suggestions := make([]types.PlaceSuggestion, 0, len(predictions))
	for _, prediction := range predictions {
		// Detail fetches run sequentially in prediction order so the final
		// list keeps provider relevance ordering. One bad prediction is
		// dropped, not fatal.
		details, err := s.Details(ctx, prediction.PlaceID)
		if err != nil {
			log.Printf("places: failed to get details for place %s: %v", prediction.PlaceID, err)
			continue
		}

		info := CategoryFromTypes(details.Types)
		description := ""
		if details.Website != "" {
			description = "Website: " + details.Website
		}
		suggestions = append(suggestions, types.PlaceSuggestion{
			ID:          details.PlaceID,
			Name:        details.Name,
			Address:     details.FormattedAddress,
			Lat:         details.Lat,
			Lng:         details.Lng,
			Category:    info.Category,
			Icon:        info.Icon,
			Color:       info.Color,
			IsPopular:   IsPopularPlace(details.Rating, details.UserRatingsTotal),
			Description: description,
			PlaceID:     details.PlaceID,
			Types:       details.Types,
		})
	}

	s.cache.SetSuggestions(cacheKey, suggestions)
	return suggestions, nil
}

func (s *Searcher) autocomplete(ctx context.Context, key, query string) ([]types.AutocompletePrediction, error) {
	countries := make([]string, len(countryAllowList))
	for i, c := range countryAllowList {
		countries[i] = "country:" + c
	}

	params := url.Values{}
	params.Set("input", query)
	params.Set("types", "establishment|geocode")
	params.Set("components", strings.Join(countries, "|"))
	params.Set("key", key)

	var resp types.AutocompleteResponse
	if err := s.get(ctx, "/maps/api/place/autocomplete/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("autocomplete status %s: %s", resp.Status, resp.ErrorMsg)
	}
	return resp.Predictions, nil
}

// Details fetches the full record for a place, reusing the details cache so
// a place recurring across queries is only fetched once.
func (s *Searcher) Details(ctx context.Context, placeID string) (*types.PlaceDetails, error) {
	if placeID == "" {
		return nil, fmt.Errorf("empty place id")
	}
	if cached, ok := s.cache.GetDetails(placeID); ok {
		return cached, nil
	}

	key := s.apiKey(ctx)
	if key == "" {
		return nil, fmt.Errorf("provider not configured")
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "place_id,name,formatted_address,geometry,types,rating,user_ratings_total,price_level,website,formatted_phone_number,opening_hours")
	params.Set("key", key)

	var resp types.PlaceDetailsResponse
	if err := s.get(ctx, "/maps/api/place/details/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("place details status %s: %s", resp.Status, resp.ErrorMsg)
	}

	details := &types.PlaceDetails{
		PlaceID:          resp.Result.PlaceID,
		Name:             resp.Result.Name,
		FormattedAddress: resp.Result.FormattedAddress,
		Lat:              resp.Result.Geometry.Location.Lat,
		Lng:              resp.Result.Geometry.Location.Lng,
		Types:            resp.Result.Types,
		Rating:           resp.Result.Rating,
		UserRatingsTotal: resp.Result.UserRatingsTotal,
		PriceLevel:       resp.Result.PriceLevel,
		Website:          resp.Result.Website,
		PhoneNumber:      resp.Result.PhoneNumber,
	}
	if resp.Result.OpeningHours != nil {
		details.OpeningHours = resp.Result.OpeningHours.WeekdayText
	}

	s.cache.SetDetails(details)
	return details, nil
}

// Geocode resolves an address string to coordinates.
func (s *Searcher) Geocode(ctx context.Context, address string) (*types.LocationSelection, error) {
	key := s.apiKey(ctx)
	if key == "" {
		return nil, fmt.Errorf("provider not configured")
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", key)

	return s.geocode(ctx, params)
}

// ReverseGeocode resolves coordinates to the nearest formatted address.
func (s *Searcher) ReverseGeocode(ctx context.Context, lat, lng float64) (*types.LocationSelection, error) {
	key := s.apiKey(ctx)
	if key == "" {
		return nil, fmt.Errorf("provider not configured")
	}

	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("key", key)

	return s.geocode(ctx, params)
}

func (s *Searcher) geocode(ctx context.Context, params url.Values) (*types.LocationSelection, error) {
	var resp types.GeocodeResponse
	if err := s.get(ctx, "/maps/api/geocode/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" || len(resp.Results) == 0 {
		return nil, fmt.Errorf("geocode status %s: %s", resp.Status, resp.ErrorMsg)
	}

	top := resp.Results[0]
	return &types.LocationSelection{
		Lat:     top.Geometry.Location.Lat,
		Lng:     top.Geometry.Location.Lng,
		Address: top.FormattedAddress,
	}, nil
}

func (s *Searcher) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s%s?%s", s.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
