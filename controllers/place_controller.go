package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/helper-hub/api-go/config"
	"github.com/helper-hub/api-go/places"
)

// PlaceController exposes the place search pipeline over HTTP. Each search
// session gets its own debouncer so one user's typing never throttles
// another's.
type PlaceController struct {
	Config   *config.PlacesConfig
	Service  *places.Service
	Searcher *places.Searcher

	mu         sync.Mutex
	debouncers map[string]*places.Debouncer
}

func NewPlaceController(cfg *config.PlacesConfig) *PlaceController {
	cache := places.NewCache()
	searcher := places.NewSearcher(cfg.BaseURL, cfg.APIKey, cache)
	service := places.NewService(places.NewCatalog(), searcher)

	return &PlaceController{
		Config:     cfg,
		Service:    service,
		Searcher:   searcher,
		debouncers: make(map[string]*places.Debouncer),
	}
}

func (pc *PlaceController) debouncerFor(session string) *places.Debouncer {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	d, ok := pc.debouncers[session]
	if !ok {
		d = places.NewDebouncer(pc.Service)
		pc.debouncers[session] = d
	}
	return d
}

// Suggest godoc
// @Summary Debounced place suggestions for a search session
// @Tags places
// @Produce json
// @Param q query string true "Free-text query"
// @Param session query string false "Search session key, defaults to client IP"
// @Router /places/suggest [get]
func (pc *PlaceController) Suggest(c *gin.Context) {
	query := c.Query("q")
	session := c.Query("session")
	if session == "" {
		session = c.ClientIP()
	}

	suggestions, err := pc.debouncerFor(session).Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, places.ErrSuperseded) {
			c.JSON(http.StatusOK, gin.H{"success": true, "superseded": true, "suggestions": []any{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching suggestions", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "suggestions": suggestions})
}

// GetPlaceDetails godoc
// @Summary Full details for a single place
// @Tags places
// @Produce json
// @Param placeId path string true "Provider place ID"
// @Router /places/{placeId} [get]
func (pc *PlaceController) GetPlaceDetails(c *gin.Context) {
	if !pc.Config.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Place search is not configured", "success": false})
		return
	}

	details, err := pc.Searcher.Details(c.Request.Context(), c.Param("placeId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Place not found", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "place": details})
}

// Geocode godoc
// @Summary Resolve an address to coordinates
// @Tags places
// @Produce json
// @Param address query string true "Address to resolve"
// @Router /places/geocode [get]
func (pc *PlaceController) Geocode(c *gin.Context) {
	if !pc.Config.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Place search is not configured", "success": false})
		return
	}

	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required", "success": false})
		return
	}

	location, err := pc.Searcher.Geocode(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address could not be resolved", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "location": location})
}

// ReverseGeocode godoc
// @Summary Resolve coordinates to the nearest address
// @Tags places
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Router /places/reverse-geocode [get]
func (pc *PlaceController) ReverseGeocode(c *gin.Context) {
	if !pc.Config.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Place search is not configured", "success": false})
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required", "success": false})
		return
	}

	location, err := pc.Searcher.ReverseGeocode(c.Request.Context(), lat, lng)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location could not be resolved", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "location": location})
}

// ClearCache godoc
// @Summary Drop all cached search results and place details
// @Tags places
// @Produce json
// @Router /places/cache/clear [post]
func (pc *PlaceController) ClearCache(c *gin.Context) {
	pc.Searcher.Cache().Clear()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Places cache cleared"})
}

// CacheStats godoc
// @Summary Entry counts for the places caches
// @Tags places
// @Produce json
// @Router /places/cache/stats [get]
func (pc *PlaceController) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": pc.Searcher.Cache().Stats()})
}
