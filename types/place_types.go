package types

// PlaceSuggestion is a named, geolocated point of interest surfaced by
// location search. Both the static catalog and the Google adapter produce
// this shape; callers cannot (and should not) tell the sources apart.
type PlaceSuggestion struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Category    string   `json:"category"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	IsPopular   bool     `json:"isPopular"`
	Description string   `json:"description,omitempty"`
	PlaceID     string   `json:"placeId"`
	Types       []string `json:"types,omitempty"`
}

// PlaceDetails is the full detail record fetched per place, cached by placeId.
type PlaceDetails struct {
	PlaceID          string   `json:"placeId"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formattedAddress"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	Types            []string `json:"types"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"userRatingsTotal,omitempty"`
	PriceLevel       *int     `json:"priceLevel,omitempty"`
	Website          string   `json:"website,omitempty"`
	PhoneNumber      string   `json:"phoneNumber,omitempty"`
	OpeningHours     []string `json:"openingHours,omitempty"`
}

// LocationSelection is the value handed to the rest of the application when
// the user commits to a place (post location field, profile location field).
type LocationSelection struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}
