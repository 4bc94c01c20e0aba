package types

// Wire shapes for the Google Places and Geocoding web services.

type AutocompleteResponse struct {
	Predictions []AutocompletePrediction `json:"predictions"`
	Status      string                   `json:"status"`
	ErrorMsg    string                   `json:"error_message,omitempty"`
}

type AutocompletePrediction struct {
	Description          string                `json:"description"`
	PlaceID              string                `json:"place_id"`
	Types                []string              `json:"types"`
	StructuredFormatting *StructuredFormatting `json:"structured_formatting,omitempty"`
}

type StructuredFormatting struct {
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

type PlaceDetailsResponse struct {
	Result   PlaceResult `json:"result"`
	Status   string      `json:"status"`
	ErrorMsg string      `json:"error_message,omitempty"`
}

type PlaceResult struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address"`
	Geometry         Geometry      `json:"geometry"`
	Types            []string      `json:"types"`
	Rating           *float64      `json:"rating,omitempty"`
	UserRatingsTotal *int          `json:"user_ratings_total,omitempty"`
	PriceLevel       *int          `json:"price_level,omitempty"`
	Website          string        `json:"website,omitempty"`
	PhoneNumber      string        `json:"formatted_phone_number,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
}

type Geometry struct {
	Location Location `json:"location"`
	Viewport Viewport `json:"viewport"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Viewport struct {
	Northeast Location `json:"northeast"`
	Southwest Location `json:"southwest"`
}

type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

type GeocodeResponse struct {
	Results  []GeocodeResult `json:"results"`
	Status   string          `json:"status"`
	ErrorMsg string          `json:"error_message,omitempty"`
}

type GeocodeResult struct {
	FormattedAddress string   `json:"formatted_address"`
	Geometry         Geometry `json:"geometry"`
	PlaceID          string   `json:"place_id"`
}
