package config

import "os"

const googleMapsBaseURL = "https://maps.googleapis.com"

type PlacesConfig struct {
	BaseURL string
}

func GetPlacesConfig() *PlacesConfig {
	return &PlacesConfig{BaseURL: googleMapsBaseURL}
}

// APIKey reads the key on every call. The searcher re-polls it so a key
// provisioned after startup still takes effect.
func (c *PlacesConfig) APIKey() string {
	return os.Getenv("GOOGLE_MAPS_API_KEY")
}

func (c *PlacesConfig) Configured() bool {
	return c.APIKey() != ""
}
