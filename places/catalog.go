package places

import (
	"strings"

	"github.com/helper-hub/api-go/types"
)

// Catalog is a hand-curated set of popular locations used for instant,
// offline suggestions alongside live search.
type Catalog struct {
	entries []types.PlaceSuggestion
}

func NewCatalog() *Catalog {
	return &Catalog{entries: popularLocations}
}

// Lookup returns every catalog entry whose name, address, category or
// description contains the query, case-insensitively, in catalog order.
// Empty queries and misses return nil; truncation is the caller's concern.
func (c *Catalog) Lookup(query string) []types.PlaceSuggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []types.PlaceSuggestion
	for _, entry := range c.entries {
		if strings.Contains(strings.ToLower(entry.Name), q) ||
			strings.Contains(strings.ToLower(entry.Address), q) ||
			strings.Contains(strings.ToLower(entry.Category), q) ||
			strings.Contains(strings.ToLower(entry.Description), q) {
			matches = append(matches, entry)
		}
	}
	return matches
}

func (c *Catalog) Size() int {
	return len(c.entries)
}

var popularLocations = []types.PlaceSuggestion{
	// UBC
	{
		ID:          "ubc-main-mall",
		Name:        "UBC (1958 Main Mall)",
		Address:     "1958 Main Mall, Vancouver, BC V6T 1Z2",
		Lat:         49.2606,
		Lng:         -123.246,
		Category:    "Education",
		Icon:        "🎓",
		Color:       "#3B82F6",
		IsPopular:   true,
		Description: "Main pedestrian thoroughfare through UBC campus",
	},
	{
		ID:          "ubc-exchange",
		Name:        "UBC (Exchange Residence)",
		Address:     "5959 Student Union Blvd, Vancouver, BC V6T 1K2",
		Lat:         49.258,
		Lng:         -123.242,
		Category:    "Residence",
		Icon:        "🏠",
		Color:       "#10B981",
		IsPopular:   true,
		Description: "Student residence near Student Union Building",
	},
	{
		ID:          "ubc-sub",
		Name:        "UBC (Student Union Building)",
		Address:     "6138 Student Union Blvd, Vancouver, BC V6T 1Z1",
		Lat:         49.2575,
		Lng:         -123.2415,
		Category:    "Dining",
		Icon:        "🍽️",
		Color:       "#F59E0B",
		IsPopular:   true,
		Description: "Student Union Building with food court",
	},
	{
		ID:          "ubc-aquatic",
		Name:        "UBC (Aquatic Centre)",
		Address:     "6121 University Blvd, Vancouver, BC V6T 1Z1",
		Lat:         49.257,
		Lng:         -123.241,
		Category:    "Recreation",
		Icon:        "🏊",
		Color:       "#8B5CF6",
		IsPopular:   true,
		Description: "Swimming pool and aquatic facilities",
	},

	// Downtown Vancouver
	{
		ID:          "downtown-vancouver",
		Name:        "Downtown Vancouver",
		Address:     "Downtown Vancouver, BC, Canada",
		Lat:         49.2827,
		Lng:         -123.1207,
		Category:    "Business",
		Icon:        "🏢",
		Color:       "#374151",
		IsPopular:   true,
		Description: "Central business and entertainment district",
	},
	{
		ID:          "robson-street",
		Name:        "Robson Street",
		Address:     "Robson St, Vancouver, BC, Canada",
		Lat:         49.2838,
		Lng:         -123.1212,
		Category:    "Shopping",
		Icon:        "🛍️",
		Color:       "#EF4444",
		IsPopular:   true,
		Description: "Famous shopping and dining street",
	},
	{
		ID:          "gastown",
		Name:        "Gastown",
		Address:     "Gastown, Vancouver, BC, Canada",
		Lat:         49.2827,
		Lng:         -123.1087,
		Category:    "Landmark",
		Icon:        "🏛️",
		Color:       "#DC2626",
		IsPopular:   true,
		Description: "Historic neighborhood with heritage buildings",
	},

	// Burnaby
	{
		ID:          "metrotown",
		Name:        "Metropolis at Metrotown",
		Address:     "4700 Kingsway, Burnaby, BC V5H 4N1",
		Lat:         49.2276,
		Lng:         -122.9996,
		Category:    "Shopping",
		Icon:        "🛍️",
		Color:       "#EF4444",
		IsPopular:   true,
		Description: "Largest shopping mall in British Columbia",
	},
	{
		ID:          "sfu-burnaby",
		Name:        "Simon Fraser University",
		Address:     "8888 University Dr, Burnaby, BC V5A 1S6",
		Lat:         49.2781,
		Lng:         -122.9199,
		Category:    "Education",
		Icon:        "🎓",
		Color:       "#3B82F6",
		IsPopular:   true,
		Description: "Public research university on Burnaby Mountain",
	},

	// Richmond
	{
		ID:          "richmond-centre",
		Name:        "Richmond Centre",
		Address:     "6551 No 3 Rd, Richmond, BC V6Y 2B6",
		Lat:         49.1666,
		Lng:         -123.1336,
		Category:    "Shopping",
		Icon:        "🛍️",
		Color:       "#EF4444",
		IsPopular:   true,
		Description: "Major shopping center in Richmond",
	},
	{
		ID:          "yvr-airport",
		Name:        "Vancouver International Airport",
		Address:     "3211 Grant McConachie Way, Richmond, BC V7B 1Y7",
		Lat:         49.1967,
		Lng:         -123.1815,
		Category:    "Transportation",
		Icon:        "✈️",
		Color:       "#6B7280",
		IsPopular:   true,
		Description: "Major international airport",
	},
}
