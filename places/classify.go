package places

// CategoryInfo is the display classification derived from a place's types.
type CategoryInfo struct {
	Category string
	Icon     string
	Color    string
}

var typeCategories = map[string]CategoryInfo{
	// Education
	"university": {"Education", "🎓", "#3B82F6"},
	"school":     {"Education", "🎓", "#3B82F6"},
	"college":    {"Education", "🎓", "#3B82F6"},

	// Transportation
	"airport":         {"Transportation", "✈️", "#6B7280"},
	"transit_station": {"Transportation", "🚇", "#6B7280"},
	"subway_station":  {"Transportation", "🚇", "#6B7280"},
	"bus_station":     {"Transportation", "🚌", "#6B7280"},

	// Shopping
	"shopping_mall":    {"Shopping", "🛍️", "#EF4444"},
	"store":            {"Shopping", "🛍️", "#EF4444"},
	"department_store": {"Shopping", "🛍️", "#EF4444"},

	// Dining
	"restaurant": {"Dining", "🍽️", "#F59E0B"},
	"food":       {"Dining", "🍽️", "#F59E0B"},
	"cafe":       {"Dining", "☕", "#F59E0B"},

	// Entertainment
	"movie_theater":  {"Entertainment", "🎬", "#8B5CF6"},
	"amusement_park": {"Entertainment", "🎢", "#8B5CF6"},
	"museum":         {"Entertainment", "🏛️", "#8B5CF6"},

	// Healthcare
	"hospital": {"Healthcare", "🏥", "#10B981"},
	"pharmacy": {"Healthcare", "💊", "#10B981"},
	"doctor":   {"Healthcare", "👨‍⚕️", "#10B981"},

	// Recreation
	"park":    {"Recreation", "🏞️", "#059669"},
	"gym":     {"Recreation", "💪", "#059669"},
	"stadium": {"Recreation", "🏟️", "#059669"},

	// Business
	"bank":       {"Business", "🏦", "#374151"},
	"office":     {"Business", "🏢", "#374151"},
	"government": {"Business", "🏛️", "#374151"},

	// Landmarks
	"tourist_attraction": {"Landmark", "🏛️", "#DC2626"},
	"landmark":           {"Landmark", "🏛️", "#DC2626"},
	"monument":           {"Landmark", "🗿", "#DC2626"},
}

var defaultCategory = CategoryInfo{"Location", "📍", "#6B7280"}

// CategoryFromTypes classifies a place by its Google types. The first type
// with a table entry wins; unmatched types fall back to the generic marker.
func CategoryFromTypes(placeTypes []string) CategoryInfo {
	for _, t := range placeTypes {
		if info, ok := typeCategories[t]; ok {
			return info
		}
	}
	return defaultCategory
}

// IsPopularPlace marks places with strong, well-attested ratings.
func IsPopularPlace(rating *float64, userRatingsTotal *int) bool {
	if rating == nil || userRatingsTotal == nil {
		return false
	}
	return *rating >= 4.0 && *userRatingsTotal >= 100
}
