package pantry

// Bounds for the cook-time filter.
const (
	MinCookTimeMinutes     = 10
	MaxCookTimeMinutes     = 180
	DefaultCookTimeMinutes = 60
)

// Filters are the optional constraints applied to a recipe search.
// MaxCookTimeMinutes is always populated, even if the user never
// touches the control.
type Filters struct {
	MaxCookTimeMinutes int    `json:"maxTime"`
	DietaryPreference  string `json:"diet"`
}

// DefaultFilters returns the filter state a fresh session starts with.
func DefaultFilters() Filters {
	return Filters{MaxCookTimeMinutes: DefaultCookTimeMinutes}
}

// ValidDiet reports whether the given dietary preference is one the
// client accepts. The empty string means no preference.
func ValidDiet(diet string) bool {
	switch diet {
	case "", "vegetarian", "vegan", "gluten-free":
		return true
	}
	return false
}

// ClampCookTime forces a cook-time value into the allowed range.
func ClampCookTime(minutes int) int {
	if minutes < MinCookTimeMinutes {
		return MinCookTimeMinutes
	}
	if minutes > MaxCookTimeMinutes {
		return MaxCookTimeMinutes
	}
	return minutes
}
