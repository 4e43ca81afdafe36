package location

import (
	"fmt"
	"strings"
)

// FormatCoords renders coordinates with six decimals, the fallback address.
func FormatCoords(latitude, longitude float64) string {
	return fmt.Sprintf("%.6f, %.6f", latitude, longitude)
}

// FormatAddress joins the non-empty components of a reverse-geocoded address.
func FormatAddress(a Address) string {
	return joinNonEmpty([]string{a.Name, a.Street, a.District, a.City, a.Region}, -1)
}

// FormatSuggestion builds the short label for a search hit from at most three
// address components, falling back to the head of the display name.
func FormatSuggestion(r SearchResult) string {
	a := r.Address
	var street string
	switch {
	case a.HouseNumber != "" && a.Road != "":
		street = a.HouseNumber + " " + a.Road
	default:
		street = a.Road
	}
	locality := firstNonEmpty(a.City, a.Town, a.Village)

	if formatted := joinNonEmpty([]string{a.Building, street, a.Suburb, locality, a.State}, 3); formatted != "" {
		return formatted
	}
	parts := strings.Split(r.DisplayName, ",")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.TrimSpace(strings.Join(parts, ","))
}

func joinNonEmpty(parts []string, limit int) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if limit >= 0 && len(kept) == limit {
			break
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
