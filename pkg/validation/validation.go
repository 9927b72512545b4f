package validation

import (
	"regexp"
	"strings"
)

const minCityNameLength = 2

// Letters (any script) separated by spaces, hyphens, apostrophes or periods.
var cityNameRegex = regexp.MustCompile(`^[\p{L}]+(?:[ .'-]+[\p{L}]+)*\.?$`)

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidCityName validates the shape of a searched city name
func IsValidCityName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < minCityNameLength {
		return false
	}
	return cityNameRegex.MatchString(trimmed)
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
