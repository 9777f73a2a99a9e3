package models

import "strings"

// LandscapeTags is the fixed vocabulary a tour may be tagged with.
var LandscapeTags = []string{
	"Mountain",
	"Beaches",
	"Forest",
	"Snow",
	"Leisure",
	"Cultural",
	"Archaeological",
	"Rural",
	"Volcanic",
	"Tribal",
	"Cave",
	"Mangrove",
	"Waterfalls",
}

// NormalizeLandscapeTag resolves a user-supplied value to its canonical
// casing. The second result is false when the value is not in the
// vocabulary.
func NormalizeLandscapeTag(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, tag := range LandscapeTags {
		if strings.ToLower(tag) == v {
			return tag, true
		}
	}
	return "", false
}

// ValidLandscapeTags reports whether every entry is in the vocabulary,
// returning the first offender otherwise.
func ValidLandscapeTags(values []string) (string, bool) {
	for _, v := range values {
		if _, ok := NormalizeLandscapeTag(v); !ok {
			return v, false
		}
	}
	return "", true
}
