package categories

import (
	"regexp"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// compileNameFilter turns the mongo regex filter into a Go regexp with
// the same case-insensitive semantics.
func compileNameFilter(t *testing.T, name string) *regexp.Regexp {
	t.Helper()
	rx, ok := nameFilter(name)["name"].(primitive.Regex)
	if !ok {
		t.Fatalf("nameFilter(%q) did not produce a regex filter", name)
	}
	if rx.Options != "i" {
		t.Fatalf("nameFilter(%q) options = %q, want case-insensitive", name, rx.Options)
	}
	compiled, err := regexp.Compile("(?i)" + rx.Pattern)
	if err != nil {
		t.Fatalf("nameFilter(%q) pattern does not compile: %v", name, err)
	}
	return compiled
}

func TestNameFilterCaseInsensitiveExactMatch(t *testing.T) {
	rx := compileNameFilter(t, "Beach Trips")

	for _, dup := range []string{"Beach Trips", "beach trips", "BEACH TRIPS", "bEaCh TrIpS"} {
		if !rx.MatchString(dup) {
			t.Errorf("%q should conflict with Beach Trips", dup)
		}
	}
	for _, other := range []string{"Beach", "Beach Trips 2", "My Beach Trips", "Mountain Trips"} {
		if rx.MatchString(other) {
			t.Errorf("%q should not conflict with Beach Trips", other)
		}
	}
}

func TestNameFilterEscapesMetaCharacters(t *testing.T) {
	rx := compileNameFilter(t, "Hills (North)")

	if !rx.MatchString("hills (north)") {
		t.Error("literal parentheses should still match case-insensitively")
	}
	if rx.MatchString("Hills North") {
		t.Error("parentheses must be matched literally, not as a group")
	}

	// a dot in the name must not act as a wildcard
	dot := compileNameFilter(t, "A.B")
	if dot.MatchString("AxB") {
		t.Error("dot must be escaped in the name filter")
	}
}
