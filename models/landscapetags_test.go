package models

import "testing"

func TestNormalizeLandscapeTag(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Mountain", "Mountain", true},
		{"mountain", "Mountain", true},
		{"MOUNTAIN", "Mountain", true},
		{"  waterfalls  ", "Waterfalls", true},
		{"Atlantis", "", false},
		{"", "", false},
		{"Mount", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizeLandscapeTag(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NormalizeLandscapeTag(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestValidLandscapeTags(t *testing.T) {
	if offender, ok := ValidLandscapeTags([]string{"Mountain", "Snow", "Cave"}); !ok {
		t.Fatalf("valid set rejected, offender %q", offender)
	}
	if offender, ok := ValidLandscapeTags([]string{"Mountain", "Atlantis"}); ok || offender != "Atlantis" {
		t.Fatalf("ValidLandscapeTags = %q, %v; want Atlantis, false", offender, ok)
	}
	if _, ok := ValidLandscapeTags(nil); !ok {
		t.Fatal("empty set must be valid")
	}
}

func TestLandscapeVocabularySize(t *testing.T) {
	if len(LandscapeTags) != 13 {
		t.Fatalf("vocabulary has %d tags, want 13", len(LandscapeTags))
	}
	seen := make(map[string]bool)
	for _, tag := range LandscapeTags {
		if seen[tag] {
			t.Fatalf("duplicate tag %q", tag)
		}
		seen[tag] = true
	}
}
