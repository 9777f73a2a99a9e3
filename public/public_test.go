package public

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestActiveOnlyParamDefaultsTrue(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"", true},
		{"activeOnly=true", true},
		{"activeOnly=false", false},
		{"activeOnly=1", true},
		{"limit=3", true},
	}
	for _, c := range cases {
		q, err := url.ParseQuery(c.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", c.raw, err)
		}
		if got := activeOnlyParam(q); got != c.want {
			t.Errorf("activeOnlyParam(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestCategoryToursFilterHidesInactiveByDefault(t *testing.T) {
	id := primitive.NewObjectID()

	filter := categoryToursFilter(id, true)
	if filter["category"] != id {
		t.Fatalf("category = %v, want %v", filter["category"], id)
	}
	if filter["activeStatus"] != true {
		t.Errorf("activeStatus filter missing: %v", filter)
	}
	if filter["categoryStatus"] != true {
		t.Errorf("categoryStatus filter missing: %v", filter)
	}

	wide := categoryToursFilter(id, false)
	if len(wide) != 1 || wide["category"] != id {
		t.Errorf("activeOnly=false should filter by category only, got %v", wide)
	}
}

func TestTestimonialsRejectsInvalidLimit(t *testing.T) {
	for _, raw := range []string{"0", "-1", "abc", "101"} {
		r := httptest.NewRequest(http.MethodGet, "/api/public/testimonials?limit="+raw, nil)
		w := httptest.NewRecorder()

		Testimonials(w, r, nil)

		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status = %d, want %d", raw, w.Code, http.StatusBadRequest)
		}
	}
}

func TestTourSummaryProjectionFields(t *testing.T) {
	want := []string{"_id", "tourName", "days", "nights", "mainImageUrl", "tripCost"}
	proj := tourSummaryProjection()
	if len(proj) != len(want) {
		t.Fatalf("projection has %d fields, want %d: %v", len(proj), len(want), proj)
	}
	for _, field := range want {
		if proj[field] != 1 {
			t.Errorf("projection missing %s", field)
		}
	}
}
