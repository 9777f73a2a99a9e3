package utils

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		url       string
		wantSkip  int64
		wantLimit int64
	}{
		{"/x", 0, 5},
		{"/x?page=1&limit=10", 0, 10},
		{"/x?page=3&limit=10", 20, 10},
		{"/x?page=0&limit=0", 0, 5},
		{"/x?page=-2&limit=-5", 0, 5},
		{"/x?limit=9999", 0, 100},
		{"/x?page=abc&limit=abc", 0, 5},
	}

	for _, tc := range cases {
		r := httptest.NewRequest("GET", tc.url, nil)
		skip, limit := ParsePagination(r, 5, 100)
		if skip != tc.wantSkip || limit != tc.wantLimit {
			t.Errorf("ParsePagination(%q) = %d, %d; want %d, %d", tc.url, skip, limit, tc.wantSkip, tc.wantLimit)
		}
	}
}

func TestPage(t *testing.T) {
	if got := Page(0, 10); got != 1 {
		t.Errorf("Page(0, 10) = %d", got)
	}
	if got := Page(20, 10); got != 3 {
		t.Errorf("Page(20, 10) = %d", got)
	}
	if got := Page(5, 0); got != 1 {
		t.Errorf("Page(5, 0) = %d", got)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int64
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 10, 10},
		{5, 0, 1},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestParseSort(t *testing.T) {
	def := bson.D{{Key: "createdAt", Value: -1}}
	allowed := map[string]bool{"name": true, "createdAt": true}

	if got := ParseSort("", def, allowed); got[0].Key != "createdAt" || got[0].Value != -1 {
		t.Errorf("empty expr = %v", got)
	}
	if got := ParseSort("name", def, allowed); got[0].Key != "name" || got[0].Value != 1 {
		t.Errorf("name = %v", got)
	}
	if got := ParseSort("-name", def, allowed); got[0].Key != "name" || got[0].Value != -1 {
		t.Errorf("-name = %v", got)
	}
	if got := ParseSort("password", def, allowed); got[0].Key != "createdAt" {
		t.Errorf("disallowed field = %v", got)
	}
	if got := ParseSort("-", def, allowed); got[0].Key != "createdAt" {
		t.Errorf("bare dash = %v", got)
	}
}

func TestValidPhone(t *testing.T) {
	valid := []string{"9876543210", "+919876543210", "123456789012345"}
	invalid := []string{"", "12345", "+12345", "98765432ab", "1234567890123456", "++9876543210"}

	for _, s := range valid {
		if !ValidPhone(s) {
			t.Errorf("ValidPhone(%q) = false", s)
		}
	}
	for _, s := range invalid {
		if ValidPhone(s) {
			t.Errorf("ValidPhone(%q) = true", s)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.c", "asha.nair@example.co.in"}
	invalid := []string{"", "plain", "a@b", "a b@c.d", "@b.c"}

	for _, s := range valid {
		if !ValidEmail(s) {
			t.Errorf("ValidEmail(%q) = false", s)
		}
	}
	for _, s := range invalid {
		if ValidEmail(s) {
			t.Errorf("ValidEmail(%q) = true", s)
		}
	}
}
