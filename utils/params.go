package utils

import (
	"context"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ParsePagination reads page/limit query params and returns skip/limit
// for a Find. Limit is clamped to max.
func ParsePagination(r *http.Request, def, max int64) (skip, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = def
	}
	if limit > max {
		limit = max
	}

	return (page - 1) * limit, limit
}

// Page reports the 1-based page a skip/limit pair corresponds to.
func Page(skip, limit int64) int64 {
	if limit < 1 {
		return 1
	}
	return skip/limit + 1
}

// TotalPages is never below 1 so the admin tables always render one page.
func TotalPages(totalItems, limit int64) int64 {
	if limit < 1 {
		return 1
	}
	pages := (totalItems + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ParseSort maps a "field" / "-field" sort expression onto a bson sort
// document, falling back to def for unknown fields.
func ParseSort(expr string, def bson.D, allowed map[string]bool) bson.D {
	if expr == "" {
		return def
	}
	order := 1
	if expr[0] == '-' {
		order = -1
		expr = expr[1:]
	}
	if expr == "" || (allowed != nil && !allowed[expr]) {
		return def
	}
	return bson.D{{Key: expr, Value: order}}
}

// FindAndDecode runs a Find and decodes the full result set.
func FindAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
