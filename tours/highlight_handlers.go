package tours

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"trippens/db"
	"trippens/models"
	"trippens/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GET /api/admin/highlighted-tours?search=&categoryId=&highlighted=&page=&limit=
//
// The highlight-management table: tours joined with category name and
// active flag, optionally narrowed to one category or to the currently
// highlighted set.
func ListToursInHighlight(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 100)
	q := r.URL.Query()

	filter := bson.M{}
	if search := strings.TrimSpace(q.Get("search")); search != "" {
		filter["tourName"] = primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	}
	if categoryID := q.Get("categoryId"); categoryID != "" {
		oid, err := primitive.ObjectIDFromHex(categoryID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid category id")
			return
		}
		filter["category"] = oid
	}
	if strings.EqualFold(q.Get("highlighted"), "true") {
		filter["highlightStatus"] = true
	}

	totalItems, err := db.ToursCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "categories",
			"localField":   "category",
			"foreignField": "_id",
			"as":           "categoryDoc",
		}}},
		bson.D{{Key: "$unwind", Value: "$categoryDoc"}},
	}

	cursor, err := db.ToursCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	items := []models.TourWithCategory{}
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":      items,
		"totalItems": totalItems,
		"totalPages": utils.TotalPages(totalItems, limit),
		"page":       utils.Page(skip, limit),
		"limit":      limit,
	})
}

// PATCH /api/admin/tours/:id/highlight
//
// On a full category the response is a 409 carrying the occupying
// tours so the admin can free a slot first.
func UpdateTourHighlight(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input struct {
		HighlightStatus *bool `json:"highlightStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.HighlightStatus == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "highlightStatus must be boolean")
		return
	}

	err = SetTourHighlight(ctx, mongoHighlightStore{}, id, *input.HighlightStatus)
	var capErr *CapError
	switch {
	case errors.As(err, &capErr):
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{
			"message":          "This category already has 3 highlighted tours.",
			"highlightedTours": capErr.Highlighted,
		})
		return
	case errors.Is(err, ErrTourNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Tour not found")
		return
	case err != nil:
		log.Printf("updateTourHighlight error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	item, err := findTourWithCategory(ctx, id)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "item": item})
}
