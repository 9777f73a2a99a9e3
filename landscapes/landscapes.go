package landscapes

import (
	"context"
	"encoding/json"
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

func nameFilter(name string) bson.M {
	return bson.M{"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}}
}

// POST /api/admin/landscapes
func CreateLandscape(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		CoverImage  string `json:"coverImage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	count, err := db.LandscapesCollection.CountDocuments(ctx, nameFilter(name))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Landscape name already exists")
		return
	}

	now := time.Now()
	landscape := models.Landscape{
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		CoverImage:   strings.TrimSpace(input.CoverImage),
		ActiveStatus: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := db.LandscapesCollection.InsertOne(ctx, landscape)
	if mongo.IsDuplicateKeyError(err) {
		utils.RespondWithError(w, http.StatusConflict, "Landscape name already exists")
		return
	}
	if err != nil {
		log.Printf("createLandscape error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	landscape.ID = res.InsertedID.(primitive.ObjectID)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Landscape created", "landscape": landscape})
}

// GET /api/admin/landscapes?search=&page=&limit=&sort=&order=
func ListLandscapes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 5, 100)

	q := r.URL.Query()
	order := -1
	if q.Get("order") == "asc" {
		order = 1
	}
	field := q.Get("sort")
	if field != "name" && field != "activeStatus" {
		field = "createdAt"
	}
	sort := bson.D{{Key: field, Value: order}}

	filter := bson.M{}
	if search := strings.TrimSpace(q.Get("search")); search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	}

	totalItems, err := db.LandscapesCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)
	items, err := utils.FindAndDecode[models.Landscape](ctx, db.LandscapesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if items == nil {
		items = []models.Landscape{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":      items,
		"page":       utils.Page(skip, limit),
		"limit":      limit,
		"totalItems": totalItems,
		"totalPages": utils.TotalPages(totalItems, limit),
	})
}

// PATCH /api/admin/landscapes/:id/status
func UpdateLandscapeStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input struct {
		ActiveStatus *bool `json:"activeStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ActiveStatus == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "activeStatus must be boolean")
		return
	}

	var landscape models.Landscape
	err = db.LandscapesCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"activeStatus": *input.ActiveStatus, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&landscape)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Landscape not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Status updated", "landscape": landscape})
}

// PATCH /api/admin/landscapes/:id
func UpdateLandscape(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		CoverImage  *string `json:"coverImage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	updates := bson.M{"updatedAt": time.Now()}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		conflictFilter := nameFilter(name)
		conflictFilter["_id"] = bson.M{"$ne": id}
		count, err := db.LandscapesCollection.CountDocuments(ctx, conflictFilter)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
			return
		}
		if count > 0 {
			utils.RespondWithError(w, http.StatusConflict, "Landscape name already exists")
			return
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.CoverImage != nil {
		updates["coverImage"] = strings.TrimSpace(*input.CoverImage)
	}

	var landscape models.Landscape
	err = db.LandscapesCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&landscape)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Landscape not found")
		return
	}
	if mongo.IsDuplicateKeyError(err) {
		utils.RespondWithError(w, http.StatusConflict, "Landscape name already exists")
		return
	}
	if err != nil {
		log.Printf("updateLandscape error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Landscape updated", "landscape": landscape})
}
