package awards

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

// POST /api/admin/awards
func CreateAward(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Image = strings.TrimSpace(input.Image)
	if input.Name == "" || input.Image == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name and image are required")
		return
	}

	now := time.Now()
	award := models.Award{
		Name:         input.Name,
		Image:        input.Image,
		ActiveStatus: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := db.AwardsCollection.InsertOne(ctx, award)
	if err != nil {
		log.Printf("createAward error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	award.ID = res.InsertedID.(primitive.ObjectID)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Award created", "award": award})
}

// GET /api/admin/awards?search=&page=&limit=&sort=&order=
func ListAwards(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	filter := bson.M{}
	if search := strings.TrimSpace(q.Get("search")); search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	}

	totalItems, err := db.AwardsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: field, Value: order}}).SetSkip(skip).SetLimit(limit)
	items, err := utils.FindAndDecode[models.Award](ctx, db.AwardsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if items == nil {
		items = []models.Award{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":      items,
		"page":       utils.Page(skip, limit),
		"limit":      limit,
		"totalItems": totalItems,
		"totalPages": utils.TotalPages(totalItems, limit),
	})
}

// GET /api/admin/awards/:id
func GetAward(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var award models.Award
	err = db.AwardsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&award)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Award not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"award": award})
}

// PATCH /api/admin/awards/:id
func UpdateAward(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input struct {
		Name  *string `json:"name"`
		Image *string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	updates := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		updates["name"] = name
	}
	if input.Image != nil {
		image := strings.TrimSpace(*input.Image)
		if image == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "image cannot be empty")
			return
		}
		updates["image"] = image
	}

	var award models.Award
	err = db.AwardsCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&award)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Award not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Award updated", "award": award})
}

// PATCH /api/admin/awards/:id/status
func UpdateAwardStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	var award models.Award
	err = db.AwardsCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"activeStatus": *input.ActiveStatus, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&award)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Award not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Status updated", "award": award})
}
