package hero

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// slideRow is a hero slide joined with its category for the admin list.
type slideRow struct {
	models.HeroSlide `bson:",inline"`
	Category         struct {
		ID   primitive.ObjectID `json:"_id" bson:"_id"`
		Name string             `json:"name" bson:"name"`
	} `json:"category" bson:"categoryDoc"`
}

// POST /api/admin/hero-carousel
func CreateSlide(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		CategoryID string `json:"categoryId"`
		ImageURL   string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.CategoryID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "categoryId is required")
		return
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "imageUrl is required")
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	count, err := db.CategoriesCollection.CountDocuments(ctx, bson.M{"_id": categoryID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	now := time.Now()
	slide := models.HeroSlide{
		CategoryID:   categoryID,
		ImageURL:     strings.TrimSpace(input.ImageURL),
		ActiveStatus: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := db.HeroSlidesCollection.InsertOne(ctx, slide)
	if err != nil {
		log.Printf("createHeroSlide error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	slide.ID = res.InsertedID.(primitive.ObjectID)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Hero slide created", "slide": slide})
}

// GET /api/admin/hero-carousel?search=&page=&limit=
//
// Search matches the joined category name.
func ListSlides(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 5, 100)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "categories",
			"localField":   "category",
			"foreignField": "_id",
			"as":           "categoryDoc",
		}}},
		bson.D{{Key: "$unwind", Value: "$categoryDoc"}},
	}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"categoryDoc.name": primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"},
		}}})
	}

	countPipeline := append(mongo.Pipeline{}, pipeline...)
	countPipeline = append(countPipeline, bson.D{{Key: "$count", Value: "total"}})
	countCursor, err := db.HeroSlidesCollection.Aggregate(ctx, countPipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	var counts []struct {
		Total int64 `bson:"total"`
	}
	if err := countCursor.All(ctx, &counts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	var totalItems int64
	if len(counts) > 0 {
		totalItems = counts[0].Total
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: limit}},
	)

	cursor, err := db.HeroSlidesCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	items := []slideRow{}
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":      items,
		"page":       utils.Page(skip, limit),
		"limit":      limit,
		"totalItems": totalItems,
		"totalPages": utils.TotalPages(totalItems, limit),
	})
}

// PATCH /api/admin/hero-carousel/:id/image
func UpdateSlideImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || strings.TrimSpace(input.ImageURL) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "imageUrl is required")
		return
	}

	update := bson.M{"imageUrl": strings.TrimSpace(input.ImageURL), "updatedAt": time.Now()}
	patchSlide(ctx, w, id, update, "Hero image updated")
}

// PATCH /api/admin/hero-carousel/:id/status
func UpdateSlideStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	update := bson.M{"activeStatus": *input.ActiveStatus, "updatedAt": time.Now()}
	patchSlide(ctx, w, id, update, "Status updated")
}

func patchSlide(ctx context.Context, w http.ResponseWriter, id primitive.ObjectID, update bson.M, message string) {
	var slide models.HeroSlide
	err := db.HeroSlidesCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&slide)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Slide not found")
		return
	}
	if err != nil {
		log.Printf("hero slide update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": message, "slide": slide})
}
