package public

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"
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

func optionsFindNewestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

// visibleTour is the active-triple filter: the tour itself, its own
// activeStatus and the denormalized categoryStatus mirror must all be
// on for the tour to appear publicly.
func visibleTour() bson.M {
	return bson.M{"activeStatus": true, "categoryStatus": true}
}

// activeOnlyParam reads the activeOnly query flag. Public listings
// default to active-only; only an explicit activeOnly=false widens them.
func activeOnlyParam(q url.Values) bool {
	return q.Get("activeOnly") != "false"
}

// tourSummary is the trimmed card shape public listings project to.
type tourSummary struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	TourName     string             `json:"tourName" bson:"tourName"`
	Days         int                `json:"days" bson:"days"`
	Nights       int                `json:"nights" bson:"nights"`
	MainImageURL string             `json:"mainImageUrl" bson:"mainImageUrl"`
	TripCost     float64            `json:"tripCost" bson:"tripCost"`
}

// tourSummaryProjection trims tour documents to the card fields.
func tourSummaryProjection() bson.M {
	return bson.M{
		"_id":          1,
		"tourName":     1,
		"days":         1,
		"nights":       1,
		"mainImageUrl": 1,
		"tripCost":     1,
	}
}

// categoryToursFilter lists a category's tours, hidden ones included
// only when activeOnly is off.
func categoryToursFilter(id primitive.ObjectID, activeOnly bool) bson.M {
	filter := bson.M{"category": id}
	if activeOnly {
		for k, v := range visibleTour() {
			filter[k] = v
		}
	}
	return filter
}

type categoryWithTours struct {
	models.Category `bson:",inline"`
	Tours           []tourSummary `json:"tours" bson:"tours"`
}

// GET /api/public/with-highlighted-tours?limit=3&activeOnly=true
//
// Each category carries up to limit highlighted tours, newest first,
// trimmed to the card shape.
func WithHighlightedTours(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	limit := 3
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 10 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	activeOnly := activeOnlyParam(r.URL.Query())

	tourMatch := bson.M{"highlightStatus": true}
	categoryMatch := bson.M{}
	if activeOnly {
		for k, v := range visibleTour() {
			tourMatch[k] = v
		}
		categoryMatch["activeStatus"] = true
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: categoryMatch}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "tours",
			"let":  bson.M{"catId": "$_id"},
			"pipeline": []bson.M{
				{"$match": bson.M{"$expr": bson.M{"$eq": []interface{}{"$category", "$$catId"}}}},
				{"$match": tourMatch},
				{"$sort": bson.M{"createdAt": -1}},
				{"$limit": limit},
				{"$project": tourSummaryProjection()},
			},
			"as": "tours",
		}}},
	}

	cursor, err := db.CategoriesCollection.Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("withHighlightedTours error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	items := []categoryWithTours{}
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// GET /api/public/categories/:id/tours?activeOnly=true
func CategoryWithAllTours(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var category models.Category
	err = db.CategoriesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	filter := categoryToursFilter(id, activeOnlyParam(r.URL.Query()))

	opts := optionsFindNewestFirst()
	tours, err := utils.FindAndDecode[models.Tour](ctx, db.ToursCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if tours == nil {
		tours = []models.Tour{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"category": category, "tours": tours})
}

// GET /api/public/tours/:id
func GetTour(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	match := visibleTour()
	match["_id"] = id

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "categories",
			"localField":   "category",
			"foreignField": "_id",
			"as":           "categoryDoc",
		}}},
		{{Key: "$unwind", Value: "$categoryDoc"}},
	}

	cursor, err := db.ToursCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	var rows []models.TourWithCategory
	if err := cursor.All(ctx, &rows); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if len(rows) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Tour not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"tour": rows[0]})
}

// slideView is the hero display shape.
type slideView struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Src        string             `json:"src" bson:"src"`
	Title      string             `json:"title" bson:"title"`
	Subtitle   string             `json:"subtitle" bson:"subtitle"`
	CategoryID primitive.ObjectID `json:"categoryId" bson:"categoryId"`
}

// GET /api/public/hero-carousel?activeOnly=true
//
// Slides join to their category live; there is no status mirror on
// slides, so a category toggle takes effect here immediately.
func HeroCarousel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{}
	activeOnly := activeOnlyParam(r.URL.Query())
	if activeOnly {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"activeStatus": true}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "categories",
			"localField":   "category",
			"foreignField": "_id",
			"as":           "categoryDoc",
		}}},
		bson.D{{Key: "$unwind", Value: "$categoryDoc"}},
	)
	if activeOnly {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"categoryDoc.activeStatus": true}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":        1,
			"src":        "$imageUrl",
			"title":      "$categoryDoc.name",
			"subtitle":   "$categoryDoc.description",
			"categoryId": "$category",
		}}},
	)

	cursor, err := db.HeroSlidesCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	slides := []slideView{}
	if err := cursor.All(ctx, &slides); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"slides": slides})
}

// GET /api/public/tours-by-landscape/:landscape?activeOnly=true
func ToursByLandscape(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tag, ok := models.NormalizeLandscapeTag(ps.ByName("landscape"))
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown landscape")
		return
	}

	filter := bson.M{"landscapes": tag}
	if activeOnlyParam(r.URL.Query()) {
		for k, v := range visibleTour() {
			filter[k] = v
		}
	}

	opts := optionsFindNewestFirst().SetProjection(tourSummaryProjection())
	tours, err := utils.FindAndDecode[tourSummary](ctx, db.ToursCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if tours == nil {
		tours = []tourSummary{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"landscape": tag, "count": len(tours), "items": tours})
}

type testimonialView struct {
	ID     primitive.ObjectID `json:"id" bson:"_id"`
	Name   string             `json:"name" bson:"clientName"`
	Photo  string             `json:"photo" bson:"clientImage"`
	Tour   string             `json:"tour" bson:"tourName"`
	Review string             `json:"review" bson:"review"`
}

// GET /api/public/testimonials?activeOnly=true&limit=
func Testimonials(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if activeOnlyParam(r.URL.Query()) {
		filter["activeStatus"] = true
	}

	opts := optionsFindNewestFirst()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		opts.SetLimit(int64(n))
	}

	items, err := utils.FindAndDecode[testimonialView](ctx, db.TestimonialsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if items == nil {
		items = []testimonialView{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// GET /api/public/awards
func Awards(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := utils.FindAndDecode[models.Award](ctx, db.AwardsCollection,
		bson.M{"activeStatus": true}, optionsFindNewestFirst())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if items == nil {
		items = []models.Award{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// GET /api/public/team
func Team(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := utils.FindAndDecode[models.TeamMember](ctx, db.TeamMembersCollection,
		bson.M{"activeStatus": true}, optionsFindNewestFirst())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if items == nil {
		items = []models.TeamMember{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// GET /api/public/landscapes
func Landscapes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := utils.FindAndDecode[models.Landscape](ctx, db.LandscapesCollection,
		bson.M{"activeStatus": true}, optionsFindNewestFirst())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if items == nil {
		items = []models.Landscape{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}
