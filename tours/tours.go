package tours

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

type tourPayload struct {
	TourName        *string                `json:"tourName"`
	CategoryID      *string                `json:"categoryId"`
	Days            *int                   `json:"days"`
	Nights          *int                   `json:"nights"`
	TripCost        *float64               `json:"tripCost"`
	TripStyle       *string                `json:"tripStyle"`
	Vehicle         *string                `json:"vehicle"`
	DrivingDistance *string                `json:"drivingDistance"`
	Landscapes      []string               `json:"landscapes"`
	Activity        *string                `json:"activity"`
	UpcomingDates   []string               `json:"upcomingDates"`
	MainImageURL    *string                `json:"mainImageUrl"`
	SubImageURLs    []string               `json:"subImageUrls"`
	RouteMapURL     *string                `json:"routeMapUrl"`
	Itinerary       []models.ItineraryStep `json:"itinerary"`
	FAQs            []models.FAQ           `json:"faqs"`
}

func parseDates(raw []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(raw))
	for i, s := range raw {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t, err = time.Parse("2006-01-02", s)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid date in upcomingDates at index %d", i)
		}
		dates = append(dates, t)
	}
	return dates, nil
}

func findCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := db.CategoriesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// findTourWithCategory joins one tour with its owning category's name
// and active flag for the admin table.
func findTourWithCategory(ctx context.Context, id primitive.ObjectID) (*models.TourWithCategory, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
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
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.TourWithCategory
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrTourNotFound
	}
	return &rows[0], nil
}

// POST /api/admin/tours
func CreateTour(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input tourPayload
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.TourName == nil || strings.TrimSpace(*input.TourName) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "tourName is required")
		return
	}
	if input.CategoryID == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "categoryId is required")
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(*input.CategoryID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	category, err := findCategory(ctx, categoryID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if input.Days == nil || *input.Days < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "days must be a number >= 1")
		return
	}
	nights := 0
	if input.Nights != nil {
		if *input.Nights < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "nights must be a non-negative number")
			return
		}
		nights = *input.Nights
	}
	if bad, ok := models.ValidLandscapeTags(input.Landscapes); !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid landscape value: "+bad)
		return
	}
	if len(input.SubImageURLs) > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Sub images must be 5 or fewer")
		return
	}
	for i, step := range input.Itinerary {
		if step.Day < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("itinerary[%d].day must be a number >= 1", i))
			return
		}
	}
	dates, err := parseDates(input.UpcomingDates)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	tour := models.Tour{
		CategoryID:      categoryID,
		TourName:        strings.TrimSpace(*input.TourName),
		Days:            *input.Days,
		Nights:          nights,
		Landscapes:      input.Landscapes,
		UpcomingDates:   dates,
		SubImageURLs:    input.SubImageURLs,
		Itinerary:       input.Itinerary,
		FAQs:            input.FAQs,
		ActiveStatus:    true,
		CategoryStatus:  category.ActiveStatus,
		HighlightStatus: false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if tour.Landscapes == nil {
		tour.Landscapes = []string{}
	}
	if tour.SubImageURLs == nil {
		tour.SubImageURLs = []string{}
	}
	if tour.Itinerary == nil {
		tour.Itinerary = []models.ItineraryStep{}
	}
	if tour.FAQs == nil {
		tour.FAQs = []models.FAQ{}
	}
	if input.TripCost != nil {
		tour.TripCost = *input.TripCost
	}
	if input.TripStyle != nil {
		tour.TripStyle = strings.TrimSpace(*input.TripStyle)
	}
	if input.Vehicle != nil {
		tour.Vehicle = strings.TrimSpace(*input.Vehicle)
	}
	if input.DrivingDistance != nil {
		tour.DrivingDistance = strings.TrimSpace(*input.DrivingDistance)
	}
	if input.Activity != nil {
		tour.Activity = strings.TrimSpace(*input.Activity)
	}
	if input.MainImageURL != nil {
		tour.MainImageURL = strings.TrimSpace(*input.MainImageURL)
	}
	if input.RouteMapURL != nil {
		tour.RouteMapURL = strings.TrimSpace(*input.RouteMapURL)
	}

	res, err := db.ToursCollection.InsertOne(ctx, tour)
	if err != nil {
		log.Printf("createTour error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	tour.ID = res.InsertedID.(primitive.ObjectID)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "item": tour})
}

// GET /api/admin/tours?search=&page=&limit=
//
// Search matches the tour name or the owning category's name.
func ListTours(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 5, 50)

	filter := bson.M{}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}

		categories, err := utils.FindAndDecode[models.Category](ctx, db.CategoriesCollection,
			bson.M{"name": re}, options.Find().SetProjection(bson.M{"_id": 1}))
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
			return
		}
		categoryIDs := make([]primitive.ObjectID, len(categories))
		for i, c := range categories {
			categoryIDs[i] = c.ID
		}

		filter["$or"] = bson.A{
			bson.M{"tourName": re},
			bson.M{"category": bson.M{"$in": categoryIDs}},
		}
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
	})
}

// GET /api/admin/tours/:id
func GetTour(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	item, err := findTourWithCategory(ctx, id)
	if errors.Is(err, ErrTourNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Tour not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"item": item})
}

// PATCH /api/admin/tours/:id
func UpdateTour(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input tourPayload
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := bson.M{"updatedAt": time.Now()}

	if input.TourName != nil {
		name := strings.TrimSpace(*input.TourName)
		if name == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "tourName cannot be empty")
			return
		}
		update["tourName"] = name
	}
	if input.CategoryID != nil {
		categoryID, err := primitive.ObjectIDFromHex(*input.CategoryID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid category id")
			return
		}
		category, err := findCategory(ctx, categoryID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Category not found")
			return
		}
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
			return
		}
		update["category"] = categoryID
		// moving category refreshes the status mirror
		update["categoryStatus"] = category.ActiveStatus
	}
	if input.Days != nil {
		if *input.Days < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "days must be a number >= 1")
			return
		}
		update["days"] = *input.Days
	}
	if input.Nights != nil {
		if *input.Nights < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "nights must be a non-negative number")
			return
		}
		update["nights"] = *input.Nights
	}
	if input.TripCost != nil {
		update["tripCost"] = *input.TripCost
	}
	if input.TripStyle != nil {
		update["tripStyle"] = strings.TrimSpace(*input.TripStyle)
	}
	if input.Vehicle != nil {
		update["vehicle"] = strings.TrimSpace(*input.Vehicle)
	}
	if input.DrivingDistance != nil {
		update["drivingDistance"] = strings.TrimSpace(*input.DrivingDistance)
	}
	if input.Landscapes != nil {
		if bad, ok := models.ValidLandscapeTags(input.Landscapes); !ok {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid landscape value: "+bad)
			return
		}
		update["landscapes"] = input.Landscapes
	}
	if input.Activity != nil {
		update["activity"] = strings.TrimSpace(*input.Activity)
	}
	if input.UpcomingDates != nil {
		dates, err := parseDates(input.UpcomingDates)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		update["upcomingDates"] = dates
	}
	if input.MainImageURL != nil {
		update["mainImageUrl"] = strings.TrimSpace(*input.MainImageURL)
	}
	if input.SubImageURLs != nil {
		if len(input.SubImageURLs) > 5 {
			utils.RespondWithError(w, http.StatusBadRequest, "Sub images must be 5 or fewer")
			return
		}
		update["subImageUrls"] = input.SubImageURLs
	}
	if input.RouteMapURL != nil {
		update["routeMapUrl"] = strings.TrimSpace(*input.RouteMapURL)
	}
	if input.Itinerary != nil {
		for i, step := range input.Itinerary {
			if step.Day < 1 {
				utils.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("itinerary[%d].day must be a number >= 1", i))
				return
			}
		}
		update["itinerary"] = input.Itinerary
	}
	if input.FAQs != nil {
		update["faqs"] = input.FAQs
	}

	res, err := db.ToursCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		log.Printf("updateTour error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Tour not found")
		return
	}

	item, err := findTourWithCategory(ctx, id)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "item": item})
}

// PATCH /api/admin/tours/:id/status
func UpdateTourStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	var tour models.Tour
	err = db.ToursCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"activeStatus": *input.ActiveStatus, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&tour)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Tour not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "item": tour})
}

// DELETE /api/admin/tours/:id
func DeleteTour(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	res, err := db.ToursCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Tour not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
