package testimonials

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

// POST /api/admin/testimonials
func CreateTestimonial(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		ClientName  string `json:"clientName"`
		ClientImage string `json:"clientImage"`
		TourName    string `json:"tourName"`
		Review      string `json:"review"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.ClientName = strings.TrimSpace(input.ClientName)
	input.TourName = strings.TrimSpace(input.TourName)
	input.Review = strings.TrimSpace(input.Review)
	if input.ClientName == "" || input.TourName == "" || input.Review == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "clientName, tourName and review are required")
		return
	}

	now := time.Now()
	testimonial := models.Testimonial{
		ClientName:   input.ClientName,
		ClientImage:  strings.TrimSpace(input.ClientImage),
		TourName:     input.TourName,
		Review:       input.Review,
		ActiveStatus: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := db.TestimonialsCollection.InsertOne(ctx, testimonial)
	if err != nil {
		log.Printf("createTestimonial error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	testimonial.ID = res.InsertedID.(primitive.ObjectID)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Testimonial created", "testimonial": testimonial})
}

// GET /api/admin/testimonials?search=&page=&limit=&sort=&order=
func ListTestimonials(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 5, 100)

	q := r.URL.Query()
	order := -1
	if q.Get("order") == "asc" {
		order = 1
	}
	field := q.Get("sort")
	if field != "clientName" && field != "tourName" && field != "activeStatus" {
		field = "createdAt"
	}

	filter := bson.M{}
	if search := strings.TrimSpace(q.Get("search")); search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = []bson.M{{"clientName": re}, {"tourName": re}}
	}

	totalItems, err := db.TestimonialsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: field, Value: order}}).SetSkip(skip).SetLimit(limit)
	items, err := utils.FindAndDecode[models.Testimonial](ctx, db.TestimonialsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if items == nil {
		items = []models.Testimonial{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":      items,
		"page":       utils.Page(skip, limit),
		"limit":      limit,
		"totalItems": totalItems,
		"totalPages": utils.TotalPages(totalItems, limit),
	})
}

// GET /api/admin/testimonials/:id
func GetTestimonial(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var testimonial models.Testimonial
	err = db.TestimonialsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&testimonial)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Testimonial not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"testimonial": testimonial})
}

// PATCH /api/admin/testimonials/:id
func UpdateTestimonial(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input struct {
		ClientName  *string `json:"clientName"`
		ClientImage *string `json:"clientImage"`
		TourName    *string `json:"tourName"`
		Review      *string `json:"review"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	updates := bson.M{"updatedAt": time.Now()}
	for name, field := range map[string]*string{
		"clientName":  input.ClientName,
		"clientImage": input.ClientImage,
		"tourName":    input.TourName,
		"review":      input.Review,
	} {
		if field == nil {
			continue
		}
		value := strings.TrimSpace(*field)
		if value == "" && name != "clientImage" {
			utils.RespondWithError(w, http.StatusBadRequest, name+" cannot be empty")
			return
		}
		updates[name] = value
	}

	var testimonial models.Testimonial
	err = db.TestimonialsCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&testimonial)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Testimonial not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Testimonial updated", "testimonial": testimonial})
}

// PATCH /api/admin/testimonials/:id/status
func UpdateTestimonialStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	var testimonial models.Testimonial
	err = db.TestimonialsCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"activeStatus": *input.ActiveStatus, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&testimonial)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Testimonial not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Status updated", "testimonial": testimonial})
}
