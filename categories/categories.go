package categories

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

// nameFilter matches a category name case-insensitively, exact match.
func nameFilter(name string) bson.M {
	return bson.M{"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}}
}

// POST /api/admin/categories
func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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
	description := strings.TrimSpace(input.Description)
	coverImage := strings.TrimSpace(input.CoverImage)
	if name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Description is required")
		return
	}
	if coverImage == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Cover image is required")
		return
	}

	count, err := db.CategoriesCollection.CountDocuments(ctx, nameFilter(name))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Category name already exists")
		return
	}

	now := time.Now()
	category := models.Category{
		Name:         name,
		Description:  description,
		CoverImage:   coverImage,
		ActiveStatus: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := db.CategoriesCollection.InsertOne(ctx, category)
	if mongo.IsDuplicateKeyError(err) {
		// the unique index catches the create race
		utils.RespondWithError(w, http.StatusConflict, "Category name already exists")
		return
	}
	if err != nil {
		log.Printf("createCategory error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	category.ID = res.InsertedID.(primitive.ObjectID)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Category created", "category": category})
}

// GET /api/admin/categories?search=&page=&limit=&sort=&order=
func ListCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 5, 100)
	sort := listSort(r)

	filter := bson.M{}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	}

	totalItems, err := db.CategoriesCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)
	items, err := utils.FindAndDecode[models.Category](ctx, db.CategoriesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if items == nil {
		items = []models.Category{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":      items,
		"page":       utils.Page(skip, limit),
		"limit":      limit,
		"totalItems": totalItems,
		"totalPages": utils.TotalPages(totalItems, limit),
	})
}

func listSort(r *http.Request) bson.D {
	q := r.URL.Query()
	field := q.Get("sort")
	if field == "" {
		field = "createdAt"
	}
	order := -1
	if q.Get("order") == "asc" {
		order = 1
	}
	allowed := map[string]bool{"createdAt": true, "name": true, "activeStatus": true}
	if !allowed[field] {
		field = "createdAt"
	}
	return bson.D{{Key: field, Value: order}}
}

// PATCH /api/admin/categories/:id/status
//
// Flips the category flag and propagates it to the tours' mirror field.
func UpdateCategoryStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
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

	category, _, err := SetCategoryActive(ctx, mongoStatusStore{}, id, *input.ActiveStatus)
	if err == ErrCategoryNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Printf("updateCategoryStatus error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Status updated", "category": category})
}

// PATCH /api/admin/categories/:id
func UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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
		// renaming re-checks case-insensitive uniqueness against others
		conflictFilter := nameFilter(name)
		conflictFilter["_id"] = bson.M{"$ne": id}
		count, err := db.CategoriesCollection.CountDocuments(ctx, conflictFilter)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
			return
		}
		if count > 0 {
			utils.RespondWithError(w, http.StatusConflict, "Category name already exists")
			return
		}
		updates["name"] = name
	}

	if input.Description == nil || strings.TrimSpace(*input.Description) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Description is required")
		return
	}
	updates["description"] = strings.TrimSpace(*input.Description)

	if input.CoverImage == nil || strings.TrimSpace(*input.CoverImage) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Cover image is required")
		return
	}
	updates["coverImage"] = strings.TrimSpace(*input.CoverImage)

	var category models.Category
	err = db.CategoriesCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&category)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	if mongo.IsDuplicateKeyError(err) {
		utils.RespondWithError(w, http.StatusConflict, "Category name already exists")
		return
	}
	if err != nil {
		log.Printf("updateCategory error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Category updated", "category": category})
}
