package team

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

// POST /api/admin/team
func CreateMember(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		Name        string `json:"name"`
		Post        string `json:"post"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Post = strings.TrimSpace(input.Post)
	if input.Name == "" || input.Post == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name and post are required")
		return
	}

	now := time.Now()
	member := models.TeamMember{
		Name:         input.Name,
		Post:         input.Post,
		Description:  strings.TrimSpace(input.Description),
		Image:        strings.TrimSpace(input.Image),
		ActiveStatus: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := db.TeamMembersCollection.InsertOne(ctx, member)
	if err != nil {
		log.Printf("createTeamMember error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	member.ID = res.InsertedID.(primitive.ObjectID)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Team member created", "member": member})
}

// GET /api/admin/team?search=&page=&limit=&sort=&order=
func ListMembers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 5, 100)

	q := r.URL.Query()
	order := -1
	if q.Get("order") == "asc" {
		order = 1
	}
	field := q.Get("sort")
	if field != "name" && field != "post" && field != "activeStatus" {
		field = "createdAt"
	}

	filter := bson.M{}
	if search := strings.TrimSpace(q.Get("search")); search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = []bson.M{{"name": re}, {"post": re}}
	}

	totalItems, err := db.TeamMembersCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: field, Value: order}}).SetSkip(skip).SetLimit(limit)
	items, err := utils.FindAndDecode[models.TeamMember](ctx, db.TeamMembersCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if items == nil {
		items = []models.TeamMember{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":      items,
		"page":       utils.Page(skip, limit),
		"limit":      limit,
		"totalItems": totalItems,
		"totalPages": utils.TotalPages(totalItems, limit),
	})
}

// GET /api/admin/team/:id
func GetMember(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var member models.TeamMember
	err = db.TeamMembersCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Team member not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"member": member})
}

// PATCH /api/admin/team/:id
func UpdateMember(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Post        *string `json:"post"`
		Description *string `json:"description"`
		Image       *string `json:"image"`
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
	if input.Post != nil {
		post := strings.TrimSpace(*input.Post)
		if post == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "post cannot be empty")
			return
		}
		updates["post"] = post
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Image != nil {
		updates["image"] = strings.TrimSpace(*input.Image)
	}

	var member models.TeamMember
	err = db.TeamMembersCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&member)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Team member not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Team member updated", "member": member})
}

// PATCH /api/admin/team/:id/status
func UpdateMemberStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	var member models.TeamMember
	err = db.TeamMembersCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"activeStatus": *input.ActiveStatus, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&member)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Team member not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Status updated", "member": member})
}
