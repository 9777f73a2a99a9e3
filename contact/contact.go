package contact

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"trippens/db"
	"trippens/models"
	"trippens/utils"

	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type contactInput struct {
	Addresses []models.AddressPair `json:"addresses"`
	Landline  string               `json:"landline"`
	Email     string               `json:"email"`
}

func validateInput(input *contactInput) string {
	if len(input.Addresses) == 0 {
		return "At least one address is required"
	}
	for i := range input.Addresses {
		input.Addresses[i].Address = strings.TrimSpace(input.Addresses[i].Address)
		input.Addresses[i].Phone = strings.TrimSpace(input.Addresses[i].Phone)
		if input.Addresses[i].Address == "" {
			return "Address cannot be empty"
		}
		if !utils.ValidPhone(input.Addresses[i].Phone) {
			return "Invalid phone number"
		}
	}
	input.Email = strings.TrimSpace(input.Email)
	if input.Email != "" && !utils.ValidEmail(input.Email) {
		return "Invalid email"
	}
	input.Landline = strings.TrimSpace(input.Landline)
	return ""
}

// GET /api/admin/contact
func GetContact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var contact models.Contact
	err := db.ContactCollection.FindOne(ctx, bson.M{}).Decode(&contact)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Contact details not set")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"contact": contact})
}

// PUT /api/admin/contact
//
// The contact document is a singleton: the write always targets the one
// existing document and inserts only when none exists yet.
func UpsertContact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input contactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := validateInput(&input); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	var contact models.Contact
	err := db.ContactCollection.FindOneAndUpdate(
		ctx,
		bson.M{},
		bson.M{
			"$set": bson.M{
				"addresses": input.Addresses,
				"landline":  input.Landline,
				"email":     input.Email,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&contact)
	if err != nil {
		log.Printf("upsertContact error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Contact details saved", "contact": contact})
}

// PATCH /api/admin/contact/:id
func UpdateContact(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var input struct {
		Addresses *[]models.AddressPair `json:"addresses"`
		Landline  *string               `json:"landline"`
		Email     *string               `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	updates := bson.M{"updatedAt": time.Now()}
	if input.Addresses != nil {
		tmp := contactInput{Addresses: *input.Addresses}
		if msg := validateInput(&tmp); msg != "" {
			utils.RespondWithError(w, http.StatusBadRequest, msg)
			return
		}
		updates["addresses"] = tmp.Addresses
	}
	if input.Landline != nil {
		updates["landline"] = strings.TrimSpace(*input.Landline)
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email != "" && !utils.ValidEmail(email) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid email")
			return
		}
		updates["email"] = email
	}

	var contact models.Contact
	err = db.ContactCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&contact)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Contact details not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Contact details updated", "contact": contact})
}

// GET /api/public/contact
func PublicContact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var contact models.Contact
	err := db.ContactCollection.FindOne(ctx, bson.M{}).Decode(&contact)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Contact details not set")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"addresses": contact.Addresses,
		"landline":  contact.Landline,
		"email":     contact.Email,
	})
}

// GET /api/public/whatsapp-qr
//
// Renders a wa.me QR code for the first listed phone number so the site
// can show a scannable chat entry point.
func WhatsappQR(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var contact models.Contact
	err := db.ContactCollection.FindOne(ctx, bson.M{}).Decode(&contact)
	if err == mongo.ErrNoDocuments || (err == nil && len(contact.Addresses) == 0) {
		utils.RespondWithError(w, http.StatusNotFound, "Contact details not set")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	phone := strings.TrimPrefix(contact.Addresses[0].Phone, "+")
	png, err := qrcode.Encode("https://wa.me/"+phone, qrcode.Medium, 256)
	if err != nil {
		log.Printf("whatsappQR encode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
