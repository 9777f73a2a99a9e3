package enquiries

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"trippens/db"
	"trippens/mailer"
	"trippens/models"
	"trippens/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Handler exposes enquiry intake and the admin enquiry views.
type Handler struct {
	svc      *Service
	whatsapp string
}

// NewHandler wires the intake service to the mongo store and the mail
// relay. The WhatsApp business number comes from WHATSAPP_NUMBER.
func NewHandler(mail mailer.Mailer, cfg mailer.Config) *Handler {
	return &Handler{
		svc:      NewService(mongoEnquiries{}, mail, cfg),
		whatsapp: strings.TrimPrefix(os.Getenv("WHATSAPP_NUMBER"), "+"),
	}
}

type enquiryInput struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

// POST /api/public/enquiries/email
func (h *Handler) SubmitEmail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var input enquiryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	enquiry, err := h.svc.Submit(ctx, models.ChannelEmail, input.FullName, input.Phone, input.Email, input.Message)
	var verr *ValidationError
	if errors.As(err, &verr) {
		utils.RespondWithError(w, http.StatusBadRequest, verr.Msg)
		return
	}
	if errors.Is(err, ErrRelay) {
		log.Printf("enquiry %s saved but relay failed: %v", enquiry.ID.Hex(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send notification")
		return
	}
	if err != nil {
		log.Printf("submitEnquiry error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Enquiry submitted", "enquiry": enquiry})
}

// POST /api/public/enquiries/whatsapp
//
// Persists the lead, then hands back a wa.me link with the message
// prefilled so the frontend can open the chat.
func (h *Handler) SubmitWhatsapp(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input enquiryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	enquiry, err := h.svc.Submit(ctx, models.ChannelWhatsapp, input.FullName, input.Phone, input.Email, input.Message)
	var verr *ValidationError
	if errors.As(err, &verr) {
		utils.RespondWithError(w, http.StatusBadRequest, verr.Msg)
		return
	}
	if err != nil {
		log.Printf("submitEnquiry error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	text := "Hi, I'm " + enquiry.FullName + "."
	if enquiry.Message != "" {
		text += " " + enquiry.Message
	}
	link := "https://wa.me/" + h.whatsapp + "?text=" + url.QueryEscape(text)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message":      "Enquiry submitted",
		"enquiry":      enquiry,
		"whatsappLink": link,
	})
}

// listFilter builds the admin filter from channel/from/to/search params.
func listFilter(q url.Values) (bson.M, string) {
	filter := bson.M{}

	if channel := q.Get("channel"); channel != "" {
		if channel != models.ChannelEmail && channel != models.ChannelWhatsapp {
			return nil, "Unknown channel"
		}
		filter["channel"] = channel
	}

	created := bson.M{}
	if from := q.Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, "Invalid from date"
		}
		created["$gte"] = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, "Invalid to date"
		}
		created["$lt"] = t.AddDate(0, 0, 1)
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}

	if search := strings.TrimSpace(q.Get("search")); search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = []bson.M{{"fullName": re}, {"phone": re}, {"email": re}}
	}

	return filter, ""
}

// GET /api/admin/enquiries?channel=&from=&to=&search=&page=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter, msg := listFilter(r.URL.Query())
	if msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	skip, limit := utils.ParsePagination(r, 10, 100)

	totalItems, err := db.EnquiriesCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(skip).SetLimit(limit)
	items, err := utils.FindAndDecode[models.Enquiry](ctx, db.EnquiriesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if items == nil {
		items = []models.Enquiry{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":      items,
		"page":       utils.Page(skip, limit),
		"limit":      limit,
		"totalItems": totalItems,
		"totalPages": utils.TotalPages(totalItems, limit),
	})
}
