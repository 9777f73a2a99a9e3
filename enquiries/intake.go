package enquiries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trippens/db"
	"trippens/mailer"
	"trippens/models"
	"trippens/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrRelay marks a notification failure that happened after the enquiry
// was already persisted. The lead is saved either way.
var ErrRelay = errors.New("notification relay failed")

// ValidationError rejects an enquiry before any write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// EnquiryStore persists lead records. Enquiries are append-only.
type EnquiryStore interface {
	InsertEnquiry(ctx context.Context, enquiry models.Enquiry) (primitive.ObjectID, error)
}

type mongoEnquiries struct{}

func (mongoEnquiries) InsertEnquiry(ctx context.Context, enquiry models.Enquiry) (primitive.ObjectID, error) {
	res, err := db.EnquiriesCollection.InsertOne(ctx, enquiry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// Service runs enquiry intake: validate, persist, then notify. Both
// channels share one validation rule set.
type Service struct {
	store EnquiryStore
	mail  mailer.Mailer
	cfg   mailer.Config
}

func NewService(store EnquiryStore, mail mailer.Mailer, cfg mailer.Config) *Service {
	return &Service{store: store, mail: mail, cfg: cfg}
}

func validate(fullName, phone, email string) *ValidationError {
	if fullName == "" {
		return &ValidationError{Msg: "Full name is required"}
	}
	if !utils.ValidPhone(phone) {
		return &ValidationError{Msg: "Invalid phone number"}
	}
	if !utils.ValidEmail(email) {
		return &ValidationError{Msg: "Invalid email"}
	}
	return nil
}

// Submit persists one enquiry tagged with the channel. For the email
// channel it then dispatches a staff notification and a submitter
// acknowledgment; a relay failure is reported as ErrRelay but the write
// has already happened, so callers must not equate error with "nothing
// was saved".
func (s *Service) Submit(ctx context.Context, channel, fullName, phone, email, message string) (models.Enquiry, error) {
	fullName = strings.TrimSpace(fullName)
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	if err := validate(fullName, phone, email); err != nil {
		return models.Enquiry{}, err
	}

	enquiry := models.Enquiry{
		FullName:  fullName,
		Phone:     phone,
		Email:     email,
		Message:   message,
		Channel:   channel,
		CreatedAt: time.Now(),
	}

	id, err := s.store.InsertEnquiry(ctx, enquiry)
	if err != nil {
		return models.Enquiry{}, err
	}
	enquiry.ID = id

	if channel == models.ChannelEmail {
		if err := s.notify(ctx, enquiry); err != nil {
			return enquiry, fmt.Errorf("%w: %v", ErrRelay, err)
		}
	}

	return enquiry, nil
}

func (s *Service) notify(ctx context.Context, enquiry models.Enquiry) error {
	staff := mailer.Message{
		To:      s.cfg.StaffTo,
		ReplyTo: enquiry.Email,
		Subject: "New enquiry from " + enquiry.FullName,
		Body: fmt.Sprintf("Name: %s\nPhone: %s\nEmail: %s\n\n%s\n",
			enquiry.FullName, enquiry.Phone, enquiry.Email, enquiry.Message),
	}
	if err := s.mail.Send(ctx, staff); err != nil {
		return err
	}

	ack := mailer.Message{
		To:      enquiry.Email,
		Subject: "We received your enquiry",
		Body: fmt.Sprintf("Hi %s,\n\nThanks for reaching out. Our team will get back to you shortly.\n\nTrippens\n",
			enquiry.FullName),
	}
	return s.mail.Send(ctx, ack)
}
