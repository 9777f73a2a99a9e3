package enquiries

import (
	"context"
	"errors"
	"testing"

	"trippens/mailer"
	"trippens/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	inserted []models.Enquiry
	err      error
}

func (s *fakeStore) InsertEnquiry(_ context.Context, enquiry models.Enquiry) (primitive.ObjectID, error) {
	if s.err != nil {
		return primitive.NilObjectID, s.err
	}
	s.inserted = append(s.inserted, enquiry)
	return primitive.NewObjectID(), nil
}

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newTestService(store *fakeStore, mail *fakeMailer) *Service {
	return NewService(store, mail, mailer.Config{From: "relay@example.com", StaffTo: "staff@example.com"})
}

func TestSubmitEmailChannel(t *testing.T) {
	store := &fakeStore{}
	mail := &fakeMailer{}
	svc := newTestService(store, mail)

	enquiry, err := svc.Submit(context.Background(), models.ChannelEmail,
		"Asha Nair", "+919876543210", "asha@example.com", "Interested in the Ladakh trip")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if enquiry.ID.IsZero() {
		t.Fatal("enquiry id not set")
	}
	if enquiry.Channel != models.ChannelEmail {
		t.Fatalf("channel = %q", enquiry.Channel)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d records, want 1", len(store.inserted))
	}
	if len(mail.sent) != 2 {
		t.Fatalf("sent %d mails, want staff notification + acknowledgment", len(mail.sent))
	}
	if mail.sent[0].To != "staff@example.com" {
		t.Errorf("staff mail went to %q", mail.sent[0].To)
	}
	if mail.sent[0].ReplyTo != "asha@example.com" {
		t.Errorf("staff mail Reply-To = %q", mail.sent[0].ReplyTo)
	}
	if mail.sent[1].To != "asha@example.com" {
		t.Errorf("acknowledgment went to %q", mail.sent[1].To)
	}
}

// The lead must be persisted even when the relay fails afterwards.
func TestSubmitPersistsBeforeNotify(t *testing.T) {
	store := &fakeStore{}
	mail := &fakeMailer{err: errors.New("relay down")}
	svc := newTestService(store, mail)

	enquiry, err := svc.Submit(context.Background(), models.ChannelEmail,
		"Asha Nair", "9876543210", "asha@example.com", "")
	if !errors.Is(err, ErrRelay) {
		t.Fatalf("error = %v, want ErrRelay", err)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d records, want 1", len(store.inserted))
	}
	if enquiry.ID.IsZero() {
		t.Fatal("the saved enquiry must be returned alongside the relay error")
	}
}

func TestSubmitWhatsappSkipsRelay(t *testing.T) {
	store := &fakeStore{}
	mail := &fakeMailer{err: errors.New("relay down")}
	svc := newTestService(store, mail)

	_, err := svc.Submit(context.Background(), models.ChannelWhatsapp,
		"Asha Nair", "9876543210", "asha@example.com", "hi")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d records, want 1", len(store.inserted))
	}
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name     string
		fullName string
		phone    string
		email    string
	}{
		{"empty name", "", "9876543210", "a@b.c"},
		{"blank name", "   ", "9876543210", "a@b.c"},
		{"short phone", "Asha", "12345", "a@b.c"},
		{"alpha phone", "Asha", "98765432ab", "a@b.c"},
		{"bad email", "Asha", "9876543210", "not-an-email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := newTestService(store, &fakeMailer{})

			// Both channels share the rule set.
			for _, channel := range []string{models.ChannelEmail, models.ChannelWhatsapp} {
				_, err := svc.Submit(context.Background(), channel, tc.fullName, tc.phone, tc.email, "")
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("channel %s: error = %v, want *ValidationError", channel, err)
				}
			}
			if len(store.inserted) != 0 {
				t.Fatal("rejected enquiries must not be persisted")
			}
		})
	}
}

func TestSubmitTrimsFields(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeMailer{})

	_, err := svc.Submit(context.Background(), models.ChannelWhatsapp,
		"  Asha Nair  ", " +919876543210 ", " asha@example.com ", "  hello  ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	got := store.inserted[0]
	if got.FullName != "Asha Nair" || got.Phone != "+919876543210" || got.Email != "asha@example.com" || got.Message != "hello" {
		t.Fatalf("fields not trimmed: %+v", got)
	}
}
