package auth

import (
	"context"
	"errors"
	"testing"

	"trippens/models"
)

type fakeAdmins struct {
	admins    []models.Admin
	countErr  error
	insertErr error
}

func (s *fakeAdmins) CountAdmins(_ context.Context) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return int64(len(s.admins)), nil
}

func (s *fakeAdmins) InsertAdmin(_ context.Context, admin models.Admin) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.admins = append(s.admins, admin)
	return nil
}

func TestRegisterAdminFirstOnly(t *testing.T) {
	store := &fakeAdmins{}
	ctx := context.Background()

	if err := registerAdmin(ctx, store, "Admin@Example.com", "hashed"); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if len(store.admins) != 1 {
		t.Fatalf("stored %d admins, want 1", len(store.admins))
	}
	got := store.admins[0]
	if got.Email != "admin@example.com" {
		t.Errorf("email not lowercased: %q", got.Email)
	}
	if got.Role != "admin" {
		t.Errorf("role = %q", got.Role)
	}

	err := registerAdmin(ctx, store, "second@example.com", "hashed")
	if !errors.Is(err, ErrAdminExists) {
		t.Fatalf("second registration error = %v, want ErrAdminExists", err)
	}
	if len(store.admins) != 1 {
		t.Fatal("second registration must not write")
	}
}

func TestRegisterAdminCountError(t *testing.T) {
	store := &fakeAdmins{countErr: errors.New("store down")}

	err := registerAdmin(context.Background(), store, "admin@example.com", "hashed")
	if err == nil || errors.Is(err, ErrAdminExists) {
		t.Fatalf("error = %v, want store error", err)
	}
	if len(store.admins) != 0 {
		t.Fatal("no write may happen when the existence check fails")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := hashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	if hashed == "s3cret-pass" {
		t.Fatal("password stored in plain text")
	}
	if !checkPassword(hashed, "s3cret-pass") {
		t.Fatal("correct password rejected")
	}
	if checkPassword(hashed, "wrong-pass") {
		t.Fatal("wrong password accepted")
	}
}
