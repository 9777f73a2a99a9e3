package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trippens/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID: "64f000000000000000000001",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func protected() (httprouter.Handle, *bool) {
	called := false
	return Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestAuthenticateMissingToken(t *testing.T) {
	handle, called := protected()
	w := httptest.NewRecorder()
	handle(w, httptest.NewRequest("GET", "/x", nil), nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if *called {
		t.Fatal("handler must not run")
	}
}

func TestAuthenticateGarbageToken(t *testing.T) {
	handle, called := protected()
	r := httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	handle(w, r, nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if *called {
		t.Fatal("handler must not run")
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	handle, _ := protected()
	r := httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "admin", -time.Hour))
	w := httptest.NewRecorder()
	handle(w, r, nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateNonAdminRole(t *testing.T) {
	handle, called := protected()
	r := httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "viewer", time.Hour))
	w := httptest.NewRecorder()
	handle(w, r, nil)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if *called {
		t.Fatal("handler must not run")
	}
}

func TestAuthenticateAdminBearer(t *testing.T) {
	var gotUserID, gotRole string
	handle := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "admin", time.Hour))
	w := httptest.NewRecorder()
	handle(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotUserID != "64f000000000000000000001" || gotRole != "admin" {
		t.Fatalf("context carries %q/%q", gotUserID, gotRole)
	}
}

func TestAuthenticateCookieToken(t *testing.T) {
	handle, called := protected()
	r := httptest.NewRequest("GET", "/x", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: signToken(t, "admin", time.Hour)})
	w := httptest.NewRecorder()
	handle(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !*called {
		t.Fatal("handler did not run")
	}
}

func TestValidateJWT(t *testing.T) {
	if _, err := ValidateJWT(""); err == nil {
		t.Fatal("empty token accepted")
	}
	if _, err := ValidateJWT("garbage"); err == nil {
		t.Fatal("garbage token accepted")
	}

	claims, err := ValidateJWT(signToken(t, "admin", time.Hour))
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.Role != "admin" {
		t.Fatalf("role = %q", claims.Role)
	}
}
