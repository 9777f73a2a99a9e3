package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"trippens/db"
	"trippens/globals"
	"trippens/middleware"
	"trippens/models"
	"trippens/rdx"
	"trippens/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const tokenTTL = 24 * time.Hour

// ErrAdminExists means an admin document is already present; exactly
// one back-office account may ever be registered.
var ErrAdminExists = errors.New("admin already exists")

// adminStore is the slice of the document store registration needs.
type adminStore interface {
	CountAdmins(ctx context.Context) (int64, error)
	InsertAdmin(ctx context.Context, admin models.Admin) error
}

type mongoAdmins struct{}

func (mongoAdmins) CountAdmins(ctx context.Context) (int64, error) {
	return db.AdminCollection.CountDocuments(ctx, bson.M{})
}

func (mongoAdmins) InsertAdmin(ctx context.Context, admin models.Admin) error {
	_, err := db.AdminCollection.InsertOne(ctx, admin)
	return err
}

// registerAdmin persists the first and only admin account. The
// existence check is application-level; a racing pair of first
// registrations is caught by the unique email index at worst.
func registerAdmin(ctx context.Context, store adminStore, email, hashedPassword string) error {
	count, err := store.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAdminExists
	}

	now := time.Now()
	return store.InsertAdmin(ctx, models.Admin{
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  hashedPassword,
		Role:      "admin",
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func registerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err = registerAdmin(ctx, mongoAdmins{}, input.Email, hashed)
	switch {
	case errors.Is(err, ErrAdminExists):
		utils.RespondWithError(w, http.StatusConflict, "Admin already exists")
	case mongo.IsDuplicateKeyError(err):
		utils.RespondWithError(w, http.StatusConflict, "Admin already exists")
	case err != nil:
		log.Printf("registerAdmin error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
	default:
		utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Admin registered successfully"})
	}
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	err := db.AdminCollection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&admin)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if !checkPassword(admin.Password, input.Password) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	tokenString, err := generateToken(admin)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// Mirror the session in Redis so logout can revoke it.
	if err := rdx.RdxSet("auth:token:"+admin.ID.Hex(), tokenString, tokenTTL); err != nil {
		log.Printf("Redis token mirror failed: %v", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Login successful",
		"token":   tokenString,
		"admin": utils.M{
			"_id":       admin.ID,
			"email":     admin.Email,
			"role":      admin.Role,
			"createdAt": admin.CreatedAt,
		},
	})
}

func meHandler(w http.ResponseWriter, r *http.Request) {
	tokenString := bearerOrCookie(r)
	if tokenString == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	claims, err := middleware.ValidateJWT(tokenString)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"role": claims.Role, "userId": claims.UserID})
}

func logoutHandler(w http.ResponseWriter, r *http.Request) {
	if tokenString := bearerOrCookie(r); tokenString != "" {
		if claims, err := middleware.ValidateJWT(tokenString); err == nil {
			if err := rdx.RdxDel("auth:token:" + claims.UserID); err != nil {
				log.Printf("Redis token delete failed: %v", err)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Logout successful"})
}

func bearerOrCookie(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie("token"); err == nil {
		return c.Value
	}
	return ""
}

func generateToken(admin models.Admin) (string, error) {
	claims := middleware.Claims{
		UserID: admin.ID.Hex(),
		Role:   admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
