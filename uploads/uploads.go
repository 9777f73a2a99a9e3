package uploads

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"trippens/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const (
	// BaseDir is where uploaded images land; served at /static/uploads.
	BaseDir = "./static/uploads"

	thumbnailWidth = 300
	maxUploadBytes = 10 << 20
)

// UploadImage handles POST /api/admin/uploads. It accepts one multipart
// "image" field, stores the original plus a 300px-wide thumbnail, and
// returns their public URLs.
func UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Could not decode image")
		return
	}

	if err := utils.EnsureDir(filepath.Join(BaseDir, "thumb")); err != nil {
		log.Printf("upload mkdir error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	ext := strings.ToLower(filepath.Ext(utils.SanitizeFilename(header.Filename)))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext

	originalPath := filepath.Join(BaseDir, name)
	if err := imaging.Save(img, originalPath); err != nil {
		log.Printf("upload save error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(BaseDir, "thumb", name)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		log.Printf("upload thumbnail error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save thumbnail")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message":      "Image uploaded",
		"url":          "/static/uploads/" + name,
		"thumbnailUrl": "/static/uploads/thumb/" + name,
	})
}
