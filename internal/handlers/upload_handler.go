package handlers

import (
	"net/http"

	"github.com/ecodrive/ecodrive-api/internal/services"
	"github.com/ecodrive/ecodrive-api/internal/utils"
)

const maxUploadSize = 10 << 20 // 10 MB

// UploadHandler handles car image uploads
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(us *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: us}
}

// UploadImage handles a multipart image upload and returns the hosted URL
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "File too large or invalid multipart form")
		return
	}

	_, fileHeader, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing file in request")
		return
	}

	url, err := h.uploadService.UploadFile(r.Context(), fileHeader)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"url": url})
}
