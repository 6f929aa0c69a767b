package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rohits-web03/blogd/internal/utils"
)

const maxImageSize = 10 << 20 // 10 MB

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
}

// UploadImage godoc
// @Summary Upload a post image
// @Description Stores the uploaded image and returns its path. An oldPath form field, when present and superseded, gets its file deleted.
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Param image formData file false "Image file (png/jpg/jpeg)"
// @Param oldPath formData string false "Previous image path to clear"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/post-image [put]
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		badRequest(w, "Invalid file upload form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		// No file attached still succeeds; the client keeps its current image.
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "No file provided",
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		badRequest(w, "Only png, jpg and jpeg images are accepted")
		return
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	ref, err := h.imageStore.Save(r.Context(), name, contentType, file)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to store file",
		})
		return
	}

	if oldPath := r.FormValue("oldPath"); oldPath != "" {
		h.imageMgr.Replace(oldPath, ref)
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "File stored",
		Data: map[string]any{
			"filePath": ref,
			"fileUrl":  h.imageStore.URL(ref),
		},
	})
}
