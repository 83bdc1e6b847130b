package http

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"

	"rentmart-backend/internal/storage"

	"github.com/gorilla/mux"
)

// ImageHandler serves product image upload and download for the local
// image store.
type ImageHandler struct {
	images storage.ImageStore
}

func NewImageHandler(images storage.ImageStore) *ImageHandler {
	return &ImageHandler{images: images}
}

type uploadURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// HandleUploadURL issues an upload target and storage key for a new image.
func (h *ImageHandler) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Filename == "" {
		writeError(w, http.StatusBadRequest, "filename is required")
		return
	}

	uploadURL, key, err := h.images.UploadURL(r.Context(), req.Filename, req.ContentType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create upload url")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"upload_url": uploadURL, "key": key})
}

// HandleUpload accepts the image bytes for a previously issued upload target.
func (h *ImageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing key parameter")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/gif" && contentType != "image/webp" {
		writeError(w, http.StatusBadRequest, "unsupported content type")
		return
	}

	if err := h.images.Save(key, r.Body); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save image")
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleDownload streams a stored image.
func (h *ImageHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing image key")
		return
	}

	file, err := h.images.Open(key)
	if err != nil {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	case ".webp":
		contentType = "image/webp"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}
