package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/storage"

	"github.com/gorilla/mux"
)

// UploadPhoto takes the raw image as the request body, tagged by phase and type.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	vars := mux.Vars(r)
	body := r.Body
	if h.maxPhotoBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxPhotoBytes)
	}

	photo, err := h.photos.UploadPhoto(r.Context(), staffID(r.Context()), id,
		domain.PhotoPhase(vars["phase"]), domain.PhotoType(vars["type"]),
		r.Header.Get("Content-Type"), body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = storage.ErrTooLarge
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}

func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	id, err := bookingID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	photos, err := h.photos.ListPhotos(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, photos)
}

// DownloadPhoto streams a stored photo by its storage key.
func (h *Handler) DownloadPhoto(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeMessage(w, http.StatusBadRequest, "missing key parameter")
		return
	}

	file, size, err := h.photos.OpenPhoto(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".heic":
		contentType = "image/heic"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))

	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("photo download interrupted", "key", key, "error", err)
	}
}
