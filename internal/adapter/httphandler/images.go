package httphandler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/storeworks/storefront/internal/core/port"
)

// POST v1/products/{id}/images multipart field "image" admin (201 Created)
// GET v1/images/{id} (200 OK, 404 Not found)

const (
	maxImageSize   = 8 << 20
	imageURLPrefix = "/v1/images/"
)

type ImageHandler struct {
	images port.ImageStore
}

func RegisterImages(
	mux *http.ServeMux, auth Authenticator, images port.ImageStore,
) {
	h := ImageHandler{images}
	mux.HandleFunc(
		"POST /v1/products/{id}/images", auth.RequireAdmin(h.PostImage),
	)
	mux.HandleFunc("GET /v1/images/{id}", h.GetImage)
}

type imageResponse struct {
	ImageID string `json:"image_id"`
	URL     string `json:"url"`
}

func (h ImageHandler) PostImage(w http.ResponseWriter, r *http.Request) {
	const op = "ImageHandler.PostImage"
	log := slog.With("op", op)

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		http.Error(w, "invalid multipart data", http.StatusBadRequest)
		log.Warn("failed to parse multipart form", "err", err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image field is required", http.StatusBadRequest)
		log.Warn("missing image field", "err", err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		http.Error(w, "image content type is required",
			http.StatusUnsupportedMediaType)
		log.Warn("unexpected image content type", "contentType", contentType)
		return
	}

	imageID, err := h.images.UploadImage(
		r.Context(), header.Filename, contentType, file,
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, imageResponse{
		ImageID: imageID,
		URL:     imageURLPrefix + imageID,
	})
	log.Info("image uploaded",
		"productID", r.PathValue("id"), "imageID", imageID)
}

func (h ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	const op = "ImageHandler.GetImage"
	log := slog.With("op", op)

	rc, contentType, err := h.images.DownloadImage(
		r.Context(), r.PathValue("id"),
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}
	defer rc.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if _, err := io.Copy(w, rc); err != nil {
		log.Error("failed to write image body", "err", err)
	}
}
