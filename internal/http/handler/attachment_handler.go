package handler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/storage"
	"go.uber.org/zap"
)

// AttachmentHandler stores the vehicle images owners reference from quote requests
type AttachmentHandler struct {
	storage     storage.Storage
	maxUploadMB int64
	logger      *zap.Logger
}

func NewAttachmentHandler(store storage.Storage, maxUploadMB int64, logger *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		storage:     store,
		maxUploadMB: maxUploadMB,
		logger:      logger,
	}
}

// @Summary Upload image
// @Description Stores an image and returns the reference to put in a quote request's imageRefs
// @Tags Attachments
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "JPEG, PNG, WebP or HEIC image"
// @Success 201 {object} domain.AttachmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Failure 415 {object} domain.APIError
// @Security BearerAuth
// @Router /attachments [post]
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	limit := h.maxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	// trust the bytes over the client's header
	buffered := bufio.NewReaderSize(file, 4096)
	head, _ := buffered.Peek(3072)
	contentType := mimetype.Detect(head).String()
	if contentType == "application/octet-stream" {
		contentType = header.Header.Get("Content-Type")
	}

	reference, size, err := h.storage.Upload(r.Context(), contentType, buffered)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			respondWithError(w, http.StatusUnsupportedMediaType, "Only JPEG, PNG, WebP and HEIC images are accepted")
			return
		}
		h.logger.Error("failed to upload image", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	respondJSON(w, http.StatusCreated, domain.AttachmentDTO{
		Reference:   reference,
		Filename:    header.Filename,
		ContentType: storage.ContentTypeFor(reference),
		Size:        size,
	})
}

// @Summary Download image
// @Tags Attachments
// @Produce image/jpeg
// @Produce image/png
// @Param ref path string true "Image reference"
// @Success 200 {file} file
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /attachments/{ref} [get]
func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "ref")

	reader, err := h.storage.Download(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidReference):
			respondWithError(w, http.StatusBadRequest, "Invalid image reference")
		case errors.Is(err, storage.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Image not found")
		default:
			h.logger.Error("failed to download image", zap.Error(err), zap.String("reference", reference))
			respondWithError(w, http.StatusInternalServerError, "Failed to download image")
		}
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", storage.ContentTypeFor(reference))
	w.Header().Set("Cache-Control", "private, max-age=86400, immutable")
	_, _ = io.Copy(w, reader)
}
