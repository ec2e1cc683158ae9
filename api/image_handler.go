package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sheikhshariarnehal/portfolio-backend/errs"
	"github.com/sheikhshariarnehal/portfolio-backend/store"
)

// MIME types accepted for project image uploads.
var allowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

type imageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	imageRepo   *store.ImageRepo
	maxFileSize int64
}

func newImageHandler(imageRepo *store.ImageRepo, maxFileSize int64) imageHandler {
	logger := log.With().Str("handlerName", "imageHandler").Logger()

	return imageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		imageRepo:   imageRepo,
		maxFileSize: maxFileSize,
	}
}

// uploadImage accepts a single multipart file under the field name
// "image" and stores it in the shared image directory. The response
// carries the logical (extension-less) filename that project records
// reference.
func (h imageHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

		if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
			h.logger.Error().Err(err).Msg("Failed to parse multipart form")
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField(
				"upload failed", "image",
				fmt.Sprintf("File size exceeds the maximum allowed limit of %dMB or the form is malformed", h.maxFileSize/(1024*1024))))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField(
				"no file uploaded", "image", `File must be uploaded with field name "image"`))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !isAllowedImageType(contentType) {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField(
				"invalid file type", "image",
				fmt.Sprintf("Allowed types: %s", strings.Join(allowedImageTypes, ", "))))
			return
		}

		info, err := h.imageRepo.Save(header.Filename, file)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, map[string]interface{}{
			"filename":     info.Filename,
			"originalName": header.Filename,
			"size":         header.Size,
			"mimetype":     contentType,
			"path":         info.FullName,
		}, "Image uploaded successfully")
	}
}

// listImages enumerates the stored image files.
func (h imageHandler) listImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		images, err := h.imageRepo.List()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"success": true,
			"data":    images,
			"total":   len(images),
		})
	}
}

// deleteImage removes a stored image by its logical name.
func (h imageHandler) deleteImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logical := chi.URLParam(r, "filename")
		if logical == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing filename"))
			return
		}

		deletedFile, err := h.imageRepo.Delete(logical)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, map[string]string{
			"filename":    logical,
			"deletedFile": deletedFile,
		}, "Image deleted successfully")
	}
}

func isAllowedImageType(contentType string) bool {
	for _, allowed := range allowedImageTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
