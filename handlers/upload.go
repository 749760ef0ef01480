// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/danielhkuo/updateshub/middleware"
	"github.com/danielhkuo/updateshub/models"
	"github.com/danielhkuo/updateshub/storage"
)

// MaxUploadFiles caps POST /api/upload/multiple
const MaxUploadFiles = 10

// multipart memory threshold; larger parts spill to temp files
const formMemory = 8 << 20

// ImageSaver stores one uploaded image and returns its public URL.
// Remove takes such a URL and deletes the stored file.
type ImageSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(url string) error
}

type UploadHandler struct {
	images  ImageSaver
	maxSize int64
}

// NewUploadHandler builds an upload handler. maxSize bounds a single file;
// requests are cut off at MaxUploadFiles times that.
func NewUploadHandler(images ImageSaver, maxSize int64) *UploadHandler {
	return &UploadHandler{images: images, maxSize: maxSize}
}

// Single handles POST /api/upload with one file in the "image" field
func (h *UploadHandler) Single(w http.ResponseWriter, r *http.Request) {
	files, ok := h.parseForm(w, r, "image")
	if !ok {
		return
	}
	if len(files) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No image uploaded")
		return
	}

	url, err := h.images.Save(files[0])
	if err != nil {
		h.saveError(w, err)
		return
	}

	slog.Info("image uploaded", "url", url, "size", files[0].Size)

	middleware.JSONResponse(w, http.StatusOK, models.UploadResponse{
		Message: "Image uploaded",
		Image:   url,
	})
}

// Multiple handles POST /api/upload/multiple with up to MaxUploadFiles
// files in the "images" field
func (h *UploadHandler) Multiple(w http.ResponseWriter, r *http.Request) {
	files, ok := h.parseForm(w, r, "images")
	if !ok {
		return
	}
	if len(files) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No images uploaded")
		return
	}
	if len(files) > MaxUploadFiles {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("At most %d images can be uploaded at once", MaxUploadFiles))
		return
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := h.images.Save(fh)
		if err != nil {
			h.discard(urls)
			h.saveError(w, err)
			return
		}
		urls = append(urls, url)
	}

	slog.Info("images uploaded", "count", len(urls))

	middleware.JSONResponse(w, http.StatusOK, models.UploadMultipleResponse{
		Message: "Images uploaded",
		Images:  urls,
	})
}

func (h *UploadHandler) parseForm(w http.ResponseWriter, r *http.Request, field string) ([]*multipart.FileHeader, bool) {
	if h.maxSize > 0 {
		// Room for every file plus the multipart framing
		r.Body = http.MaxBytesReader(w, r.Body, h.maxSize*MaxUploadFiles+1<<20)
	}

	if err := r.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return nil, false
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Expected a multipart/form-data upload")
		return nil, false
	}
	// net/http removes spilled temp files once the handler returns
	return r.MultipartForm.File[field], true
}

// discard removes images saved earlier in a batch that failed
func (h *UploadHandler) discard(urls []string) {
	for _, url := range urls {
		if err := h.images.Remove(url); err != nil {
			slog.Warn("failed to remove partial upload", "url", url, "error", err)
		}
	}
}

func (h *UploadHandler) saveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrUnsupportedFormat):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrTooLarge):
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, err.Error())
	default:
		slog.Error("failed to save upload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Upload failed")
	}
}
