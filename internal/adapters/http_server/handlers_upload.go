package httpserver

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

const (
	maxUploadPhotos  = 100
	maxUploadMemory  = 32 << 20
	uploadConcurrent = 4
)

// upload accepts a multipart batch of photos and writes each under a
// generated filename. Saves run concurrently, bounded by a weighted
// semaphore; the response preserves the order the files were sent in.
func (h *Handlers) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_upload", "Request must be multipart form data")
		return
	}
	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "missing_photos", "No photos in request")
		return
	}
	if len(files) > maxUploadPhotos {
		files = files[:maxUploadPhotos]
	}

	ctx := r.Context()
	sem := semaphore.NewWeighted(uploadConcurrent)
	names := make([]string, len(files))
	errs := make([]error, len(files))
	var wg sync.WaitGroup

	for i, fh := range files {
		if err := sem.Acquire(ctx, 1); err != nil {
			errs[i] = err
			break
		}
		wg.Add(1)
		go func(i int, fh *multipart.FileHeader) {
			defer wg.Done()
			defer sem.Release(1)
			names[i], errs[i] = h.savePhoto(fh)
		}(i, fh)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			log.Error().Err(err).Msg("photo save failed")
			writeError(w, http.StatusInternalServerError, "upload_failed", "Failed to store photos")
			return
		}
	}
	respondJSON(w, http.StatusOK, names)
}

func (h *Handlers) savePhoto(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := "photo-" + uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		return "", err
	}

	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(h.UploadDir, name))
		return "", err
	}
	return name, nil
}

type uploadByLinkRequest struct {
	Link string `json:"link"`
}

func (h *Handlers) uploadByLink(w http.ResponseWriter, r *http.Request) {
	var req uploadByLinkRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Link == "" {
		writeError(w, http.StatusBadRequest, "missing_link", "Image link is required")
		return
	}

	name, err := h.Photos.Fetch(r.Context(), req.Link)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		log.Warn().Err(err).Str("link", req.Link).Msg("photo download failed")
		writeError(w, http.StatusUnprocessableEntity, "download_failed", "Failed to download image")
		return
	}
	respondJSON(w, http.StatusOK, name)
}
