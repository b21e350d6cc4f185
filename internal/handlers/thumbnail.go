package handlers

import (
	"encoding/json"
	"image"
	"image/jpeg"
	"net/http"
	"time"

	"photo-bridge/internal/logging"
	"photo-bridge/internal/thumbs"
)

// GetThumbnail serves the thumbnail for ?path=, generating it if needed.
// The ?priority= query parameter maps to the engine's scheduling hint:
// high for visible items, medium (default) for near-viewport, low for
// prefetch.
func (h *Handlers) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	path, err := h.resolvePath(r.URL.Query().Get("path"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	priority, err := thumbs.ParsePriority(r.URL.Query().Get("priority"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Memory hits skip the scheduler entirely
	if img, ok := h.manager.CachedThumbnail(path); ok {
		writeThumbnail(w, img)
		return
	}

	result := make(chan image.Image, 1)
	h.manager.RequestThumbnail(path, priority, func(img image.Image) {
		result <- img
	})

	select {
	case img := <-result:
		if img == nil {
			writeError(w, http.StatusNotFound, "thumbnail could not be generated")
			return
		}
		writeThumbnail(w, img)
	case <-r.Context().Done():
		// Client went away; the engine finishes or supersedes on its own
	case <-time.After(thumbnailTimeout):
		writeError(w, http.StatusGatewayTimeout, "thumbnail generation timed out")
	}
}

// prefetchRequest is the body of POST /api/prefetch.
type prefetchRequest struct {
	Paths []string `json:"paths"`
}

// Prefetch enqueues low-priority background generation for a batch of
// paths. Results are cached, not returned.
func (h *Handlers) Prefetch(w http.ResponseWriter, r *http.Request) {
	var req prefetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	accepted := 0
	for _, rel := range req.Paths {
		path, err := h.resolvePath(rel)
		if err != nil {
			logging.Debug("Prefetch: skipping %q: %v", rel, err)
			continue
		}
		h.manager.RequestThumbnail(path, thumbs.PriorityLow, nil)
		accepted++
	}

	writeJSON(w, http.StatusAccepted, map[string]int{"accepted": accepted})
}

// GetMetadata returns the stored capture metadata for ?path=.
func (h *Handlers) GetMetadata(w http.ResponseWriter, r *http.Request) {
	path, err := h.resolvePath(r.URL.Query().Get("path"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	meta, err := h.db.GetMetadata(r.Context(), path)
	if err != nil {
		writeError(w, http.StatusNotFound, "no metadata for path")
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

func writeThumbnail(w http.ResponseWriter, img image.Image) {
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 85}); err != nil {
		logging.Debug("Failed to write thumbnail response: %v", err)
	}
}
