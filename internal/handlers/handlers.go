package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"photo-bridge/internal/database"
	"photo-bridge/internal/logging"
	"photo-bridge/internal/startup"
	"photo-bridge/internal/thumbs"
)

// thumbnailTimeout bounds how long a request waits for the engine. A
// superseded request's callback never fires, so the wait must not be
// unbounded.
const thumbnailTimeout = 30 * time.Second

// Handlers bundles the HTTP handlers of the preview service.
type Handlers struct {
	manager   *thumbs.Manager
	db        *database.Database
	photosDir string
}

// New creates the handler set.
func New(manager *thumbs.Manager, db *database.Database, config *startup.Config) *Handlers {
	return &Handlers{
		manager:   manager,
		db:        db,
		photosDir: config.PhotosDir,
	}
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetVersion reports build information.
func (h *Handlers) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version":   startup.Version,
		"commit":    startup.Commit,
		"buildTime": startup.BuildTime,
		"goVersion": startup.GoVersion,
	})
}

// resolvePath maps a client-supplied relative path onto the photos
// directory, rejecting traversal outside it.
func (h *Handlers) resolvePath(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("missing path")
	}
	abs := filepath.Join(h.photosDir, filepath.Clean("/"+rel))
	if abs != h.photosDir && !strings.HasPrefix(abs, h.photosDir+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes photos directory")
	}
	return abs, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("Failed to encode JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
