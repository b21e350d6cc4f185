package handlers

import (
	"net/http"
)

// ClearCache resets cache tiers and the scheduler. The ?scope= query
// parameter selects what to clear: memory, disk, queue, or all (default).
func (h *Handlers) ClearCache(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = "all"
	}

	var cleared []string
	switch scope {
	case "memory":
		h.manager.ClearMemoryCache()
		cleared = []string{"memory"}
	case "disk":
		if err := h.manager.ClearDiskCache(); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		cleared = []string{"disk"}
	case "queue":
		h.manager.StopQueue()
		cleared = []string{"queue"}
	case "all":
		h.manager.StopQueue()
		h.manager.ClearMemoryCache()
		if err := h.manager.ClearDiskCache(); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		cleared = []string{"queue", "memory", "disk"}
	default:
		writeError(w, http.StatusBadRequest, "scope must be memory, disk, queue, or all")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"cleared": cleared})
}
