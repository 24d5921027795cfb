package handlers

import (
	"net/http"

	"github.com/marmos91/kvfs/pkg/vfs"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	fs *vfs.Filesystem
}

// NewHealthHandler creates a health handler for the given filesystem.
func NewHealthHandler(fs *vfs.Filesystem) *HealthHandler {
	return &HealthHandler{fs: fs}
}

// Liveness handles GET /health. It only confirms the process is serving.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]string{"state": "alive"})
}

// Readiness handles GET /health/ready. The store session must be reachable,
// verified by an empty recursive listing.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if _, err := h.fs.List(r.Context(), "", true, nil); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]string{
		"state":      "ready",
		"filesystem": h.fs.Name(),
	})
}
