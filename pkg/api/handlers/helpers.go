package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	vfserrors "github.com/marmos91/kvfs/pkg/vfs/errors"
)

// response is the gateway's standard envelope.
//
//   - Status indicates the overall result ("ok" or "error")
//   - Data carries the payload for successful responses
//   - Error carries the message when Status is "error"
type response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, response{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var maxBytesErr *http.MaxBytesError
	switch {
	case vfserrors.IsNotFound(err):
		status = http.StatusNotFound
	case vfserrors.IsConfig(err):
		status = http.StatusBadRequest
	case vfserrors.IsConnection(err):
		status = http.StatusServiceUnavailable
	case errors.As(err, &maxBytesErr):
		status = http.StatusRequestEntityTooLarge
	}
	writeJSON(w, status, response{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     err.Error(),
	})
}
