// Package handlers implements the HTTP gateway's request handlers.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marmos91/kvfs/pkg/vfs"
	"github.com/marmos91/kvfs/pkg/vfs/kv"
)

// FilesHandler serves file content, metadata and listings for one
// filesystem.
type FilesHandler struct {
	fs      *vfs.Filesystem
	maxBody int64
}

// NewFilesHandler creates a files handler for the given filesystem. A
// positive maxBody caps uploaded payload sizes.
func NewFilesHandler(fs *vfs.Filesystem, maxBody int64) *FilesHandler {
	return &FilesHandler{fs: fs, maxBody: maxBody}
}

// entryView is the JSON shape of one listing entry.
type entryView struct {
	Name       string     `json:"name"`
	Kind       kv.Kind    `json:"kind"`
	Size       *int64     `json:"size,omitempty"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
}

func toEntryView(entry vfs.Entry) entryView {
	view := entryView{
		Name: entry.Name,
		Kind: entry.Kind,
	}
	if entry.Record != nil {
		size := entry.Record.Size
		modified := entry.Record.ModifiedAt
		view.Size = &size
		view.ModifiedAt = &modified
	}
	return view
}

// List handles GET /api/v1/files?prefix=&recursive=.
func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	recursive, _ := strconv.ParseBool(r.URL.Query().Get("recursive"))

	entries, err := h.fs.List(r.Context(), prefix, recursive, nil)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]entryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, toEntryView(entry))
	}
	writeOK(w, views)
}

// Read handles GET /api/v1/files/*, streaming the payload as one body.
func (h *FilesHandler) Read(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	var payload []byte
	_, err := h.fs.Read(r.Context(), path, func(chunk []byte) error {
		payload = chunk
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	_, _ = w.Write(payload)
}

// Write handles PUT /api/v1/files/*, storing the request body as the file
// payload and returning the byte count.
func (h *FilesHandler) Write(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	body := r.Body
	if h.maxBody > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	n, err := h.fs.Write(r.Context(), path, vfs.FromReader(body))
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, map[string]any{
		"path":  path,
		"bytes": n,
	})
}

// Remove handles DELETE /api/v1/files/*?recursive=&quiet=.
func (h *FilesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	recursive, _ := strconv.ParseBool(r.URL.Query().Get("recursive"))
	quiet, _ := strconv.ParseBool(r.URL.Query().Get("quiet"))

	deleted, err := h.fs.Remove(r.Context(), path, recursive, quiet)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, map[string]any{
		"deleted": deleted,
	})
}

// Metadata handles GET /api/v1/metadata/*, returning the record without its
// payload.
func (h *FilesHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	rec, err := h.fs.Metadata(r.Context(), path)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, entryView{
		Name:       rec.Name,
		Kind:       rec.Kind,
		Size:       &rec.Size,
		ModifiedAt: &rec.ModifiedAt,
	})
}
