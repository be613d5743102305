package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/desertthunder/phono/internal/repositories"
)

// LibraryHandler serves the track catalog endpoints.
type LibraryHandler struct {
	tracks *repositories.TrackRepository
}

// NewLibraryHandler creates a [LibraryHandler].
func NewLibraryHandler(tracks *repositories.TrackRepository) *LibraryHandler {
	return &LibraryHandler{tracks: tracks}
}

// Register registers the library routes on router.
func (h *LibraryHandler) Register(router Router) {
	router.Handle(http.MethodGet, "/{$}", http.HandlerFunc(h.handleList))
	router.Handle(http.MethodGet, "/api/tracks", http.HandlerFunc(h.handleList))
}

// handleList returns catalog tracks, filtered by the optional search query.
//
// The search string splits on whitespace; every keyword must match the track
// name or artist for the track to be included.
func (h *LibraryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	keywords := strings.Fields(r.URL.Query().Get("search"))

	tracks, err := h.tracks.ListByKeywords(keywords)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, tracks)
}

// writeJSON serializes v as the response body with the JSON content type.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
