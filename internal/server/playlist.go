package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/desertthunder/phono/internal/models"
	"github.com/desertthunder/phono/internal/repositories"
	"github.com/desertthunder/phono/internal/shared"
	"github.com/desertthunder/phono/internal/tasks"
)

// PlaylistHandler serves playlist listing and mutation endpoints.
//
// Every route requires an authenticated session; mutations redirect to the
// library view on success.
type PlaylistHandler struct {
	playlists *repositories.PlaylistRepository
	tracks    *repositories.TrackRepository
	composer  *tasks.Composer
}

// NewPlaylistHandler creates a [PlaylistHandler].
func NewPlaylistHandler(playlists *repositories.PlaylistRepository, tracks *repositories.TrackRepository, composer *tasks.Composer) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists, tracks: tracks, composer: composer}
}

// Register registers the playlist routes on router.
func (h *PlaylistHandler) Register(router Router) {
	router.Handle(http.MethodGet, "/api/playlists", http.HandlerFunc(h.handleList))
	router.Handle(http.MethodGet, "/api/playlists/{playlist_id}/tracks", http.HandlerFunc(h.handleTracks))
	router.Handle(http.MethodPost, "/playlist/create", http.HandlerFunc(h.handleCreate))
	router.Handle(http.MethodPost, "/playlist/{playlist_id}/add/{track_id}", http.HandlerFunc(h.handleAddTrack))
	router.Handle(http.MethodPost, "/playlist/{playlist_id}/remove/{track_id}", http.HandlerFunc(h.handleRemoveTrack))
	router.Handle(http.MethodPost, "/playlist/{playlist_id}/delete", http.HandlerFunc(h.handleDelete))
}

// handleList returns the session user's playlists, newest first, annotated
// with each playlist's representative track id.
func (h *PlaylistHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	playlists, err := h.playlists.ListByUser(userID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	views, err := h.composer.Annotate(playlists)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, views)
}

// handleTracks returns a playlist's tracks in insertion order.
func (h *PlaylistHandler) handleTracks(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	tracks, err := h.tracks.ListByPlaylist(playlist.ID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, tracks)
}

func (h *PlaylistHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	playlist := &models.Playlist{UserID: userID, Name: strings.TrimSpace(r.FormValue("name"))}
	if err := h.playlists.Create(playlist); err != nil {
		writePlaylistError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PlaylistHandler) handleAddTrack(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	trackID, err := pathID(r, "track_id")
	if err != nil {
		http.Error(w, "Invalid track id", http.StatusBadRequest)
		return
	}

	if err := h.playlists.AddTrack(playlist.ID, trackID); err != nil {
		writePlaylistError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PlaylistHandler) handleRemoveTrack(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	trackID, err := pathID(r, "track_id")
	if err != nil {
		http.Error(w, "Invalid track id", http.StatusBadRequest)
		return
	}

	if err := h.playlists.RemoveTrack(playlist.ID, trackID); err != nil {
		writePlaylistError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PlaylistHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	if err := h.playlists.Delete(playlist.ID); err != nil {
		writePlaylistError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ownedPlaylist resolves the {playlist_id} wildcard to a playlist owned by the
// session user, writing the error response itself when that fails.
func (h *PlaylistHandler) ownedPlaylist(w http.ResponseWriter, r *http.Request) (*models.Playlist, bool) {
	userID, ok := UserID(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return nil, false
	}

	playlistID, err := pathID(r, "playlist_id")
	if err != nil {
		http.Error(w, "Invalid playlist id", http.StatusBadRequest)
		return nil, false
	}

	playlist, err := h.playlists.GetOwned(playlistID, userID)
	if err != nil {
		writePlaylistError(w, err)
		return nil, false
	}

	return playlist, true
}

// writePlaylistError maps repository errors to plain-text HTTP responses.
func writePlaylistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrPlaylistNotFound):
		http.Error(w, "Playlist not found", http.StatusNotFound)
	case errors.Is(err, shared.ErrTrackNotFound):
		http.Error(w, "Track not found", http.StatusNotFound)
	case errors.Is(err, shared.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, shared.ErrInvalidInput):
		http.Error(w, "Invalid input", http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
