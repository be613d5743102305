package server

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/phono/internal/repositories"
	"github.com/desertthunder/phono/internal/shared"
)

// Gateway resolves catalog rows to on-disk media files and serves them.
type Gateway struct {
	tracks *repositories.TrackRepository
	logger *log.Logger
}

// NewGateway creates a [Gateway] backed by tracks.
func NewGateway(tracks *repositories.TrackRepository, logger *log.Logger) *Gateway {
	return &Gateway{tracks: tracks, logger: logger}
}

// ResolveTrackAudio returns the audio file path for id.
//
// Returns [shared.ErrTrackNotFound] for unknown ids and [shared.ErrFileMissing]
// when the cataloged file no longer exists on disk.
func (g *Gateway) ResolveTrackAudio(id int64) (string, error) {
	track, err := g.tracks.Get(id)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(track.FilePath); err != nil {
		return "", fmt.Errorf("%w: %s", shared.ErrFileMissing, track.FilePath)
	}

	return track.FilePath, nil
}

// ResolveTrackThumbnail returns the thumbnail path for id.
//
// Returns [shared.ErrTrackNotFound] for unknown ids and [shared.ErrFileMissing]
// when the track has no extracted artwork or the file is gone.
func (g *Gateway) ResolveTrackThumbnail(id int64) (string, error) {
	track, err := g.tracks.Get(id)
	if err != nil {
		return "", err
	}

	if !track.HasThumbnail() {
		return "", fmt.Errorf("%w: track %d has no thumbnail", shared.ErrFileMissing, id)
	}

	if _, err := os.Stat(track.ThumbnailPath); err != nil {
		return "", fmt.Errorf("%w: %s", shared.ErrFileMissing, track.ThumbnailPath)
	}

	return track.ThumbnailPath, nil
}

// Register registers the stream routes on router.
func (g *Gateway) Register(router Router) {
	router.Handle(http.MethodGet, "/stream/{track_id}", http.HandlerFunc(g.handleStream))
	router.Handle(http.MethodGet, "/thumbnail/{track_id}", http.HandlerFunc(g.handleThumbnail))
}

func (g *Gateway) handleStream(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "track_id")
	if err != nil {
		http.Error(w, "Invalid track id", http.StatusBadRequest)
		return
	}

	path, err := g.ResolveTrackAudio(id)
	if err != nil {
		g.logger.Warn("stream request failed", "track_id", id, "error", err)
		http.Error(w, "Track not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, path)
}

func (g *Gateway) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "track_id")
	if err != nil {
		http.Error(w, "Invalid track id", http.StatusBadRequest)
		return
	}

	path, err := g.ResolveTrackThumbnail(id)
	if err != nil {
		if errors.Is(err, shared.ErrTrackNotFound) {
			http.Error(w, "Track not found", http.StatusNotFound)
			return
		}

		// Missing artwork responds with an empty body so clients can fall
		// back to a placeholder image.
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if ctype := mime.TypeByExtension(filepath.Ext(path)); ctype != "" {
		w.Header().Set("Content-Type", ctype)
	}

	http.ServeFile(w, r, path)
}

// pathID parses the named path wildcard as an int64 id.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
