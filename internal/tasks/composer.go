package tasks

import (
	"fmt"

	"github.com/desertthunder/phono/internal/models"
)

// FirstTrackSource answers which track leads a playlist, if any.
type FirstTrackSource interface {
	FirstTrackID(playlistID int64) (int64, bool, error)
}

// Composer derives playlist presentation data from catalog state.
type Composer struct {
	source FirstTrackSource
}

// NewComposer creates a Composer over the given source.
func NewComposer(source FirstTrackSource) *Composer {
	return &Composer{source: source}
}

// Annotate builds the presentation view of each playlist, attaching the
// id of the track whose artwork represents it: the first join row by
// insertion order. Empty playlists get no representative. The persisted
// rows are never touched; only the returned views carry the annotation.
func (c *Composer) Annotate(playlists []models.Playlist) ([]models.PlaylistView, error) {
	views := make([]models.PlaylistView, 0, len(playlists))

	for _, playlist := range playlists {
		view := models.PlaylistView{Playlist: playlist}

		trackID, ok, err := c.source.FirstTrackID(playlist.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to derive representative track for playlist %d: %w", playlist.ID, err)
		}
		if ok {
			view.RepresentativeTrackID = &trackID
		}

		views = append(views, view)
	}

	return views, nil
}
