// package models defines the data model for the audio library catalog
package models

import (
	"fmt"
	"strings"
	"time"
)

// Track is a catalog entry for one audio file on disk.
//
// Tracks are created by the library scanner and never mutated afterwards.
// ThumbnailPath is empty when the file carried no extractable artwork.
type Track struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Artist        string    `json:"artist"`
	FilePath      string    `json:"file_path"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// HasThumbnail reports whether artwork was extracted for this track.
func (t Track) HasThumbnail() bool {
	return t.ThumbnailPath != ""
}

// Validate checks if the track's data is valid and returns an error if not
func (t Track) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("track name is required")
	}
	if strings.TrimSpace(t.Artist) == "" {
		return fmt.Errorf("track artist is required")
	}
	if strings.TrimSpace(t.FilePath) == "" {
		return fmt.Errorf("track file path is required")
	}
	return nil
}

// Playlist is a user-owned, named collection of tracks.
type Playlist struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks if the playlist's data is valid and returns an error if not
func (p Playlist) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("playlist name is required")
	}
	if p.UserID == 0 {
		return fmt.Errorf("playlist owner is required")
	}
	return nil
}

// PlaylistTrack is a join row associating a track with a playlist.
//
// Position is an explicit per-playlist sequence number; ordering
// contracts read it rather than relying on row order.
type PlaylistTrack struct {
	ID         int64 `json:"id"`
	PlaylistID int64 `json:"playlist_id"`
	TrackID    int64 `json:"track_id"`
	Position   int   `json:"position"`
}

// User is a persisted account record. The password hash never leaves
// the server.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks if the user's data is valid and returns an error if not
func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	return nil
}

// PlaylistView is the presentation form of a playlist, annotated with
// the id of the track whose artwork represents it. RepresentativeTrackID
// is nil for an empty playlist.
type PlaylistView struct {
	Playlist
	RepresentativeTrackID *int64 `json:"representative_track_id,omitempty"`
}

// PlaylistExport bundles a playlist with its tracks in insertion order for
// the export formatters.
type PlaylistExport struct {
	Playlist Playlist `json:"playlist"`
	Tracks   []Track  `json:"tracks"`
}
