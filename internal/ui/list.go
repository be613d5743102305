package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/phono/internal/models"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = trackItem{}
)

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
	count    int
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	if i.count == 1 {
		return "1 track"
	}
	return fmt.Sprintf("%d tracks", i.count)
}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

// FilterValue matches the web search surface: both name and artist filter.
func (i trackItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.track.Name, i.track.Artist)
}

func (i trackItem) Title() string { return i.track.Name }
func (i trackItem) Description() string {
	desc := i.track.Artist
	if i.track.HasThumbnail() {
		desc = fmt.Sprintf("%s • artwork", desc)
	}
	return desc
}
