package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/phono/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LibraryView ViewState = iota
	PlaylistListView
	PlaylistTracksView
)

// Catalog is the data surface the browser reads from.
//
// Implemented by the repository layer; the TUI never writes.
type Catalog interface {
	ListTracks(keywords []string) ([]models.Track, error)
	ListPlaylists(userID int64) ([]models.Playlist, error)
	ListPlaylistTracks(playlistID int64) ([]models.Track, error)
	CountPlaylistTracks(playlistID int64) (int, error)
}

// Model represents the TUI application state.
type Model struct {
	view             ViewState
	catalog          Catalog
	userID           int64
	width            int
	height           int
	trackList        list.Model
	playlistList     list.Model
	playlistTracks   list.Model
	selectedPlaylist *models.Playlist
	err              error
	help             help.Model
	keys             keyMap
}

type libraryLoadedMsg struct {
	tracks []models.Track
	err    error
}

type playlistsLoadedMsg struct {
	items []playlistItem
	err   error
}

type playlistTracksLoadedMsg struct {
	playlist models.Playlist
	tracks   []models.Track
	err      error
}

// NewModel creates a new TUI model browsing userID's corner of the catalog.
func NewModel(catalog Catalog, userID int64) *Model {
	return &Model{
		view:    LibraryView,
		catalog: catalog,
		userID:  userID,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by loading the track catalog.
func (m *Model) Init() tea.Cmd {
	return m.loadLibrary()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.trackList, &m.playlistList, &m.playlistTracks} {
			l.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LibraryView:
			return m.handleLibraryKeys(msg)
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case PlaylistTracksView:
			return m.handlePlaylistTracksKeys(msg)
		}

	case libraryLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.tracks))
		for i, track := range msg.tracks {
			items[i] = trackItem{track: track}
		}
		m.trackList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.trackList.Title = "Library"
		return m, nil

	case playlistsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.items))
		for i, item := range msg.items {
			items[i] = item
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.playlistList.Title = "Playlists"
		m.view = PlaylistListView
		return m, nil

	case playlistTracksLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = PlaylistListView
			return m, nil
		}
		m.selectedPlaylist = &msg.playlist
		items := make([]list.Item, len(msg.tracks))
		for i, track := range msg.tracks {
			items[i] = trackItem{track: track}
		}
		m.playlistTracks = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.playlistTracks.Title = fmt.Sprintf("Tracks in '%s'", msg.playlist.Name)
		m.view = PlaylistTracksView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LibraryView:
		return m.renderLibrary()
	case PlaylistListView:
		return m.renderPlaylists()
	case PlaylistTracksView:
		return m.renderPlaylistTracks()
	default:
		return ""
	}
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Let the list's built-in filter consume keystrokes first.
	if m.trackList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.trackList, cmd = m.trackList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m, m.loadPlaylists()
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "esc":
		m.view = LibraryView
		return m, nil
	case "enter":
		if selected := m.playlistList.SelectedItem(); selected != nil {
			if item, ok := selected.(playlistItem); ok {
				return m, m.loadPlaylistTracks(item.playlist)
			}
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistTracksKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PlaylistListView
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistTracks, cmd = m.playlistTracks.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LibraryView:
		m.trackList, cmd = m.trackList.Update(msg)
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case PlaylistTracksView:
		m.playlistTracks, cmd = m.playlistTracks.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadLibrary() tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.catalog.ListTracks(nil)
		return libraryLoadedMsg{tracks: tracks, err: err}
	}
}

func (m *Model) loadPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.catalog.ListPlaylists(m.userID)
		if err != nil {
			return playlistsLoadedMsg{err: err}
		}

		items := make([]playlistItem, len(playlists))
		for i, playlist := range playlists {
			count, err := m.catalog.CountPlaylistTracks(playlist.ID)
			if err != nil {
				return playlistsLoadedMsg{err: err}
			}
			items[i] = playlistItem{playlist: playlist, count: count}
		}

		return playlistsLoadedMsg{items: items}
	}
}

func (m *Model) loadPlaylistTracks(playlist models.Playlist) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.catalog.ListPlaylistTracks(playlist.ID)
		return playlistTracksLoadedMsg{playlist: playlist, tracks: tracks, err: err}
	}
}

func (m *Model) renderLibrary() string {
	helpKeys := []key.Binding{m.keys.filter, m.keys.tab, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.trackList.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderPlaylists() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.tab, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderPlaylistTracks() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.playlistTracks.View(), m.help.ShortHelpView(helpKeys))
}
