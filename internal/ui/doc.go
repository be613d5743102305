// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view catalog browser:
//  1. [LibraryView] : Browse the full track catalog with fuzzy filtering
//  2. [PlaylistListView] : Browse the user's playlists with track counts
//  3. [PlaylistTracksView] : View a playlist's tracks in insertion order
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Catalog reads run as [tea.Cmd] functions so the interface never blocks on the database.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, tab, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
