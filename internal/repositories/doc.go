// Package repositories implements SQLite persistence for all catalog entities.
//
// Repositories receive their *sql.DB handle at construction; no shared
// package-level state exists. Multi-row mutations (the playlist delete
// cascade, the scanner's batch insert, join-row appends with position
// assignment) each run inside a single transaction.
//
// Key Implementations:
//   - [UserRepository] : account persistence with username lookups
//   - [PlaylistRepository] : playlists plus their ordered join rows
//   - [TrackRepository] : the track catalog, including keyword search
//
// Uniqueness (track file paths, usernames, playlist/track pairs) is
// enforced by storage-level UNIQUE constraints; violations surface as
// sentinel errors or, for join rows, an idempotent no-op.
package repositories
