package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/phono/internal/models"
	"github.com/desertthunder/phono/internal/shared"
)

// PlaylistRepository persists [models.Playlist] records and their join rows.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist and sets its generated id.
func (r *PlaylistRepository) Create(playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	if playlist.CreatedAt.IsZero() {
		playlist.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO playlists (user_id, name, created_at)
		VALUES (?, ?, ?)
	`

	result, err := r.db.Exec(query, playlist.UserID, playlist.Name, playlist.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get playlist id: %w", err)
	}
	playlist.ID = id

	return nil
}

// Get retrieves a playlist by id.
func (r *PlaylistRepository) Get(id int64) (*models.Playlist, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM playlists
		WHERE id = ?
	`

	var playlist models.Playlist
	err := r.db.QueryRow(query, id).Scan(&playlist.ID, &playlist.UserID, &playlist.Name, &playlist.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	return &playlist, nil
}

// GetOwned retrieves a playlist by id and verifies ownership.
//
// Returns [shared.ErrPlaylistNotFound] for a missing playlist and
// [shared.ErrForbidden] when the playlist belongs to another user.
func (r *PlaylistRepository) GetOwned(id, userID int64) (*models.Playlist, error) {
	playlist, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	if playlist.UserID != userID {
		return nil, shared.ErrForbidden
	}

	return playlist, nil
}

// ListByUser retrieves a user's playlists, newest first.
func (r *PlaylistRepository) ListByUser(userID int64) ([]models.Playlist, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM playlists
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []models.Playlist
	for rows.Next() {
		var playlist models.Playlist
		if err := rows.Scan(&playlist.ID, &playlist.UserID, &playlist.Name, &playlist.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// AddTrack appends a track to a playlist.
//
// The join row gets the next position for the playlist, assigned inside
// the insert transaction. Adding a pair that already exists is a no-op.
// The referenced track must exist.
func (r *PlaylistRepository) AddTrack(playlistID, trackID int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow("SELECT EXISTS(SELECT 1 FROM tracks WHERE id = ?)", trackID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check track: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %d", shared.ErrTrackNotFound, trackID)
	}

	query := `
		INSERT INTO playlist_tracks (playlist_id, track_id, position)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1
		FROM playlist_tracks
		WHERE playlist_id = ?
	`

	if _, err := tx.Exec(query, playlistID, trackID, playlistID); err != nil {
		if isUniqueViolation(err) {
			// Pair already present; idempotent add.
			return nil
		}
		return fmt.Errorf("failed to insert playlist track: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit playlist track: %w", err)
	}

	return nil
}

// RemoveTrack removes a track from a playlist. Removing an absent pair
// is a no-op.
func (r *PlaylistRepository) RemoveTrack(playlistID, trackID int64) error {
	query := `
		DELETE FROM playlist_tracks
		WHERE playlist_id = ? AND track_id = ?
	`

	if _, err := r.db.Exec(query, playlistID, trackID); err != nil {
		return fmt.Errorf("failed to remove playlist track: %w", err)
	}

	return nil
}

// Delete removes a playlist and all of its join rows as one atomic unit.
// The referenced tracks are untouched.
func (r *PlaylistRepository) Delete(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM playlist_tracks WHERE playlist_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete playlist tracks: %w", err)
	}

	result, err := tx.Exec("DELETE FROM playlists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return shared.ErrPlaylistNotFound
	}

	return tx.Commit()
}

// FirstTrackID returns the track id of the playlist's first join row by
// position, or (0, false) for an empty playlist.
func (r *PlaylistRepository) FirstTrackID(playlistID int64) (int64, bool, error) {
	query := `
		SELECT track_id
		FROM playlist_tracks
		WHERE playlist_id = ?
		ORDER BY position ASC
		LIMIT 1
	`

	var trackID int64
	err := r.db.QueryRow(query, playlistID).Scan(&trackID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query first track: %w", err)
	}

	return trackID, true, nil
}

// CountTracks returns the number of join rows for a playlist.
func (r *PlaylistRepository) CountTracks(playlistID int64) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM playlist_tracks WHERE playlist_id = ?", playlistID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count playlist tracks: %w", err)
	}
	return count, nil
}
