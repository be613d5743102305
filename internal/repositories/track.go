package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/phono/internal/models"
	"github.com/desertthunder/phono/internal/shared"
)

// TrackRepository persists [models.Track] records.
//
// Tracks are registered once by the scanner and read afterwards; the
// file_path UNIQUE constraint is the authoritative duplicate guard.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new TrackRepository with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Create inserts a new track and sets its generated id.
//
// A UNIQUE violation on file_path is returned as [shared.ErrDuplicateTrack].
func (r *TrackRepository) Create(track *models.Track) error {
	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if track.CreatedAt.IsZero() {
		track.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO tracks (name, artist, file_path, thumbnail_path, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, track.Name, track.Artist, track.FilePath, nullable(track.ThumbnailPath), track.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", shared.ErrDuplicateTrack, track.FilePath)
		}
		return fmt.Errorf("failed to insert track: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get track id: %w", err)
	}
	track.ID = id

	return nil
}

// CreateBatch inserts all tracks inside one transaction.
//
// Either every track in the batch is committed or none are; a failure
// partway leaves previously committed batches untouched.
func (r *TrackRepository) CreateBatch(tracks []*models.Track) error {
	if len(tracks) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tracks (name, artist, file_path, thumbnail_path, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	for _, track := range tracks {
		if err := track.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if track.CreatedAt.IsZero() {
			track.CreatedAt = time.Now()
		}

		result, err := tx.Exec(query, track.Name, track.Artist, track.FilePath, nullable(track.ThumbnailPath), track.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", shared.ErrDuplicateTrack, track.FilePath)
			}
			return fmt.Errorf("failed to insert track: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get track id: %w", err)
		}
		track.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}

	return nil
}

// Get retrieves a track by id.
func (r *TrackRepository) Get(id int64) (*models.Track, error) {
	query := `
		SELECT id, name, artist, file_path, thumbnail_path, created_at
		FROM tracks
		WHERE id = ?
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByPath retrieves a track by its exact canonical file path.
//
// The scanner uses this to skip files already imported.
func (r *TrackRepository) GetByPath(path string) (*models.Track, error) {
	query := `
		SELECT id, name, artist, file_path, thumbnail_path, created_at
		FROM tracks
		WHERE file_path = ?
	`

	return r.scanOne(r.db.QueryRow(query, path))
}

// ListByKeywords retrieves tracks matching every keyword.
//
// A track matches a keyword when it is a case-insensitive substring of
// the name or of the artist. An empty keyword slice returns the whole
// catalog. Results are ordered by name ascending.
func (r *TrackRepository) ListByKeywords(keywords []string) ([]models.Track, error) {
	query := `
		SELECT id, name, artist, file_path, thumbnail_path, created_at
		FROM tracks
	`

	args := []any{}
	clauses := []string{}

	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		clauses = append(clauses, "(instr(lower(name), lower(?)) > 0 OR instr(lower(artist), lower(?)) > 0)")
		args = append(args, kw, kw)
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY name ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListByPlaylist retrieves a playlist's tracks in join-row insertion order.
func (r *TrackRepository) ListByPlaylist(playlistID int64) ([]models.Track, error) {
	query := `
		SELECT t.id, t.name, t.artist, t.file_path, t.thumbnail_path, t.created_at
		FROM tracks t
		JOIN playlist_tracks pt ON pt.track_id = t.id
		WHERE pt.playlist_id = ?
		ORDER BY pt.position ASC
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist tracks: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// Count returns the number of tracks in the catalog.
func (r *TrackRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}

// scanOne scans a single [sql.Row] into a [models.Track]
func (r *TrackRepository) scanOne(row *sql.Row) (*models.Track, error) {
	var (
		track     models.Track
		thumbnail sql.NullString
	)

	err := row.Scan(&track.ID, &track.Name, &track.Artist, &track.FilePath, &thumbnail, &track.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrTrackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	track.ThumbnailPath = thumbnail.String

	return &track, nil
}

// collect drains [sql.Rows] into a track slice
func (r *TrackRepository) collect(rows *sql.Rows) ([]models.Track, error) {
	var tracks []models.Track
	for rows.Next() {
		var (
			track     models.Track
			thumbnail sql.NullString
		)
		if err := rows.Scan(&track.ID, &track.Name, &track.Artist, &track.FilePath, &thumbnail, &track.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		track.ThumbnailPath = thumbnail.String
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// nullable maps the empty string to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
