package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog lookup errors
	ErrTrackNotFound    = fmt.Errorf("track not found")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrUserNotFound     = fmt.Errorf("user not found")

	// ErrFileMissing means the catalog row exists but the file behind it
	// is gone from disk. Kept distinct from the not-found errors so
	// storage drift is diagnosable.
	ErrFileMissing = fmt.Errorf("file missing from disk")

	// Ownership and authentication errors
	ErrForbidden        = fmt.Errorf("forbidden")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")

	// Uniqueness violations, expected and caught at the storage layer
	ErrDuplicateTrack = fmt.Errorf("track already exists for path")
	ErrDuplicateUser  = fmt.Errorf("username already exists")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
