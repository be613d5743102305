package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/phono/internal/models"
	"github.com/desertthunder/phono/internal/shared"
	"golang.org/x/sync/errgroup"
)

// DefaultArtist is recorded for tracks whose files carry no artist
// information; the scanner never reads artist tags, matching the
// import behavior the catalog was built around.
const DefaultArtist = "Unknown"

// extractWorkers bounds concurrent tag parsing during a pass.
const extractWorkers = 4

// Summary reports what a single scan pass did.
type Summary struct {
	Found         int // audio files seen in the root
	Imported      int // new tracks committed this pass
	Skipped       int // files already present in the catalog
	ArtworkFailed int // imported tracks whose artwork could not be extracted
	Elapsed       time.Duration
}

// TrackStore is the slice of the catalog the scanner needs.
type TrackStore interface {
	GetByPath(path string) (*models.Track, error)
	CreateBatch(tracks []*models.Track) error
}

// Scanner walks the configured music root once per call and registers
// newly discovered MP3 files in the catalog.
//
// Passes are serialized by an internal mutex: the check-then-create
// window is never crossed by two passes, and the file_path UNIQUE
// constraint backstops any other writer.
type Scanner struct {
	mu     sync.Mutex
	root   string
	tracks TrackStore
	thumbs *ThumbnailStore
	logger *log.Logger
}

// NewScanner creates a scanner over root using the given catalog store
// and thumbnail store.
func NewScanner(root string, tracks TrackStore, thumbs *ThumbnailStore, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Scanner{root: root, tracks: tracks, thumbs: thumbs, logger: logger}
}

// Scan runs one pass: direct entries only, case-insensitive .mp3
// filter, already-imported paths skipped, and every new track committed
// in a single batch at the end. A missing root directory is a logged
// no-op, not an error.
func (s *Scanner) Scan(ctx context.Context) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	logger := shared.WithLogger(s.logger, "pass", shared.GenerateID())

	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		logger.Warn("music folder not found, skipping scan", "path", s.root)
		return Summary{Elapsed: time.Since(start)}, nil
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read music folder: %w", err)
	}

	var summary Summary
	var candidates []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".mp3") {
			continue
		}
		summary.Found++

		path, err := filepath.Abs(filepath.Join(s.root, entry.Name()))
		if err != nil {
			path = filepath.Join(s.root, entry.Name())
		}

		if _, err := s.tracks.GetByPath(path); err == nil {
			summary.Skipped++
			continue
		}

		candidates = append(candidates, path)
	}

	tracks := make([]*models.Track, len(candidates))
	failed := make([]bool, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(extractWorkers)

	for i, path := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			base := filepath.Base(path)
			track := &models.Track{
				Name:     strings.TrimSuffix(base, filepath.Ext(base)),
				Artist:   DefaultArtist,
				FilePath: path,
			}

			thumb, ok := s.extract(logger, path, base)
			if !ok {
				failed[i] = true
			}
			track.ThumbnailPath = thumb

			tracks[i] = track
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("scan pass interrupted: %w", err)
	}

	if err := s.tracks.CreateBatch(tracks); err != nil {
		return Summary{}, fmt.Errorf("failed to commit scan pass: %w", err)
	}

	summary.Imported = len(tracks)
	for _, f := range failed {
		if f {
			summary.ArtworkFailed++
		}
	}
	summary.Elapsed = time.Since(start)

	logger.Info("scan pass complete",
		"found", summary.Found,
		"imported", summary.Imported,
		"skipped", summary.Skipped,
		"artwork_failed", summary.ArtworkFailed,
		"elapsed", summary.Elapsed,
	)

	return summary, nil
}

// extract pulls artwork for one file and writes it to the thumbnail
// store. Every failure degrades to "no thumbnail"; ok reports whether
// extraction itself succeeded.
func (s *Scanner) extract(logger *log.Logger, path, base string) (string, bool) {
	art, err := ReadArtwork(path)
	if err != nil {
		logger.Debug("artwork extraction failed", "file", base, "err", err)
		return "", false
	}
	if art == nil {
		return "", true
	}

	thumb, err := s.thumbs.Save(art, base)
	if err != nil {
		logger.Debug("thumbnail write failed", "file", base, "err", err)
		return "", false
	}

	return thumb, true
}
