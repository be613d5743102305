package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/phono/internal/library"
	"github.com/desertthunder/phono/internal/repositories"
	"github.com/urfave/cli/v3"
)

// Scan imports new MP3 files from the music directory into the catalog.
func (r *Runner) Scan(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	root := config.Library.MusicPath
	if dir := cmd.String("dir"); dir != "" {
		root = dir
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	scanner := library.NewScanner(
		root,
		repositories.NewTrackRepository(db),
		library.NewThumbnailStore(config.Library.ThumbnailPath),
		r.logger,
	)

	summary, err := scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	r.writePlain("Scanned %s: %d found, %d imported, %d skipped", root, summary.Found, summary.Imported, summary.Skipped)
	if summary.ArtworkFailed > 0 {
		r.writePlain(" (%d without artwork)", summary.ArtworkFailed)
	}
	r.writePlain(" in %v\n", summary.Elapsed.Round(time.Millisecond))

	return nil
}
