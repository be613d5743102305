package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/phono/internal/formatter"
	"github.com/desertthunder/phono/internal/models"
	"github.com/desertthunder/phono/internal/shared"
	"github.com/urfave/cli/v3"
)

// Export writes a playlist and its tracks to the requested file format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	stores := newCatalogStores(db)

	playlist, err := stores.playlists.Get(cmd.Int64("id"))
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}

	tracks, err := stores.tracks.ListByPlaylist(playlist.ID)
	if err != nil {
		return fmt.Errorf("failed to load playlist tracks: %w", err)
	}

	export := &models.PlaylistExport{Playlist: *playlist, Tracks: tracks}
	output := cmd.String("output")

	switch format := cmd.String("format"); format {
	case "csv":
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("Exported %s to %s and %s\n", playlist.Name, result.TracksFile, result.MetadataFile)

	case "markdown", "md":
		result, err := formatter.WriteMarkdownExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("Exported %s to %s\n", playlist.Name, result.Directory)

	case "text", "txt":
		path, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("Exported %s to %s\n", playlist.Name, path)

	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	return nil
}
