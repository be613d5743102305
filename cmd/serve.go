package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/desertthunder/phono/internal/library"
	"github.com/desertthunder/phono/internal/server"
	"github.com/desertthunder/phono/internal/shared"
	"github.com/desertthunder/phono/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Serve migrates the database, runs one library scan, then serves the web interface.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	stores := newCatalogStores(db)

	if !cmd.Bool("skip-scan") {
		scanner := library.NewScanner(
			config.Library.MusicPath,
			stores.tracks,
			library.NewThumbnailStore(config.Library.ThumbnailPath),
			r.logger,
		)
		if _, err := scanner.Scan(ctx); err != nil {
			return fmt.Errorf("startup scan failed: %w", err)
		}
	}

	sessions := server.NewSessionStore(time.Duration(config.Auth.SessionTTLMinutes) * time.Minute)
	router := server.Routes(config, r.logger, sessions,
		server.NewAuthHandler(server.NewAuthService(stores.users), sessions),
		server.NewLibraryHandler(stores.tracks),
		server.NewPlaylistHandler(stores.playlists, stores.tracks, tasks.NewComposer(stores.playlists)),
		server.NewGateway(stores.tracks, r.logger),
	)

	addr := config.Server.Addr()
	r.logger.Info("listening", "addr", addr)

	srv := &http.Server{
		Addr:        addr,
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
