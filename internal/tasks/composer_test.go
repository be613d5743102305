package tasks

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/phono/internal/models"
	"github.com/desertthunder/phono/internal/repositories"
	"github.com/desertthunder/phono/internal/shared"
)

func setupCatalog(t *testing.T) (*sql.DB, *repositories.PlaylistRepository, *repositories.TrackRepository) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db, repositories.NewPlaylistRepository(db), repositories.NewTrackRepository(db)
}

func TestComposer(t *testing.T) {
	db, playlists, tracks := setupCatalog(t)

	user := &models.User{Username: "amina", PasswordHash: "x"}
	if err := repositories.NewUserRepository(db).Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	newTrack := func(name, path string) *models.Track {
		track := &models.Track{Name: name, Artist: "X", FilePath: path}
		if err := tracks.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}
		return track
	}

	t1 := newTrack("T1", "/m/1.mp3")
	t2 := newTrack("T2", "/m/2.mp3")
	t3 := newTrack("T3", "/m/3.mp3")

	filled := &models.Playlist{UserID: user.ID, Name: "Filled"}
	if err := playlists.Create(filled); err != nil {
		t.Fatalf("failed to create playlist: %v", err)
	}
	empty := &models.Playlist{UserID: user.ID, Name: "Empty"}
	if err := playlists.Create(empty); err != nil {
		t.Fatalf("failed to create playlist: %v", err)
	}

	// Insertion order deliberately differs from id order.
	for _, id := range []int64{t3.ID, t1.ID, t2.ID} {
		if err := playlists.AddTrack(filled.ID, id); err != nil {
			t.Fatalf("failed to add track: %v", err)
		}
	}

	composer := NewComposer(playlists)

	t.Run("FirstInsertedTrackRepresents", func(t *testing.T) {
		views, err := composer.Annotate([]models.Playlist{*filled})
		if err != nil {
			t.Fatalf("annotate failed: %v", err)
		}
		if len(views) != 1 {
			t.Fatalf("expected 1 view, got %d", len(views))
		}

		got := views[0].RepresentativeTrackID
		if got == nil || *got != t3.ID {
			t.Errorf("expected representative %d, got %v", t3.ID, got)
		}
	})

	t.Run("EmptyPlaylistHasNone", func(t *testing.T) {
		views, err := composer.Annotate([]models.Playlist{*empty})
		if err != nil {
			t.Fatalf("annotate failed: %v", err)
		}
		if views[0].RepresentativeTrackID != nil {
			t.Error("empty playlist should have no representative track")
		}
	})

	t.Run("RemovalPromotesNextRow", func(t *testing.T) {
		if err := playlists.RemoveTrack(filled.ID, t3.ID); err != nil {
			t.Fatalf("failed to remove track: %v", err)
		}

		views, err := composer.Annotate([]models.Playlist{*filled})
		if err != nil {
			t.Fatalf("annotate failed: %v", err)
		}

		got := views[0].RepresentativeTrackID
		if got == nil || *got != t1.ID {
			t.Errorf("expected representative %d after removal, got %v", t1.ID, got)
		}
	})

	t.Run("NoInputNoViews", func(t *testing.T) {
		views, err := composer.Annotate(nil)
		if err != nil {
			t.Fatalf("annotate failed: %v", err)
		}
		if len(views) != 0 {
			t.Errorf("expected no views, got %d", len(views))
		}
	})
}
