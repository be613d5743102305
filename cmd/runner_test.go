package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/phono/internal/shared"
	tu "github.com/desertthunder/phono/internal/testing"
	"github.com/urfave/cli/v3"
)

// writeTestConfig writes a config.toml whose paths all live under dir.
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()

	content := fmt.Sprintf(`[library]
music_path = %q
thumbnail_path = %q

[database]
path = %q
max_open_conns = 5
max_idle_conns = 2

[server]
host = "127.0.0.1"
port = 0
stream_rate_per_sec = 10.0
stream_burst = 20

[auth]
session_ttl_minutes = 60
`,
		filepath.Join(dir, "music"),
		filepath.Join(dir, "thumbnails"),
		filepath.Join(dir, "phono.db"),
	)

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// runApp executes a CLI invocation against a fresh Runner, returning its output.
func runApp(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Output: output})

	app := &cli.Command{
		Name:     "phono",
		Commands: runner.register(),
	}

	return output, app.Run(context.Background(), append([]string{"phono"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{Config: config, Logger: logger, Output: output})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("compact", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"name": "Al-Fatiha"}, false); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if output.String() != "{\"name\":\"Al-Fatiha\"}\n" {
				t.Errorf("unexpected output: %q", output.String())
			}
		})

		t.Run("pretty", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"name": "Al-Fatiha"}, true); err != nil {
				t.Fatalf("writeJSON failed: %v", err)
			}
			if !strings.Contains(output.String(), "  \"name\": \"Al-Fatiha\"") {
				t.Errorf("expected indented output, got %q", output.String())
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		runner.writePlain("imported %d tracks", 3)
		runner.writePlainln("done")

		if !strings.Contains(output.String(), "imported 3 tracks") {
			t.Errorf("unexpected output: %q", output.String())
		}
		if !strings.Contains(output.String(), "\ndone\n") {
			t.Errorf("expected trailing line, got %q", output.String())
		}
	})
}

func TestCommands(t *testing.T) {
	t.Run("Setup", func(t *testing.T) {
		t.Run("Creates Config Database and Directories", func(t *testing.T) {
			dir := t.TempDir()
			config := writeTestConfig(t, dir)

			if _, err := runApp(t, "setup", "-c", config); err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			tu.AssertFileExists(t, filepath.Join(dir, "phono.db"))
			tu.AssertDirExists(t, filepath.Join(dir, "music"))
			tu.AssertDirExists(t, filepath.Join(dir, "thumbnails"))
		})

		t.Run("Creates Missing Config From Template", func(t *testing.T) {
			dir := t.TempDir()
			config := filepath.Join(dir, "config.toml")

			// Template defaults point at relative paths; run from the temp dir.
			wd, err := os.Getwd()
			if err != nil {
				t.Fatalf("failed to get working directory: %v", err)
			}
			if err := os.Chdir(dir); err != nil {
				t.Fatalf("failed to enter temp dir: %v", err)
			}
			t.Cleanup(func() { os.Chdir(wd) })

			if _, err := runApp(t, "setup", "-c", config); err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			tu.AssertFileExists(t, config)
		})
	})

	t.Run("Scan", func(t *testing.T) {
		t.Run("Imports Files and Reports the Summary", func(t *testing.T) {
			dir := t.TempDir()
			config := writeTestConfig(t, dir)
			if _, err := runApp(t, "setup", "-c", config); err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			musicDir := filepath.Join(dir, "music")
			tu.WriteMP3WithArtwork(t, musicDir, "fatiha.mp3", "image/png", tu.TinyPNG)
			tu.WriteMP3NoTags(t, musicDir, "baqarah.mp3")

			output, err := runApp(t, "scan", "-c", config)
			if err != nil {
				t.Fatalf("scan failed: %v", err)
			}

			if !strings.Contains(output.String(), "2 found, 2 imported, 0 skipped") {
				t.Errorf("unexpected summary: %q", output.String())
			}
		})

		t.Run("Second Pass Skips Existing Files", func(t *testing.T) {
			dir := t.TempDir()
			config := writeTestConfig(t, dir)
			if _, err := runApp(t, "setup", "-c", config); err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			tu.WriteMP3NoTags(t, filepath.Join(dir, "music"), "fatiha.mp3")

			if _, err := runApp(t, "scan", "-c", config); err != nil {
				t.Fatalf("first scan failed: %v", err)
			}

			output, err := runApp(t, "scan", "-c", config)
			if err != nil {
				t.Fatalf("second scan failed: %v", err)
			}

			if !strings.Contains(output.String(), "1 found, 0 imported, 1 skipped") {
				t.Errorf("unexpected summary: %q", output.String())
			}
		})
	})

	t.Run("UserAdd", func(t *testing.T) {
		t.Run("Creates the Account", func(t *testing.T) {
			dir := t.TempDir()
			config := writeTestConfig(t, dir)

			output, err := runApp(t, "user", "add", "-c", config, "-u", "amina", "-p", "secret")
			if err != nil {
				t.Fatalf("user add failed: %v", err)
			}

			if !strings.Contains(output.String(), "Created user 'amina'") {
				t.Errorf("unexpected output: %q", output.String())
			}
		})

		t.Run("Rejects Duplicates", func(t *testing.T) {
			dir := t.TempDir()
			config := writeTestConfig(t, dir)

			if _, err := runApp(t, "user", "add", "-c", config, "-u", "amina", "-p", "secret"); err != nil {
				t.Fatalf("user add failed: %v", err)
			}

			if _, err := runApp(t, "user", "add", "-c", config, "-u", "amina", "-p", "other"); err == nil {
				t.Error("expected duplicate username to fail")
			}
		})
	})

	t.Run("Export", func(t *testing.T) {
		t.Run("Unknown Playlist Fails", func(t *testing.T) {
			dir := t.TempDir()
			config := writeTestConfig(t, dir)
			if _, err := runApp(t, "setup", "-c", config); err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			if _, err := runApp(t, "export", "-c", config, "--id", "42"); err == nil {
				t.Error("expected export of unknown playlist to fail")
			}
		})

		t.Run("Rejects Unknown Format", func(t *testing.T) {
			dir := t.TempDir()
			config := writeTestConfig(t, dir)
			if _, err := runApp(t, "setup", "-c", config); err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			db, err := shared.NewDatabase(filepath.Join(dir, "phono.db"))
			if err != nil {
				t.Fatalf("failed to open database: %v", err)
			}
			defer db.Close()

			if _, err := db.Exec("INSERT INTO users (username, password_hash) VALUES ('amina', 'x')"); err != nil {
				t.Fatalf("failed to insert user: %v", err)
			}
			if _, err := db.Exec("INSERT INTO playlists (user_id, name) VALUES (1, 'Morning')"); err != nil {
				t.Fatalf("failed to insert playlist: %v", err)
			}

			if _, err := runApp(t, "export", "-c", config, "--id", "1", "-f", "yaml"); err == nil {
				t.Error("expected unknown format to fail")
			}
		})

		t.Run("Writes CSV Files", func(t *testing.T) {
			dir := t.TempDir()
			config := writeTestConfig(t, dir)
			if _, err := runApp(t, "setup", "-c", config); err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			db, err := shared.NewDatabase(filepath.Join(dir, "phono.db"))
			if err != nil {
				t.Fatalf("failed to open database: %v", err)
			}
			defer db.Close()

			if _, err := db.Exec("INSERT INTO users (username, password_hash) VALUES ('amina', 'x')"); err != nil {
				t.Fatalf("failed to insert user: %v", err)
			}
			if _, err := db.Exec("INSERT INTO playlists (user_id, name) VALUES (1, 'Morning')"); err != nil {
				t.Fatalf("failed to insert playlist: %v", err)
			}
			if _, err := db.Exec("INSERT INTO tracks (name, artist, file_path) VALUES ('Al-Fatiha', 'Sheikh A', '/music/fatiha.mp3')"); err != nil {
				t.Fatalf("failed to insert track: %v", err)
			}
			if _, err := db.Exec("INSERT INTO playlist_tracks (playlist_id, track_id, position) VALUES (1, 1, 1)"); err != nil {
				t.Fatalf("failed to insert membership: %v", err)
			}

			base := filepath.Join(dir, "morning")
			output, err := runApp(t, "export", "-c", config, "--id", "1", "-f", "csv", "-o", base)
			if err != nil {
				t.Fatalf("export failed: %v", err)
			}

			tu.AssertFileExists(t, base+"_tracks.csv")
			tu.AssertFileExists(t, base+"_metadata.json")

			if !strings.Contains(output.String(), "Exported Morning") {
				t.Errorf("unexpected output: %q", output.String())
			}
		})
	})
}
