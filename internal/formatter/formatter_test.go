package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/phono/internal/models"
	tu "github.com/desertthunder/phono/internal/testing"
)

func sampleExport() *models.PlaylistExport {
	return &models.PlaylistExport{
		Playlist: models.Playlist{
			ID:        3,
			UserID:    1,
			Name:      "Morning Recitations",
			CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		},
		Tracks: []models.Track{
			{
				ID:        1,
				Name:      "Al-Fatiha",
				Artist:    "Sheikh A",
				FilePath:  "/music/fatiha.mp3",
				CreatedAt: time.Date(2026, 8, 1, 9, 5, 0, 0, time.UTC),
			},
			{
				ID:        2,
				Name:      "Al-Baqarah",
				Artist:    "Sheikh B",
				FilePath:  "/music/baqarah.mp3",
				CreatedAt: time.Date(2026, 8, 1, 9, 6, 0, 0, time.UTC),
			},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Name,Artist,File Path,Added") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "Al-Fatiha") {
			t.Errorf("CSV missing first track name")
		}
		if !strings.Contains(output, "/music/baqarah.mp3") {
			t.Errorf("CSV missing second track path")
		}

		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) != 3 {
			t.Errorf("expected header plus 2 records, got %d lines", len(lines))
		}
	})

	t.Run("ExportToCSV With No Tracks", func(t *testing.T) {
		export := sampleExport()
		export.Tracks = nil

		data, err := ExportToCSV(export)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 1 {
			t.Errorf("expected only the header row, got %d lines", len(lines))
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleExport(), "")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Morning Recitations") {
			t.Errorf("Markdown missing title heading, got: %s", output)
		}
		if !strings.Contains(output, "**Tracks**: 2") {
			t.Errorf("Markdown missing track count")
		}
		if !strings.Contains(output, "1. Sheikh A - Al-Fatiha") {
			t.Errorf("Markdown missing numbered track entry")
		}
		if strings.Contains(output, "![Cover]") {
			t.Errorf("Markdown should not reference a cover without one")
		}
	})

	t.Run("ExportToMarkdown With Cover", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleExport(), "cover.png")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		if !strings.Contains(string(data), "![Cover](cover.png)") {
			t.Errorf("Markdown missing cover reference, got: %s", string(data))
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Playlist: Morning Recitations") {
			t.Errorf("text missing playlist name, got: %s", output)
		}
		if !strings.Contains(output, "2. Sheikh B - Al-Baqarah") {
			t.Errorf("text missing numbered track entry")
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(sampleExport().Playlist)
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, `"name": "Morning Recitations"`) {
			t.Errorf("JSON missing playlist name, got: %s", output)
		}
		if !strings.Contains(output, `"id": 3`) {
			t.Errorf("JSON missing playlist id")
		}
	})
}

func TestFileExports(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "morning")

		result, err := WriteCSVExport(sampleExport(), base)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		tu.AssertFileExists(t, result.TracksFile)
		tu.AssertFileExists(t, result.MetadataFile)

		if !strings.HasSuffix(result.TracksFile, "_tracks.csv") {
			t.Errorf("unexpected tracks filename: %s", result.TracksFile)
		}
		if !strings.Contains(string(tu.MustReadFile(t, result.MetadataFile)), "Morning Recitations") {
			t.Errorf("metadata file missing playlist name")
		}
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		t.Run("Without Artwork", func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "morning")

			result, err := WriteMarkdownExport(sampleExport(), dir)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			tu.AssertDirExists(t, result.Directory)
			tu.AssertFileExists(t, filepath.Join(dir, "README.md"))

			if result.CoverImage != "" {
				t.Errorf("expected no cover image, got %s", result.CoverImage)
			}
		})

		t.Run("Copies the First Thumbnail as Cover", func(t *testing.T) {
			work := t.TempDir()

			thumb := filepath.Join(work, "fatiha.png")
			if err := os.WriteFile(thumb, tu.TinyPNG, 0o644); err != nil {
				t.Fatalf("failed to write thumbnail: %v", err)
			}

			export := sampleExport()
			export.Tracks[0].ThumbnailPath = thumb

			dir := filepath.Join(work, "morning")
			result, err := WriteMarkdownExport(export, dir)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			if result.CoverImage != filepath.Join(dir, "cover.png") {
				t.Errorf("unexpected cover path: %s", result.CoverImage)
			}
			tu.AssertFileExists(t, result.CoverImage)

			readme := string(tu.MustReadFile(t, filepath.Join(dir, "README.md")))
			if !strings.Contains(readme, "![Cover](cover.png)") {
				t.Errorf("README missing cover reference, got: %s", readme)
			}
		})
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "morning.txt")

		written, err := WriteTextExport(sampleExport(), path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected %s, got %s", path, written)
		}

		tu.AssertFileExists(t, path)
	})
}
