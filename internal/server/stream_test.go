package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	tu "github.com/desertthunder/phono/internal/testing"
)

func TestGateway(t *testing.T) {
	t.Run("Stream", func(t *testing.T) {
		t.Run("Serves Audio Bytes", func(t *testing.T) {
			ts := setupServer(t)
			_, cookie := ts.createAccount(t, "amina")

			path := tu.WriteMP3NoTags(t, t.TempDir(), "fatiha.mp3")
			ts.mustCreateTrack(t, "Al-Fatiha", "Sheikh A", path)

			rec := ts.do(http.MethodGet, "/stream/1", nil, cookie)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if ctype := rec.Header().Get("Content-Type"); ctype != "audio/mpeg" {
				t.Errorf("expected audio/mpeg, got %s", ctype)
			}
			if rec.Body.Len() == 0 {
				t.Error("expected a non-empty body")
			}
		})

		t.Run("Unknown Track Is 404", func(t *testing.T) {
			ts := setupServer(t)
			_, cookie := ts.createAccount(t, "amina")

			rec := ts.do(http.MethodGet, "/stream/999", nil, cookie)
			if rec.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d", rec.Code)
			}
		})

		t.Run("Missing File Is 404", func(t *testing.T) {
			ts := setupServer(t)
			_, cookie := ts.createAccount(t, "amina")
			ts.mustCreateTrack(t, "Al-Fatiha", "Sheikh A", filepath.Join(t.TempDir(), "gone.mp3"))

			rec := ts.do(http.MethodGet, "/stream/1", nil, cookie)
			if rec.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d", rec.Code)
			}
		})

		t.Run("Rejects Non-Numeric Id", func(t *testing.T) {
			ts := setupServer(t)
			_, cookie := ts.createAccount(t, "amina")

			rec := ts.do(http.MethodGet, "/stream/abc", nil, cookie)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})

		t.Run("Requires a Session", func(t *testing.T) {
			ts := setupServer(t)

			rec := ts.do(http.MethodGet, "/stream/1", nil, nil)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	})

	t.Run("Thumbnail", func(t *testing.T) {
		t.Run("Serves the Image", func(t *testing.T) {
			ts := setupServer(t)
			_, cookie := ts.createAccount(t, "amina")

			dir := t.TempDir()
			thumb := filepath.Join(dir, "fatiha.png")
			if err := os.WriteFile(thumb, tu.TinyPNG, 0o644); err != nil {
				t.Fatalf("failed to write thumbnail: %v", err)
			}

			track := ts.mustCreateTrack(t, "Al-Fatiha", "Sheikh A", filepath.Join(dir, "fatiha.mp3"))
			track.ThumbnailPath = thumb
			if _, err := ts.db.Exec("UPDATE tracks SET thumbnail_path = ? WHERE id = ?", thumb, track.ID); err != nil {
				t.Fatalf("failed to set thumbnail: %v", err)
			}

			rec := ts.do(http.MethodGet, "/thumbnail/1", nil, cookie)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if ctype := rec.Header().Get("Content-Type"); ctype != "image/png" {
				t.Errorf("expected image/png, got %s", ctype)
			}
		})

		t.Run("No Artwork Is an Empty 404", func(t *testing.T) {
			ts := setupServer(t)
			_, cookie := ts.createAccount(t, "amina")
			ts.mustCreateTrack(t, "Al-Fatiha", "Sheikh A", "/music/fatiha.mp3")

			rec := ts.do(http.MethodGet, "/thumbnail/1", nil, cookie)
			if rec.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d", rec.Code)
			}
			if rec.Body.Len() != 0 {
				t.Errorf("expected an empty body, got %q", rec.Body.String())
			}
		})

		t.Run("Unknown Track Is 404", func(t *testing.T) {
			ts := setupServer(t)
			_, cookie := ts.createAccount(t, "amina")

			rec := ts.do(http.MethodGet, "/thumbnail/999", nil, cookie)
			if rec.Code != http.StatusNotFound {
				t.Errorf("expected 404, got %d", rec.Code)
			}
		})
	})
}

func TestRateLimit(t *testing.T) {
	t.Run("Allows Within Burst", func(t *testing.T) {
		handler := RateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/stream/1", nil)
			req.RemoteAddr = "10.0.0.1:5000"
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("request %d: expected 200, got %d", i, rec.Code)
			}
		}
	})

	t.Run("Rejects Beyond Burst", func(t *testing.T) {
		handler := RateLimit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/stream/1", nil)
		req.RemoteAddr = "10.0.0.1:5000"

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected first request to pass, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusTooManyRequests {
			t.Errorf("expected 429, got %d", rec.Code)
		}
	})

	t.Run("Buckets Are Per Client", func(t *testing.T) {
		handler := RateLimit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		for _, addr := range []string{"10.0.0.1:5000", "10.0.0.2:5000"} {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/stream/1", nil)
			req.RemoteAddr = addr
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("client %s: expected 200, got %d", addr, rec.Code)
			}
		}
	})
}
