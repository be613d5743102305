package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ThumbnailStore writes extracted artwork into a single output
// directory, named after the source audio file.
type ThumbnailStore struct {
	root string
}

// NewThumbnailStore creates a store rooted at dir. The directory is
// created lazily on first write.
func NewThumbnailStore(dir string) *ThumbnailStore {
	return &ThumbnailStore{root: dir}
}

// Root returns the store's output directory.
func (s *ThumbnailStore) Root() string {
	return s.root
}

// Save writes artwork bytes for the audio file named audioBase (its
// base name, extension included or not) and returns the written path.
// An existing file at the destination is overwritten.
func (s *ThumbnailStore) Save(art *Artwork, audioBase string) (string, error) {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	base := strings.TrimSuffix(audioBase, filepath.Ext(audioBase))
	path := filepath.Join(s.root, fmt.Sprintf("%s.%s", base, art.Subtype))

	if err := os.WriteFile(path, art.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write thumbnail: %w", err)
	}

	return path, nil
}
