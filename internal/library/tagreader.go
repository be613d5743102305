package library

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// Artwork is an attached picture extracted from an audio file's tag
// container: the raw image bytes plus the subtype of the declared MIME
// type ("jpeg", "png", ...).
type Artwork struct {
	Data    []byte
	Subtype string
}

// ReadArtwork parses the tag container of the audio file at path and
// returns its first attached picture.
//
// The three outcomes are explicit: (artwork, nil) on success,
// (nil, nil) when the file has tags but no picture or no tags at all,
// and (nil, err) when the file cannot be opened or parsed. Callers
// treat the last two identically apart from logging; no failure here
// may abort a scan.
func ReadArtwork(path string) (art *Artwork, err error) {
	// The tag parser indexes untrusted input; a malformed container
	// must degrade to "no artwork", not take down the scan.
	defer func() {
		if r := recover(); r != nil {
			art = nil
			err = fmt.Errorf("tag parser panic: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse tags: %w", err)
	}

	pic := meta.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return nil, nil
	}

	return &Artwork{Data: pic.Data, Subtype: subtype(pic)}, nil
}

// subtype derives the file-extension-style subtype from the frame's
// declared MIME type, falling back to the parser's extension guess and
// finally to jpeg, the dominant format in the wild.
func subtype(pic *tag.Picture) string {
	mime := strings.ToLower(strings.TrimSpace(pic.MIMEType))
	if idx := strings.LastIndex(mime, "/"); idx >= 0 {
		mime = mime[idx+1:]
	}
	if mime != "" {
		return mime
	}

	if ext := strings.ToLower(strings.TrimPrefix(pic.Ext, ".")); ext != "" {
		return ext
	}

	return "jpeg"
}
