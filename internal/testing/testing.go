// package testing contains shared testing utilities
package testing

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// TinyPNG is a minimal but well-formed PNG signature + IHDR prefix,
// enough for byte-identity assertions in artwork tests.
var TinyPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00,
}

// TinyJPEG is a minimal JPEG SOI/EOI pair.
var TinyJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0xFF, 0xD9}

// encodeSynchsafe packs a value into the 7-bits-per-byte integer format
// ID3v2 headers use.
func encodeSynchsafe(v uint32) []byte {
	return []byte{
		byte(v >> 21 & 0x7F),
		byte(v >> 14 & 0x7F),
		byte(v >> 7 & 0x7F),
		byte(v & 0x7F),
	}
}

// BuildID3v2APIC returns the bytes of an ID3v2.3 tag whose only frame
// is an APIC attached picture carrying the given MIME type and image
// bytes, followed by a dummy audio payload.
func BuildID3v2APIC(mime string, image []byte) []byte {
	frameData := []byte{0x00}               // text encoding: ISO-8859-1
	frameData = append(frameData, mime...)  // MIME type
	frameData = append(frameData, 0x00)     // terminator
	frameData = append(frameData, 0x03)     // picture type: front cover
	frameData = append(frameData, 0x00)     // empty description
	frameData = append(frameData, image...) // picture data

	frame := []byte("APIC")
	size := make([]byte, 4)
	binary.BigEndian.PutUint32(size, uint32(len(frameData)))
	frame = append(frame, size...)
	frame = append(frame, 0x00, 0x00) // frame flags
	frame = append(frame, frameData...)

	tag := []byte("ID3")
	tag = append(tag, 0x03, 0x00, 0x00) // v2.3, no flags
	tag = append(tag, encodeSynchsafe(uint32(len(frame)))...)
	tag = append(tag, frame...)

	// Dummy MPEG frame header so the file does not end at the tag.
	tag = append(tag, 0xFF, 0xFB, 0x90, 0x44, 0x00, 0x00, 0x00, 0x00)

	return tag
}

// WriteMP3WithArtwork writes an MP3 fixture with an embedded picture
// into dir and returns its path.
func WriteMP3WithArtwork(t *testing.T, dir, name, mime string, image []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, BuildID3v2APIC(mime, image), 0644); err != nil {
		t.Fatalf("failed to write mp3 fixture %s: %v", path, err)
	}
	return path
}

// WriteMP3NoTags writes an MP3 fixture with no tag container at all.
func WriteMP3NoTags(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	data := []byte{0xFF, 0xFB, 0x90, 0x44, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write mp3 fixture %s: %v", path, err)
	}
	return path
}

// WriteCorruptID3 writes a file that claims to carry an ID3 tag but is
// not parseable.
func WriteCorruptID3(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	data := append([]byte("ID3"), 0x7F, 0x7F, 0xFF, 0xFF, 0xFF)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write corrupt fixture %s: %v", path, err)
	}
	return path
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return content
}
