package imagesrc

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestLibrary_ListResetsCache(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.png")
	writeImage(t, p, func(f *os.File) error { return png.Encode(f, solid(3, 3)) })
	l := NewLibrary(nil)
	if _, err := l.List(dir); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := l.Decode(p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !l.decoder.Cached(p) {
		t.Fatalf("expected cached image")
	}
	// a failed listing keeps the session's cache
	if _, err := l.List(t.TempDir()); !errors.Is(err, ErrNoImages) {
		t.Fatalf("expected ErrNoImages, got %v", err)
	}
	if !l.decoder.Cached(p) || l.Dir() != dir {
		t.Fatalf("failed listing must not reset state")
	}
	if _, err := l.List(dir); err != nil {
		t.Fatalf("relist: %v", err)
	}
	if l.decoder.Cached(p) {
		t.Fatalf("successful listing must reset the cache")
	}
}
