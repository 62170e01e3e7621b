package imagesrc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoImages is returned when a directory holds no supported image files.
var ErrNoImages = errors.New("no supported image files found")

// Extensions is the case-insensitive allow-list of image file extensions.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}

// Record identifies one image of the session. Name (the base filename) is the
// annotation key; Width/Height stay 0 until the image has been decoded.
type Record struct {
	Path   string
	Name   string
	Width  int
	Height int
}

// IsSupported reports whether name carries an allow-listed extension.
func IsSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// List returns the supported images directly inside dir, sorted by name.
// Subdirectories are not descended. An empty result returns ErrNoImages.
func List(dir string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}
	var out []Record
	for _, e := range entries {
		if e.IsDir() || !IsSupported(e.Name()) {
			continue
		}
		out = append(out, Record{Path: filepath.Join(dir, e.Name()), Name: e.Name()})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoImages, dir)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
