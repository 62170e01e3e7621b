package imagesrc

import (
	"image"
	"log/slog"
)

// Library is the image source of a session: directory listing plus a decoder
// whose cache is scoped to the directory last listed.
type Library struct {
	logger  *slog.Logger
	decoder *Decoder
	dir     string
}

// NewLibrary returns a library with an empty cache.
func NewLibrary(logger *slog.Logger) *Library {
	return &Library{logger: logger, decoder: NewDecoder(logger)}
}

// List enumerates dir. On success the decode cache is reset for the new directory;
// on failure the current cache is kept.
func (l *Library) List(dir string) ([]Record, error) {
	recs, err := List(dir)
	if err != nil {
		if l.logger != nil {
			l.logger.Warn("directory listing failed", "dir", dir, "error", err)
		}
		return nil, err
	}
	l.decoder.Reset()
	l.dir = dir
	if l.logger != nil {
		l.logger.Info("directory listed", "dir", dir, "images", len(recs))
	}
	return recs, nil
}

// Decode loads the image at path.
func (l *Library) Decode(path string) (image.Image, error) { return l.decoder.Decode(path) }

// Dir returns the directory last listed successfully.
func (l *Library) Dir() string { return l.dir }
