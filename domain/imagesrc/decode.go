package imagesrc

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
)

// DecodeError reports an image that could not be loaded. The session skips it
// for display but keeps it navigable.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot load image at %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeFailure reports whether err is a *DecodeError.
func IsDecodeFailure(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}

// DefaultCacheSize keeps the current image and two neighbours on each side.
const DefaultCacheSize = 5

// Decoder loads images from disk and keeps the most recently used ones in a
// bounded LRU cache. It is safe for concurrent use.
type Decoder struct {
	logger *slog.Logger
	cache  *lru.Cache[string, image.Image]
}

// NewDecoder returns an empty decoder caching DefaultCacheSize images.
func NewDecoder(logger *slog.Logger) *Decoder { return NewDecoderSize(logger, DefaultCacheSize) }

// NewDecoderSize returns an empty decoder caching at most size images.
// A non-positive size uses DefaultCacheSize.
func NewDecoderSize(logger *slog.Logger, size int) *Decoder {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New[string, image.Image](size) // only fails for size <= 0
	return &Decoder{logger: logger, cache: cache}
}

// Decode returns the image at path, honouring EXIF orientation.
func (d *Decoder) Decode(path string) (image.Image, error) {
	if img, ok := d.cache.Get(path); ok {
		return img, nil
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if d.logger != nil {
			d.logger.Warn("image decode failed", "path", path, "error", err)
		}
		return nil, &DecodeError{Path: path, Err: err}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &DecodeError{Path: path, Err: errors.New("empty image")}
	}

	evicted := d.cache.Add(path, img)
	if d.logger != nil {
		d.logger.Debug("image decoded", "path", path, "width", b.Dx(), "height", b.Dy(), "evicted", evicted)
	}
	return img, nil
}

// Reset drops every cached image; called when a new directory is opened.
func (d *Decoder) Reset() { d.cache.Purge() }

// Cached reports whether path is cached.
func (d *Decoder) Cached(path string) bool { return d.cache.Contains(path) }

// Len returns the number of cached images.
func (d *Decoder) Len() int { return d.cache.Len() }
