package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// Encoder scratch buffers and the output buffer are pooled across repaints.
// Callers get a copy of the bytes.

var bufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// encoderPool satisfies png.EncoderBufferPool.
type encoderPool struct{ p sync.Pool }

func (e *encoderPool) Get() *png.EncoderBuffer {
	b, _ := e.p.Get().(*png.EncoderBuffer)
	return b
}

func (e *encoderPool) Put(b *png.EncoderBuffer) { e.p.Put(b) }

var encoder = png.Encoder{CompressionLevel: png.BestSpeed, BufferPool: &encoderPool{}}

var errNilImage = errors.New("encode png: nil image")

// Encode encodes img to PNG bytes.
func Encode(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errNilImage
	}
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)
	if err := encoder.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// EncodePNG is Encode without the error: it returns nil when img is nil or
// cannot be encoded (for example a zero-sized image).
func EncodePNG(img image.Image) []byte {
	b, _ := Encode(img)
	return b
}

// Placeholder returns a w x h image filled with the hex colour bg, used while no
// image is shown. An unparsable colour falls back to mid grey.
func Placeholder(w, h int, bg string) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c, err := colorful.Hex(bg)
	if err != nil {
		c = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return dst
}
