package images

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/soocke/centroid-marker/domain/geometry"
)

// Overlay colours.
const (
	EdgeHex     = "#00ff00"
	VertexHex   = "#ffff00"
	CentroidHex = "#ff0000"
	LabelHex    = "#ffffff"
)

// Overlay is what gets painted over the rendered image, in rendered-image space.
type Overlay struct {
	Vertices []image.Point
	Centroid *image.Point
	Label    string
}

// Style holds overlay colours and pen sizes.
type Style struct {
	Edge, Vertex, Centroid, Label colorful.Color
	EdgeWidth                     int
	VertexSize                    int
	CentroidSize                  int
}

// DefaultStyle: green 2px edges, yellow 5px vertices, red 8px centroid, white label.
func DefaultStyle() Style {
	return Style{
		Edge:         mustHex(EdgeHex),
		Vertex:       mustHex(VertexHex),
		Centroid:     mustHex(CentroidHex),
		Label:        mustHex(LabelHex),
		EdgeWidth:    2,
		VertexSize:   5,
		CentroidSize: 8,
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Render scales src to the transform's rendered size, paints the overlay and
// returns the part that falls inside the viewport. Placed at the clipped image
// rectangle, it lines up with DisplayToOriginal. Returns nil for an invalid transform.
func Render(src image.Image, t geometry.DisplayTransform, ov Overlay, st Style) image.Image {
	if src == nil || !t.Valid() {
		return nil
	}
	resized := imaging.Resize(src, t.RenderedW, t.RenderedH, imaging.Linear)
	dst := clone.AsRGBA(resized)
	PaintOverlay(dst, ov, st)

	rect := t.ImageRect()
	visible := rect.Intersect(image.Rect(0, 0, t.ViewportW, t.ViewportH)).Sub(rect.Min)
	if visible.Empty() || visible == dst.Bounds() {
		return dst
	}
	return dst.SubImage(visible)
}

// PaintOverlay draws the closed polygon, its vertices and the centroid marker onto dst.
func PaintOverlay(dst draw.Image, ov Overlay, st Style) {
	n := len(ov.Vertices)
	if n > 0 {
		for i := range ov.Vertices {
			drawLine(dst, ov.Vertices[i], ov.Vertices[(i+1)%n], st.EdgeWidth, st.Edge)
		}
		for _, v := range ov.Vertices {
			dot(dst, v, st.VertexSize, st.Vertex)
		}
	}
	if ov.Centroid != nil {
		c := *ov.Centroid
		dot(dst, c, st.CentroidSize, st.Centroid)
		if ov.Label != "" {
			drawLabel(dst, c.Add(image.Pt(10, 5)), ov.Label, st.Label)
		}
	}
}

// dot fills a size x size square centered on p.
func dot(dst draw.Image, p image.Point, size int, c color.Color) {
	if size < 1 {
		size = 1
	}
	tl := p.Sub(image.Pt(size/2, size/2))
	r := image.Rectangle{Min: tl, Max: tl.Add(image.Pt(size, size))}
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// drawLine rasterises a to b with Bresenham's algorithm and a square pen.
func drawLine(dst draw.Image, a, b image.Point, width int, c color.Color) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	p := a
	for {
		dot(dst, p, width, c)
		if p == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}

// drawLabel writes text with its baseline at p over a darkened shadow so it
// stays legible on light images.
func drawLabel(dst draw.Image, p image.Point, text string, c colorful.Color) {
	shadow := c.BlendLab(colorful.Color{}, 0.85).Clamped()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(shadow), Face: basicfont.Face7x13, Dot: fixed.P(p.X+1, p.Y+1)}
	d.DrawString(text)
	d.Src = image.NewUniform(c)
	d.Dot = fixed.P(p.X, p.Y)
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
