package geometry

import (
	"image"
	"math"
)

// DisplayTransform describes how an original image maps onto the viewport:
// fit to the smaller dimension ratio, scaled by the zoom percentage and
// centered when the rendered image is smaller than the viewport.
// The zero value maps nothing (DisplayToOriginal always reports false).
type DisplayTransform struct {
	OriginalW, OriginalH int
	ViewportW, ViewportH int
	FitScale             float64
	Zoom                 int // percent
	RenderedW, RenderedH int
	OffsetX, OffsetY     float64
}

// NewDisplayTransform computes the transform for an original of origW x origH shown
// in a viewW x viewH viewport at zoom percent. Non-positive sizes yield an empty transform.
func NewDisplayTransform(origW, origH, viewW, viewH, zoom int) DisplayTransform {
	t := DisplayTransform{OriginalW: origW, OriginalH: origH, ViewportW: viewW, ViewportH: viewH, Zoom: zoom}
	if origW <= 0 || origH <= 0 || viewW <= 0 || viewH <= 0 || zoom <= 0 {
		return t
	}
	t.FitScale = math.Min(float64(viewW)/float64(origW), float64(viewH)/float64(origH))
	f := t.factor()
	t.RenderedW = int(float64(origW) * f)
	t.RenderedH = int(float64(origH) * f)
	t.OffsetX = float64(viewW-t.RenderedW) / 2
	t.OffsetY = float64(viewH-t.RenderedH) / 2
	return t
}

func (t DisplayTransform) factor() float64 { return t.FitScale * float64(t.Zoom) / 100 }

// Valid reports whether the transform renders a non-empty image.
func (t DisplayTransform) Valid() bool {
	return t.RenderedW > 0 && t.RenderedH > 0 && t.OriginalW > 0 && t.OriginalH > 0
}

// OriginalToDisplay scales an original pixel into rendered-image space.
// No offset is added: overlays are painted onto the rendered image itself.
func (t DisplayTransform) OriginalToDisplay(p image.Point) image.Point {
	f := t.factor()
	return image.Pt(int(float64(p.X)*f), int(float64(p.Y)*f))
}

// ImageRect returns the rendered image rectangle in viewport coordinates,
// with the fractional centering offset truncated.
func (t DisplayTransform) ImageRect() image.Rectangle {
	x0, y0 := int(t.OffsetX), int(t.OffsetY)
	return image.Rect(x0, y0, x0+t.RenderedW, y0+t.RenderedH)
}

// DisplayToOriginal converts a viewport point to original pixel space. The
// rendered image sits at ImageRect, the truncated centering offset that both
// the renderer and Tk's label centering use. Points outside ImageRect report false.
func (t DisplayTransform) DisplayToOriginal(p image.Point) (image.Point, bool) {
	if !t.Valid() {
		return image.Point{}, false
	}
	r := t.ImageRect()
	if !p.In(r) {
		return image.Point{}, false
	}
	fx := float64(p.X-r.Min.X) / float64(t.RenderedW)
	fy := float64(p.Y-r.Min.Y) / float64(t.RenderedH)
	return image.Pt(int(math.Floor(fx*float64(t.OriginalW))), int(math.Floor(fy*float64(t.OriginalH)))), true
}
