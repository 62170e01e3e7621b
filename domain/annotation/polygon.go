package annotation

import (
	"image"
	"log/slog"
	"math"

	"github.com/soocke/centroid-marker/domain/geometry"
)

// CaptureState enumerates the polygon capture states.
type CaptureState int

const (
	StateEmpty CaptureState = iota
	StateAccumulating
)

func (s CaptureState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAccumulating:
		return "accumulating"
	default:
		return "unknown"
	}
}

// CaptureStateListener is called on each state transition.
type CaptureStateListener func(prev, next CaptureState)

// Centroid is a finished polygon's centroid in original pixel space.
type Centroid struct {
	X, Y int
}

// Point returns the centroid as an image.Point.
func (c Centroid) Point() image.Point { return image.Pt(c.X, c.Y) }

// PolygonCapture accumulates vertices (original pixel space) for the image being
// annotated. It is owned by a single event loop and is not safe for concurrent use.
type PolygonCapture struct {
	logger    *slog.Logger
	pending   []image.Point
	preview   *Centroid
	listeners []CaptureStateListener
}

// NewPolygonCapture returns an empty capture.
func NewPolygonCapture(logger *slog.Logger) *PolygonCapture {
	return &PolygonCapture{logger: logger}
}

// AddListener registers l for state transitions.
func (c *PolygonCapture) AddListener(l CaptureStateListener) {
	if l != nil {
		c.listeners = append(c.listeners, l)
	}
}

// State reports Empty or Accumulating.
func (c *PolygonCapture) State() CaptureState {
	if len(c.pending) == 0 {
		return StateEmpty
	}
	return StateAccumulating
}

// Len returns the number of pending vertices.
func (c *PolygonCapture) Len() int { return len(c.pending) }

// Vertices returns a copy of the pending vertices.
func (c *PolygonCapture) Vertices() []image.Point {
	out := make([]image.Point, len(c.pending))
	copy(out, c.pending)
	return out
}

// Preview returns the most recently finished centroid, if it is still displayed.
func (c *PolygonCapture) Preview() (Centroid, bool) {
	if c.preview == nil {
		return Centroid{}, false
	}
	return *c.preview, true
}

// AddVertex appends p. There is no upper bound on the vertex count.
func (c *PolygonCapture) AddVertex(p image.Point) {
	prev := c.State()
	c.pending = append(c.pending, p)
	if c.logger != nil {
		c.logger.Debug("vertex added", "x", p.X, "y", p.Y, "count", len(c.pending))
	}
	c.notify(prev)
}

// Finish closes the pending polygon and returns its centroid. With fewer than
// MinVertices pending it returns ErrInsufficientVertices and leaves them untouched.
func (c *PolygonCapture) Finish() (Centroid, error) {
	if len(c.pending) < MinVertices {
		return Centroid{}, ErrInsufficientVertices
	}
	prev := c.State()
	snapshot := c.Vertices()
	p := geometry.Centroid(snapshot)
	centroid := Centroid{X: p.X, Y: p.Y}
	c.pending = c.pending[:0]
	c.preview = &centroid
	if c.logger != nil {
		c.logger.Debug("polygon finished", "vertices", len(snapshot), "area", math.Abs(geometry.SignedArea(snapshot)), "x", centroid.X, "y", centroid.Y)
	}
	c.notify(prev)
	return centroid, nil
}

// Clear drops the pending vertices and the centroid preview.
func (c *PolygonCapture) Clear() {
	prev := c.State()
	c.pending = nil
	c.preview = nil
	c.notify(prev)
}

// OnImageChanged clears; a pending polygon never carries across images.
func (c *PolygonCapture) OnImageChanged() { c.Clear() }

func (c *PolygonCapture) notify(prev CaptureState) {
	next := c.State()
	if prev == next {
		return
	}
	if c.logger != nil {
		c.logger.Debug("capture state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range c.listeners {
		l(prev, next)
	}
}
