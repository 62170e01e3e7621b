package session

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/centroid-marker/domain/annotation"
	"github.com/soocke/centroid-marker/domain/geometry"
	"github.com/soocke/centroid-marker/domain/imagesrc"
	"github.com/soocke/centroid-marker/domain/navigation"
)

// State is the whole annotation session: image list, navigation, zoom, the
// pending polygon and the recorded centroids. It is owned by one event loop.
type State struct {
	logger  *slog.Logger
	records []imagesrc.Record
	seq     *navigation.Sequencer
	zoom    *navigation.ZoomController
	capture *annotation.PolygonCapture
	store   *annotation.Store
	viewW   int
	viewH   int
	loaded  bool
}

// New returns a session with no directory open, rendering into a viewW x viewH viewport.
func New(logger *slog.Logger, viewW, viewH, zoomStep int) *State {
	return &State{
		logger:  logger,
		seq:     navigation.NewSequencer(0),
		zoom:    navigation.NewZoomController(zoomStep),
		capture: annotation.NewPolygonCapture(logger),
		store:   annotation.NewStore(0),
		viewW:   viewW,
		viewH:   viewH,
	}
}

// Open replaces the session with records. With no records it returns
// imagesrc.ErrNoImages and leaves the current session untouched.
func (s *State) Open(records []imagesrc.Record) (Effects, error) {
	if len(records) == 0 {
		return Effects{Warning: imagesrc.ErrNoImages}, imagesrc.ErrNoImages
	}
	s.records = make([]imagesrc.Record, len(records))
	copy(s.records, records)
	s.seq = navigation.NewSequencer(len(records))
	s.store = annotation.NewStore(len(records))
	s.capture.OnImageChanged()
	s.loaded = false
	if s.logger != nil {
		s.logger.Info("session opened", "images", len(records))
	}
	return Effects{LoadImage: true, Render: true, CountsChanged: true, CancelAdvance: true}, nil
}

// Active reports whether a directory is open.
func (s *State) Active() bool { return len(s.records) > 0 }

// Current returns the record at the current index.
func (s *State) Current() (imagesrc.Record, bool) {
	if !s.Active() {
		return imagesrc.Record{}, false
	}
	return s.records[s.seq.Index()], true
}

// Records returns a copy of the session's image list.
func (s *State) Records() []imagesrc.Record {
	out := make([]imagesrc.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Index returns the current image index.
func (s *State) Index() int { return s.seq.Index() }

// Loaded reports whether the current image decoded and accepts vertices.
func (s *State) Loaded() bool { return s.loaded }

// Zoom returns the zoom percent.
func (s *State) Zoom() int { return s.zoom.Value() }

// Store exposes the recorded annotations (read-only use).
func (s *State) Store() *annotation.Store { return s.store }

// Capture exposes the pending polygon (read-only use).
func (s *State) Capture() *annotation.PolygonCapture { return s.capture }

// MarkedCount and TotalCount feed the "marked m/n" display.
func (s *State) MarkedCount() int { return s.store.MarkedCount() }
func (s *State) TotalCount() int  { return s.store.TotalCount() }

// ImageLoaded records the decoded size of the current image.
func (s *State) ImageLoaded(width, height int) Effects {
	if !s.Active() {
		return Effects{}
	}
	i := s.seq.Index()
	s.records[i].Width, s.records[i].Height = width, height
	s.loaded = width > 0 && height > 0
	s.capture.OnImageChanged()
	return Effects{Render: true, CountsChanged: true, Status: "Annotating: " + s.records[i].Name}
}

// ImageFailed marks the current image un-markable; it stays in the list.
func (s *State) ImageFailed(err error) Effects {
	s.loaded = false
	s.capture.OnImageChanged()
	if s.logger != nil {
		s.logger.Warn("image skipped", "error", err)
	}
	return Effects{Render: true, Warning: err}
}

// Transform returns the display transform for the current image.
func (s *State) Transform() geometry.DisplayTransform {
	rec, ok := s.Current()
	if !ok || !s.loaded {
		return geometry.DisplayTransform{}
	}
	return geometry.NewDisplayTransform(rec.Width, rec.Height, s.viewW, s.viewH, s.zoom.Value())
}

// PrimaryClick adds a vertex at a viewport point. Clicks outside the rendered
// image, or while no decoded image is shown, are ignored.
func (s *State) PrimaryClick(p image.Point) Effects {
	if !s.loaded {
		return Effects{}
	}
	orig, ok := s.Transform().DisplayToOriginal(p)
	if !ok {
		return Effects{}
	}
	s.capture.AddVertex(orig)
	return Effects{Render: true}
}

// SecondaryClick finishes the pending polygon and records its centroid. An
// auto-advance is requested unless the current image is the last one.
func (s *State) SecondaryClick() Effects {
	c, err := s.capture.Finish()
	if err != nil {
		return Effects{Warning: err}
	}
	rec, ok := s.Current()
	if !ok {
		return Effects{Render: true}
	}
	s.store.Record(rec.Name, c)
	if s.logger != nil {
		s.logger.Info("centroid recorded", "image", rec.Name, "x", c.X, "y", c.Y)
	}
	return Effects{
		Render:          true,
		CountsChanged:   true,
		ScheduleAdvance: !s.seq.AtEnd(),
		Status:          fmt.Sprintf("Centroid saved: (%d, %d)", c.X, c.Y),
	}
}

// Clear drops the pending polygon and centroid preview. Recorded centroids stay.
func (s *State) Clear() Effects {
	s.capture.Clear()
	return Effects{Render: true}
}

// Next, Prev and Select are manual navigation; they cancel a pending auto-advance.
func (s *State) Next() Effects { return s.move(s.seq.Next()).Merge(Effects{CancelAdvance: true}) }
func (s *State) Prev() Effects { return s.move(s.seq.Prev()).Merge(Effects{CancelAdvance: true}) }
func (s *State) Select(i int) Effects {
	return s.move(s.seq.Select(i)).Merge(Effects{CancelAdvance: true})
}

// AutoAdvance is the deferred step after a finished polygon; it clamps at the end.
func (s *State) AutoAdvance() Effects { return s.move(s.seq.Next()) }

func (s *State) move(moved bool) Effects {
	if !moved {
		return Effects{}
	}
	s.capture.OnImageChanged()
	s.loaded = false
	return Effects{LoadImage: true, Render: true}
}

// SetZoom sets the zoom percent (clamped).
func (s *State) SetZoom(v int) Effects { return s.zoomed(s.zoom.Set(v)) }

// ZoomStep zooms in or out by one step.
func (s *State) ZoomStep(in bool) Effects { return s.zoomed(s.zoom.Step(in)) }

// ZoomFit resets the zoom to fit the viewport.
func (s *State) ZoomFit() Effects { return s.zoomed(s.zoom.ResetToFit()) }

// SetZoomStepSize changes the increment used by ZoomStep and Wheel.
func (s *State) SetZoomStepSize(step int) { s.zoom.SetStepSize(step) }

// Wheel maps a scroll delta to a zoom step; positive zooms in.
func (s *State) Wheel(delta int) Effects {
	if delta == 0 {
		return Effects{}
	}
	return s.ZoomStep(delta > 0)
}

func (s *State) zoomed(changed bool) Effects {
	if !changed {
		return Effects{}
	}
	return Effects{Render: true, ZoomChanged: true}
}

// Resize updates the viewport size. Non-positive sizes (an unmapped widget) are ignored.
func (s *State) Resize(w, h int) Effects {
	if w <= 0 || h <= 0 || (w == s.viewW && h == s.viewH) {
		return Effects{}
	}
	s.viewW, s.viewH = w, h
	return Effects{Render: true}
}

// Viewport returns the viewport size.
func (s *State) Viewport() (int, int) { return s.viewW, s.viewH }

// Export writes the recorded centroids to path as CSV.
func (s *State) Export(path string) error {
	if err := s.store.ExportFile(path); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("annotations exported", "path", path, "rows", s.store.Len())
	}
	return nil
}

// Frame snapshots what the view should draw.
func (s *State) Frame() Frame {
	f := Frame{Index: s.seq.Index(), Total: len(s.records), Loaded: s.loaded, Zoom: s.zoom.Value()}
	rec, ok := s.Current()
	if !ok {
		return f
	}
	f.Record = rec
	if !s.loaded {
		return f
	}
	t := s.Transform()
	f.Transform = t
	for _, v := range s.capture.Vertices() {
		f.Vertices = append(f.Vertices, t.OriginalToDisplay(v))
	}
	if c, ok := s.capture.Preview(); ok {
		p := t.OriginalToDisplay(c.Point())
		f.Centroid = &p
		f.Label = c
	}
	return f
}
