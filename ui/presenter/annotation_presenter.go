package presenter

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/centroid-marker/domain/annotation"
	"github.com/soocke/centroid-marker/domain/imagesrc"
	"github.com/soocke/centroid-marker/domain/navigation"
	"github.com/soocke/centroid-marker/domain/session"
	"github.com/soocke/centroid-marker/ui/images"
	"github.com/soocke/centroid-marker/ui/model"
)

// ImageSource lists a directory and decodes its images.
type ImageSource interface {
	List(dir string) ([]imagesrc.Record, error)
	Decode(path string) (image.Image, error)
}

// AnnotationView is the UI surface the presenter drives.
type AnnotationView interface {
	ShowFrame(img image.Image) // nil shows the placeholder
	SetImageList(names []string)
	SelectImage(index int)
	SetStatus(s model.Status)
	Warn(title, msg string)
	Fail(title, msg string)
	Inform(title, msg string)
}

// Prefs remembers the last directory and export path between runs.
type Prefs interface {
	RememberDirectory(dir string)
	RememberExport(path string)
}

// AnnotationPresenter turns user gestures into session operations and applies
// the resulting effects. All methods must run on the UI thread; the scheduler
// behind the AutoAdvancer must call back on that thread too.
type AnnotationPresenter struct {
	logger  *slog.Logger
	sess    *session.State
	src     ImageSource
	view    AnnotationView
	status  *model.StatusModel
	advance *navigation.AutoAdvancer
	prefs   Prefs
	style   images.Style
	current image.Image
}

// NewAnnotationPresenter wires a presenter. prefs may be nil.
func NewAnnotationPresenter(logger *slog.Logger, sess *session.State, src ImageSource, view AnnotationView, status *model.StatusModel, advance *navigation.AutoAdvancer, prefs Prefs) *AnnotationPresenter {
	if status == nil {
		status = model.NewStatusModel()
	}
	p := &AnnotationPresenter{logger: logger, sess: sess, src: src, view: view, status: status, advance: advance, prefs: prefs, style: images.DefaultStyle()}
	if sess != nil {
		sess.Capture().AddListener(p.onCaptureState)
	}
	return p
}

// onCaptureState mirrors polygon capture transitions into the status line.
// Effects applied afterwards (saved centroid, new image) overwrite it.
func (p *AnnotationPresenter) onCaptureState(prev, next annotation.CaptureState) {
	switch {
	case next == annotation.StateAccumulating:
		p.status.SetMessage("Drawing polygon: right click to finish")
	case prev == annotation.StateAccumulating && next == annotation.StateEmpty:
		if _, finished := p.sess.Capture().Preview(); !finished {
			p.status.SetMessage("Polygon cleared")
		}
	}
}

// OpenDirectory starts a new session over dir. An empty dir (cancelled dialog) is ignored.
func (p *AnnotationPresenter) OpenDirectory(dir string) {
	if p == nil || p.sess == nil || p.src == nil || p.view == nil || dir == "" {
		return
	}
	recs, err := p.src.List(dir)
	if err != nil {
		p.warn(err)
		p.flushStatus()
		return
	}
	eff, err := p.sess.Open(recs)
	if err != nil {
		p.warn(err)
		return
	}
	p.current = nil
	opened := p.sess.Records()
	names := make([]string, len(opened))
	for i, r := range opened {
		names[i] = r.Name
	}
	p.view.SetImageList(names)
	if p.prefs != nil {
		p.prefs.RememberDirectory(dir)
	}
	p.apply(eff)
}

// PrimaryClick places a vertex at viewport point (x, y).
func (p *AnnotationPresenter) PrimaryClick(x, y int) {
	if p.ready() {
		p.apply(p.sess.PrimaryClick(image.Pt(x, y)))
	}
}

// SecondaryClick finishes the pending polygon.
func (p *AnnotationPresenter) SecondaryClick() {
	if p.ready() {
		p.apply(p.sess.SecondaryClick())
	}
}

// Wheel zooms by one step per event; positive delta zooms in.
func (p *AnnotationPresenter) Wheel(delta int) {
	if p.ready() {
		p.apply(p.sess.Wheel(delta))
	}
}

func (p *AnnotationPresenter) ZoomIn() {
	if p.ready() {
		p.apply(p.sess.ZoomStep(true))
	}
}

func (p *AnnotationPresenter) ZoomOut() {
	if p.ready() {
		p.apply(p.sess.ZoomStep(false))
	}
}

func (p *AnnotationPresenter) ZoomFit() {
	if p.ready() {
		p.apply(p.sess.ZoomFit())
	}
}

// SetZoom applies an absolute zoom percent (clamped).
func (p *AnnotationPresenter) SetZoom(percent int) {
	if p.ready() {
		p.apply(p.sess.SetZoom(percent))
	}
}

func (p *AnnotationPresenter) Next() {
	if p.ready() {
		p.apply(p.sess.Next())
	}
}

func (p *AnnotationPresenter) Prev() {
	if p.ready() {
		p.apply(p.sess.Prev())
	}
}

// Select jumps to the image at index i (list pick).
func (p *AnnotationPresenter) Select(i int) {
	if p.ready() {
		p.apply(p.sess.Select(i))
	}
}

// Clear drops the pending polygon and the centroid preview.
func (p *AnnotationPresenter) Clear() {
	if p.ready() {
		p.apply(p.sess.Clear())
	}
}

// Resize reports a new viewport size.
func (p *AnnotationPresenter) Resize(w, h int) {
	if p.ready() {
		p.apply(p.sess.Resize(w, h))
	}
}

// Refresh repaints the current frame, e.g. after a theme change.
func (p *AnnotationPresenter) Refresh() {
	if p.ready() {
		p.apply(session.Effects{Render: true})
	}
}

// ApplySettings updates auto-advance and zoom step at runtime. Disabling
// auto-advance drops a pending advance.
func (p *AnnotationPresenter) ApplySettings(autoAdvance bool, delay time.Duration, zoomStep int) {
	if p == nil || p.sess == nil {
		return
	}
	p.sess.SetZoomStepSize(zoomStep)
	if p.advance != nil {
		p.advance.SetDelay(delay)
		p.advance.SetEnabled(autoAdvance)
	}
	if p.logger != nil {
		p.logger.Info("settings applied", "auto_advance", autoAdvance, "delay", delay, "zoom_step", zoomStep)
	}
}

// CanExport reports annotation.ErrNoAnnotations when there is nothing to save,
// so the view can warn before asking for a destination.
func (p *AnnotationPresenter) CanExport() error {
	if p == nil || p.sess == nil || p.sess.Store().Empty() {
		return annotation.ErrNoAnnotations
	}
	return nil
}

// CheckExport is CanExport with the warning shown; it reports whether to proceed.
func (p *AnnotationPresenter) CheckExport() bool {
	if err := p.CanExport(); err != nil {
		p.warn(err)
		return false
	}
	return true
}

// Export writes the CSV to path. An empty path (cancelled dialog) is ignored.
func (p *AnnotationPresenter) Export(path string) {
	if !p.ready() || path == "" {
		return
	}
	if err := p.sess.Export(path); err != nil {
		p.warn(err)
		return
	}
	if p.prefs != nil {
		p.prefs.RememberExport(path)
	}
	p.status.SetMessage("Saved: " + path)
	p.flushStatus()
	p.view.Inform("Saved", "Centroid coordinates saved to:\n"+path)
}

func (p *AnnotationPresenter) ready() bool {
	return p != nil && p.sess != nil && p.src != nil && p.view != nil
}

func (p *AnnotationPresenter) apply(eff session.Effects) {
	if eff.CancelAdvance && p.advance != nil {
		p.advance.Cancel()
	}
	if eff.LoadImage {
		eff = eff.Merge(p.load())
	}
	if eff.Status != "" {
		p.status.SetMessage(eff.Status)
	}
	p.status.SetCounts(p.sess.MarkedCount(), p.sess.TotalCount())
	p.status.SetZoom(p.sess.Zoom())
	if rec, ok := p.sess.Current(); ok {
		p.status.SetPosition(p.sess.Index(), rec.Name)
	}
	if eff.Render {
		p.render()
	}
	p.flushStatus()
	if eff.ScheduleAdvance && p.advance != nil {
		p.advance.Schedule(func() { p.apply(p.sess.AutoAdvance()) })
	}
	if eff.Warning != nil {
		p.warn(eff.Warning)
	}
}

// load decodes the current image and reports the outcome to the session.
func (p *AnnotationPresenter) load() session.Effects {
	rec, ok := p.sess.Current()
	if !ok {
		return session.Effects{}
	}
	p.view.SelectImage(p.sess.Index())
	img, err := p.src.Decode(rec.Path)
	if err != nil {
		p.current = nil
		return p.sess.ImageFailed(err)
	}
	p.current = img
	b := img.Bounds()
	return p.sess.ImageLoaded(b.Dx(), b.Dy())
}

func (p *AnnotationPresenter) render() {
	f := p.sess.Frame()
	if !f.Loaded || p.current == nil {
		p.view.ShowFrame(nil)
		return
	}
	ov := images.Overlay{Vertices: f.Vertices, Centroid: f.Centroid}
	if f.Centroid != nil {
		ov.Label = fmt.Sprintf("(%d, %d)", f.Label.X, f.Label.Y)
	}
	p.view.ShowFrame(images.Render(p.current, f.Transform, ov, p.style))
}

func (p *AnnotationPresenter) flushStatus() {
	if p.status.Dirty() {
		p.view.SetStatus(p.status.Flush())
	}
}

// warn maps the recoverable error taxonomy onto user-facing dialogs.
func (p *AnnotationPresenter) warn(err error) {
	if p.logger != nil {
		p.logger.Warn("operation rejected", "error", err)
	}
	switch {
	case errors.Is(err, imagesrc.ErrNoImages):
		p.view.Warn("Warning", "No supported image files found.")
	case imagesrc.IsDecodeFailure(err):
		p.status.SetMessage(err.Error())
		p.flushStatus()
		p.view.Fail("Error", err.Error())
	case errors.Is(err, annotation.ErrInsufficientVertices):
		p.view.Warn("Notice", "At least 3 vertices are needed to form a polygon!")
	case errors.Is(err, annotation.ErrNoAnnotations):
		p.view.Warn("Warning", "There are no annotations to save!")
	case annotation.IsExportFailure(err):
		p.view.Fail("Error", "Save failed: "+err.Error())
	default:
		p.view.Fail("Error", err.Error())
	}
}
