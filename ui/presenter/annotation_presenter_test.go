package presenter

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soocke/centroid-marker/domain/imagesrc"
	"github.com/soocke/centroid-marker/domain/navigation"
	"github.com/soocke/centroid-marker/domain/session"
	"github.com/soocke/centroid-marker/ui/model"
)

type fakeSource struct {
	dirs   map[string][]imagesrc.Record
	images map[string]image.Image
}

func (s *fakeSource) List(dir string) ([]imagesrc.Record, error) {
	recs, ok := s.dirs[dir]
	if !ok || len(recs) == 0 {
		return nil, imagesrc.ErrNoImages
	}
	return recs, nil
}

func (s *fakeSource) Decode(path string) (image.Image, error) {
	img, ok := s.images[path]
	if !ok {
		return nil, &imagesrc.DecodeError{Path: path, Err: errors.New("unknown format")}
	}
	return img, nil
}

type dialog struct{ kind, title, msg string }

type mockView struct {
	frames   []image.Image
	names    []string
	selected int
	status   model.Status
	dialogs  []dialog
}

func (v *mockView) ShowFrame(img image.Image)  { v.frames = append(v.frames, img) }
func (v *mockView) SetImageList(names []string) { v.names = names }
func (v *mockView) SelectImage(i int)           { v.selected = i }
func (v *mockView) SetStatus(s model.Status)    { v.status = s }
func (v *mockView) Warn(title, msg string)      { v.dialogs = append(v.dialogs, dialog{"warn", title, msg}) }
func (v *mockView) Fail(title, msg string)      { v.dialogs = append(v.dialogs, dialog{"fail", title, msg}) }
func (v *mockView) Inform(title, msg string)    { v.dialogs = append(v.dialogs, dialog{"info", title, msg}) }

func (v *mockView) lastFrame() image.Image {
	if len(v.frames) == 0 {
		return nil
	}
	return v.frames[len(v.frames)-1]
}

type mockPrefs struct{ dir, export string }

func (p *mockPrefs) RememberDirectory(dir string) { p.dir = dir }
func (p *mockPrefs) RememberExport(path string)   { p.export = path }

// manualScheduler holds callbacks until fire is called.
type manualScheduler struct{ pending []*scheduled }

type scheduled struct {
	fn        func()
	cancelled bool
}

func (m *manualScheduler) AfterFunc(_ time.Duration, fn func()) navigation.Cancel {
	s := &scheduled{fn: fn}
	m.pending = append(m.pending, s)
	return func() { s.cancelled = true }
}

func (m *manualScheduler) fire() {
	due := m.pending
	m.pending = nil
	for _, s := range due {
		if !s.cancelled {
			s.fn()
		}
	}
}

type fixture struct {
	p     *AnnotationPresenter
	view  *mockView
	sched *manualScheduler
	sess  *session.State
	prefs *mockPrefs
}

func newFixture(autoAdvance bool) *fixture {
	src := &fakeSource{
		dirs: map[string][]imagesrc.Record{
			"/imgs": {
				{Path: "/imgs/a.png", Name: "a.png"},
				{Path: "/imgs/b.png", Name: "b.png"},
				{Path: "/imgs/broken.png", Name: "broken.png"},
			},
			"/other": {{Path: "/other/x.png", Name: "x.png"}},
		},
		images: map[string]image.Image{
			"/imgs/a.png":  image.NewRGBA(image.Rect(0, 0, 100, 100)),
			"/imgs/b.png":  image.NewRGBA(image.Rect(0, 0, 50, 100)),
			"/other/x.png": image.NewRGBA(image.Rect(0, 0, 10, 10)),
		},
	}
	view := &mockView{}
	sched := &manualScheduler{}
	sess := session.New(nil, 400, 400, 20)
	prefs := &mockPrefs{}
	adv := navigation.NewAutoAdvancer(sched, time.Second, autoAdvance)
	p := NewAnnotationPresenter(nil, sess, src, view, model.NewStatusModel(), adv, prefs)
	return &fixture{p: p, view: view, sched: sched, sess: sess, prefs: prefs}
}

func (f *fixture) drawSquare() { f.drawSquareAt(0, 0, 4) }

// drawSquareAt draws the original-space square (0,0)-(10,10) for a frame
// whose image starts at (ox, oy) and is shown at scale px per original pixel.
func (f *fixture) drawSquareAt(ox, oy, scale int) {
	for _, pt := range [][2]int{{0, 0}, {10, 0}, {10, 10}, {0, 10}} {
		f.p.PrimaryClick(ox+pt[0]*scale, oy+pt[1]*scale)
	}
	f.p.SecondaryClick()
}

func TestPresenter_OpenShowsFirstImage(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	if len(f.view.names) != 3 || f.view.names[0] != "a.png" {
		t.Fatalf("image list not populated: %v", f.view.names)
	}
	fr := f.view.lastFrame()
	if fr == nil || fr.Bounds().Dx() != 400 || fr.Bounds().Dy() != 400 {
		t.Fatalf("expected a 400x400 frame, got %v", fr)
	}
	if f.view.status.Marked != "Marked: 0/3" || f.view.status.Message != "Annotating: a.png" {
		t.Fatalf("unexpected status %+v", f.view.status)
	}
	if f.prefs.dir != "/imgs" {
		t.Fatalf("directory not remembered")
	}
}

func TestPresenter_OpenEmptyWarnsAndKeepsSession(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	f.drawSquare()
	f.p.OpenDirectory("/nothing")
	if len(f.view.dialogs) != 1 || f.view.dialogs[0].kind != "warn" {
		t.Fatalf("expected one warning, got %+v", f.view.dialogs)
	}
	if f.sess.Store().Len() != 1 {
		t.Fatalf("failed open must keep annotations")
	}
	f.p.OpenDirectory("") // cancelled dialog
	if len(f.view.dialogs) != 1 {
		t.Fatalf("cancelled dialog must be silent")
	}
}

func TestPresenter_FinishRecordsAndAutoAdvances(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	f.drawSquare()
	if got := f.sess.Store().Centroids("a.png"); len(got) != 1 || got[0].X != 5 || got[0].Y != 5 {
		t.Fatalf("expected centroid (5,5), got %v", got)
	}
	if f.view.status.Marked != "Marked: 1/3" || f.view.status.Message != "Centroid saved: (5, 5)" {
		t.Fatalf("unexpected status %+v", f.view.status)
	}
	if f.sess.Index() != 0 {
		t.Fatalf("advance must wait for the scheduler")
	}
	f.sched.fire()
	if f.sess.Index() != 1 || f.view.selected != 1 {
		t.Fatalf("expected auto-advance to index 1, got %d", f.sess.Index())
	}
	if f.view.status.Position != "2/3  b.png" {
		t.Fatalf("unexpected position %q", f.view.status.Position)
	}
}

func TestPresenter_ManualNavigationCancelsAdvance(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	f.drawSquare()
	f.p.Next()
	f.sched.fire()
	if f.sess.Index() != 1 {
		t.Fatalf("stale auto-advance fired: index %d", f.sess.Index())
	}
}

func TestPresenter_AutoAdvanceDisabled(t *testing.T) {
	f := newFixture(false)
	f.p.OpenDirectory("/imgs")
	f.drawSquare()
	if len(f.sched.pending) != 0 {
		t.Fatalf("disabled auto-advance scheduled work")
	}
}

func TestPresenter_TooFewVerticesWarns(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	f.p.PrimaryClick(10, 10)
	f.p.PrimaryClick(20, 10)
	f.p.SecondaryClick()
	if len(f.view.dialogs) != 1 || f.view.dialogs[0].title != "Notice" {
		t.Fatalf("expected notice, got %+v", f.view.dialogs)
	}
	if f.sess.Capture().Len() != 2 || len(f.sched.pending) != 0 {
		t.Fatalf("rejected finish must keep vertices and not advance")
	}
}

func TestPresenter_DecodeFailure(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	f.p.Select(2)
	if len(f.view.dialogs) != 1 || f.view.dialogs[0].kind != "fail" || !strings.Contains(f.view.dialogs[0].msg, "cannot load image at /imgs/broken.png") {
		t.Fatalf("expected decode failure dialog, got %+v", f.view.dialogs)
	}
	if f.view.lastFrame() != nil {
		t.Fatalf("failed image must show the placeholder")
	}
	f.p.PrimaryClick(200, 200)
	if f.sess.Capture().Len() != 0 {
		t.Fatalf("failed image accepted a vertex")
	}
	f.p.Prev()
	if f.sess.Index() != 1 || f.view.lastFrame() == nil {
		t.Fatalf("navigation must continue past a failed image")
	}
}

func TestPresenter_ZoomUpdatesLabelAndFrame(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	f.p.ZoomOut()
	if f.view.status.Zoom != "80%" {
		t.Fatalf("expected 80%%, got %q", f.view.status.Zoom)
	}
	if fr := f.view.lastFrame(); fr.Bounds().Dx() != 320 {
		t.Fatalf("expected 320px frame, got %v", fr.Bounds())
	}
	f.p.Wheel(120)
	f.p.ZoomFit()
	f.p.SetZoom(9999)
	if f.view.status.Zoom != "500%" {
		t.Fatalf("expected clamp to 500%%, got %q", f.view.status.Zoom)
	}
}

func TestPresenter_Export(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	if f.p.CheckExport() {
		t.Fatalf("empty store must refuse export")
	}
	f.drawSquare()
	if !f.p.CheckExport() {
		t.Fatalf("export refused with annotations present")
	}
	path := filepath.Join(t.TempDir(), "out.csv")
	f.p.Export(path)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(b) != "filename,centroid_x,centroid_y\na.png,5,5\n" {
		t.Fatalf("unexpected export %q", b)
	}
	if last := f.view.dialogs[len(f.view.dialogs)-1]; last.kind != "info" || f.prefs.export != path {
		t.Fatalf("expected success dialog and remembered path, got %+v", last)
	}

	f.p.Export(filepath.Join(t.TempDir(), "missing", "out.csv"))
	if last := f.view.dialogs[len(f.view.dialogs)-1]; last.kind != "fail" || !strings.HasPrefix(last.msg, "Save failed") {
		t.Fatalf("expected failure dialog, got %+v", last)
	}
}

func TestPresenter_ReloadResets(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	f.drawSquare()
	f.p.OpenDirectory("/other")
	f.sched.fire() // pending advance from the old session must be dropped
	if f.sess.Index() != 0 || !f.sess.Store().Empty() || f.view.status.Marked != "Marked: 0/1" {
		t.Fatalf("reload did not reset: index=%d status=%+v", f.sess.Index(), f.view.status)
	}
}

func TestPresenter_NilSafe(t *testing.T) {
	var p *AnnotationPresenter
	p.OpenDirectory("/imgs")
	p.PrimaryClick(1, 1)
	p.SecondaryClick()
	p.Next()
	if p.CanExport() == nil {
		t.Fatalf("nil presenter must refuse export")
	}
}

func TestPresenter_ApplySettings(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	f.drawSquare()
	f.p.ApplySettings(false, 2*time.Second, 50)
	f.sched.fire()
	if f.sess.Index() != 0 {
		t.Fatalf("disabling auto-advance must drop the pending advance")
	}
	f.p.ZoomIn()
	if f.view.status.Zoom != "150%" {
		t.Fatalf("expected 150%%, got %q", f.view.status.Zoom)
	}
}

func TestPresenter_RefreshRepaints(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	n := len(f.view.frames)
	f.p.Refresh()
	if len(f.view.frames) != n+1 {
		t.Fatalf("refresh did not repaint")
	}
}

func TestPresenter_CaptureStateInStatus(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	f.p.PrimaryClick(10, 10)
	if f.view.status.Message != "Drawing polygon: right click to finish" {
		t.Fatalf("first vertex not reflected in status: %q", f.view.status.Message)
	}
	f.p.Clear()
	if f.view.status.Message != "Polygon cleared" {
		t.Fatalf("clear not reflected in status: %q", f.view.status.Message)
	}
	f.drawSquare()
	if f.view.status.Message != "Centroid saved: (5, 5)" {
		t.Fatalf("finish must report the centroid, got %q", f.view.status.Message)
	}
}

func TestPresenter_ResizeRerendersAtNewViewport(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	n := len(f.view.frames)
	f.p.Resize(600, 300)
	if len(f.view.frames) != n+1 {
		t.Fatalf("resize did not repaint")
	}
	if fr := f.view.lastFrame(); fr.Bounds().Dx() != 300 || fr.Bounds().Dy() != 300 {
		t.Fatalf("expected a 300x300 fitted frame, got %v", fr.Bounds())
	}
	if w, h := f.sess.Viewport(); w != 600 || h != 300 {
		t.Fatalf("viewport not stored: %dx%d", w, h)
	}
	// 100x100 fitted to 300 px high, centred horizontally at x=150
	f.drawSquareAt(150, 0, 3)
	if got := f.sess.Store().Centroids("a.png"); len(got) != 1 || got[0].X != 5 || got[0].Y != 5 {
		t.Fatalf("clicks after resize mapped wrongly: %v", got)
	}
	f.p.Resize(0, 0)
	if w, h := f.sess.Viewport(); w != 600 || h != 300 {
		t.Fatalf("empty resize must be ignored, got %dx%d", w, h)
	}
}

func TestPresenter_SetZoomFromInput(t *testing.T) {
	f := newFixture(true)
	f.p.OpenDirectory("/imgs")
	pct, ok := model.ParseZoomPercent("150%")
	if !ok {
		t.Fatalf("zoom input rejected")
	}
	f.p.SetZoom(pct)
	if f.view.status.Zoom != "150%" || f.view.status.ZoomPct != 150 {
		t.Fatalf("unexpected zoom status %+v", f.view.status)
	}
	if fr := f.view.lastFrame(); fr.Bounds().Dx() != 400 {
		t.Fatalf("zoomed frame must be clipped to the viewport, got %v", fr.Bounds())
	}
}
