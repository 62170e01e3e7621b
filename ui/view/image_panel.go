package view

import (
	"image"
	"log/slog"
	"strconv"
	"time"

	"github.com/soocke/centroid-marker/ui/images"
	"github.com/soocke/centroid-marker/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// resizeSettle is how long the panel waits for <Configure> events to stop
// before reporting a new viewport size.
const resizeSettle = 120 * time.Millisecond

// ImagePanel is the viewport the annotated frame is drawn into. It stretches
// with the window. Frames are centered, so a click at label coordinates (x, y)
// is a click at viewport coordinates (x, y).
type ImagePanel interface {
	Show(img image.Image) // nil shows the placeholder
}

// PointerHandlers receive viewport coordinates from the panel. Resize gets
// the settled viewport size after the window is resized.
type PointerHandlers struct {
	Primary   func(x, y int)
	Secondary func()
	Wheel     func(delta int)
	Resize    func(w, h int)
}

type imagePanel struct {
	label   *LabelWidget
	w, h    int
	prev    *Img // last Tk photo image instance
	afterID string
	logger  *slog.Logger
}

// NewImagePanel creates the viewport label at (row, col), binds mouse
// handlers and shows the placeholder.
func NewImagePanel(row, col, w, h int, on PointerHandlers, logger *slog.Logger) ImagePanel {
	photo := NewPhoto(Data(images.EncodePNG(images.Placeholder(w, h, theme.CurrentPalette().Canvas))))
	lbl := Label(Image(photo), Width(w), Height(h), Anchor("center"),
		Borderwidth(0), Highlightthickness(0), Padx(0), Pady(0),
		Background(theme.CurrentPalette().Canvas))
	Grid(lbl, Row(row), Column(col), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	v := &imagePanel{label: lbl, w: w, h: h, prev: photo, logger: logger}

	if on.Primary != nil {
		Bind(lbl, "<Button-1>", Command(func(e *Event) { on.Primary(e.X, e.Y) }))
	}
	if on.Secondary != nil {
		Bind(lbl, "<Button-3>", Command(func() { on.Secondary() }))
		// macOS reports the right button as Button-2
		Bind(lbl, "<Button-2>", Command(func() { on.Secondary() }))
	}
	if on.Wheel != nil {
		Bind(lbl, "<MouseWheel>", Command(func(e *Event) { on.Wheel(e.Delta) }))
		// X11 delivers wheel motion as buttons 4 and 5
		Bind(lbl, "<Button-4>", Command(func() { on.Wheel(120) }))
		Bind(lbl, "<Button-5>", Command(func() { on.Wheel(-120) }))
	}
	if on.Resize != nil {
		Bind(lbl, "<Configure>", Command(func(e *Event) {
			w, _ := strconv.Atoi(e.Width)
			h, _ := strconv.Atoi(e.Height)
			v.configured(w, h, on.Resize)
		}))
	}
	return v
}

// configured coalesces a burst of <Configure> events into one resize.
func (v *imagePanel) configured(w, h int, resize func(w, h int)) {
	if w <= 1 || h <= 1 || (w == v.w && h == v.h) {
		return
	}
	if v.afterID != "" {
		TclAfterCancel(v.afterID)
	}
	v.afterID = TclAfter(resizeSettle, func() {
		v.afterID = ""
		v.w, v.h = w, h
		// keep the requested size in step so the label does not push the grid back
		v.label.Configure(Width(w), Height(h))
		resize(w, h)
	})
}

func (v *imagePanel) Show(img image.Image) {
	if v == nil || v.label == nil {
		return
	}
	placeholder := func() image.Image { return images.Placeholder(v.w, v.h, theme.CurrentPalette().Canvas) }
	if img == nil {
		img = placeholder()
	}
	data, err := images.Encode(img)
	if err != nil {
		if v.logger != nil {
			v.logger.Error("frame encode failed", "bounds", img.Bounds().String(), "error", err)
		}
		data = images.EncodePNG(placeholder())
	}
	// Replace previous photo to avoid retaining obsolete pixel buffers.
	if v.prev != nil {
		v.prev.Delete()
	}
	v.prev = NewPhoto(Data(data))
	v.label.Configure(Image(v.prev))
}
