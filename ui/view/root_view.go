package view

import (
	"image"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/centroid-marker/assets"
	"github.com/soocke/centroid-marker/config"
	"github.com/soocke/centroid-marker/ui/model"
	"github.com/soocke/centroid-marker/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user gestures the root view forwards. Nil entries are skipped.
type Handlers struct {
	Open        func()
	Save        func()
	Clear       func()
	Prev        func()
	Next        func()
	Select      func(index int)
	ZoomIn      func()
	ZoomOut     func()
	ZoomFit     func()
	SetZoom     func(percent int)
	Primary     func(x, y int)
	Secondary   func()
	Wheel       func(delta int)
	Resize      func(w, h int)
	ToggleTheme func()
	Exit        func()
	Settings    func(cfg config.Config)
}

// RootView composes the top-level application layout: a side panel with help,
// zoom, image list, actions and settings, the image viewport and a status bar.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Panel    ImagePanel
	Status   StatusBar
	Settings SettingsPanel

	// Widgets
	ZoomLabel   *TLabelWidget
	ZoomEntry   *TextWidget
	ImageSelect *TComboboxWidget
	names       []string
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout and binds h.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	call := func(fn func()) func() {
		return func() {
			if fn != nil {
				fn()
			}
		}
	}

	side := Frame()
	Grid(side, Row(0), Column(0), Sticky("nw"), Padx("0.6m"), Pady("0.4m"))
	row := 0

	help := TLabel(Txt(assets.HelpText()), Anchor("w"), Justify("left"), Style(theme.StyleHelpLabel))
	Grid(help, In(side), Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.2m"), Pady("0.3m"))
	row++

	zoomOut := Button(Txt("Zoom -"), Command(call(h.ZoomOut)))
	Grid(zoomOut, In(side), Row(row), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	fit := Button(Txt("Fit"), Command(call(h.ZoomFit)))
	Grid(fit, In(side), Row(row), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	zoomIn := Button(Txt("Zoom +"), Command(call(h.ZoomIn)))
	Grid(zoomIn, In(side), Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	row++
	rv.ZoomLabel = TLabel(Txt("100%"), Anchor("center"), Style(theme.StyleAccentLabel))
	Grid(rv.ZoomLabel, In(side), Row(row), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.ZoomEntry = Text(Height(1), Width(6))
	Grid(rv.ZoomEntry, In(side), Row(row), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.ZoomEntry.Insert("1.0", "100")
	setZoom := Button(Txt("Set %"), Command(func() { rv.submitZoom(h.SetZoom) }))
	Grid(setZoom, In(side), Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(rv.ZoomEntry, "<Return>", Command(func() { rv.submitZoom(h.SetZoom) }))
	row++

	rv.ImageSelect = TCombobox(Values([]string{"<none>"}), Width(30), State("readonly"))
	Grid(rv.ImageSelect, In(side), Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.2m"), Pady("0.3m"))
	rv.ImageSelect.Current(0)
	Bind(rv.ImageSelect, "<<ComboboxSelected>>", Command(func() {
		if rv.ImageSelect == nil || h.Select == nil {
			return
		}
		idx, err := strconv.Atoi(rv.ImageSelect.Current(nil))
		if err == nil && idx >= 0 && idx < len(rv.names) {
			h.Select(idx)
		} else if rv.logger != nil {
			rv.logger.Error("image selection parse error", "error", err)
		}
	}))
	row++

	prev := Button(Txt("< Prev"), Command(call(h.Prev)))
	Grid(prev, In(side), Row(row), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	next := Button(Txt("Next >"), Command(call(h.Next)))
	Grid(next, In(side), Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	row++

	open := TButton(Txt("Open Folder"), Style(theme.StylePrimaryButton), Command(call(h.Open)))
	Grid(open, In(side), Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	row++
	save := TButton(Txt("Save Annotations"), Style(theme.StylePrimaryButton), Command(call(h.Save)))
	Grid(save, In(side), Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	row++
	clearBtn := TButton(Txt("Clear Current"), Style(theme.StyleDangerButton), Command(call(h.Clear)))
	Grid(clearBtn, In(side), Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	row++

	settings := Frame()
	Grid(settings, In(side), Row(row), Column(0), Columnspan(3), Sticky("we"), Pady("0.6m"))
	rv.Settings = NewSettingsPanel(rv.cfg, rv.cfgPath, rv.logger, h.Settings)
	rv.Settings.Build(settings, 0)
	row++

	themeBtn := Button(Txt("Toggle Theme"), Command(call(h.ToggleTheme)))
	Grid(themeBtn, In(side), Row(row), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exit := Button(Txt("Exit"), Command(call(h.Exit)))
	Grid(exit, In(side), Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	w, ht := 900, 680
	if rv.cfg != nil {
		w, ht = rv.cfg.ViewportWidth, rv.cfg.ViewportHeight
	}
	rv.Panel = NewImagePanel(0, 1, w, ht, PointerHandlers{Primary: h.Primary, Secondary: h.Secondary, Wheel: h.Wheel, Resize: h.Resize}, rv.logger)
	rv.Status = NewStatusBar(1, 2)
	// the viewport takes all extra space
	GridRowConfigure(App, 0, Weight(1))
	GridColumnConfigure(App, 0, Weight(0))
	GridColumnConfigure(App, 1, Weight(1))

	Bind(App, "<Left>", Command(call(h.Prev)))
	Bind(App, "<Right>", Command(call(h.Next)))
	Bind(App, "<Escape>", Command(call(h.Clear)))
	Bind(App, "<Control-o>", Command(call(h.Open)))
	Bind(App, "<Control-s>", Command(call(h.Save)))
}

// submitZoom parses the zoom field and forwards it; bad input restores the
// current value on the next status update.
func (rv *RootView) submitZoom(fn func(percent int)) {
	if rv.ZoomEntry == nil {
		return
	}
	raw := strings.Join(rv.ZoomEntry.Get("1.0", END), "")
	pct, ok := model.ParseZoomPercent(raw)
	if !ok {
		if rv.logger != nil {
			rv.logger.Warn("zoom input ignored", "value", strings.TrimSpace(raw))
		}
		return
	}
	if fn != nil {
		fn(pct)
	}
}

// ShowFrame draws img into the viewport; nil shows the placeholder.
func (rv *RootView) ShowFrame(img image.Image) {
	if rv != nil && rv.Panel != nil {
		rv.Panel.Show(img)
	}
}

// SetImageList replaces the selector entries.
func (rv *RootView) SetImageList(names []string) {
	if rv == nil || rv.ImageSelect == nil {
		return
	}
	rv.names = append(rv.names[:0], names...)
	if len(names) == 0 {
		names = []string{"<none>"}
	}
	rv.ImageSelect.Configure(Values(names))
	rv.ImageSelect.Current(0)
}

// SelectImage highlights entry i without firing the selection handler.
func (rv *RootView) SelectImage(i int) {
	if rv == nil || rv.ImageSelect == nil || i < 0 || i >= len(rv.names) {
		return
	}
	rv.ImageSelect.Current(i)
}

// SetStatus updates the status bar and the zoom label.
func (rv *RootView) SetStatus(s model.Status) {
	if rv == nil {
		return
	}
	if rv.Status != nil {
		rv.Status.Set(s)
	}
	if rv.ZoomLabel != nil {
		rv.ZoomLabel.Configure(Txt(s.Zoom))
	}
	if rv.ZoomEntry != nil && s.ZoomPct > 0 {
		rv.ZoomEntry.Delete("1.0", END)
		rv.ZoomEntry.Insert("1.0", strconv.Itoa(s.ZoomPct))
	}
}

func (rv *RootView) Warn(title, msg string)   { message("warning", title, msg) }
func (rv *RootView) Fail(title, msg string)   { message("error", title, msg) }
func (rv *RootView) Inform(title, msg string) { message("info", title, msg) }

// WindowSize reports the current window size parsed from the Tk geometry.
func (rv *RootView) WindowSize() (w, h int, ok bool) {
	r, ok := parseGeometry(WmGeometry(App))
	if !ok {
		return 0, 0, false
	}
	return r.Dx(), r.Dy(), true
}
