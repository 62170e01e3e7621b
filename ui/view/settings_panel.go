package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/centroid-marker/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SettingsPanel edits the runtime settings (auto-advance, delay, zoom step).
// ApplyChanges writes back into *config.Config, persists it and notifies onApply.
type SettingsPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int)
	ApplyChanges()
}

type settingsPanel struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	onApply func(cfg config.Config)
	widgets map[string]*TextWidget // keyed by internal field id
}

// NewSettingsPanel creates the view bound to cfg. onApply may be nil.
func NewSettingsPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApply func(cfg config.Config)) SettingsPanel {
	return &settingsPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApply: onApply, widgets: make(map[string]*TextWidget)}
}

func (v *settingsPanel) Build(parent *FrameWidget, startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(8))
		Grid(w, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("autoAdvance", "Auto Advance (true/false)", fmt.Sprintf("%t", c.AutoAdvance))
	makeRow("advanceMillis", "Advance Delay ms", fmt.Sprintf("%d", c.AutoAdvanceMillis))
	makeRow("zoomStep", "Zoom Step %", fmt.Sprintf("%d", c.ZoomStep))
	applyBtn := Button(Txt("Apply Settings"), Command(func() { v.ApplyChanges() }))
	Grid(applyBtn, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *settingsPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *settingsPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignInt := func(id string, dst *int) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if i, ok := parseIntField(strings.TrimSpace(v.text(w))); ok {
			*dst = i
		}
	}
	assignBool := func(id string, dst *bool) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if b, ok := parseBoolLoose(strings.TrimSpace(v.text(w))); ok {
			*dst = b
		}
	}
	assignBool("autoAdvance", &cfg.AutoAdvance)
	assignInt("advanceMillis", &cfg.AutoAdvanceMillis)
	assignInt("zoomStep", &cfg.ZoomStep)
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	v.refresh()
	if v.onApply != nil {
		v.onApply(cfg)
	}
	if v.cfgPath == "" {
		return
	}
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
}

// refresh rewrites the fields with the validated values.
func (v *settingsPanel) refresh() {
	set := func(id, value string) {
		if w := v.widgets[id]; w != nil {
			w.Delete("1.0", END)
			w.Insert("1.0", value)
		}
	}
	set("autoAdvance", fmt.Sprintf("%t", v.cfg.AutoAdvance))
	set("advanceMillis", fmt.Sprintf("%d", v.cfg.AutoAdvanceMillis))
	set("zoomStep", fmt.Sprintf("%d", v.cfg.ZoomStep))
}

// parsing helpers (unexported)
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
