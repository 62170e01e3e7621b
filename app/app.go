package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/centroid-marker/config"
	"github.com/soocke/centroid-marker/ui/theme"
	"github.com/soocke/centroid-marker/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

type app struct {
	c      *AppContainer
	logger *slog.Logger
}

// NewApp builds the container on a Tk-backed scheduler and configures the main window.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{c: BuildContainer(cfg, cfgPath, logger, tkScheduler{}), logger: logger}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", cfg.WindowWidth, cfg.WindowHeight))
	return a
}

// Start builds the UI, optionally opens dir and runs the Tk event loop.
func (a *app) Start(dir string) {
	theme.SetDark(a.c.Config.DarkMode)
	p := a.c.Presenter
	a.c.RootView.Build(view.Handlers{
		Open:        a.openHandler,
		Save:        a.saveHandler,
		Clear:       p.Clear,
		Prev:        p.Prev,
		Next:        p.Next,
		Select:      p.Select,
		ZoomIn:      p.ZoomIn,
		ZoomOut:     p.ZoomOut,
		ZoomFit:     p.ZoomFit,
		SetZoom:     p.SetZoom,
		Primary:     p.PrimaryClick,
		Secondary:   p.SecondaryClick,
		Wheel:       p.Wheel,
		Resize:      p.Resize,
		ToggleTheme: a.toggleTheme,
		Exit:        a.exitHandler,
		Settings: func(cfg config.Config) {
			p.ApplySettings(cfg.AutoAdvance, time.Duration(cfg.AutoAdvanceMillis)*time.Millisecond, cfg.ZoomStep)
		},
	})
	if dir != "" {
		// after the window is mapped so warning dialogs have a parent
		TclAfter(50*time.Millisecond, func() { p.OpenDirectory(dir) })
	}
	App.Wait()
}

func (a *app) openHandler() {
	a.c.Presenter.OpenDirectory(view.AskDirectory(a.c.Config.LastDirectory))
}

func (a *app) saveHandler() {
	p := a.c.Presenter
	if !p.CheckExport() {
		return
	}
	p.Export(view.AskExportPath(a.c.Config.LastExport, a.c.Library.Dir()))
}

func (a *app) toggleTheme() {
	a.c.Config.DarkMode = theme.ToggleDark()
	a.c.Presenter.Refresh() // placeholder colour follows the palette
	a.saveConfig()
}

func (a *app) exitHandler() {
	a.c.Advance.Cancel()
	if w, h, ok := a.c.RootView.WindowSize(); ok {
		a.c.Config.WindowWidth, a.c.Config.WindowHeight = w, h
	}
	// the next session starts at the last settled viewport
	a.c.Config.ViewportWidth, a.c.Config.ViewportHeight = a.c.Session.Viewport()
	a.saveConfig()
	Destroy(App)
}

func (a *app) saveConfig() {
	if a.c.ConfigPath == "" {
		return
	}
	if err := a.c.Config.Save(a.c.ConfigPath); err != nil && a.logger != nil {
		a.logger.Error("config save failed", "path", a.c.ConfigPath, "error", err)
	}
}
