package app

import (
	"log/slog"
	"time"

	"github.com/soocke/centroid-marker/config"
	"github.com/soocke/centroid-marker/domain/imagesrc"
	"github.com/soocke/centroid-marker/domain/navigation"
	"github.com/soocke/centroid-marker/domain/session"
	"github.com/soocke/centroid-marker/ui/model"
	"github.com/soocke/centroid-marker/ui/presenter"
	"github.com/soocke/centroid-marker/ui/view"
)

// AppContainer assembles the image library, session, presenter and root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Library    *imagesrc.Library
	Session    *session.State
	Status     *model.StatusModel
	Advance    *navigation.AutoAdvancer
	Prefs      *config.Prefs
	RootView   *view.RootView
	Presenter  *presenter.AnnotationPresenter
}

// BuildContainer constructs all components. sched drives auto-advance and must
// call back on the UI thread. No widgets are created here.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger, sched navigation.Scheduler) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Library = imagesrc.NewLibrary(logger)
	c.Session = session.New(logger, cfg.ViewportWidth, cfg.ViewportHeight, cfg.ZoomStep)
	c.Status = model.NewStatusModel()
	c.Advance = navigation.NewAutoAdvancer(sched, time.Duration(cfg.AutoAdvanceMillis)*time.Millisecond, cfg.AutoAdvance)
	c.Prefs = &config.Prefs{Config: cfg, Path: cfgPath, Logger: logger}
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.Presenter = presenter.NewAnnotationPresenter(logger, c.Session, c.Library, c.RootView, c.Status, c.Advance, c.Prefs)
	return c
}
