package session

import (
	"image"

	"github.com/soocke/centroid-marker/domain/annotation"
	"github.com/soocke/centroid-marker/domain/geometry"
	"github.com/soocke/centroid-marker/domain/imagesrc"
)

// Effects lists the side effects an operation asks its caller to perform.
// The session never renders, decodes or schedules by itself.
type Effects struct {
	Render          bool  // repaint the current frame
	LoadImage       bool  // decode Current() and report ImageLoaded / ImageFailed
	CountsChanged   bool  // marked/total display is stale
	ZoomChanged     bool  // zoom label is stale
	ScheduleAdvance bool  // a polygon was finished; arm auto-advance
	CancelAdvance   bool  // drop any pending auto-advance
	Status          string
	Warning         error // recoverable condition to show the operator
}

// Merge combines two effect sets; later Status/Warning win when set.
func (e Effects) Merge(o Effects) Effects {
	e.Render = e.Render || o.Render
	e.LoadImage = e.LoadImage || o.LoadImage
	e.CountsChanged = e.CountsChanged || o.CountsChanged
	e.ZoomChanged = e.ZoomChanged || o.ZoomChanged
	e.ScheduleAdvance = e.ScheduleAdvance || o.ScheduleAdvance
	e.CancelAdvance = e.CancelAdvance || o.CancelAdvance
	if o.Status != "" {
		e.Status = o.Status
	}
	if o.Warning != nil {
		e.Warning = o.Warning
	}
	return e
}

// Frame is a render snapshot of the current image. Vertices and the centroid
// are in rendered-image space (OriginalToDisplay, no viewport offset).
type Frame struct {
	Record    imagesrc.Record
	Index     int
	Total     int
	Loaded    bool
	Transform geometry.DisplayTransform
	Vertices  []image.Point
	Centroid  *image.Point
	Label     annotation.Centroid // original-space centroid shown next to Centroid
	Zoom      int
}
