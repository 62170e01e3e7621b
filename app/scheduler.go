package app

import (
	"time"

	"github.com/soocke/centroid-marker/domain/navigation"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// tkScheduler runs callbacks through TclAfter so they stay on Tk's event loop thread.
type tkScheduler struct{}

func (tkScheduler) AfterFunc(d time.Duration, fn func()) navigation.Cancel {
	id := TclAfter(d, fn)
	return func() { TclAfterCancel(id) }
}
