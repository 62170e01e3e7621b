package annotation

import (
	"errors"
	"fmt"
)

// MinVertices is the smallest vertex count that closes a polygon.
const MinVertices = 3

var (
	// ErrInsufficientVertices is returned by Finish when fewer than MinVertices are pending.
	ErrInsufficientVertices = errors.New("at least 3 vertices are required to form a polygon")
	// ErrNoAnnotations is returned by ExportFile when nothing has been recorded.
	ErrNoAnnotations = errors.New("no annotations to export")
)

// ExportError reports a failed export destination.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %q failed: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// IsExportFailure reports whether err is an *ExportError.
func IsExportFailure(err error) bool {
	var e *ExportError
	return errors.As(err, &e)
}
