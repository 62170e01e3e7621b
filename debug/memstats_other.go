//go:build !windows

package debug

import (
	"log/slog"
	"time"
)

// StartMemLogger logs Go heap stats every interval until stop is called.
// Process RSS is only queried on Windows; elsewhere it is reported as 0.
func StartMemLogger(interval time.Duration, logger *slog.Logger) (stop func()) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return every(interval, func() { logMemStats(logger, 0) })
}
