package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/soocke/centroid-marker/app"
	"github.com/soocke/centroid-marker/config"
	"github.com/soocke/centroid-marker/debug"
)

func main() {
	cfgPath := flag.String("config", "centroid-marker.json", "path to the JSON config file")
	dir := flag.String("dir", "", "image directory to open on start")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime metrics")
	flag.Parse()

	level := slog.LevelInfo
	cfg, err := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}

	// Set up logger
	logger := NewLogger(os.Stdout, level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	if cfg.Debug {
		defer debug.StartGoroutineLogger(10*time.Second, logger)()
		defer debug.StartMemLogger(10*time.Second, logger)()
	}

	application := app.NewApp("Centroid Marker", cfg, *cfgPath, logger)
	application.Start(*dir)
}
