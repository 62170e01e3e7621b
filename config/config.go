package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the annotation tool.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Navigation
	AutoAdvance       bool `json:"auto_advance"`
	AutoAdvanceMillis int  `json:"auto_advance_ms"`

	// Display
	ZoomStep       int  `json:"zoom_step"`
	ViewportWidth  int  `json:"viewport_width"`
	ViewportHeight int  `json:"viewport_height"`
	WindowWidth    int  `json:"window_width"`
	WindowHeight   int  `json:"window_height"`
	DarkMode       bool `json:"dark_mode"`

	// Remembered between runs
	LastDirectory string `json:"last_directory"`
	LastExport    string `json:"last_export"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		AutoAdvance:       true,
		AutoAdvanceMillis: 1000,
		ZoomStep:          20,
		ViewportWidth:     900,
		ViewportHeight:    680,
		WindowWidth:       1240,
		WindowHeight:      780,
		DarkMode:          true,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.AutoAdvanceMillis <= 0 {
		c.AutoAdvanceMillis = 1000
	}
	if c.AutoAdvanceMillis > 10000 {
		c.AutoAdvanceMillis = 10000
	}
	if c.ZoomStep <= 0 || c.ZoomStep > 100 {
		c.ZoomStep = 20
	}
	if c.ViewportWidth < 100 {
		c.ViewportWidth = 900
	}
	if c.ViewportHeight < 100 {
		c.ViewportHeight = 680
	}
	// side panel on the left, status bar below
	if c.WindowWidth < c.ViewportWidth {
		c.WindowWidth = c.ViewportWidth + 340
	}
	if c.WindowHeight < c.ViewportHeight {
		c.WindowHeight = c.ViewportHeight + 100
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
