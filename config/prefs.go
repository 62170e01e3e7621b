package config

import "log/slog"

// Prefs records the last opened directory and export path and writes the
// config back to Path. An empty Path keeps the values in memory only.
type Prefs struct {
	Config *Config
	Path   string
	Logger *slog.Logger
}

// RememberDirectory stores dir as the next session's starting directory.
func (p *Prefs) RememberDirectory(dir string) {
	if p == nil || p.Config == nil || p.Config.LastDirectory == dir {
		return
	}
	p.Config.LastDirectory = dir
	p.save()
}

// RememberExport stores path as the default export destination.
func (p *Prefs) RememberExport(path string) {
	if p == nil || p.Config == nil || p.Config.LastExport == path {
		return
	}
	p.Config.LastExport = path
	p.save()
}

func (p *Prefs) save() {
	if p.Path == "" {
		return
	}
	if err := p.Config.Save(p.Path); err != nil && p.Logger != nil {
		p.Logger.Warn("config save failed", "path", p.Path, "error", err)
	}
}
