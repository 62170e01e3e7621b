package model

import "fmt"

// Status is the formatted status-bar content.
type Status struct {
	Message  string
	Marked   string // "Marked: m/n"
	Zoom     string // "120%"
	ZoomPct  int    // raw zoom percent for the slider
	Position string // "3/10  image.png"
}

// StatusModel tracks what the status bar shows. It is decoupled from the UI;
// presenters update it and push Values() to the view. The zero value is usable.
type StatusModel struct {
	message string
	marked  int
	total   int
	zoom    int
	index   int
	name    string
	dirty   bool
}

// NewStatusModel returns a model showing "Ready" at 100% zoom.
func NewStatusModel() *StatusModel { return &StatusModel{message: "Ready", zoom: 100, dirty: true} }

// SetMessage replaces the status message.
func (m *StatusModel) SetMessage(msg string) {
	if m == nil || msg == m.message {
		return
	}
	m.message = msg
	m.dirty = true
}

// SetCounts stores the marked and total image counts.
func (m *StatusModel) SetCounts(marked, total int) {
	if m == nil || (marked == m.marked && total == m.total) {
		return
	}
	m.marked, m.total = marked, total
	m.dirty = true
}

// SetZoom stores the zoom percent.
func (m *StatusModel) SetZoom(percent int) {
	if m == nil || percent == m.zoom {
		return
	}
	m.zoom = percent
	m.dirty = true
}

// SetPosition stores the current image index (0-based) and name.
func (m *StatusModel) SetPosition(index int, name string) {
	if m == nil || (index == m.index && name == m.name) {
		return
	}
	m.index, m.name = index, name
	m.dirty = true
}

// Dirty reports whether anything changed since the last Flush.
func (m *StatusModel) Dirty() bool { return m != nil && m.dirty }

// Flush returns the current values and clears the dirty flag.
func (m *StatusModel) Flush() Status {
	if m == nil {
		return Status{}
	}
	m.dirty = false
	return m.Values()
}

// Values formats the current state.
func (m *StatusModel) Values() Status {
	if m == nil {
		return Status{}
	}
	s := Status{
		Message: m.message,
		Marked:  fmt.Sprintf("Marked: %d/%d", m.marked, m.total),
		Zoom:    fmt.Sprintf("%d%%", m.zoom),
		ZoomPct: m.zoom,
	}
	if m.total > 0 {
		s.Position = fmt.Sprintf("%d/%d  %s", m.index+1, m.total, m.name)
	}
	return s
}
