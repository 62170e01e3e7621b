package annotation

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Entry is one image's recorded centroids in completion order.
type Entry struct {
	Key       string
	Centroids []Centroid
}

// ExportHeader is the first row of every export.
var ExportHeader = []string{"filename", "centroid_x", "centroid_y"}

// Store maps image display names to recorded centroids. Entries are created
// lazily on the first Record and keep their creation order.
type Store struct {
	total   int
	order   []string
	entries map[string][]Centroid
}

// NewStore returns an empty store for a session of total images.
func NewStore(total int) *Store {
	if total < 0 {
		total = 0
	}
	return &Store{total: total, entries: make(map[string][]Centroid)}
}

// Record appends c to key's entry, creating the entry if needed. No deduplication.
func (s *Store) Record(key string, c Centroid) {
	if _, ok := s.entries[key]; !ok {
		s.order = append(s.order, key)
	}
	s.entries[key] = append(s.entries[key], c)
}

// Centroids returns a copy of key's centroids (nil when the image is unmarked).
func (s *Store) Centroids(key string) []Centroid {
	cs, ok := s.entries[key]
	if !ok {
		return nil
	}
	out := make([]Centroid, len(cs))
	copy(out, cs)
	return out
}

// Entries returns the entries in creation order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, Entry{Key: k, Centroids: s.Centroids(k)})
	}
	return out
}

// MarkedCount is the number of images with at least one centroid.
func (s *Store) MarkedCount() int {
	n := 0
	for _, k := range s.order {
		if len(s.entries[k]) > 0 {
			n++
		}
	}
	return n
}

// TotalCount is the number of images in the session, marked or not.
func (s *Store) TotalCount() int { return s.total }

// Len is the number of recorded centroids (export rows).
func (s *Store) Len() int {
	n := 0
	for _, cs := range s.entries {
		n += len(cs)
	}
	return n
}

// Empty reports whether nothing has been recorded.
func (s *Store) Empty() bool { return len(s.order) == 0 }

// Rows flattens the store into export rows, header excluded.
func (s *Store) Rows() [][]string {
	rows := make([][]string, 0, s.Len())
	for _, k := range s.order {
		for _, c := range s.entries[k] {
			rows = append(rows, []string{k, strconv.Itoa(c.X), strconv.Itoa(c.Y)})
		}
	}
	return rows
}

// WriteCSV writes the header and one row per centroid to w.
func (s *Store) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	if err := cw.WriteAll(s.Rows()); err != nil {
		return err
	}
	return cw.Error()
}

// ExportFile writes the CSV to path. An empty store returns ErrNoAnnotations and
// creates no file; I/O failures are wrapped in *ExportError. The store is not modified.
func (s *Store) ExportFile(path string) error {
	if s.Empty() {
		return ErrNoAnnotations
	}
	var buf bytes.Buffer
	if err := s.WriteCSV(&buf); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := writeFileReplace(path, buf.Bytes()); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}

// writeFileReplace writes data to a temp file beside path and renames it over path,
// so a failed write never leaves a truncated export behind.
func writeFileReplace(path string, data []byte) error {
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return &os.PathError{Op: "export", Path: path, Err: os.ErrExist}
	}
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
