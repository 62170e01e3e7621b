package annotation

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStore_RecordSameKey(t *testing.T) {
	s := NewStore(5)
	s.Record("a.png", Centroid{1, 2})
	s.Record("a.png", Centroid{3, 4})
	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if got := entries[0].Centroids; len(got) != 2 || got[0] != (Centroid{1, 2}) || got[1] != (Centroid{3, 4}) {
		t.Fatalf("unexpected centroids %+v", got)
	}
	if s.MarkedCount() != 1 || s.TotalCount() != 5 || s.Len() != 2 {
		t.Fatalf("counts marked=%d total=%d len=%d", s.MarkedCount(), s.TotalCount(), s.Len())
	}
}

func TestStore_UnmarkedHasNoEntry(t *testing.T) {
	s := NewStore(2)
	if !s.Empty() || s.MarkedCount() != 0 {
		t.Fatalf("new store must be empty")
	}
	if cs := s.Centroids("missing.png"); cs != nil {
		t.Fatalf("expected nil for unmarked image, got %v", cs)
	}
}

func TestStore_WriteCSVOrder(t *testing.T) {
	s := NewStore(2)
	s.Record("a.png", Centroid{1, 2})
	s.Record("b.png", Centroid{3, 4})
	s.Record("b.png", Centroid{5, 6})
	var buf bytes.Buffer
	if err := s.WriteCSV(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "filename,centroid_x,centroid_y\na.png,1,2\nb.png,3,4\nb.png,5,6\n"
	if buf.String() != want {
		t.Fatalf("unexpected export:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestStore_EntryCreationOrderNotAlphabetical(t *testing.T) {
	s := NewStore(2)
	s.Record("z.png", Centroid{1, 1})
	s.Record("a.png", Centroid{2, 2})
	s.Record("z.png", Centroid{3, 3})
	rows := s.Rows()
	if rows[0][0] != "z.png" || rows[1][0] != "z.png" || rows[2][0] != "a.png" {
		t.Fatalf("rows out of creation order: %v", rows)
	}
}

func TestStore_ExportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	s := NewStore(1)
	if err := s.ExportFile(path); !errors.Is(err, ErrNoAnnotations) {
		t.Fatalf("expected ErrNoAnnotations, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("empty export must not create a file")
	}
	s.Record("img.jpg", Centroid{-1, 7})
	if err := s.ExportFile(path); err != nil {
		t.Fatalf("export: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "filename,centroid_x,centroid_y\nimg.jpg,-1,7\n" {
		t.Fatalf("unexpected file content %q", b)
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, ".out.csv.tmp-*"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestStore_ExportFileUnwritable(t *testing.T) {
	s := NewStore(1)
	s.Record("a.png", Centroid{1, 2})
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	err := s.ExportFile(path)
	if !IsExportFailure(err) {
		t.Fatalf("expected ExportError, got %v", err)
	}
	var ee *ExportError
	if !errors.As(err, &ee) || ee.Path != path || ee.Unwrap() == nil {
		t.Fatalf("export error lacks path or cause: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("failed export must not touch the store")
	}
}

func TestStore_ExportFileOntoDirectory(t *testing.T) {
	s := NewStore(1)
	s.Record("a.png", Centroid{1, 2})
	if err := s.ExportFile(t.TempDir()); !IsExportFailure(err) {
		t.Fatalf("expected ExportError for directory destination, got %v", err)
	}
}
