package catz

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeLines(t *testing.T, f *Flat, name string, n int) string {
	t.Helper()
	w, err := f.NewGZFileWriter(name, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if _, err := fmt.Fprintf(w, "line %d\n", i); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	// Closing twice is fine.
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return w.Path()
}

func TestGZFileWriterTruncates(t *testing.T) {
	f := NewFlatWithRoot(t.TempDir()).Joins("tracks", "ride")
	if f.Exists() {
		t.Fatal("dir should not exist yet")
	}
	path := writeLines(t, f, "points.geojson.gz", 10)
	if !f.Exists() {
		t.Fatal("writer should create the dir")
	}
	if filepath.Base(path) != "points.geojson.gz" {
		t.Errorf("path = %s", path)
	}

	// A second write replaces the first.
	writeLines(t, f, "points.geojson.gz", 3)

	r, err := f.NamedGZReader("points.geojson.gz")
	if err != nil {
		t.Fatal(err)
	}
	defer r.MaybeClose()
	n, err := r.LineCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("lines = %d, want 3", n)
	}
}

func TestGZFileReaderMissing(t *testing.T) {
	_, err := NewGZFileReader(filepath.Join(t.TempDir(), "nope.gz"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want ErrNotExist", err)
	}
}

func TestGZFileReaderRead(t *testing.T) {
	f := NewFlatWithRoot(t.TempDir())
	writeLines(t, f, "x.gz", 2)
	r, err := f.NamedGZReader("x.gz")
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "line 0\nline 1\n" {
		t.Errorf("read %q", b)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFlatRelativeRoot(t *testing.T) {
	f := NewFlatWithRoot("relative/dir")
	if !filepath.IsAbs(f.Path()) {
		t.Errorf("path %s should be absolute", f.Path())
	}
}
